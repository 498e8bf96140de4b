package sheets

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/sheets/v4"
)

// DefaultCallbackAddr is where the interactive flow listens for the redirect.
const DefaultCallbackAddr = "localhost:8080"

const defaultAuthTimeout = 5 * time.Minute

// Errors from the consent callback.
var (
	ErrNoAuthCode   = errors.New("no authorization code received")
	ErrStateInvalid = errors.New("oauth state mismatch")
)

// OAuth2Config describes one interactive consent run.
type OAuth2Config struct {
	ClientID     string
	ClientSecret string
	TokenFile    string
	CallbackAddr string
	Timeout      time.Duration
	// Prompt receives the consent URL. Defaults to the log.
	Prompt io.Writer
}

const (
	pageDone   = `<html><body><h1>Google Sheets connected</h1><p>Return to the terminal.</p></body></html>`
	pageFailed = `<html><body><h1>Authentication failed</h1><p>%s</p></body></html>`
)

// callback receives exactly one redirect from the consent screen.
type callback struct {
	state  string
	result chan callbackResult
}

type callbackResult struct {
	code string
	err  error
}

func (c *callback) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res := callbackResult{code: q.Get("code")}
	switch {
	case q.Get("state") != c.state:
		res.err = ErrStateInvalid
	case res.code == "":
		res.err = ErrNoAuthCode
	}

	if res.err != nil {
		res.code = ""
		_, _ = fmt.Fprintf(w, pageFailed, res.err)
	} else {
		_, _ = io.WriteString(w, pageDone)
	}

	select {
	case c.result <- res:
	default:
	}
}

func oauthConfig(clientID, clientSecret, redirectURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  redirectURL,
		Scopes:       []string{sheets.SpreadsheetsScope},
	}
}

func newState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// AuthenticateOAuth2Interactive serves a local callback, prints the consent
// URL and exchanges the returned code for a token with a refresh token.
func AuthenticateOAuth2Interactive(ctx context.Context, cfg OAuth2Config) (*oauth2.Token, error) {
	if cfg.CallbackAddr == "" {
		cfg.CallbackAddr = DefaultCallbackAddr
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultAuthTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	state, err := newState()
	if err != nil {
		return nil, fmt.Errorf("generate oauth state: %w", err)
	}

	listener, err := net.Listen("tcp", cfg.CallbackAddr)
	if err != nil {
		return nil, fmt.Errorf("listen for oauth callback: %w", err)
	}

	cb := &callback{state: state, result: make(chan callbackResult, 1)}
	mux := http.NewServeMux()
	mux.Handle("/callback", cb)
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() { _ = srv.Serve(listener) }()
	defer func() { _ = srv.Shutdown(context.WithoutCancel(ctx)) }()

	oc := oauthConfig(cfg.ClientID, cfg.ClientSecret, "http://"+listener.Addr().String()+"/callback")
	authURL := oc.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	if cfg.Prompt != nil {
		_, _ = fmt.Fprintf(cfg.Prompt, "Open this URL to authorize Google Sheets:\n\n  %s\n\n", authURL)
	} else {
		slog.Info("Open this URL to authorize Google Sheets", "url", authURL)
	}

	var res callbackResult
	select {
	case res = <-cb.result:
	case <-ctx.Done():
		return nil, fmt.Errorf("waiting for oauth callback: %w", ctx.Err())
	}
	if res.err != nil {
		return nil, res.err
	}

	token, err := oc.Exchange(ctx, res.code)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}

	if cfg.TokenFile != "" {
		if err := saveToken(cfg.TokenFile, token); err != nil {
			slog.Warn("Token not saved", "file", cfg.TokenFile, "error", err)
		} else {
			slog.Info("Token saved", "file", cfg.TokenFile)
		}
	}
	return token, nil
}

// LoadToken reads a token written by a previous consent run.
func LoadToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return nil, err
	}
	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("parse token %s: %w", path, err)
	}
	return &token, nil
}

func saveToken(path string, token *oauth2.Token) error {
	data, err := json.Marshal(token)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// GetOrCreateToken returns the saved token when it carries a refresh token
// and runs the consent flow otherwise.
func GetOrCreateToken(ctx context.Context, cfg OAuth2Config) (*oauth2.Token, error) {
	if cfg.TokenFile != "" {
		if token, err := LoadToken(cfg.TokenFile); err == nil && token.RefreshToken != "" {
			slog.Debug("Using saved token", "file", cfg.TokenFile)
			return token, nil
		}
	}
	return AuthenticateOAuth2Interactive(ctx, cfg)
}
