// Package certs keeps a self-signed certificate for serving the API over
// HTTPS on the local machine.
package certs

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"fmt"
	"log/slog"
	"math/big"
	"net"
	"os"
	"path/filepath"
	"time"
)

// DefaultValidity is how long a generated certificate is valid.
const DefaultValidity = 365 * 24 * time.Hour

// Organization is the subject organization of generated certificates.
const Organization = "Global Series Tracker"

// Store loads the API certificate from a directory, generating a new one
// when it is missing, unparsable, expired or does not cover the hosts.
type Store struct {
	now      func() time.Time
	logger   *slog.Logger
	certFile string
	keyFile  string
	dir      string
	hosts    []string
	validity time.Duration
}

// Option configures a Store.
type Option func(*Store)

// WithHosts sets the DNS names and IP addresses the certificate covers.
func WithHosts(hosts ...string) Option {
	return func(s *Store) { s.hosts = hosts }
}

// WithClock replaces the time source used for validity checks.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithValidity sets the lifetime of generated certificates.
func WithValidity(d time.Duration) Option {
	return func(s *Store) { s.validity = d }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// NewStore creates a store that keeps gst.crt and gst.key in dir.
func NewStore(dir string, opts ...Option) *Store {
	s := &Store{
		dir:      dir,
		certFile: filepath.Join(dir, "gst.crt"),
		keyFile:  filepath.Join(dir, "gst.key"),
		hosts:    []string{"localhost", "127.0.0.1", "::1"},
		validity: DefaultValidity,
		now:      time.Now,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Files returns the certificate and key paths.
func (s *Store) Files() (certFile, keyFile string) {
	return s.certFile, s.keyFile
}

// Certificate returns the stored certificate, regenerating it when needed.
func (s *Store) Certificate() (tls.Certificate, error) {
	cert, err := tls.LoadX509KeyPair(s.certFile, s.keyFile)
	if err == nil {
		err = s.verify(cert)
		if err == nil {
			return cert, nil
		}
	}
	if !os.IsNotExist(err) {
		s.logger.Info("Regenerating API certificate", "reason", err)
	}

	return s.generate()
}

func (s *Store) generate() (tls.Certificate, error) {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return tls.Certificate{}, fmt.Errorf("failed to create certificate directory: %w", err)
	}

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("failed to generate private key: %w", err)
	}

	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 128))
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("failed to generate serial number: %w", err)
	}

	now := s.now()
	template := x509.Certificate{
		SerialNumber:          serial,
		Subject:               pkix.Name{Organization: []string{Organization}},
		NotBefore:             now.Add(-time.Minute),
		NotAfter:              now.Add(s.validity),
		KeyUsage:              x509.KeyUsageDigitalSignature,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
	}
	for _, h := range s.hosts {
		if ip := net.ParseIP(h); ip != nil {
			template.IPAddresses = append(template.IPAddresses, ip)
		} else {
			template.DNSNames = append(template.DNSNames, h)
		}
	}

	der, err := x509.CreateCertificate(rand.Reader, &template, &template, &key.PublicKey, key)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("failed to create certificate: %w", err)
	}
	keyDER, err := x509.MarshalECPrivateKey(key)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("failed to encode private key: %w", err)
	}

	if err := writePEM(s.certFile, "CERTIFICATE", der); err != nil {
		return tls.Certificate{}, err
	}
	if err := writePEM(s.keyFile, "EC PRIVATE KEY", keyDER); err != nil {
		return tls.Certificate{}, err
	}

	s.logger.Info("Generated API certificate", "file", s.certFile, "expires", template.NotAfter)
	return tls.LoadX509KeyPair(s.certFile, s.keyFile)
}

func (s *Store) verify(cert tls.Certificate) error {
	if len(cert.Certificate) == 0 {
		return fmt.Errorf("no certificates found")
	}

	parsed, err := x509.ParseCertificate(cert.Certificate[0])
	if err != nil {
		return fmt.Errorf("failed to parse certificate: %w", err)
	}

	now := s.now()
	if now.Before(parsed.NotBefore) {
		return fmt.Errorf("certificate not yet valid")
	}
	if now.After(parsed.NotAfter) {
		return fmt.Errorf("certificate has expired")
	}

	for _, h := range s.hosts {
		if err := parsed.VerifyHostname(h); err != nil {
			return fmt.Errorf("certificate does not cover %s: %w", h, err)
		}
	}
	return nil
}

func writePEM(path, blockType string, der []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600) //nolint:gosec // Path under the config directory
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	if err := pem.Encode(f, &pem.Block{Type: blockType, Bytes: der}); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
