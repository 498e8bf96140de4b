package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"text/template"

	"github.com/Veraticus/global-series-tracker/internal/llm"
	"github.com/Veraticus/global-series-tracker/internal/model"
)

// Fixed responses returned instead of model output.
const (
	MsgMissingAPIKey = "API Key is missing. Please configure the environment to use AI insights."
	MsgNoSales       = "No sales data available yet. Please record some sales to generate insights."
	MsgEmptyResponse = "Could not generate analysis."
	MsgServiceError  = "An error occurred while communicating with the AI service. Please try again later."
)

// Outcome classifies how an analysis request ended.
type Outcome string

// Analysis outcomes.
const (
	OutcomeGenerated    Outcome = "generated"
	OutcomeMissingKey   Outcome = "missing_key"
	OutcomeNoSales      Outcome = "no_sales"
	OutcomeEmpty        Outcome = "empty"
	OutcomeServiceError Outcome = "error"
)

// Result is the text shown to the user and how it was produced.
type Result struct {
	Text    string  `json:"text"`
	Outcome Outcome `json:"outcome"`
}

// Requester asks a text-generation client for a sales analysis. It never
// returns an error: every failure maps to a fixed fallback message.
type Requester struct {
	client llm.Client
	prompt *template.Template
	logger *slog.Logger
}

// NewRequester creates a requester. A nil client means no API key is
// configured, which is a valid state.
func NewRequester(client llm.Client, logger *slog.Logger) (*Requester, error) {
	prompt, err := parsePrompt()
	if err != nil {
		return nil, fmt.Errorf("parse analysis prompt: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Requester{client: client, prompt: prompt, logger: logger}, nil
}

// Configured reports whether a text-generation client is available.
func (r *Requester) Configured() bool {
	return r.client != nil
}

// Analyze summarizes the snapshot and returns the model's prose or one of
// the fixed messages.
func (r *Requester) Analyze(ctx context.Context, sales []model.SaleRecord, products []string) Result {
	if r.client == nil {
		return Result{Text: MsgMissingAPIKey, Outcome: OutcomeMissingKey}
	}
	if len(sales) == 0 {
		return Result{Text: MsgNoSales, Outcome: OutcomeNoSales}
	}

	summary := BuildSummary(sales, products)
	prompt, err := renderPrompt(r.prompt, summary)
	if err != nil {
		r.logger.Error("failed to build analysis prompt", "error", err)
		return Result{Text: MsgServiceError, Outcome: OutcomeServiceError}
	}

	r.logger.Debug("requesting sales analysis",
		"sales", summary.TotalSalesRecorded,
		"products", summary.TotalProducts,
		"prompt_bytes", len(prompt))

	text, err := r.client.Generate(ctx, prompt)
	if err != nil {
		r.logger.Error("sales analysis failed", "error", err)
		return Result{Text: MsgServiceError, Outcome: OutcomeServiceError}
	}
	if text == "" {
		return Result{Text: MsgEmptyResponse, Outcome: OutcomeEmpty}
	}

	return Result{Text: text, Outcome: OutcomeGenerated}
}
