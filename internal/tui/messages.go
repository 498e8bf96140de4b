package tui

import (
	"time"

	"github.com/Veraticus/global-series-tracker/internal/analysis"
	"github.com/Veraticus/global-series-tracker/internal/workflow"
)

// Store operation results.
type saleSubmittedMsg struct {
	notification workflow.Notification
}

type saleDeletedMsg struct {
	err     error
	id      string
	deleted bool
}

type productsImportedMsg struct {
	err   error
	count int
}

type productsClearedMsg struct {
	err error
}

// Async operation messages.
type insightsMsg struct {
	err    error
	result analysis.Result
}

type notificationExpiredMsg struct {
	createdAt time.Time
}
