package tui

import (
	"time"

	"github.com/Veraticus/global-series-tracker/internal/workflow"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) submitSale(form workflow.Form) tea.Cmd {
	ctx := m.ctx
	store := m.store
	return func() tea.Msg {
		n := form.Submit(ctx, store)
		return saleSubmittedMsg{notification: n}
	}
}

func (m Model) deleteSale(id string) tea.Cmd {
	ctx := m.ctx
	store := m.store
	return func() tea.Msg {
		deleted, err := store.DeleteSale(ctx, id)
		return saleDeletedMsg{id: id, deleted: deleted, err: err}
	}
}

func (m Model) importProducts(text string) tea.Cmd {
	ctx := m.ctx
	store := m.store
	return func() tea.Msg {
		count, err := workflow.ImportText(ctx, store, text)
		return productsImportedMsg{count: count, err: err}
	}
}

func (m Model) clearProducts() tea.Cmd {
	ctx := m.ctx
	store := m.store
	return func() tea.Msg {
		return productsClearedMsg{err: store.ClearProducts(ctx)}
	}
}

func (m Model) requestInsights() tea.Cmd {
	ctx := m.ctx
	guard := m.insights
	sales := m.sales
	products := m.products
	return func() tea.Msg {
		result, err := guard.TryAnalyze(ctx, sales, products)
		return insightsMsg{result: result, err: err}
	}
}

// expireNotification fires once the notification has been visible for
// workflow.NotificationLifetime.
func expireNotification(n workflow.Notification) tea.Cmd {
	return tea.Tick(workflow.NotificationLifetime, func(_ time.Time) tea.Msg {
		return notificationExpiredMsg{createdAt: n.CreatedAt}
	})
}
