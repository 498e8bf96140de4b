package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/global-series-tracker/internal/analysis"
	"github.com/Veraticus/global-series-tracker/internal/model"
	"github.com/Veraticus/global-series-tracker/internal/service"
	"github.com/Veraticus/global-series-tracker/internal/tui/themes"
	"github.com/Veraticus/global-series-tracker/internal/views"
	"github.com/Veraticus/global-series-tracker/internal/workflow"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Confirmation prompts for destructive actions.
const (
	MsgConfirmDelete = "Are you sure you want to delete this record?"
	MsgConfirmClear  = "Are you sure you want to delete all products? This cannot be undone."
)

// Panel is one of the top-level screens.
type Panel int

const (
	PanelRecord Panel = iota
	PanelExplore
	PanelInsights
	PanelProducts
	panelCount
)

var panelNames = [...]string{"Record Sale", "Data Explorer", "AI Insights", "Manage Products"}

func (p Panel) String() string {
	if p < 0 || p >= panelCount {
		return "Unknown"
	}
	return panelNames[p]
}

type recordField int

const (
	fieldSeries recordField = iota
	fieldCountry
	fieldCustomCountry
	fieldCustomer
)

type confirmKind int

const (
	confirmNone confirmKind = iota
	confirmDeleteSale
	confirmClearProducts
)

var countryOptions = append(append([]string{}, model.CommonCountries...), model.OtherCountry)

// Model holds the explorer state.
type Model struct {
	ctx          context.Context
	store        service.Ledger
	insights     *analysis.Guard
	now          func() time.Time
	notification *workflow.Notification
	insight      *analysis.Result
	theme        themes.Theme
	keymap       KeyMap
	help         help.Model
	sales        []model.SaleRecord
	products     []string

	customCountry textinput.Model
	customer      textinput.Model
	search        textinput.Model
	paste         textarea.Model

	mode       model.ViewMode
	selected   string
	pendingID  string
	panel      Panel
	field      recordField
	confirm    confirmKind
	seriesIdx  int
	countryIdx int
	cursor     int
	width      int
	height     int
	analyzing  bool
	quitting   bool
}

// New creates the explorer model.
func New(ctx context.Context, opts ...Option) (Model, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Store == nil {
		return Model{}, errors.New("store is required")
	}
	return newModel(ctx, cfg), nil
}

func newModel(ctx context.Context, cfg Config) Model {
	customCountry := textinput.New()
	customCountry.Placeholder = "Type country name..."
	customCountry.CharLimit = 100

	customer := textinput.New()
	customer.Placeholder = "e.g., LLC Tech, Client A..."
	customer.CharLimit = 100

	search := textinput.New()
	search.Placeholder = "Search..."
	search.Prompt = "/ "

	paste := textarea.New()
	paste.Placeholder = "HB851\nHB852\nHB853..."
	paste.ShowLineNumbers = false
	paste.SetHeight(6)

	h := help.New()
	h.Width = cfg.Width

	m := Model{
		ctx:           ctx,
		store:         cfg.Store,
		insights:      cfg.Insights,
		now:           cfg.Now,
		theme:         cfg.Theme,
		keymap:        DefaultKeyMap(),
		help:          h,
		customCountry: customCountry,
		customer:      customer,
		search:        search,
		paste:         paste,
		mode:          model.ViewByCountry,
		panel:         cfg.Panel,
		seriesIdx:     -1,
		countryIdx:    -1,
		width:         cfg.Width,
		height:        cfg.Height,
	}
	m.refresh()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.paste.SetWidth(max(20, msg.Width-8))
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case saleSubmittedMsg:
		m.refresh()
		if !msg.notification.IsError() {
			m.resetRecordForm()
		}
		return m.show(msg.notification)

	case saleDeletedMsg:
		m.refresh()
		m.clampCursor()
		if msg.err != nil {
			return m.show(m.persistWarning("Record deleted.", msg.err))
		}
		return m, nil

	case productsImportedMsg:
		m.refresh()
		if msg.count == 0 && msg.err == nil {
			return m, nil
		}
		m.paste.Reset()
		return m.show(m.persistWarning(fmt.Sprintf("Imported %d product names.", msg.count), msg.err))

	case productsClearedMsg:
		m.refresh()
		return m.show(m.persistWarning("All products deleted.", msg.err))

	case insightsMsg:
		m.analyzing = false
		if msg.err != nil {
			return m.show(m.notice(workflow.KindError, msg.err.Error()))
		}
		result := msg.result
		m.insight = &result
		return m, nil

	case notificationExpiredMsg:
		if m.notification != nil && m.notification.CreatedAt.Equal(msg.createdAt) {
			m.notification = nil
		}
		return m, nil
	}

	return m.updateFocused(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.ForceQuit) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.confirm != confirmNone {
		return m.handleConfirmKey(msg)
	}

	if !m.typing() {
		switch {
		case key.Matches(msg, m.keymap.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keymap.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	switch {
	case key.Matches(msg, m.keymap.NextPanel):
		return m.switchPanel((m.panel + 1) % panelCount)
	case key.Matches(msg, m.keymap.PrevPanel):
		return m.switchPanel((m.panel + panelCount - 1) % panelCount)
	}

	switch m.panel {
	case PanelRecord:
		return m.handleRecordKey(msg)
	case PanelExplore:
		return m.handleExploreKey(msg)
	case PanelInsights:
		return m.handleInsightsKey(msg)
	case PanelProducts:
		return m.handleProductsKey(msg)
	}
	return m, nil
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Confirm):
		kind, id := m.confirm, m.pendingID
		m.confirm = confirmNone
		m.pendingID = ""
		switch kind {
		case confirmDeleteSale:
			return m, m.deleteSale(id)
		case confirmClearProducts:
			return m, m.clearProducts()
		}
	case key.Matches(msg, m.keymap.Cancel):
		m.confirm = confirmNone
		m.pendingID = ""
	}
	return m, nil
}

// Record panel.

func (m Model) handleRecordKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if len(m.products) == 0 {
		return m, nil
	}

	typing := m.typing()
	switch {
	case msg.Type == tea.KeyEnter:
		return m, m.submitSale(m.buildForm())
	case msg.Type == tea.KeyUp || (!typing && key.Matches(msg, m.keymap.Up)):
		return m.moveField(-1)
	case msg.Type == tea.KeyDown || (!typing && key.Matches(msg, m.keymap.Down)):
		return m.moveField(1)
	case !typing && key.Matches(msg, m.keymap.Left):
		m.cycleOption(-1)
		return m, nil
	case !typing && key.Matches(msg, m.keymap.Right):
		m.cycleOption(1)
		return m, nil
	}

	return m.updateFocused(msg)
}

func (m Model) buildForm() workflow.Form {
	form := workflow.Form{Customer: m.customer.Value(), Now: m.now}
	if m.seriesIdx >= 0 && m.seriesIdx < len(m.products) {
		form.Series = m.products[m.seriesIdx]
	}
	if m.countryIdx >= 0 {
		form.SelectCountry(countryOptions[m.countryIdx])
		if form.UseCustomCountry {
			form.CustomCountry = m.customCountry.Value()
		}
	}
	return form
}

func (m Model) customCountrySelected() bool {
	return m.countryIdx >= 0 && countryOptions[m.countryIdx] == model.OtherCountry
}

func (m Model) recordFields() []recordField {
	if m.customCountrySelected() {
		return []recordField{fieldSeries, fieldCountry, fieldCustomCountry, fieldCustomer}
	}
	return []recordField{fieldSeries, fieldCountry, fieldCustomer}
}

func (m Model) moveField(delta int) (tea.Model, tea.Cmd) {
	fields := m.recordFields()
	idx := 0
	for i, f := range fields {
		if f == m.field {
			idx = i
		}
	}
	idx = (idx + delta + len(fields)) % len(fields)
	m.field = fields[idx]
	return m, m.focusField()
}

func (m *Model) focusField() tea.Cmd {
	m.customCountry.Blur()
	m.customer.Blur()
	switch m.field {
	case fieldCustomCountry:
		return m.customCountry.Focus()
	case fieldCustomer:
		return m.customer.Focus()
	}
	return nil
}

func (m *Model) cycleOption(delta int) {
	switch m.field {
	case fieldSeries:
		m.seriesIdx = cycle(m.seriesIdx, delta, len(m.products))
	case fieldCountry:
		m.countryIdx = cycle(m.countryIdx, delta, len(countryOptions))
	}
}

// cycle moves through n options; -1 means nothing is chosen yet.
func cycle(idx, delta, n int) int {
	if n == 0 {
		return -1
	}
	if idx < 0 {
		if delta < 0 {
			return n - 1
		}
		return 0
	}
	return (idx + delta + n) % n
}

func (m *Model) resetRecordForm() {
	m.seriesIdx = -1
	m.countryIdx = -1
	m.customCountry.Reset()
	m.customer.Reset()
	m.field = fieldSeries
	m.focusField()
}

// Explore panel.

func (m Model) handleExploreKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.search.Focused() {
		switch msg.Type {
		case tea.KeyEsc, tea.KeyEnter:
			m.search.Blur()
			return m, nil
		case tea.KeyUp:
			m.moveCursor(-1)
			return m, nil
		case tea.KeyDown:
			m.moveCursor(1)
			return m, nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		m.cursor = 0
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keymap.ByCountry):
		m.setMode(model.ViewByCountry)
	case key.Matches(msg, m.keymap.BySeries):
		m.setMode(model.ViewBySeries)
	case key.Matches(msg, m.keymap.History):
		m.setMode(model.ViewHistory)
	case key.Matches(msg, m.keymap.Search):
		return m, m.search.Focus()
	case key.Matches(msg, m.keymap.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keymap.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keymap.Select):
		if m.mode != model.ViewHistory {
			if opts := m.options(); m.cursor < len(opts) {
				m.selected = opts[m.cursor]
			}
		}
	case key.Matches(msg, m.keymap.Back):
		m.selected = ""
	case key.Matches(msg, m.keymap.Delete):
		if m.mode == model.ViewHistory {
			if rows := m.historyRows(); m.cursor < len(rows) {
				m.confirm = confirmDeleteSale
				m.pendingID = rows[m.cursor].ID
			}
		}
	}
	return m, nil
}

// setMode switches the explorer mode and clears the selection and search.
func (m *Model) setMode(mode model.ViewMode) {
	if m.mode == mode {
		return
	}
	m.mode = mode
	m.selected = ""
	m.search.Reset()
	m.cursor = 0
}

func (m Model) options() []string {
	return views.FilterOptions(views.SelectionOptions(m.mode, m.sales, m.products), m.search.Value())
}

func (m Model) historyRows() []model.SaleRecord {
	return views.SearchHistory(m.sales, m.search.Value())
}

func (m Model) listLen() int {
	if m.mode == model.ViewHistory {
		return len(m.historyRows())
	}
	return len(m.options())
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *Model) clampCursor() {
	if n := m.listLen(); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Insights panel.

func (m Model) handleInsightsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !key.Matches(msg, m.keymap.Generate) || m.analyzing {
		return m, nil
	}
	if m.insights == nil {
		m.insight = &analysis.Result{Text: analysis.MsgMissingAPIKey, Outcome: analysis.OutcomeMissingKey}
		return m, nil
	}
	m.analyzing = true
	return m, m.requestInsights()
}

// Products panel.

func (m Model) handleProductsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.paste.Focused() {
		switch {
		case key.Matches(msg, m.keymap.Save):
			text := m.paste.Value()
			m.paste.Blur()
			return m, m.importProducts(text)
		case key.Matches(msg, m.keymap.Back):
			m.paste.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.paste, cmd = m.paste.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keymap.Import):
		return m, m.paste.Focus()
	case key.Matches(msg, m.keymap.Clear):
		if len(m.products) > 0 {
			m.confirm = confirmClearProducts
		}
	}
	return m, nil
}

// Shared helpers.

func (m Model) switchPanel(p Panel) (tea.Model, tea.Cmd) {
	m.search.Blur()
	m.paste.Blur()
	m.panel = p
	if p == PanelRecord {
		return m, m.focusField()
	}
	m.customCountry.Blur()
	m.customer.Blur()
	return m, nil
}

// typing reports whether a text field has focus and should receive
// printable keys.
func (m Model) typing() bool {
	switch m.panel {
	case PanelRecord:
		return m.field == fieldCustomCountry || m.field == fieldCustomer
	case PanelExplore:
		return m.search.Focused()
	case PanelProducts:
		return m.paste.Focused()
	}
	return false
}

func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.customCountry.Focused():
		m.customCountry, cmd = m.customCountry.Update(msg)
	case m.customer.Focused():
		m.customer, cmd = m.customer.Update(msg)
	case m.search.Focused():
		m.search, cmd = m.search.Update(msg)
	case m.paste.Focused():
		m.paste, cmd = m.paste.Update(msg)
	}
	return m, cmd
}

func (m *Model) refresh() {
	m.sales = m.store.Sales()
	m.products = m.store.Products()
	if m.seriesIdx >= len(m.products) {
		m.seriesIdx = -1
	}
}

func (m Model) notice(kind workflow.NotificationKind, msg string) workflow.Notification {
	return workflow.Notification{Kind: kind, Message: msg, CreatedAt: m.now()}
}

func (m Model) persistWarning(msg string, err error) workflow.Notification {
	n := m.notice(workflow.KindSuccess, msg)
	if err != nil {
		n.Warning = fmt.Sprintf("Change kept in memory but could not be saved: %v", err)
	}
	return n
}

func (m Model) show(n workflow.Notification) (tea.Model, tea.Cmd) {
	m.notification = &n
	return m, expireNotification(n)
}
