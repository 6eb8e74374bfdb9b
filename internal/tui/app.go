package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"invoicr/internal/config"
	"invoicr/internal/currency"
	"invoicr/internal/invoice"
	"invoicr/internal/model"
	"invoicr/internal/service"
)

// App ties together views.
type App struct {
	ctx      context.Context
	services Services
	cfg      config.Config

	state appState
	modal modalState
	form  *formScreen

	clients       []model.Client
	invoices      []model.Invoice
	items         []model.PredefinedItem
	notifications []model.Notification
	settings      model.AppSettings

	clientCursor  int
	invoiceCursor int
	itemCursor    int

	selectedClientID  int64
	pendingDeleteID   int64
	pendingClient     *model.Client
	similarTo         string
	analyticsYearly   bool
	settingsShowItems bool

	status     string
	dateFormat string
	width      int
}

// Services bundles everything the TUI calls into.
type Services struct {
	Clients     *service.ClientService
	Invoices    *service.InvoiceService
	Items       *service.PredefinedItemService
	Settings    *service.SettingsService
	Reminders   *service.ReminderService
	Maintenance *service.MaintenanceService
}

type appState string

const (
	viewDashboard    appState = "dashboard"
	viewClients      appState = "clients"
	viewClientDetail appState = "clientDetail"
	viewAnalytics    appState = "analytics"
	viewSettings     appState = "settings"
)

type modalState string

const (
	modalNone          modalState = ""
	modalConfirmReset  modalState = "confirmReset"
	modalDeleteInvoice modalState = "deleteInvoice"
	modalDeleteClient  modalState = "deleteClient"
	modalSimilarClient modalState = "similarClient"
	modalItemPicker    modalState = "itemPicker"
)

func New(ctx context.Context, cfg config.Config, services Services) *App {
	return &App{
		ctx:        ctx,
		services:   services,
		cfg:        cfg,
		state:      viewDashboard,
		dateFormat: cfg.UI.DateFormat,
		width:      80,
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.loadClients(), a.loadInvoices(), a.loadItems(), a.loadSettings(), a.loadNotifications())
}

// loaders

func (a *App) loadClients() tea.Cmd {
	return func() tea.Msg {
		list, err := a.services.Clients.List(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		sort.Slice(list, func(i, j int) bool { return strings.ToLower(list[i].Name) < strings.ToLower(list[j].Name) })
		return clientsMsg(list)
	}
}

func (a *App) loadInvoices() tea.Cmd {
	return func() tea.Msg {
		list, err := a.services.Invoices.List(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
		return invoicesMsg(list)
	}
}

func (a *App) loadItems() tea.Cmd {
	return func() tea.Msg {
		list, err := a.services.Items.List(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return itemsMsg(list)
	}
}

func (a *App) loadSettings() tea.Cmd {
	return func() tea.Msg {
		return settingsMsg(a.services.Settings.Get(a.ctx))
	}
}

func (a *App) loadNotifications() tea.Cmd {
	return func() tea.Msg {
		list, err := a.services.Reminders.List(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return notificationsMsg(list)
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
		return a, nil
	case tea.KeyMsg:
		if a.form != nil {
			cmd, done := a.form.Update(m)
			if done {
				a.form = nil
			}
			return a, cmd
		}
		if a.modal != modalNone {
			return a.handleModalKey(m)
		}
		return a.handleKey(m)
	case clientsMsg:
		a.clients = []model.Client(m)
		if a.clientCursor >= len(a.clients) {
			a.clientCursor = 0
		}
	case invoicesMsg:
		a.invoices = []model.Invoice(m)
		if a.invoiceCursor >= len(a.clientInvoices()) {
			a.invoiceCursor = 0
		}
	case itemsMsg:
		a.items = []model.PredefinedItem(m)
		if a.itemCursor >= len(a.items) {
			a.itemCursor = 0
		}
	case notificationsMsg:
		a.notifications = []model.Notification(m)
	case settingsMsg:
		a.settings = model.AppSettings(m)
	case statusMsg:
		a.status = string(m)
	case errMsg:
		a.status = "error: " + m.Error()
	case refreshMsg:
		a.status = m.status
		if m.view != "" {
			a.state = m.view
		}
		if m.resetCursors {
			a.clientCursor, a.invoiceCursor, a.itemCursor = 0, 0, 0
		}
		return a, tea.Batch(a.loadClients(), a.loadInvoices(), a.loadItems(), a.loadSettings(), a.loadNotifications())
	case configSavedMsg:
		a.cfg = m.cfg
		a.dateFormat = m.cfg.UI.DateFormat
		a.status = "settings saved"
		return a, a.loadSettings()
	case similarClientMsg:
		c := m.client
		a.pendingClient = &c
		a.similarTo = m.similarTo
		a.modal = modalSimilarClient
		a.status = ""
	case ReminderFiredMsg:
		return a, a.reminderFiredCmd(m.NotificationID)
	}
	return a, nil
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "d":
		a.state = viewDashboard
		a.status = ""
	case "c":
		a.state = viewClients
		a.status = ""
	case "v":
		a.state = viewAnalytics
		a.status = ""
	case "p":
		a.state = viewSettings
		a.status = ""
	case "y":
		if a.state == viewAnalytics {
			a.analyticsYearly = !a.analyticsYearly
		}
	case "up", "k":
		a.moveCursor(-1)
	case "down", "j":
		a.moveCursor(1)
	case "enter":
		if a.state == viewClients && len(a.clients) > 0 {
			a.selectedClientID = a.clients[a.clientCursor].ID
			a.invoiceCursor = 0
			a.state = viewClientDetail
			a.status = ""
		} else if a.state == viewClientDetail {
			if inv, ok := a.selectedInvoice(); ok {
				a.openInvoiceForm(&inv)
			}
		} else if a.state == viewSettings && a.settingsShowItems {
			a.openItemForm()
		}
	case "esc":
		if a.state == viewClientDetail {
			a.state = viewClients
			a.status = ""
		}
	case "n":
		switch a.state {
		case viewClients:
			a.openClientForm(nil)
		case viewClientDetail:
			if client, ok := a.selectedClient(); ok {
				draft := service.NewForClient(client)
				a.openInvoiceForm(&draft)
			}
		case viewSettings:
			if a.settingsShowItems {
				a.openItemForm()
			}
		}
	case "e":
		switch a.state {
		case viewClientDetail:
			if client, ok := a.selectedClient(); ok {
				a.openClientForm(&client)
			}
		case viewSettings:
			a.openSettingsForm()
		}
	case "s":
		if a.state == viewClientDetail {
			if inv, ok := a.selectedInvoice(); ok {
				return a, a.setStatusCmd(inv.ID, nextStatus(inv.Status))
			}
		}
	case "m":
		if a.state == viewClientDetail {
			if inv, ok := a.selectedInvoice(); ok {
				a.openReminderForm(inv)
			}
		}
	case "a":
		if a.state == viewClientDetail && len(a.items) > 0 {
			if _, ok := a.selectedInvoice(); ok {
				a.itemCursor = 0
				a.modal = modalItemPicker
			}
		}
	case "x":
		switch a.state {
		case viewClientDetail:
			if inv, ok := a.selectedInvoice(); ok {
				a.pendingDeleteID = inv.ID
				a.modal = modalDeleteInvoice
			}
		case viewSettings:
			if a.settingsShowItems {
				if a.itemCursor < len(a.items) {
					return a, a.deleteItemCmd(a.items[a.itemCursor].ID)
				}
			} else {
				a.modal = modalConfirmReset
			}
		}
	case "backspace", "delete":
		if a.state == viewClientDetail {
			if client, ok := a.selectedClient(); ok {
				a.pendingDeleteID = client.ID
				a.modal = modalDeleteClient
			}
		}
	case "i":
		if a.state == viewSettings {
			a.settingsShowItems = !a.settingsShowItems
			a.itemCursor = 0
		}
	case "b":
		if a.state == viewSettings {
			return a, a.exportCmd()
		}
	}
	return a, nil
}

func (a *App) moveCursor(dir int) {
	switch a.state {
	case viewClients:
		a.clientCursor = clamp(a.clientCursor+dir, len(a.clients))
	case viewClientDetail:
		a.invoiceCursor = clamp(a.invoiceCursor+dir, len(a.clientInvoices()))
	case viewSettings:
		if a.settingsShowItems {
			a.itemCursor = clamp(a.itemCursor+dir, len(a.items))
		}
	}
}

func clamp(v, n int) int {
	if v < 0 {
		return 0
	}
	if v >= n && n > 0 {
		return n - 1
	}
	if n == 0 {
		return 0
	}
	return v
}

func (a *App) handleModalKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.modal {
	case modalConfirmReset:
		switch m.String() {
		case "y", "Y":
			a.modal = modalNone
			return a, a.resetCmd()
		case "n", "N", "esc":
			a.modal = modalNone
		}
	case modalDeleteInvoice:
		switch m.String() {
		case "y", "Y":
			a.modal = modalNone
			return a, a.deleteInvoiceCmd(a.pendingDeleteID)
		case "n", "N", "esc":
			a.modal = modalNone
		}
	case modalDeleteClient:
		switch m.String() {
		case "y", "Y":
			a.modal = modalNone
			return a, a.deleteClientCascadeCmd(a.pendingDeleteID)
		case "n", "N", "esc":
			a.modal = modalNone
		}
	case modalSimilarClient:
		switch m.String() {
		case "y", "Y":
			a.modal = modalNone
			if a.pendingClient != nil {
				c := *a.pendingClient
				a.pendingClient = nil
				return a, a.createClientCmd(c)
			}
		case "n", "N", "esc":
			a.modal = modalNone
			a.pendingClient = nil
			a.status = "client not created"
		}
	case modalItemPicker:
		switch m.String() {
		case "esc":
			a.modal = modalNone
		case "up", "k":
			a.itemCursor = clamp(a.itemCursor-1, len(a.items))
		case "down", "j":
			a.itemCursor = clamp(a.itemCursor+1, len(a.items))
		case "enter":
			a.modal = modalNone
			inv, ok := a.selectedInvoice()
			if !ok || a.itemCursor >= len(a.items) {
				return a, nil
			}
			inv.Items = append(inv.Items, service.AsLineItem(a.items[a.itemCursor]))
			return a, a.updateInvoiceCmd(inv)
		}
	}
	return a, nil
}

// commands

func (a *App) createClientCmd(c model.Client) tea.Cmd {
	return func() tea.Msg {
		if _, err := a.services.Clients.Create(a.ctx, c); err != nil {
			return errMsg{err}
		}
		return refreshMsg{status: "client created"}
	}
}

// deleteClientCascadeCmd removes the client's invoices first, then the
// client record.
func (a *App) deleteClientCascadeCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		removed, err := a.services.Invoices.DeleteForClient(a.ctx, id)
		if err != nil {
			return errMsg{err}
		}
		if err := a.services.Clients.Delete(a.ctx, id); err != nil {
			return errMsg{err}
		}
		return refreshMsg{status: fmt.Sprintf("client deleted (%d invoices removed)", removed), view: viewClients}
	}
}

func (a *App) updateInvoiceCmd(inv model.Invoice) tea.Cmd {
	return func() tea.Msg {
		if _, err := a.services.Invoices.Update(a.ctx, inv); err != nil {
			return errMsg{err}
		}
		return refreshMsg{status: "invoice updated"}
	}
}

func (a *App) deleteInvoiceCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		if err := a.services.Invoices.Delete(a.ctx, id); err != nil {
			return errMsg{err}
		}
		return refreshMsg{status: "invoice deleted"}
	}
}

func (a *App) setStatusCmd(id int64, status string) tea.Cmd {
	return func() tea.Msg {
		if err := a.services.Invoices.SetStatus(a.ctx, id, status); err != nil {
			return errMsg{err}
		}
		return refreshMsg{status: "marked " + status}
	}
}

func (a *App) reminderFiredCmd(notificationID int64) tea.Cmd {
	return func() tea.Msg {
		_, inv, err := a.services.Reminders.Resolve(a.ctx, notificationID)
		if err != nil {
			return errMsg{err}
		}
		return statusMsg(fmt.Sprintf("REMINDER: %s for %s is due", inv.InvoiceNumber, inv.ClientName))
	}
}

func (a *App) deleteItemCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		if err := a.services.Items.Delete(a.ctx, id); err != nil {
			return errMsg{err}
		}
		return refreshMsg{status: "item removed"}
	}
}

func (a *App) resetCmd() tea.Cmd {
	return func() tea.Msg {
		if err := a.services.Maintenance.Reset(a.ctx); err != nil {
			return errMsg{err}
		}
		return refreshMsg{status: "all data cleared", view: viewDashboard, resetCursors: true}
	}
}

func (a *App) exportCmd() tea.Cmd {
	dir := filepath.Dir(a.cfg.Database.Path)
	path := filepath.Join(dir, "backup-"+time.Now().Format("2006-01-02")+".json")
	return func() tea.Msg {
		if _, err := a.services.Maintenance.Export(a.ctx, path); err != nil {
			return errMsg{err}
		}
		return statusMsg("exported to " + path)
	}
}

// forms

func (a *App) openClientForm(existing *model.Client) {
	c := model.Client{}
	title := "New Client"
	if existing != nil {
		c = *existing
		title = "Edit Client"
	}
	fields := []formField{
		{Key: "name", Label: "Name", Value: c.Name},
		{Key: "email", Label: "Email", Value: c.Email},
		{Key: "address", Label: "Address", Value: c.Address},
		{Key: "currency", Label: "Default currency", Value: defaultsCurrency(c.CustomDefaults), Suggestions: currencyCodes()},
		{Key: "tax", Label: "Default tax %", Value: defaultsFloat(c.CustomDefaults, func(d *model.ClientCustomDefaults) float64 { return d.DefaultTax })},
		{Key: "discount", Label: "Default discount %", Value: defaultsFloat(c.CustomDefaults, func(d *model.ClientCustomDefaults) float64 { return d.DefaultDiscount })},
	}
	isNew := existing == nil
	a.form = newFormScreen(title, fields, func(vals map[string]string) tea.Msg {
		if vals["name"] == "" {
			return statusMsg("name is required")
		}
		c.Name = vals["name"]
		c.Email = vals["email"]
		c.Address = vals["address"]
		if vals["currency"] != "" || vals["tax"] != "" || vals["discount"] != "" {
			if c.CustomDefaults == nil {
				c.CustomDefaults = &model.ClientCustomDefaults{}
			}
			code := strings.ToUpper(vals["currency"])
			if code != "" {
				if _, ok := currency.Lookup(code); !ok {
					return statusMsg("unknown currency code " + code)
				}
			}
			c.CustomDefaults.DefaultCurrency = code
			c.CustomDefaults.DefaultTax = parseFloat(vals["tax"])
			c.CustomDefaults.DefaultDiscount = parseFloat(vals["discount"])
		}
		if isNew {
			if similar, ok := a.services.Clients.FindSimilar(a.ctx, c.Name); ok {
				return similarClientMsg{client: c, similarTo: similar.Name}
			}
			return a.createClientMsg(c)
		}
		return a.updateClientMsg(c)
	})
}

func (a *App) createClientMsg(c model.Client) tea.Msg {
	if _, err := a.services.Clients.Create(a.ctx, c); err != nil {
		return errMsg{err}
	}
	return refreshMsg{status: "client created"}
}

func (a *App) updateClientMsg(c model.Client) tea.Msg {
	if err := a.services.Clients.Update(a.ctx, c); err != nil {
		return errMsg{err}
	}
	return refreshMsg{status: "client updated"}
}

func (a *App) openInvoiceForm(inv *model.Invoice) {
	draft := *inv
	title := "New Invoice"
	if draft.ID != 0 {
		title = "Edit " + draft.InvoiceNumber
	}
	item := model.LineItem{Quantity: 1}
	if len(draft.Items) > 0 {
		item = draft.Items[0]
	}
	due := ""
	if !draft.DueDate.IsZero() {
		due = draft.DueDate.Format("2006-01-02")
	}
	fields := []formField{
		{Key: "description", Label: "Description", Value: draft.Description},
		{Key: "due", Label: "Due date (2006-01-02)", Value: due},
		{Key: "currency", Label: "Currency", Value: draft.Currency, Suggestions: currencyCodes()},
		{Key: "tax", Label: "Tax %", Value: formatFloat(draft.Tax)},
		{Key: "discount", Label: "Discount %", Value: formatFloat(draft.Discount)},
		{Key: "notes", Label: "Notes", Value: draft.Notes},
		{Key: "itemDesc", Label: "Item description", Value: item.Description},
		{Key: "itemQty", Label: "Item quantity", Value: formatFloat(item.Quantity)},
		{Key: "itemRate", Label: "Item rate", Value: formatFloat(item.Rate)},
	}
	a.form = newFormScreen(title, fields, func(vals map[string]string) tea.Msg {
		draft.Description = vals["description"]
		code := strings.ToUpper(vals["currency"])
		if code != "" {
			if _, ok := currency.Lookup(code); !ok {
				return statusMsg("unknown currency code " + code)
			}
		}
		draft.Currency = code
		draft.Tax = parseFloat(vals["tax"])
		draft.Discount = parseFloat(vals["discount"])
		draft.Notes = vals["notes"]
		if vals["due"] != "" {
			d, err := time.Parse("2006-01-02", vals["due"])
			if err != nil {
				return statusMsg("bad due date, use 2006-01-02")
			}
			draft.DueDate = d
		}
		line := model.LineItem{
			Description: vals["itemDesc"],
			Quantity:    parseFloat(vals["itemQty"]),
			Rate:        parseFloat(vals["itemRate"]),
			RateType:    item.RateType,
		}
		if len(draft.Items) > 0 {
			draft.Items[0] = line
		} else {
			draft.Items = []model.LineItem{line}
		}
		if draft.ID == 0 {
			if _, err := a.services.Invoices.Create(a.ctx, draft); err != nil {
				return errMsg{err}
			}
			return refreshMsg{status: "invoice created"}
		}
		if _, err := a.services.Invoices.Update(a.ctx, draft); err != nil {
			return errMsg{err}
		}
		return refreshMsg{status: "invoice updated"}
	})
}

func (a *App) openReminderForm(inv model.Invoice) {
	suggest := time.Now().Add(24 * time.Hour).Format("2006-01-02 15:04")
	fields := []formField{
		{Key: "at", Label: "Remind at (2006-01-02 15:04)", Value: suggest},
	}
	a.form = newFormScreen("Reminder for "+inv.InvoiceNumber, fields, func(vals map[string]string) tea.Msg {
		at, err := time.ParseInLocation("2006-01-02 15:04", vals["at"], time.Local)
		if err != nil {
			return statusMsg("bad time, use 2006-01-02 15:04")
		}
		if _, err := a.services.Reminders.Schedule(a.ctx, inv.ID, at); err != nil {
			return errMsg{err}
		}
		return refreshMsg{status: "reminder set"}
	})
}

func (a *App) openItemForm() {
	fields := []formField{
		{Key: "name", Label: "Name", Value: ""},
		{Key: "description", Label: "Description", Value: ""},
		{Key: "rate", Label: "Rate", Value: ""},
	}
	a.form = newFormScreen("New Predefined Item", fields, func(vals map[string]string) tea.Msg {
		if vals["description"] == "" {
			return statusMsg("description is required")
		}
		item := model.PredefinedItem{
			Name:        vals["name"],
			Description: vals["description"],
			Rate:        parseFloat(vals["rate"]),
		}
		if _, err := a.services.Items.Add(a.ctx, item); err != nil {
			return errMsg{err}
		}
		return refreshMsg{status: "item added"}
	})
}

func (a *App) openSettingsForm() {
	s := a.settings
	fields := []formField{
		{Key: "format", Label: "Number format (incremental/random)", Value: s.InvoiceNumberFormat},
		{Key: "prefix", Label: "Prefix", Value: s.InvoicePrefix},
		{Key: "next", Label: "Next number", Value: strconv.FormatInt(s.NextInvoiceNumber, 10)},
		{Key: "randomLength", Label: "Random length", Value: strconv.Itoa(s.RandomLength)},
		{Key: "firstName", Label: "First name", Value: s.FirstName},
		{Key: "lastName", Label: "Last name", Value: s.LastName},
		{Key: "dateFormat", Label: "Date format", Value: a.cfg.UI.DateFormat},
	}
	a.form = newFormScreen("Settings", fields, func(vals map[string]string) tea.Msg {
		format := vals["format"]
		if format != model.NumberFormatIncremental && format != model.NumberFormatRandom {
			return statusMsg("format must be incremental or random")
		}
		next, err := strconv.ParseInt(vals["next"], 10, 64)
		if err != nil || next < 1 {
			return statusMsg("next number must be a positive integer")
		}
		length, err := strconv.Atoi(vals["randomLength"])
		if err != nil || length < 1 {
			return statusMsg("random length must be a positive integer")
		}
		s.InvoiceNumberFormat = format
		s.InvoicePrefix = vals["prefix"]
		s.NextInvoiceNumber = next
		s.RandomLength = length
		s.FirstName = vals["firstName"]
		s.LastName = vals["lastName"]
		if err := a.services.Settings.Update(a.ctx, s); err != nil {
			return errMsg{err}
		}
		if df := vals["dateFormat"]; df != "" && df != a.cfg.UI.DateFormat {
			cfg := a.cfg
			cfg.UI.DateFormat = df
			if err := config.Save(cfg); err != nil {
				return errMsg{err}
			}
			return configSavedMsg{cfg: cfg}
		}
		return refreshMsg{status: "settings saved"}
	})
}

// view helpers

func (a *App) selectedClient() (model.Client, bool) {
	for _, c := range a.clients {
		if c.ID == a.selectedClientID {
			return c, true
		}
	}
	return model.Client{}, false
}

func (a *App) clientInvoices() []model.Invoice {
	if a.state != viewClientDetail {
		return a.invoices
	}
	var out []model.Invoice
	for _, inv := range a.invoices {
		if inv.ClientID == a.selectedClientID {
			out = append(out, inv)
		}
	}
	return out
}

func (a *App) selectedInvoice() (model.Invoice, bool) {
	list := a.clientInvoices()
	if a.invoiceCursor >= len(list) {
		return model.Invoice{}, false
	}
	return list[a.invoiceCursor], true
}

func nextStatus(s string) string {
	switch s {
	case model.StatusDraft:
		return model.StatusSent
	case model.StatusSent:
		return model.StatusPaid
	case model.StatusPaid:
		return model.StatusOverdue
	default:
		return model.StatusDraft
	}
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}

func formatFloat(f float64) string {
	if f == 0 {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// currencyCodes feeds the currency text inputs' suggestion list, in
// the registry's display order.
func currencyCodes() []string {
	all := currency.All()
	codes := make([]string, 0, len(all))
	for _, c := range all {
		codes = append(codes, c.Code)
	}
	return codes
}

func defaultsCurrency(d *model.ClientCustomDefaults) string {
	if d == nil {
		return ""
	}
	return d.DefaultCurrency
}

func defaultsFloat(d *model.ClientCustomDefaults, get func(*model.ClientCustomDefaults) float64) string {
	if d == nil {
		return ""
	}
	return formatFloat(get(d))
}

func (a *App) money(code string, v float64) string {
	return fmt.Sprintf("%s%.2f", currency.Symbol(code), v)
}

// messages

type clientsMsg []model.Client

type invoicesMsg []model.Invoice

type itemsMsg []model.PredefinedItem

type notificationsMsg []model.Notification

type settingsMsg model.AppSettings

type statusMsg string

type errMsg struct{ error }

// refreshMsg reloads every collection after a write. view, when set,
// switches the active view; resetCursors zeroes all list cursors. Both
// are applied in Update so command goroutines never touch App state.
type refreshMsg struct {
	status       string
	view         appState
	resetCursors bool
}

// configSavedMsg carries the updated config after a Save so Update can
// apply it on the program goroutine.
type configSavedMsg struct{ cfg config.Config }

// similarClientMsg opens the duplicate-name confirmation for a client
// that has not been created yet.
type similarClientMsg struct {
	client    model.Client
	similarTo string
}

// ReminderFiredMsg is sent into the program by the scheduler when a
// reminder timer fires.
type ReminderFiredMsg struct {
	NotificationID int64
}

// styles
var titleStyle = lipgloss.NewStyle().Bold(true).Underline(true)

var overdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

func (a *App) View() string {
	if a.form != nil {
		return a.form.View()
	}
	var body string
	switch a.state {
	case viewClients:
		body = a.renderClients()
	case viewClientDetail:
		body = a.renderClientDetail()
	case viewAnalytics:
		body = a.renderAnalytics()
	case viewSettings:
		body = a.renderSettings()
	default:
		body = a.renderDashboard()
	}
	if a.modal != modalNone {
		body += "\n\n" + a.renderModal()
	}
	return body
}

func (a *App) renderDashboard() string {
	title := titleStyle.Render("Invoicr Dashboard")
	name := strings.TrimSpace(a.settings.FirstName + " " + a.settings.LastName)
	if name != "" {
		title = titleStyle.Render("Invoicr Dashboard - " + name)
	}
	body := fmt.Sprintf("Clients: %d  Invoices: %d  Pending reminders: %d",
		len(a.clients), len(a.invoices), len(a.notifications))
	body += fmt.Sprintf("\nRevenue (paid): %s  Pending (sent): %s  Overdue: %s",
		a.money("", invoice.TotalRevenue(a.invoices)),
		a.money("", invoice.PendingAmount(a.invoices)),
		a.money("", invoice.OverdueAmount(a.invoices)))

	body += "\n\nRecent invoices:"
	count := 0
	for _, inv := range a.invoices {
		if count >= 5 {
			break
		}
		line := fmt.Sprintf("\n- %-12s %-24s %10s  %s", inv.InvoiceNumber, inv.ClientName, a.money(inv.Currency, inv.Amount), inv.Status)
		if inv.Status == model.StatusOverdue {
			line = overdueStyle.Render(line)
		}
		body += line
		count++
	}
	if count == 0 {
		body += "\n(none yet)"
	}
	body += "\n\n[c] Clients  [v] Analytics  [p] Settings  [q] Quit"
	if a.status != "" {
		body += "\n" + a.status
	}
	return fmt.Sprintf("%s\n%s", title, body)
}

func (a *App) renderClients() string {
	title := titleStyle.Render("Clients")
	out := title + "\n"
	if len(a.clients) == 0 {
		out += "(no clients yet)\n"
	}
	for i, c := range a.clients {
		marker := " "
		if i == a.clientCursor {
			marker = "▶"
		}
		out += fmt.Sprintf("%s %-28s %-28s %3d invoices  %12.2f\n", marker, c.Name, c.Email, c.InvoiceCount, c.TotalAmount)
	}
	out += "\n[enter] Open  [n] New client  [d] Dashboard  [v] Analytics  [p] Settings  [q] Quit"
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}

func (a *App) renderClientDetail() string {
	client, ok := a.selectedClient()
	if !ok {
		return "client not found\n[esc] Back"
	}
	title := titleStyle.Render(client.Name)
	out := title + "\n"
	out += fmt.Sprintf("%s  %s\n", client.Email, client.Address)
	out += fmt.Sprintf("Invoices: %d  Total billed: %.2f\n", client.InvoiceCount, client.TotalAmount)

	if d := client.CustomDefaults; d != nil && d.JumbotronRates.ShowJumbotron {
		out += a.renderJumbotron(d)
	}

	out += "\nInvoices:\n"
	list := a.clientInvoices()
	if len(list) == 0 {
		out += "(no invoices yet)\n"
	}
	for i, inv := range list {
		marker := " "
		if i == a.invoiceCursor {
			marker = "▶"
		}
		due := ""
		if !inv.DueDate.IsZero() {
			due = "due " + inv.DueDate.Format(a.dateFormat)
		}
		line := fmt.Sprintf("%s %-12s %10s  %-8s %s", marker, inv.InvoiceNumber, a.money(inv.Currency, inv.Amount), inv.Status, due)
		if inv.Status == model.StatusOverdue {
			line = overdueStyle.Render(line)
		}
		out += line + "\n"
	}
	out += "\n[n] New invoice  [enter] Edit  [s] Cycle status  [a] Add item  [m] Reminder  [x] Delete invoice"
	out += "\n[e] Edit client  [del] Delete client  [esc] Back  [q] Quit"
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}

func (a *App) renderJumbotron(d *model.ClientCustomDefaults) string {
	r := d.RateStructure
	labels := d.JumbotronRates
	label := func(s, fallback string) string {
		if s != "" {
			return s
		}
		return fallback
	}
	sym := currency.Symbol(d.DefaultCurrency)
	block := fmt.Sprintf("%s %s%.2f  %s %s%.2f  %s %s%.2f  %s %s%.2f",
		label(labels.MonthlyLabel, "Monthly"), sym, r.Monthly,
		label(labels.DailyLabel, "Daily"), sym, r.Daily,
		label(labels.FridayLabel, "Friday"), sym, r.Friday,
		label(labels.HourlyLabel, "Hourly"), sym, r.Hourly)
	return "\n" + lipgloss.NewStyle().Bold(true).Render("Rates: "+block) + "\n"
}

func (a *App) renderAnalytics() string {
	title := titleStyle.Render("Analytics")
	now := time.Now().UTC()

	var chart barChart
	if a.analyticsYearly {
		chart = barChart{Title: "Revenue by year", Data: invoice.YearlyBuckets(a.invoices, now)}
	} else {
		chart = barChart{Title: "Revenue by month", Data: invoice.MonthlyBuckets(a.invoices, now)}
	}

	out := title + "\n"
	out += fmt.Sprintf("Total revenue: %.2f  Pending: %.2f  Overdue: %.2f\n\n",
		invoice.TotalRevenue(a.invoices), invoice.PendingAmount(a.invoices), invoice.OverdueAmount(a.invoices))
	out += chart.Render(a.width) + "\n"
	out += "\n[y] Toggle monthly/yearly  [d] Dashboard  [c] Clients  [p] Settings  [q] Quit"
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}

func (a *App) renderSettings() string {
	title := titleStyle.Render("Settings")
	out := title + "\n"
	s := a.settings
	out += fmt.Sprintf("Number format: %s  Prefix: %q  Next: %d  Random length: %d\n",
		s.InvoiceNumberFormat, s.InvoicePrefix, s.NextInvoiceNumber, s.RandomLength)
	out += fmt.Sprintf("Name on invoices: %s %s\n", s.FirstName, s.LastName)
	out += "\n[e] Edit settings  [i] Toggle predefined items  [b] Export backup  [x] Reset all data\n"

	if a.settingsShowItems {
		out += "\nPredefined items:\n"
		if len(a.items) == 0 {
			out += "  (none yet)\n"
		}
		for i, item := range a.items {
			marker := " "
			if i == a.itemCursor {
				marker = "▶"
			}
			out += fmt.Sprintf("%s %-28s %10.2f\n", marker, item.Description, item.Rate)
		}
		out += "[n] New item  [x] Delete item\n"
	}

	out += "\n[d] Dashboard  [c] Clients  [v] Analytics  [q] Quit"
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}

func (a *App) renderModal() string {
	switch a.modal {
	case modalConfirmReset:
		return titleStyle.Render("Reset all data?") + "\nClients, invoices, items, reminders and settings will be deleted.\n[y] Yes  [n] No"
	case modalDeleteInvoice:
		return titleStyle.Render("Delete invoice?") + "\n[y] Yes  [n] No"
	case modalDeleteClient:
		return titleStyle.Render("Delete client?") + "\nAll of this client's invoices will be deleted too.\n[y] Yes  [n] No"
	case modalSimilarClient:
		return titleStyle.Render("Possible duplicate") + fmt.Sprintf("\nA client named %q already exists. Create anyway?\n[y] Yes  [n] No", a.similarTo)
	case modalItemPicker:
		out := titleStyle.Render("Add predefined item") + "\n"
		for i, item := range a.items {
			marker := " "
			if i == a.itemCursor {
				marker = "▶"
			}
			out += fmt.Sprintf("%s %-28s %10.2f\n", marker, item.Description, item.Rate)
		}
		out += "[enter] Add  [esc] Cancel"
		return out
	default:
		return ""
	}
}
