package tui

import (
	"context"
	"testing"

	"invoicr/internal/config"
	"invoicr/internal/model"
)

func TestRefreshMsgAppliesViewAndCursors(t *testing.T) {
	a := New(context.Background(), config.Config{}, Services{})
	a.state = viewClientDetail
	a.clientCursor, a.invoiceCursor, a.itemCursor = 3, 2, 1

	got, _ := a.Update(refreshMsg{status: "client deleted", view: viewClients, resetCursors: true})
	app := got.(*App)
	if app.state != viewClients {
		t.Fatalf("state = %s, want %s", app.state, viewClients)
	}
	if app.clientCursor != 0 || app.invoiceCursor != 0 || app.itemCursor != 0 {
		t.Fatalf("cursors = %d/%d/%d, want all zero", app.clientCursor, app.invoiceCursor, app.itemCursor)
	}
	if app.status != "client deleted" {
		t.Fatalf("status = %q", app.status)
	}
}

func TestRefreshMsgWithoutViewKeepsState(t *testing.T) {
	a := New(context.Background(), config.Config{}, Services{})
	a.state = viewSettings
	a.clientCursor = 2

	got, _ := a.Update(refreshMsg{status: "item added"})
	app := got.(*App)
	if app.state != viewSettings {
		t.Fatalf("state = %s, want %s unchanged", app.state, viewSettings)
	}
	if app.clientCursor != 2 {
		t.Fatalf("clientCursor = %d, want untouched", app.clientCursor)
	}
}

func TestConfigSavedMsgAppliesDateFormat(t *testing.T) {
	a := New(context.Background(), config.Config{UI: config.UIConfig{DateFormat: "02 Jan 2006"}}, Services{})

	cfg := a.cfg
	cfg.UI.DateFormat = "2006-01-02"
	got, _ := a.Update(configSavedMsg{cfg: cfg})
	app := got.(*App)
	if app.dateFormat != "2006-01-02" {
		t.Fatalf("dateFormat = %q, want 2006-01-02", app.dateFormat)
	}
	if app.cfg.UI.DateFormat != "2006-01-02" {
		t.Fatalf("cfg.UI.DateFormat = %q", app.cfg.UI.DateFormat)
	}
}

func TestNextStatusCycle(t *testing.T) {
	tests := []struct{ in, want string }{
		{model.StatusDraft, model.StatusSent},
		{model.StatusSent, model.StatusPaid},
		{model.StatusPaid, model.StatusOverdue},
		{model.StatusOverdue, model.StatusDraft},
		{"", model.StatusDraft},
	}
	for _, tc := range tests {
		if got := nextStatus(tc.in); got != tc.want {
			t.Fatalf("nextStatus(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCurrencyCodesStartWithPHP(t *testing.T) {
	codes := currencyCodes()
	if len(codes) == 0 || codes[0] != "PHP" {
		t.Fatalf("currencyCodes() = %v..., want PHP first", codes[:min(3, len(codes))])
	}
}
