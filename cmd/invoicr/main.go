package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"invoicr/internal/config"
	"invoicr/internal/logger"
	"invoicr/internal/scheduler"
	"invoicr/internal/service"
	"invoicr/internal/storage"
	"invoicr/internal/testdata"
	"invoicr/internal/tui"
)

func main() {
	seed := flag.Bool("seed", false, "seed sample clients and invoices, then exit")
	exportPath := flag.String("export", "", "export all data to the given JSON file, then exit")
	importPath := flag.String("import", "", "import data from the given JSON file, then exit")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Log.File), 0o755); err != nil {
		log.Fatalf("mkdir log dir: %v", err)
	}
	if err := logger.Setup(cfg.Log.Level, cfg.Log.File); err != nil {
		log.Fatalf("logger: %v", err)
	}

	store, err := storage.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer store.Close()

	// services
	settings := service.NewSettingsService(store)
	clients := &service.ClientService{Store: store}
	invoices := &service.InvoiceService{Store: store, Settings: settings, Log: logger.WithComponent("invoices")}
	items := &service.PredefinedItemService{Store: store}
	maintenance := &service.MaintenanceService{Store: store}
	remLog := logger.WithComponent("reminders")
	reminders := &service.ReminderService{Store: store, Log: remLog}

	switch {
	case *seed:
		err := testdata.Seed(ctx, testdata.Services{Clients: clients, Invoices: invoices, Items: items})
		if err != nil {
			log.Fatalf("seed: %v", err)
		}
		fmt.Println("sample data created")
		return
	case *exportPath != "":
		if _, err := maintenance.Export(ctx, *exportPath); err != nil {
			log.Fatalf("export: %v", err)
		}
		fmt.Println("exported to", *exportPath)
		return
	case *importPath != "":
		if err := maintenance.Import(ctx, *importPath); err != nil {
			log.Fatalf("import: %v", err)
		}
		fmt.Println("imported from", *importPath)
		return
	}

	if removed, err := reminders.CleanupExpired(ctx, time.Now()); err != nil {
		log.Printf("warn: reminder cleanup: %v", err)
	} else if removed > 0 {
		remLog.Info().Int("removed", removed).Msg("expired reminders swept")
	}

	app := tui.New(ctx, cfg, tui.Services{
		Clients:     clients,
		Invoices:    invoices,
		Items:       items,
		Settings:    settings,
		Reminders:   reminders,
		Maintenance: maintenance,
	})
	p := tea.NewProgram(app, tea.WithAltScreen())

	// Reminder timers post back into the running program.
	sched := scheduler.NewTimerScheduler(func(id int64) {
		p.Send(tui.ReminderFiredMsg{NotificationID: id})
	})
	defer sched.Stop()
	reminders.Sched = sched
	if err := reminders.RestorePending(ctx); err != nil {
		log.Printf("warn: restore reminders: %v", err)
	}

	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}
