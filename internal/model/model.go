package model

import "time"

// Invoice status values. Status is set by the user; nothing derives it
// from due dates.
const (
	StatusDraft   = "draft"
	StatusSent    = "sent"
	StatusPaid    = "paid"
	StatusOverdue = "overdue"
)

// Rate type tags for line items and predefined items.
const (
	RateMonthly         = "monthly"
	RateDaily           = "daily"
	RateFriday          = "friday"
	RateHourly          = "hourly"
	RateOvertimeWeekday = "overtimeWeekday"
	RateOvertimeWeekend = "overtimeWeekend"
	RateCustom          = "custom"
)

// LineItem is one billable row on an invoice. Amount is always
// quantity * rate; it is recomputed on every write path, never edited
// directly.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Rate        float64 `json:"rate"`
	Amount      float64 `json:"amount"`
	RateType    string  `json:"rateType,omitempty"`
}

// Invoice is the stored invoice record. Amount is the denormalized
// final total (subtotal + tax - discount); every save goes through
// invoice.Recompute so it cannot drift from Items.
type Invoice struct {
	ID            int64      `json:"id"`
	InvoiceNumber string     `json:"invoiceNumber"`
	ClientID      int64      `json:"clientId"`
	ClientName    string     `json:"clientName"`
	ClientEmail   string     `json:"clientEmail"`
	Amount        float64    `json:"amount"`
	Description   string     `json:"description"`
	Details       string     `json:"details,omitempty"`
	DueDate       time.Time  `json:"dueDate"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`
	Items         []LineItem `json:"items"`
	Notes         string     `json:"notes,omitempty"`
	Tax           float64    `json:"tax,omitempty"`
	Discount      float64    `json:"discount,omitempty"`
	Currency      string     `json:"currency"`
	ShowJumbotron bool       `json:"showRateJumbotron,omitempty"`
}

// RateStructure is a client's named set of billing rates used to
// prefill invoice items.
type RateStructure struct {
	Monthly         float64 `json:"monthly"`
	Daily           float64 `json:"daily"`
	Friday          float64 `json:"friday"`
	Hourly          float64 `json:"hourly"`
	OvertimeWeekday float64 `json:"overtimeWeekday"`
	OvertimeWeekend float64 `json:"overtimeWeekend"`
}

// TableHeaders are the column labels printed on a client's invoices.
type TableHeaders struct {
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	Rate        string `json:"rate"`
	Amount      string `json:"amount"`
}

// JumbotronRates controls the prominent rate block shown on the client
// page and printed invoices.
type JumbotronRates struct {
	ShowJumbotron bool   `json:"showJumbotron"`
	MonthlyLabel  string `json:"monthlyLabel"`
	DailyLabel    string `json:"dailyLabel"`
	FridayLabel   string `json:"fridayLabel"`
	HourlyLabel   string `json:"hourlyLabel"`
}

// DefaultItem is a template line item attached to a client's defaults.
type DefaultItem struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Rate        float64 `json:"rate"`
	RateType    string  `json:"rateType"`
	Category    string  `json:"category,omitempty"`
}

// ClientCustomDefaults is the template applied when creating new
// invoices for a client.
type ClientCustomDefaults struct {
	TableHeaders    TableHeaders   `json:"tableHeaders"`
	RateStructure   RateStructure  `json:"rateStructure"`
	JumbotronRates  JumbotronRates `json:"jumbotronRates"`
	DefaultItems    []DefaultItem  `json:"defaultItems"`
	DefaultCurrency string         `json:"defaultCurrency"`
	DefaultTax      float64        `json:"defaultTax"`
	DefaultDiscount float64        `json:"defaultDiscount"`
	DefaultNotes    string         `json:"defaultNotes"`
}

// Client is a billing counterparty. InvoiceCount and TotalAmount are
// derived views over the invoice collection, recomputed on read; the
// invoice collection is the source of truth.
type Client struct {
	ID             int64                 `json:"id"`
	Name           string                `json:"name"`
	Email          string                `json:"email"`
	Address        string                `json:"address,omitempty"`
	InvoiceCount   int                   `json:"invoiceCount"`
	TotalAmount    float64               `json:"totalAmount"`
	CustomDefaults *ClientCustomDefaults `json:"customDefaults,omitempty"`
}

// PredefinedItem is a reusable named line item offered in the invoice
// form.
type PredefinedItem struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Rate        float64 `json:"rate"`
	Category    string  `json:"category,omitempty"`
}

// Notification is a scheduled invoice reminder. Records are never
// mutated; the cleanup sweep removes them once the reminder date has
// passed.
type Notification struct {
	ID           int64     `json:"id"`
	InvoiceID    int64     `json:"invoiceId"`
	ReminderDate time.Time `json:"reminderDate"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Invoice number formats.
const (
	NumberFormatIncremental = "incremental"
	NumberFormatRandom      = "random"
)

// AppSettings is the single process-wide settings record.
type AppSettings struct {
	InvoiceNumberFormat string `json:"invoiceNumberFormat"`
	InvoicePrefix       string `json:"invoicePrefix"`
	NextInvoiceNumber   int64  `json:"nextInvoiceNumber"`
	RandomLength        int    `json:"randomLength"`
	FirstName           string `json:"firstName"`
	LastName            string `json:"lastName"`
}

// DefaultSettings returns the settings used when none are persisted.
func DefaultSettings() AppSettings {
	return AppSettings{
		InvoiceNumberFormat: NumberFormatIncremental,
		InvoicePrefix:       "INV-",
		NextInvoiceNumber:   1,
		RandomLength:        6,
	}
}
