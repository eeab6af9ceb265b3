package entity

import "time"

// Status is the raw review status of a bill as stored.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRefused  Status = "refused"
)

// AllStatuses lists every status bucket shown on the dashboard, in display order.
var AllStatuses = []Status{StatusPending, StatusAccepted, StatusRefused}

// Bill represents an expense-report line item submitted by an employee.
type Bill struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email"`
	Name               string    `json:"name"`
	Type               string    `json:"type"`
	Amount             float64   `json:"amount"`
	Date               string    `json:"date"`
	VAT                string    `json:"vat"`
	PCT                int       `json:"pct"`
	Status             Status    `json:"status"`
	CommentaryEmployee string    `json:"commentary,omitempty"`
	CommentAdmin       string    `json:"commentAdmin,omitempty"`
	FileURL            string    `json:"fileUrl,omitempty"`
	FileName           string    `json:"fileName,omitempty"`
	CreatedAt          time.Time `json:"-"`
}

// BillView is a Bill prepared for display: the date becomes a short localized
// string when formatting succeeds (raw date otherwise) and the status becomes
// its localized label.
type BillView struct {
	Bill
	Date   string `json:"date"`
	Status string `json:"status"`
}
