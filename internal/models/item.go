package models

import "time"

// Status is the approval workflow state of an item.
type Status string

const (
	StatusPending         Status = "PENDING"
	StatusApproved        Status = "APPROVED"
	StatusRejected        Status = "REJECTED"
	StatusTransferPending Status = "TRANSFER_PENDING"
	StatusWriteOffPending Status = "WRITE_OFF_PENDING"
	StatusWrittenOff      Status = "WRITTEN_OFF"
)

// Pending reports whether the status counts towards the pending metrics.
func (s Status) Pending() bool {
	return s == StatusPending || s == StatusWriteOffPending || s == StatusTransferPending
}

// Item represents a fixed-asset record as returned by the listing API.
// Optional fields are pointers so an absent value stays distinct from an
// explicit zero.
type Item struct {
	ID               int        `json:"id"`
	Description      string     `json:"description"`
	FixedAssetNumber string     `json:"fixed_asset_number,omitempty"`
	SerialNumber     string     `json:"serial_number,omitempty"`
	BranchID         int        `json:"branch_id"`
	Branch           *Branch    `json:"branch,omitempty"`
	Category         string     `json:"category,omitempty"` // legacy free-text classification
	CategoryRel      *Category  `json:"category_rel,omitempty"`
	Status           Status     `json:"status"`
	InvoiceValue     float64    `json:"invoice_value"`
	AccountingValue  *float64   `json:"accounting_value,omitempty"`
	PurchaseDate     *time.Time `json:"purchase_date,omitempty"`
	CreatedAt        *time.Time `json:"created_at,omitempty"`
}

// BookValue returns the current accounting value, treating absent as 0.
func (i Item) BookValue() float64 {
	if i.AccountingValue == nil {
		return 0
	}
	return *i.AccountingValue
}

// FullyDepreciated reports whether the accounting value is explicitly zero.
// An absent value does not qualify.
func (i Item) FullyDepreciated() bool {
	return i.AccountingValue != nil && *i.AccountingValue == 0
}

// CategoryID resolves the canonical category identity: the relational
// category id when present. Legacy free-text categories carry no id.
func (i Item) CategoryID() (int, bool) {
	if i.CategoryRel != nil {
		return i.CategoryRel.ID, true
	}
	return 0, false
}

// CategoryName resolves the category display name, preferring the
// relational record over the legacy free-text field.
func (i Item) CategoryName() string {
	if i.CategoryRel != nil && i.CategoryRel.Name != "" {
		return i.CategoryRel.Name
	}
	return i.Category
}

// BranchName returns the denormalized branch name, or "" when unresolved.
func (i Item) BranchName() string {
	if i.Branch != nil {
		return i.Branch.Name
	}
	return ""
}
