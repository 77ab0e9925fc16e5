package api

import (
	"encoding/json"
	"time"
)

// Identity is the public profile of a signed-in administrator as the server
// reports it.
type Identity struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Tractor is a catalog listing. The condition is implied by the catalog it
// was fetched from.
type Tractor struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Photo       string  `json:"photo"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

// AuditRecord is one entry of the activity feed.
type AuditRecord struct {
	ID        string          `json:"id"`
	Action    string          `json:"action"`
	Entity    string          `json:"entity"`
	Meta      json.RawMessage `json:"meta,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UserEmail string          `json:"userEmail"`
}

// AuditPage is a slice of the audit feed plus the total number of records.
type AuditPage struct {
	Items []AuditRecord `json:"items"`
	Total int64         `json:"total"`
}

// UserPage is a slice of the user directory plus pagination facts.
type UserPage struct {
	Items      []Identity `json:"items"`
	Pagination struct {
		Total int64 `json:"total"`
		Pages int64 `json:"pages"`
	} `json:"pagination"`
}
