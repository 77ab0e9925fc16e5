package models

import "time"

// Condition partitions the inventory into the two catalog tables the console
// shows: factory-new and used machines.
type Condition string

const (
	ConditionNew  Condition = "new"
	ConditionUsed Condition = "used"
)

// Valid reports whether c is one of the two known inventory conditions.
func (c Condition) Valid() bool {
	return c == ConditionNew || c == ConditionUsed
}

// Tractor is an inventory row. Photo holds the object-storage URL of the
// listing image; the server never stores image bytes itself.
type Tractor struct {
	ID          int64     `json:"id"`
	Condition   Condition `json:"condition"`
	Name        string    `json:"name"`
	Photo       string    `json:"photo"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TractorPatch carries a partial update; nil fields are left untouched.
type TractorPatch struct {
	Name        *string  `json:"name"`
	Photo       *string  `json:"photo"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Quantity    *int     `json:"quantity"`
}
