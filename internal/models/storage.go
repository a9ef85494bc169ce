package models

import (
	"time"

	"github.com/google/uuid"
)

// Note is a block of training notes that can be appended to a plan.
// Source identifies where the note was imported from and is unique.
type Note struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Source    string    `json:"source"`
	Hash      string    `json:"hash"`
	Body      string    `json:"body,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
