package models

import "time"

// MaxMemoContentLength bounds memo content, counted in characters.
const MaxMemoContentLength = 5000

// Memo is a free-form local note. The first line is its title.
type Memo struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
