package domain

import "time"

// Program is a listed site offering grouped by category.
type Program struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Order       int       `json:"order"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Query parameters accepted by the program list endpoint.
var ProgramOrderings = map[string]struct{}{
	"order":      {},
	"created_at": {},
	"title":      {},
}
