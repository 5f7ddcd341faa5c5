package model

// Item is the domain model for a todo entry.
// ID is assigned by the store; Text is always trimmed and non-empty.
type Item struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}
