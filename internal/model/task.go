package model

import "time"

// Priority ranks how urgent a task is.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// Valid reports whether p is one of the known priority levels.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task represents a single item on a user's list. CategoryID is a soft
// reference: it is not required to resolve to an existing category, and
// deleting a category leaves its tasks untouched.
type Task struct {
	ID          string     `gorm:"primaryKey" json:"id"`
	UserID      string     `gorm:"index" json:"-"`
	CategoryID  string     `gorm:"index" json:"categoryId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Priority    Priority   `gorm:"default:MEDIUM" json:"priority"`
	Completed   bool       `gorm:"default:false" json:"completed"`
	Notes       string     `json:"notes"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
