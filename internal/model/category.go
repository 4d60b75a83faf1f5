package model

import "time"

// Category groups tasks by area (work, health, study, etc.).
type Category struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"index" json:"-"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
}

// CategorySummary is the slim shape embedded into task responses.
type CategorySummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Summary returns the embeddable view of the category.
func (c Category) Summary() CategorySummary {
	return CategorySummary{ID: c.ID, Name: c.Name, Color: c.Color}
}
