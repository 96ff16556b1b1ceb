package models

type Work struct {
	ID           int64   `json:"id" db:"id"`
	Title        string  `json:"title" db:"title"`
	Description  string  `json:"description" db:"description"`
	DateAssigned string  `json:"date_assigned" db:"date_assigned"`
	DueDate      *string `json:"due_date" db:"due_date"`
	Status       string  `json:"status" db:"status"`
}

type WorkStatus string

const (
	WorkStatusAssigned  WorkStatus = "assigned"
	WorkStatusCompleted WorkStatus = "completed"
)

func (ws WorkStatus) String() string {
	return string(ws)
}
