package model

import "time"

// ProjectStatus is the campaign lifecycle, transitioned externally.
// Aggregation keeps working regardless of the value.
type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectCompleted ProjectStatus = "completed"
	ProjectCancelled ProjectStatus = "cancelled"
)

// Valid reports whether s is a known project status.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectActive, ProjectCompleted, ProjectCancelled:
		return true
	}
	return false
}

// Project is a campaign receiving Help/Stop donations. Budget is fixed
// at creation and never mutated by donation activity.
type Project struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	OwnerName   string        `json:"owner_name"`
	Cellphone   string        `json:"cellphone"`
	Category    string        `json:"category"`
	Budget      Money         `json:"budget"`
	StartDate   time.Time     `json:"start_date"`
	EndDate     time.Time     `json:"end_date"`
	Status      ProjectStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`

	// Transient: sum of paid donations, set on reads, never stored.
	CurrentAmount Money `json:"current_amount"`
}
