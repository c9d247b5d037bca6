package checkpoint

import "time"

type Status string

const (
	StatusNew     Status = "new"
	StatusRunning Status = "running"
	StatusDone    Status = "done"
	StatusFailed  Status = "failed"
)

// Key identifies one crawl unit.
type Key struct {
	Provider string
	Endpoint string
	LeagueID int64
	Season   int
}

// Checkpoint is the durable progress cursor for one unit. TotalPages
// stays nil until the provider declares a total. Meta carries free-form
// context about the most recent attempt (last status, error, reason).
type Checkpoint struct {
	Key
	LastPageDone int
	TotalPages   *int
	Status       Status
	Meta         map[string]any
	UpdatedAt    time.Time
}

// Default is the synthetic state for a unit that was never attempted.
// Absence of a row is a normal initial condition, not a fault.
func Default(key Key) Checkpoint {
	return Checkpoint{
		Key:    key,
		Status: StatusNew,
		Meta:   map[string]any{},
	}
}
