package postgres

import "time"

type checkpointInsertModel struct {
	Provider     string    `db:"provider"`
	Endpoint     string    `db:"endpoint"`
	LeagueID     int64     `db:"league_id"`
	Season       int       `db:"season"`
	LastPageDone int       `db:"last_page_done"`
	TotalPages   *int      `db:"total_pages"`
	Status       string    `db:"status"`
	Meta         []byte    `db:"meta"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type checkpointTableModel struct {
	Provider     string    `db:"provider"`
	Endpoint     string    `db:"endpoint"`
	LeagueID     int64     `db:"league_id"`
	Season       int       `db:"season"`
	LastPageDone int       `db:"last_page_done"`
	TotalPages   *int      `db:"total_pages"`
	Status       string    `db:"status"`
	Meta         []byte    `db:"meta"`
	UpdatedAt    time.Time `db:"updated_at"`
}
