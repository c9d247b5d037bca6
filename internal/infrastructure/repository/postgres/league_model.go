package postgres

import "time"

type leagueUpsertModel struct {
	LeagueID    int64     `db:"league_id"`
	Name        string    `db:"name"`
	Type        *string   `db:"type"`
	CountryName *string   `db:"country_name"`
	CountryCode *string   `db:"country_code"`
	LogoURL     *string   `db:"logo_url"`
	FlagURL     *string   `db:"flag_url"`
	IsActive    bool      `db:"is_active"`
	UpdatedAt   time.Time `db:"updated_at"`
}

var leagueColumns = []string{
	"league_id", "name", "type", "country_name", "country_code",
	"logo_url", "flag_url", "is_active", "updated_at",
}
