package postgres

import "time"

type teamUpsertModel struct {
	TeamID        int64     `db:"team_id"`
	Name          string    `db:"name"`
	Code          *string   `db:"code"`
	CountryName   *string   `db:"country_name"`
	FoundedYear   *int      `db:"founded_year"`
	IsNational    bool      `db:"is_national"`
	LogoURL       *string   `db:"logo_url"`
	VenueID       *int64    `db:"venue_id"`
	VenueName     *string   `db:"venue_name"`
	VenueCity     *string   `db:"venue_city"`
	VenueCapacity *int      `db:"venue_capacity"`
	UpdatedAt     time.Time `db:"updated_at"`
}

var teamColumns = []string{
	"team_id", "name", "code", "country_name", "founded_year", "is_national",
	"logo_url", "venue_id", "venue_name", "venue_city", "venue_capacity",
	"updated_at",
}
