package postgres

import "time"

type fixtureUpsertModel struct {
	FixtureID   int64     `db:"fixture_id"`
	LeagueID    int64     `db:"league_id"`
	Season      int       `db:"season"`
	Round       *string   `db:"round"`
	KickoffUTC  time.Time `db:"kickoff_utc"`
	Timezone    *string   `db:"timezone"`
	VenueName   *string   `db:"venue_name"`
	VenueCity   *string   `db:"venue_city"`
	HomeTeamID  int64     `db:"home_team_id"`
	AwayTeamID  int64     `db:"away_team_id"`
	StatusLong  *string   `db:"status_long"`
	StatusShort *string   `db:"status_short"`
	ElapsedMin  *int      `db:"elapsed_min"`
	GoalsHome   *int      `db:"goals_home"`
	GoalsAway   *int      `db:"goals_away"`
	IsFinished  bool      `db:"is_finished"`
	IsCancelled bool      `db:"is_cancelled"`
	UpdatedAt   time.Time `db:"updated_at"`
}

var fixtureColumns = []string{
	"fixture_id", "league_id", "season", "round", "kickoff_utc", "timezone",
	"venue_name", "venue_city", "home_team_id", "away_team_id", "status_long",
	"status_short", "elapsed_min", "goals_home", "goals_away", "is_finished",
	"is_cancelled", "updated_at",
}
