package fixture

import "time"

// Fixture is a normalized match row keyed by the provider's id. It
// references leagues and teams by natural id only; there is no
// foreign-key ordering between entity kinds.
type Fixture struct {
	FixtureID   int64
	LeagueID    int64
	Season      int
	Round       *string
	KickoffUTC  time.Time
	Timezone    *string
	VenueName   *string
	VenueCity   *string
	HomeTeamID  int64
	AwayTeamID  int64
	StatusLong  *string
	StatusShort *string
	ElapsedMin  *int
	GoalsHome   *int
	GoalsAway   *int
	IsFinished  bool
	IsCancelled bool
	UpdatedAt   time.Time
}
