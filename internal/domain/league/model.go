package league

import "time"

// League is a normalized competition row keyed by the provider's id.
// Optional columns are pointers so an upsert can carry explicit nulls.
type League struct {
	LeagueID    int64
	Name        string
	Type        *string
	CountryName *string
	CountryCode *string
	LogoURL     *string
	FlagURL     *string
	IsActive    bool
	UpdatedAt   time.Time
}
