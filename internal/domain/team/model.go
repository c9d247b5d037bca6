package team

import "time"

// Team is a normalized club row keyed by the provider's id.
type Team struct {
	TeamID        int64
	Name          string
	Code          *string
	CountryName   *string
	FoundedYear   *int
	IsNational    bool
	LogoURL       *string
	VenueID       *int64
	VenueName     *string
	VenueCity     *string
	VenueCapacity *int
	UpdatedAt     time.Time
}
