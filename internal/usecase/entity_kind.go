package usecase

import "fmt"

// EntityKind is the closed set of supported normalized targets. An
// endpoint id resolves to a kind when the plan is built, so a typo in a
// plan file fails loudly instead of falling through to a no-op.
type EntityKind string

const (
	EntityLeagues  EntityKind = "leagues"
	EntityTeams    EntityKind = "teams"
	EntityFixtures EntityKind = "fixtures"
)

func ResolveEntityKind(endpointID string) (EntityKind, error) {
	switch EntityKind(endpointID) {
	case EntityLeagues:
		return EntityLeagues, nil
	case EntityTeams:
		return EntityTeams, nil
	case EntityFixtures:
		return EntityFixtures, nil
	default:
		return "", fmt.Errorf("%w: endpoint id %q", ErrUnknownEntityKind, endpointID)
	}
}
