package apifootball

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/gcamargo/footdata/internal/domain/fixture"
	"github.com/gcamargo/footdata/internal/domain/league"
	"github.com/gcamargo/footdata/internal/domain/team"
)

var finishedStatuses = map[string]struct{}{
	"FT":  {},
	"AET": {},
	"PEN": {},
}

var cancelledStatuses = map[string]struct{}{
	"CANC": {},
	"PST":  {},
}

// ResponseItems returns the object entries of the payload's response
// array. Non-object entries are skipped, never reported.
func ResponseItems(payload map[string]any) []map[string]any {
	raw, ok := payload["response"].([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(raw))
	for _, entry := range raw {
		item, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, item)
	}
	return out
}

// HasProviderErrors reports whether the body carries a non-empty
// provider errors object. An empty object or array counts as clean.
func HasProviderErrors(payload map[string]any) bool {
	switch errs := payload["errors"].(type) {
	case map[string]any:
		return len(errs) > 0
	case []any:
		return len(errs) > 0
	case nil:
		return false
	default:
		// Scalar errors value, e.g. a bare string.
		return true
	}
}

// TotalPages reads the provider's declared page count. nil means the
// payload carries no paging metadata and the endpoint is unpaginated.
func TotalPages(payload map[string]any) *int {
	paging, ok := payload["paging"].(map[string]any)
	if !ok {
		return nil
	}
	total, ok := toInt64(paging["total"])
	if !ok {
		return nil
	}
	v := int(total)
	return &v
}

// ParseLeague maps one leagues item. ok=false rejects the item without
// touching its siblings.
func ParseLeague(item map[string]any) (league.League, bool) {
	leagueObj := getMap(item, "league")
	id, idOK := toInt64(leagueObj["id"])
	name := getString(leagueObj, "name")
	if !idOK || id <= 0 || name == "" {
		return league.League{}, false
	}

	country := getMap(item, "country")
	return league.League{
		LeagueID:    id,
		Name:        name,
		Type:        optString(leagueObj, "type"),
		CountryName: optString(country, "name"),
		CountryCode: optString(country, "code"),
		LogoURL:     optString(leagueObj, "logo"),
		FlagURL:     optString(country, "flag"),
		IsActive:    true,
	}, true
}

// ParseTeam maps one teams item.
func ParseTeam(item map[string]any) (team.Team, bool) {
	teamObj := getMap(item, "team")
	id, idOK := toInt64(teamObj["id"])
	name := getString(teamObj, "name")
	if !idOK || id <= 0 || name == "" {
		return team.Team{}, false
	}

	venue := getMap(item, "venue")
	return team.Team{
		TeamID:        id,
		Name:          name,
		Code:          optString(teamObj, "code"),
		CountryName:   optString(teamObj, "country"),
		FoundedYear:   optInt(teamObj, "founded"),
		IsNational:    getBool(teamObj, "national"),
		LogoURL:       optString(teamObj, "logo"),
		VenueID:       optInt64(venue, "id"),
		VenueName:     optString(venue, "name"),
		VenueCity:     optString(venue, "city"),
		VenueCapacity: optInt(venue, "capacity"),
	}, true
}

// ParseFixture maps one fixtures item. Requires fixture id, league id,
// season, both team ids and a parseable kickoff timestamp.
func ParseFixture(item map[string]any) (fixture.Fixture, bool) {
	fixtureObj := getMap(item, "fixture")
	id, idOK := toInt64(fixtureObj["id"])
	if !idOK || id <= 0 {
		return fixture.Fixture{}, false
	}

	leagueObj := getMap(item, "league")
	leagueID, leagueOK := toInt64(leagueObj["id"])
	season, seasonOK := toInt64(leagueObj["season"])
	if !leagueOK || leagueID <= 0 || !seasonOK || season <= 0 {
		return fixture.Fixture{}, false
	}

	teams := getMap(item, "teams")
	homeID, homeOK := toInt64(getMap(teams, "home")["id"])
	awayID, awayOK := toInt64(getMap(teams, "away")["id"])
	if !homeOK || homeID <= 0 || !awayOK || awayID <= 0 {
		return fixture.Fixture{}, false
	}

	kickoff, kickoffOK := ParseKickoff(getString(fixtureObj, "date"))
	if !kickoffOK {
		return fixture.Fixture{}, false
	}

	status := getMap(fixtureObj, "status")
	statusShort := getString(status, "short")
	goals := getMap(item, "goals")
	venue := getMap(fixtureObj, "venue")

	_, isFinished := finishedStatuses[statusShort]
	_, isCancelled := cancelledStatuses[statusShort]

	return fixture.Fixture{
		FixtureID:   id,
		LeagueID:    leagueID,
		Season:      int(season),
		Round:       optString(leagueObj, "round"),
		KickoffUTC:  kickoff,
		Timezone:    optString(fixtureObj, "timezone"),
		VenueName:   optString(venue, "name"),
		VenueCity:   optString(venue, "city"),
		HomeTeamID:  homeID,
		AwayTeamID:  awayID,
		StatusLong:  optString(status, "long"),
		StatusShort: optString(status, "short"),
		ElapsedMin:  optInt(status, "elapsed"),
		GoalsHome:   optInt(goals, "home"),
		GoalsAway:   optInt(goals, "away"),
		IsFinished:  isFinished,
		IsCancelled: isCancelled,
	}, true
}

// ParseKickoff accepts RFC3339 including a trailing literal Z; an
// offset-less timestamp defaults to UTC.
func ParseKickoff(raw string) (time.Time, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, false
	}

	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
	}
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return parsed.UTC(), true
		}
	}
	return time.Time{}, false
}

func getMap(src map[string]any, key string) map[string]any {
	if src == nil {
		return nil
	}
	value, ok := src[key].(map[string]any)
	if !ok {
		return nil
	}
	return value
}

func getString(src map[string]any, key string) string {
	if src == nil {
		return ""
	}
	value, ok := src[key].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(value)
}

func getBool(src map[string]any, key string) bool {
	if src == nil {
		return false
	}
	value, ok := src[key].(bool)
	return ok && value
}

func optString(src map[string]any, key string) *string {
	value := getString(src, key)
	if value == "" {
		return nil
	}
	return &value
}

func optInt(src map[string]any, key string) *int {
	if src == nil {
		return nil
	}
	value, ok := toInt64(src[key])
	if !ok {
		return nil
	}
	v := int(value)
	return &v
}

func optInt64(src map[string]any, key string) *int64 {
	if src == nil {
		return nil
	}
	value, ok := toInt64(src[key])
	if !ok {
		return nil
	}
	return &value
}

func toInt64(raw any) (int64, bool) {
	switch value := raw.(type) {
	case float64:
		return int64(value), true
	case float32:
		return int64(value), true
	case int:
		return int64(value), true
	case int64:
		return value, true
	case json.Number:
		parsed, err := value.Int64()
		if err != nil {
			return 0, false
		}
		return parsed, true
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}
