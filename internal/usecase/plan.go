package usecase

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/gcamargo/footdata/internal/domain/checkpoint"
	"github.com/gcamargo/footdata/internal/domain/league"
)

const defaultFromCoreLeagues = 10

// Plan describes one backfill run: which leagues, which seasons, which
// endpoints, and the paging contract. MaxPagesSafety is mandatory
// because provider paging metadata is untrusted input.
type Plan struct {
	Provider     string         `json:"provider" validate:"required"`
	LeagueSource LeagueSource   `json:"league_source" validate:"required"`
	Seasons      SeasonSource   `json:"seasons" validate:"required"`
	Endpoints    []PlanEndpoint `json:"endpoints" validate:"required,min=1,dive"`
	Paging       PagingPlan     `json:"paging" validate:"required"`
}

type LeagueSource struct {
	Mode       string  `json:"mode" validate:"required,oneof=ids from_core"`
	IDs        []int64 `json:"ids"`
	MaxLeagues int     `json:"max_leagues" validate:"min=0"`
}

type SeasonSource struct {
	Mode  string `json:"mode" validate:"required,oneof=range list"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	Items []int  `json:"items"`
}

type PlanEndpoint struct {
	ID     string            `json:"id" validate:"required"`
	Path   string            `json:"path" validate:"required"`
	Params map[string]string `json:"params"`
}

type PagingPlan struct {
	// PageParam empty means the endpoint set is unpaginated.
	PageParam      string `json:"page_param"`
	MaxPagesSafety int    `json:"max_pages_safety" validate:"required,min=1"`
}

// Unit is one (provider, endpoint, league, season) crawl target with
// its parameters fully resolved.
type Unit struct {
	Key    checkpoint.Key
	Kind   EntityKind
	Path   string
	Params map[string]string
}

func LoadPlan(path string) (Plan, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Plan{}, fmt.Errorf("read plan file: %w", err)
	}

	var plan Plan
	if err := sonic.Unmarshal(raw, &plan); err != nil {
		return Plan{}, fmt.Errorf("decode plan file: %w", err)
	}
	if err := plan.Validate(); err != nil {
		return Plan{}, err
	}
	return plan, nil
}

func (p Plan) Validate() error {
	if err := validator.New().Struct(p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if p.LeagueSource.Mode == "ids" && len(p.LeagueSource.IDs) == 0 {
		return fmt.Errorf("%w: league_source mode ids requires a non-empty id list", ErrInvalidInput)
	}
	switch p.Seasons.Mode {
	case "range":
		if p.Seasons.Start <= 0 || p.Seasons.End < p.Seasons.Start {
			return fmt.Errorf("%w: season range %d..%d is invalid", ErrInvalidInput, p.Seasons.Start, p.Seasons.End)
		}
	case "list":
		if len(p.Seasons.Items) == 0 {
			return fmt.Errorf("%w: seasons mode list requires a non-empty item list", ErrInvalidInput)
		}
	}

	// Resolve every endpoint id eagerly so a typo fails at load time.
	for _, endpoint := range p.Endpoints {
		if _, err := ResolveEntityKind(endpoint.ID); err != nil {
			return err
		}
	}
	return nil
}

// BuildUnits expands the plan into its cross product of resolved
// league ids, seasons and endpoints, in that nesting order.
func BuildUnits(ctx context.Context, plan Plan, leagues league.Repository) ([]Unit, error) {
	leagueIDs, err := resolveLeagueIDs(ctx, plan.LeagueSource, leagues)
	if err != nil {
		return nil, err
	}
	seasons, err := resolveSeasons(plan.Seasons)
	if err != nil {
		return nil, err
	}

	units := make([]Unit, 0, len(leagueIDs)*len(seasons)*len(plan.Endpoints))
	for _, leagueID := range leagueIDs {
		for _, season := range seasons {
			for _, endpoint := range plan.Endpoints {
				kind, err := ResolveEntityKind(endpoint.ID)
				if err != nil {
					return nil, err
				}
				units = append(units, Unit{
					Key: checkpoint.Key{
						Provider: plan.Provider,
						Endpoint: endpoint.ID,
						LeagueID: leagueID,
						Season:   season,
					},
					Kind:   kind,
					Path:   endpoint.Path,
					Params: resolveParams(endpoint.Params, leagueID, season),
				})
			}
		}
	}
	return units, nil
}

func resolveLeagueIDs(ctx context.Context, source LeagueSource, leagues league.Repository) ([]int64, error) {
	switch source.Mode {
	case "ids":
		ids := append([]int64(nil), source.IDs...)
		if source.MaxLeagues > 0 && len(ids) > source.MaxLeagues {
			ids = ids[:source.MaxLeagues]
		}
		return ids, nil
	case "from_core":
		limit := source.MaxLeagues
		if limit <= 0 {
			limit = defaultFromCoreLeagues
		}
		ids, err := leagues.ListIDs(ctx, limit)
		if err != nil {
			return nil, fmt.Errorf("resolve leagues from core: %w", err)
		}
		return ids, nil
	default:
		return nil, fmt.Errorf("%w: league_source mode %q", ErrInvalidInput, source.Mode)
	}
}

func resolveSeasons(source SeasonSource) ([]int, error) {
	switch source.Mode {
	case "range":
		out := make([]int, 0, source.End-source.Start+1)
		for season := source.Start; season <= source.End; season++ {
			out = append(out, season)
		}
		return out, nil
	case "list":
		return append([]int(nil), source.Items...), nil
	default:
		return nil, fmt.Errorf("%w: seasons mode %q", ErrInvalidInput, source.Mode)
	}
}

// resolveParams substitutes {league_id} and {season} placeholders in
// the endpoint's base parameters.
func resolveParams(base map[string]string, leagueID int64, season int) map[string]string {
	out := make(map[string]string, len(base))
	for key, value := range base {
		value = strings.ReplaceAll(value, "{league_id}", strconv.FormatInt(leagueID, 10))
		value = strings.ReplaceAll(value, "{season}", strconv.Itoa(season))
		out[key] = value
	}
	return out
}
