package services

import (
	"context"
	"math"
	"time"

	"github.com/vonvha/Nutri-Smart/utils"
)

type MacroProgress struct {
	Current int `json:"current"`
	Target  int `json:"target"`
}

type MacroBreakdown struct {
	Protein MacroProgress `json:"protein"`
	Carbs   MacroProgress `json:"carbs"`
	Fat     MacroProgress `json:"fat"`
}

type Dashboard struct {
	CaloriesTarget   int            `json:"caloriesTarget"`
	CaloriesConsumed int            `json:"caloriesConsumed"`
	Macros           MacroBreakdown `json:"macros"`
}

type DashboardService struct {
	profiles *ProfileService
	ledger   *LedgerService
}

func NewDashboardService(profiles *ProfileService, ledger *LedgerService) *DashboardService {
	return &DashboardService{profiles: profiles, ledger: ledger}
}

// Dashboard combines today's consumption with the profile targets.
func (s *DashboardService) Dashboard(ctx context.Context, email string, now time.Time) (*Dashboard, error) {
	targets, err := s.profiles.Targets(ctx, email)
	if err != nil {
		return nil, err
	}
	rec, err := s.ledger.Today(ctx, email, now)
	if err != nil {
		return nil, err
	}

	consumed := 0
	if rec != nil {
		consumed = rec.CaloriesConsumed
	}
	d := ProjectDashboard(targets, consumed)
	return &d, nil
}

// ProjectDashboard approximates macro consumption by scaling each macro
// target with the consumed/target calorie ratio. Actual food composition is
// not tracked.
func ProjectDashboard(targets utils.Targets, consumed int) Dashboard {
	ratio := 0.0
	if targets.Calories > 0 {
		ratio = float64(consumed) / float64(targets.Calories)
	}

	project := func(target int) MacroProgress {
		return MacroProgress{
			Current: int(math.Floor(float64(target) * ratio)),
			Target:  target,
		}
	}

	return Dashboard{
		CaloriesTarget:   targets.Calories,
		CaloriesConsumed: consumed,
		Macros: MacroBreakdown{
			Protein: project(targets.Protein),
			Carbs:   project(targets.Carbs),
			Fat:     project(targets.Fat),
		},
	}
}
