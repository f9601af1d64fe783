package client

import (
	"context"
	"time"

	"github.com/thislife/planner/internal/model"
)

// PlanningAPI is the month/week/day planning hook. Absent keys read back
// as nil plans.
type PlanningAPI struct{ c *Client }

func (c *Client) Planning() *PlanningAPI { return &PlanningAPI{c: c} }

func (a *PlanningAPI) Monthly(ctx context.Context, monthKey string) (*model.MonthlyPlan, error) {
	if a.c.Authenticated() {
		var out struct {
			Plan *model.MonthlyPlan `json:"plan"`
		}
		resp, err := a.c.request().SetContext(ctx).SetResult(&out).Get("/api/planning/monthly/" + monthKey)
		if err == nil && resp.IsSuccess() {
			return out.Plan, nil
		}
	}
	plans := map[string]*model.MonthlyPlan{}
	a.c.local.GetJSON(keyMonthlyPlans, &plans)
	return plans[monthKey], nil
}

func (a *PlanningAPI) SaveMonthly(ctx context.Context, plan *model.MonthlyPlan) (*model.MonthlyPlan, error) {
	if a.c.Authenticated() {
		resp, err := a.c.request().SetContext(ctx).SetBody(plan).Put("/api/planning/monthly/" + plan.MonthKey)
		if err == nil && resp.IsSuccess() {
			return a.Monthly(ctx, plan.MonthKey)
		}
	}

	plans := map[string]*model.MonthlyPlan{}
	a.c.local.GetJSON(keyMonthlyPlans, &plans)
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = time.Now().UTC()
	}
	plans[plan.MonthKey] = plan
	if err := a.c.local.SetJSON(keyMonthlyPlans, plans); err != nil {
		return nil, err
	}
	return plan, nil
}

func (a *PlanningAPI) Weekly(ctx context.Context, weekKey string) (*model.WeeklyPlan, error) {
	if a.c.Authenticated() {
		var out struct {
			Plan *model.WeeklyPlan `json:"plan"`
		}
		resp, err := a.c.request().SetContext(ctx).SetResult(&out).Get("/api/planning/weekly/" + weekKey)
		if err == nil && resp.IsSuccess() {
			return out.Plan, nil
		}
	}
	plans := map[string]*model.WeeklyPlan{}
	a.c.local.GetJSON(keyWeeklyPlans, &plans)
	return plans[weekKey], nil
}

func (a *PlanningAPI) SaveWeekly(ctx context.Context, plan *model.WeeklyPlan) (*model.WeeklyPlan, error) {
	if a.c.Authenticated() {
		resp, err := a.c.request().SetContext(ctx).SetBody(plan).Put("/api/planning/weekly/" + plan.WeekKey)
		if err == nil && resp.IsSuccess() {
			return a.Weekly(ctx, plan.WeekKey)
		}
	}

	plans := map[string]*model.WeeklyPlan{}
	a.c.local.GetJSON(keyWeeklyPlans, &plans)
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = time.Now().UTC()
	}
	plans[plan.WeekKey] = plan
	if err := a.c.local.SetJSON(keyWeeklyPlans, plans); err != nil {
		return nil, err
	}
	return plan, nil
}

func (a *PlanningAPI) Daily(ctx context.Context, dateKey string) (*model.DailyPlan, error) {
	if a.c.Authenticated() {
		var out struct {
			Plan *model.DailyPlan `json:"plan"`
		}
		resp, err := a.c.request().SetContext(ctx).SetResult(&out).Get("/api/planning/daily/" + dateKey)
		if err == nil && resp.IsSuccess() {
			return out.Plan, nil
		}
	}
	plans := map[string]*model.DailyPlan{}
	a.c.local.GetJSON(keyDailyPlans, &plans)
	return plans[dateKey], nil
}

func (a *PlanningAPI) SaveDaily(ctx context.Context, plan *model.DailyPlan) (*model.DailyPlan, error) {
	if a.c.Authenticated() {
		resp, err := a.c.request().SetContext(ctx).SetBody(plan).Put("/api/planning/daily/" + plan.DateKey)
		if err == nil && resp.IsSuccess() {
			return a.Daily(ctx, plan.DateKey)
		}
	}

	plans := map[string]*model.DailyPlan{}
	a.c.local.GetJSON(keyDailyPlans, &plans)
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = time.Now().UTC()
	}
	plans[plan.DateKey] = plan
	if err := a.c.local.SetJSON(keyDailyPlans, plans); err != nil {
		return nil, err
	}
	return plan, nil
}
