package datasource

import (
	"context"
	"encoding/json"
	"fmt"

	"arena-dashboard/model"
)

func decode[T any](ctx context.Context, r *Resolver, res Resource) (T, error) {
	var out T
	payload, err := r.Resolve(ctx, res)
	if err != nil {
		return out, err
	}
	err = json.Unmarshal(payload.Data, &out)
	if err == nil {
		return out, nil
	}
	err = fmt.Errorf("decode %s (%s): %w", res, payload.Source, err)
	if payload.Source == SourceStatic {
		return out, err
	}

	// A live body of the wrong shape must not be served again from cache.
	r.cache.Delete(string(res))
	if r.mode != LiveWithStaticFallback {
		return out, err
	}

	r.liveFailed(res, err)
	payload, err = r.resolveStatic(ctx, res)
	if err != nil {
		return out, err
	}
	var static T
	if err := json.Unmarshal(payload.Data, &static); err != nil {
		return static, fmt.Errorf("decode %s (%s): %w", res, payload.Source, err)
	}
	return static, nil
}

func (r *Resolver) Overview(ctx context.Context) (model.Overview, error) {
	return decode[model.Overview](ctx, r, Overview)
}

func (r *Resolver) EventPerformance(ctx context.Context) (model.EventPerformance, error) {
	return decode[model.EventPerformance](ctx, r, EventPerformance)
}

func (r *Resolver) StandPerformance(ctx context.Context) (model.StandPerformance, error) {
	return decode[model.StandPerformance](ctx, r, StandPerformance)
}

func (r *Resolver) HistoricalData(ctx context.Context) ([]model.HistoricalEvent, error) {
	return decode[[]model.HistoricalEvent](ctx, r, HistoricalData)
}

func (r *Resolver) Predictions(ctx context.Context) (model.Prediction, error) {
	return decode[model.Prediction](ctx, r, Predictions)
}

func (r *Resolver) Staffing(ctx context.Context) (model.StaffingPlan, error) {
	return decode[model.StaffingPlan](ctx, r, Staffing)
}

func (r *Resolver) RiskAssessment(ctx context.Context) (model.RiskAssessment, error) {
	return decode[model.RiskAssessment](ctx, r, RiskAssessment)
}
