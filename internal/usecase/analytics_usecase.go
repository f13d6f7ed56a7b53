package usecase

import (
	"context"
	"encoding/json"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/redis"
)

const (
	topSkillsLimit     = 10
	averageSalaryLimit = 20
)

type analyticsUsecase struct {
	repo domain.AnalyticsRepository
	ttl  time.Duration
}

// NewAnalyticsUsecase wraps the read aggregations with a short-lived Redis
// cache; when Redis is unconfigured every call goes straight to the store.
func NewAnalyticsUsecase(repo domain.AnalyticsRepository, ttl time.Duration) domain.AnalyticsUsecase {
	return &analyticsUsecase{repo: repo, ttl: ttl}
}

func (u *analyticsUsecase) JobsPerIndustry(ctx context.Context) ([]domain.IndustryJobCount, error) {
	var cached []domain.IndustryJobCount
	if u.fromCache(ctx, "analytics:jobs-per-industry", &cached) {
		return cached, nil
	}
	out, err := u.repo.JobsPerIndustry(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	u.toCache(ctx, "analytics:jobs-per-industry", out)
	return out, nil
}

func (u *analyticsUsecase) TopSkills(ctx context.Context) ([]domain.SkillCount, error) {
	var cached []domain.SkillCount
	if u.fromCache(ctx, "analytics:top-skills", &cached) {
		return cached, nil
	}
	out, err := u.repo.TopSkills(ctx, topSkillsLimit)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	u.toCache(ctx, "analytics:top-skills", out)
	return out, nil
}

func (u *analyticsUsecase) AverageSalaryByTitle(ctx context.Context) ([]domain.TitleSalaryStat, error) {
	var cached []domain.TitleSalaryStat
	if u.fromCache(ctx, "analytics:average-salary", &cached) {
		return cached, nil
	}
	out, err := u.repo.AverageSalaryByTitle(ctx, averageSalaryLimit)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	u.toCache(ctx, "analytics:average-salary", out)
	return out, nil
}

func (u *analyticsUsecase) ApplicationTrends(ctx context.Context) ([]domain.MonthlyApplicationCount, error) {
	var cached []domain.MonthlyApplicationCount
	if u.fromCache(ctx, "analytics:application-trends", &cached) {
		return cached, nil
	}
	out, err := u.repo.ApplicationTrends(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	u.toCache(ctx, "analytics:application-trends", out)
	return out, nil
}

func (u *analyticsUsecase) fromCache(ctx context.Context, key string, dest interface{}) bool {
	rdb := redis.Client()
	if rdb == nil {
		return false
	}
	data, err := rdb.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, dest) == nil
}

func (u *analyticsUsecase) toCache(ctx context.Context, key string, v interface{}) {
	rdb := redis.Client()
	if rdb == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	rdb.Set(ctx, key, data, u.ttl)
}
