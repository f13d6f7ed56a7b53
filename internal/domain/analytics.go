package domain

import "context"

type IndustryJobCount struct {
	Industry string `json:"industry"`
	Count    int64  `json:"count"`
}

type SkillCount struct {
	Skill string `json:"skill"`
	Count int64  `json:"count"`
}

type TitleSalaryStat struct {
	Title  string  `json:"title"`
	AvgMin float64 `json:"avg_min_salary"`
	AvgMax float64 `json:"avg_max_salary"`
	Count  int64   `json:"count"`
}

type MonthlyApplicationCount struct {
	Year  int   `json:"year"`
	Month int   `json:"month"`
	Count int64 `json:"count"`
}

type AnalyticsRepository interface {
	JobsPerIndustry(ctx context.Context) ([]IndustryJobCount, error)
	TopSkills(ctx context.Context, limit int) ([]SkillCount, error)
	AverageSalaryByTitle(ctx context.Context, limit int) ([]TitleSalaryStat, error)
	ApplicationTrends(ctx context.Context) ([]MonthlyApplicationCount, error)
}

type AnalyticsUsecase interface {
	JobsPerIndustry(ctx context.Context) ([]IndustryJobCount, error)
	TopSkills(ctx context.Context) ([]SkillCount, error)
	AverageSalaryByTitle(ctx context.Context) ([]TitleSalaryStat, error)
	ApplicationTrends(ctx context.Context) ([]MonthlyApplicationCount, error)
}
