package postgres

import (
	"context"

	"go-jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type analyticsRepo struct {
	db *pgxpool.Pool
}

func NewAnalyticsRepository(db *pgxpool.Pool) domain.AnalyticsRepository {
	return &analyticsRepo{db: db}
}

func (r *analyticsRepo) JobsPerIndustry(ctx context.Context) ([]domain.IndustryJobCount, error) {
	query := `SELECT industry, COUNT(*) FROM jobs
	          WHERE is_active GROUP BY industry ORDER BY COUNT(*) DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.IndustryJobCount
	for rows.Next() {
		var row domain.IndustryJobCount
		if err := rows.Scan(&row.Industry, &row.Count); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *analyticsRepo) TopSkills(ctx context.Context, limit int) ([]domain.SkillCount, error) {
	query := `SELECT skill, COUNT(*) FROM jobs, unnest(skills) AS skill
	          GROUP BY skill ORDER BY COUNT(*) DESC LIMIT $1`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.SkillCount
	for rows.Next() {
		var row domain.SkillCount
		if err := rows.Scan(&row.Skill, &row.Count); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// AverageSalaryByTitle only considers active jobs carrying both salary
// bounds, ranked by how often the title is posted.
func (r *analyticsRepo) AverageSalaryByTitle(ctx context.Context, limit int) ([]domain.TitleSalaryStat, error) {
	query := `SELECT title, AVG(salary_min), AVG(salary_max), COUNT(*)
	          FROM jobs
	          WHERE is_active AND salary_min IS NOT NULL AND salary_max IS NOT NULL
	          GROUP BY title ORDER BY COUNT(*) DESC LIMIT $1`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.TitleSalaryStat
	for rows.Next() {
		var row domain.TitleSalaryStat
		if err := rows.Scan(&row.Title, &row.AvgMin, &row.AvgMax, &row.Count); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *analyticsRepo) ApplicationTrends(ctx context.Context) ([]domain.MonthlyApplicationCount, error) {
	query := `SELECT EXTRACT(YEAR FROM applied_at)::int,
	                 EXTRACT(MONTH FROM applied_at)::int,
	                 COUNT(*)
	          FROM applications
	          GROUP BY 1, 2 ORDER BY 1, 2`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.MonthlyApplicationCount
	for rows.Next() {
		var row domain.MonthlyApplicationCount
		if err := rows.Scan(&row.Year, &row.Month, &row.Count); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
