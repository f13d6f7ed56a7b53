package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go-jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

const jobColumns = `id, employer_id, title, company, location, description, requirements,
	salary_min, salary_max, posted_at, application_deadline, is_active, industry, skills`

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

func scanJob(row pgx.Row) (*domain.Job, error) {
	var job domain.Job
	err := row.Scan(
		&job.ID, &job.EmployerID, &job.Title, &job.Company, &job.Location, &job.Description,
		pq.Array(&job.Requirements), &job.SalaryMin, &job.SalaryMax, &job.PostedAt,
		&job.Deadline, &job.IsActive, &job.Industry, pq.Array(&job.Skills),
	)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	query := `INSERT INTO jobs (` + jobColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.db.Exec(ctx, query,
		job.ID, job.EmployerID, job.Title, job.Company, job.Location, job.Description,
		pq.Array(job.Requirements), job.SalaryMin, job.SalaryMax, job.PostedAt,
		job.Deadline, job.IsActive, job.Industry, pq.Array(job.Skills),
	)
	return err
}

func (r *jobRepo) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`
	job, err := scanJob(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return job, nil
}

// Fetch runs the validated listing query. A non-empty Search replaces the
// filter path with a text-index query that computes its own count.
func (r *jobRepo) Fetch(ctx context.Context, q domain.JobListQuery) ([]domain.Job, int64, error) {
	var conds []string
	var args []interface{}

	if q.Search != "" {
		args = append(args, q.Search)
		conds = append(conds, fmt.Sprintf("search_tsv @@ websearch_to_tsquery('english', $%d)", len(args)))
	} else {
		for _, f := range q.Filters {
			cond, condArgs, err := jobFilterCondition(f, len(args)+1)
			if err != nil {
				return nil, 0, err
			}
			conds = append(conds, cond)
			args = append(args, condArgs...)
		}
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	order := jobOrderClause(q.SortBy, q.SortOrder)
	offset := (q.Page - 1) * q.Limit
	listArgs := append(args, q.Limit, offset)
	query := fmt.Sprintf(`SELECT `+jobColumns+` FROM jobs%s%s LIMIT $%d OFFSET $%d`,
		where, order, len(args)+1, len(args)+2)

	rows, err := r.db.Query(ctx, query, listArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var jobs []domain.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, 0, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, total, rows.Err()
}

func (r *jobRepo) FetchByEmployer(ctx context.Context, employerID string, limit, offset int) ([]domain.Job, int64, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE employer_id = $1
	          ORDER BY posted_at DESC LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, employerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var jobs []domain.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, 0, err
		}
		jobs = append(jobs, *job)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs WHERE employer_id = $1`, employerID).Scan(&total); err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

func (r *jobRepo) Update(ctx context.Context, job *domain.Job) error {
	query := `UPDATE jobs SET
		title = $2,
		company = $3,
		location = $4,
		description = $5,
		requirements = $6,
		salary_min = $7,
		salary_max = $8,
		application_deadline = $9,
		is_active = $10,
		industry = $11,
		skills = $12
	WHERE id = $1`
	result, err := r.db.Exec(ctx, query,
		job.ID, job.Title, job.Company, job.Location, job.Description,
		pq.Array(job.Requirements), job.SalaryMin, job.SalaryMax,
		job.Deadline, job.IsActive, job.Industry, pq.Array(job.Skills),
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *jobRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeactivateExpired closes postings whose application deadline has passed.
func (r *jobRepo) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.db.Exec(ctx,
		`UPDATE jobs SET is_active = false
		 WHERE is_active AND application_deadline IS NOT NULL AND application_deadline < $1`, now)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

// jobFilterCondition translates one validated filter expression into a SQL
// condition with positional placeholders starting at argPos. Fields and
// operators were already checked against the allow-list; this only binds
// values, so no request text ever reaches the SQL string.
func jobFilterCondition(f domain.FilterExpr, argPos int) (string, []interface{}, error) {
	if f.Op == domain.FilterOpIn {
		values := strings.Split(f.Value, ",")
		return fmt.Sprintf("%s = ANY($%d)", f.Field, argPos), []interface{}{pq.Array(values)}, nil
	}

	op, ok := sqlComparators[f.Op]
	if !ok {
		return "", nil, fmt.Errorf("unsupported filter operator %q", f.Op)
	}

	value, err := jobFilterValue(f.Field, f.Value)
	if err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("%s %s $%d", f.Field, op, argPos), []interface{}{value}, nil
}

var sqlComparators = map[domain.FilterOp]string{
	domain.FilterOpEq:  "=",
	domain.FilterOpGt:  ">",
	domain.FilterOpGte: ">=",
	domain.FilterOpLt:  "<",
	domain.FilterOpLte: "<=",
}

// jobFilterValue converts the raw string into the column's native type.
func jobFilterValue(field, raw string) (interface{}, error) {
	switch field {
	case "salary_min", "salary_max":
		return strconv.ParseFloat(raw, 64)
	case "is_active":
		return strconv.ParseBool(raw)
	case "posted_at", "application_deadline":
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			return t, nil
		}
		return time.Parse("2006-01-02", raw)
	default:
		return raw, nil
	}
}

// jobOrderClause builds the ORDER BY from allow-listed inputs; the default
// is newest-first by posting time.
func jobOrderClause(sortBy, sortOrder string) string {
	column := "posted_at"
	if sortBy != "" {
		column = sortBy
	}
	dir := "DESC"
	if strings.EqualFold(sortOrder, "asc") {
		dir = "ASC"
	}
	return fmt.Sprintf(" ORDER BY %s %s", column, dir)
}
