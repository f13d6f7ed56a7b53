package postgres

import (
	"context"
	"errors"

	"go-jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type applicationRepo struct {
	db *pgxpool.Pool
}

func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	query := `INSERT INTO applications (id, job_id, candidate_id, applied_at, status, cover_letter)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.Exec(ctx, query,
		app.ID, app.JobID, app.CandidateID, app.AppliedAt, app.Status, app.CoverLetter,
	)
	if isUniqueViolation(err) {
		return domain.ErrDuplicate
	}
	return err
}

func (r *applicationRepo) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	query := `SELECT id, job_id, candidate_id, applied_at, status, cover_letter
	          FROM applications WHERE id = $1`
	var app domain.Application
	err := r.db.QueryRow(ctx, query, id).Scan(
		&app.ID, &app.JobID, &app.CandidateID, &app.AppliedAt, &app.Status, &app.CoverLetter,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// detailQuery joins the application with its job and candidate. The joins
// are LEFT so single-item retrieval can distinguish a missing application
// from a broken reference; list queries drop the broken rows instead.
const detailQuery = `
	SELECT a.id, a.job_id, a.candidate_id, a.applied_at, a.status, a.cover_letter,
	       j.id, j.title, j.company, j.location,
	       c.id, c.full_name, c.email, c.skills
	FROM applications a
	LEFT JOIN jobs j ON a.job_id = j.id
	LEFT JOIN candidates c ON a.candidate_id = c.id`

func scanApplicationDetail(row pgx.Row) (*domain.ApplicationDetail, error) {
	var (
		d          domain.ApplicationDetail
		jobID      *string
		jobTitle   *string
		jobCompany *string
		jobLoc     *string
		candID     *string
		candName   *string
		candEmail  *string
		candSkills []string
	)
	err := row.Scan(
		&d.ID, &d.JobID, &d.CandidateID, &d.AppliedAt, &d.Status, &d.CoverLetter,
		&jobID, &jobTitle, &jobCompany, &jobLoc,
		&candID, &candName, &candEmail, pq.Array(&candSkills),
	)
	if err != nil {
		return nil, err
	}
	if jobID != nil {
		d.Job = &domain.JobSummary{ID: *jobID, Title: *jobTitle, Company: *jobCompany, Location: *jobLoc}
	}
	if candID != nil {
		d.Candidate = &domain.CandidateSummary{ID: *candID, FullName: *candName, Email: *candEmail, Skills: candSkills}
	}
	return &d, nil
}

func (r *applicationRepo) GetDetailByID(ctx context.Context, id string) (*domain.ApplicationDetail, error) {
	d, err := scanApplicationDetail(r.db.QueryRow(ctx, detailQuery+` WHERE a.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *applicationRepo) listDetails(ctx context.Context, query string, args ...interface{}) ([]domain.ApplicationDetail, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var details []domain.ApplicationDetail
	for rows.Next() {
		d, err := scanApplicationDetail(rows)
		if err != nil {
			return nil, err
		}
		// Orphaned references are filtered out of listings, not surfaced
		// as errors.
		if d.Job == nil || d.Candidate == nil {
			continue
		}
		details = append(details, *d)
	}
	return details, rows.Err()
}

func (r *applicationRepo) ListByCandidate(ctx context.Context, candidateID string) ([]domain.ApplicationDetail, error) {
	return r.listDetails(ctx, detailQuery+` WHERE a.candidate_id = $1 ORDER BY a.applied_at DESC`, candidateID)
}

func (r *applicationRepo) ListByEmployer(ctx context.Context, employerID string) ([]domain.ApplicationDetail, error) {
	return r.listDetails(ctx, detailQuery+` WHERE j.employer_id = $1 ORDER BY a.applied_at DESC`, employerID)
}

func (r *applicationRepo) UpdateStatus(ctx context.Context, id, status string) error {
	result, err := r.db.Exec(ctx, `UPDATE applications SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *applicationRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
