package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go-jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

const candidateColumns = `id, user_id, full_name, email, phone, skills, education,
	work_history, resume_text, resume_filename, resume_url, created_at`

type candidateRepo struct {
	db *pgxpool.Pool
}

func NewCandidateRepository(db *pgxpool.Pool) domain.CandidateRepository {
	return &candidateRepo{db: db}
}

func scanCandidate(row pgx.Row) (*domain.Candidate, error) {
	var (
		c               domain.Candidate
		educationJSON   []byte
		workHistoryJSON []byte
		resumeFilename  *string
		resumeURL       *string
	)
	err := row.Scan(
		&c.ID, &c.UserID, &c.FullName, &c.Email, &c.Phone, pq.Array(&c.Skills),
		&educationJSON, &workHistoryJSON, &c.ResumeText,
		&resumeFilename, &resumeURL, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(educationJSON) > 0 {
		if err := json.Unmarshal(educationJSON, &c.Education); err != nil {
			return nil, fmt.Errorf("decode education: %w", err)
		}
	}
	if len(workHistoryJSON) > 0 {
		if err := json.Unmarshal(workHistoryJSON, &c.WorkHistory); err != nil {
			return nil, fmt.Errorf("decode work history: %w", err)
		}
	}
	if resumeFilename != nil && *resumeFilename != "" {
		c.ResumeFile = &domain.ResumeFile{Filename: *resumeFilename}
		if resumeURL != nil {
			c.ResumeFile.URL = *resumeURL
		}
	}
	return &c, nil
}

func candidateJSONColumns(c *domain.Candidate) (education, workHistory []byte, err error) {
	if education, err = json.Marshal(c.Education); err != nil {
		return nil, nil, fmt.Errorf("encode education: %w", err)
	}
	if workHistory, err = json.Marshal(c.WorkHistory); err != nil {
		return nil, nil, fmt.Errorf("encode work history: %w", err)
	}
	return education, workHistory, nil
}

func resumeFileColumns(c *domain.Candidate) (filename, url *string) {
	if c.ResumeFile != nil {
		filename = &c.ResumeFile.Filename
		url = &c.ResumeFile.URL
	}
	return filename, url
}

func (r *candidateRepo) Create(ctx context.Context, c *domain.Candidate) error {
	education, workHistory, err := candidateJSONColumns(c)
	if err != nil {
		return err
	}
	filename, url := resumeFileColumns(c)

	query := `INSERT INTO candidates (` + candidateColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err = r.db.Exec(ctx, query,
		c.ID, c.UserID, c.FullName, c.Email, c.Phone, pq.Array(c.Skills),
		education, workHistory, c.ResumeText, filename, url, c.CreatedAt,
	)
	if isUniqueViolation(err) {
		return domain.ErrDuplicate
	}
	return err
}

func (r *candidateRepo) GetByID(ctx context.Context, id string) (*domain.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE id = $1`
	c, err := scanCandidate(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *candidateRepo) GetByUserID(ctx context.Context, userID string) (*domain.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE user_id = $1`
	c, err := scanCandidate(r.db.QueryRow(ctx, query, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *candidateRepo) Update(ctx context.Context, c *domain.Candidate) error {
	education, workHistory, err := candidateJSONColumns(c)
	if err != nil {
		return err
	}
	filename, url := resumeFileColumns(c)

	query := `UPDATE candidates SET
		full_name = $2,
		email = $3,
		phone = $4,
		skills = $5,
		education = $6,
		work_history = $7,
		resume_text = $8,
		resume_filename = $9,
		resume_url = $10
	WHERE id = $1`
	result, err := r.db.Exec(ctx, query,
		c.ID, c.FullName, c.Email, c.Phone, pq.Array(c.Skills),
		education, workHistory, c.ResumeText, filename, url,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *candidateRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM candidates WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Search combines free-text search with an all-of skills filter: a match
// must carry every requested skill, not any.
func (r *candidateRepo) Search(ctx context.Context, q domain.CandidateSearchQuery) ([]domain.Candidate, int64, error) {
	var conds []string
	var args []interface{}

	if q.Search != "" {
		args = append(args, q.Search)
		conds = append(conds, fmt.Sprintf("search_tsv @@ websearch_to_tsquery('english', $%d)", len(args)))
	}
	if len(q.SkillsAll) > 0 {
		args = append(args, pq.Array(q.SkillsAll))
		conds = append(conds, fmt.Sprintf("skills @> $%d", len(args)))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM candidates`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	order := candidateOrderClause(q.SortBy, q.SortOrder)
	offset := (q.Page - 1) * q.Limit
	listArgs := append(args, q.Limit, offset)
	query := fmt.Sprintf(`SELECT `+candidateColumns+` FROM candidates%s%s LIMIT $%d OFFSET $%d`,
		where, order, len(args)+1, len(args)+2)

	rows, err := r.db.Query(ctx, query, listArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var candidates []domain.Candidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, 0, err
		}
		candidates = append(candidates, *c)
	}
	return candidates, total, rows.Err()
}

var candidateSortColumns = map[string]string{
	"created_at": "created_at",
	"full_name":  "full_name",
	"email":      "email",
}

func candidateOrderClause(sortBy, sortOrder string) string {
	column, ok := candidateSortColumns[sortBy]
	if !ok {
		column = "created_at"
	}
	dir := "DESC"
	if strings.EqualFold(sortOrder, "asc") {
		dir = "ASC"
	}
	return fmt.Sprintf(" ORDER BY %s %s", column, dir)
}
