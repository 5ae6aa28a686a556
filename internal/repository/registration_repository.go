package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/club-service/internal/domain"
)

// RegistrationRepository defines persistence access for event registrations.
type RegistrationRepository interface {
	Create(ctx context.Context, reg *domain.Registration) error
	GetByID(ctx context.Context, id int64) (*domain.Registration, error)
	GetByUserAndEvent(ctx context.Context, userID, eventID int64) (*domain.Registration, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Registration, error)
	ListByClub(ctx context.Context, clubID string) ([]domain.Registration, error)
	UpdateStatus(ctx context.Context, id int64, status domain.RegistrationStatus) error
	UpdateFormData(ctx context.Context, id int64, formData string) error
	CountByEvent(ctx context.Context, eventID int64) (int64, error)
}

type registrationRepository struct {
	pool *pgxpool.Pool
}

// NewRegistrationRepository returns a Postgres-backed implementation.
func NewRegistrationRepository(pool *pgxpool.Pool) RegistrationRepository {
	return &registrationRepository{pool: pool}
}

const registrationColumns = `id, reference, event_id, user_id, status, form_data, submission_date, created_at`

func scanRegistration(row pgx.Row) (*domain.Registration, error) {
	var reg domain.Registration
	if err := row.Scan(
		&reg.ID,
		&reg.Reference,
		&reg.EventID,
		&reg.UserID,
		&reg.Status,
		&reg.FormData,
		&reg.SubmissionDate,
		&reg.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *registrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	const query = `
        INSERT INTO registrations (reference, event_id, user_id, status, form_data, submission_date)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		reg.Reference,
		reg.EventID,
		reg.UserID,
		reg.Status,
		reg.FormData,
		reg.SubmissionDate,
	).Scan(&reg.ID, &reg.CreatedAt)
}

func (r *registrationRepository) GetByID(ctx context.Context, id int64) (*domain.Registration, error) {
	const query = `SELECT ` + registrationColumns + ` FROM registrations WHERE id=$1`
	return scanRegistration(r.pool.QueryRow(ctx, query, id))
}

func (r *registrationRepository) GetByUserAndEvent(ctx context.Context, userID, eventID int64) (*domain.Registration, error) {
	const query = `SELECT ` + registrationColumns + ` FROM registrations WHERE user_id=$1 AND event_id=$2`
	return scanRegistration(r.pool.QueryRow(ctx, query, userID, eventID))
}

func (r *registrationRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Registration, error) {
	const query = `SELECT ` + registrationColumns + ` FROM registrations
        WHERE user_id=$1 ORDER BY submission_date DESC`
	return r.queryRegistrations(ctx, query, userID)
}

func (r *registrationRepository) ListByClub(ctx context.Context, clubID string) ([]domain.Registration, error) {
	const query = `
        SELECT r.id, r.reference, r.event_id, r.user_id, r.status, r.form_data, r.submission_date, r.created_at
        FROM registrations r
        JOIN events e ON e.id = r.event_id
        WHERE e.club_id = $1
        ORDER BY r.submission_date DESC`
	return r.queryRegistrations(ctx, query, clubID)
}

func (r *registrationRepository) UpdateStatus(ctx context.Context, id int64, status domain.RegistrationStatus) error {
	const query = `UPDATE registrations SET status=$1 WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *registrationRepository) UpdateFormData(ctx context.Context, id int64, formData string) error {
	const query = `UPDATE registrations SET form_data=$1, submission_date=NOW() WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, formData, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *registrationRepository) CountByEvent(ctx context.Context, eventID int64) (int64, error) {
	const query = `SELECT COUNT(*) FROM registrations WHERE event_id=$1`

	var count int64
	if err := r.pool.QueryRow(ctx, query, eventID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *registrationRepository) queryRegistrations(ctx context.Context, query string, args ...any) ([]domain.Registration, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var regs []domain.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		regs = append(regs, *reg)
	}
	return regs, rows.Err()
}
