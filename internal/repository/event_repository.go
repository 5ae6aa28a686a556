package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/club-service/internal/domain"
)

// EventRepository defines persistence access for events.
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	Update(ctx context.Context, event *domain.Event) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Event, error)
	GetByClubAndName(ctx context.Context, clubID, name string) (*domain.Event, error)
	List(ctx context.Context) ([]domain.Event, error)
	ListUpcoming(ctx context.Context, from time.Time) ([]domain.Event, error)
	ListByClub(ctx context.Context, clubID string) ([]domain.Event, error)
	ListVisibleByClub(ctx context.Context, clubID string) ([]domain.Event, error)
	SetHidden(ctx context.Context, id int64, hidden bool) error
}

type eventRepository struct {
	pool *pgxpool.Pool
}

// NewEventRepository returns a Postgres-backed implementation.
func NewEventRepository(pool *pgxpool.Pool) EventRepository {
	return &eventRepository{pool: pool}
}

const eventColumns = `id, club_id, venue_id, event_name, description, event_date, event_time, deadline, registration_form_link, hidden, created_at, updated_at`

func scanEvent(row pgx.Row) (*domain.Event, error) {
	var event domain.Event
	if err := row.Scan(
		&event.ID,
		&event.ClubID,
		&event.VenueID,
		&event.Name,
		&event.Description,
		&event.EventDate,
		&event.EventTime,
		&event.Deadline,
		&event.RegistrationFormLink,
		&event.Hidden,
		&event.CreatedAt,
		&event.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) Create(ctx context.Context, event *domain.Event) error {
	const query = `
        INSERT INTO events (club_id, venue_id, event_name, description, event_date, event_time, deadline, registration_form_link, hidden)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		event.ClubID,
		event.VenueID,
		event.Name,
		event.Description,
		event.EventDate,
		event.EventTime,
		event.Deadline,
		event.RegistrationFormLink,
		event.Hidden,
	).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)
}

func (r *eventRepository) Update(ctx context.Context, event *domain.Event) error {
	const query = `
        UPDATE events SET venue_id=$1, event_name=$2, description=$3, event_date=$4, event_time=$5, deadline=$6, registration_form_link=$7, updated_at=NOW()
        WHERE id=$8`

	cmd, err := r.pool.Exec(ctx, query,
		event.VenueID,
		event.Name,
		event.Description,
		event.EventDate,
		event.EventTime,
		event.Deadline,
		event.RegistrationFormLink,
		event.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM events WHERE id=$1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	const query = `SELECT ` + eventColumns + ` FROM events WHERE id=$1`
	return scanEvent(r.pool.QueryRow(ctx, query, id))
}

func (r *eventRepository) GetByClubAndName(ctx context.Context, clubID, name string) (*domain.Event, error) {
	const query = `SELECT ` + eventColumns + ` FROM events WHERE club_id=$1 AND event_name=$2`
	return scanEvent(r.pool.QueryRow(ctx, query, clubID, name))
}

func (r *eventRepository) List(ctx context.Context) ([]domain.Event, error) {
	const query = `SELECT ` + eventColumns + ` FROM events ORDER BY event_date ASC`
	return r.queryEvents(ctx, query)
}

func (r *eventRepository) ListUpcoming(ctx context.Context, from time.Time) ([]domain.Event, error) {
	const query = `SELECT ` + eventColumns + ` FROM events
        WHERE hidden=false AND event_date >= $1 ORDER BY event_date ASC`
	return r.queryEvents(ctx, query, from)
}

func (r *eventRepository) ListByClub(ctx context.Context, clubID string) ([]domain.Event, error) {
	const query = `SELECT ` + eventColumns + ` FROM events WHERE club_id=$1 ORDER BY event_date ASC`
	return r.queryEvents(ctx, query, clubID)
}

func (r *eventRepository) ListVisibleByClub(ctx context.Context, clubID string) ([]domain.Event, error) {
	const query = `SELECT ` + eventColumns + ` FROM events
        WHERE club_id=$1 AND hidden=false ORDER BY event_date ASC`
	return r.queryEvents(ctx, query, clubID)
}

func (r *eventRepository) SetHidden(ctx context.Context, id int64, hidden bool) error {
	const query = `UPDATE events SET hidden=$1, updated_at=NOW() WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, hidden, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *eventRepository) queryEvents(ctx context.Context, query string, args ...any) ([]domain.Event, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *event)
	}
	return events, rows.Err()
}
