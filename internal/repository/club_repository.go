package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/club-service/internal/domain"
)

// ClubRepository defines persistence access for clubs.
type ClubRepository interface {
	Create(ctx context.Context, club *domain.Club) error
	Update(ctx context.Context, club *domain.Club) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Club, error)
	Exists(ctx context.Context, id string) (bool, error)
	ListOrdered(ctx context.Context) ([]domain.Club, error)
}

type clubRepository struct {
	pool *pgxpool.Pool
}

// NewClubRepository returns a Postgres-backed implementation.
func NewClubRepository(pool *pgxpool.Pool) ClubRepository {
	return &clubRepository{pool: pool}
}

func (r *clubRepository) Create(ctx context.Context, club *domain.Club) error {
	const query = `INSERT INTO clubs (club_id, club_name, description) VALUES ($1, $2, $3)`
	_, err := r.pool.Exec(ctx, query, club.ID, club.Name, club.Description)
	return err
}

func (r *clubRepository) Update(ctx context.Context, club *domain.Club) error {
	const query = `UPDATE clubs SET club_name=$1, description=$2 WHERE club_id=$3`
	cmd, err := r.pool.Exec(ctx, query, club.Name, club.Description, club.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *clubRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM clubs WHERE club_id=$1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *clubRepository) GetByID(ctx context.Context, id string) (*domain.Club, error) {
	const query = `SELECT club_id, club_name, description FROM clubs WHERE club_id=$1`

	var club domain.Club
	if err := r.pool.QueryRow(ctx, query, id).Scan(&club.ID, &club.Name, &club.Description); err != nil {
		return nil, err
	}
	return &club, nil
}

func (r *clubRepository) Exists(ctx context.Context, id string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM clubs WHERE club_id=$1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *clubRepository) ListOrdered(ctx context.Context) ([]domain.Club, error) {
	const query = `SELECT club_id, club_name, description FROM clubs ORDER BY club_name ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clubs []domain.Club
	for rows.Next() {
		var club domain.Club
		if err := rows.Scan(&club.ID, &club.Name, &club.Description); err != nil {
			return nil, err
		}
		clubs = append(clubs, club)
	}
	return clubs, rows.Err()
}
