package services

import (
	"context"
	"errors"

	"gallery-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PhotoService is CRUD over photo records, every operation scoped to the
// caller's identity. Reads, updates and deletes conjoin the ownership
// predicate into the query itself, so another user's photo is
// indistinguishable from a missing one (ErrPhotoNotFound).
type PhotoService struct {
	pool *pgxpool.Pool
}

func NewPhotoService(pool *pgxpool.Pool) *PhotoService {
	return &PhotoService{pool: pool}
}

// Create persists a new photo owned by userID and returns the record.
func (s *PhotoService) Create(ctx context.Context, userID int, in models.PhotoInput) (*models.Photo, error) {
	photo := models.Photo{
		ID:          uuid.New().String(),
		Title:       in.Title,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		UserID:      userID,
	}

	query := `INSERT INTO photos (id, user_id, title, description, image_url) VALUES ($1, $2, $3, $4, $5) RETURNING created_at`
	err := s.pool.QueryRow(ctx, query, photo.ID, userID, in.Title, in.Description, in.ImageURL).Scan(&photo.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &photo, nil
}

// ListOwned returns all photos owned by userID in insertion order.
func (s *PhotoService) ListOwned(ctx context.Context, userID int) ([]models.Photo, error) {
	query := `SELECT id, title, description, image_url, created_at, user_id FROM photos WHERE user_id = $1 ORDER BY created_at, id`
	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	photos := []models.Photo{}
	for rows.Next() {
		var p models.Photo
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.ImageURL, &p.CreatedAt, &p.UserID); err != nil {
			return nil, err
		}
		photos = append(photos, p)
	}
	return photos, rows.Err()
}

// GetOwned returns the photo with the given id if userID owns it.
func (s *PhotoService) GetOwned(ctx context.Context, userID int, photoID string) (*models.Photo, error) {
	var p models.Photo
	query := `SELECT id, title, description, image_url, created_at, user_id FROM photos WHERE id = $1 AND user_id = $2`
	err := s.pool.QueryRow(ctx, query, photoID, userID).Scan(&p.ID, &p.Title, &p.Description, &p.ImageURL, &p.CreatedAt, &p.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPhotoNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Update overwrites title and description with the submitted values and
// replaces the image reference only when a new one is supplied.
func (s *PhotoService) Update(ctx context.Context, userID int, photoID string, in models.PhotoInput) (*models.Photo, error) {
	var p models.Photo
	query := `UPDATE photos
		SET title = $3, description = $4, image_url = COALESCE(NULLIF($5, ''), image_url)
		WHERE id = $1 AND user_id = $2
		RETURNING id, title, description, image_url, created_at, user_id`
	err := s.pool.QueryRow(ctx, query, photoID, userID, in.Title, in.Description, in.ImageURL).
		Scan(&p.ID, &p.Title, &p.Description, &p.ImageURL, &p.CreatedAt, &p.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPhotoNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Delete removes the photo if userID owns it.
func (s *PhotoService) Delete(ctx context.Context, userID int, photoID string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM photos WHERE id = $1 AND user_id = $2`, photoID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPhotoNotFound
	}
	return nil
}
