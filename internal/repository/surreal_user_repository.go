package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	surrealdb "github.com/surrealdb/surrealdb.go"

	apperrors "agenda/internal/errors"
	"agenda/internal/model"
)

// surrealUser is the document shape in the users table. The application uuid
// lives in user_id; the surreal record id stays driver-assigned so it never
// collides with the model's id field.
type surrealUser struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (d surrealUser) toModel() (*model.User, error) {
	id, err := uuid.Parse(d.UserID)
	if err != nil {
		return nil, err
	}
	return &model.User{
		ID:        id,
		Email:     d.Email,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}, nil
}

type surrealUserRepository struct {
	db *surrealdb.DB
}

// NewSurrealUserRepository builds a SurrealDB-backed repository.
func NewSurrealUserRepository(db *surrealdb.DB) UserRepository {
	return &surrealUserRepository{db: db}
}

func (r *surrealUserRepository) Create(ctx context.Context, user *model.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	raw, err := r.db.Query(
		`CREATE users SET user_id = $user_id, email = $email,
			created_at = <datetime>$now, updated_at = <datetime>$now`,
		map[string]any{
			"user_id": user.ID.String(),
			"email":   user.Email,
			"now":     surrealTime(now),
		})
	if err != nil {
		return storeErr("create user", err)
	}
	return decodeQuery(raw, nil)
}

func (r *surrealUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return r.findOne(`SELECT * FROM users WHERE user_id = $value`, id.String())
}

func (r *surrealUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(`SELECT * FROM users WHERE email = $value`, email)
}

func (r *surrealUserRepository) findOne(query, value string) (*model.User, error) {
	raw, err := r.db.Query(query, map[string]any{"value": value})
	if err != nil {
		return nil, storeErr("find user", err)
	}
	var docs []surrealUser
	if err := decodeQuery(raw, &docs); err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, apperrors.ErrUserNotFound
	}
	return docs[0].toModel()
}
