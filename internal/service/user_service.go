package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"agenda/internal/cache"
	apperrors "agenda/internal/errors"
	"agenda/internal/model"
	"agenda/internal/repository"
)

const userCacheTTL = 10 * time.Minute

// UserService resolves an email address to a stable user record.
type UserService interface {
	// Resolve looks the user up by exact email match and lazily creates the
	// record on first sight. Sequential calls for the same email return the
	// same user id.
	Resolve(ctx context.Context, email string) (*model.User, error)
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
}

// NewUserService creates a new user service.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, cache: cache}
}

func (s *userService) cacheKey(email string) string {
	return fmt.Sprintf("user:email:%s", email)
}

func (s *userService) Resolve(ctx context.Context, email string) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(email)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, err
		}
		user = &model.User{Email: email}
		if createErr := s.repo.Create(ctx, user); createErr != nil {
			// A concurrent request may have created the row first; the unique
			// index on email rejects the second insert, so fall back to the
			// winner's record.
			user, err = s.repo.FindByEmail(ctx, email)
			if err != nil {
				return nil, createErr
			}
		}
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(email), payload, userCacheTTL)
	}

	return user, nil
}
