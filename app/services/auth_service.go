package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/dinehub/app/models"
	"github.com/shashiranjanraj/dinehub/pkg/apperr"
	"github.com/shashiranjanraj/dinehub/pkg/auth"
)

// UserFinder is the persistence contract the auth service depends on.
type UserFinder interface {
	FindByUsername(ctx context.Context, username string) (models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (models.User, error)
}

// AuthService verifies staff credentials and issues signed tokens.
type AuthService struct {
	users UserFinder
}

func NewAuthService(users UserFinder) *AuthService {
	return &AuthService{users: users}
}

// Login checks the credentials and returns the user together with a signed
// token. Unknown usernames and wrong passwords are indistinguishable to the
// caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (models.User, string, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, apperr.ErrNotFound) {
		return models.User{}, "", apperr.ErrUnauthenticated
	}
	if err != nil {
		return models.User{}, "", err
	}

	if !auth.CheckPassword(user.Password, password) {
		return models.User{}, "", apperr.ErrUnauthenticated
	}

	token, err := auth.GenerateToken(user.ID.Hex(), user.Username, string(user.Role))
	if err != nil {
		return models.User{}, "", err
	}

	return user, token, nil
}

// Profile returns the account behind a token's user id.
func (s *AuthService) Profile(ctx context.Context, userID string) (models.User, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return models.User{}, apperr.ErrUnauthenticated
	}
	return s.users.FindByID(ctx, id)
}
