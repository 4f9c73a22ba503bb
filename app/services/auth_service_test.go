package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/dinehub/app/models"
	"github.com/shashiranjanraj/dinehub/app/services"
	"github.com/shashiranjanraj/dinehub/pkg/apperr"
	"github.com/shashiranjanraj/dinehub/pkg/auth"
)

type userFinderStub struct {
	users []models.User
}

func (s *userFinderStub) FindByUsername(_ context.Context, username string) (models.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, apperr.ErrNotFound
}

func (s *userFinderStub) FindByID(_ context.Context, id primitive.ObjectID) (models.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, apperr.ErrNotFound
}

func seedUser(t *testing.T, username, password string, role models.Role) models.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	return models.User{
		ID:       primitive.NewObjectID(),
		Username: username,
		Password: hash,
		Role:     role,
	}
}

func TestAuthService_Login(t *testing.T) {
	counter := seedUser(t, "counter", "123456", models.RoleCounter)
	svc := services.NewAuthService(&userFinderStub{users: []models.User{counter}})

	user, token, err := svc.Login(context.Background(), "counter", "123456")

	require.NoError(t, err)
	assert.Equal(t, counter.ID, user.ID)
	require.NotEmpty(t, token)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, counter.ID.Hex(), claims.UserID)
	assert.Equal(t, "counter", claims.Role)
}

func TestAuthService_LoginFailuresAreUniform(t *testing.T) {
	counter := seedUser(t, "counter", "123456", models.RoleCounter)
	svc := services.NewAuthService(&userFinderStub{users: []models.User{counter}})

	// Wrong password and unknown username must be indistinguishable.
	_, _, wrongPass := svc.Login(context.Background(), "counter", "hunter2")
	_, _, unknownUser := svc.Login(context.Background(), "ghost", "123456")

	assert.ErrorIs(t, wrongPass, apperr.ErrUnauthenticated)
	assert.ErrorIs(t, unknownUser, apperr.ErrUnauthenticated)
}

func TestAuthService_Profile(t *testing.T) {
	kitchen := seedUser(t, "kitchen", "123456", models.RoleKitchen)
	svc := services.NewAuthService(&userFinderStub{users: []models.User{kitchen}})

	user, err := svc.Profile(context.Background(), kitchen.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "kitchen", user.Username)

	_, err = svc.Profile(context.Background(), "not-hex")
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)

	_, err = svc.Profile(context.Background(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
