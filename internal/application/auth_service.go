package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"gomarket/internal/domain/apperr"
	"gomarket/internal/domain/entity"
	repo "gomarket/internal/domain/repository"
	"gomarket/pkg/helpers"
)

// AuthService is the authentication gateway: it verifies registration and
// login credentials and issues the bearer tokens that gate every privileged
// operation.
type AuthService struct {
	Users  repo.UserRepository
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
}

func NewAuthService(users repo.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, JWT: jwt, Logger: logger}
}

// Register hashes the password and delegates creation to the credential
// store. Duplicate usernames surface as apperr.ErrUsernameTaken from the
// store's unique constraint; there is no check-then-insert here.
func (s *AuthService) Register(ctx context.Context, username, name, password, gender, location string) (*entity.User, error) {
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Username:     username,
		Name:         name,
		PasswordHash: hash,
		Gender:       gender,
		Location:     location,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "username": u.Username}).Info("user registered")
	}
	return u, nil
}

// Login validates credentials and returns a signed token. Unknown username
// and wrong password both map to apperr.ErrInvalidCredentials so the
// response cannot be used to enumerate accounts.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	u, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if u == nil || !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		return "", apperr.ErrInvalidCredentials
	}
	token, _, err := s.JWT.Generate(u.ID, u.Username)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("token generation failed")
		}
		return "", err
	}
	return token, nil
}
