package services

import (
	"context"
	"errors"
	"sync"

	"github.com/diewo77/go-press/auth"
	"github.com/diewo77/go-press/internal/models"
	"github.com/diewo77/go-press/internal/repository"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// SignupInput is a validated signup request. An empty Role means READER.
type SignupInput struct {
	Email     string
	Username  string
	Password  string
	FirstName string
	LastName  string
	Bio       *string
	AvatarURL *string
	Role      models.Role
}

type LoginInput struct {
	Email    string
	Password string
}

// LoginResult carries the issued access token.
type LoginResult struct {
	AccessToken string `json:"access_token"`
}

// CredentialService signs users up and logs them in.
type CredentialService struct {
	users  repository.UserRepository
	hasher auth.PasswordHasher
	tokens auth.TokenIssuer
	log    logrus.FieldLogger

	dummyOnce   sync.Once
	dummyDigest string
}

func NewCredentialService(users repository.UserRepository, hasher auth.PasswordHasher, tokens auth.TokenIssuer, log logrus.FieldLogger) *CredentialService {
	return &CredentialService{users: users, hasher: hasher, tokens: tokens, log: log}
}

// Signup creates an account. The email and username are checked together
// with one lookup; a collision on either yields ErrAlreadyTaken.
func (s *CredentialService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	role := in.Role
	if role == "" {
		role = models.RoleReader
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	_, err := s.users.FindByEmailOrUsername(ctx, in.Email, in.Username)
	switch {
	case err == nil:
		return nil, ErrAlreadyTaken
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}

	digest, err := s.hasher.Hash(in.Password)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, ErrPasswordTooLong
	}
	if err != nil {
		return nil, pkgerrors.Wrap(err, "hash password")
	}
	user := &models.User{
		Email:          in.Email,
		Username:       in.Username,
		PasswordDigest: digest,
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Bio:            in.Bio,
		AvatarURL:      in.AvatarURL,
		Role:           role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyTaken
		}
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"user_id": user.ID, "role": user.Role}).Info("user signed up")
	return user, nil
}

// Login verifies the credentials and issues an access token. An unknown
// email and a wrong password both return ErrInvalidCredentials.
func (s *CredentialService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		// burn the same hashing time as a real check
		s.hasher.Verify(s.dummy(), in.Password)
		return nil, ErrInvalidCredentials
	}
	if !s.hasher.Verify(user.PasswordDigest, in.Password) {
		s.log.WithField("user_id", user.ID).Debug("login rejected")
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "issue token")
	}
	s.log.WithField("user_id", user.ID).Info("user logged in")
	return &LoginResult{AccessToken: token}, nil
}

// Logout acknowledges the request. Tokens are not tracked server side and
// simply expire.
func (s *CredentialService) Logout(_ context.Context, actor auth.Actor) error {
	if actor.IsZero() {
		return ErrUnauthenticated
	}
	s.log.WithField("user_id", actor.ID).Debug("user logged out")
	return nil
}

func (s *CredentialService) dummy() string {
	s.dummyOnce.Do(func() {
		s.dummyDigest, _ = s.hasher.Hash("not-a-real-password")
	})
	return s.dummyDigest
}
