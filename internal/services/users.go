package services

import (
	"context"
	"errors"

	"github.com/diewo77/go-press/auth"
	"github.com/diewo77/go-press/internal/models"
	"github.com/diewo77/go-press/internal/repository"
	"github.com/sirupsen/logrus"
)

// EditUserInput is a partial profile update. Nil fields are left untouched.
type EditUserInput struct {
	Email     *string
	Username  *string
	FirstName *string
	LastName  *string
	Bio       *string
	AvatarURL *string
}

// UserService manages the profile of the calling user.
type UserService struct {
	users repository.UserRepository
	log   logrus.FieldLogger
}

func NewUserService(users repository.UserRepository, log logrus.FieldLogger) *UserService {
	return &UserService{users: users, log: log}
}

// Me returns the actor's own record.
func (s *UserService) Me(ctx context.Context, actor auth.Actor) (*models.User, error) {
	if actor.IsZero() {
		return nil, ErrUnauthenticated
	}
	return s.find(ctx, actor.ID)
}

// Edit applies a partial update to the actor's profile. The role cannot be
// changed here.
func (s *UserService) Edit(ctx context.Context, actor auth.Actor, in EditUserInput) (*models.User, error) {
	if actor.IsZero() {
		return nil, ErrUnauthenticated
	}
	current, err := s.find(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if in.Email != nil && *in.Email != current.Email {
		if err := s.ensureFree(ctx, s.users.FindByEmail, *in.Email, actor.ID, ErrEmailAlreadyTaken); err != nil {
			return nil, err
		}
		fields["email"] = *in.Email
	}
	if in.Username != nil && *in.Username != current.Username {
		if err := s.ensureFree(ctx, s.users.FindByUsername, *in.Username, actor.ID, ErrAlreadyTaken); err != nil {
			return nil, err
		}
		fields["username"] = *in.Username
	}
	if in.FirstName != nil {
		fields["first_name"] = *in.FirstName
	}
	if in.LastName != nil {
		fields["last_name"] = *in.LastName
	}
	if in.Bio != nil {
		fields["bio"] = *in.Bio
	}
	if in.AvatarURL != nil {
		fields["avatar_url"] = *in.AvatarURL
	}

	user, err := s.users.Update(ctx, actor.ID, fields)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, ErrUserNotFound
	case errors.Is(err, repository.ErrDuplicate):
		return nil, ErrAlreadyTaken
	case err != nil:
		return nil, err
	}
	s.log.WithField("user_id", actor.ID).Info("user updated")
	return user, nil
}

// Delete removes the actor's account together with the posts they wrote.
func (s *UserService) Delete(ctx context.Context, actor auth.Actor) error {
	if actor.IsZero() {
		return ErrUnauthenticated
	}
	if err := s.users.Delete(ctx, actor.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	s.log.WithField("user_id", actor.ID).Info("user deleted")
	return nil
}

// Exists reports whether the account behind actor is still present.
func (s *UserService) Exists(ctx context.Context, actor auth.Actor) bool {
	_, err := s.users.FindByID(ctx, actor.ID)
	return err == nil
}

func (s *UserService) find(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

type userLookup func(ctx context.Context, key string) (*models.User, error)

func (s *UserService) ensureFree(ctx context.Context, lookup userLookup, key string, self uint, taken error) error {
	other, err := lookup(ctx, key)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil
	case err != nil:
		return err
	case other.ID != self:
		return taken
	}
	return nil
}
