// Package matching implements signup, login verification, account deletion
// and filtered partner search on top of the user directory store.
package matching

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/CATSSNAKE/axolotl/internal/model"
)

const bcryptCost = 10

// Store is the slice of the directory store the matching service depends on.
type Store interface {
	FindUserByEmail(ctx context.Context, email string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	CreateUserWithActivities(ctx context.Context, user *model.User, activities []model.UserActivity) error
	DeleteUserByEmail(ctx context.Context, email string) (*model.User, error)
	FindMatches(ctx context.Context, activityName, skillLevel, gender string) ([]model.Match, error)
}

type service struct {
	store Store
}

func New(store Store) *service {
	return &service{store: store}
}

// Signup creates an account plus one activity row per entry in the submitted
// activity map. The inserts run in one store transaction, so a failure part
// way through never leaves an account without its activities.
func (s *service) Signup(ctx context.Context, params *model.SignupParams) (string, error) {
	if params.Email == "" || params.Password == "" {
		return "", model.ErrorCredentialsRequired
	}

	passwordBytes, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("generating encoded password: %w", err)
	}

	// Pre-check only; the unique constraint on email is the final authority
	// when two signups race.
	_, err = s.store.FindUserByEmail(ctx, params.Email)
	if err == nil {
		return "", model.ErrorDuplicateEmail
	}
	if !errors.Is(err, model.ErrorUserNotFound) {
		return "", fmt.Errorf("checking for existing account: %w", err)
	}

	user := &model.User{
		ID:        model.UserID(model.CreateID()),
		CreatedAt: time.Now().UTC(),
		FirstName: params.FirstName,
		Email:     params.Email,
		Password:  string(passwordBytes),
		City:      model.Optional(params.City),
		ZipCode:   params.ZipCode,
		Gender:    model.Optional(params.Gender),
		Phone:     model.Optional(params.Phone),
	}

	activities := make([]model.UserActivity, 0, len(params.Activity))
	for name, level := range params.Activity {
		activities = append(activities, model.UserActivity{
			ID:         model.CreateID(),
			UserID:     user.ID,
			Activity:   name,
			SkillLevel: level,
		})
	}

	if err := s.store.CreateUserWithActivities(ctx, user, activities); err != nil {
		return "", fmt.Errorf("creating account: %w", err)
	}

	return fmt.Sprintf("Account successfully created for %s", params.Email), nil
}

// Login verifies email and password against the stored bcrypt hash.
func (s *service) Login(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.store.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrorUserNotFound) {
			return nil, model.ErrorUserNotFound
		}
		return nil, fmt.Errorf("fetching account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, model.ErrorPasswordMismatch
	}

	return user, nil
}

// Delete removes the account registered under email along with all of its
// activity rows, returning the deleted record for confirmation.
func (s *service) Delete(ctx context.Context, email string) (*model.User, error) {
	deleted, err := s.store.DeleteUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrorUserNotFound) {
			return nil, model.ErrorUserNotFound
		}
		return nil, fmt.Errorf("deleting account: %w", err)
	}
	return deleted, nil
}

// Search returns one join row per user holding the requested activity at the
// requested skill level and matching the gender filter. All three filters
// are required; zero matches is reported as model.ErrorNoMatches.
func (s *service) Search(ctx context.Context, activityName, skillLevel, gender string) ([]model.Match, error) {
	if activityName == "" || skillLevel == "" || gender == "" {
		return nil, model.ErrorFilterRequired
	}

	matches, err := s.store.FindMatches(ctx, activityName, skillLevel, gender)
	if err != nil {
		return nil, fmt.Errorf("searching for matches: %w", err)
	}
	if len(matches) == 0 {
		return nil, model.ErrorNoMatches
	}
	return matches, nil
}

// ListUsers returns every registered user.
func (s *service) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	if len(users) == 0 {
		return nil, model.ErrorNoUsers
	}
	return users, nil
}
