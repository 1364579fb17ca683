package matching

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/CATSSNAKE/axolotl/internal/model"
)

// fakeStore is an in-memory stand-in for the directory store, keyed by email
// and honouring the same sentinel errors.
type fakeStore struct {
	users      map[string]*model.User
	activities []model.UserActivity
	failWith   error
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: map[string]*model.User{}}
}

func (f *fakeStore) FindUserByEmail(_ context.Context, email string) (*model.User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	user, ok := f.users[email]
	if !ok {
		return nil, model.ErrorUserNotFound
	}
	return user, nil
}

func (f *fakeStore) ListUsers(_ context.Context) ([]model.User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	users := []model.User{}
	for _, user := range f.users {
		users = append(users, *user)
	}
	return users, nil
}

func (f *fakeStore) CreateUserWithActivities(_ context.Context, user *model.User, activities []model.UserActivity) error {
	if f.failWith != nil {
		return f.failWith
	}
	if _, ok := f.users[user.Email]; ok {
		return model.ErrorDuplicateEmail
	}
	f.users[user.Email] = user
	f.activities = append(f.activities, activities...)
	return nil
}

func (f *fakeStore) DeleteUserByEmail(_ context.Context, email string) (*model.User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	user, ok := f.users[email]
	if !ok {
		return nil, model.ErrorUserNotFound
	}
	delete(f.users, email)

	kept := f.activities[:0]
	for _, activity := range f.activities {
		if activity.UserID != user.ID {
			kept = append(kept, activity)
		}
	}
	f.activities = kept
	return user, nil
}

func (f *fakeStore) FindMatches(_ context.Context, activityName, skillLevel, gender string) ([]model.Match, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	matches := []model.Match{}
	for _, user := range f.users {
		if user.Gender == nil || *user.Gender != gender {
			continue
		}
		for _, activity := range f.activities {
			if activity.UserID == user.ID && activity.Activity == activityName && activity.SkillLevel == skillLevel {
				matches = append(matches, model.Match{
					UserID:     user.ID,
					FirstName:  user.FirstName,
					Email:      user.Email,
					Gender:     user.Gender,
					Activity:   activity.Activity,
					SkillLevel: activity.SkillLevel,
				})
			}
		}
	}
	return matches, nil
}

func (f *fakeStore) activitiesFor(id model.UserID) []model.UserActivity {
	owned := []model.UserActivity{}
	for _, activity := range f.activities {
		if activity.UserID == id {
			owned = append(owned, activity)
		}
	}
	return owned
}

func signupParams(email string) *model.SignupParams {
	return &model.SignupParams{
		Email:     email,
		Password:  "password",
		FirstName: "testuser",
		Gender:    "Female",
		Activity: map[string]string{
			"Golf":   model.SkillBeginner,
			"Hiking": model.SkillAdvanced,
		},
	}
}

func TestSignup(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	t.Run("rejects missing credentials", func(t *testing.T) {
		service := New(newFakeStore())
		_, err := service.Signup(ctx, &model.SignupParams{Email: "a@b.com"})
		assert.ErrorIs(err, model.ErrorCredentialsRequired)
		_, err = service.Signup(ctx, &model.SignupParams{Password: "pw"})
		assert.ErrorIs(err, model.ErrorCredentialsRequired)
	})

	t.Run("stores a hash that verifies but is not the plaintext", func(t *testing.T) {
		store := newFakeStore()
		service := New(store)

		message, err := service.Signup(ctx, signupParams("testuser@testdomain.com"))
		assert.Nil(err)
		assert.Equal("Account successfully created for testuser@testdomain.com", message)

		user, err := store.FindUserByEmail(ctx, "testuser@testdomain.com")
		require.NoError(t, err)
		assert.NotEqual("password", user.Password)
		assert.Nil(bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password")))
	})

	t.Run("creates one activity row per map entry", func(t *testing.T) {
		store := newFakeStore()
		service := New(store)

		_, err := service.Signup(ctx, signupParams("testuser@testdomain.com"))
		assert.Nil(err)

		user, err := store.FindUserByEmail(ctx, "testuser@testdomain.com")
		require.NoError(t, err)
		assert.Len(store.activitiesFor(user.ID), 2)
	})

	t.Run("rejects duplicate emails without a second row", func(t *testing.T) {
		store := newFakeStore()
		service := New(store)

		_, err := service.Signup(ctx, signupParams("testuser@testdomain.com"))
		assert.Nil(err)
		_, err = service.Signup(ctx, signupParams("testuser@testdomain.com"))
		assert.ErrorIs(err, model.ErrorDuplicateEmail)
		assert.Len(store.users, 1)
		assert.Len(store.activities, 2)
	})
}

func TestLogin(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	store := newFakeStore()
	service := New(store)
	_, err := service.Signup(ctx, signupParams("testuser@testdomain.com"))
	require.NoError(t, err)

	t.Run("succeeds with the right password", func(t *testing.T) {
		user, err := service.Login(ctx, "testuser@testdomain.com", "password")
		assert.Nil(err)
		assert.Equal("testuser@testdomain.com", user.Email)
	})

	t.Run("fails with the wrong password", func(t *testing.T) {
		_, err := service.Login(ctx, "testuser@testdomain.com", "guess")
		assert.ErrorIs(err, model.ErrorPasswordMismatch)
	})

	t.Run("fails for an unknown email", func(t *testing.T) {
		_, err := service.Login(ctx, "nobody@testdomain.com", "password")
		assert.ErrorIs(err, model.ErrorUserNotFound)
	})
}

func TestDelete(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	store := newFakeStore()
	service := New(store)
	_, err := service.Signup(ctx, signupParams("testuser@testdomain.com"))
	require.NoError(t, err)

	t.Run("removes the user and all of their activities", func(t *testing.T) {
		deleted, err := service.Delete(ctx, "testuser@testdomain.com")
		assert.Nil(err)
		assert.Equal("testuser@testdomain.com", deleted.Email)
		assert.Empty(store.users)
		assert.Empty(store.activities)
	})

	t.Run("fails for an unknown email", func(t *testing.T) {
		_, err := service.Delete(ctx, "testuser@testdomain.com")
		assert.ErrorIs(err, model.ErrorUserNotFound)
	})
}

func TestSearch(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	store := newFakeStore()
	service := New(store)

	_, err := service.Signup(ctx, signupParams("aimee@testdomain.com"))
	require.NoError(t, err)
	_, err = service.Signup(ctx, signupParams("mary@testdomain.com"))
	require.NoError(t, err)

	bill := signupParams("bill@testdomain.com")
	bill.Gender = "Male"
	_, err = service.Signup(ctx, bill)
	require.NoError(t, err)

	t.Run("requires all three filters", func(t *testing.T) {
		_, err := service.Search(ctx, "Golf", "", "Female")
		assert.ErrorIs(err, model.ErrorFilterRequired)
	})

	t.Run("returns one join row per matching user activity", func(t *testing.T) {
		matches, err := service.Search(ctx, "Golf", model.SkillBeginner, "Female")
		assert.Nil(err)
		assert.Len(matches, 2)
		for _, match := range matches {
			assert.Equal("Golf", match.Activity)
			assert.Equal(model.SkillBeginner, match.SkillLevel)
		}
	})

	t.Run("reports zero matches as a failure", func(t *testing.T) {
		_, err := service.Search(ctx, "Golf", model.SkillIntermediate, "Female")
		assert.ErrorIs(err, model.ErrorNoMatches)
	})
}

func TestListUsers(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	store := newFakeStore()
	service := New(store)

	t.Run("fails when the directory is empty", func(t *testing.T) {
		_, err := service.ListUsers(ctx)
		assert.ErrorIs(err, model.ErrorNoUsers)
	})

	t.Run("returns every registered user", func(t *testing.T) {
		_, err := service.Signup(ctx, signupParams("testuser@testdomain.com"))
		assert.Nil(err)
		users, err := service.ListUsers(ctx)
		assert.Nil(err)
		assert.Len(users, 1)
	})
}

// The end-to-end path: signup, login with the same credentials, then delete.
func TestSignupLoginDelete(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	store := newFakeStore()
	service := New(store)

	_, err := service.Signup(ctx, &model.SignupParams{
		Email:     "a@b.com",
		Password:  "pw",
		FirstName: "Bob",
		Activity:  map[string]string{"Golf": model.SkillBeginner},
	})
	assert.Nil(err)

	user, err := store.FindUserByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	activities := store.activitiesFor(user.ID)
	require.Len(t, activities, 1)
	assert.Equal("Golf", activities[0].Activity)
	assert.Equal(model.SkillBeginner, activities[0].SkillLevel)

	_, err = service.Login(ctx, "a@b.com", "pw")
	assert.Nil(err)

	_, err = service.Delete(ctx, "a@b.com")
	assert.Nil(err)
	assert.Empty(store.users)
	assert.Empty(store.activities)
}
