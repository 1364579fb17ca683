// Package store implements the user directory: durable persistence and
// primitive integrity for users and their activity preferences.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"github.com/CATSSNAKE/axolotl/internal/model"
	"github.com/CATSSNAKE/axolotl/internal/store/migrations"
)

const (
	pqUniqueViolation     pq.ErrorCode = "23505"
	pqForeignKeyViolation pq.ErrorCode = "23503"
)

type Store struct {
	db *sqlx.DB
}

// New wraps an existing database handle. Callers that want a ready-to-serve
// store should use Connect instead.
func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Connect opens a Postgres connection pool and brings the schema up to date.
func Connect(ctx context.Context, databaseURL string) (*Store, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	store := &Store{db: db}
	if err := store.RunMigrations(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return store, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.UpContext(ctx, s.db.DB, ".")
}

const userColumns = `user_id, created_at, firstname, email, password, city, zipcode, gender, phone`

// FindUserByEmail returns the user registered under email, or
// model.ErrorUserNotFound when no account exists.
func (s *Store) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	user := &model.User{}
	err := s.db.GetContext(ctx, user,
		`select `+userColumns+` from users where email = $1`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrorUserNotFound
		}
		return nil, fmt.Errorf("fetching user: %w", err)
	}
	return user, nil
}

// ListUsers returns every registered user, oldest account first.
func (s *Store) ListUsers(ctx context.Context) ([]model.User, error) {
	users := []model.User{}
	err := s.db.SelectContext(ctx, &users,
		`select `+userColumns+` from users order by created_at`)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

// CreateUser inserts one user row. The unique constraint on email is the
// final authority on duplicates; violations surface as ErrorDuplicateEmail.
func (s *Store) CreateUser(ctx context.Context, user *model.User) error {
	return createUser(ctx, s.db, user)
}

// CreateUserActivity inserts one activity row for an existing user.
func (s *Store) CreateUserActivity(ctx context.Context, activity *model.UserActivity) error {
	return createUserActivity(ctx, s.db, activity)
}

// CreateUserWithActivities inserts a user and all of their activity rows in
// a single transaction, so a failed activity insert never leaves an orphaned
// account behind.
func (s *Store) CreateUserWithActivities(ctx context.Context, user *model.User, activities []model.UserActivity) error {
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		if err := createUser(ctx, tx, user); err != nil {
			return err
		}
		for i := range activities {
			if err := createUserActivity(ctx, tx, &activities[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteUserByEmail removes the user and, via cascade, all of their activity
// rows. The pre-deletion row is returned for confirmation.
func (s *Store) DeleteUserByEmail(ctx context.Context, email string) (*model.User, error) {
	deleted := &model.User{}
	err := s.db.GetContext(ctx, deleted,
		`delete from users where email = $1 returning `+userColumns, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrorUserNotFound
		}
		return nil, fmt.Errorf("deleting user: %w", err)
	}
	return deleted, nil
}

// FindMatches returns one join row per user activity matching all three
// filters exactly, as stored. An empty result is not an error here; the
// matching service decides how to report it.
func (s *Store) FindMatches(ctx context.Context, activityName, skillLevel, gender string) ([]model.Match, error) {
	matches := []model.Match{}
	err := s.db.SelectContext(ctx, &matches,
		`select u.user_id, u.firstname, u.email, u.city, u.zipcode, u.gender, u.phone,
			a.activityname, a.skilllevel
		from users u
		join useractivities a on a.user_id = u.user_id
		where a.activityname = $1 and a.skilllevel = $2 and u.gender = $3`,
		activityName, skillLevel, gender)
	if err != nil {
		return nil, fmt.Errorf("finding matches: %w", err)
	}
	return matches, nil
}

func createUser(ctx context.Context, e sqlx.ExtContext, user *model.User) error {
	res, err := sqlx.NamedExecContext(ctx, e, `insert into users
		(user_id, created_at, firstname, email, password, city, zipcode, gender, phone)
		values (:user_id, :created_at, :firstname, :email, :password, :city, :zipcode, :gender, :phone)`, user)
	if err != nil {
		if isPQError(err, pqUniqueViolation) {
			return model.ErrorDuplicateEmail
		}
		return fmt.Errorf("inserting user: %w", err)
	}
	if rows, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	} else if rows != 1 {
		return fmt.Errorf("expected 1 row to be affected, got %d", rows)
	}
	return nil
}

func createUserActivity(ctx context.Context, e sqlx.ExtContext, activity *model.UserActivity) error {
	_, err := sqlx.NamedExecContext(ctx, e, `insert into useractivities
		(useractivity_id, user_id, activityname, skilllevel)
		values (:useractivity_id, :user_id, :activityname, :skilllevel)`, activity)
	if err != nil {
		if isPQError(err, pqForeignKeyViolation) {
			return model.ErrorMissingUser
		}
		return fmt.Errorf("inserting user activity: %w", err)
	}
	return nil
}

// withTx runs fn inside a transaction, committing on success and rolling
// back on error or panic. Panics are rethrown.
func (s *Store) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	err = fn(tx)
	return err
}

func isPQError(err error, code pq.ErrorCode) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == code
}
