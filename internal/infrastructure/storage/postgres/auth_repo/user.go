// Package auth_repo provides PostgreSQL implementations for auth
// repositories.
package auth_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/Bench-10/LJean-IMS-sub002/internal/core/apperror"
	"github.com/Bench-10/LJean-IMS-sub002/internal/core/id"
	"github.com/Bench-10/LJean-IMS-sub002/internal/domain/auth"
	"github.com/Bench-10/LJean-IMS-sub002/internal/infrastructure/storage/postgres"
)

const userTable = "users"

var userColumns = []string{
	"user_id", "username", "password_hash", "full_name", "role",
	"branch_id", "is_active", "last_login_at", "failed_login_attempts",
	"locked_until", "created_at", "updated_at",
}

// Compile-time check that UserRepo implements auth.UserRepository.
var _ auth.UserRepository = (*UserRepo)(nil)

// UserRepo implements auth.UserRepository.
type UserRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

// NewUserRepo creates a new user repository.
func NewUserRepo(txm *postgres.TxManager) *UserRepo {
	return &UserRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a user.
func (r *UserRepo) Create(ctx context.Context, user *auth.User) error {
	q := r.builder.Insert(userTable).
		Columns(userColumns...).
		Values(
			user.ID, user.Username, user.PasswordHash, user.FullName, user.Role,
			user.BranchID, user.IsActive, user.LastLoginAt, user.FailedLoginAttempts,
			user.LockedUntil, user.CreatedAt, user.UpdatedAt,
		)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// Update rewrites the mutable user fields.
func (r *UserRepo) Update(ctx context.Context, user *auth.User) error {
	q := r.builder.Update(userTable).
		Set("full_name", user.FullName).
		Set("role", user.Role).
		Set("branch_id", user.BranchID).
		Set("is_active", user.IsActive).
		Set("last_login_at", user.LastLoginAt).
		Set("failed_login_attempts", user.FailedLoginAttempts).
		Set("locked_until", user.LockedUntil).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"user_id": user.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("user", user.ID)
	}
	return nil
}

// GetByID retrieves a user by identity.
func (r *UserRepo) GetByID(ctx context.Context, userID id.ID) (*auth.User, error) {
	return r.getBy(ctx, squirrel.Eq{"user_id": userID}, userID)
}

// GetByUsername retrieves a user by login name.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*auth.User, error) {
	return r.getBy(ctx, squirrel.Eq{"username": username}, username)
}

func (r *UserRepo) getBy(ctx context.Context, where squirrel.Eq, key any) (*auth.User, error) {
	q := r.builder.Select(userColumns...).
		From(userTable).
		Where(where).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var user auth.User
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &user, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("user", key)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

// Exists reports whether a username is taken.
func (r *UserRepo) Exists(ctx context.Context, username string) (bool, error) {
	q := r.builder.Select("COUNT(*)").
		From(userTable).
		Where(squirrel.Eq{"username": username})

	sql, args, err := q.ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var count int64
	if err := r.txm.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("check username: %w", err)
	}
	return count > 0, nil
}
