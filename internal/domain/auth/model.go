// Package auth provides authentication and authorization domain logic.
package auth

import (
	"context"
	"time"

	"github.com/Bench-10/LJean-IMS-sub002/internal/core/apperror"
	"github.com/Bench-10/LJean-IMS-sub002/internal/core/id"
)

// Roles match the front office staffing model. Owner sees every branch;
// everyone else is scoped to the branch they were hired into.
const (
	RoleOwner          = "Owner"
	RoleBranchManager  = "Branch Manager"
	RoleSalesAssociate = "Sales Associate"
	RoleInventoryStaff = "Inventory Staff"
)

// User represents a system user.
type User struct {
	ID                  id.ID      `db:"user_id" json:"userId"`
	Username            string     `db:"username" json:"username"`
	PasswordHash        string     `db:"password_hash" json:"-"`
	FullName            string     `db:"full_name" json:"fullName"`
	Role                string     `db:"role" json:"role"`
	BranchID            id.ID      `db:"branch_id" json:"branchId"`
	IsActive            bool       `db:"is_active" json:"isActive"`
	LastLoginAt         *time.Time `db:"last_login_at" json:"lastLoginAt,omitempty"`
	FailedLoginAttempts int        `db:"failed_login_attempts" json:"-"`
	LockedUntil         *time.Time `db:"locked_until" json:"-"`
	CreatedAt           time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt           time.Time  `db:"updated_at" json:"updatedAt"`
}

// NewUser creates a new active user.
func NewUser(username, passwordHash, fullName, role string, branchID id.ID) *User {
	now := time.Now()
	return &User{
		ID:           id.New(),
		Username:     username,
		PasswordHash: passwordHash,
		FullName:     fullName,
		Role:         role,
		BranchID:     branchID,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Validate validates user data.
func (u *User) Validate(ctx context.Context) error {
	if u.Username == "" {
		return apperror.NewValidation("username is required").WithDetail("field", "username")
	}
	switch u.Role {
	case RoleOwner, RoleBranchManager, RoleSalesAssociate, RoleInventoryStaff:
	default:
		return apperror.NewValidation("unknown role").WithDetail("role", u.Role)
	}
	if u.Role != RoleOwner && id.IsNil(u.BranchID) {
		return apperror.NewValidation("branch is required for non-owner roles").
			WithDetail("field", "branchId")
	}
	return nil
}

// IsLocked returns true if the account is locked.
func (u *User) IsLocked() bool {
	if u.LockedUntil == nil {
		return false
	}
	return time.Now().Before(*u.LockedUntil)
}

// CanLogin checks if the user can login.
func (u *User) CanLogin() error {
	if !u.IsActive {
		return apperror.NewForbidden("account is disabled")
	}
	if u.IsLocked() {
		return apperror.NewForbidden("account is temporarily locked")
	}
	return nil
}

// RecordFailedLogin increments the failed login counter.
func (u *User) RecordFailedLogin(maxAttempts int, lockDuration time.Duration) {
	u.FailedLoginAttempts++
	if u.FailedLoginAttempts >= maxAttempts {
		lockUntil := time.Now().Add(lockDuration)
		u.LockedUntil = &lockUntil
	}
}

// RecordSuccessfulLogin resets the failed login counter.
func (u *User) RecordSuccessfulLogin() {
	u.FailedLoginAttempts = 0
	u.LockedUntil = nil
	now := time.Now()
	u.LastLoginAt = &now
}

// LoginRequest is the credentials payload.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest creates a staff account.
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"fullName"`
	Role     string `json:"role" binding:"required"`
	BranchID id.ID  `json:"branchId"`
}

// LoginResult carries the issued token and the authenticated user.
type LoginResult struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
	User        *User     `json:"user"`
}
