package dto

import (
	"time"

	"github.com/Bench-10/LJean-IMS-sub002/internal/core/id"
	"github.com/Bench-10/LJean-IMS-sub002/internal/domain/auth"
)

// UserResponse is the API shape of a user.
type UserResponse struct {
	UserID      string     `json:"userId"`
	Username    string     `json:"username"`
	FullName    string     `json:"fullName,omitempty"`
	Role        string     `json:"role"`
	BranchID    string     `json:"branchId,omitempty"`
	IsActive    bool       `json:"isActive"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
}

// LoginResponse carries the issued token.
type LoginResponse struct {
	AccessToken string       `json:"accessToken"`
	ExpiresAt   time.Time    `json:"expiresAt"`
	User        UserResponse `json:"user"`
}

// FromUser converts a domain user.
func FromUser(u *auth.User) UserResponse {
	resp := UserResponse{
		UserID:      u.ID.String(),
		Username:    u.Username,
		FullName:    u.FullName,
		Role:        u.Role,
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
	}
	if !id.IsNil(u.BranchID) {
		resp.BranchID = u.BranchID.String()
	}
	return resp
}
