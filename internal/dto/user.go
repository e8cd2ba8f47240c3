package dto

import (
	"github.com/amirhodzic/snapvision-backend/internal/models"
)

type UserRead struct {
	UID               string `json:"uid"`
	Email             string `json:"email"`
	FullName          string `json:"fullName"`
	Username          string `json:"username"`
	Role              string `json:"role"`
	Disabled          bool   `json:"disabled"`
	ProfilePictureURL string `json:"profilePictureUrl,omitempty"`
	AvailableTokens   int64  `json:"availableTokens"`
}

func UserReadFrom(u *models.User) UserRead {
	return UserRead{
		UID:               u.UID,
		Email:             u.Email,
		FullName:          u.FullName,
		Username:          u.Username,
		Role:              u.Role,
		Disabled:          u.Disabled,
		ProfilePictureURL: u.ProfilePictureURL,
		AvailableTokens:   u.AvailableTokens,
	}
}

// UpdateUserRequest is a sparse partial update; nil fields are left untouched.
type UpdateUserRequest struct {
	Email    *string `json:"email,omitempty"`
	FullName *string `json:"fullName,omitempty"`
	Username *string `json:"username,omitempty"`
	Role     *string `json:"role,omitempty"`
	Disabled *bool   `json:"disabled,omitempty"`
}

func (r UpdateUserRequest) Empty() bool {
	return r.Email == nil && r.FullName == nil && r.Username == nil &&
		r.Role == nil && r.Disabled == nil
}
