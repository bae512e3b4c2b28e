package models

import "time"

type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	GradeLevel   int        `json:"gradeLevel"`
	Phone        *string    `json:"phone"`
	DateOfBirth  *time.Time `json:"dateOfBirth"`
	AvatarBase64 *string    `json:"avatarBase64"`
	Password     string     `json:"-"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

type RegisterRequest struct {
	Email      string `json:"email"`
	Name       string `json:"name"`
	Password   string `json:"password"`
	GradeLevel int    `json:"gradeLevel,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest fields left nil keep their stored value. DateOfBirth
// is a calendar date (2006-01-02) or an RFC 3339 timestamp.
type UpdateProfileRequest struct {
	Name         *string `json:"name,omitempty"`
	Email        *string `json:"email,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	DateOfBirth  *string `json:"dateOfBirth,omitempty"`
	AvatarBase64 *string `json:"avatarBase64,omitempty"`
	GradeLevel   *int    `json:"gradeLevel,omitempty"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type MeResponse struct {
	User User `json:"user"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
