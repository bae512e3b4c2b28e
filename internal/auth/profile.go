package auth

import (
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/mathquest/backend/internal/middleware"
	"github.com/mathquest/backend/internal/models"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPhoneLength = 6
	maxPhoneLength = 20
	maxAvatarBytes = 1 << 20
	dateLayout     = "2006-01-02"
)

// profileUpdate is a validated UpdateProfileRequest. Nil fields are left
// unchanged in the database.
type profileUpdate struct {
	name        *string
	email       *string
	phone       *string
	dateOfBirth *time.Time
	avatar      []byte
	gradeLevel  *int
}

// parseProfileUpdate normalises and checks every supplied field. now bounds
// the date of birth.
func parseProfileUpdate(req models.UpdateProfileRequest, now time.Time) (*profileUpdate, error) {
	var u profileUpdate

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, errors.New("name must not be empty")
		}
		u.name = &name
	}

	if req.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*req.Email))
		addr, err := mail.ParseAddress(email)
		if err != nil || addr.Address != email {
			return nil, errors.New("email must be a valid address")
		}
		u.email = &email
	}

	if req.Phone != nil {
		phone := strings.TrimSpace(*req.Phone)
		if len(phone) < minPhoneLength || len(phone) > maxPhoneLength {
			return nil, fmt.Errorf("phone must be %d to %d characters", minPhoneLength, maxPhoneLength)
		}
		u.phone = &phone
	}

	if req.DateOfBirth != nil {
		dob, err := parseDate(*req.DateOfBirth)
		if err != nil {
			return nil, errors.New("dateOfBirth must be a date (YYYY-MM-DD)")
		}
		if dob.After(now) {
			return nil, errors.New("dateOfBirth must not be in the future")
		}
		u.dateOfBirth = &dob
	}

	if req.AvatarBase64 != nil {
		avatar, err := base64.StdEncoding.DecodeString(*req.AvatarBase64)
		if err != nil || len(avatar) == 0 {
			return nil, errors.New("avatarBase64 must be valid base64")
		}
		if len(avatar) > maxAvatarBytes {
			return nil, errors.New("avatar must be at most 1 MiB")
		}
		u.avatar = avatar
	}

	if req.GradeLevel != nil {
		if !validGrade(*req.GradeLevel) {
			return nil, errors.New("gradeLevel must be between 1 and 5")
		}
		u.gradeLevel = req.GradeLevel
	}

	return &u, nil
}

// nullableBytes maps a nil slice to SQL NULL; lib/pq would otherwise send an
// empty bytea.
func nullableBytes(b []byte) interface{} {
	if b == nil {
		return nil
	}
	return b
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// ── Profile ──────────────────────────────────────────────

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	user, err := h.findUser(r, "id", userID)
	if errors.Is(err, sql.ErrNoRows) {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "User not found"})
		return
	}
	if err != nil {
		log.Printf("[auth] GetProfile error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// UpdateProfile changes any of name, email, phone, date of birth, avatar and
// grade level. Omitted fields keep their stored value.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	u, err := parseProfileUpdate(req, time.Now())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	user, err := scanUser(h.db.QueryRowContext(r.Context(),
		`UPDATE users
		 SET name = COALESCE($2, name),
		     email = COALESCE($3, email),
		     phone = COALESCE($4, phone),
		     date_of_birth = COALESCE($5, date_of_birth),
		     avatar = COALESCE($6, avatar),
		     grade_level = COALESCE($7, grade_level),
		     updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+userColumns,
		userID, u.name, u.email, u.phone, u.dateOfBirth, nullableBytes(u.avatar), u.gradeLevel,
	))
	if errors.Is(err, sql.ErrNoRows) {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "User not found"})
		return
	}
	if isUniqueViolation(err) {
		writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "An account with this email already exists"})
		return
	}
	if err != nil {
		log.Printf("[auth] UpdateProfile error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to update profile"})
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "currentPassword and newPassword are required"})
		return
	}
	if len(req.NewPassword) < minPasswordLength {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Password must be at least 8 characters"})
		return
	}

	var hashedPassword string
	err := h.db.QueryRowContext(r.Context(), `SELECT password FROM users WHERE id = $1`, userID).Scan(&hashedPassword)
	if errors.Is(err, sql.ErrNoRows) {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "User not found"})
		return
	}
	if err != nil {
		log.Printf("[auth] ChangePassword error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(req.CurrentPassword)); err != nil {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Current password is incorrect"})
		return
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
		return
	}

	if _, err := h.db.ExecContext(r.Context(),
		`UPDATE users SET password = $2, updated_at = NOW() WHERE id = $1`, userID, string(newHash),
	); err != nil {
		log.Printf("[auth] ChangePassword error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to change password"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
