package auth

import (
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/lib/pq"
	"github.com/mathquest/backend/internal/middleware"
	"github.com/mathquest/backend/internal/models"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

// uniqueViolation is the Postgres SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

type Handler struct {
	db     *sql.DB
	secret []byte
	ttl    time.Duration
}

func NewHandler(db *sql.DB, secret []byte, ttl time.Duration) *Handler {
	return &Handler{db: db, secret: secret, ttl: ttl}
}

func (h *Handler) RegisterRoutes(public, protected *mux.Router) {
	public.HandleFunc("/auth/register", h.Register).Methods("POST")
	public.HandleFunc("/auth/login", h.Login).Methods("POST")

	protected.HandleFunc("/auth/me", h.Me).Methods("GET")

	protected.HandleFunc("/profile", h.GetProfile).Methods("GET")
	protected.HandleFunc("/profile", h.UpdateProfile).Methods("PATCH")
	protected.HandleFunc("/profile/password", h.ChangePassword).Methods("PATCH")
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.Name = strings.TrimSpace(req.Name)

	if req.Email == "" || req.Name == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Email, name, and password are required"})
		return
	}
	if len(req.Password) < minPasswordLength {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Password must be at least 8 characters"})
		return
	}
	if req.GradeLevel == 0 {
		req.GradeLevel = models.MinGradeLevel
	}
	if !validGrade(req.GradeLevel) {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "gradeLevel must be between 1 and 5"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
		return
	}

	user, err := scanUser(h.db.QueryRowContext(r.Context(),
		`INSERT INTO users (id, email, name, password, grade_level)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+userColumns,
		uuid.NewString(), req.Email, req.Name, string(hashedPassword), req.GradeLevel,
	))
	if err != nil {
		if isUniqueViolation(err) {
			writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "An account with this email already exists"})
			return
		}
		log.Printf("[auth] Register error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to create account"})
		return
	}

	token, err := h.generateToken(user.ID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to generate token"})
		return
	}

	writeJSON(w, http.StatusCreated, models.AuthResponse{Token: token, User: *user})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	if req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Email and password are required"})
		return
	}

	var hashedPassword string
	err := h.db.QueryRowContext(r.Context(), `SELECT password FROM users WHERE email = $1`, req.Email).Scan(&hashedPassword)

	if errors.Is(err, sql.ErrNoRows) {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Invalid email or password"})
		return
	}
	if err != nil {
		log.Printf("[auth] Login error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(req.Password)); err != nil {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Invalid email or password"})
		return
	}

	user, err := h.findUser(r, "email", req.Email)
	if err != nil {
		log.Printf("[auth] Login error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
		return
	}

	token, err := h.generateToken(user.ID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to generate token"})
		return
	}

	writeJSON(w, http.StatusOK, models.AuthResponse{Token: token, User: *user})
}

// Me returns the account behind the bearer token.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
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
		log.Printf("[auth] Me error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, models.MeResponse{User: *user})
}

// ── Helpers ──────────────────────────────────────────────

const userColumns = `id, email, name, grade_level, phone, date_of_birth, avatar, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var user models.User
	var avatar []byte
	if err := row.Scan(&user.ID, &user.Email, &user.Name, &user.GradeLevel, &user.Phone,
		&user.DateOfBirth, &avatar, &user.CreatedAt, &user.UpdatedAt); err != nil {
		return nil, err
	}
	user.AvatarBase64 = encodeAvatar(avatar)
	return &user, nil
}

// findUser loads one user by id or email.
func (h *Handler) findUser(r *http.Request, column, value string) (*models.User, error) {
	return scanUser(h.db.QueryRowContext(r.Context(),
		`SELECT `+userColumns+` FROM users WHERE `+column+` = $1`, value))
}

func encodeAvatar(avatar []byte) *string {
	if len(avatar) == 0 {
		return nil
	}
	s := base64.StdEncoding.EncodeToString(avatar)
	return &s
}

func (h *Handler) generateToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     now.Add(h.ttl).Unix(),
		"iat":     now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(h.secret)
}

func validGrade(grade int) bool {
	return grade >= models.MinGradeLevel && grade <= models.MaxGradeLevel
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
