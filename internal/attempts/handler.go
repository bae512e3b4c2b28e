package attempts

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/mathquest/backend/internal/middleware"
	"github.com/mathquest/backend/internal/models"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers submission, history and stats endpoints on the
// protected subrouter.
func (h *Handler) RegisterRoutes(protected *mux.Router) {
	protected.HandleFunc("/quiz/submit", h.SubmitQuiz).Methods("POST")
	protected.HandleFunc("/quiz/attempts", h.ListAttempts).Methods("GET")

	protected.HandleFunc("/battle/submit", h.SubmitBattle).Methods("POST")
	protected.HandleFunc("/battle/history", h.ListBattles).Methods("GET")

	protected.HandleFunc("/learning-topics/{id}/submit", h.SubmitLearning).Methods("POST")

	protected.HandleFunc("/stats", h.GetStats).Methods("GET")
}

func (h *Handler) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.SubmitQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	resp, err := h.service.SubmitQuiz(r.Context(), userID, req)
	if err != nil {
		h.submitError(w, "SubmitQuiz", err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) SubmitLearning(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.SubmitLearningRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	resp, err := h.service.SubmitLearning(r.Context(), userID, mux.Vars(r)["id"], req.Answers)
	if err != nil {
		h.submitError(w, "SubmitLearning", err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) SubmitBattle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.SubmitBattleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	resp, err := h.service.SubmitBattle(r.Context(), userID, req)
	if err != nil {
		h.submitError(w, "SubmitBattle", err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) ListAttempts(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	attempts, err := h.service.RecentAttempts(r.Context(), userID)
	if err != nil {
		log.Printf("[handler] ListAttempts error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list attempts"})
		return
	}

	writeJSON(w, http.StatusOK, models.AttemptListResponse{Attempts: attempts})
}

func (h *Handler) ListBattles(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	battles, err := h.service.RecentBattles(r.Context(), userID)
	if err != nil {
		log.Printf("[handler] ListBattles error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list battles"})
		return
	}

	writeJSON(w, http.StatusOK, models.BattleListResponse{Battles: battles})
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	stats, err := h.service.Stats(r.Context(), userID)
	if err != nil {
		log.Printf("[handler] GetStats error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get stats"})
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) submitError(w http.ResponseWriter, op string, err error) {
	if IsValidationError(err) {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}
	log.Printf("[handler] %s error: %v", op, err)
	writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to submit answers"})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
