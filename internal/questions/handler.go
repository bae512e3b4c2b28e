package questions

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/mathquest/backend/internal/models"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires the question bank endpoints. Topic listing is public;
// everything that serves questions requires authentication.
func (h *Handler) RegisterRoutes(public, protected *mux.Router) {
	public.HandleFunc("/topics", h.ListTopics).Methods("GET")

	protected.HandleFunc("/questions", h.ListQuestions).Methods("GET")
	protected.HandleFunc("/questions/{id}", h.GetQuestion).Methods("GET")
	protected.HandleFunc("/learning-topics", h.ListLearningTopics).Methods("GET")
	protected.HandleFunc("/learning-topics/{id}/questions", h.LearningTopicQuestions).Methods("GET")
}

func (h *Handler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	var req models.QuestionListRequest

	if v := query.Get("topicId"); v != "" {
		req.TopicID = &v
	}
	if v := query.Get("difficulty"); v != "" {
		d := models.Difficulty(v)
		if !models.ValidDifficulties[d] {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "difficulty must be EASY, MEDIUM, or HARD"})
			return
		}
		req.Difficulty = &d
	}

	grade, ok := intParam(r, "grade", models.MinGradeLevel, models.MaxGradeLevel)
	if !ok {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "grade must be between 1 and 5"})
		return
	}
	req.GradeLevel = grade

	limit, ok := intParam(r, "limit", 1, maxQuestionLimit)
	if !ok {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "limit must be between 1 and 30"})
		return
	}
	if limit != nil {
		req.Limit = *limit
	}

	questions, err := h.service.ListQuestions(r.Context(), req)
	if err != nil {
		log.Printf("[handler] ListQuestions error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list questions"})
		return
	}

	writeJSON(w, http.StatusOK, models.QuestionListResponse{Questions: questions})
}

func (h *Handler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	question, err := h.service.GetQuestion(r.Context(), mux.Vars(r)["id"])
	if errors.Is(err, ErrNotFound) {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Question not found"})
		return
	}
	if err != nil {
		log.Printf("[handler] GetQuestion error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get question"})
		return
	}

	writeJSON(w, http.StatusOK, question)
}

func (h *Handler) ListTopics(w http.ResponseWriter, r *http.Request) {
	grade, ok := intParam(r, "grade", models.MinGradeLevel, models.MaxGradeLevel)
	if !ok {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "grade must be between 1 and 5"})
		return
	}

	topics, err := h.service.ListTopics(r.Context(), grade)
	if err != nil {
		log.Printf("[handler] ListTopics error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list topics"})
		return
	}

	writeJSON(w, http.StatusOK, models.TopicListResponse{Topics: topics})
}

func (h *Handler) ListLearningTopics(w http.ResponseWriter, r *http.Request) {
	topics, err := h.service.ListLearningTopics(r.Context())
	if err != nil {
		log.Printf("[handler] ListLearningTopics error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list learning topics"})
		return
	}

	writeJSON(w, http.StatusOK, models.LearningTopicListResponse{Topics: topics})
}

func (h *Handler) LearningTopicQuestions(w http.ResponseWriter, r *http.Request) {
	limit, ok := intParam(r, "limit", 1, maxLearningLimit)
	if !ok {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "limit must be between 1 and 20"})
		return
	}
	n := 0
	if limit != nil {
		n = *limit
	}

	questions, err := h.service.LearningTopicQuestions(r.Context(), mux.Vars(r)["id"], n)
	if err != nil {
		log.Printf("[handler] LearningTopicQuestions error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get learning questions"})
		return
	}

	writeJSON(w, http.StatusOK, models.QuestionListResponse{Questions: questions})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// intParam reads an optional integer query parameter. ok is false when the
// parameter is present but not an integer within [min, max].
func intParam(r *http.Request, key string, min, max int) (value *int, ok bool) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return nil, true
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < min || v > max {
		return nil, false
	}
	return &v, true
}
