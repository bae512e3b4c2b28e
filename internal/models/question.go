package models

import "time"

type Difficulty string

const (
	DifficultyEasy   Difficulty = "EASY"
	DifficultyMedium Difficulty = "MEDIUM"
	DifficultyHard   Difficulty = "HARD"
)

var ValidDifficulties = map[Difficulty]bool{
	DifficultyEasy:   true,
	DifficultyMedium: true,
	DifficultyHard:   true,
}

const (
	MinGradeLevel = 1
	MaxGradeLevel = 5
)

// ── Core Structs ───────────────────────────────────────

type Topic struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	GradeLevel    int       `json:"gradeLevel"`
	QuestionCount int       `json:"questionCount"`
	CreatedAt     time.Time `json:"createdAt"`
}

type LearningTopic struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   *string   `json:"description"`
	GradeLevel    int       `json:"gradeLevel"`
	QuestionCount int       `json:"questionCount"`
	CreatedAt     time.Time `json:"createdAt"`
}

// TopicRef is the slice of a topic embedded in a question.
type TopicRef struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	GradeLevel int    `json:"gradeLevel"`
}

// Question is immutable once stored. AnswerIndex is always < len(Choices).
type Question struct {
	ID            string     `json:"id"`
	Prompt        string     `json:"prompt"`
	Choices       []string   `json:"choices"`
	AnswerIndex   int        `json:"answerIndex"`
	Explanation   *string    `json:"explanation"`
	Difficulty    Difficulty `json:"difficulty"`
	GradeLevel    int        `json:"gradeLevel"`
	Topic         *TopicRef  `json:"topic"`
	LearningTopic *TopicRef  `json:"learningTopic"`
}

// ── Request Types ────────────────────────────────────────

type QuestionListRequest struct {
	TopicID    *string
	GradeLevel *int
	Difficulty *Difficulty
	Limit      int
}

// ── Response Types ────────────────────────────────────────

type QuestionListResponse struct {
	Questions []Question `json:"questions"`
}

type TopicListResponse struct {
	Topics []Topic `json:"topics"`
}

type LearningTopicListResponse struct {
	Topics []LearningTopic `json:"topics"`
}
