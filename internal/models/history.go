package models

import "time"

type AttemptMode string

const (
	ModePractice  AttemptMode = "PRACTICE"
	ModePlacement AttemptMode = "PLACEMENT"
	ModeQuiz      AttemptMode = "QUIZ"
)

var ValidAttemptModes = map[AttemptMode]bool{
	ModePractice:  true,
	ModePlacement: true,
	ModeQuiz:      true,
}

type BattleResult string

const (
	BattleWin  BattleResult = "WIN"
	BattleLoss BattleResult = "LOSS"
	BattleDraw BattleResult = "DRAW"
)

// ── Answer Types ─────────────────────────────────────────

// SubmittedAnswer is one answer as sent by the client. SelectedIndex is not
// checked against the question's choices; out-of-range values never match.
type SubmittedAnswer struct {
	QuestionID    string `json:"questionId"`
	SelectedIndex int    `json:"selectedIndex"`
}

// GradedAnswer is persisted verbatim inside quiz_attempts.responses and read
// back for statistics. Field names and null handling must not change.
type GradedAnswer struct {
	QuestionID        string  `json:"questionId"`
	SelectedIndex     int     `json:"selectedIndex"`
	Correct           bool    `json:"correct"`
	CorrectIndex      *int    `json:"correctIndex"`
	TopicID           *string `json:"topicId"`
	TopicName         *string `json:"topicName"`
	LearningTopicID   *string `json:"learningTopicId"`
	LearningTopicName *string `json:"learningTopicName"`
}

// ── Records ──────────────────────────────────────────────

type Attempt struct {
	ID             string         `json:"id"`
	UserID         string         `json:"userId"`
	Mode           AttemptMode    `json:"mode"`
	TopicID        *string        `json:"topicId"`
	TopicName      *string        `json:"topicName,omitempty"`
	Score          int            `json:"score"`
	TotalQuestions int            `json:"totalQuestions"`
	Responses      []GradedAnswer `json:"responses"`
	CreatedAt      time.Time      `json:"createdAt"`
}

type NewAttempt struct {
	UserID         string
	Mode           AttemptMode
	TopicID        *string
	Score          int
	TotalQuestions int
	Responses      []GradedAnswer
}

type BattleMatch struct {
	ID         string       `json:"id"`
	UserID     string       `json:"userId"`
	TopicID    *string      `json:"topicId"`
	TopicName  *string      `json:"topicName,omitempty"`
	Difficulty Difficulty   `json:"difficulty"`
	UserScore  int          `json:"userScore"`
	BotScore   int          `json:"botScore"`
	Result     BattleResult `json:"result"`
	CreatedAt  time.Time    `json:"createdAt"`
}

type NewBattle struct {
	UserID     string
	TopicID    *string
	Difficulty Difficulty
	UserScore  int
	BotScore   int
	Result     BattleResult
}

// ── Request Types ────────────────────────────────────────

type SubmitQuizRequest struct {
	Mode    AttemptMode       `json:"mode"`
	TopicID *string           `json:"topicId,omitempty"`
	Answers []SubmittedAnswer `json:"answers"`
}

type SubmitBattleRequest struct {
	TopicID    *string           `json:"topicId,omitempty"`
	Difficulty Difficulty        `json:"difficulty"`
	Answers    []SubmittedAnswer `json:"answers"`
}

type SubmitLearningRequest struct {
	Answers []SubmittedAnswer `json:"answers"`
}

// ── Response Types ────────────────────────────────────────

type QuizResultResponse struct {
	AttemptID      string      `json:"attemptId"`
	Score          int         `json:"score"`
	TotalQuestions int         `json:"totalQuestions"`
	Strengths      []TopicStat `json:"strengths"`
	Weaknesses     []TopicStat `json:"weaknesses"`
}

type LearningResultResponse struct {
	AttemptID      string  `json:"attemptId"`
	Score          int     `json:"score"`
	TotalQuestions int     `json:"totalQuestions"`
	Accuracy       float64 `json:"accuracy"`
}

type BattleResultResponse struct {
	BattleID  string       `json:"battleId"`
	UserScore int          `json:"userScore"`
	BotScore  int          `json:"botScore"`
	Result    BattleResult `json:"result"`
}

type AttemptListResponse struct {
	Attempts []Attempt `json:"attempts"`
}

type BattleListResponse struct {
	Battles []BattleMatch `json:"battles"`
}
