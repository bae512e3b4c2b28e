package attempts

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/mathquest/backend/internal/models"
	"github.com/mathquest/backend/internal/scoring"
)

var (
	ErrNoAnswers         = errors.New("answers must not be empty")
	ErrNegativeSelection = errors.New("selectedIndex must be non-negative")
	ErrInvalidMode       = errors.New("mode must be PRACTICE, PLACEMENT, or QUIZ")
	ErrInvalidDifficulty = errors.New("difficulty must be EASY, MEDIUM, or HARD")
)

const (
	recentAttemptsLimit = 20
	recentBattlesLimit  = 15
)

// QuestionBank resolves question ids. Ids it does not know are omitted.
type QuestionBank interface {
	LookupQuestions(ctx context.Context, ids []string) (map[string]models.Question, error)
}

type AttemptRecorder interface {
	CreateAttempt(ctx context.Context, in models.NewAttempt) (*models.Attempt, error)
	ListAttempts(ctx context.Context, userID string, limit int) ([]models.Attempt, error)
}

type BattleRecorder interface {
	CreateBattle(ctx context.Context, in models.NewBattle) (*models.BattleMatch, error)
	ListBattles(ctx context.Context, userID string, limit int) ([]models.BattleMatch, error)
}

// Service decides, per mode, which recorder a graded submission goes to and
// what the caller gets back. Grading itself lives in package scoring.
type Service struct {
	bank     QuestionBank
	attempts AttemptRecorder
	battles  BattleRecorder
	sampler  scoring.Sampler
	now      func() time.Time
	location *time.Location
}

func NewService(bank QuestionBank, attempts AttemptRecorder, battles BattleRecorder) *Service {
	return &Service{
		bank:     bank,
		attempts: attempts,
		battles:  battles,
		sampler:  scoring.UniformSampler{},
		now:      time.Now,
		location: time.Local,
	}
}

// SetSampler replaces the opponent's random source.
func (s *Service) SetSampler(sampler scoring.Sampler) {
	s.sampler = sampler
}

// SetClock replaces the clock used to decide "today" for streaks.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// SetLocation sets the time zone whose calendar days streaks are counted in.
func (s *Service) SetLocation(loc *time.Location) {
	s.location = loc
}

// ── Submissions ─────────────────────────────────────────

// SubmitQuiz grades a practice, placement or quiz submission, records it as
// an attempt and reports per-topic strengths and weaknesses.
func (s *Service) SubmitQuiz(ctx context.Context, userID string, req models.SubmitQuizRequest) (*models.QuizResultResponse, error) {
	if !models.ValidAttemptModes[req.Mode] {
		return nil, ErrInvalidMode
	}
	if err := validateAnswers(req.Answers); err != nil {
		return nil, err
	}

	questions, err := s.lookup(ctx, req.Answers)
	if err != nil {
		return nil, err
	}

	graded, score := scoring.Grade(req.Answers, questions)
	strengths, weaknesses := scoring.AggregateTopics(graded, questions)

	var topicID *string
	if req.TopicID != nil && *req.TopicID != "" {
		topicID = req.TopicID
	}

	attempt, err := s.attempts.CreateAttempt(ctx, models.NewAttempt{
		UserID:         userID,
		Mode:           req.Mode,
		TopicID:        topicID,
		Score:          score,
		TotalQuestions: len(req.Answers),
		Responses:      graded,
	})
	if err != nil {
		return nil, fmt.Errorf("record attempt: %w", err)
	}

	logMissing(userID, graded)

	return &models.QuizResultResponse{
		AttemptID:      attempt.ID,
		Score:          score,
		TotalQuestions: len(req.Answers),
		Strengths:      strengths,
		Weaknesses:     weaknesses,
	}, nil
}

// SubmitLearning grades a learning-topic session. It is stored as a
// PRACTICE attempt without a topic.
func (s *Service) SubmitLearning(ctx context.Context, userID, learningTopicID string, answers []models.SubmittedAnswer) (*models.LearningResultResponse, error) {
	if err := validateAnswers(answers); err != nil {
		return nil, err
	}

	questions, err := s.lookup(ctx, answers)
	if err != nil {
		return nil, err
	}

	graded, score := scoring.Grade(answers, questions)

	attempt, err := s.attempts.CreateAttempt(ctx, models.NewAttempt{
		UserID:         userID,
		Mode:           models.ModePractice,
		Score:          score,
		TotalQuestions: len(answers),
		Responses:      graded,
	})
	if err != nil {
		return nil, fmt.Errorf("record learning attempt for %s: %w", learningTopicID, err)
	}

	logMissing(userID, graded)

	return &models.LearningResultResponse{
		AttemptID:      attempt.ID,
		Score:          score,
		TotalQuestions: len(answers),
		Accuracy:       scoring.Percent(score, len(answers)),
	}, nil
}

// SubmitBattle grades the user's answers, simulates the bot from the
// difficulty and answer count alone and records the match.
func (s *Service) SubmitBattle(ctx context.Context, userID string, req models.SubmitBattleRequest) (*models.BattleResultResponse, error) {
	if !models.ValidDifficulties[req.Difficulty] {
		return nil, ErrInvalidDifficulty
	}
	if err := validateAnswers(req.Answers); err != nil {
		return nil, err
	}

	questions, err := s.lookup(ctx, req.Answers)
	if err != nil {
		return nil, err
	}

	_, userScore := scoring.Grade(req.Answers, questions)
	botScore := scoring.BotScore(s.sampler, len(req.Answers), req.Difficulty)
	result := scoring.Outcome(userScore, botScore)

	var topicID *string
	if req.TopicID != nil && *req.TopicID != "" {
		topicID = req.TopicID
	}

	battle, err := s.battles.CreateBattle(ctx, models.NewBattle{
		UserID:     userID,
		TopicID:    topicID,
		Difficulty: req.Difficulty,
		UserScore:  userScore,
		BotScore:   botScore,
		Result:     result,
	})
	if err != nil {
		return nil, fmt.Errorf("record battle: %w", err)
	}

	return &models.BattleResultResponse{
		BattleID:  battle.ID,
		UserScore: userScore,
		BotScore:  botScore,
		Result:    result,
	}, nil
}

// ── History & Stats ─────────────────────────────────────

func (s *Service) RecentAttempts(ctx context.Context, userID string) ([]models.Attempt, error) {
	attempts, err := s.attempts.ListAttempts(ctx, userID, recentAttemptsLimit)
	if err != nil {
		return nil, err
	}
	if attempts == nil {
		attempts = []models.Attempt{}
	}
	return attempts, nil
}

func (s *Service) RecentBattles(ctx context.Context, userID string) ([]models.BattleMatch, error) {
	battles, err := s.battles.ListBattles(ctx, userID, recentBattlesLimit)
	if err != nil {
		return nil, err
	}
	if battles == nil {
		battles = []models.BattleMatch{}
	}
	return battles, nil
}

// Stats summarizes the user's full attempt history.
func (s *Service) Stats(ctx context.Context, userID string) (*models.StatsSummary, error) {
	history, err := s.attempts.ListAttempts(ctx, userID, 0)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	summary := scoring.Summarize(history, s.now().In(s.location))
	return &summary, nil
}

// ── Helpers ─────────────────────────────────────────────

func (s *Service) lookup(ctx context.Context, answers []models.SubmittedAnswer) (map[string]models.Question, error) {
	ids := make([]string, 0, len(answers))
	seen := make(map[string]bool, len(answers))
	for _, a := range answers {
		if !seen[a.QuestionID] {
			seen[a.QuestionID] = true
			ids = append(ids, a.QuestionID)
		}
	}

	questions, err := s.bank.LookupQuestions(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("lookup questions: %w", err)
	}
	return questions, nil
}

func validateAnswers(answers []models.SubmittedAnswer) error {
	if len(answers) == 0 {
		return ErrNoAnswers
	}
	for _, a := range answers {
		if a.SelectedIndex < 0 {
			return ErrNegativeSelection
		}
	}
	return nil
}

// logMissing notes answers whose question no longer exists. They are graded
// wrong either way.
func logMissing(userID string, graded []models.GradedAnswer) {
	missing := 0
	for _, g := range graded {
		if g.CorrectIndex == nil {
			missing++
		}
	}
	if missing > 0 {
		log.Printf("[attempts] WARN: user %s submitted %d answer(s) for unknown questions", userID, missing)
	}
}

// IsValidationError reports whether err came from request shape checks.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrNoAnswers) || errors.Is(err, ErrNegativeSelection) ||
		errors.Is(err, ErrInvalidMode) || errors.Is(err, ErrInvalidDifficulty)
}
