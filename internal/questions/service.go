package questions

import (
	"context"

	"github.com/mathquest/backend/internal/models"
)

const (
	defaultQuestionLimit = 10
	maxQuestionLimit     = 30
	maxLearningLimit     = 20
)

type bank interface {
	GetQuestion(ctx context.Context, id string) (*models.Question, error)
	ListQuestions(ctx context.Context, req models.QuestionListRequest) ([]models.Question, error)
	ListLearningTopicQuestions(ctx context.Context, learningTopicID string, limit int) ([]models.Question, error)
	ListTopics(ctx context.Context, gradeLevel *int) ([]models.Topic, error)
	ListLearningTopics(ctx context.Context) ([]models.LearningTopic, error)
}

type Service struct {
	store bank
}

func NewService(store bank) *Service {
	return &Service{store: store}
}

func (s *Service) GetQuestion(ctx context.Context, id string) (*models.Question, error) {
	return s.store.GetQuestion(ctx, id)
}

// ListQuestions serves a random selection for practice, placement, quiz and
// battle screens.
func (s *Service) ListQuestions(ctx context.Context, req models.QuestionListRequest) ([]models.Question, error) {
	req.Limit = clampLimit(req.Limit, maxQuestionLimit)

	questions, err := s.store.ListQuestions(ctx, req)
	if err != nil {
		return nil, err
	}
	if questions == nil {
		questions = []models.Question{}
	}
	return questions, nil
}

func (s *Service) LearningTopicQuestions(ctx context.Context, learningTopicID string, limit int) ([]models.Question, error) {
	questions, err := s.store.ListLearningTopicQuestions(ctx, learningTopicID, clampLimit(limit, maxLearningLimit))
	if err != nil {
		return nil, err
	}
	if questions == nil {
		questions = []models.Question{}
	}
	return questions, nil
}

func (s *Service) ListTopics(ctx context.Context, gradeLevel *int) ([]models.Topic, error) {
	topics, err := s.store.ListTopics(ctx, gradeLevel)
	if err != nil {
		return nil, err
	}
	if topics == nil {
		topics = []models.Topic{}
	}
	return topics, nil
}

func (s *Service) ListLearningTopics(ctx context.Context) ([]models.LearningTopic, error) {
	topics, err := s.store.ListLearningTopics(ctx)
	if err != nil {
		return nil, err
	}
	if topics == nil {
		topics = []models.LearningTopic{}
	}
	return topics, nil
}

func clampLimit(limit, max int) int {
	if limit <= 0 {
		return defaultQuestionLimit
	}
	if limit > max {
		return max
	}
	return limit
}
