package questions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/mathquest/backend/internal/models"
)

var ErrNotFound = errors.New("not found")

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

const questionColumns = `q.id, q.prompt, q.choices, q.answer_index, q.explanation,
	       q.difficulty, q.grade_level,
	       t.id, t.name, t.grade_level,
	       lt.id, lt.name, lt.grade_level`

const questionJoins = `FROM questions q
	LEFT JOIN topics t ON t.id = q.topic_id
	LEFT JOIN learning_topics lt ON lt.id = q.learning_topic_id`

// ── Question Lookup ─────────────────────────────────────

// LookupQuestions resolves ids to questions. Unknown ids are left out of the
// result rather than reported.
func (s *Store) LookupQuestions(ctx context.Context, ids []string) (map[string]models.Question, error) {
	result := make(map[string]models.Question, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	rows, err := s.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT %s %s WHERE q.id = ANY($1)`, questionColumns, questionJoins),
		pq.Array(ids),
	)
	if err != nil {
		return nil, fmt.Errorf("lookup questions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		result[q.ID] = *q
	}
	return result, rows.Err()
}

func (s *Store) GetQuestion(ctx context.Context, id string) (*models.Question, error) {
	row := s.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT %s %s WHERE q.id = $1`, questionColumns, questionJoins), id)
	q, err := scanQuestion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return q, err
}

// ── Question Serving ────────────────────────────────────

// ListQuestions returns up to req.Limit random questions matching the filters.
// The grade filter applies to the question's topic.
func (s *Store) ListQuestions(ctx context.Context, req models.QuestionListRequest) ([]models.Question, error) {
	var conds []string
	var args []interface{}

	if req.TopicID != nil {
		args = append(args, *req.TopicID)
		conds = append(conds, fmt.Sprintf("q.topic_id = $%d", len(args)))
	}
	if req.Difficulty != nil {
		args = append(args, string(*req.Difficulty))
		conds = append(conds, fmt.Sprintf("q.difficulty = $%d", len(args)))
	}
	if req.GradeLevel != nil {
		args = append(args, *req.GradeLevel)
		conds = append(conds, fmt.Sprintf("t.grade_level = $%d", len(args)))
	}

	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}
	args = append(args, req.Limit)

	query := fmt.Sprintf(`SELECT %s %s %s ORDER BY RANDOM() LIMIT $%d`,
		questionColumns, questionJoins, where, len(args))

	return s.queryQuestions(ctx, query, args...)
}

func (s *Store) ListLearningTopicQuestions(ctx context.Context, learningTopicID string, limit int) ([]models.Question, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE q.learning_topic_id = $1 ORDER BY RANDOM() LIMIT $2`,
		questionColumns, questionJoins)
	return s.queryQuestions(ctx, query, learningTopicID, limit)
}

func (s *Store) queryQuestions(ctx context.Context, query string, args ...interface{}) ([]models.Question, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, *q)
	}
	return questions, rows.Err()
}

// ── Topics ──────────────────────────────────────────────

func (s *Store) ListTopics(ctx context.Context, gradeLevel *int) ([]models.Topic, error) {
	query := `SELECT t.id, t.name, t.grade_level, t.created_at, COUNT(q.id)
		FROM topics t
		LEFT JOIN questions q ON q.topic_id = t.id`
	var args []interface{}
	if gradeLevel != nil {
		query += ` WHERE t.grade_level = $1`
		args = append(args, *gradeLevel)
	}
	query += ` GROUP BY t.id ORDER BY t.grade_level ASC, t.name ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	defer rows.Close()

	var topics []models.Topic
	for rows.Next() {
		var t models.Topic
		if err := rows.Scan(&t.ID, &t.Name, &t.GradeLevel, &t.CreatedAt, &t.QuestionCount); err != nil {
			return nil, fmt.Errorf("scan topic: %w", err)
		}
		topics = append(topics, t)
	}
	return topics, rows.Err()
}

func (s *Store) ListLearningTopics(ctx context.Context) ([]models.LearningTopic, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT lt.id, lt.name, lt.description, lt.grade_level, lt.created_at, COUNT(q.id)
		 FROM learning_topics lt
		 LEFT JOIN questions q ON q.learning_topic_id = lt.id
		 GROUP BY lt.id
		 ORDER BY lt.grade_level ASC, lt.name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list learning topics: %w", err)
	}
	defer rows.Close()

	var topics []models.LearningTopic
	for rows.Next() {
		var t models.LearningTopic
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.GradeLevel, &t.CreatedAt, &t.QuestionCount); err != nil {
			return nil, fmt.Errorf("scan learning topic: %w", err)
		}
		topics = append(topics, t)
	}
	return topics, rows.Err()
}

// ── Helpers ─────────────────────────────────────────────

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanQuestion(row rowScanner) (*models.Question, error) {
	var q models.Question
	var difficulty string
	var topicID, topicName, ltID, ltName sql.NullString
	var topicGrade, ltGrade sql.NullInt64

	err := row.Scan(&q.ID, &q.Prompt, pq.Array(&q.Choices), &q.AnswerIndex, &q.Explanation,
		&difficulty, &q.GradeLevel,
		&topicID, &topicName, &topicGrade,
		&ltID, &ltName, &ltGrade)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan question: %w", err)
	}

	q.Difficulty = models.Difficulty(difficulty)
	if topicID.Valid {
		q.Topic = &models.TopicRef{ID: topicID.String, Name: topicName.String, GradeLevel: int(topicGrade.Int64)}
	}
	if ltID.Valid {
		q.LearningTopic = &models.TopicRef{ID: ltID.String, Name: ltName.String, GradeLevel: int(ltGrade.Int64)}
	}
	return &q, nil
}
