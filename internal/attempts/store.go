package attempts

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/mathquest/backend/internal/models"
)

// Store records quiz attempts and battle matches. Rows are insert-only and
// keyed by a fresh UUID.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// ── Attempts ────────────────────────────────────────────

func (s *Store) CreateAttempt(ctx context.Context, in models.NewAttempt) (*models.Attempt, error) {
	responses, err := encodeResponses(in.Responses)
	if err != nil {
		return nil, err
	}

	attempt := models.Attempt{
		ID:             uuid.NewString(),
		UserID:         in.UserID,
		Mode:           in.Mode,
		TopicID:        in.TopicID,
		Score:          in.Score,
		TotalQuestions: in.TotalQuestions,
		Responses:      in.Responses,
	}

	err = s.db.QueryRowContext(ctx,
		`INSERT INTO quiz_attempts (id, user_id, topic_id, mode, score, total_questions, responses)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING created_at`,
		attempt.ID, in.UserID, in.TopicID, in.Mode, in.Score, in.TotalQuestions, responses,
	).Scan(&attempt.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create attempt: %w", err)
	}
	return &attempt, nil
}

// ListAttempts returns a user's attempts, newest first. A limit of zero or
// less returns the whole history.
func (s *Store) ListAttempts(ctx context.Context, userID string, limit int) ([]models.Attempt, error) {
	query := `SELECT a.id, a.user_id, a.mode, a.topic_id, t.name, a.score, a.total_questions,
		       a.responses, a.created_at
		FROM quiz_attempts a
		LEFT JOIN topics t ON t.id = a.topic_id
		WHERE a.user_id = $1
		ORDER BY a.created_at DESC`
	args := []interface{}{userID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	defer rows.Close()

	var attempts []models.Attempt
	for rows.Next() {
		var a models.Attempt
		var mode string
		var responses []byte
		if err := rows.Scan(&a.ID, &a.UserID, &mode, &a.TopicID, &a.TopicName, &a.Score,
			&a.TotalQuestions, &responses, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		a.Mode = models.AttemptMode(mode)
		if a.Responses, err = decodeResponses(responses); err != nil {
			return nil, fmt.Errorf("attempt %s: %w", a.ID, err)
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}

// encodeResponses renders graded answers for the JSONB column. lib/pq sends
// []byte as bytea, so the text form is returned.
func encodeResponses(responses []models.GradedAnswer) (string, error) {
	if responses == nil {
		responses = []models.GradedAnswer{}
	}
	b, err := json.Marshal(responses)
	if err != nil {
		return "", fmt.Errorf("encode responses: %w", err)
	}
	return string(b), nil
}

func decodeResponses(raw []byte) ([]models.GradedAnswer, error) {
	responses := []models.GradedAnswer{}
	if err := json.Unmarshal(raw, &responses); err != nil {
		return nil, fmt.Errorf("decode responses: %w", err)
	}
	return responses, nil
}

// ── Battles ─────────────────────────────────────────────

func (s *Store) CreateBattle(ctx context.Context, in models.NewBattle) (*models.BattleMatch, error) {
	battle := models.BattleMatch{
		ID:         uuid.NewString(),
		UserID:     in.UserID,
		TopicID:    in.TopicID,
		Difficulty: in.Difficulty,
		UserScore:  in.UserScore,
		BotScore:   in.BotScore,
		Result:     in.Result,
	}

	err := s.db.QueryRowContext(ctx,
		`INSERT INTO battle_matches (id, user_id, topic_id, difficulty, user_score, bot_score, result)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING created_at`,
		battle.ID, in.UserID, in.TopicID, in.Difficulty, in.UserScore, in.BotScore, in.Result,
	).Scan(&battle.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create battle: %w", err)
	}
	return &battle, nil
}

func (s *Store) ListBattles(ctx context.Context, userID string, limit int) ([]models.BattleMatch, error) {
	query := `SELECT b.id, b.user_id, b.topic_id, t.name, b.difficulty, b.user_score, b.bot_score,
		       b.result, b.created_at
		FROM battle_matches b
		LEFT JOIN topics t ON t.id = b.topic_id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC`
	args := []interface{}{userID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list battles: %w", err)
	}
	defer rows.Close()

	var battles []models.BattleMatch
	for rows.Next() {
		var b models.BattleMatch
		var difficulty, result string
		if err := rows.Scan(&b.ID, &b.UserID, &b.TopicID, &b.TopicName, &difficulty,
			&b.UserScore, &b.BotScore, &result, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan battle: %w", err)
		}
		b.Difficulty = models.Difficulty(difficulty)
		b.Result = models.BattleResult(result)
		battles = append(battles, b)
	}
	return battles, rows.Err()
}
