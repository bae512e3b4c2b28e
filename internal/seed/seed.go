package seed

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// namespace keys the name-based UUIDs of seeded rows, so re-running the seed
// finds the rows it wrote before.
var namespace = uuid.MustParse("6f0c2a5e-3b7d-4c1e-9a8f-2d4b6e8c0a13")

// TopicID returns the id of the seeded topic for a subject area.
func TopicID(subject string) string {
	return uuid.NewSHA1(namespace, []byte("topic/"+subject)).String()
}

// LearningTopicID returns the id of the seeded learning topic for a subject area.
func LearningTopicID(subject string) string {
	return uuid.NewSHA1(namespace, []byte("learning-topic/"+subject)).String()
}

// QuestionID returns the id of the idx-th seeded question of a subject area.
func QuestionID(subject string, idx int) string {
	return uuid.NewSHA1(namespace, []byte(fmt.Sprintf("question/%s/%d", subject, idx))).String()
}

// Result counts the rows a seed run inserted. Rows already present are skipped.
type Result struct {
	Topics         int
	LearningTopics int
	Questions      int
}

// Apply validates the built bank and writes it in one transaction. Existing
// rows with the same ids are left untouched, and no attempt or battle is
// removed.
func Apply(ctx context.Context, db *sql.DB, subjects []Subject) (*Result, error) {
	if err := Validate(subjects); err != nil {
		return nil, err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()

	var res Result
	for _, s := range subjects {
		n, err := exec(ctx, tx,
			`INSERT INTO topics (id, name, grade_level) VALUES ($1, $2, $3)
			 ON CONFLICT (id) DO NOTHING`,
			TopicID(s.Name), s.Name, GradeLevel)
		if err != nil {
			return nil, fmt.Errorf("seed topic %q: %w", s.Name, err)
		}
		res.Topics += n

		n, err = exec(ctx, tx,
			`INSERT INTO learning_topics (id, name, description, grade_level) VALUES ($1, $2, $3, $4)
			 ON CONFLICT (id) DO NOTHING`,
			LearningTopicID(s.Name), s.Name, s.Name, GradeLevel)
		if err != nil {
			return nil, fmt.Errorf("seed learning topic %q: %w", s.Name, err)
		}
		res.LearningTopics += n

		for i, q := range s.Questions {
			n, err = exec(ctx, tx,
				`INSERT INTO questions (id, prompt, choices, answer_index, explanation, difficulty,
				                        grade_level, topic_id, learning_topic_id)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
				 ON CONFLICT (id) DO NOTHING`,
				QuestionID(s.Name, i), q.Prompt, pq.Array(q.Choices), q.AnswerIndex, q.Explanation,
				string(q.Difficulty), GradeLevel, TopicID(s.Name), LearningTopicID(s.Name))
			if err != nil {
				return nil, fmt.Errorf("seed question %d of %q: %w", i+1, s.Name, err)
			}
			res.Questions += n
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit seed: %w", err)
	}

	log.Printf("[seed] inserted %d topics, %d learning topics, %d questions",
		res.Topics, res.LearningTopics, res.Questions)
	return &res, nil
}

func exec(ctx context.Context, tx *sql.Tx, query string, args ...interface{}) (int, error) {
	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
