// Package scoring holds the pure grading and analytics functions shared by
// every submission mode. Nothing here touches storage, the clock or global
// randomness; callers pass those in.
package scoring

import (
	"math"

	"github.com/mathquest/backend/internal/models"
)

// Grade scores answers against the resolved questions. The output keeps the
// input order. An answer whose question is missing from the map is graded
// wrong with no correct index and no topic; it is never dropped.
func Grade(answers []models.SubmittedAnswer, questions map[string]models.Question) ([]models.GradedAnswer, int) {
	graded := make([]models.GradedAnswer, 0, len(answers))
	score := 0

	for _, a := range answers {
		g := models.GradedAnswer{
			QuestionID:    a.QuestionID,
			SelectedIndex: a.SelectedIndex,
		}

		q, ok := questions[a.QuestionID]
		if ok {
			answerIndex := q.AnswerIndex
			g.Correct = q.AnswerIndex == a.SelectedIndex
			g.CorrectIndex = &answerIndex
			if q.Topic != nil {
				id, name := q.Topic.ID, q.Topic.Name
				g.TopicID, g.TopicName = &id, &name
			}
			if q.LearningTopic != nil {
				id, name := q.LearningTopic.ID, q.LearningTopic.Name
				g.LearningTopicID, g.LearningTopicName = &id, &name
			}
		}

		if g.Correct {
			score++
		}
		graded = append(graded, g)
	}

	return graded, score
}

// Percent returns part/whole as a percentage rounded to two decimals.
// A zero whole yields 0.
func Percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(whole)*10000) / 100
}

// wholePercent returns part/whole as an integer percentage.
func wholePercent(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}
