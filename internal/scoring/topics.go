package scoring

import (
	"sort"

	"github.com/mathquest/backend/internal/models"
)

// WeaknessThreshold is the accuracy below which a topic counts as a weakness.
const WeaknessThreshold = 70

// AggregateTopics groups one grading pass by topic. Strengths holds every
// topic ordered by accuracy, highest first, with ties kept in the order the
// topics were first seen. Weaknesses is the sub-70% tail of strengths in the
// same order. The grade level comes from the first question seen for the
// topic, or 1 when that question is unknown.
func AggregateTopics(graded []models.GradedAnswer, questions map[string]models.Question) (strengths, weaknesses []models.TopicStat) {
	var order []string
	perTopic := make(map[string]*models.TopicStat)

	for _, g := range graded {
		if g.TopicID == nil || g.TopicName == nil {
			continue
		}
		stat, ok := perTopic[*g.TopicID]
		if !ok {
			gradeLevel := 1
			if q, found := questions[g.QuestionID]; found && q.Topic != nil {
				gradeLevel = q.Topic.GradeLevel
			}
			stat = &models.TopicStat{
				TopicID:    *g.TopicID,
				TopicName:  *g.TopicName,
				GradeLevel: gradeLevel,
			}
			perTopic[*g.TopicID] = stat
			order = append(order, *g.TopicID)
		}
		stat.Total++
		if g.Correct {
			stat.Correct++
		}
	}

	strengths = make([]models.TopicStat, 0, len(order))
	for _, id := range order {
		stat := perTopic[id]
		stat.Accuracy = wholePercent(stat.Correct, stat.Total)
		strengths = append(strengths, *stat)
	}
	sort.SliceStable(strengths, func(i, j int) bool {
		return strengths[i].Accuracy > strengths[j].Accuracy
	})

	weaknesses = make([]models.TopicStat, 0)
	for _, s := range strengths {
		if s.Accuracy < WeaknessThreshold {
			weaknesses = append(weaknesses, s)
		}
	}
	return strengths, weaknesses
}
