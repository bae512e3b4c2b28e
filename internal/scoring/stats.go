package scoring

import (
	"sort"
	"time"

	"github.com/mathquest/backend/internal/models"
)

// unknownLearningTopic buckets answers without a learning topic. The bucket
// is counted in the totals but never reported in the breakdown.
const unknownLearningTopic = "unknown"

// unnamedLearningTopic is reported for a learning topic whose first answer
// carried no name.
const unnamedLearningTopic = "Other"

const dateLayout = "2006-01-02"

// Summarize derives the statistics shown on the stats page from a user's
// full attempt history. Calendar days are taken in now's location.
func Summarize(history []models.Attempt, now time.Time) models.StatsSummary {
	var total, correct int

	var order []string
	perTopic := make(map[string]*models.LearningTopicStat)

	for _, attempt := range history {
		for _, r := range attempt.Responses {
			total++
			if r.Correct {
				correct++
			}

			id := unknownLearningTopic
			if r.LearningTopicID != nil && *r.LearningTopicID != "" {
				id = *r.LearningTopicID
			}
			stat, ok := perTopic[id]
			if !ok {
				stat = &models.LearningTopicStat{LearningTopicID: id, LearningTopicName: unnamedLearningTopic}
				if r.LearningTopicName != nil && *r.LearningTopicName != "" {
					stat.LearningTopicName = *r.LearningTopicName
				}
				perTopic[id] = stat
				order = append(order, id)
			}
			stat.Total++
			if r.Correct {
				stat.Correct++
			} else {
				stat.Wrong++
			}
		}
	}

	breakdown := make([]models.LearningTopicStat, 0, len(order))
	for _, id := range order {
		if id == unknownLearningTopic {
			continue
		}
		stat := perTopic[id]
		stat.CorrectRate = Percent(stat.Correct, stat.Total)
		stat.WrongRate = Percent(stat.Wrong, stat.Total)
		breakdown = append(breakdown, *stat)
	}
	sort.SliceStable(breakdown, func(i, j int) bool {
		return breakdown[i].CorrectRate > breakdown[j].CorrectRate
	})

	wrong := total - correct
	return models.StatsSummary{
		Total:          total,
		Correct:        correct,
		Wrong:          wrong,
		Accuracy:       Percent(correct, total),
		Completed:      correct,
		Incomplete:     wrong,
		StreakDays:     StreakDays(history, now),
		TopicBreakdown: breakdown,
	}
}

// StreakDays counts consecutive calendar days with at least one attempt,
// walking backward from now's date. It is 0 when there is no attempt today.
func StreakDays(history []models.Attempt, now time.Time) int {
	loc := now.Location()
	seen := make(map[string]bool, len(history))
	for _, a := range history {
		seen[a.CreatedAt.In(loc).Format(dateLayout)] = true
	}

	streak := 0
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	for seen[day.Format(dateLayout)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}
