// Package seed builds the starter question bank: one topic and one learning
// topic per subject area, each with a fixed mix of arithmetic questions.
package seed

import (
	"fmt"

	"github.com/mathquest/backend/internal/models"
)

// GradeLevel is the grade every seeded topic and question is filed under.
const GradeLevel = 5

// Questions per subject area, by difficulty.
const (
	easyCount   = 40
	mediumCount = 35
	hardCount   = 25
)

// SubjectAreas names the seeded topics. Each name is used for both the topic
// and its learning topic.
var SubjectAreas = []string{
	"Whole numbers & operations",
	"Fractions & mixed numbers",
	"Decimals",
	"Ratios & percentages",
	"Basic plane geometry",
	"Area & volume of solids",
	"Units of measurement",
	"Expressions & order of operations",
	"Real-world applications",
	"Logic & reasoning",
}

// QuestionDraft is a question before it is assigned ids and stored.
type QuestionDraft struct {
	Prompt      string
	Choices     []string
	AnswerIndex int
	Explanation string
	Difficulty  models.Difficulty
}

// Subject is one subject area with its questions.
type Subject struct {
	Name      string
	Questions []QuestionDraft
}

// Build returns every subject area with its questions. The output is the
// same on every call.
func Build() []Subject {
	subjects := make([]Subject, 0, len(SubjectAreas))
	for _, name := range SubjectAreas {
		subjects = append(subjects, Subject{Name: name, Questions: buildSubject(name)})
	}
	return subjects
}

func buildSubject(name string) []QuestionDraft {
	questions := make([]QuestionDraft, 0, easyCount+mediumCount+hardCount)
	idx := 0
	for _, tier := range []struct {
		difficulty models.Difficulty
		count      int
	}{
		{models.DifficultyEasy, easyCount},
		{models.DifficultyMedium, mediumCount},
		{models.DifficultyHard, hardCount},
	} {
		for i := 0; i < tier.count; i++ {
			questions = append(questions, BuildQuestion(name, idx, tier.difficulty))
			idx++
		}
	}
	return questions
}

// BuildQuestion derives an arithmetic question from its position in the
// subject. The correct choice is rotated through the four slots by idx.
func BuildQuestion(subject string, idx int, difficulty models.Difficulty) QuestionDraft {
	a := 10 + idx%50
	b := 5 + idx%30

	var expr string
	var answer int
	switch idx % 4 {
	case 0:
		expr = fmt.Sprintf("%d + %d", a, b)
		answer = a + b
	case 1:
		expr = fmt.Sprintf("%d - %d", a+10, b)
		answer = a + 10 - b
	case 2:
		expr = fmt.Sprintf("%d × %d", a%12, b%9)
		answer = (a % 12) * (b % 9)
	default:
		dividend := (a + b) * 2
		divisor := b%8 + 2
		expr = fmt.Sprintf("%d ÷ %d", dividend, divisor)
		answer = dividend / divisor
	}

	values := []int{answer, answer + 1, answer - 1, answer + 2}
	answerIndex := idx % len(values)
	values[0], values[answerIndex] = values[answerIndex], values[0]

	choices := make([]string, len(values))
	for i, v := range values {
		choices[i] = fmt.Sprintf("%d", v)
	}

	return QuestionDraft{
		Prompt:      fmt.Sprintf("%s: Compute %s", subject, expr),
		Choices:     choices,
		AnswerIndex: answerIndex,
		Explanation: fmt.Sprintf("%s = %d.", expr, answer),
		Difficulty:  difficulty,
	}
}
