package seed

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/mathquest/backend/internal/models"
)

func TestBuildQuestionAnswerIsValid(t *testing.T) {
	for idx := 0; idx < 200; idx++ {
		q := BuildQuestion("Decimals", idx, models.DifficultyEasy)

		if q.AnswerIndex < 0 || q.AnswerIndex >= len(q.Choices) {
			t.Fatalf("idx %d: answer index %d outside %d choices", idx, q.AnswerIndex, len(q.Choices))
		}

		seen := map[string]bool{}
		for _, c := range q.Choices {
			if seen[c] {
				t.Fatalf("idx %d: duplicate choice %q in %v", idx, c, q.Choices)
			}
			seen[c] = true
		}

		// explanation ends with "= <answer>."
		want := q.Choices[q.AnswerIndex]
		if !strings.HasSuffix(q.Explanation, "= "+want+".") {
			t.Errorf("idx %d: correct choice %q does not match explanation %q", idx, want, q.Explanation)
		}
	}
}

func TestBuildQuestionArithmetic(t *testing.T) {
	tests := []struct {
		idx    int
		expr   string
		answer string
	}{
		{0, "10 + 5", "15"},
		{1, "21 - 6", "15"},
		{2, "0 × 7", "0"},
		{3, "42 ÷ 2", "21"},
		{4, "14 + 9", "23"},
	}

	for _, tt := range tests {
		q := BuildQuestion("Logic & reasoning", tt.idx, models.DifficultyMedium)

		if q.Prompt != "Logic & reasoning: Compute "+tt.expr {
			t.Errorf("idx %d: Prompt = %q", tt.idx, q.Prompt)
		}
		if got := q.Choices[q.AnswerIndex]; got != tt.answer {
			t.Errorf("idx %d: correct choice = %q, want %q", tt.idx, got, tt.answer)
		}
		if q.AnswerIndex != tt.idx%4 {
			t.Errorf("idx %d: AnswerIndex = %d, want %d", tt.idx, q.AnswerIndex, tt.idx%4)
		}
	}
}

func TestBuildShape(t *testing.T) {
	subjects := Build()

	if len(subjects) != len(SubjectAreas) {
		t.Fatalf("len(subjects) = %d, want %d", len(subjects), len(SubjectAreas))
	}

	for _, s := range subjects {
		counts := map[models.Difficulty]int{}
		for _, q := range s.Questions {
			counts[q.Difficulty]++
		}
		if counts[models.DifficultyEasy] != 40 || counts[models.DifficultyMedium] != 35 || counts[models.DifficultyHard] != 25 {
			t.Errorf("%s: difficulty split = %v, want 40/35/25", s.Name, counts)
		}
	}

	if err := Validate(subjects); err != nil {
		t.Errorf("Validate(Build()) = %v", err)
	}
	if !reflect.DeepEqual(subjects, Build()) {
		t.Error("Build is not deterministic")
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	subjects := []Subject{{
		Name: "Fractions & mixed numbers",
		Questions: []QuestionDraft{
			{Prompt: "one choice", Choices: []string{"1"}, AnswerIndex: 0, Difficulty: models.DifficultyEasy},
			{Prompt: "index out of range", Choices: []string{"1", "2"}, AnswerIndex: 2, Difficulty: models.DifficultyEasy},
			{Prompt: "duplicates", Choices: []string{"3", "3"}, AnswerIndex: 0, Difficulty: models.DifficultyEasy},
			{Prompt: " ", Choices: []string{"1", "2"}, AnswerIndex: 1, Difficulty: "EXTREME"},
		},
	}}

	err := Validate(subjects)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Validate error = %v, want *ValidationError", err)
	}
	if len(verr.Errors) != 5 {
		t.Errorf("got %d problems, want 5: %v", len(verr.Errors), verr.Errors)
	}
}

func TestSeedIDsAreStable(t *testing.T) {
	if TopicID("Decimals") != TopicID("Decimals") {
		t.Error("TopicID is not stable")
	}
	if TopicID("Decimals") == LearningTopicID("Decimals") {
		t.Error("topic and learning topic share an id")
	}

	seen := map[string]bool{}
	for _, name := range SubjectAreas {
		for i := 0; i < 100; i++ {
			id := QuestionID(name, i)
			if seen[id] {
				t.Fatalf("duplicate question id %s for %s/%d", id, name, i)
			}
			seen[id] = true
		}
	}
}
