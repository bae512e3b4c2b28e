package scoring

import (
	"encoding/json"
	"testing"

	"github.com/mathquest/backend/internal/models"
)

func testQuestions() map[string]models.Question {
	return map[string]models.Question{
		"q1": {
			ID: "q1", Choices: []string{"1", "2", "3", "4"}, AnswerIndex: 2,
			Difficulty: models.DifficultyEasy, GradeLevel: 2,
			Topic: &models.TopicRef{ID: "t-add", Name: "Addition", GradeLevel: 2},
		},
		"q2": {
			ID: "q2", Choices: []string{"a", "b"}, AnswerIndex: 0,
			Difficulty: models.DifficultyEasy, GradeLevel: 3,
			Topic:         &models.TopicRef{ID: "t-sub", Name: "Subtraction", GradeLevel: 3},
			LearningTopic: &models.TopicRef{ID: "lt-1", Name: "Numbers"},
		},
		"q3": {
			ID: "q3", Choices: []string{"x", "y", "z"}, AnswerIndex: 1,
			Difficulty: models.DifficultyHard, GradeLevel: 1,
		},
	}
}

func TestGradeScoresMatches(t *testing.T) {
	answers := []models.SubmittedAnswer{
		{QuestionID: "q1", SelectedIndex: 2},
		{QuestionID: "q2", SelectedIndex: 1},
		{QuestionID: "q3", SelectedIndex: 1},
	}

	graded, score := Grade(answers, testQuestions())

	if score != 2 {
		t.Errorf("score = %d, want 2", score)
	}
	if len(graded) != len(answers) {
		t.Fatalf("len(graded) = %d, want %d", len(graded), len(answers))
	}
	wantCorrect := []bool{true, false, true}
	for i, g := range graded {
		if g.QuestionID != answers[i].QuestionID {
			t.Errorf("graded[%d].QuestionID = %s, want %s", i, g.QuestionID, answers[i].QuestionID)
		}
		if g.Correct != wantCorrect[i] {
			t.Errorf("graded[%d].Correct = %v, want %v", i, g.Correct, wantCorrect[i])
		}
		if g.CorrectIndex == nil {
			t.Errorf("graded[%d].CorrectIndex is nil", i)
		}
	}

	if graded[1].TopicID == nil || *graded[1].TopicID != "t-sub" || *graded[1].TopicName != "Subtraction" {
		t.Errorf("graded[1] topic = %v, want t-sub/Subtraction", graded[1].TopicID)
	}
	if graded[1].LearningTopicID == nil || *graded[1].LearningTopicID != "lt-1" {
		t.Errorf("graded[1] learning topic = %v, want lt-1", graded[1].LearningTopicID)
	}
	if graded[2].TopicID != nil || graded[2].TopicName != nil {
		t.Errorf("graded[2] should have no topic")
	}
}

func TestGradeMissingQuestion(t *testing.T) {
	answers := []models.SubmittedAnswer{
		{QuestionID: "gone", SelectedIndex: 0},
		{QuestionID: "q1", SelectedIndex: 2},
	}

	graded, score := Grade(answers, testQuestions())

	if score != 1 {
		t.Errorf("score = %d, want 1", score)
	}
	g := graded[0]
	if g.Correct || g.CorrectIndex != nil || g.TopicID != nil || g.TopicName != nil ||
		g.LearningTopicID != nil || g.LearningTopicName != nil {
		t.Errorf("missing question graded as %+v, want degenerate answer", g)
	}

	raw, err := json.Marshal(g)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"questionId":"gone","selectedIndex":0,"correct":false,"correctIndex":null,"topicId":null,"topicName":null,"learningTopicId":null,"learningTopicName":null}`
	if string(raw) != want {
		t.Errorf("json = %s\nwant   %s", raw, want)
	}
}

func TestGradeOutOfRangeIndex(t *testing.T) {
	answers := []models.SubmittedAnswer{{QuestionID: "q2", SelectedIndex: 99}}

	graded, score := Grade(answers, testQuestions())

	if score != 0 || graded[0].Correct {
		t.Errorf("out-of-range selection graded correct")
	}
	if graded[0].CorrectIndex == nil || *graded[0].CorrectIndex != 0 {
		t.Errorf("CorrectIndex = %v, want 0", graded[0].CorrectIndex)
	}
}

func TestGradeScoreEqualsCorrectCount(t *testing.T) {
	questions := testQuestions()
	answers := []models.SubmittedAnswer{
		{QuestionID: "q1", SelectedIndex: 0},
		{QuestionID: "q1", SelectedIndex: 2},
		{QuestionID: "q2", SelectedIndex: 0},
		{QuestionID: "nope", SelectedIndex: 0},
		{QuestionID: "q3", SelectedIndex: 2},
		{QuestionID: "q3", SelectedIndex: 1},
	}

	graded, score := Grade(answers, questions)

	flagged, matched := 0, 0
	for i, g := range graded {
		if g.Correct {
			flagged++
		}
		if q, ok := questions[answers[i].QuestionID]; ok && q.AnswerIndex == answers[i].SelectedIndex {
			matched++
		}
	}
	if score != flagged || score != matched {
		t.Errorf("score = %d, correct flags = %d, index matches = %d", score, flagged, matched)
	}
}

func TestGradeIsDeterministic(t *testing.T) {
	answers := []models.SubmittedAnswer{
		{QuestionID: "q1", SelectedIndex: 2},
		{QuestionID: "q2", SelectedIndex: 1},
		{QuestionID: "missing", SelectedIndex: 3},
	}

	first, s1 := Grade(answers, testQuestions())
	second, s2 := Grade(answers, testQuestions())

	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	if string(a) != string(b) || s1 != s2 {
		t.Errorf("grading twice differed:\n%s\n%s", a, b)
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		part, whole int
		want        float64
	}{
		{38, 44, 86.36},
		{0, 0, 0},
		{0, 5, 0},
		{5, 5, 100},
		{1, 3, 33.33},
		{2, 3, 66.67},
	}

	for _, tt := range tests {
		got := Percent(tt.part, tt.whole)
		if got != tt.want {
			t.Errorf("Percent(%d, %d) = %v, want %v", tt.part, tt.whole, got, tt.want)
		}
	}
}
