package models

// TopicStat is one topic's result within a single graded submission.
type TopicStat struct {
	TopicID    string `json:"topicId"`
	TopicName  string `json:"topicName"`
	GradeLevel int    `json:"gradeLevel"`
	Total      int    `json:"total"`
	Correct    int    `json:"correct"`
	Accuracy   int    `json:"accuracy"`
}

type LearningTopicStat struct {
	LearningTopicID   string  `json:"learningTopicId"`
	LearningTopicName string  `json:"learningTopicName"`
	Correct           int     `json:"correct"`
	Wrong             int     `json:"wrong"`
	Total             int     `json:"total"`
	CorrectRate       float64 `json:"correctRate"`
	WrongRate         float64 `json:"wrongRate"`
}

// StatsSummary is derived from a user's full attempt history.
// Completed and Incomplete mirror Correct and Wrong.
type StatsSummary struct {
	Total          int                 `json:"total"`
	Correct        int                 `json:"correct"`
	Wrong          int                 `json:"wrong"`
	Accuracy       float64             `json:"accuracy"`
	Completed      int                 `json:"completed"`
	Incomplete     int                 `json:"incomplete"`
	StreakDays     int                 `json:"streakDays"`
	TopicBreakdown []LearningTopicStat `json:"topicBreakdown"`
}
