package domain

// QuestionsPerRound is fixed: every interview round carries exactly three
// questions.
const QuestionsPerRound = 3

// Question is a single generated interview question.
type Question struct {
	ID           int    `json:"id"`
	Type         string `json:"type"`
	Question     string `json:"question"`
	RequiresCode bool   `json:"requiresCode"`
}

// Round groups the questions presented together in one interview stage.
type Round []Question
