package dto

import "interview-navigator/internal/model"

// UploadCVResponse acknowledges a successful intake: the session is created
// and the first question is ready to fetch.
type UploadCVResponse struct {
	SessionID      string    `json:"session_id"`
	Questions      []string  `json:"questions"`
	CV             *model.CV `json:"cv"`
	TotalQuestions int       `json:"total_questions"`
}

type AnswerRequest struct {
	SessionID string `json:"session_id"`
	Answer    string `json:"answer"`
}

// QuestionResponse is the cursor view shown to the candidate. When Completed
// is true the question fields are omitted.
type QuestionResponse struct {
	Completed      bool   `json:"completed,omitempty"`
	Question       string `json:"question,omitempty"`
	QuestionNumber int    `json:"question_number,omitempty"`
	TotalQuestions int    `json:"total_questions"`
}
