package dto

import "interview-navigator/internal/model"

// ReportData is the aggregated report shape used by both report generation
// and the later detail view. The detail view recomputes the accuracy and
// confidence fields from the stored per-question analysis so the two always
// agree.
type ReportData struct {
	TotalQuestions    int                      `json:"total_questions"`
	AnswersReceived   int                      `json:"answers_received"`
	AccuracyLevel     string                   `json:"accuracy_level"`
	ConfidenceLevel   string                   `json:"confidence_level"`
	DetailedResponses []model.QuestionAnalysis `json:"detailed_responses"`
	Feedback          string                   `json:"feedback"`
}

type GenerateReportRequest struct {
	SessionID string `json:"session_id"`
}

type GenerateReportResponse struct {
	Report   *ReportData `json:"report"`
	ReportID uint        `json:"report_id"`
}

// ReportListItem pairs a stored report with the CV it was generated for.
type ReportListItem struct {
	Report model.PerformanceReport `json:"report"`
	CV     model.CV                `json:"cv"`
}

// SessionSummary is one row of the interview history list.
type SessionSummary struct {
	SessionID      string `json:"session_id"`
	CVCompany      string `json:"cv_company"`
	CVRole         string `json:"cv_role"`
	InterviewLevel string `json:"interview_level"`
	CompletedAt    string `json:"completed_at"`
	Score          string `json:"score"`
}
