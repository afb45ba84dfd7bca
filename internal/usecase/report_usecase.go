package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"

	"interview-navigator/internal/dto"
	"interview-navigator/internal/model"
	"interview-navigator/internal/repository"
	"interview-navigator/internal/response"
	"interview-navigator/internal/service"
)

var (
	ErrNotAllAnswered = errors.New("not all questions have been answered")
	ErrNotCompleted   = errors.New("interview not completed yet")
)

const fallbackFeedback = "Feedback generation unavailable."

type ReportUsecase struct {
	cvRepo      repository.CVRepository
	sessionRepo repository.SessionRepository
	reportRepo  repository.ReportRepository
	feedback    *service.FeedbackService
}

func NewReportUsecase(
	cvRepo repository.CVRepository,
	sessionRepo repository.SessionRepository,
	reportRepo repository.ReportRepository,
	feedback *service.FeedbackService,
) *ReportUsecase {
	return &ReportUsecase{
		cvRepo:      cvRepo,
		sessionRepo: sessionRepo,
		reportRepo:  reportRepo,
		feedback:    feedback,
	}
}

// GenerateReport finalizes a fully answered session: it runs the feedback
// analysis, computes the aggregate metrics, and persists the completed
// session together with its PerformanceReport in one transaction. Generation
// happens before any write, so a provider failure leaves the session active
// and retryable.
func (uc *ReportUsecase) GenerateReport(ctx context.Context, userID uint, sessionID string) (*dto.GenerateReportResponse, error) {
	session, err := ownedSession(uc.sessionRepo, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status == model.SessionCompleted {
		return nil, ErrSessionCompleted
	}
	if !session.Answered() {
		return nil, ErrNotAllAnswered
	}

	analysis, err := uc.feedback.Analyze(ctx, session.Questions, session.Answers)
	if err != nil {
		return nil, err
	}
	if analysis.OverallFeedback == "" && len(analysis.QuestionsAnalysis) == 0 {
		analysis.OverallFeedback = fallbackFeedback
	}

	totalQuestions := len(session.Questions)
	totalScore := analysis.TotalScore()
	accuracy, confidence := aggregateMetrics(totalScore, totalQuestions)

	session.Feedback = analysis.JSON()
	report := &model.PerformanceReport{
		AccuracyLevel:   accuracy,
		ConfidenceLevel: confidence,
		TotalQuestions:  totalQuestions,
		CorrectAnswers:  int(math.Round(totalScore)),
		Feedback:        analysis.JSON(),
		CVID:            session.CVID,
	}

	if err := uc.sessionRepo.Complete(session, report); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrSessionCompleted
		}
		return nil, err
	}

	return &dto.GenerateReportResponse{
		Report: &dto.ReportData{
			TotalQuestions:    totalQuestions,
			AnswersReceived:   len(session.Answers),
			AccuracyLevel:     accuracy,
			ConfidenceLevel:   confidence,
			DetailedResponses: detailedResponses(analysis, session, "No detailed analysis."),
			Feedback:          analysis.OverallFeedback,
		},
		ReportID: report.ID,
	}, nil
}

// ListReports returns one page of the user's stored reports, each paired with
// the CV it was generated for.
func (uc *ReportUsecase) ListReports(userID uint, page, pageSize int) ([]dto.ReportListItem, *response.Pagination, error) {
	reports, total, err := uc.reportRepo.ListByUser(userID, page, pageSize)
	if err != nil {
		return nil, nil, err
	}

	items := make([]dto.ReportListItem, 0, len(reports))
	for _, report := range reports {
		cv, err := uc.cvRepo.FindByID(report.CVID)
		if err != nil {
			return nil, nil, err
		}
		items = append(items, dto.ReportListItem{Report: report, CV: *cv})
	}

	return items, response.NewPagination(page, pageSize, len(items), total), nil
}

// SessionHistory lists the user's completed interviews, newest first, with a
// compact score display recomputed from each session's stored analysis.
func (uc *ReportUsecase) SessionHistory(userID uint) ([]dto.SessionSummary, error) {
	sessions, err := uc.sessionRepo.FindCompletedByUser(userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]dto.SessionSummary, 0, len(sessions))
	for _, session := range sessions {
		summary := dto.SessionSummary{
			SessionID: session.ID,
			CVCompany: "Unknown",
			CVRole:    "Unknown",
			Score:     fmt.Sprintf("%d/%d", len(session.Answers), len(session.Questions)),
		}

		if cv, err := uc.cvRepo.FindByID(session.CVID); err == nil {
			summary.CVCompany = cv.CompanyName
			summary.CVRole = cv.JobRole
			summary.InterviewLevel = cv.InterviewLevel
		} else if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}

		if session.CompletedAt != nil {
			summary.CompletedAt = session.CompletedAt.Format("2006-01-02 15:04")
		}

		if analysis, ok := model.ParseAnalysis(session.Feedback); ok {
			summary.Score = fmt.Sprintf("%s/%d", formatScore(analysis.TotalScore()), len(session.Questions))
		}

		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// ReportDetail reconstructs the aggregated report for a completed session
// from its stored analysis. Accuracy and confidence are recomputed from the
// per-question scores rather than replayed, so the detail view always matches
// what was originally reported.
func (uc *ReportUsecase) ReportDetail(userID uint, sessionID string) (*dto.ReportData, error) {
	session, err := ownedSession(uc.sessionRepo, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != model.SessionCompleted {
		return nil, ErrNotCompleted
	}

	analysis, ok := model.ParseAnalysis(session.Feedback)
	if !ok {
		log.Printf("Failed to parse stored feedback for session %s", session.ID)
		analysis.OverallFeedback = session.Feedback
		if analysis.OverallFeedback == "" {
			analysis.OverallFeedback = "No feedback available."
		}
	}

	totalQuestions := len(session.Questions)
	var accuracy, confidence string
	if len(analysis.QuestionsAnalysis) > 0 {
		accuracy, confidence = aggregateMetrics(analysis.TotalScore(), totalQuestions)
	} else {
		// Sessions stored before per-question analysis existed only have the
		// answer count to go on.
		ratio := math.Min(100, float64(len(session.Answers))/float64(totalQuestions)*100)
		accuracy = fmt.Sprintf("%.2f%%", ratio)
		confidence = "Moderate"
		if len(session.Answers) == totalQuestions {
			confidence = "High"
		}
	}

	return &dto.ReportData{
		TotalQuestions:    totalQuestions,
		AnswersReceived:   len(session.Answers),
		AccuracyLevel:     accuracy,
		ConfidenceLevel:   confidence,
		DetailedResponses: detailedResponses(analysis, session, "Detailed analysis unavailable for this old session."),
		Feedback:          analysis.OverallFeedback,
	}, nil
}

// aggregateMetrics computes the accuracy percentage and confidence level for
// one completed session. Confidence is High only strictly above 70 percent of
// the question count.
func aggregateMetrics(totalScore float64, totalQuestions int) (accuracy, confidence string) {
	accuracy = fmt.Sprintf("%.2f%%", totalScore/float64(totalQuestions)*100)
	confidence = "Moderate"
	if totalScore > 0.7*float64(totalQuestions) {
		confidence = "High"
	}
	return accuracy, confidence
}

// detailedResponses uses the per-question analysis when present, otherwise
// pairs stored questions with answers so the report is never empty.
func detailedResponses(analysis *model.InterviewAnalysis, session *model.InterviewSession, note string) []model.QuestionAnalysis {
	if len(analysis.QuestionsAnalysis) > 0 {
		return analysis.QuestionsAnalysis
	}

	detailed := make([]model.QuestionAnalysis, 0, len(session.Answers))
	for i, answer := range session.Answers {
		question := ""
		if i < len(session.Questions) {
			question = session.Questions[i]
		}
		detailed = append(detailed, model.QuestionAnalysis{
			Question: question,
			Answer:   answer,
			Status:   "Unknown",
			Score:    0,
			Feedback: note,
		})
	}
	return detailed
}

// formatScore renders a fractional score without trailing zeros, so 6.50
// displays as 6.5 and 7.00 as 7.
func formatScore(score float64) string {
	s := fmt.Sprintf("%.2f", score)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
