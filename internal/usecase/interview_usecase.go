package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"interview-navigator/internal/model"
	"interview-navigator/internal/repository"
	"interview-navigator/internal/service"
	"interview-navigator/internal/storage"
	"interview-navigator/internal/util"
)

var (
	ErrForbidden        = errors.New("resource belongs to another user")
	ErrEmptyAnswer      = errors.New("answer must not be empty")
	ErrUnreadableCV     = errors.New("could not extract text from the uploaded file")
	ErrSessionCompleted = errors.New("interview session is already completed")
)

// UploadInput carries one CV upload: the temp file the handler saved plus the
// job-targeting form fields.
type UploadInput struct {
	TempPath       string
	OriginalName   string
	ContentType    string
	Extension      string
	CompanyName    string
	JobRole        string
	InterviewLevel string
	JobDescription string
}

// QuestionState is the interview cursor as shown to the candidate. Numbers
// are 1-based; Completed means every question has an accepted answer.
type QuestionState struct {
	Completed      bool
	Question       string
	QuestionNumber int
	TotalQuestions int
}

type InterviewUsecase struct {
	cvRepo      repository.CVRepository
	sessionRepo repository.SessionRepository
	questions   *service.QuestionService
	store       *storage.MinIOClient
}

func NewInterviewUsecase(
	cvRepo repository.CVRepository,
	sessionRepo repository.SessionRepository,
	questions *service.QuestionService,
	store *storage.MinIOClient,
) *InterviewUsecase {
	return &InterviewUsecase{
		cvRepo:      cvRepo,
		sessionRepo: sessionRepo,
		questions:   questions,
		store:       store,
	}
}

// UploadCV runs the full intake flow: extract text, generate the question
// list, store the file, then persist the CV and its fresh session. Nothing is
// persisted until question generation has succeeded, so a provider outage
// leaves no half-created records behind.
func (uc *InterviewUsecase) UploadCV(ctx context.Context, userID uint, in UploadInput) (*model.CV, *model.InterviewSession, error) {
	cvText := util.ExtractText(in.TempPath, in.Extension)
	if strings.TrimSpace(cvText) == "" {
		return nil, nil, ErrUnreadableCV
	}

	questions, err := uc.questions.GenerateQuestions(ctx, cvText, in.CompanyName, in.JobRole, in.InterviewLevel, in.JobDescription)
	if err != nil {
		return nil, nil, err
	}

	objectName := storage.ObjectName(userID, in.OriginalName)
	if err := uc.store.UploadFile(ctx, objectName, in.TempPath, in.ContentType); err != nil {
		return nil, nil, err
	}

	cv := &model.CV{
		FilePath:       objectName,
		CompanyName:    in.CompanyName,
		JobRole:        in.JobRole,
		InterviewLevel: in.InterviewLevel,
		JobDescription: in.JobDescription,
		UserID:         userID,
	}
	if err := uc.cvRepo.Create(cv); err != nil {
		if delErr := uc.store.DeleteFile(ctx, objectName); delErr != nil {
			log.Printf("Failed to roll back stored object %s: %v", objectName, delErr)
		}
		return nil, nil, err
	}

	session := &model.InterviewSession{
		ID:        uuid.New().String(),
		UserID:    userID,
		CVID:      cv.ID,
		Questions: questions,
		Answers:   model.StringList{},
		Status:    model.SessionActive,
	}
	if err := uc.sessionRepo.Create(session); err != nil {
		return nil, nil, err
	}

	return cv, session, nil
}

// CurrentQuestion returns the question at the session's cursor, or the
// completed state once the cursor has passed the last question.
func (uc *InterviewUsecase) CurrentQuestion(userID uint, sessionID string) (*QuestionState, error) {
	session, err := uc.ownedSession(userID, sessionID)
	if err != nil {
		return nil, err
	}
	return stateOf(session), nil
}

// SubmitAnswer accepts one answer for the current question and advances the
// cursor. The repository rejects a stale cursor, so two racing submissions
// for the same question cannot both be recorded.
func (uc *InterviewUsecase) SubmitAnswer(userID uint, sessionID, answer string) (*QuestionState, error) {
	if answer == "" {
		return nil, ErrEmptyAnswer
	}

	session, err := uc.ownedSession(userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status == model.SessionCompleted || session.Answered() {
		return stateOf(session), nil
	}

	if err := uc.sessionRepo.AppendAnswer(session, answer); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, fmt.Errorf("%w: answer already recorded for this question", repository.ErrConflict)
		}
		return nil, err
	}

	return stateOf(session), nil
}

func (uc *InterviewUsecase) ownedSession(userID uint, sessionID string) (*model.InterviewSession, error) {
	return ownedSession(uc.sessionRepo, userID, sessionID)
}

// ownedSession loads a session and enforces ownership. A session owned by
// another user is rejected as forbidden, which callers keep distinct from
// not-found.
func ownedSession(repo repository.SessionRepository, userID uint, sessionID string) (*model.InterviewSession, error) {
	session, err := repo.FindByID(sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, ErrForbidden
	}
	return session, nil
}

func stateOf(session *model.InterviewSession) *QuestionState {
	if session.Answered() {
		return &QuestionState{
			Completed:      true,
			TotalQuestions: len(session.Questions),
		}
	}
	return &QuestionState{
		Question:       session.Questions[session.CurrentIndex],
		QuestionNumber: session.CurrentIndex + 1,
		TotalQuestions: len(session.Questions),
	}
}
