package usecase

import (
	"archive/zip"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"interview-navigator/internal/model"
	"interview-navigator/internal/repository"
)

// In-memory repository fakes. FindByID hands out copies so the optimistic
// cursor check behaves like a real database read.

type fakeSessionRepo struct {
	sessions map[string]*model.InterviewSession
	reports  []*model.PerformanceReport
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*model.InterviewSession)}
}

func cloneSession(s *model.InterviewSession) *model.InterviewSession {
	c := *s
	c.Questions = append(model.StringList{}, s.Questions...)
	c.Answers = append(model.StringList{}, s.Answers...)
	return &c
}

func (f *fakeSessionRepo) Create(session *model.InterviewSession) error {
	f.sessions[session.ID] = cloneSession(session)
	return nil
}

func (f *fakeSessionRepo) FindByID(id string) (*model.InterviewSession, error) {
	stored, ok := f.sessions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneSession(stored), nil
}

func (f *fakeSessionRepo) AppendAnswer(session *model.InterviewSession, answer string) error {
	stored, ok := f.sessions[session.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if stored.Status != model.SessionActive || stored.CurrentIndex != session.CurrentIndex {
		return repository.ErrConflict
	}
	stored.Answers = append(stored.Answers, answer)
	stored.CurrentIndex++

	session.Answers = append(session.Answers, answer)
	session.CurrentIndex++
	return nil
}

func (f *fakeSessionRepo) Complete(session *model.InterviewSession, report *model.PerformanceReport) error {
	stored, ok := f.sessions[session.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if stored.Status != model.SessionActive {
		return repository.ErrConflict
	}

	completedAt := time.Now().UTC()
	stored.Feedback = session.Feedback
	stored.Status = model.SessionCompleted
	stored.CompletedAt = &completedAt

	report.ID = uint(len(f.reports) + 1)
	f.reports = append(f.reports, report)

	session.Status = model.SessionCompleted
	session.CompletedAt = &completedAt
	return nil
}

func (f *fakeSessionRepo) FindCompletedByUser(userID uint) ([]model.InterviewSession, error) {
	var sessions []model.InterviewSession
	for _, s := range f.sessions {
		if s.UserID == userID && s.Status == model.SessionCompleted {
			sessions = append(sessions, *cloneSession(s))
		}
	}
	return sessions, nil
}

type fakeCVRepo struct {
	cvs    map[uint]*model.CV
	nextID uint
}

func newFakeCVRepo() *fakeCVRepo {
	return &fakeCVRepo{cvs: make(map[uint]*model.CV), nextID: 1}
}

func (f *fakeCVRepo) Create(cv *model.CV) error {
	cv.ID = f.nextID
	f.nextID++
	stored := *cv
	f.cvs[cv.ID] = &stored
	return nil
}

func (f *fakeCVRepo) FindByID(id uint) (*model.CV, error) {
	cv, ok := f.cvs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	stored := *cv
	return &stored, nil
}

type fakeReportRepo struct {
	reports []model.PerformanceReport
}

func (f *fakeReportRepo) ListByUser(userID uint, page, pageSize int) ([]model.PerformanceReport, int64, error) {
	return f.reports, int64(len(f.reports)), nil
}

type fakeGenerator struct {
	output string
	err    error
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	return f.output, f.err
}

func activeSession(id string, userID uint, questions ...string) *model.InterviewSession {
	return &model.InterviewSession{
		ID:        id,
		UserID:    userID,
		CVID:      1,
		Questions: model.StringList(questions),
		Answers:   model.StringList{},
		Status:    model.SessionActive,
	}
}

// whitespaceDOCX writes a docx whose only text run is blank, so extraction
// succeeds but yields nothing usable.
func whitespaceDOCX(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "blank.docx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	entry, err := w.Create("word/document.xml")
	if err != nil {
		t.Fatal(err)
	}
	body := `<?xml version="1.0"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body><w:p><w:r><w:t>   </w:t></w:r></w:p></w:body></w:document>`
	if _, err := entry.Write([]byte(body)); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestUploadCVRejectsWhitespaceOnlyCV(t *testing.T) {
	cvRepo := newFakeCVRepo()
	sessionRepo := newFakeSessionRepo()

	// Question service and storage are nil: rejection must happen before
	// either is touched.
	uc := NewInterviewUsecase(cvRepo, sessionRepo, nil, nil)

	_, _, err := uc.UploadCV(context.Background(), 7, UploadInput{
		TempPath:       whitespaceDOCX(t),
		OriginalName:   "blank.docx",
		ContentType:    "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		Extension:      "docx",
		CompanyName:    "Acme",
		JobRole:        "Engineer",
		InterviewLevel: model.LevelBeginner,
	})
	if !errors.Is(err, ErrUnreadableCV) {
		t.Fatalf("UploadCV() error = %v, want ErrUnreadableCV", err)
	}

	if len(cvRepo.cvs) != 0 {
		t.Error("no CV may be persisted for a CV with no extractable text")
	}
	if len(sessionRepo.sessions) != 0 {
		t.Error("no session may be created for a CV with no extractable text")
	}
}

func TestSubmitAnswerAdvancesThroughSession(t *testing.T) {
	sessionRepo := newFakeSessionRepo()
	sessionRepo.Create(activeSession("s1", 7, "q1", "q2", "q3"))

	uc := NewInterviewUsecase(newFakeCVRepo(), sessionRepo, nil, nil)

	answers := []string{"a1", "a2", "a3"}
	for i, answer := range answers {
		state, err := uc.SubmitAnswer(7, "s1", answer)
		if err != nil {
			t.Fatalf("SubmitAnswer(%d) error = %v", i, err)
		}

		stored := sessionRepo.sessions["s1"]
		if len(stored.Answers) != stored.CurrentIndex {
			t.Fatalf("after answer %d: len(answers)=%d, cursor=%d", i, len(stored.Answers), stored.CurrentIndex)
		}

		if i < len(answers)-1 {
			if state.Completed {
				t.Fatalf("after answer %d: unexpected completed state", i)
			}
			if state.QuestionNumber != i+2 {
				t.Errorf("after answer %d: QuestionNumber = %d, want %d", i, state.QuestionNumber, i+2)
			}
		} else if !state.Completed {
			t.Error("final answer should yield the completed state")
		}
	}

	stored := sessionRepo.sessions["s1"]
	if stored.Status != model.SessionActive {
		t.Error("answering all questions must not complete the session by itself")
	}
}

func TestSubmitAnswerValidation(t *testing.T) {
	sessionRepo := newFakeSessionRepo()
	sessionRepo.Create(activeSession("s1", 7, "q1"))
	uc := NewInterviewUsecase(newFakeCVRepo(), sessionRepo, nil, nil)

	if _, err := uc.SubmitAnswer(7, "s1", ""); !errors.Is(err, ErrEmptyAnswer) {
		t.Errorf("empty answer: error = %v, want ErrEmptyAnswer", err)
	}
	if _, err := uc.SubmitAnswer(7, "missing", "a"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("unknown session: error = %v, want ErrNotFound", err)
	}
	if _, err := uc.SubmitAnswer(9, "s1", "a"); !errors.Is(err, ErrForbidden) {
		t.Errorf("other user's session: error = %v, want ErrForbidden", err)
	}
}

func TestSubmitAnswerAfterAllAnswered(t *testing.T) {
	sessionRepo := newFakeSessionRepo()
	session := activeSession("s1", 7, "q1")
	session.Answers = model.StringList{"a1"}
	session.CurrentIndex = 1
	sessionRepo.Create(session)

	uc := NewInterviewUsecase(newFakeCVRepo(), sessionRepo, nil, nil)

	state, err := uc.SubmitAnswer(7, "s1", "extra")
	if err != nil {
		t.Fatalf("SubmitAnswer() error = %v", err)
	}
	if !state.Completed {
		t.Error("answered session should report completed, not accept more answers")
	}
	if got := len(sessionRepo.sessions["s1"].Answers); got != 1 {
		t.Errorf("stored answers = %d, want 1", got)
	}
}

func TestSubmitAnswerConcurrentConflict(t *testing.T) {
	sessionRepo := newFakeSessionRepo()
	sessionRepo.Create(activeSession("s1", 7, "q1", "q2"))
	uc := NewInterviewUsecase(newFakeCVRepo(), sessionRepo, nil, nil)

	// Simulate a second submission racing ahead of this one.
	stale, _ := sessionRepo.FindByID("s1")
	if err := sessionRepo.AppendAnswer(cloneSession(stale), "first"); err != nil {
		t.Fatalf("setup append failed: %v", err)
	}

	if err := sessionRepo.AppendAnswer(stale, "second"); !errors.Is(err, repository.ErrConflict) {
		t.Errorf("stale cursor append: error = %v, want ErrConflict", err)
	}

	state, err := uc.CurrentQuestion(7, "s1")
	if err != nil {
		t.Fatalf("CurrentQuestion() error = %v", err)
	}
	if state.QuestionNumber != 2 {
		t.Errorf("QuestionNumber = %d, want 2", state.QuestionNumber)
	}
}

func TestCurrentQuestion(t *testing.T) {
	sessionRepo := newFakeSessionRepo()
	sessionRepo.Create(activeSession("s1", 7, "first question", "second question"))
	uc := NewInterviewUsecase(newFakeCVRepo(), sessionRepo, nil, nil)

	state, err := uc.CurrentQuestion(7, "s1")
	if err != nil {
		t.Fatalf("CurrentQuestion() error = %v", err)
	}
	if state.Question != "first question" || state.QuestionNumber != 1 || state.TotalQuestions != 2 {
		t.Errorf("unexpected state: %+v", state)
	}

	if _, err := uc.CurrentQuestion(8, "s1"); !errors.Is(err, ErrForbidden) {
		t.Errorf("other user: error = %v, want ErrForbidden", err)
	}
	if _, err := uc.CurrentQuestion(7, "nope"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("unknown session: error = %v, want ErrNotFound", err)
	}
}
