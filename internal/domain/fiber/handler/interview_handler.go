package handler

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"interview-navigator/internal/config"
	"interview-navigator/internal/dto"
	"interview-navigator/internal/middleware"
	"interview-navigator/internal/repository"
	"interview-navigator/internal/service"
	"interview-navigator/internal/usecase"
	"interview-navigator/internal/util"
)

var cvContentTypes = map[string]string{
	"pdf":  "application/pdf",
	"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

type InterviewHandler struct {
	uc *usecase.InterviewUsecase
}

func NewInterviewHandler(uc *usecase.InterviewUsecase) *InterviewHandler {
	return &InterviewHandler{uc: uc}
}

func (h *InterviewHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/api/upload-cv", middleware.RequireAuth(), h.UploadCV)
	app.Get("/api/interview/question", middleware.RequireAuth(), h.Question)
	app.Post("/api/interview/answer", middleware.RequireAuth(), h.Answer)
}

func (h *InterviewHandler) UploadCV(c *fiber.Ctx) error {
	userID := middleware.CallerID(c)

	file, err := c.FormFile("cv_file")
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "No file provided",
		}, err)
	}

	companyName := strings.TrimSpace(c.FormValue("company_name"))
	jobRole := strings.TrimSpace(c.FormValue("job_role"))
	interviewLevel := strings.TrimSpace(c.FormValue("interview_level"))
	jobDescription := strings.TrimSpace(c.FormValue("job_description"))

	if companyName == "" || jobRole == "" || interviewLevel == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Company name, job role, and interview level are required",
		})
	}

	if file.Filename == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "No file selected",
		})
	}

	// Type check happens before any extraction work.
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(file.Filename), "."))
	contentType, allowed := cvContentTypes[ext]
	if !allowed {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Invalid file type. Please upload PDF or DOCX",
		})
	}

	if maxSize := config.LoadStorageConfig().MaxFileSize; file.Size > maxSize {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: fmt.Sprintf("File size is too large (max %dMB)", maxSize/(1024*1024)),
		})
	}

	tempPath := filepath.Join(os.TempDir(), fmt.Sprintf("%s_%s", uuid.New().String(), filepath.Base(file.Filename)))
	if err := c.SaveFile(file, tempPath); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "Cannot save uploaded file",
		}, err)
	}
	defer func() {
		if err := os.Remove(tempPath); err != nil && !os.IsNotExist(err) {
			log.Printf("Could not delete temp file %s: %v", tempPath, err)
		}
	}()

	cv, session, err := h.uc.UploadCV(c.Context(), userID, usecase.UploadInput{
		TempPath:       tempPath,
		OriginalName:   file.Filename,
		ContentType:    contentType,
		Extension:      ext,
		CompanyName:    companyName,
		JobRole:        jobRole,
		InterviewLevel: interviewLevel,
		JobDescription: jobDescription,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUnreadableCV):
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusBadRequest,
				Message: "Could not extract text from CV. Please upload a valid file.",
			})
		case isProviderError(err):
			return providerErrorResponse(c, err)
		}
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "Failed to upload CV",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "CV uploaded successfully",
		Data: dto.UploadCVResponse{
			SessionID:      session.ID,
			Questions:      session.Questions,
			CV:             cv,
			TotalQuestions: len(session.Questions),
		},
	})
}

func (h *InterviewHandler) Question(c *fiber.Ctx) error {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Session ID is required",
		})
	}

	state, err := h.uc.CurrentQuestion(middleware.CallerID(c), sessionID)
	if err != nil {
		return sessionErrorResponse(c, err, "Failed to get question")
	}
	return questionResponse(c, state)
}

func (h *InterviewHandler) Answer(c *fiber.Ctx) error {
	var req dto.AnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Invalid request body",
		}, err)
	}

	if req.SessionID == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Session ID is required",
		})
	}

	state, err := h.uc.SubmitAnswer(middleware.CallerID(c), req.SessionID, strings.TrimSpace(req.Answer))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEmptyAnswer):
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusBadRequest,
				Message: "Answer is required",
			})
		case errors.Is(err, repository.ErrConflict):
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusConflict,
				Message: "Answer already recorded for this question",
			})
		}
		return sessionErrorResponse(c, err, "Failed to submit answer")
	}
	return questionResponse(c, state)
}

func questionResponse(c *fiber.Ctx, state *usecase.QuestionState) error {
	message := "Success get question"
	if state.Completed {
		message = "Interview completed"
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: message,
		Data: dto.QuestionResponse{
			Completed:      state.Completed,
			Question:       state.Question,
			QuestionNumber: state.QuestionNumber,
			TotalQuestions: state.TotalQuestions,
		},
	})
}

// sessionErrorResponse maps the shared session lookup failures: unknown
// session, session owned by someone else, and everything else.
func sessionErrorResponse(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "Invalid or expired session",
		})
	case errors.Is(err, usecase.ErrForbidden):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusForbidden,
			Message: "Unauthorized access to session",
		})
	}
	return util.ErrorResponse(c, util.ErrorResponseFormat{
		Message: fallback,
	}, err)
}

func isProviderError(err error) bool {
	return errors.Is(err, service.ErrProviderConnection) || errors.Is(err, service.ErrProviderAPI)
}

// providerErrorResponse surfaces a generation failure with its retry-suggesting
// message: 503 when the provider could not be reached, 502 when it answered
// with an error.
func providerErrorResponse(c *fiber.Ctx, err error) error {
	code := fiber.StatusBadGateway
	if errors.Is(err, service.ErrProviderConnection) {
		code = fiber.StatusServiceUnavailable
	}
	return util.ErrorResponse(c, util.ErrorResponseFormat{
		Code:    code,
		Message: service.UserMessage(err),
	}, err)
}
