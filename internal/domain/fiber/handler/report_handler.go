package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"interview-navigator/internal/dto"
	"interview-navigator/internal/middleware"
	"interview-navigator/internal/repository"
	"interview-navigator/internal/usecase"
	"interview-navigator/internal/util"
)

type ReportHandler struct {
	uc *usecase.ReportUsecase
}

func NewReportHandler(uc *usecase.ReportUsecase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

func (h *ReportHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/api/report/generate", middleware.RequireAuth(), h.Generate)
	app.Get("/api/reports", middleware.RequireAuth(), h.List)
	app.Get("/api/profile/reports", middleware.RequireAuth(), h.History)
	app.Get("/api/report/:session_id", middleware.RequireAuth(), h.Detail)
}

func (h *ReportHandler) Generate(c *fiber.Ctx) error {
	var req dto.GenerateReportRequest
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

	result, err := h.uc.GenerateReport(c.Context(), middleware.CallerID(c), req.SessionID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrNotAllAnswered):
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusBadRequest,
				Message: "Not all questions have been answered",
			})
		case errors.Is(err, usecase.ErrSessionCompleted):
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusConflict,
				Message: "Interview session is already completed",
			})
		case isProviderError(err):
			return providerErrorResponse(c, err)
		}
		return sessionErrorResponse(c, err, "Failed to generate report")
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Report generated successfully",
		Data:    result,
	})
}

func (h *ReportHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", 10)

	items, pagination, err := h.uc.ListReports(middleware.CallerID(c), page, pageSize)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "Failed to fetch reports",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success get reports",
		Data:       items,
		Pagination: pagination,
	})
}

func (h *ReportHandler) History(c *fiber.Ctx) error {
	summaries, err := h.uc.SessionHistory(middleware.CallerID(c))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "Failed to load reports",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get interview history",
		Data:    summaries,
	})
}

func (h *ReportHandler) Detail(c *fiber.Ctx) error {
	report, err := h.uc.ReportDetail(middleware.CallerID(c), c.Params("session_id"))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusNotFound,
				Message: "Report not found",
			})
		case errors.Is(err, usecase.ErrForbidden):
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusForbidden,
				Message: "Unauthorized",
			})
		case errors.Is(err, usecase.ErrNotCompleted):
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusBadRequest,
				Message: "Interview not completed yet",
			})
		}
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "Failed to load report",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get report",
		Data:    fiber.Map{"report": report},
	})
}
