package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskflow/internal/adapter/http/dto"
	"taskflow/internal/adapter/http/mapper"
	"taskflow/internal/adapter/http/middleware"
	"taskflow/internal/adapter/http/validation"
	"taskflow/internal/core/domain"
	"taskflow/internal/core/ports"
	"taskflow/pkg/apierrors"
)

type SummaryHandler struct {
	summaryService ports.SummaryService
}

func NewSummaryHandler(summaryService ports.SummaryService) *SummaryHandler {
	return &SummaryHandler{summaryService: summaryService}
}

func (h *SummaryHandler) ListSummaries(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	limit, err := validation.ParseSummaryLimit(c.Query("limit"))
	if err != nil {
		abortWithInvalidLimit(c)
		return
	}

	summaries, err := h.summaryService.ListSummaries(c.Request.Context(), userID, limit)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			abortWithInvalidLimit(c)
			return
		}

		zap.L().Error("failed to list summaries", zap.String("user_id", userID), zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, apierrors.MsgFailListSummaries)
		return
	}

	c.JSON(http.StatusOK, mapper.ToSummaryItems(summaries))
}

func (h *SummaryHandler) GetSummary(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	date := c.Param("date")
	if !domain.ValidSummaryDate(date) {
		abortWithError(c, http.StatusBadRequest, apierrors.MsgInvalidSummaryDate)
		return
	}

	summary, err := h.summaryService.GetSummary(c.Request.Context(), userID, date)
	if err != nil {
		if errors.Is(err, domain.ErrSummaryNotFound) {
			abortWithError(c, http.StatusNotFound, apierrors.MsgSummaryNotFound)
			return
		}

		zap.L().Error("failed to get summary", zap.String("date", date), zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, apierrors.MsgFailGetSummary)
		return
	}

	c.JSON(http.StatusOK, mapper.ToSummaryItem(summary))
}

func (h *SummaryHandler) UpsertSummary(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req dto.UpsertSummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, apierrors.MsgInvalidSummaryPayload)
		return
	}

	input, err := validation.BuildUpsertSummaryInput(req)
	if err != nil {
		if errors.Is(err, validation.ErrInvalidSummaryDate) {
			abortWithError(c, http.StatusBadRequest, apierrors.MsgInvalidSummaryDate)
			return
		}
		abortWithError(c, http.StatusBadRequest, apierrors.MsgInvalidSummaryPayload)
		return
	}

	summary, err := h.summaryService.UpsertSummary(c.Request.Context(), userID, input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			abortWithError(c, http.StatusBadRequest, apierrors.MsgInvalidSummaryPayload)
		case errors.Is(err, domain.ErrSummaryConflict):
			abortWithError(c, http.StatusConflict, apierrors.MsgSummaryConflict)
		default:
			zap.L().Error("failed to save summary", zap.String("date", input.Date), zap.Error(err))
			abortWithError(c, http.StatusInternalServerError, apierrors.MsgFailSaveSummary)
		}
		return
	}

	c.JSON(http.StatusCreated, mapper.ToSummaryItem(summary))
}

func (h *SummaryHandler) DeleteSummary(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	date := c.Param("date")
	if !domain.ValidSummaryDate(date) {
		abortWithError(c, http.StatusBadRequest, apierrors.MsgInvalidSummaryDate)
		return
	}

	if err := h.summaryService.DeleteSummary(c.Request.Context(), userID, date); err != nil {
		if errors.Is(err, domain.ErrSummaryNotFound) {
			abortWithError(c, http.StatusNotFound, apierrors.MsgSummaryNotFound)
			return
		}

		zap.L().Error("failed to delete summary", zap.String("date", date), zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, apierrors.MsgFailDeleteSummary)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *SummaryHandler) ListSummaryRange(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	startDate, endDate := c.Param("startDate"), c.Param("endDate")
	if err := validation.ValidateDateRange(startDate, endDate); err != nil {
		abortWithError(c, http.StatusBadRequest, apierrors.MsgInvalidSummaryDate)
		return
	}

	summaries, err := h.summaryService.ListSummaryRange(c.Request.Context(), userID, startDate, endDate)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			abortWithError(c, http.StatusBadRequest, apierrors.MsgInvalidSummaryDate)
			return
		}

		zap.L().Error("failed to list summary range",
			zap.String("start_date", startDate), zap.String("end_date", endDate), zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, apierrors.MsgFailListSummaries)
		return
	}

	c.JSON(http.StatusOK, mapper.ToSummaryItems(summaries))
}

func (h *SummaryHandler) GenerateSummary(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req dto.GenerateSummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil || !domain.ValidSummaryDate(req.Date) {
		abortWithError(c, http.StatusBadRequest, apierrors.MsgInvalidSummaryDate)
		return
	}

	generated, err := h.summaryService.GenerateDailySummary(c.Request.Context(), userID, req.Date)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			abortWithError(c, http.StatusBadRequest, apierrors.MsgInvalidSummaryDate)
			return
		}
		abortWithGenerationError(c, err)
		return
	}

	c.JSON(http.StatusOK, mapper.ToGeneratedSummaryItem(generated))
}

func (h *SummaryHandler) GenerateWeeklySummary(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req dto.WeeklySummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, apierrors.MsgInvalidSummaryDate)
		return
	}
	if err := validation.ValidateDateRange(req.StartDate, req.EndDate); err != nil {
		abortWithError(c, http.StatusBadRequest, apierrors.MsgInvalidSummaryDate)
		return
	}

	text, err := h.summaryService.GenerateWeeklySummary(c.Request.Context(), userID, req.StartDate, req.EndDate)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSummaryNotFound):
			abortWithError(c, http.StatusNotFound, apierrors.MsgNoSummariesInRange)
		case errors.Is(err, domain.ErrInvalidInput):
			abortWithError(c, http.StatusBadRequest, apierrors.MsgInvalidSummaryDate)
		default:
			abortWithGenerationError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, dto.WeeklySummaryItem{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Summary:   text,
	})
}

func abortWithGenerationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrProviderUnauthorized):
		abortWithError(c, http.StatusBadGateway, apierrors.MsgProviderUnauthorized)
	case errors.Is(err, domain.ErrProviderQuotaExceeded):
		abortWithError(c, http.StatusTooManyRequests, apierrors.MsgProviderQuotaExceeded)
	case errors.Is(err, domain.ErrProviderModelUnavailable):
		abortWithError(c, http.StatusServiceUnavailable, apierrors.MsgProviderModelUnavailable)
	case errors.Is(err, domain.ErrProviderNotConfigured):
		abortWithError(c, http.StatusServiceUnavailable, apierrors.MsgProviderNotConfigured)
	case errors.Is(err, domain.ErrSummaryGeneration):
		zap.L().Warn("summary generation failed", zap.Error(err))
		abortWithError(c, http.StatusBadGateway, apierrors.MsgFailGenerateSummary)
	default:
		zap.L().Error("failed to generate summary", zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, apierrors.MsgInternalError)
	}
}

func abortWithInvalidLimit(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusBadRequest, apierrors.CreateErrorWithData(
		http.StatusBadRequest,
		apierrors.MsgInvalidSummaryLimit,
		middleware.GetLang(c),
		map[string]any{"Max": domain.MaxSummaryLimit},
	))
}
