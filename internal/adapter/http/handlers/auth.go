package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskflow/internal/adapter/http/dto"
	"taskflow/internal/adapter/http/mapper"
	"taskflow/internal/core/domain"
	"taskflow/internal/core/ports"
	"taskflow/pkg/apierrors"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, apierrors.MsgInvalidAuthPayload)
		return
	}

	result, err := h.authService.Register(c.Request.Context(), domain.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			abortWithError(c, http.StatusBadRequest, apierrors.MsgInvalidAuthPayload)
		case errors.Is(err, domain.ErrEmailTaken):
			abortWithError(c, http.StatusConflict, apierrors.MsgEmailTaken)
		default:
			zap.L().Error("failed to register user", zap.Error(err))
			abortWithError(c, http.StatusInternalServerError, apierrors.MsgFailRegister)
		}
		return
	}

	c.JSON(http.StatusOK, mapper.ToAuthResponse(result))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, apierrors.MsgInvalidAuthPayload)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), domain.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			abortWithError(c, http.StatusBadRequest, apierrors.MsgInvalidAuthPayload)
		case errors.Is(err, domain.ErrInvalidCredentials):
			abortWithError(c, http.StatusUnauthorized, apierrors.MsgInvalidCredentials)
		default:
			zap.L().Error("failed to log in", zap.Error(err))
			abortWithError(c, http.StatusInternalServerError, apierrors.MsgFailLogin)
		}
		return
	}

	c.JSON(http.StatusOK, mapper.ToAuthResponse(result))
}
