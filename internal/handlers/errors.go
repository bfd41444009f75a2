package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/vidtube_backend/internal/apperrors"
	"github.com/SscSPs/vidtube_backend/internal/dto"
	"github.com/SscSPs/vidtube_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// respondWithError maps a service error to a status code and JSON body.
// fallback is the message used for unexpected errors.
func respondWithError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var vErr *apperrors.ValidationError
	switch {
	case errors.As(err, &vErr):
		status := http.StatusBadRequest
		msg := "Validation failed"
		if errors.Is(err, apperrors.ErrDuplicate) {
			status = http.StatusConflict
			msg = "User with email or username already exists"
		}
		logger.Warn(msg, slog.String("error", err.Error()))
		c.JSON(status, dto.ErrorResponse{Error: msg, Fields: toFieldErrorResponses(vErr.Fields)})
	case errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Duplicate resource", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: "User with email or username already exists"})
	case errors.Is(err, apperrors.ErrRefreshTokenExpired):
		logger.Warn("Refresh token expired")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Refresh token expired"})
	case errors.Is(err, apperrors.ErrUnauthorized):
		logger.Warn("Unauthorized", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Invalid credentials"})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "User not found"})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: fallback})
	}
}

func toFieldErrorResponses(fields []apperrors.FieldError) []dto.FieldErrorResponse {
	out := make([]dto.FieldErrorResponse, 0, len(fields))
	for _, f := range fields {
		out = append(out, dto.FieldErrorResponse{Field: f.Field, Rule: f.Rule, Message: f.Message})
	}
	return out
}

// bindJSON decodes the request body and writes a 400 on failure.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind JSON", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return false
	}
	return true
}

// requireUserID reads the authenticated user ID and writes a 401 when it is absent.
func requireUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return "", false
	}
	return userID, true
}
