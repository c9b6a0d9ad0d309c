package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rankten/rankten-backend/internal/middleware"
	"github.com/rankten/rankten-backend/internal/model"
	"github.com/rankten/rankten-backend/internal/response"
	"github.com/rankten/rankten-backend/internal/service"
	"github.com/rankten/rankten-backend/internal/validator"
)

// SessionHandler handles the authenticated session lifecycle endpoints.
type SessionHandler struct {
	sessionService *service.SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessionService *service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// Start godoc
// POST /api/v1/session/start
// Starts today's session, or resumes/expires an existing one. The response
// state field tells the client which of the four outcomes happened.
func (h *SessionHandler) Start(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.StartSessionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	quizDate, ok := parsePlayableDate(req.QuizDate, time.Now())
	if !ok {
		failWrongDate(c)
		return
	}

	state, err := h.sessionService.StartOrResume(c.Request.Context(), claims.UserID, quizDate)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"session": state})
}

// SaveProgress godoc
// PUT /api/v1/session/progress
// Persists a progress snapshot against the open session.
func (h *SessionHandler) SaveProgress(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.SaveProgressRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	quizDate, ok := parsePlayableDate(req.QuizDate, time.Now())
	if !ok {
		failWrongDate(c)
		return
	}

	err := h.sessionService.SaveProgress(c.Request.Context(), claims.UserID, quizDate, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoSession):
			response.Fail(c, http.StatusNotFound, response.ErrNoSession)
		case errors.Is(err, service.ErrSessionCompleted):
			response.Fail(c, http.StatusConflict, response.ErrSessionCompleted)
		case errors.Is(err, service.ErrInvalidProgress):
			response.Fail(c, http.StatusUnprocessableEntity, response.ErrInvalidProgress)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"saved": true})
}
