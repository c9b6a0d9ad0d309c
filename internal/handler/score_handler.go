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

// ScoreHandler handles score submission and streak lookup.
type ScoreHandler struct {
	scoreService *service.ScoreService
}

// NewScoreHandler creates a new ScoreHandler.
func NewScoreHandler(scoreService *service.ScoreService) *ScoreHandler {
	return &ScoreHandler{scoreService: scoreService}
}

// Submit godoc
// POST /api/v1/score/submit
// Finalizes the day's attempt into an immutable score record and returns
// the computed rank and streak.
func (h *ScoreHandler) Submit(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.SubmitScoreRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	quizDate, ok := parsePlayableDate(req.QuizDate, time.Now())
	if !ok {
		failWrongDate(c)
		return
	}

	result, err := h.scoreService.Submit(c.Request.Context(), claims.UserID, quizDate, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoSession):
			response.Fail(c, http.StatusNotFound, response.ErrNoSession)
		case errors.Is(err, service.ErrAlreadySubmitted):
			response.Fail(c, http.StatusConflict, response.ErrAlreadySubmitted)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Streak godoc
// GET /api/v1/score/streak
// Returns the player's current and longest streaks.
func (h *ScoreHandler) Streak(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	streak, err := h.scoreService.GetStreak(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"streak": streak})
}
