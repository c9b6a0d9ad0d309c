package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rankten/rankten-backend/internal/model"
	"github.com/rankten/rankten-backend/internal/response"
	"github.com/rankten/rankten-backend/internal/service"
	"github.com/rankten/rankten-backend/internal/validator"
)

// QuizHandler handles the public quiz endpoints: the day's quiz metadata,
// guess verification, timeout reveals and hints. None of them touch
// session state; the client folds the results into its next progress save.
type QuizHandler struct {
	guessService *service.GuessService
}

// NewQuizHandler creates a new QuizHandler.
func NewQuizHandler(guessService *service.GuessService) *QuizHandler {
	return &QuizHandler{guessService: guessService}
}

// Today godoc
// GET /api/v1/quiz/today
// Returns the day's quiz metadata. Answers are never included.
func (h *QuizHandler) Today(c *gin.Context) {
	info := h.guessService.Today()
	response.Success(c, http.StatusOK, gin.H{"quiz": info})
}

// VerifyGuess godoc
// POST /api/v1/quiz/verify-guess
// Checks a free-text guess against the unanswered entries of a quiz.
func (h *QuizHandler) VerifyGuess(c *gin.Context) {
	var req model.VerifyGuessRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.guessService.VerifyGuess(req)
	if err != nil {
		if errors.Is(err, service.ErrQuizNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrQuizNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Reveal godoc
// POST /api/v1/quiz/reveal
// Returns the answer at an explicit rank. Used when a turn timer runs out.
func (h *QuizHandler) Reveal(c *gin.Context) {
	var req model.RevealRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.guessService.RevealAnswer(req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrQuizNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrQuizNotFound)
		case errors.Is(err, service.ErrRankNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrRankNotFound)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Hint godoc
// GET /api/v1/quiz/hint?rank=N[&quiz_index=M]
// Returns the authored hint for a rank.
func (h *QuizHandler) Hint(c *gin.Context) {
	rank, err := strconv.Atoi(c.Query("rank"))
	if err != nil || rank < 1 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	var quizIndex *int
	if raw := c.Query("quiz_index"); raw != "" {
		idx, err := strconv.Atoi(raw)
		if err != nil || idx < 0 {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
			return
		}
		quizIndex = &idx
	}

	hint, err := h.guessService.HintForRank(rank, quizIndex)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrQuizNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrQuizNotFound)
		case errors.Is(err, service.ErrRankNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrRankNotFound)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"hint": hint})
}
