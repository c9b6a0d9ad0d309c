package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rankten/rankten-backend/internal/response"
)

// quizDateLayout is the wire format for quiz dates.
const quizDateLayout = "2006-01-02"

// parsePlayableDate parses a quiz_date string and enforces that it is the
// server's current UTC date. Sessions and submissions against any other
// date are rejected; yesterday's quiz cannot be replayed after midnight.
func parsePlayableDate(dateStr string, now time.Time) (time.Time, bool) {
	d, err := time.ParseInLocation(quizDateLayout, dateStr, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return d, d.Equal(todayUTC(now))
}

// todayUTC truncates a time to its UTC calendar date.
func todayUTC(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// failWrongDate is the shared rejection for off-date play.
func failWrongDate(c *gin.Context) {
	response.Fail(c, http.StatusConflict, response.ErrWrongQuizDate)
}
