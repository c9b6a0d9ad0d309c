package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rankten/rankten-backend/internal/middleware"
	"github.com/rankten/rankten-backend/internal/service"
	ws "github.com/rankten/rankten-backend/internal/websocket"
	"github.com/rs/zerolog"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams the authoritative session clock to connected clients.
type WSHandler struct {
	sessionService *service.SessionService
	log            zerolog.Logger
	upgrader       websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(sessionService *service.SessionService, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		sessionService: sessionService,
		log:            log.With().Str("component", "ws_handler").Logger(),
		upgrader:       buildUpgrader(allowedOrigins),
	}
}

// SessionClockStream godoc
// WS /ws/v1/session/clock?token=...
// Upgrades to WebSocket and pushes one ClockFrame per second for the
// caller's session on today's quiz. The final frame carries expired=true,
// then the server closes the connection. The client renders these frames
// directly; it never runs its own countdown.
func (h *WSHandler) SessionClockStream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	userID := claims.UserID
	quizDate := todayUTC(time.Now())

	wsLog := h.log.With().
		Int("user_id", userID).
		Str("quiz_date", quizDate.Format(quizDateLayout)).
		Logger()

	// The stream only makes sense against an existing session.
	if _, err := h.sessionService.Clock(c.Request.Context(), userID, quizDate); err != nil {
		if errors.Is(err, service.ErrNoSession) {
			ws.WriteError(conn, "no session for today")
		} else {
			wsLog.Error().Err(err).Msg("Clock lookup failed")
			ws.WriteError(conn, "clock unavailable")
		}
		return
	}

	wsLog.Info().Msg("Clock stream connected")

	// Reader goroutine: surfaces pings and the client closing. It never
	// writes; the connection supports only one concurrent writer, so every
	// write stays on the handler goroutine below.
	done := make(chan struct{})
	pings := make(chan struct{}, 1)
	go func() {
		defer close(done)
		for {
			var msg ws.RequestEnvelope
			if err := ws.ReadJSON(conn, &msg); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					wsLog.Warn().Err(err).Msg("Unexpected close")
				} else {
					wsLog.Debug().Msg("Connection closed")
				}
				return
			}
			if msg.Action == ws.ActionPing {
				select {
				case pings <- struct{}{}:
				default: // A pong is already pending.
				}
			}
		}
	}()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-pings:
			if err := ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong}); err != nil {
				wsLog.Debug().Err(err).Msg("Write failed, closing stream")
				return
			}
		case <-ticker.C:
			state, err := h.sessionService.Clock(c.Request.Context(), userID, quizDate)
			if err != nil {
				wsLog.Error().Err(err).Msg("Clock lookup failed")
				ws.WriteError(conn, "clock unavailable")
				return
			}

			frame := ws.ClockFrame{
				Event:                ws.EventClock,
				TurnRemainingSecs:    state.RemainingTurnSeconds,
				OverallRemainingSecs: state.RemainingSeconds,
				Expired:              state.Completed,
			}
			if err := ws.WriteTyped(conn, frame); err != nil {
				wsLog.Debug().Err(err).Msg("Write failed, closing stream")
				return
			}
			if frame.Expired {
				wsLog.Info().Msg("Session clock expired, closing stream")
				return
			}
		}
	}
}
