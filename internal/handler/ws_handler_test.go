package handler

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/jackc/pgx/v5"
	"github.com/rankten/rankten-backend/internal/middleware"
	"github.com/rankten/rankten-backend/internal/model"
	"github.com/rankten/rankten-backend/internal/service"
	"github.com/rs/zerolog"
)

// clockStore serves one open session for user 1, started at construction.
type clockStore struct {
	session model.QuizSession
}

func newClockStore() *clockStore {
	now := time.Now()
	return &clockStore{session: model.QuizSession{
		ID:            1,
		UserID:        1,
		QuizDate:      todayUTC(now),
		StartedAt:     now,
		TurnStartedAt: now,
		CorrectRanks:  []int32{},
		RevealedRanks: []int32{},
		Status:        model.SessionStatusInProgress,
	}}
}

func (s *clockStore) GetByUserAndDate(_ context.Context, userID int, _ time.Time) (*model.QuizSession, error) {
	if userID != s.session.UserID {
		return nil, pgx.ErrNoRows
	}
	cp := s.session
	return &cp, nil
}

func (s *clockStore) Create(_ context.Context, _ *model.QuizSession) error { return nil }

func (s *clockStore) SaveProgress(_ context.Context, _ int, _ time.Time, _, _ int,
	_, _ []int32, _ bool, _ time.Time) (bool, error) {
	return true, nil
}

func (s *clockStore) Complete(_ context.Context, _ int, _ time.Time, _ time.Time) (bool, error) {
	return true, nil
}

type clockCatalog struct{}

func (clockCatalog) QuizByIndex(int) (*model.QuizDefinition, error) {
	return &model.QuizDefinition{
		Answers: []model.Answer{{Rank: 1, Name: "player", Stat: "0"}},
		Hints:   []string{"hint"},
	}, nil
}

func (clockCatalog) TodayIndex(time.Time) int { return 0 }

func injectClaims(userID int) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextKeyClaims, &service.Claims{UserID: userID})
		c.Next()
	}
}

// Pings arriving mid-stream must interleave cleanly with clock frames:
// both are answered, in order, on a single writer.
func TestSessionClockStreamPingsDuringFrames(t *testing.T) {
	gin.SetMode(gin.TestMode)

	sessionService := service.NewSessionService(newClockStore(), clockCatalog{}, zerolog.Nop())
	h := NewWSHandler(sessionService, zerolog.Nop(), nil)

	r := gin.New()
	r.GET("/ws/v1/session/clock", injectClaims(1), h.SessionClockStream)

	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/v1/session/clock"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// Hammer pings from a second goroutine while the server pushes frames.
	stop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(10 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				if err := conn.WriteJSON(map[string]string{"action": "ping"}); err != nil {
					return
				}
			}
		}
	}()
	defer close(stop)

	var sawClock, sawPong bool
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) && !(sawClock && sawPong) {
		conn.SetReadDeadline(deadline)
		var frame struct {
			Event                string `json:"event"`
			OverallRemainingSecs int    `json:"overall_remaining_secs"`
		}
		if err := conn.ReadJSON(&frame); err != nil {
			t.Fatalf("read frame: %v", err)
		}
		switch frame.Event {
		case "clock":
			sawClock = true
			if frame.OverallRemainingSecs <= 0 {
				t.Errorf("fresh session reports %d remaining seconds", frame.OverallRemainingSecs)
			}
		case "pong":
			sawPong = true
		case "error":
			t.Fatal("stream reported an error frame")
		}
	}

	if !sawClock {
		t.Error("no clock frame received")
	}
	if !sawPong {
		t.Error("no pong received")
	}
}

// A connection without a session gets a typed error frame, not a stream.
func TestSessionClockStreamNoSession(t *testing.T) {
	gin.SetMode(gin.TestMode)

	sessionService := service.NewSessionService(newClockStore(), clockCatalog{}, zerolog.Nop())
	h := NewWSHandler(sessionService, zerolog.Nop(), nil)

	r := gin.New()
	r.GET("/ws/v1/session/clock", injectClaims(99), h.SessionClockStream)

	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/v1/session/clock"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var frame struct {
		Event string `json:"event"`
		Error string `json:"error"`
	}
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatalf("read frame: %v", err)
	}
	if frame.Event != "error" {
		t.Fatalf("event = %q, want error", frame.Event)
	}
}
