package websocket

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionPing Action = "ping"
)

// RequestEnvelope is used to peek at the action before full parsing.
type RequestEnvelope struct {
	Action Action `json:"action"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventClock Event = "clock"
	EventError Event = "error"
	EventPong  Event = "pong"
)

// ClockFrame is pushed once per second while a session is in progress.
// The final frame carries expired=true, after which the server closes.
type ClockFrame struct {
	Event                Event `json:"event"`
	TurnRemainingSecs    int   `json:"turn_remaining_secs"`
	OverallRemainingSecs int   `json:"overall_remaining_secs"`
	Expired              bool  `json:"expired"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
