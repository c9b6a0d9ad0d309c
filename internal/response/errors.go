package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"
	ErrTokenRevoked       ErrCode = "TOKEN_REVOKED"
	ErrUsernameTaken      ErrCode = "USERNAME_TAKEN"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Quiz content ──────────────────────────────────────────────────
	ErrQuizNotFound ErrCode = "QUIZ_NOT_FOUND"
	ErrRankNotFound ErrCode = "RANK_NOT_FOUND"

	// ─── Session / score state ─────────────────────────────────────────
	ErrNoSession        ErrCode = "NO_SESSION"
	ErrWrongQuizDate    ErrCode = "WRONG_QUIZ_DATE"
	ErrSessionCompleted ErrCode = "SESSION_COMPLETED"
	ErrInvalidProgress  ErrCode = "INVALID_PROGRESS"
	ErrAlreadySubmitted ErrCode = "ALREADY_SUBMITTED"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	case ErrInvalidCredentials:
		return "Username or password is incorrect."
	case ErrTokenRequired:
		return "An authentication token is required."
	case ErrTokenInvalid:
		return "The authentication token is invalid."
	case ErrTokenRevoked:
		return "This session has been logged out. Please log in again."
	case ErrUsernameTaken:
		return "That username is already taken."

	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidPayload:
		return "The request payload is invalid."

	case ErrQuizNotFound:
		return "No quiz exists at that index."
	case ErrRankNotFound:
		return "No answer exists at that rank."

	case ErrNoSession:
		return "No quiz session exists for this date."
	case ErrWrongQuizDate:
		return "Sessions can only be played on the current quiz date."
	case ErrSessionCompleted:
		return "This quiz session is already completed."
	case ErrInvalidProgress:
		return "The progress update is inconsistent with the session."
	case ErrAlreadySubmitted:
		return "A score has already been submitted for this date."

	case ErrNotFound:
		return "Resource not found."

	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
