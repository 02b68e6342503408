package contextkeys

type contextKey string

const (
	SessionIDKey contextKey = "SessionID"
	LoggerKey    contextKey = "logger"
)
