package models

// LogEntry is the wire format for structured log lines. The shape is kept
// flat and stable so log shippers can index it without per-service mapping
// templates.
type LogEntry struct {
	// ServiceName identifies the component that produced the line,
	// e.g. "learning-service".
	ServiceName string `json:"service_name"`

	// TraceID ties together every log line produced while handling a
	// single HTTP request.
	TraceID string `json:"trace_id,omitempty"`

	// SessionID identifies the learner session the event belongs to,
	// when one is known.
	SessionID string `json:"session_id,omitempty"`

	// RequestInfo carries details of the HTTP request that triggered
	// this line.
	RequestInfo *RequestInfo `json:"request_info,omitempty"`

	// Error carries structured error details, filled on Error level and
	// above.
	Error *ErrorInfo `json:"error,omitempty"`

	// Payload holds any other business data worth recording.
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// RequestInfo stores context about an HTTP request.
type RequestInfo struct {
	Method     string `json:"method"`
	Path       string `json:"path"`
	RemoteAddr string `json:"remote_addr"`
	UserAgent  string `json:"user_agent"`
}

// ErrorInfo stores structured information about an error.
type ErrorInfo struct {
	Message    string `json:"message"`
	Type       string `json:"type,omitempty"`
	StatusCode int    `json:"status_code,omitempty"`
}
