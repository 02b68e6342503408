package websocket

import "time"

const (
	TypeReportSnapshot = "report.snapshot"
	TypeReportError    = "report.error"
)

// Envelope is the frame sent to the browser; Type tells the page what to do
// with Payload.
type Envelope struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// ReportPayload replaces the live part of the report page.
type ReportPayload struct {
	Source   string `json:"source"`
	ReadOnly bool   `json:"read_only"`
	Fallback bool   `json:"fallback"`
	HTML     string `json:"html,omitempty"`
}

// ReportErrorPayload keeps the rows on screen and only swaps the label.
type ReportErrorPayload struct {
	Source  string `json:"source"`
	Message string `json:"message"`
}
