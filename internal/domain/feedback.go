package domain

import "time"

// QA is one question/answer exchange from an interview transcript.
type QA struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Feedback is one immutable record of a completed mock interview: the
// category it was run for, an opaque feedback document produced by the
// client, and the ordered transcript.
type Feedback struct {
	ID         int64
	UserID     *int64
	Category   string
	Payload    map[string]any
	Transcript []QA
	CreatedAt  time.Time
}
