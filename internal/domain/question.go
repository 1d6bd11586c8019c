package domain

import "time"

// Question is one entry of the question history. Only the question and how
// it ended are kept, never the answer.
type Question struct {
	ID        string
	RequestID string
	Text      string
	Source    string
	Outcome   string // "answer" or a failure code
	AskedAt   time.Time
}
