package ratelimit

import (
	"math"
	"time"
)

type BlockRecord struct {
	BlockedUntil   time.Time `json:"blocked_until"`
	ViolationCount uint      `json:"triggering_violation_count"`
}

// RetryAfter is the whole number of seconds left on the block, rounded up.
func (b BlockRecord) RetryAfter(now time.Time) uint {
	remaining := b.BlockedUntil.Sub(now)
	if remaining <= 0 {
		return 0
	}
	return uint(math.Ceil(remaining.Seconds()))
}

func (b BlockRecord) ActiveAt(now time.Time) bool {
	return b.BlockedUntil.After(now)
}

// Result is built fresh for every decision and never persisted.
type Result struct {
	Allowed           bool       `json:"allowed"`
	Category          Category   `json:"category"`
	CurrentCount      uint64     `json:"current_count"`
	Limit             uint       `json:"limit"`
	WindowResetAt     time.Time  `json:"window_reset_at"`
	RetryAfterSeconds uint       `json:"retry_after_seconds,omitempty"`
	BlockedUntil      *time.Time `json:"blocked_until,omitempty"`
	FailedOpen        bool       `json:"-"`
}

// Remaining is zero for every denial, including blocked subjects whose
// window counter was never read.
func (r *Result) Remaining() uint64 {
	if !r.Allowed || r.CurrentCount >= uint64(r.Limit) {
		return 0
	}
	return uint64(r.Limit) - r.CurrentCount
}

// SubjectStatus is a read-only snapshot used by operator tooling.
type SubjectStatus struct {
	Category       Category     `json:"category"`
	Subject        string       `json:"subject"`
	CurrentCount   uint64       `json:"current_count"`
	Limit          uint         `json:"limit"`
	WindowResetAt  time.Time    `json:"window_reset_at"`
	ViolationCount uint         `json:"violation_count"`
	Block          *BlockRecord `json:"block,omitempty"`
}
