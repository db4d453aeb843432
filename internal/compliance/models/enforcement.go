package models

import "time"

// ProcessingAttempt is an operation external code wants to perform on a
// subject's data. It is evaluated and discarded.
type ProcessingAttempt struct {
	Operation      string    `json:"operation"`
	DataCategories []string  `json:"dataCategories,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// EnforcementDecision is the verdict on a ProcessingAttempt.
type EnforcementDecision struct {
	Blocked           bool     `json:"blocked"`
	Reason            string   `json:"reason,omitempty"`
	BlockedOperations []string `json:"blockedOperations,omitempty"`
	AllowedOperations []string `json:"allowedOperations,omitempty"`
	OverrideAvailable bool     `json:"overrideAvailable"`
}

const (
	ReasonRestricted = "Processing restricted"
	ReasonObjected   = "Processing objected"
)
