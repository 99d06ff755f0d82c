// Package reviewer assists manual review of REVIEW-confidence groups.
// Name-based keys (IMPS) and uncorroborated account numbers are weak
// evidence; strategies here suggest whether the observed other-party
// labels plausibly denote one real-world party, but never auto-confirm.
package reviewer

import (
	"context"

	"finwatch/upi-audit/internal/models"
)

// Suggestion is a strategy's non-binding verdict on one group.
type Suggestion struct {
	RawKey    string `json:"raw_key"`
	SameParty bool   `json:"same_party"`
	Rationale string `json:"rationale"`
	Strategy  string `json:"strategy"`
}

// Strategy evaluates one counterparty group. The bool result reports
// whether the strategy could form an opinion at all; strategies that
// cannot (wrong key type, missing backend) return false without error.
type Strategy interface {
	Review(ctx context.Context, group models.CounterpartyGroup) (Suggestion, bool, error)

	// Name identifies the strategy in logs and suggestions.
	Name() string
}
