package enums

import "fmt"

// AdStatus walks a creative from draft through review into rotation.
type AdStatus string

const (
	AdStatusDraft         AdStatus = "draft"
	AdStatusPendingReview AdStatus = "pending_review"
	AdStatusApproved      AdStatus = "approved"
	AdStatusActive        AdStatus = "active"
	AdStatusPaused        AdStatus = "paused"
	AdStatusRejected      AdStatus = "rejected"
)

var validAdStatuses = []AdStatus{
	AdStatusDraft,
	AdStatusPendingReview,
	AdStatusApproved,
	AdStatusActive,
	AdStatusPaused,
	AdStatusRejected,
}

// String returns the literal string for the status.
func (s AdStatus) String() string {
	return string(s)
}

// IsValid reports whether the status is known.
func (s AdStatus) IsValid() bool {
	for _, candidate := range validAdStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsEditable reports whether the owning partner may modify the creative.
func (s AdStatus) IsEditable() bool {
	return s == AdStatusDraft || s == AdStatusPaused
}

// ParseAdStatus converts raw input into an AdStatus.
func ParseAdStatus(value string) (AdStatus, error) {
	for _, candidate := range validAdStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid ad status %q", value)
}
