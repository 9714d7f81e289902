package enums

import "fmt"

// ModerationStatus records how a creative was screened.
type ModerationStatus string

const (
	ModerationStatusPending        ModerationStatus = "pending"
	ModerationStatusAIApproved     ModerationStatus = "ai_approved"
	ModerationStatusAIFlagged      ModerationStatus = "ai_flagged"
	ModerationStatusManualApproved ModerationStatus = "manual_approved"
	ModerationStatusManualRejected ModerationStatus = "manual_rejected"
)

var validModerationStatuses = []ModerationStatus{
	ModerationStatusPending,
	ModerationStatusAIApproved,
	ModerationStatusAIFlagged,
	ModerationStatusManualApproved,
	ModerationStatusManualRejected,
}

// String implements fmt.Stringer.
func (s ModerationStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ModerationStatus.
func (s ModerationStatus) IsValid() bool {
	for _, candidate := range validModerationStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseModerationStatus converts raw input into a ModerationStatus.
func ParseModerationStatus(value string) (ModerationStatus, error) {
	for _, candidate := range validModerationStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid moderation status %q", value)
}
