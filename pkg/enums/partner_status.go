package enums

import "fmt"

// PartnerStatus is the lifecycle state of an advertiser account.
type PartnerStatus string

const (
	PartnerStatusActive    PartnerStatus = "active"
	PartnerStatusSuspended PartnerStatus = "suspended"
	PartnerStatusCancelled PartnerStatus = "cancelled"
)

var validPartnerStatuses = []PartnerStatus{
	PartnerStatusActive,
	PartnerStatusSuspended,
	PartnerStatusCancelled,
}

// String implements fmt.Stringer.
func (s PartnerStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known PartnerStatus.
func (s PartnerStatus) IsValid() bool {
	for _, candidate := range validPartnerStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParsePartnerStatus converts raw input into a PartnerStatus.
func ParsePartnerStatus(value string) (PartnerStatus, error) {
	for _, candidate := range validPartnerStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid partner status %q", value)
}
