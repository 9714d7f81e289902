package enums

import "fmt"

// LocationCount buckets how many gym locations an applicant operates.
type LocationCount string

const (
	LocationCountSingle     LocationCount = "single"
	LocationCountMultiSmall LocationCount = "multi-small"
	LocationCountMultiLarge LocationCount = "multi-large"
)

var validLocationCounts = []LocationCount{
	LocationCountSingle,
	LocationCountMultiSmall,
	LocationCountMultiLarge,
}

// String implements fmt.Stringer.
func (l LocationCount) String() string {
	return string(l)
}

// IsValid reports whether the value is a known LocationCount.
func (l LocationCount) IsValid() bool {
	for _, candidate := range validLocationCounts {
		if candidate == l {
			return true
		}
	}
	return false
}

// RoutingTarget returns the reviewer role an application with this bucket is
// assigned to. Fixed at submission time.
func (l LocationCount) RoutingTarget() RoutingTarget {
	if l == LocationCountSingle {
		return RoutingTargetAreaManager
	}
	return RoutingTargetVPSales
}

// ParseLocationCount converts raw input into a LocationCount.
func ParseLocationCount(value string) (LocationCount, error) {
	for _, candidate := range validLocationCounts {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid location count %q", value)
}
