package enums

import "fmt"

// RoutingTarget is the internal reviewer role an application is directed to.
type RoutingTarget string

const (
	RoutingTargetAreaManager RoutingTarget = "area_manager"
	RoutingTargetVPSales     RoutingTarget = "vp_sales"
)

var validRoutingTargets = []RoutingTarget{
	RoutingTargetAreaManager,
	RoutingTargetVPSales,
}

// String implements fmt.Stringer.
func (r RoutingTarget) String() string {
	return string(r)
}

// IsValid reports whether the value is a known RoutingTarget.
func (r RoutingTarget) IsValid() bool {
	for _, candidate := range validRoutingTargets {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRoutingTarget converts raw input into a RoutingTarget.
func ParseRoutingTarget(value string) (RoutingTarget, error) {
	for _, candidate := range validRoutingTargets {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid routing target %q", value)
}
