package domain

import "fmt"

// Phase is the binder lifecycle. There is no way back from PhaseBound.
type Phase string

const (
	PhaseUnbound Phase = "unbound"
	PhaseBound   Phase = "bound"
)

// Policy selects what initialization does when a trigger is missing.
type Policy string

const (
	// PolicyBestEffort reports the missing trigger and keeps binding the rest.
	PolicyBestEffort Policy = "best-effort"
	// PolicyFailFast stops at the first missing trigger.
	// Listeners registered before the failure stay registered.
	PolicyFailFast Policy = "fail-fast"
)

// ParsePolicy converts a flag or config value into a Policy.
// The empty string selects PolicyBestEffort.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case "", PolicyBestEffort:
		return PolicyBestEffort, nil
	case PolicyFailFast:
		return PolicyFailFast, nil
	default:
		return "", fmt.Errorf("unknown policy %q (expected %s or %s)", s, PolicyBestEffort, PolicyFailFast)
	}
}
