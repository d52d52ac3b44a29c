package scanControllers

import "strings"

// CameraConstraint tells the scanner which camera to request next.
type CameraConstraint string

const (
	CameraRear  CameraConstraint = "environment" // back camera, the scanning default
	CameraFront CameraConstraint = "user"
	CameraAny   CameraConstraint = "any" // no constraints, platform picks
)

// FallbackAction is the scanner's next move after a camera error.
type FallbackAction struct {
	Constraint  CameraConstraint `json:"constraint,omitempty"`
	KeepCurrent bool             `json:"keepCurrent"` // leave constraints as they are
	Retry       bool             `json:"retry"`       // show a retry affordance
}

// NextCameraAction maps a camera error kind to the fallback to apply:
// a camera that cannot satisfy the constraints or does not exist is
// swapped for the front one; transient read/abort and insecure-context
// errors drop constraints entirely; a permission denial keeps the
// constraints and asks the user to retry; anything unrecognized drops
// constraints.
func NextCameraAction(kind string) FallbackAction {
	switch kind {
	case "OverconstrainedError", "NotFoundError":
		return FallbackAction{Constraint: CameraFront}
	case "NotReadableError", "AbortError", "SecurityError":
		return FallbackAction{Constraint: CameraAny}
	case "NotAllowedError":
		return FallbackAction{KeepCurrent: true, Retry: true}
	default:
		return FallbackAction{Constraint: CameraAny}
	}
}

// RecordCameraError applies the once-per-kind rule over the session's
// space-separated list of already-seen error kinds: a repeat yields a
// keep-current acknowledgement and leaves the list alone, a new kind is
// appended and mapped through NextCameraAction.
func RecordCameraError(seen, kind string) (string, FallbackAction) {
	kinds := strings.Fields(seen)
	for _, k := range kinds {
		if k == kind {
			return seen, FallbackAction{KeepCurrent: true}
		}
	}
	return strings.Join(append(kinds, kind), " "), NextCameraAction(kind)
}
