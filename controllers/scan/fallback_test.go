package scanControllers

import "testing"

func TestNextCameraAction(t *testing.T) {
	tests := []struct {
		name string
		kind string
		want FallbackAction
	}{
		{name: "overconstrained", kind: "OverconstrainedError", want: FallbackAction{Constraint: CameraFront}},
		{name: "notFound", kind: "NotFoundError", want: FallbackAction{Constraint: CameraFront}},
		{name: "notReadable", kind: "NotReadableError", want: FallbackAction{Constraint: CameraAny}},
		{name: "abort", kind: "AbortError", want: FallbackAction{Constraint: CameraAny}},
		{name: "insecureContext", kind: "SecurityError", want: FallbackAction{Constraint: CameraAny}},
		{name: "permissionDenied", kind: "NotAllowedError", want: FallbackAction{KeepCurrent: true, Retry: true}},
		{name: "unknownKind", kind: "SomethingNew", want: FallbackAction{Constraint: CameraAny}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextCameraAction(tt.kind); got != tt.want {
				t.Errorf("NextCameraAction(%q) = %+v, want %+v", tt.kind, got, tt.want)
			}
		})
	}
}

func TestRecordCameraError(t *testing.T) {
	seen, action := RecordCameraError("", "NotReadableError")
	if seen != "NotReadableError" {
		t.Fatalf("seen = %q, want the kind recorded", seen)
	}
	if action != (FallbackAction{Constraint: CameraAny}) {
		t.Fatalf("action = %+v, want constraints dropped", action)
	}

	// The same kind acts only once until a retry clears the list.
	seen2, action := RecordCameraError(seen, "NotReadableError")
	if seen2 != seen {
		t.Errorf("seen = %q, repeat must not grow the list", seen2)
	}
	if action != (FallbackAction{KeepCurrent: true}) {
		t.Errorf("repeat action = %+v, want keep-current only", action)
	}

	// A different kind still gets its own fallback.
	seen3, action := RecordCameraError(seen, "NotAllowedError")
	if seen3 != "NotReadableError NotAllowedError" {
		t.Errorf("seen = %q, want both kinds recorded", seen3)
	}
	if action != (FallbackAction{KeepCurrent: true, Retry: true}) {
		t.Errorf("action = %+v, want retry affordance", action)
	}

	// After a retry reset the first kind fires again.
	if _, action := RecordCameraError("", "NotReadableError"); action.KeepCurrent {
		t.Errorf("action after reset = %+v, want a fresh fallback", action)
	}
}

func TestExtractRoute(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    string
	}{
		{name: "fullURL", payload: "https://ibox.kg/holod1/1", want: "holod1/1"},
		{name: "deepPath", payload: "https://ibox.kg/shop42/7/s", want: "shop42/7/s"},
		{name: "queryKept", payload: "https://ibox.kg/shop42/7?promo=X", want: "shop42/7?promo=X"},
		{name: "hostOnly", payload: "https://ibox.kg", want: ""},
		{name: "bareSlashPath", payload: "/holod1/1", want: "holod1/1"},
		{name: "barePath", payload: "holod1/1", want: "holod1/1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractRoute(tt.payload); got != tt.want {
				t.Errorf("ExtractRoute(%q) = %q, want %q", tt.payload, got, tt.want)
			}
		})
	}
}
