package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestError_Format(t *testing.T) {
	err := New(PhaseCopy, KindUnsupportedAssign).
		Mixin("velocity").
		Detail("no copy-assign registered").
		Build()

	s := err.Error()
	if !strings.Contains(s, "[copy]") {
		t.Errorf("missing phase in %q", s)
	}
	if !strings.Contains(s, "unsupported_assign") {
		t.Errorf("missing kind in %q", s)
	}
	if !strings.Contains(s, "velocity") {
		t.Errorf("missing mixin name in %q", s)
	}
	if !strings.Contains(s, "no copy-assign registered") {
		t.Errorf("missing detail in %q", s)
	}
}

func TestError_Is(t *testing.T) {
	err := UnsupportedAssign(PhaseCopy, "velocity")

	if !stderrors.Is(err, New(PhaseCopy, KindUnsupportedAssign).Build()) {
		t.Error("expected Is match on same phase+kind")
	}
	if stderrors.Is(err, New(PhaseMove, KindUnsupportedAssign).Build()) {
		t.Error("unexpected Is match on different phase")
	}
	if stderrors.Is(err, New(PhaseCopy, KindAllocation).Build()) {
		t.Error("unexpected Is match on different kind")
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := stderrors.New("boom")
	err := AllocationFailed(PhaseAlloc, "position", cause)

	if !stderrors.Is(err, cause) {
		t.Error("expected cause to be reachable via Unwrap")
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("cause not rendered in %q", err.Error())
	}
}

func TestConvenience(t *testing.T) {
	if e := OutOfRange(PhaseCompose, "mixin", 900, 512); !strings.Contains(e.Error(), "900") {
		t.Errorf("OutOfRange lost the id: %q", e.Error())
	}
	if e := NotFound(PhaseRegistry, "mixin", "ghost"); !strings.Contains(e.Error(), `"ghost"`) {
		t.Errorf("NotFound lost the name: %q", e.Error())
	}
	if e := UnsupportedMove("anchor"); e.Kind != KindUnsupportedMove {
		t.Errorf("UnsupportedMove kind = %q", e.Kind)
	}
	e := New(PhaseScene, KindInvalidInput).Detail("object %d: %s", 3, "unknown mixin").Build()
	if !strings.Contains(e.Error(), "object 3: unknown mixin") {
		t.Errorf("Detail did not format args: %q", e.Error())
	}
}
