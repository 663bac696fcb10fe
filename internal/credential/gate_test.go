package credential

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/rs/zerolog"
)

type fakeHost struct {
	selected  bool
	checkErr  error
	openErr   error
	checks    int
	openCalls int
}

func (h *fakeHost) HasSelectedKey(ctx context.Context) (bool, error) {
	h.checks++
	return h.selected, h.checkErr
}

func (h *fakeHost) OpenSelectKey(ctx context.Context) error {
	h.openCalls++
	return h.openErr
}

func discardLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func TestCheckWithAbsentHost(t *testing.T) {
	gate := NewGate(nil, discardLogger())
	if gate.Check(context.Background()) {
		t.Fatal("absent host must answer false")
	}
	if gate.Selected() {
		t.Fatal("selection must stay false")
	}
}

func TestCheckCachesHostAnswer(t *testing.T) {
	host := &fakeHost{selected: true}
	gate := NewGate(host, discardLogger())

	if !gate.Check(context.Background()) {
		t.Fatal("expected selected")
	}
	if !gate.Selected() {
		t.Fatal("cached selection must be true")
	}
	if gate.Unverified() {
		t.Fatal("a host-confirmed selection is verified")
	}
}

func TestCheckFailureAnswersFalse(t *testing.T) {
	host := &fakeHost{selected: true, checkErr: errors.New("host gone")}
	gate := NewGate(host, discardLogger())

	if gate.Check(context.Background()) {
		t.Fatal("a failing host query must answer false")
	}
	if gate.Selected() {
		t.Fatal("cached selection must be reset")
	}
}

func TestRequestSelectionIsOptimistic(t *testing.T) {
	host := &fakeHost{}
	gate := NewGate(host, discardLogger())

	if err := gate.RequestSelection(context.Background()); err != nil {
		t.Fatalf("RequestSelection error: %v", err)
	}
	if host.openCalls != 1 {
		t.Fatalf("openCalls = %d, want 1", host.openCalls)
	}
	if !gate.Selected() {
		t.Fatal("selection must be assumed after the host flow returns")
	}
	if !gate.Unverified() {
		t.Fatal("the optimistic selection must carry the unverified tag")
	}
}

func TestConfirmClearsUnverifiedTag(t *testing.T) {
	gate := NewGate(&fakeHost{}, discardLogger())
	_ = gate.RequestSelection(context.Background())

	gate.Confirm()
	if !gate.Selected() || gate.Unverified() {
		t.Fatal("a successful privileged call must verify the selection")
	}
}

func TestInvalidateResetsSelection(t *testing.T) {
	gate := NewGate(&fakeHost{}, discardLogger())
	_ = gate.RequestSelection(context.Background())

	gate.Invalidate()
	if gate.Selected() || gate.Unverified() {
		t.Fatal("invalidation must clear the cached selection")
	}
}

func TestRequestSelectionPropagatesHostError(t *testing.T) {
	host := &fakeHost{openErr: errors.New("no ui")}
	gate := NewGate(host, discardLogger())

	if err := gate.RequestSelection(context.Background()); err == nil {
		t.Fatal("expected host error")
	}
	if gate.Selected() {
		t.Fatal("a failed selection flow must not mark the credential selected")
	}
}

func TestEnvHostReportsKeyPresence(t *testing.T) {
	host := NewEnvHost(func(context.Context) (string, error) { return " secret ", nil }, discardLogger())
	selected, err := host.HasSelectedKey(context.Background())
	if err != nil {
		t.Fatalf("HasSelectedKey error: %v", err)
	}
	if !selected {
		t.Fatal("a non-empty key counts as selected")
	}

	empty := NewEnvHost(func(context.Context) (string, error) { return "  ", nil }, discardLogger())
	selected, err = empty.HasSelectedKey(context.Background())
	if err != nil {
		t.Fatalf("HasSelectedKey error: %v", err)
	}
	if selected {
		t.Fatal("a blank key does not count as selected")
	}
}
