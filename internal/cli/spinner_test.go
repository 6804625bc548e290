package cli

import (
	"context"
	"testing"
)

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinner("working")
	s.Start()
	s.Stop()
	s.Stop()
	if s.Cancelled() {
		t.Error("Cancelled() = true without a canceled parent")
	}
}

func TestSpinnerStopBeforeStart(t *testing.T) {
	done := make(chan struct{})
	go func() {
		newSpinner("never started").Stop()
		close(done)
	}()
	<-done
}

func TestSpinnerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newSpinnerWithContext(ctx, "working")
	s.Start()
	cancel()
	s.Stop()
	if !s.Cancelled() {
		t.Error("Cancelled() = false after the parent was canceled")
	}
}

func TestSpinnerNilContext(t *testing.T) {
	s := newSpinnerWithContext(nil, "working")
	s.Start()
	s.StopWithError("failed")
}
