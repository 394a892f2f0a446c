package host

import (
	"context"
	"log/slog"
	"testing"
	"time"
)

func TestCollectReturnsHostname(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	snap, err := Collect(ctx)
	if err != nil {
		t.Skipf("host info unavailable: %v", err)
	}
	if snap.Hostname == "" {
		t.Fatalf("expected non-empty hostname: %#v", snap)
	}
}

func TestSnapshotLogValue(t *testing.T) {
	s := Snapshot{Hostname: "h1", Load1: 0.5}
	v := s.LogValue()
	if v.Kind() != slog.KindGroup {
		t.Fatalf("expected group, got %v", v.Kind())
	}
	attrs := v.Group()
	if len(attrs) != 6 || attrs[0].Value.String() != "h1" {
		t.Fatalf("unexpected attrs: %v", attrs)
	}
}
