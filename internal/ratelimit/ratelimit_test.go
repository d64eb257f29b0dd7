package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestNew_Unlimited(t *testing.T) {
	l := New(0)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	for i := 0; i < 100; i++ {
		if err := l.Wait(ctx); err != nil {
			t.Fatalf("call %d rejected by unlimited limiter: %v", i, err)
		}
	}
}

func TestNewInterval_SpacesEvents(t *testing.T) {
	l := NewInterval(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := l.Wait(ctx); err != nil {
		t.Fatalf("first event should pass: %v", err)
	}
	if err := l.Wait(ctx); err == nil {
		t.Error("Wait should fail when the deadline is shorter than the interval")
	}
}

func TestWait_Cancelled(t *testing.T) {
	l := New(60)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := l.Wait(ctx); err == nil {
		t.Error("Wait should fail on a cancelled context")
	}
}
