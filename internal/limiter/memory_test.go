package limiter

import (
	"context"
	"testing"
	"time"
)

func TestMemory_AllowsFreshKey(t *testing.T) {
	l := NewMemory(time.Minute, 3, time.Minute)

	ok, dur, err := l.Allow(context.Background(), "coach", []byte("h"))
	if err != nil || !ok || dur != 0 {
		t.Fatalf("fresh Allow: ok=%v dur=%v err=%v", ok, dur, err)
	}
}

func TestMemory_BlocksAtThreshold(t *testing.T) {
	l := NewMemory(time.Minute, 3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		blocked, _, err := l.Failure(ctx, "coach", []byte("h"))
		if err != nil || blocked {
			t.Fatalf("failure %d: blocked=%v err=%v", i, blocked, err)
		}
	}
	blocked, dur, err := l.Failure(ctx, "coach", []byte("h"))
	if err != nil || !blocked || dur != time.Minute {
		t.Fatalf("threshold failure: blocked=%v dur=%v err=%v", blocked, dur, err)
	}

	ok, retry, err := l.Allow(ctx, "coach", []byte("h"))
	if err != nil || ok || retry <= 0 {
		t.Fatalf("Allow while blocked: ok=%v retry=%v err=%v", ok, retry, err)
	}
}

func TestMemory_SuccessResets(t *testing.T) {
	l := NewMemory(time.Minute, 2, time.Minute)
	ctx := context.Background()

	if _, _, err := l.Failure(ctx, "coach", []byte("h")); err != nil {
		t.Fatal(err)
	}
	if err := l.Success(ctx, "coach", []byte("h")); err != nil {
		t.Fatal(err)
	}
	// Counter restarted: one failure is below the threshold again.
	blocked, _, err := l.Failure(ctx, "coach", []byte("h"))
	if err != nil || blocked {
		t.Fatalf("after reset: blocked=%v err=%v", blocked, err)
	}
}

func TestMemory_WindowExpiryRestartsCount(t *testing.T) {
	l := NewMemory(10*time.Millisecond, 2, time.Minute)
	ctx := context.Background()

	if _, _, err := l.Failure(ctx, "coach", []byte("h")); err != nil {
		t.Fatal(err)
	}
	time.Sleep(20 * time.Millisecond)
	blocked, _, err := l.Failure(ctx, "coach", []byte("h"))
	if err != nil || blocked {
		t.Fatalf("stale window: blocked=%v err=%v", blocked, err)
	}
}
