package loop

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRunExecutesTasksInOrder(t *testing.T) {
	l := New(8)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go l.Run(ctx)

	var got []int
	for i := 0; i < 5; i++ {
		i := i
		if !l.Post(func() { got = append(got, i) }) {
			t.Fatalf("Post %d rejected", i)
		}
	}
	if err := l.Call(func() {}); err != nil {
		t.Fatalf("Call: %v", err)
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("task order = %v", got)
		}
	}
	if len(got) != 5 {
		t.Fatalf("ran %d tasks, want 5", len(got))
	}
}

func TestPanicInTaskDoesNotStopLoop(t *testing.T) {
	l := New(1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go l.Run(ctx)

	l.Post(func() { panic("boom") })
	ran := false
	if err := l.Call(func() { ran = true }); err != nil {
		t.Fatalf("Call: %v", err)
	}
	if !ran {
		t.Fatal("task after panic did not run")
	}
}

func TestStoppedLoopRejectsWork(t *testing.T) {
	l := New(1)
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- l.Run(ctx) }()
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if l.Post(func() {}) {
		t.Fatal("Post accepted work after stop")
	}
	if err := l.Call(func() {}); !errors.Is(err, ErrStopped) {
		t.Fatalf("Call err = %v, want ErrStopped", err)
	}
}
