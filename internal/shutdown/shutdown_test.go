package shutdown

import (
	"context"
	"os"
	"syscall"
	"testing"
	"time"
)

func TestContext_CancelsOnSIGINT(t *testing.T) {
	ctx, stop := Context(context.Background(), time.Second)
	defer stop()

	proc, err := os.FindProcess(os.Getpid())
	if err != nil {
		t.Fatal(err)
	}
	if err := proc.Signal(syscall.SIGINT); err != nil {
		t.Fatal(err)
	}

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("expected context to be cancelled after SIGINT")
	}
}

func TestContext_NotCancelledWithoutSignal(t *testing.T) {
	ctx, stop := Context(context.Background(), time.Second)
	defer stop()

	select {
	case <-ctx.Done():
		t.Fatal("context cancelled without a signal")
	case <-time.After(50 * time.Millisecond):
	}
}
