package kafka

import (
	"context"
	"errors"
	"testing"

	kafkago "github.com/segmentio/kafka-go"
)

func TestHookFuncsDispatch(t *testing.T) {
	var afterErr, onErr error
	h := HookFuncs{
		After: func(_ context.Context, _ string, _ kafkago.Message, _ []byte, err error) {
			afterErr = err
		},
		Err: func(_ context.Context, _ string, _ kafkago.Message, _ []byte, err error) {
			onErr = err
		},
	}

	want := errors.New("handle failed")
	h.AfterHandle(context.Background(), "observations", kafkago.Message{}, nil, want)
	h.OnError(context.Background(), "observations", kafkago.Message{}, nil, want)

	if !errors.Is(afterErr, want) {
		t.Errorf("After not invoked: %v", afterErr)
	}
	if !errors.Is(onErr, want) {
		t.Errorf("Err not invoked: %v", onErr)
	}
}

func TestHookFuncsNilFuncsAreNoops(t *testing.T) {
	h := HookFuncs{}
	ctx, _, data, err := h.BeforeHandle(context.Background(), "observations", kafkago.Message{}, []byte("x"))
	if err != nil {
		t.Fatalf("nil Before must pass through: %v", err)
	}
	if ctx == nil || string(data) != "x" {
		t.Fatal("nil Before must return inputs unchanged")
	}
	h.AfterHandle(context.Background(), "observations", kafkago.Message{}, nil, nil)
	h.OnError(context.Background(), "observations", kafkago.Message{}, nil, nil)
}

func TestHookChainRecoversPanics(t *testing.T) {
	panicky := HookFuncs{
		Err: func(context.Context, string, kafkago.Message, []byte, error) {
			panic("hook blew up")
		},
	}
	var called bool
	recording := HookFuncs{
		Err: func(context.Context, string, kafkago.Message, []byte, error) {
			called = true
		},
	}

	chain := NewHookChain(panicky, recording)
	chain.OnError(context.Background(), "observations", kafkago.Message{}, nil, errors.New("boom"))
	if !called {
		t.Fatal("panicking hook must not stop later hooks")
	}
}
