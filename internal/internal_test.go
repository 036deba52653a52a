package internal

import (
	"errors"
	"strings"
	"testing"
)

func TestWrapPanic(t *testing.T) {
	if WrapPanic(nil) != nil {
		t.Fatal("nil panic value must stay nil")
	}

	sentinel := errors.New("boom")
	wrapped, ok := WrapPanic(sentinel).(error)
	if !ok {
		t.Fatal("error panic values must stay errors")
	}
	if !errors.Is(wrapped, sentinel) {
		t.Error("wrapped error lost its cause")
	}

	s, ok := WrapPanic("plain").(string)
	if !ok || !strings.HasPrefix(s, "plain\n") || !strings.Contains(s, "rethrown at") {
		t.Errorf("unexpected wrapped value %q", s)
	}
}

func TestDefaultWorkers(t *testing.T) {
	if DefaultWorkers() < 1 {
		t.Fatal("at least one worker expected")
	}
}
