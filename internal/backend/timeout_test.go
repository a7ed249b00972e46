package backend

import (
	"errors"
	"testing"
	"time"

	"github.com/lowvisionlabs/axmux/internal/model"
)

func TestQueryWithTimeout_Success(t *testing.T) {
	want := &model.Node{Role: model.RoleButton}
	got := QueryWithTimeout(time.Second, nil, "focus", func() (*model.Node, error) {
		return want, nil
	})
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestQueryWithTimeout_ErrorSwallowed(t *testing.T) {
	got := QueryWithTimeout(time.Second, nil, "focus", func() (*model.Node, error) {
		return nil, errors.New("E_FAIL")
	})
	if got != nil {
		t.Fatalf("expected nil on native failure, got %+v", got)
	}
}

func TestQueryWithTimeout_Deadline(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	start := time.Now()
	got := QueryWithTimeout(20*time.Millisecond, nil, "point", func() (*model.Node, error) {
		<-release
		return &model.Node{}, nil
	})
	if got != nil {
		t.Fatalf("expected nil on timeout, got %+v", got)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("timeout took %v, guard did not bound the call", elapsed)
	}
}
