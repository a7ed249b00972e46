package backend

import (
	"time"

	"go.uber.org/zap"

	"github.com/lowvisionlabs/axmux/internal/model"
)

// DefaultQueryTimeout bounds a single native query when Options does not
// override it.
const DefaultQueryTimeout = 500 * time.Millisecond

// QueryWithTimeout runs one native query with a deadline. A query against
// a hung foreign process fails after the timeout instead of stalling the
// dispatcher; the abandoned call's eventual result is dropped.
func QueryWithTimeout(timeout time.Duration, log *zap.Logger, op string, query func() (*model.Node, error)) *model.Node {
	if timeout <= 0 {
		timeout = DefaultQueryTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}

	type result struct {
		node *model.Node
		err  error
	}
	// Buffered so the abandoned goroutine can still complete and exit
	// after a timeout.
	ch := make(chan result, 1)
	go func() {
		node, err := query()
		ch <- result{node, err}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		if res.err != nil {
			log.Debug("native query failed", zap.String("op", op), zap.Error(res.err))
			return nil
		}
		return res.node
	case <-timer.C:
		log.Debug("native query timed out", zap.String("op", op), zap.Duration("timeout", timeout))
		return nil
	}
}
