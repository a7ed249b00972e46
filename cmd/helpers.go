package cmd

import (
	"time"

	"github.com/lowvisionlabs/axmux/internal/model"
	"github.com/lowvisionlabs/axmux/internal/mux"
	"github.com/lowvisionlabs/axmux/internal/output"
)

// newEngine builds a dispatcher over the native provider set from the
// loaded configuration. The caller owns teardown.
func newEngine() (*mux.Dispatcher, error) {
	return mux.NewFromConfig(cfg, log)
}

// nodeResult wraps a query result for printing. A nil node is printed
// as-is: "nothing found" is a result, not an error.
func nodeResult(node *model.Node) output.NodeResult {
	res := output.NodeResult{TS: time.Now().Unix(), Node: node}
	if node != nil {
		res.Backend = node.Source
	}
	return res
}
