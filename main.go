package main

import (
	"github.com/lowvisionlabs/axmux/cmd"

	_ "github.com/lowvisionlabs/axmux/internal/backend/native"
)

func main() {
	cmd.Execute()
}
