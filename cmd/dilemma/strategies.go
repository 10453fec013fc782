package main

import (
	"fmt"
	"io"
	"os"

	"github.com/lox/dilemma/internal/strategy"
)

// StrategiesCmd lists the registered strategies
type StrategiesCmd struct{}

func (c *StrategiesCmd) Run() error {
	return listStrategies(os.Stdout)
}

func listStrategies(w io.Writer) error {
	names := strategy.Names()
	width := 0
	for _, name := range names {
		width = max(width, len(name))
	}
	for _, name := range names {
		if _, err := fmt.Fprintf(w, "%-*s  %s\n", width, name, strategy.Describe(name)); err != nil {
			return err
		}
	}
	return nil
}
