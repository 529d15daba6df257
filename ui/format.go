package ui

import (
	"fmt"
)

const (
	SuccessSymbol = "✓"
	ErrorSymbol   = "✗"
)

type ResultFormat struct {
	Name    string
	Detail  string
	IsError bool
}

func FormatResult(f ResultFormat) string {
	symbol := SuccessSymbol
	if f.IsError {
		symbol = ErrorSymbol
	}

	if f.Detail != "" {
		return fmt.Sprintf("%s %s: %s\n", symbol, f.Name, f.Detail)
	}
	return fmt.Sprintf("%s %s\n", symbol, f.Name)
}
