package main

import (
	"fmt"
	"os"
	"strings"
)

// uiMode is the value of --ui and of [check].ui; the same auto|on|off set
// also validates [output].color.
type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	m := uiMode(strings.ToLower(strings.TrimSpace(value)))
	switch m {
	case "":
		return uiModeAuto, nil
	case uiModeAuto, uiModeOn, uiModeOff:
		return m, nil
	}
	return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
}

// shouldUseTUI resolves auto against stdout: the progress view needs a real
// terminal that can redraw in place.
func shouldUseTUI(mode uiMode) bool {
	if mode != uiModeAuto {
		return mode == uiModeOn
	}
	return isTerminal(os.Stdout) && os.Getenv("TERM") != "dumb"
}
