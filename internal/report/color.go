// Copyright 2026 The Dashkit Authors
// SPDX-License-Identifier: MIT

package report

import "github.com/fatih/color"

// Status labels used by list and validate.
const (
	StatusOK       = "ok"
	StatusFail     = "FAIL"
	StatusDisabled = "disabled"
)

var (
	colorRed   = color.New(color.FgRed)
	colorGreen = color.New(color.FgGreen)
	colorFaint = color.New(color.Faint)
	colorBold  = color.New(color.Bold)
)

// ColorStatus colors a status label: ok green, FAIL red, disabled faint.
func ColorStatus(val string) string {
	switch val {
	case StatusOK:
		return colorGreen.Sprint(val)
	case StatusFail:
		return colorRed.Sprint(val)
	case StatusDisabled:
		return colorFaint.Sprint(val)
	default:
		return val
	}
}

// Title renders a bold heading.
func Title(s string) string {
	return colorBold.Sprint(s)
}
