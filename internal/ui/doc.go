// Package ui holds the lipgloss styles used for terminal output.
//
// A [Palette] renders titles, success and error lines, warnings, and help text. [Plain] is
// used when output is not a terminal and in tests.
package ui
