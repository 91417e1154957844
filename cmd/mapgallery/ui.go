package main

import "github.com/charmbracelet/lipgloss"

// Output styles for command line messages
var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
)

func successText(s string) string { return successStyle.Render(s) }
func errorText(s string) string   { return errorStyle.Render(s) }
func warnText(s string) string    { return warnStyle.Render(s) }
func headerText(s string) string  { return headerStyle.Render(s) }
