// Package ui formats chat output for the terminal.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/glow-labs/glowbot/internal/linkify"
)

// Color palette
var (
	primary = lipgloss.Color("#C9A227") // gold
	success = lipgloss.Color("#10B981")
	errcol  = lipgloss.Color("#EF4444")
	warning = lipgloss.Color("#F59E0B")
	muted   = lipgloss.Color("#6B7280")
)

var (
	advisorLabel = lipgloss.NewStyle().Foreground(primary).Bold(true)
	linkStyle    = lipgloss.NewStyle().Foreground(primary).Underline(true)
	urlStyle     = lipgloss.NewStyle().Foreground(muted)
	warnStyle    = lipgloss.NewStyle().Foreground(warning)
	errStyle     = lipgloss.NewStyle().Foreground(errcol)
	okStyle      = lipgloss.NewStyle().Foreground(success)
)

// Renderer handles all styled terminal output.
type Renderer struct{}

// NewRenderer creates a renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// AssistantReply renders a reply with its role label, converting link
// segments into underlined labels followed by their destination.
func (r *Renderer) AssistantReply(text string) string {
	return advisorLabel.Render("Advisor") + "  " + r.RenderSegments(linkify.Render(text))
}

// RenderSegments flattens rendered segments into terminal text. Link
// labels are styled; when the label differs from the URL, the URL is
// shown after it so the destination stays visible in a terminal.
func (r *Renderer) RenderSegments(segments []linkify.Segment) string {
	var b strings.Builder
	for _, s := range segments {
		if !s.IsLink() {
			b.WriteString(s.Text)
			continue
		}
		b.WriteString(linkStyle.Render(s.Label))
		if s.Label != s.URL {
			b.WriteString(" ")
			b.WriteString(urlStyle.Render("(" + s.URL + ")"))
		}
	}
	return b.String()
}

// Links pulls just the link segments out of a reply.
func (r *Renderer) Links(text string) []linkify.Segment {
	var links []linkify.Segment
	for _, s := range linkify.Render(text) {
		if s.IsLink() {
			links = append(links, s)
		}
	}
	return links
}

// WarningMessage formats a non-fatal notice.
func (r *Renderer) WarningMessage(msg string) string {
	return warnStyle.Render("⚠ " + msg)
}

// ErrorMessage formats a fatal error line.
func (r *Renderer) ErrorMessage(msg string) string {
	return errStyle.Render("✗ " + msg)
}

// SuccessMessage formats a confirmation line.
func (r *Renderer) SuccessMessage(msg string) string {
	return okStyle.Render("✓ " + msg)
}

// SessionResumeMessage notes how much history was rehydrated.
func (r *Renderer) SessionResumeMessage(turns int) string {
	return urlStyle.Render(fmt.Sprintf("Resumed conversation with %d earlier messages.", turns))
}
