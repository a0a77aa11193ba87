package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/poetrykeeper/internal/client/models"
	"golang.org/x/net/html"
)

const (
	previewLines  = 3
	previewLength = 200
	cardTags      = 3

	cardDateLayout   = "Jan 2, 2006"
	detailDateLayout = "January 2, 2006"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	mutedStyle    = lipgloss.NewStyle().Faint(true)
	categoryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	boldStyle     = lipgloss.NewStyle().Bold(true)
	italicStyle   = lipgloss.NewStyle().Italic(true)
	boldItalic    = lipgloss.NewStyle().Bold(true).Italic(true)
)

// RenderDescription renders the supported markup with terminal styles.
// Unknown tags are dropped and their text kept.
func RenderDescription(desc string) string {
	var sb strings.Builder
	var bold, italic int

	z := html.NewTokenizer(strings.NewReader(desc))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return strings.TrimSpace(sb.String())
		case html.TextToken:
			sb.WriteString(styleText(string(z.Text()), bold > 0, italic > 0))
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "br":
				sb.WriteByte('\n')
			case "b", "strong":
				if tt == html.StartTagToken {
					bold++
				}
			case "i", "em":
				if tt == html.StartTagToken {
					italic++
				}
			case "p", "div":
				if sb.Len() > 0 {
					sb.WriteByte('\n')
				}
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "b", "strong":
				bold = max(bold-1, 0)
			case "i", "em":
				italic = max(italic-1, 0)
			}
		}
	}
}

// styleText styles each line separately so escape codes never span a
// newline.
func styleText(s string, bold, italic bool) string {
	var style lipgloss.Style
	switch {
	case bold && italic:
		style = boldItalic
	case bold:
		style = boldStyle
	case italic:
		style = italicStyle
	default:
		return s
	}

	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = style.Render(l)
		}
	}
	return strings.Join(lines, "\n")
}

// PlainText strips markup, turning <br> into line breaks.
func PlainText(desc string) string {
	var sb strings.Builder
	z := html.NewTokenizer(strings.NewReader(desc))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return sb.String()
		case html.TextToken:
			sb.Write(z.Text())
		case html.StartTagToken, html.SelfClosingTagToken:
			if name, _ := z.TagName(); string(name) == "br" {
				sb.WriteByte('\n')
			}
		}
	}
}

// Preview is the first non-empty lines of the plain text, cut to the card
// length.
func Preview(desc string) string {
	var lines []string
	for _, l := range strings.Split(PlainText(desc), "\n") {
		if strings.TrimSpace(l) == "" {
			continue
		}
		lines = append(lines, l)
		if len(lines) == previewLines {
			break
		}
	}
	return truncate(strings.Join(lines, "\n"), previewLength)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

func formatDate(t time.Time, layout string) string {
	if t.IsZero() {
		return "Unknown date"
	}
	return t.Local().Format(layout)
}

func cardTagLine(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	shown := tags
	if len(tags) > cardTags {
		shown = tags[:cardTags]
	}
	line := "#" + strings.Join(shown, " #")
	if extra := len(tags) - len(shown); extra > 0 {
		line += fmt.Sprintf(" +%d more", extra)
	}
	return line
}

// writeCard prints the list entry for p.
func writeCard(w io.Writer, p models.Poem) {
	fmt.Fprintf(w, "%s  %s  %s\n",
		mutedStyle.Render("["+p.ID+"]"),
		categoryStyle.Render(p.Category),
		mutedStyle.Render(formatDate(p.CreatedAt, cardDateLayout)),
	)
	fmt.Fprintf(w, "%s by %s\n", titleStyle.Render(p.Title), p.Author)
	if preview := Preview(p.Description); preview != "" {
		for _, l := range strings.Split(preview, "\n") {
			fmt.Fprintln(w, "  "+l)
		}
	}
	if tags := cardTagLine(p.Tags); tags != "" {
		fmt.Fprintln(w, "  "+mutedStyle.Render(tags))
	}
	fmt.Fprintln(w)
}

// writeDetail prints the full view of p.
func writeDetail(w io.Writer, p models.Poem) {
	fmt.Fprintln(w, titleStyle.Render(p.Title))
	fmt.Fprintf(w, "by %s · %s\n", p.Author, categoryStyle.Render(p.Category))
	fmt.Fprintln(w)
	fmt.Fprintln(w, RenderDescription(p.Description))
	fmt.Fprintln(w)
	if len(p.Tags) > 0 {
		fmt.Fprintln(w, mutedStyle.Render("Tags: #"+strings.Join(p.Tags, " #")))
	}
	fmt.Fprintln(w, mutedStyle.Render("Added on "+formatDate(p.CreatedAt, detailDateLayout)))
	if !p.UpdatedAt.Equal(p.CreatedAt) {
		fmt.Fprintln(w, mutedStyle.Render("Updated on "+formatDate(p.UpdatedAt, detailDateLayout)))
	}
	fmt.Fprintln(w, mutedStyle.Render("ID: "+p.ID))
}
