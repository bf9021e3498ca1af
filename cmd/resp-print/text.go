package main

import (
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

const textIndent = "  "

type textStyles struct {
	aggregate lipgloss.Style
	str       lipgloss.Style
	err       lipgloss.Style
	number    lipgloss.Style
	constant  lipgloss.Style
	marker    lipgloss.Style
	value     lipgloss.Style
	separator lipgloss.Style
}

// newTextStyles returns styles that always emit colors. Colors are downsampled or stripped by the colorprofile.Writer
// the output is written to.
func newTextStyles() textStyles {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.TrueColor)

	return textStyles{
		aggregate: r.NewStyle().Foreground(lipgloss.Color("12")).Bold(true), // Blue
		str:       r.NewStyle().Foreground(lipgloss.Color("10")),            // Green
		err:       r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),  // Red
		number:    r.NewStyle().Foreground(lipgloss.Color("14")),            // Cyan
		constant:  r.NewStyle().Foreground(lipgloss.Color("11")),            // Yellow
		marker:    r.NewStyle().Foreground(lipgloss.Color("13")),            // Magenta
		value:     r.NewStyle().Foreground(lipgloss.Color("15")),
		separator: r.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

func (s textStyles) kind(n node) lipgloss.Style {
	switch n.kind {
	case "blob-string", "bulk-string", "simple-string", "verbatim-string":
		return s.str
	case "error", "simple-error", "blob-error":
		return s.err
	case "integer", "number", "double", "big-number":
		return s.number
	case "null", "boolean":
		return s.constant
	case "stream-array", "stream-set", "stream-map", "stream-end":
		return s.marker
	default:
		return s.aggregate
	}
}

// textPrinter prints values as an indented tree with one line per value.
type textPrinter struct {
	w      io.Writer
	styles textStyles
}

func newTextPrinter(w io.Writer) *textPrinter {
	return &textPrinter{w: w, styles: newTextStyles()}
}

func (p *textPrinter) Print(n node) error {
	var sb strings.Builder
	p.write(&sb, n, 0, "")
	_, err := io.WriteString(p.w, sb.String())
	return err
}

func (p *textPrinter) Close() error {
	return nil
}

// label returns the single line representation of n, without children.
func (p *textPrinter) label(n node) string {
	parts := []string{p.styles.kind(n).Render(n.kind)}
	if n.aggregate {
		parts[0] += p.styles.separator.Render("[" + strconv.Itoa(n.size()) + "]")
	}
	if n.value != "" {
		parts = append(parts, p.styles.value.Render(n.value))
	}
	if n.hasPayload {
		parts = append(parts, p.styles.value.Render(strconv.Quote(string(n.payload))))
	}
	return strings.Join(parts, " ")
}

func (p *textPrinter) write(sb *strings.Builder, n node, depth int, prefix string) {
	sb.WriteString(strings.Repeat(textIndent, depth))
	sb.WriteString(prefix)
	sb.WriteString(p.label(n))
	sb.WriteByte('\n')

	if !n.keyed {
		for _, c := range n.children {
			p.write(sb, c, depth+1, "")
		}
		return
	}

	arrow := p.styles.separator.Render("=>") + " "
	for i := 0; i+1 < len(n.children); i += 2 {
		key, value := n.children[i], n.children[i+1]
		if key.aggregate {
			p.write(sb, key, depth+1, "")
			p.write(sb, value, depth+1, arrow)
			continue
		}
		p.write(sb, value, depth+1, p.label(key)+" "+arrow)
	}
}
