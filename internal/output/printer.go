package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"

	giterrors "gitpilot.dev/gitpilot/errors"
)

// Formats accepted by NewPrinter.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Printer writes results in one of the supported formats.
type Printer struct {
	w      io.Writer
	errW   io.Writer
	format string
	color  bool
	styles *Styles
}

// NewPrinter creates a Printer for format. Unknown formats fall back to text.
// color enables styling for text output.
func NewPrinter(writer io.Writer, format string, color bool) *Printer {
	switch format {
	case FormatJSON, FormatYAML:
	default:
		format = FormatText
	}
	return &Printer{
		w:      writer,
		errW:   writer,
		format: format,
		color:  color,
		styles: newStyles(newRenderer(writer, color), color),
	}
}

// WithStderr sets a separate writer for errors and warnings in text mode.
// Structured formats keep errors on the main writer.
func (p *Printer) WithStderr(w io.Writer) *Printer {
	p.errW = w
	return p
}

// Format returns the output format in use.
func (p *Printer) Format() string {
	return p.format
}

// IsStructured reports whether output is JSON or YAML.
func (p *Printer) IsStructured() bool {
	return p.format != FormatText
}

// Emit writes data as JSON or YAML, or calls text for human output.
func (p *Printer) Emit(data any, text func()) error {
	switch p.format {
	case FormatJSON:
		return p.writeJSON(data)
	case FormatYAML:
		return p.writeYAML(data)
	default:
		text()
		return nil
	}
}

// Error reports err. Structured formats write {"error", "kind", "code"}.
func (p *Printer) Error(err error) {
	code := GetExitCode(err)
	msg := err.Error()

	if p.IsStructured() {
		data := map[string]any{
			"error": msg,
			"kind":  giterrors.KindOf(err).String(),
			"code":  code,
		}
		if p.format == FormatYAML {
			_ = p.writeYAML(data)
			return
		}
		_ = p.writeJSON(data)
		return
	}

	mustWrite(fmt.Fprintf(p.errW, "%s: %s\n", p.styles.Error.Render("Error"), msg))
}

// Warn writes a warning in text mode. Structured formats stay silent.
func (p *Printer) Warn(format string, args ...any) {
	if p.IsStructured() {
		return
	}
	mustWrite(fmt.Fprintf(p.errW, "%s: %s\n", p.styles.Warning.Render("Warning"), fmt.Sprintf(format, args...)))
}

// Println writes a line to the output.
func (p *Printer) Println(args ...any) {
	mustWrite(fmt.Fprintln(p.w, args...))
}

// Lines writes each line on its own.
func (p *Printer) Lines(lines []string) {
	for _, line := range lines {
		p.Println(line)
	}
}

// KeyValue renders "Key: Value".
func (p *Printer) KeyValue(key, value string) {
	mustWrite(fmt.Fprintf(p.w, "%s %s\n", p.styles.Key.Render(key+":"), value))
}

// Table renders rows under bold headers with aligned columns.
// Cells are measured before styling so colors do not skew the widths.
func (p *Printer) Table(headers []string, rows [][]string) {
	if len(headers) == 0 {
		return
	}

	widths := calcColumnWidths(headers, rows)
	p.printTableRow(headers, widths, p.styles.Bold.Render)
	for _, row := range rows {
		p.printTableRow(row, widths, nil)
	}
}

// calcColumnWidths computes the max width for each column.
func calcColumnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); i < len(widths) && w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

func (p *Printer) printTableRow(row []string, widths []int, style func(...string) string) {
	var b strings.Builder
	for i, cell := range row {
		if i >= len(widths) {
			break
		}
		if i > 0 {
			b.WriteString("  ")
		}
		padded := cell
		if i < len(row)-1 {
			padded = padRight(cell, widths[i])
		}
		if style != nil {
			padded = style(padded)
		}
		b.WriteString(padded)
	}
	mustWrite(fmt.Fprintln(p.w, b.String()))
}

func (p *Printer) writeJSON(data any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

func (p *Printer) writeYAML(data any) error {
	enc := yaml.NewEncoder(p.w)
	enc.SetIndent(2)
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return enc.Close()
}

// mustWrite panics if a write operation fails.
func mustWrite(_ int, err error) {
	if err != nil {
		panic(fmt.Sprintf("write failed: %v", err))
	}
}

// padRight pads a string with spaces to reach the target display width.
func padRight(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
