package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"
	"unicode/utf8"
)

type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatTable, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported output format %q, expected table or json", s)
	}
}

// Field is one labelled value of a section summary.
type Field struct {
	Name  string
	Value string
}

// Section is a titled block of summary fields followed by an optional table.
type Section struct {
	Title   string
	Summary []Field
	Columns []string
	Rows    [][]string
}

type Report struct {
	Title    string
	Subtitle string
	Sections []Section
}

type TableConfig struct {
	MaxColumnWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{MaxColumnWidth: 48}
}

type Reporter struct {
	writer io.Writer
	format Format
	config TableConfig
}

func NewReporter(writer io.Writer, format Format) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	if format == "" {
		format = FormatTable
	}
	return &Reporter{
		writer: writer,
		format: format,
		config: DefaultTableConfig(),
	}
}

// Handle writes payload as indented JSON, or report as text tables.
func (c *Reporter) Handle(report Report, payload any) error {
	if c.format == FormatJSON {
		enc := json.NewEncoder(c.writer)
		enc.SetIndent("", "  ")
		if err := enc.Encode(payload); err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		return nil
	}
	return c.table(report)
}

func (c *Reporter) table(report Report) error {
	funcMap := template.FuncMap{
		"widths": c.widths,
		"formatRow": func(widths []int, cells []string) string {
			var b strings.Builder
			b.WriteString("|")
			for i, w := range widths {
				cell := ""
				if i < len(cells) {
					cell = c.truncate(cells[i])
				}
				fmt.Fprintf(&b, " %-*s |", w, cell)
			}
			return b.String()
		},
		"separator": func(widths []int) string {
			var b strings.Builder
			b.WriteString("+")
			for _, w := range widths {
				b.WriteString(strings.Repeat("-", w+2))
				b.WriteString("+")
			}
			return b.String()
		},
	}

	tmpl := `
{{.Title}}
{{- if .Subtitle}}
{{.Subtitle}}
{{- end}}
{{range .Sections}}
=== {{.Title}} ===
{{range .Summary}}{{.Name}}: {{.Value}}
{{end}}
{{- if .Columns}}{{$w := widths .}}
{{separator $w}}
{{formatRow $w .Columns}}
{{separator $w}}
{{range .Rows}}{{formatRow $w .}}
{{end}}{{separator $w}}
{{end}}{{end}}`

	t, err := template.New("report").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, report)
}

func (c *Reporter) widths(s Section) []int {
	widths := make([]int, len(s.Columns))
	for i, col := range s.Columns {
		widths[i] = utf8.RuneCountInString(col)
	}
	for _, row := range s.Rows {
		for i := range widths {
			if i < len(row) {
				widths[i] = max(widths[i], utf8.RuneCountInString(c.truncate(row[i])))
			}
		}
	}
	return widths
}

func (c *Reporter) truncate(s string) string {
	if c.config.MaxColumnWidth <= 0 || utf8.RuneCountInString(s) <= c.config.MaxColumnWidth {
		return s
	}
	r := []rune(s)
	return string(r[:c.config.MaxColumnWidth-1]) + "…"
}
