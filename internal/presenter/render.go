package presenter

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.Table))

// RenderMarkdown writes the dashboard as GitHub flavoured Markdown.
func RenderMarkdown(w io.Writer, d Dashboard) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", d.Title)
	fmt.Fprintf(&b, "_%s_\n\n", d.Caption)

	if d.Error != "" {
		fmt.Fprintf(&b, "> ❌ **Refresh failed:** %s\n\n", escapeMarkdown(d.Error))
	} else {
		writeTable(&b, d.Columns, d.Rows)

		for _, m := range d.Summary {
			fmt.Fprintf(&b, "- **%s:** %s\n", m.Label, escapeMarkdown(m.Value))
		}
		b.WriteString("\n")

		for _, n := range d.Notices {
			fmt.Fprintf(&b, "> ℹ️ %s\n\n", escapeMarkdown(n))
		}

		if len(d.Alerts) > 0 {
			b.WriteString("## ⚠️ Alerts Triggered:\n\n")
			for _, a := range d.Alerts {
				fmt.Fprintf(&b, "- %s\n", escapeMarkdown(a))
			}
			b.WriteString("\n")
		}
	}

	fmt.Fprintf(&b, "_⏱ Last updated: %s_\n", d.LastUpdated)

	_, err := io.WriteString(w, b.String())
	return err
}

func writeTable(b *strings.Builder, columns []string, rows []DisplayRow) {
	b.WriteString("|")
	for _, c := range columns {
		fmt.Fprintf(b, " %s |", escapeMarkdown(c))
	}
	b.WriteString("\n|")
	for i := range columns {
		if i < 2 {
			b.WriteString(" --- |")
		} else {
			b.WriteString(" ---: |")
		}
	}
	b.WriteString("\n")

	for _, r := range rows {
		cells := []string{r.Token, r.Amount, r.BuyPrice, r.CurrentPrice, r.Value, r.GainLoss, r.ValueSecondary}
		b.WriteString("|")
		for _, c := range cells {
			fmt.Fprintf(b, " %s |", escapeMarkdown(c))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "`", "\\`", `*`, `\*`, `_`, `\_`, `[`, `\[`, `]`, `\]`,
	`<`, `\<`, `>`, `\>`, `#`, `\#`, `|`, `\|`, `~`, `\~`, "\n", " ", "\r", "",
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>💰 Crypto Portfolio Tracker</title>
<style>
body { font-family: system-ui, sans-serif; margin: 2rem auto; max-width: 1100px; padding: 0 1rem; color: #222; }
table { border-collapse: collapse; width: 100%; margin-bottom: 1.5rem; }
th, td { border-bottom: 1px solid #ddd; padding: .5rem .75rem; }
th { background: #f5f5f5; }
blockquote { margin: 0 0 1rem; padding: .75rem 1rem; background: #fff4e5; border-left: 4px solid #f0a020; }
ul { padding-left: 1.25rem; }
</style>
</head>
<body>
{{.}}
</body>
</html>
`))

// RenderHTML writes the dashboard as a complete HTML page.
func RenderHTML(w io.Writer, d Dashboard) error {
	var md bytes.Buffer
	if err := RenderMarkdown(&md, d); err != nil {
		return err
	}

	var body bytes.Buffer
	if err := markdown.Convert(md.Bytes(), &body); err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}

	//nolint:gosec // G203: body is produced by goldmark with raw HTML disabled.
	return pageTemplate.Execute(w, template.HTML(body.String()))
}

// RenderTerminal renders the dashboard for a terminal. An empty style picks
// the style from the terminal background.
func RenderTerminal(d Dashboard, style string) (string, error) {
	var md bytes.Buffer
	if err := RenderMarkdown(&md, d); err != nil {
		return "", err
	}

	opts := []glamour.TermRendererOption{glamour.WithWordWrap(120)}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("failed to create terminal renderer: %w", err)
	}
	return r.Render(md.String())
}
