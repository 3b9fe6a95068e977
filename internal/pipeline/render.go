package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ppiankov/aspecta/internal/model"
)

// Output formats
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
)

// Formats lists the supported output formats
var Formats = []string{FormatText, FormatMarkdown, FormatJSON, FormatYAML}

// Render writes one result in the given format
func Render(w io.Writer, result *model.Result, format string) error {
	return RenderAll(w, []*model.Result{result}, format)
}

// RenderAll writes results in the given format. JSON and YAML encode a
// single result as an object and several as a list.
func RenderAll(w io.Writer, results []*model.Result, format string) error {
	switch strings.ToLower(format) {
	case "", FormatText:
		return renderSections(w, results, RenderText)
	case FormatMarkdown, "md":
		return renderSections(w, results, RenderMarkdown)
	case FormatJSON:
		if len(results) == 1 {
			return RenderJSON(w, results[0])
		}
		return RenderJSON(w, results)
	case FormatYAML, "yml":
		if len(results) == 1 {
			return RenderYAML(w, results[0])
		}
		return RenderYAML(w, results)
	default:
		return fmt.Errorf("unknown output format: %s (supported: %s)", format, strings.Join(Formats, ", "))
	}
}

func renderSections(w io.Writer, results []*model.Result, render func(io.Writer, *model.Result) error) error {
	for i, result := range results {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if len(results) > 1 {
			if _, err := fmt.Fprintf(w, "=== %s ===\n", result.Source); err != nil {
				return err
			}
		}
		if err := render(w, result); err != nil {
			return err
		}
	}
	return nil
}

// RenderText writes each category header followed by numbered mentions
//
//	ЗАДАЧА
//	1. Тепловое воздействие лесных пожаров
func RenderText(w io.Writer, result *model.Result) error {
	var sb strings.Builder

	if result.Aspects == nil || result.Aspects.Len() == 0 {
		sb.WriteString("No aspects found.\n")
	} else {
		for i, c := range result.Aspects.Categories() {
			if i > 0 {
				sb.WriteString("\n")
			}
			mentions := result.Aspects.Mentions(c)
			sb.WriteString(model.Header(c, len(mentions)) + "\n")
			for j, m := range mentions {
				sb.WriteString(fmt.Sprintf("%d. %s\n", j+1, m))
			}
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// RenderMarkdown writes the result as a Markdown document
func RenderMarkdown(w io.Writer, result *model.Result) error {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Aspects: %s\n\n", result.Source))
	sb.WriteString(fmt.Sprintf("**Extracted:** %s  \n", result.ExtractedAt.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("**Tokens:** %d  \n", result.Tokens))
	sb.WriteString(fmt.Sprintf("**Normalized:** %t\n", result.Normalized))

	if result.Aspects == nil || result.Aspects.Len() == 0 {
		sb.WriteString("\n_No aspects found._\n")
	} else {
		for _, c := range result.Aspects.Categories() {
			mentions := result.Aspects.Mentions(c)
			sb.WriteString(fmt.Sprintf("\n## %s\n\n", model.DisplayName(c, len(mentions))))
			for j, m := range mentions {
				sb.WriteString(fmt.Sprintf("%d. %s\n", j+1, m))
			}
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// RenderJSON writes v as indented JSON
func RenderJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	return nil
}

// RenderYAML writes v as YAML
func RenderYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("marshal YAML: %w", err)
	}
	return enc.Close()
}
