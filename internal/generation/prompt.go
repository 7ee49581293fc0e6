package generation

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"
)

// defaultPromptTemplate asks a chat model to behave like an abstractive
// summarizer with the configured bounds.
const defaultPromptTemplate = `Summarize the following notes in plain prose.
Write between {{.MinLength}} and {{.MaxLength}} tokens.
Do not add headings, bullet points, or commentary; return only the summary.

Notes:
{{.Text}}`

// promptData is the data passed to the prompt template.
type promptData struct {
	Text      string
	MaxLength int
	MinLength int
}

// LoadPromptTemplate parses the template at path, or the built-in template
// when path is empty.
func LoadPromptTemplate(path string) (*template.Template, error) {
	content := defaultPromptTemplate
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read prompt template from %s: %v",
				ErrInvalidConfig, path, err)
		}
		content = string(raw)
	}

	tmpl, err := template.New("summary").Option("missingkey=error").Parse(content)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template: %v", ErrInvalidConfig, err)
	}
	return tmpl, nil
}

// RenderPrompt executes tmpl for the given text and bounds.
func RenderPrompt(tmpl *template.Template, text string, bounds Bounds) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyInput
	}

	var buf bytes.Buffer
	data := promptData{
		Text:      text,
		MaxLength: bounds.MaxLength,
		MinLength: bounds.MinLength,
	}
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}
	return buf.String(), nil
}
