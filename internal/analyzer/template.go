package analyzer

import (
	"bytes"
	"fmt"
	"os"
	"text/template"

	"gopkg.in/yaml.v3"
)

// PromptTemplate is the YAML shape of a custom template file.
type PromptTemplate struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Template    string `yaml:"template"`
}

// TemplateData is the data rendered into a prompt template.
type TemplateData struct {
	FileName string
	Language string
	Code     string
}

var builtinTemplates = map[string]string{
	"default": `Please review the following {{.Language}} file for security vulnerabilities, potential bugs, and bad coding practices.

File: {{.FileName}}

` + "```{{.Language}}\n{{.Code}}\n```" + `

Provide detailed, natural-language feedback with actionable recommendations.`,

	"brief": `Review the following {{.Language}} file ({{.FileName}}) and report only the most significant security issues, one short paragraph each. If nothing significant is found, say so in one sentence.

` + "```{{.Language}}\n{{.Code}}\n```",
}

// GetPromptTemplate resolves a template by builtin name or file path.
// A YAML file provides the template field; any other file content is
// used verbatim.
func GetPromptTemplate(name string) (string, error) {
	if tmpl, ok := builtinTemplates[name]; ok {
		return tmpl, nil
	}

	if _, err := os.Stat(name); err == nil {
		content, err := os.ReadFile(name)
		if err != nil {
			return "", fmt.Errorf("unable to read template file %s: %w", name, err)
		}

		var tpl PromptTemplate
		if err := yaml.Unmarshal(content, &tpl); err != nil || tpl.Template == "" {
			return string(content), nil
		}
		return tpl.Template, nil
	}

	return "", fmt.Errorf("unknown prompt template: %s", name)
}

// RenderTemplate executes a prompt template with the given data.
func RenderTemplate(templateContent string, data TemplateData) (string, error) {
	tmpl, err := template.New("prompt").Parse(templateContent)
	if err != nil {
		return "", fmt.Errorf("template parsing error: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("template rendering error: %w", err)
	}
	return buf.String(), nil
}

// GetBuiltinTemplates returns the builtin template map.
func GetBuiltinTemplates() map[string]string {
	return builtinTemplates
}
