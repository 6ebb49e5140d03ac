package handlers

import (
	"embed"
	"fmt"
	"html/template"
	"slices"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

var templateFuncs = template.FuncMap{
	"initials": initials,
	"stars":    stars,
	"has":      slices.Contains[[]string],
	"money":    func(v float64) string { return fmt.Sprintf("$%.0f", v) },
}

func parseTemplates() (*template.Template, error) {
	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return tmpl, nil
}

// initials mirrors the header avatar fallback: first letter of each word.
func initials(name string) string {
	var b strings.Builder
	for _, part := range strings.Fields(name) {
		b.WriteString(strings.ToUpper(string([]rune(part)[0])))
	}
	return b.String()
}

// stars returns five flags, true for each filled star.
func stars(rating int) []bool {
	out := make([]bool, 5)
	for i := range out {
		out[i] = i < rating
	}
	return out
}
