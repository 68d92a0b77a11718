// Package web holds the HTML templates of the quiz pages.
package web

import (
	"embed"
	"fmt"
	"html/template"

	"github.com/gin-contrib/multitemplate"
)

//go:embed templates/*.html
var templates embed.FS

// Page names accepted by gin's c.HTML.
const (
	PageHome    = "home"
	PageQuiz    = "quiz"
	PageSummary = "summary"
	PageReview  = "review"
)

// Renderer builds one template per page, each wrapped in the shared layout.
func Renderer() (multitemplate.Renderer, error) {
	r := multitemplate.NewRenderer()
	for _, page := range []string{PageHome, PageQuiz, PageSummary, PageReview} {
		tmpl, err := template.New("layout.html").ParseFS(templates,
			"templates/layout.html",
			"templates/"+page+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s page: %w", page, err)
		}
		r.Add(page, tmpl)
	}
	return r, nil
}
