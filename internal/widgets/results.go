package widgets

import (
	"fmt"
	"strings"
	"sync"
	"text/template"

	"searchalicious/internal/domain"
	"searchalicious/internal/errors"
	"searchalicious/internal/eventbus"
)

var templateFuncs = template.FuncMap{
	"field": func(h domain.Hit, name string) string { return h.String(name) },
	"join":  strings.Join,
	"truncate": func(n int, s string) string {
		r := []rune(s)
		if len(r) <= n {
			return s
		}
		return string(r[:n]) + "…"
	},
}

// Results renders every hit of the last result with a text/template
type Results struct {
	*Consumer
	tmpl *template.Template

	mu   sync.RWMutex
	hits []domain.Hit
}

// NewResults creates a results widget. Exactly one template must be given.
func NewResults(searchName string, templates []string, bus eventbus.EventBus) (*Results, error) {
	switch len(templates) {
	case 0:
		return nil, errors.NewConfiguration("results widget needs a result template")
	case 1:
	default:
		return nil, errors.NewConfiguration(fmt.Sprintf("results widget accepts one result template, got %d", len(templates)))
	}

	tmpl, err := template.New("result").Funcs(templateFuncs).Parse(templates[0])
	if err != nil {
		return nil, errors.NewConfiguration("invalid result template", err)
	}
	return &Results{
		Consumer: newConsumer(searchName, bus),
		tmpl:     tmpl,
	}, nil
}

// Attach subscribes the widget to the results of its search
func (r *Results) Attach() {
	r.onResult(func(ev domain.NewResultEvent) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.hits = ev.Results
	})
}

// Hits returns the hits of the last result
func (r *Results) Hits() []domain.Hit {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.Hit(nil), r.hits...)
}

// Render renders one hit
func (r *Results) Render(hit domain.Hit) (string, error) {
	var b strings.Builder
	if err := r.tmpl.Execute(&b, hit); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Lines renders every hit; a hit failing to render shows the error instead
func (r *Results) Lines() []string {
	hits := r.Hits()
	lines := make([]string, 0, len(hits))
	for _, hit := range hits {
		line, err := r.Render(hit)
		if err != nil {
			line = "render error: " + err.Error()
		}
		lines = append(lines, line)
	}
	return lines
}
