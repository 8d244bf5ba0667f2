package widgets

import (
	"context"
	"log/slog"

	"searchalicious/internal/domain"
	"searchalicious/internal/errors"
	"searchalicious/internal/taxonomy"
	"searchalicious/internal/version"
)

// Suggestion is one entry of an autocomplete list
type Suggestion struct {
	Value    string
	Label    string
	Taxonomy string
}

// Suggester produces suggestions for a partial input. latest is false when
// a newer request superseded this one.
type Suggester interface {
	Suggest(ctx context.Context, input string) (suggestions []Suggestion, latest bool, err error)
}

// TaxonomySuggester suggests taxonomy terms. Each input owns one suggester;
// the client may be shared.
type TaxonomySuggester struct {
	Client     *taxonomy.Client
	Lang       string
	Taxonomies []string
	Size       int

	guard version.Guard
}

// Suggest implements Suggester
func (s *TaxonomySuggester) Suggest(ctx context.Context, input string) ([]Suggestion, bool, error) {
	token := s.guard.Increment()
	terms, err := s.Client.Terms(ctx, input, s.Lang, s.Taxonomies, s.Size)
	latest := s.guard.IsLatest(token)
	if err != nil {
		return nil, latest, err
	}
	if !latest {
		slog.DebugContext(ctx, "stale taxonomy suggestions", "input", input, "latest", s.guard.Current())
	}
	return termsToSuggestions(terms), latest, nil
}

func termsToSuggestions(terms []domain.TaxonomyTerm) []Suggestion {
	out := make([]Suggestion, 0, len(terms))
	for _, t := range terms {
		out = append(out, Suggestion{Value: t.ID, Label: t.Text, Taxonomy: t.TaxonomyName})
	}
	return out
}

// NoSuggester is used when no suggestion source is configured
type NoSuggester struct{}

// Suggest implements Suggester
func (NoSuggester) Suggest(context.Context, string) ([]Suggestion, bool, error) {
	return nil, false, errors.NewNotImplemented("Suggest")
}
