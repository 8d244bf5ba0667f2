package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"searchalicious/internal/errors"
	"searchalicious/internal/eventbus"
	"searchalicious/internal/widgets"
)

type searchOptions struct {
	facets []string
	page   int
	sort   string
}

func newSearchCmd(opts *options) *cobra.Command {
	so := &searchOptions{}

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Run one search and print the results",
		Long: `Run every configured search once and print the results as a table.

Example usage:
  searchalicious search pasta
  searchalicious search --facet brands=barilla --facet labels=organic
  searchalicious search pasta --page 2 --sort popularity`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			return runSearch(cmd, opts, so, query)
		},
	}

	cmd.Flags().StringArrayVar(&so.facets, "facet", nil, "facet filter as name=term, repeatable")
	cmd.Flags().IntVar(&so.page, "page", 1, "result page")
	cmd.Flags().StringVar(&so.sort, "sort", "", "sort option id")
	return cmd
}

// parseFacetFlags groups name=term flags by facet name, keeping flag order
func parseFacetFlags(flags []string) (map[string][]string, error) {
	terms := make(map[string][]string)
	for _, f := range flags {
		name, term, ok := strings.Cut(f, "=")
		name, term = strings.TrimSpace(name), strings.TrimSpace(term)
		if !ok || name == "" || term == "" {
			return nil, errors.NewValidation(fmt.Sprintf("invalid facet %q, expected name=term", f))
		}
		terms[name] = append(terms[name], term)
	}
	return terms, nil
}

func runSearch(cmd *cobra.Command, opts *options, so *searchOptions, query string) error {
	if so.page < 1 {
		return errors.NewValidation("page must be greater than zero, got " + strconv.Itoa(so.page))
	}
	terms, err := parseFacetFlags(so.facets)
	if err != nil {
		return err
	}

	bus := eventbus.NewSync()
	defer bus.Close()
	a, err := newApp(opts.cfg, bus, "")
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	a.attach(ctx)
	defer a.detach()

	for _, set := range a.sets {
		for name, values := range terms {
			if set.Facets.Facet(name) == nil {
				return errors.NewValidation(fmt.Sprintf("search %q has no facet %q", set.Name, name))
			}
			set.Facets.SetSelectedTerms(name, values)
		}
		if so.sort != "" && !set.Sort.SelectByID(so.sort) {
			return errors.NewValidation(fmt.Sprintf("search %q has no sort option %q", set.Name, so.sort))
		}
		set.Controller.SetQuery(query)
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, set := range a.sets {
		g.Go(func() error {
			page := so.page
			return set.Controller.Search(gctx, &page)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	p := NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr())
	for _, set := range a.sets {
		if err := printSet(p, set); err != nil {
			return err
		}
	}
	p.Info("Location: %s", a.location.String())
	return nil
}

func printSet(p *Printer, set *widgets.Set) error {
	p.Header("%s: %s", set.Name, set.Count.Text())

	lines := set.Results.Lines()
	if len(lines) == 0 {
		p.Info("No results.")
		return nil
	}
	t := NewTable(p.Out(), []string{"#", "Result"})
	first := (set.Pagination.CurrentPage() - 1) * set.Controller.Snapshot().PageSize
	for i, line := range lines {
		t.AddRow([]string{strconv.Itoa(first + i + 1), line})
	}
	if err := t.Render(); err != nil {
		return err
	}
	p.Info("Page %d of %d", set.Pagination.CurrentPage(), set.Pagination.PageCount())
	return nil
}
