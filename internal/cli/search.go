package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/mrlokans/bookr/internal/catalog"
	"github.com/mrlokans/bookr/internal/metrics"
)

// SearchCmd prints the external catalog entries that can be added with
// `bookr add`.
type SearchCmd struct {
	Query []string `arg:"" help:"Search terms"`
}

func (s *SearchCmd) Run(ctx context.Context, g *Globals) error {
	query := strings.TrimSpace(strings.Join(s.Query, " "))
	if query == "" {
		return fmt.Errorf("search query is required")
	}

	app, err := openApp(g)
	if err != nil {
		return err
	}
	defer app.Close()

	records, err := app.Catalog.Search(ctx, query)
	if err != nil {
		return err
	}
	choices := catalog.FilterSearchResults(records)
	metrics.RecordSearchChoices(len(choices))

	if len(choices) == 0 {
		fmt.Fprintf(g.Out, "No complete results for %q\n", query)
		return nil
	}

	w := tabwriter.NewWriter(g.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "EXTERNAL ID\tBOOK")
	for _, c := range choices {
		fmt.Fprintf(w, "%s\t%s\n", c.ExternalID, c.Label)
	}
	return w.Flush()
}
