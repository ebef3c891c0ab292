package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/mrlokans/bookr/internal/database/rankings"
)

// DashboardCmd prints the three book rankings.
type DashboardCmd struct {
	Limit int `short:"n" help:"Books per ranking (defaults to DASHBOARD_LIMIT)"`
}

func (d *DashboardCmd) Run(ctx context.Context, g *Globals) error {
	limit := d.Limit
	if limit <= 0 {
		limit = g.Config.Dashboard.Limit
	}

	app, err := openApp(g)
	if err != nil {
		return err
	}
	defer app.Close()

	sections := []struct {
		title string
		rank  func(context.Context, int) ([]rankings.RankedBook, error)
	}{
		{"Most read", app.Rankings.MostRead},
		{"Recently added", app.Rankings.MostRecent},
		{"Top rated", app.Rankings.TopRated},
	}
	for i, s := range sections {
		ranked, err := s.rank(ctx, limit)
		if err != nil {
			return err
		}
		if i > 0 {
			fmt.Fprintln(g.Out)
		}
		printRanking(g.Out, s.title, ranked)
	}
	return nil
}

func printRanking(w io.Writer, title string, ranked []rankings.RankedBook) {
	fmt.Fprintln(w, title)
	if len(ranked) == 0 {
		fmt.Fprintln(w, "  (no books)")
		return
	}
	for i, rb := range ranked {
		rating := "-"
		if rb.AverageRating != nil {
			rating = fmt.Sprintf("%.2f", *rb.AverageRating)
		}
		fmt.Fprintf(w, "  %d. %s (%d) listings: %d, rating: %s\n",
			i+1, rb.Book.String(), rb.Book.FirstPublished, rb.ListingCount, rating)
	}
}
