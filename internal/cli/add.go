package cli

import (
	"context"
	"fmt"
)

// AddCmd ingests an external catalog entry and puts it on a user's list.
type AddCmd struct {
	ExternalID string `arg:"" name:"external-id" help:"Edition identifier printed by 'bookr search'"`
	User       string `short:"u" help:"Username whose list receives the book" default:"${local_user}"`
}

func (a *AddCmd) Run(ctx context.Context, g *Globals) error {
	app, err := openApp(g)
	if err != nil {
		return err
	}
	defer app.Close()

	user, err := resolveUser(ctx, app, a.User)
	if err != nil {
		return err
	}

	book, created, err := app.Reconciler.Ingest(ctx, a.ExternalID, user.ID, app.Catalog)
	if err != nil {
		return err
	}

	status := "already in catalog"
	if created {
		status = "new to catalog"
	}
	fmt.Fprintf(g.Out, "Added %s (%d) to %s's list [%s]\n", book.String(), book.FirstPublished, user.Username, status)
	return nil
}
