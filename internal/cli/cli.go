// Package cli implements the bookr command line: the HTTP server plus a few
// commands that run the catalog reconciler and the rankings directly against
// the configured database.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/mrlokans/bookr/internal/config"
	"github.com/mrlokans/bookr/internal/database/users"
	"github.com/mrlokans/bookr/internal/entities"
	"github.com/mrlokans/bookr/internal/entrypoint"
)

// Globals are bound into every command's Run method.
type Globals struct {
	Config  *config.Config
	Version string
	Out     io.Writer
}

// CLI is the complete command structure. Running bookr without a command
// starts the server.
type CLI struct {
	Version kong.VersionFlag `help:"Print version information and exit"`

	Serve      ServeCmd      `cmd:"" default:"1" help:"Start the HTTP server"`
	Search     SearchCmd     `cmd:"" help:"Search the external catalog"`
	Add        AddCmd        `cmd:"" help:"Add an external catalog entry to a user's list"`
	Dashboard  DashboardCmd  `cmd:"" help:"Print the most read, most recent and top rated books"`
	CreateUser CreateUserCmd `cmd:"" help:"Create a user account"`
}

// New builds the kong parser for cli with globals bound to every command.
func New(cli *CLI, globals *Globals, options ...kong.Option) (*kong.Kong, error) {
	if globals.Out == nil {
		globals.Out = os.Stdout
	}
	opts := []kong.Option{
		kong.Name("bookr"),
		kong.Description("Track the books you read and see what everyone else reads."),
		kong.UsageOnError(),
		kong.Vars{
			"version":    globals.Version,
			"local_user": users.LocalUsername,
		},
		kong.Bind(globals),
		kong.BindTo(context.Background(), (*context.Context)(nil)),
	}
	return kong.New(cli, append(opts, options...)...)
}

// openApp wires the application against the configured database. Callers
// must Close it.
func openApp(g *Globals) (*entrypoint.App, error) {
	return entrypoint.NewApp(g.Config)
}

// resolveUser returns the named user. The local single-user account is
// created on demand.
func resolveUser(ctx context.Context, app *entrypoint.App, username string) (*entities.User, error) {
	if username == users.LocalUsername {
		return app.Users.EnsureLocalUser(ctx)
	}
	user, err := app.Users.GetByLogin(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("unknown user %q: %w", username, err)
	}
	return user, nil
}
