package cli

import (
	"context"
	"fmt"

	"github.com/mrlokans/bookr/internal/entities"
)

// CreateUserCmd adds an account for local authentication mode.
type CreateUserCmd struct {
	Username string `arg:"" help:"Login name"`
	Email    string `help:"Optional email address, also accepted as login"`
	Password string `help:"Password (at least 12 characters)" env:"BOOKR_PASSWORD" required:""`
	Role     string `help:"Account role" enum:"admin,member" default:"member"`
}

func (c *CreateUserCmd) Run(ctx context.Context, g *Globals) error {
	app, err := openApp(g)
	if err != nil {
		return err
	}
	defer app.Close()

	user, err := app.AuthService.CreateUser(ctx, c.Username, c.Email, c.Password, entities.UserRole(c.Role))
	if err != nil {
		return fmt.Errorf("create user %q: %w", c.Username, err)
	}
	fmt.Fprintf(g.Out, "Created %s user %s (id %d)\n", user.Role, user.Username, user.ID)
	return nil
}
