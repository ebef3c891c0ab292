package cli

import (
	"context"

	"github.com/mrlokans/bookr/internal/entrypoint"
)

// ServeCmd runs the HTTP API.
type ServeCmd struct {
	Port int32  `help:"Port to listen on (overrides PORT)"`
	Host string `help:"Interface to bind (overrides HOST)"`
}

func (s *ServeCmd) Run(ctx context.Context, g *Globals) error {
	if s.Port != 0 {
		g.Config.HTTP.Port = s.Port
	}
	if s.Host != "" {
		g.Config.HTTP.Host = s.Host
	}
	return entrypoint.Run(ctx, g.Config, g.Version)
}
