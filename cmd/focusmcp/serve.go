// Copyright (C) 2025 Dyne.org foundation
// designed, written and maintained by Denis Roio <jaromil@dyne.org>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"focusmcp/internal/server"
)

const (
	transportStdio = "stdio"
	transportHTTP  = "http"
)

func newServeCmd(opts *globalOptions) *cobra.Command {
	var transport, addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tools over MCP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.load()
			if err != nil {
				return err
			}
			defer a.close()

			srv, err := server.New(a.registry, version, a.logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(background(cmd), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			switch transport {
			case transportStdio:
				return srv.ServeStdio(ctx)
			case transportHTTP:
				if !cmd.Flags().Changed("addr") {
					addr = a.cfg.HTTP.Addr
				}
				return srv.ServeHTTP(ctx, addr, a.cfg.HTTP.Endpoint)
			}
			return fmt.Errorf("unknown transport %q: use %s or %s", transport, transportStdio, transportHTTP)
		},
	}
	cmd.Flags().StringVar(&transport, "transport", transportStdio, "transport: stdio or http")
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address for the http transport")
	return cmd
}

// background is used when a command runs without a cobra context.
func background(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
