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

// Command focusmcp serves OmniFocus as MCP tools and runs them from the
// command line.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"focusmcp/internal/config"
	"focusmcp/internal/tools"
)

var version = "dev"

// errToolFailed reports a failed tool call whose text was already printed.
var errToolFailed = errors.New("tool call failed")

type globalOptions struct {
	debug      bool
	logFile    string
	configPath string
}

func (o *globalOptions) register(fs *pflag.FlagSet) {
	fs.BoolVarP(&o.debug, "debug", "d", false, "enable debug logging (to stderr unless --log-file is set)")
	fs.StringVar(&o.logFile, "log-file", "", "append logs to this file")
	fs.StringVar(&o.configPath, "config", config.DefaultPath, "path to the JSONC config file")
}

func main() {
	err := newRootCmd(os.Stdout).Execute()
	if err == nil {
		return
	}
	if !errors.Is(err, errToolFailed) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(1)
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &globalOptions{}
	root := &cobra.Command{
		Use:           "focusmcp",
		Short:         "OmniFocus task and project management as MCP tools",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	opts.register(root.PersistentFlags())

	root.AddCommand(
		newServeCmd(opts),
		newCallCmd(opts),
		newCompileCmd(opts),
		newToolsCmd(opts),
		newBatchCmd(opts),
		newReplCmd(opts),
		newConfigCmd(),
	)
	return root
}

func initLogger(debug bool, logFilePath string) (zerolog.Logger, func(), error) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	// stdout carries the stdio transport, so logs never go there.
	var output io.Writer = io.Discard
	closeFn := func() {}
	switch {
	case logFilePath != "":
		file, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), closeFn, fmt.Errorf("failed to open log file: %w", err)
		}
		output = file
		closeFn = func() { file.Close() }
	case debug:
		output = os.Stderr
	}

	return zerolog.New(output).With().Timestamp().Logger(), closeFn, nil
}

// app is what every subcommand needs: config, logger and registry.
type app struct {
	cfg      *config.Config
	logger   zerolog.Logger
	registry *tools.Registry
	close    func()
}

func (o *globalOptions) load() (*app, error) {
	logger, closeLog, err := initLogger(o.debug, o.logFile)
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadConfig(o.configPath)
	if err != nil {
		closeLog()
		return nil, err
	}
	registry := tools.NewRegistry(cfg.RegistryOptions(logger))
	for _, w := range cfg.Validate(registry) {
		logger.Warn().Str("field", w.Field).Msg(w.Message)
	}
	logger.Debug().
		Str("config", o.configPath).
		Str("application", cfg.Application).
		Int("tools", len(registry.Tools())).
		Msg("focusmcp ready")
	return &app{cfg: cfg, logger: logger, registry: registry, close: closeLog}, nil
}
