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

// Package config loads the focusmcp configuration from a JSONC file, an
// optional .env file and the environment.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/tailscale/hujson"

	apperrors "focusmcp/internal/errors"
	"focusmcp/internal/executor"
	"focusmcp/internal/format"
	"focusmcp/internal/paths"
	"focusmcp/internal/script"
	"focusmcp/internal/tools"
)

// DefaultPath is the config file read when none is given.
const DefaultPath = "focusmcp.json"

// Environment variables that override the file.
const (
	EnvApplication = "FOCUSMCP_APPLICATION"
	EnvOSAScript   = "FOCUSMCP_OSASCRIPT"
	EnvScriptDir   = "FOCUSMCP_SCRIPT_DIR"
	EnvKeepScripts = "FOCUSMCP_KEEP_SCRIPTS"
	EnvHTTPAddr    = "FOCUSMCP_HTTP_ADDR"
)

// Config represents the application configuration
type Config struct {
	Application   string         `json:"application,omitempty"`
	OSAScriptPath string         `json:"osascript_path,omitempty"`
	ScriptDir     string         `json:"script_dir,omitempty"`
	KeepScripts   bool           `json:"keep_scripts,omitempty"`
	Tools         ToolSettings   `json:"tools,omitempty"`
	Output        OutputSettings `json:"output,omitempty"`
	HTTP          HTTPSettings   `json:"http,omitempty"`
}

// ToolSettings describes tool allow/deny lists.
type ToolSettings struct {
	Allow []string `json:"allow,omitempty"`
	Deny  []string `json:"deny,omitempty"`
}

// OutputSettings configures sanitization of tool results.
type OutputSettings struct {
	MaxChars     int  `json:"max_chars,omitempty"`
	StripANSI    bool `json:"strip_ansi,omitempty"`
	StripControl bool `json:"strip_control,omitempty"`
}

// HTTPSettings configures the streamable HTTP transport.
type HTTPSettings struct {
	Addr     string `json:"addr,omitempty"`
	Endpoint string `json:"endpoint,omitempty"`
}

const (
	defaultHTTPAddr     = ":8080"
	defaultHTTPEndpoint = "/mcp"
)

// DefaultConfig returns a config with default values
func DefaultConfig() *Config {
	filter := format.DefaultFilter()
	return &Config{
		Application:   script.DefaultApplication,
		OSAScriptPath: executor.DefaultOSAScript,
		Output: OutputSettings{
			MaxChars:     filter.MaxChars,
			StripANSI:    filter.StripANSI,
			StripControl: filter.StripControl,
		},
		HTTP: HTTPSettings{
			Addr:     defaultHTTPAddr,
			Endpoint: defaultHTTPEndpoint,
		},
	}
}

// LoadConfig loads configuration from a JSONC file, applies env overrides,
// and validates the script directory. A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, apperrors.Wrap(apperrors.CodeConfig, "error loading .env file", err)
	}

	config := DefaultConfig()
	if path == "" {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := parseConfig(data, config); err != nil {
			return nil, apperrors.Wrap(apperrors.CodeConfig, "invalid config "+path, err)
		}
	case !os.IsNotExist(err):
		return nil, apperrors.Wrap(apperrors.CodeConfig, "failed to read config", err)
	}

	if err := applyEnv(config); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeConfig, "invalid environment override", err)
	}

	// Set defaults for any missing values
	if config.Application == "" {
		config.Application = script.DefaultApplication
	}
	if config.OSAScriptPath == "" {
		config.OSAScriptPath = executor.DefaultOSAScript
	}
	if config.HTTP.Addr == "" {
		config.HTTP.Addr = defaultHTTPAddr
	}
	if config.HTTP.Endpoint == "" {
		config.HTTP.Endpoint = defaultHTTPEndpoint
	}

	if config.ScriptDir != "" {
		dir, err := paths.ResolveScriptDir(config.ScriptDir)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.CodeConfig, "invalid script_dir", err)
		}
		config.ScriptDir = dir
	}
	return config, nil
}

func parseConfig(data []byte, config *Config) error {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return fmt.Errorf("invalid JSONC: %w", err)
	}
	normalized, err := normalizeConfigJSON(standardized)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(normalized, config); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}

func applyEnv(config *Config) error {
	if val := os.Getenv(EnvApplication); val != "" {
		config.Application = val
	}
	if val := os.Getenv(EnvOSAScript); val != "" {
		config.OSAScriptPath = val
	}
	if val := os.Getenv(EnvScriptDir); val != "" {
		config.ScriptDir = val
	}
	if val := os.Getenv(EnvKeepScripts); val != "" {
		keep, err := strconv.ParseBool(strings.TrimSpace(val))
		if err != nil {
			return fmt.Errorf("%s must be a boolean: %w", EnvKeepScripts, err)
		}
		config.KeepScripts = keep
	}
	if val := os.Getenv(EnvHTTPAddr); val != "" {
		config.HTTP.Addr = val
	}
	return nil
}

// ToolPolicy converts config settings into a tool policy.
func (c *Config) ToolPolicy() tools.Policy {
	return tools.Policy{
		Allow: append([]string(nil), c.Tools.Allow...),
		Deny:  append([]string(nil), c.Tools.Deny...),
	}
}

// OutputFilter returns the result filter for the registry.
func (c *Config) OutputFilter() format.Filter {
	return format.Filter{
		MaxChars:     c.Output.MaxChars,
		StripANSI:    c.Output.StripANSI,
		StripControl: c.Output.StripControl,
	}
}

// Runner returns the osascript runner described by the config.
func (c *Config) Runner(logger zerolog.Logger) *executor.OSAScript {
	return &executor.OSAScript{
		Binary: c.OSAScriptPath,
		Dir:    c.ScriptDir,
		Keep:   c.KeepScripts,
		Logger: logger,
	}
}

// RegistryOptions assembles the registry options from the config.
func (c *Config) RegistryOptions(logger zerolog.Logger) tools.Options {
	return tools.Options{
		Runner:      c.Runner(logger),
		Application: c.Application,
		Policy:      c.ToolPolicy(),
		Filter:      c.OutputFilter(),
		Logger:      logger,
	}
}

// ValidationWarning represents a non-fatal configuration issue
type ValidationWarning struct {
	Field   string
	Message string
}

// Validate checks the configuration for common issues and returns warnings
func (c *Config) Validate(registry *tools.Registry) []ValidationWarning {
	var warnings []ValidationWarning

	if c.Output.MaxChars < 0 {
		warnings = append(warnings, ValidationWarning{
			Field:   "output.max_chars",
			Message: fmt.Sprintf("max_chars %d is negative, output will not be truncated", c.Output.MaxChars),
		})
	}
	if !strings.HasPrefix(c.HTTP.Endpoint, "/") {
		warnings = append(warnings, ValidationWarning{
			Field:   "http.endpoint",
			Message: fmt.Sprintf("endpoint %q should start with /", c.HTTP.Endpoint),
		})
	}

	if registry != nil {
		registered := make(map[string]bool)
		for _, name := range registry.GetToolNames() {
			registered[name] = true
		}
		for _, name := range c.Tools.Allow {
			if !registered[name] {
				warnings = append(warnings, ValidationWarning{
					Field:   "tools.allow",
					Message: fmt.Sprintf("tool %q in allow list is not registered", name),
				})
			}
		}
		for _, name := range c.Tools.Deny {
			if !registered[name] {
				warnings = append(warnings, ValidationWarning{
					Field:   "tools.deny",
					Message: fmt.Sprintf("tool %q in deny list is not registered", name),
				})
			}
		}
	}

	return warnings
}
