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

// Package executor hands compiled scripts to osascript.
package executor

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	fileatomic "github.com/natefinch/atomic"
	"github.com/rs/zerolog"
	"golang.org/x/sys/execabs"

	apperrors "focusmcp/internal/errors"
	"focusmcp/internal/script"
)

// Runner executes one script and returns what it printed.
type Runner interface {
	Run(ctx context.Context, source string) (string, error)
}

// DefaultOSAScript is the interpreter used when none is configured.
const DefaultOSAScript = "osascript"

// OSAScript runs scripts through a temporary file and the osascript
// binary. A started script always runs to completion. Runs are serialized:
// at most one osascript process is in flight per OSAScript.
type OSAScript struct {
	// Binary defaults to DefaultOSAScript.
	Binary string
	// Dir holds the temporary script files; os.TempDir when empty.
	Dir string
	// Keep retains script files after successful runs.
	Keep   bool
	Logger zerolog.Logger

	mu sync.Mutex
}

var seq atomic.Uint64

// scriptFile returns a name unique within the process.
func (o *OSAScript) scriptFile() string {
	dir := o.Dir
	if dir == "" {
		dir = os.TempDir()
	}
	name := fmt.Sprintf("omnifocus-%d-%d.applescript", time.Now().UnixNano(), seq.Add(1))
	return filepath.Join(dir, name)
}

// Run writes source to a file and runs it. Non-empty stderr or a non-zero
// exit is a failure; the file of a failed run is kept and its path is
// carried by the error.
func (o *OSAScript) Run(ctx context.Context, source string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", apperrors.Wrap(apperrors.CodeRemoteExecution, "call canceled before the script started", err)
	}
	bin := o.Binary
	if bin == "" {
		bin = DefaultOSAScript
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	path := o.scriptFile()
	if err := fileatomic.WriteFile(path, strings.NewReader(source)); err != nil {
		return "", apperrors.Wrap(apperrors.CodeRemoteExecution, "failed to write script file", err)
	}

	var stdout, stderr bytes.Buffer
	cmd := execabs.Command(bin, path)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()
	o.Logger.Debug().
		Str("script", path).
		Dur("duration", time.Since(start)).
		Int("stdout_bytes", stdout.Len()).
		Int("stderr_bytes", stderr.Len()).
		Msg("osascript finished")

	diag := strings.TrimSpace(stderr.String())
	if runErr != nil || diag != "" {
		err := Classify(diag, runErr)
		if err.Code == apperrors.CodeRemoteExecution {
			err.ScriptPath = path
			o.Logger.Warn().Str("script", path).Str("diagnostic", diag).Msg("script failed, file kept")
			return "", err
		}
		o.cleanup(path)
		return "", err
	}
	o.cleanup(path)
	return strings.TrimRight(stdout.String(), "\r\n"), nil
}

func (o *OSAScript) cleanup(path string) {
	if o.Keep {
		return
	}
	if err := os.Remove(path); err != nil {
		o.Logger.Warn().Err(err).Str("script", path).Msg("failed to remove script file")
	}
}

var diagnosticPattern = regexp.MustCompile(`(?s)execution error: (.*) \((-?\d+)\)\s*$`)

// Classify turns an osascript diagnostic into a coded error. Error number
// script.ErrNotFound is a resolution failure; everything else is a remote
// execution failure.
func Classify(diag string, runErr error) *apperrors.Error {
	if m := diagnosticPattern.FindStringSubmatch(diag); m != nil {
		msg := m[1]
		num, _ := strconv.Atoi(m[2])
		if num == script.ErrNotFound {
			return &apperrors.Error{Code: apperrors.CodeResolution, Message: msg, Detail: diag}
		}
		return &apperrors.Error{Code: apperrors.CodeRemoteExecution, Message: msg + " (" + m[2] + ")", Detail: diag}
	}
	if diag == "" && runErr != nil {
		return apperrors.Wrap(apperrors.CodeRemoteExecution, "osascript failed", runErr)
	}
	return &apperrors.Error{Code: apperrors.CodeRemoteExecution, Message: diag, Detail: diag}
}
