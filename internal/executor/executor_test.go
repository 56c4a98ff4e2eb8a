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

package executor

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	apperrors "focusmcp/internal/errors"
)

// fakeOSAScript writes a shell script standing in for osascript.
func fakeOSAScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "osascript")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatalf("write fake osascript: %v", err)
	}
	return path
}

func scriptFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	var names []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".applescript") {
			names = append(names, filepath.Join(dir, e.Name()))
		}
	}
	return names
}

func TestRunSuccessRemovesFile(t *testing.T) {
	dir := t.TempDir()
	r := &OSAScript{Binary: fakeOSAScript(t, `cat "$1"; echo`), Dir: dir, Logger: zerolog.Nop()}

	out, err := r.Run(context.Background(), "Buy milk\x1f42\x1e")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out != "Buy milk\x1f42\x1e" {
		t.Fatalf("output = %q", out)
	}
	if files := scriptFiles(t, dir); len(files) != 0 {
		t.Fatalf("script files left behind: %v", files)
	}
}

func TestRunKeepScripts(t *testing.T) {
	dir := t.TempDir()
	r := &OSAScript{Binary: fakeOSAScript(t, `true`), Dir: dir, Keep: true, Logger: zerolog.Nop()}
	if _, err := r.Run(context.Background(), "return 1"); err != nil {
		t.Fatalf("Run: %v", err)
	}
	files := scriptFiles(t, dir)
	if len(files) != 1 {
		t.Fatalf("expected one kept script, got %v", files)
	}
	if !strings.HasPrefix(filepath.Base(files[0]), "omnifocus-") {
		t.Fatalf("unexpected script name %s", files[0])
	}
}

func TestRunResolutionFailure(t *testing.T) {
	dir := t.TempDir()
	r := &OSAScript{
		Binary: fakeOSAScript(t, `echo "$1:120:180: execution error: Project not found: Garden (4040)" >&2; exit 1`),
		Dir:    dir,
		Logger: zerolog.Nop(),
	}
	_, err := r.Run(context.Background(), "script")
	if !apperrors.IsCode(err, apperrors.CodeResolution) {
		t.Fatalf("expected resolution error, got %v", err)
	}
	if err.Error() != "Project not found: Garden" {
		t.Fatalf("message = %q", err.Error())
	}
	if files := scriptFiles(t, dir); len(files) != 0 {
		t.Fatalf("resolution failures should not keep scripts: %v", files)
	}
}

func TestRunRemoteFailureKeepsScript(t *testing.T) {
	dir := t.TempDir()
	r := &OSAScript{
		Binary: fakeOSAScript(t, `echo "$1:10:20: execution error: OmniFocus got an error: Can't get document 1. (-1728)" >&2; exit 1`),
		Dir:    dir,
		Logger: zerolog.Nop(),
	}
	_, err := r.Run(context.Background(), "tell application \"OmniFocus\"")
	if !apperrors.IsCode(err, apperrors.CodeRemoteExecution) {
		t.Fatalf("expected remote execution error, got %v", err)
	}
	path := apperrors.ScriptPathOf(err)
	if path == "" {
		t.Fatalf("error does not carry the script path")
	}
	data, readErr := os.ReadFile(path)
	if readErr != nil {
		t.Fatalf("kept script unreadable: %v", readErr)
	}
	if string(data) != "tell application \"OmniFocus\"" {
		t.Fatalf("kept script content = %q", data)
	}
	if !strings.Contains(err.Error(), "(-1728)") {
		t.Fatalf("diagnostic number missing: %v", err)
	}
}

func TestRunStderrWithZeroExitFails(t *testing.T) {
	r := &OSAScript{Binary: fakeOSAScript(t, `echo "warning" >&2`), Dir: t.TempDir(), Logger: zerolog.Nop()}
	if _, err := r.Run(context.Background(), "x"); !apperrors.IsCode(err, apperrors.CodeRemoteExecution) {
		t.Fatalf("stderr output must fail the call, got %v", err)
	}
}

func TestRunCanceledBeforeStart(t *testing.T) {
	dir := t.TempDir()
	r := &OSAScript{Binary: fakeOSAScript(t, `true`), Dir: dir, Logger: zerolog.Nop()}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Run(ctx, "x"); err == nil {
		t.Fatalf("expected an error for a canceled context")
	}
	if files := scriptFiles(t, dir); len(files) != 0 {
		t.Fatalf("no script should be written: %v", files)
	}
}

func TestRunSerializesInvocations(t *testing.T) {
	dir := t.TempDir()
	busy := filepath.Join(t.TempDir(), "busy")
	overlaps := filepath.Join(t.TempDir(), "overlaps")
	body := `if [ -e "` + busy + `" ]; then echo x >> "` + overlaps + `"; fi
touch "` + busy + `"
sleep 0.2
rm -f "` + busy + `"`
	r := &OSAScript{Binary: fakeOSAScript(t, body), Dir: dir, Logger: zerolog.Nop()}

	var wg sync.WaitGroup
	errs := make(chan error, 4)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := r.Run(context.Background(), "return 1"); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("Run: %v", err)
	}
	if data, err := os.ReadFile(overlaps); err == nil {
		t.Fatalf("%d invocations overlapped another one", strings.Count(string(data), "x"))
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		diag string
		code apperrors.Code
		msg  string
	}{
		{"x.applescript:1:2: execution error: Tag not found: Errands (4040)", apperrors.CodeResolution, "Tag not found: Errands"},
		{"x.applescript:1:2: execution error: Access not allowed. (-1743)", apperrors.CodeRemoteExecution, "Access not allowed. (-1743)"},
		{"syntax error: Expected end of line", apperrors.CodeRemoteExecution, "syntax error: Expected end of line"},
		{"x.applescript:1:2: execution error: Task not found: Call\nMum (4040)", apperrors.CodeResolution, "Task not found: Call\nMum"},
	}
	for _, tt := range tests {
		err := Classify(tt.diag, nil)
		if err.Code != tt.code || err.Message != tt.msg {
			t.Fatalf("Classify(%q) = %s %q, want %s %q", tt.diag, err.Code, err.Message, tt.code, tt.msg)
		}
	}
}
