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

package paths

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidatePathString(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		maxLen  int
		wantErr string
	}{
		{"ok", "/tmp/scripts", 0, ""},
		{"empty", "  ", 0, "cannot be empty"},
		{"null byte", "bad\x00path", 0, "null byte"},
		{"invalid utf8", "bad\xffpath", 0, "UTF-8"},
		{"combining mark", "cafe\u0301", 0, "combining mark"},
		{"too long", "/" + strings.Repeat("a", 20), 10, "maximum length"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePathString(tt.path, tt.maxLen)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestResolveScriptDir(t *testing.T) {
	base := t.TempDir()
	resolved, err := ResolveScriptDir(base)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want, err := filepath.EvalSymlinks(base)
	if err != nil {
		t.Fatalf("failed to resolve base dir: %v", err)
	}
	if resolved != want {
		t.Fatalf("ResolveScriptDir = %s, want %s", resolved, want)
	}
	entries, err := os.ReadDir(resolved)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("probe file left behind: %v", entries)
	}
}

func TestResolveScriptDirRejectsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := ResolveScriptDir(file); err == nil || !strings.Contains(err.Error(), "not a directory") {
		t.Fatalf("expected not a directory error, got %v", err)
	}
	if _, err := ResolveScriptDir(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}

func TestResolveScriptDirDefault(t *testing.T) {
	if _, err := ResolveScriptDir(""); err != nil {
		t.Fatalf("system temp dir should resolve: %v", err)
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	got, err := ExpandHome("~/scripts")
	if err != nil {
		t.Fatalf("ExpandHome: %v", err)
	}
	if got != filepath.Join(home, "scripts") {
		t.Fatalf("ExpandHome = %s", got)
	}
	if got, _ := ExpandHome("/abs"); got != "/abs" {
		t.Fatalf("absolute paths must be unchanged, got %s", got)
	}
}

func TestHasPathPrefix(t *testing.T) {
	if !HasPathPrefix("/a/b/c", "/a/b") || HasPathPrefix("/a/bc", "/a/b") || HasPathPrefix("/a", "/a/b") {
		t.Fatalf("HasPathPrefix misclassifies paths")
	}
}
