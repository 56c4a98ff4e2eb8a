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

package script

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`plain`, `plain`},
		{`say "hi"`, `say \"hi\"`},
		{`C:\path`, `C:\\path`},
		{`end\"`, `end\\\"`},
		{`\"; do shell script "rm`, `\\\"; do shell script \"rm`},
	}
	for _, tt := range tests {
		if got := Escape(tt.in); got != tt.want {
			t.Errorf("Escape(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// unquote reads an AppleScript string literal the way the runtime does and
// reports the decoded value and the index just past the closing quote.
func unquote(t *testing.T, lit string) (string, int) {
	t.Helper()
	if !strings.HasPrefix(lit, `"`) {
		t.Fatalf("literal %q does not start with a quote", lit)
	}
	var b strings.Builder
	for i := 1; i < len(lit); i++ {
		switch lit[i] {
		case '\\':
			i++
			b.WriteByte(lit[i])
		case '"':
			return b.String(), i + 1
		default:
			b.WriteByte(lit[i])
		}
	}
	t.Fatalf("unterminated literal %q", lit)
	return "", 0
}

func TestStrIsSingleLiteral(t *testing.T) {
	names := []string{`Quote " inside`, `back\slash`, `both \" mixed`, `trailing\`, `"`}
	for _, name := range names {
		lit := string(Str(name))
		got, end := unquote(t, lit)
		if end != len(lit) {
			t.Fatalf("literal for %q terminated early at %d of %d", name, end, len(lit))
		}
		if got != name {
			t.Fatalf("literal for %q decoded to %q", name, got)
		}
	}
}

func TestRenderStatements(t *testing.T) {
	got := Render(0,
		DeclareScope("targetProject"),
		Try{Body: []Stmt{Set{Target: "targetProject", Value: Raw(`first project whose name is "Home"`)}}},
		If{
			Cond: IsMissing("targetProject"),
			Then: []Stmt{
				Repeat{Var: "fld1", In: "every folder", Body: []Stmt{
					ExitRepeatIf{Cond: NotMissing("targetProject")},
				}},
			},
		},
		AssertFound("targetProject", "Project", "Home"),
		AssignField("targetProject", "flagged", Bool(true)),
		Return{Value: Record(AsText(Of("name", "targetProject")), AsText(Of("id", "targetProject")))},
	)

	want := strings.Join([]string{
		`set targetProject to missing value`,
		`try`,
		"\t" + `set targetProject to first project whose name is "Home"`,
		`end try`,
		`if targetProject is missing value then`,
		"\trepeat with fld1 in every folder",
		"\t\tif targetProject is not missing value then exit repeat",
		"\tend repeat",
		`end if`,
		`if targetProject is missing value then`,
		"\t" + `error "Project not found: Home" number 4040`,
		`end if`,
		`set flagged of targetProject to true`,
		`return my textOf(name of targetProject) & fieldSep & my textOf(id of targetProject) & recordSep`,
		``,
	}, "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("rendered script mismatch (-want +got):\n%s", diff)
	}
}

func TestTryWithHandler(t *testing.T) {
	got := Render(0, Try{
		Body:    []Stmt{Command{Text: "delete targetTask"}},
		OnError: []Stmt{Raise{Message: Ident("errMsg")}},
		ErrVar:  "errMsg",
	})
	want := "try\n\tdelete targetTask\non error errMsg\n\terror errMsg\nend try\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestProgramString(t *testing.T) {
	prog := New(Return{Value: Str("ok")})
	src := prog.String()
	for _, fragment := range []string{
		"on textOf(v)",
		"set fieldSep to character id 31",
		`tell application "OmniFocus"`,
		"\ttell front document",
		"\t\t" + `return "ok"`,
		"\tend tell\nend tell\n",
	} {
		if !strings.Contains(src, fragment) {
			t.Fatalf("program missing %q:\n%s", fragment, src)
		}
	}

	win := NewWindow(Return{Value: Raw("perspective name")})
	win.Application = "OmniFocus 3"
	src = win.String()
	if !strings.Contains(src, `tell application "OmniFocus 3"`) || !strings.Contains(src, "tell front window") {
		t.Fatalf("window program has wrong target:\n%s", src)
	}
}

func TestConditions(t *testing.T) {
	if got := And("a", "", "b"); got != "(a) and (b)" {
		t.Fatalf("And = %q", got)
	}
	if got := And("", "only"); got != "only" {
		t.Fatalf("And with one condition = %q", got)
	}
	if got := Or("x", "y"); got != "(x) or (y)" {
		t.Fatalf("Or = %q", got)
	}
	if got := Path(Str("A"), Str("B")); got != `"A" & pathSep & "B"` {
		t.Fatalf("Path = %q", got)
	}
	if got := Path(); got != `""` {
		t.Fatalf("empty Path = %q", got)
	}
}
