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

package format

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"

	"focusmcp/internal/omnifocus"
)

// URLScheme prefixes OmniFocus deep links. Projects are addressed through
// the task path as well.
const URLScheme = "omnifocus:///task/"

var (
	markdown    = goldmark.New()
	markdownEsc = strings.NewReplacer(`\`, `\\`, `[`, `\[`, `]`, `\]`, `*`, `\*`, `_`, `\_`, "`", "\\`", `<`, `\<`, `>`, `\>`)
)

// Link renders a deep link to id in the requested format.
func Link(name, id string, f omnifocus.LinkFormat) (string, error) {
	url := URLScheme + id
	md := fmt.Sprintf("[%s](%s)", markdownEsc.Replace(name), url)
	switch f {
	case omnifocus.LinkURL:
		return url, nil
	case omnifocus.LinkMarkdown:
		return md, nil
	case omnifocus.LinkHTML:
		var buf bytes.Buffer
		if err := markdown.Convert([]byte(md), &buf); err != nil {
			return "", err
		}
		html := strings.TrimSpace(buf.String())
		html = strings.TrimPrefix(html, "<p>")
		return strings.TrimSuffix(html, "</p>"), nil
	}
	return "", fmt.Errorf("unknown link format %q", f)
}

func linkText(kind, name, id, location string, format *string) (string, error) {
	f, err := omnifocus.ParseLinkFormat(omnifocus.Deref(format))
	if err != nil {
		return "", err
	}
	link, err := Link(name, id, f)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s Link Generated:\nName: %s\nLocation: %s\nURL: %s\n\n%s Format:\n%s",
		kind, name, location, URLScheme+id, strings.ToUpper(string(f)), link), nil
}

// ProjectLink renders a name, id, path record.
func ProjectLink(out string, a *omnifocus.ProjectLinkArgs) (string, error) {
	r := first(out)
	location := "Top level"
	if path := r.Field(2); path != "" {
		location = Path(path)
	}
	return linkText("Project", r.Field(0), r.Field(1), location, a.Format)
}

// TaskLink renders a name, id, project record.
func TaskLink(out string, a *omnifocus.TaskLinkArgs) (string, error) {
	r := first(out)
	location := "Inbox"
	if project := r.Field(2); project != "" {
		location = Name(project)
	}
	return linkText("Task", r.Field(0), r.Field(1), location, a.Format)
}
