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
	"errors"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// promptOutcome says what the session does with one read from the prompt.
type promptOutcome int

const (
	promptRun promptOutcome = iota
	promptSkip
	promptEnd
	promptFailed
)

// readOutcome maps a prompt read to an outcome. Ctrl-C drops the pending
// line; Ctrl-D ends the session only at an empty prompt.
func readOutcome(line string, err error) promptOutcome {
	switch {
	case err == nil:
		return promptRun
	case errors.Is(err, readline.ErrInterrupt):
		return promptSkip
	case errors.Is(err, io.EOF):
		if strings.TrimSpace(line) == "" {
			return promptEnd
		}
		return promptSkip
	}
	return promptFailed
}
