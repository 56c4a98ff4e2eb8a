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

package tools

import (
	"encoding/json"
	"fmt"
	"strings"

	apperrors "focusmcp/internal/errors"
)

// ValidateToolCall checks a JSON encoded call without running it. It
// returns nil when the call would compile.
func (r *Registry) ValidateToolCall(name, argsJSON string) *ToolResult {
	args, err := parseToolArgs(argsJSON)
	if err != nil {
		return invalidToolResult(name, apperrors.Wrap(apperrors.CodeValidation, "invalid arguments",
			fmt.Errorf("%w: %v", ErrInvalidArguments, err)))
	}
	if _, err := r.Compile(name, args); err != nil {
		return invalidToolResult(name, err)
	}
	return nil
}

func invalidToolResult(name string, err error) *ToolResult {
	return &ToolResult{
		Function: name,
		Result:   fmt.Sprintf("Error: %v", err),
		Error:    err,
		IsError:  true,
	}
}

// parseToolArgs decodes a JSON object of arguments. Blank input is an
// empty object.
func parseToolArgs(argsJSON string) (map[string]any, error) {
	args := map[string]any{}
	if strings.TrimSpace(argsJSON) == "" {
		return args, nil
	}
	if err := json.Unmarshal([]byte(argsJSON), &args); err != nil {
		return nil, err
	}
	return args, nil
}
