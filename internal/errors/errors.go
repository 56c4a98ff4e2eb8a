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

package errors

import (
	stderrors "errors"
	"fmt"
)

// Code identifies a class of error for programmatic handling.
type Code string

const (
	// CodeValidation marks bad or missing tool arguments. No script was emitted.
	CodeValidation Code = "validation"
	// CodeResolution marks a named entity that was not found after the full search order.
	CodeResolution Code = "resolution"
	// CodeRemoteExecution marks a diagnostic reported by the scripting runtime.
	CodeRemoteExecution Code = "remote_execution"
	CodePermission      Code = "permission"
	CodeConfig          Code = "config"
	CodeNotFound        Code = "not_found"
)

// Error wraps an underlying error with a code and message.
type Error struct {
	Code    Code
	Message string
	// Detail carries the raw diagnostic text, when there is one.
	Detail string
	// ScriptPath is the retained script file of a failed execution.
	ScriptPath string
	Err        error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Message == "" {
		if e.Err != nil {
			return e.Err.Error()
		}
		return string(e.Code)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new coded error with a message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates a new coded error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a new coded error that wraps an underlying error.
func Wrap(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// CodeOf returns the code of the first coded error in the chain, or "".
func CodeOf(err error) Code {
	var coded *Error
	if stderrors.As(err, &coded) {
		return coded.Code
	}
	return ""
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code Code) bool {
	return err != nil && CodeOf(err) == code
}

// ScriptPathOf returns the retained script path carried by err, if any.
func ScriptPathOf(err error) string {
	var coded *Error
	if stderrors.As(err, &coded) {
		return coded.ScriptPath
	}
	return ""
}
