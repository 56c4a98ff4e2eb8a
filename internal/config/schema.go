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

package config

import (
	"encoding/json"
	"fmt"
	"sort"
)

// SchemaJSON returns the JSON schema for focusmcp.json.
func SchemaJSON() string {
	return configSchemaJSON
}

// ExampleConfigJSON returns an example config with comments.
func ExampleConfigJSON() string {
	return exampleConfigJSON
}

func normalizeConfigJSON(data []byte) ([]byte, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if err := validateConfigMap(raw); err != nil {
		return nil, err
	}
	return json.Marshal(raw)
}

type fieldCheck func(any) error

func validateConfigMap(raw map[string]any) error {
	allowed := map[string]fieldCheck{
		"application":    func(v any) error { return validateString(v, "application") },
		"osascript_path": func(v any) error { return validateString(v, "osascript_path") },
		"script_dir":     func(v any) error { return validateString(v, "script_dir") },
		"keep_scripts":   func(v any) error { return validateBool(v, "keep_scripts") },
		"tools":          func(v any) error { return validateObject(v, "tools.", toolsFields) },
		"output":         func(v any) error { return validateObject(v, "output.", outputFields) },
		"http":           func(v any) error { return validateObject(v, "http.", httpFields) },
	}
	return validateSection(raw, allowed, "")
}

func toolsFields(prefix string) map[string]fieldCheck {
	return map[string]fieldCheck{
		"allow": func(v any) error { return validateStringArray(v, prefix+"allow") },
		"deny":  func(v any) error { return validateStringArray(v, prefix+"deny") },
	}
}

func outputFields(prefix string) map[string]fieldCheck {
	return map[string]fieldCheck{
		"max_chars":     func(v any) error { return validateNumber(v, prefix+"max_chars") },
		"strip_ansi":    func(v any) error { return validateBool(v, prefix+"strip_ansi") },
		"strip_control": func(v any) error { return validateBool(v, prefix+"strip_control") },
	}
}

func httpFields(prefix string) map[string]fieldCheck {
	return map[string]fieldCheck{
		"addr":     func(v any) error { return validateString(v, prefix+"addr") },
		"endpoint": func(v any) error { return validateString(v, prefix+"endpoint") },
	}
}

func validateObject(value any, prefix string, fields func(string) map[string]fieldCheck) error {
	section, ok := value.(map[string]any)
	if !ok {
		return fmt.Errorf("%s must be an object", prefix[:len(prefix)-1])
	}
	return validateSection(section, fields(prefix), prefix)
}

func validateSection(section map[string]any, allowed map[string]fieldCheck, prefix string) error {
	keys := make([]string, 0, len(section))
	for key := range section {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		check, ok := allowed[key]
		if !ok {
			return fmt.Errorf("unknown configuration field %q", prefix+key)
		}
		if err := check(section[key]); err != nil {
			return err
		}
	}
	return nil
}

func validateString(value any, name string) error {
	if _, ok := value.(string); !ok {
		return fmt.Errorf("%s must be a string", name)
	}
	return nil
}

func validateNumber(value any, name string) error {
	if _, ok := value.(float64); !ok {
		return fmt.Errorf("%s must be a number", name)
	}
	return nil
}

func validateBool(value any, name string) error {
	if _, ok := value.(bool); !ok {
		return fmt.Errorf("%s must be a boolean", name)
	}
	return nil
}

func validateStringArray(value any, name string) error {
	list, ok := value.([]any)
	if !ok {
		return fmt.Errorf("%s must be an array of strings", name)
	}
	for _, item := range list {
		if _, ok := item.(string); !ok {
			return fmt.Errorf("%s must be an array of strings", name)
		}
	}
	return nil
}

const configSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "focusmcp config",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "application": { "type": "string" },
    "osascript_path": { "type": "string" },
    "script_dir": { "type": "string" },
    "keep_scripts": { "type": "boolean" },
    "tools": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "allow": { "type": "array", "items": { "type": "string" } },
        "deny": { "type": "array", "items": { "type": "string" } }
      }
    },
    "output": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "max_chars": { "type": "number" },
        "strip_ansi": { "type": "boolean" },
        "strip_control": { "type": "boolean" }
      }
    },
    "http": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "addr": { "type": "string" },
        "endpoint": { "type": "string" }
      }
    }
  }
}`

const exampleConfigJSON = `{
  // Scripted application name, "OmniFocus" unless you run a renamed copy.
  "application": "OmniFocus",
  "osascript_path": "osascript",
  // Empty means the system temporary directory.
  "script_dir": "",
  "keep_scripts": false,
  "tools": {
    // An empty allow list allows every tool; deny wins.
    "allow": [],
    "deny": ["delete_task", "delete_project"],
  },
  "output": {
    "max_chars": 0,
    "strip_ansi": true,
    "strip_control": true,
  },
  "http": {
    "addr": ":8080",
    "endpoint": "/mcp",
  },
}`
