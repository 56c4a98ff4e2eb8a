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

package omnifocus

import (
	"fmt"
	"strings"
	"time"
)

// ClearDate is the argument value that removes a date.
const ClearDate = "none"

// Date is a parsed date argument.
type Date struct {
	// Clear removes the date instead of setting it.
	Clear bool
	// Time is the wall clock time in the local zone.
	Time time.Time
}

var localLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// ParseDate parses a date argument. Date-only values are midnight local
// time; RFC 3339 values are converted to the local zone.
func ParseDate(s string) (Date, error) {
	v := strings.TrimSpace(s)
	if strings.EqualFold(v, ClearDate) {
		return Date{Clear: true}, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return Date{Time: t.In(time.Local)}, nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, v, time.Local); err == nil {
			return Date{Time: t}, nil
		}
	}
	return Date{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD, YYYY-MM-DD HH:MM or RFC 3339", s)
}

// SecondsOfDay is the time component as AppleScript expects it.
func (d Date) SecondsOfDay() int {
	return d.Time.Hour()*3600 + d.Time.Minute()*60 + d.Time.Second()
}
