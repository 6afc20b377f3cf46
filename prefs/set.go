// This file is part of fifopacer.
//
// fifopacer is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// fifopacer is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with fifopacer.  If not, see <https://www.gnu.org/licenses/>.

package prefs

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/jetsetilly/fifopacer/curated"
	"github.com/jetsetilly/fifopacer/logger"
)

// Sentinal error patterns.
const (
	DuplicateKey = "prefs: duplicate key: %s"
	LoadError    = "prefs: load: %v"
	ApplyError   = "prefs: %s: %v"
)

// Set is a collection of named preferences. Values are taken from a TOML
// file, if one exists, and then from the current command line group, which
// takes precedence.
//
// Preferences are never written back to disk.
type Set struct {
	path    string
	entries map[string]pref
}

// NewSet is the preferred method of initialisation for the Set type. The path
// argument can be empty, in which case only command line values are applied.
func NewSet(path string) *Set {
	return &Set{
		path:    path,
		entries: make(map[string]pref),
	}
}

func (set *Set) String() string {
	keys := set.Keys()
	s := strings.Builder{}
	for _, k := range keys {
		s.WriteString(fmt.Sprintf("%s :: %s\n", k, set.entries[k]))
	}
	return s.String()
}

// Add preference value to the set. Keys are dotted paths matching the table
// structure of the TOML file. For example, "window.width" is the width key in
// the [window] table.
func (set *Set) Add(key string, p pref) error {
	if _, ok := set.entries[key]; ok {
		return curated.Errorf(DuplicateKey, key)
	}
	set.entries[key] = p
	return nil
}

// Keys returns a sorted list of all keys in the set.
func (set *Set) Keys() []string {
	keys := make([]string, 0, len(set.entries))
	for k := range set.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Reset all preferences in the set to their zero value.
func (set *Set) Reset() error {
	for _, k := range set.Keys() {
		if err := set.entries[k].Reset(); err != nil {
			return curated.Errorf(ApplyError, k, err)
		}
	}
	return nil
}

// Load values from the TOML file and then the command line stack. A missing
// file is not an error. Keys in the file that are not in the set are logged
// and otherwise ignored.
func (set *Set) Load() error {
	if set.path != "" {
		var tree map[string]interface{}

		_, err := toml.DecodeFile(set.path, &tree)
		if err != nil {
			if !os.IsNotExist(err) {
				return curated.Errorf(LoadError, err)
			}
		} else {
			values := make(map[string]interface{})
			flatten("", tree, values)

			keys := make([]string, 0, len(values))
			for k := range values {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			for _, k := range keys {
				p, ok := set.entries[k]
				if !ok {
					logger.Logf(logger.Allow, "prefs", "unknown key in %s: %s", set.path, k)
					continue
				}
				if err := p.Set(values[k]); err != nil {
					return curated.Errorf(ApplyError, k, err)
				}
			}
		}
	}

	for _, k := range set.Keys() {
		if ok, v := GetCommandLinePref(k); ok {
			if err := set.entries[k].Set(v); err != nil {
				return curated.Errorf(ApplyError, k, err)
			}
		}
	}

	return nil
}

// flatten nested TOML tables into dotted keys.
func flatten(prefix string, tree map[string]interface{}, values map[string]interface{}) {
	for k, v := range tree {
		if prefix != "" {
			k = prefix + "." + k
		}
		if t, ok := v.(map[string]interface{}); ok {
			flatten(k, t, values)
			continue
		}
		values[k] = v
	}
}
