// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"strings"

	"github.com/goccy/go-json"
)

// genreObject is one element of a list-of-objects genre encoding,
// e.g. [{"id": 18, "name": "Drama"}].
type genreObject struct {
	Name string `json:"name"`
}

// NormalizeGenres converts a raw genre field into an ordered, de-duplicated
// list of names. Supported encodings:
//
//   - JSON list of objects:     [{"id": 18, "name": "Drama"}]
//   - Python-literal list:      [{'id': 18, 'name': 'Drama'}]
//   - JSON list of strings:     ["Drama", "Crime"]
//   - Pipe or comma delimited:  Drama|Crime, Drama, Crime
func NormalizeGenres(raw string) []string {
	raw = strings.TrimSpace(raw)
	if isMissing(raw) {
		return nil
	}

	if strings.HasPrefix(raw, "[") {
		if names, ok := decodeGenreList(raw); ok {
			return dedupeNames(names)
		}
		if names, ok := decodeGenreList(pyLiteralToJSON(raw)); ok {
			return dedupeNames(names)
		}
		raw = strings.Trim(raw, "[]")
	}

	return dedupeNames(strings.FieldsFunc(raw, func(r rune) bool {
		return r == '|' || r == ','
	}))
}

// decodeGenreList decodes either a list of {name} objects or a list of strings.
func decodeGenreList(s string) ([]string, bool) {
	var objects []genreObject
	if err := json.Unmarshal([]byte(s), &objects); err == nil {
		names := make([]string, 0, len(objects))
		for _, o := range objects {
			names = append(names, o.Name)
		}
		return names, true
	}

	var names []string
	if err := json.Unmarshal([]byte(s), &names); err == nil {
		return names, true
	}
	return nil, false
}

func dedupeNames(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// pyLiteralToJSON rewrites a Python literal (single-quoted strings, None,
// True, False) into JSON. Double quotes inside single-quoted strings are
// escaped and \' escapes are unwrapped.
func pyLiteralToJSON(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	var quote rune // active string delimiter, 0 outside strings
	escaped := false
	runes := []rune(s)

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if quote != 0 {
			switch {
			case escaped:
				escaped = false
				if r == '\'' {
					b.WriteRune('\'')
				} else {
					b.WriteRune('\\')
					b.WriteRune(r)
				}
			case r == '\\':
				escaped = true
			case r == quote:
				quote = 0
				b.WriteRune('"')
			case r == '"':
				b.WriteString(`\"`)
			default:
				b.WriteRune(r)
			}
			continue
		}

		switch {
		case r == '\'' || r == '"':
			quote = r
			b.WriteRune('"')
		case hasWordAt(runes, i, "None"):
			b.WriteString("null")
			i += len("None") - 1
		case hasWordAt(runes, i, "True"):
			b.WriteString("true")
			i += len("True") - 1
		case hasWordAt(runes, i, "False"):
			b.WriteString("false")
			i += len("False") - 1
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func hasWordAt(runes []rune, i int, word string) bool {
	w := []rune(word)
	if i+len(w) > len(runes) {
		return false
	}
	for k, r := range w {
		if runes[i+k] != r {
			return false
		}
	}
	return true
}
