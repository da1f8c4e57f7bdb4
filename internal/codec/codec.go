// Package codec converts between the on-disk INI-style text format and the
// in-memory section/key/value model shared by issue records and index shards.
package codec

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Section maps keys to parsed values: string, bool, float64, or []any for
// aggregating keys (key name ends in "[]", suffix retained).
type Section map[string]any

// Sections maps section names to their key/value maps.
type Sections map[string]Section

var numberPattern = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)

// AggregatingKey reports whether key collects repeated values into a list.
func AggregatingKey(key string) bool {
	return strings.HasSuffix(key, "[]")
}

// Parse reads INI-style text into sections. Content before the first section
// header and #-comment lines are discarded. Duplicate section headers merge
// into one section; duplicate non-aggregating keys keep the last value.
func Parse(text string) Sections {
	sections := make(Sections)

	var current Section
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") && len(trimmed) > 2 {
			name := trimmed[1 : len(trimmed)-1]
			if existing, ok := sections[name]; ok {
				current = existing
			} else {
				current = make(Section)
				sections[name] = current
			}
			continue
		}

		if current == nil {
			continue // pre-header content
		}

		eq := strings.Index(trimmed, "=")
		if eq < 0 {
			continue
		}

		key := strings.TrimSpace(trimmed[:eq])
		if key == "" {
			continue
		}

		value := coerce(extractValue(trimmed[eq+1:]))

		if AggregatingKey(key) {
			list, _ := current[key].([]any)
			current[key] = append(list, value)
			continue
		}
		current[key] = value
	}

	return sections
}

// extractValue pulls the raw string value out of the text after "=".
// Unquoted values keep only the first whitespace-delimited token; anything
// after it is an implicit comment. Quoted values keep internal whitespace
// verbatim with no escape processing.
func extractValue(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, `"`) {
		rest := raw[1:]
		if end := strings.Index(rest, `"`); end >= 0 {
			return rest[:end]
		}
		return rest
	}

	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// coerce applies unconditional type coercion after extraction, including to
// quoted values: exact true/false literals become bool, digit strings become
// numbers, everything else stays a string.
func coerce(value string) any {
	switch value {
	case "true":
		return true
	case "false":
		return false
	}
	if numberPattern.MatchString(value) {
		n, err := strconv.ParseFloat(value, 64)
		if err == nil {
			return n
		}
	}
	return value
}

// Serialize writes sections back to text. Sections named in order emit first
// in that order, the remainder alphabetically; keys within a section emit
// alphabetically, one line per element for aggregating keys. Output ends
// with a trailing newline; nil or empty input yields the empty string.
//
// The round trip is deliberately lossy at the edges: string values that look
// like booleans or numbers re-coerce on the next Parse, and embedded double
// quotes are unsupported.
func Serialize(sections Sections, order []string) string {
	if len(sections) == 0 {
		return ""
	}

	names := make([]string, 0, len(sections))
	emitted := make(map[string]bool, len(sections))
	for _, name := range order {
		if _, ok := sections[name]; ok && !emitted[name] {
			names = append(names, name)
			emitted[name] = true
		}
	}
	rest := make([]string, 0, len(sections))
	for name := range sections {
		if !emitted[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	names = append(names, rest...)

	var b strings.Builder
	for i, name := range names {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("[" + name + "]\n")
		writeSection(&b, sections[name])
	}
	return b.String()
}

func writeSection(b *strings.Builder, section Section) {
	keys := make([]string, 0, len(section))
	for key := range section {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if AggregatingKey(key) {
			list, _ := section[key].([]any)
			for _, item := range list {
				b.WriteString(key + " = " + formatValue(item) + "\n")
			}
			continue
		}
		b.WriteString(key + " = " + formatValue(section[key]) + "\n")
	}
}

func formatValue(value any) string {
	switch v := value.(type) {
	case bool:
		if v {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case string:
		if v == "" || strings.ContainsAny(v, " \t") {
			return `"` + v + `"`
		}
		return v
	default:
		return ""
	}
}
