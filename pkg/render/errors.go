package render

import (
	"sort"
	"strings"
)

// ErrorMapping splits a validation payload into field-level and form-level
// messages keyed by form field name.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// Len reports the number of messages in the mapping.
func (m ErrorMapping) Len() int {
	n := len(m.Form)
	for _, messages := range m.Fields {
		n += len(messages)
	}
	return n
}

// MergeFormErrors appends extras to existing, trimming blanks and dropping
// duplicates while keeping the first occurrence.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapErrorPayload assigns payload messages to the given form fields. Keys may
// be plain names or the location of a request parameter ("query.country",
// "/body/state", "form[postal-code]"): the last segment names the field.
// Messages whose key matches no field become form-level errors, ordered by
// key.
func MapErrorPayload(fields []string, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{Fields: map[string][]string{}}

	known := make(map[string]string, len(fields))
	for _, field := range fields {
		if name := strings.TrimSpace(field); name != "" {
			known[fieldKey(name)] = name
		}
	}

	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		messages := normalizeMessages(payload[key])
		if len(messages) == 0 {
			continue
		}
		field, ok := known[fieldKey(lastSegment(key))]
		if !ok || isFormLevelKey(key) {
			mapping.Form = append(mapping.Form, messages...)
			continue
		}
		mapping.Fields[field] = normalizeMessages(append(mapping.Fields[field], messages...))
	}

	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

func normalizeMessages(messages []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, dup := seen[trimmed]; dup {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}

func lastSegment(key string) string {
	parts := strings.FieldsFunc(strings.TrimSpace(key), func(r rune) bool {
		switch r {
		case '.', '/', '[', ']', '#', '$':
			return true
		}
		return false
	})
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}

// fieldKey folds case and treats dashes like underscores.
func fieldKey(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
}

func isFormLevelKey(key string) bool {
	switch fieldKey(key) {
	case "", "form", "__all__", "non_field_errors":
		return true
	}
	return false
}
