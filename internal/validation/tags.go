package validation

import (
	"slices"
	"strings"
)

// AddTag appends the trimmed text to tags unless it is empty or already
// present (exact, case-sensitive match). tags is never modified in place.
func AddTag(tags []string, text string) []string {
	out := append([]string{}, tags...)
	tag := SanitizeText(text)
	if tag == "" || slices.Contains(out, tag) {
		return out
	}
	return append(out, tag)
}

// RemoveTag returns tags without tag.
func RemoveTag(tags []string, tag string) []string {
	return slices.DeleteFunc(append([]string{}, tags...), func(t string) bool {
		return t == tag
	})
}

// ParseTags splits a comma separated list and adds each tag in order.
func ParseTags(s string) []string {
	tags := []string{}
	for _, part := range strings.Split(s, ",") {
		tags = AddTag(tags, part)
	}
	return tags
}

// SuggestTags returns the known tags containing input (case-insensitive) that
// are not already on the counter being edited. Empty input suggests nothing.
func SuggestTags(existing, current []string, input string) []string {
	needle := strings.ToLower(strings.TrimSpace(input))
	if needle == "" {
		return nil
	}

	var out []string
	for _, tag := range existing {
		if slices.Contains(current, tag) || slices.Contains(out, tag) {
			continue
		}
		if strings.Contains(strings.ToLower(tag), needle) {
			out = append(out, tag)
		}
	}
	return out
}
