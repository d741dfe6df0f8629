package validation

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Violations maps a field path (e.g. "saleNumber", "details[0].discount") to a
// human readable message. An empty map means the value is valid.
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Add records msg for field, replacing any earlier message for the same field.
func (v Violations) Add(field, msg string) {
	v[field] = msg
}

// Has reports whether field has a violation.
func (v Violations) Has(field string) bool {
	_, ok := v[field]
	return ok
}

// Fields returns the violated field paths in sorted order.
func (v Violations) Fields() []string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// Merge copies all violations of other into v, prefixing field paths with prefix.
func (v Violations) Merge(prefix string, other Violations) {
	for f, msg := range other {
		v[prefix+f] = msg
	}
}

// Basic validators

func Required(field, value string, v Violations) bool {
	if strings.TrimSpace(value) == "" {
		v.Add(field, field+" is required")
		return false
	}
	return true
}

func MinLength(field, value string, min int, v Violations) bool {
	if utf8.RuneCountInString(value) < min {
		v.Add(field, field+" must be at least "+strconv.Itoa(min)+" characters")
		return false
	}
	return true
}

func MaxLength(field, value string, max int, v Violations) bool {
	if utf8.RuneCountInString(value) > max {
		v.Add(field, field+" must not exceed "+strconv.Itoa(max)+" characters")
		return false
	}
	return true
}

func Matches(field, value string, re *regexp.Regexp, msg string, v Violations) bool {
	if !re.MatchString(value) {
		v.Add(field, msg)
		return false
	}
	return true
}
