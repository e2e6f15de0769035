// Package marker locates heading and boundary lines in a plain-text corpus.
//
// Lines are compared after whitespace normalization. The match policy is an
// explicit parameter: PolicyContains is the policy of record and the most
// permissive one, so short or generic markers can match unrelated lines
// (a book title quoted inside an earlier verse, for example). Callers that
// need stricter behaviour select PolicyEqual or PolicyPrefix.
package marker

import (
	"fmt"
	"strings"

	"github.com/FocuswithJustin/kjvparse/core/errors"
)

// Policy decides whether a normalized line matches a marker.
type Policy int

const (
	// PolicyContains matches when the normalized line contains the marker.
	PolicyContains Policy = iota
	// PolicyEqual matches when the normalized line equals the marker.
	PolicyEqual
	// PolicyPrefix matches when the normalized line starts with the marker.
	PolicyPrefix
)

var policyNames = map[Policy]string{
	PolicyContains: "contains",
	PolicyEqual:    "equal",
	PolicyPrefix:   "prefix",
}

// String returns the configuration name of the policy.
func (p Policy) String() string {
	if name, ok := policyNames[p]; ok {
		return name
	}
	return fmt.Sprintf("policy(%d)", int(p))
}

// ParsePolicy converts a configuration name into a Policy.
func ParsePolicy(name string) (Policy, error) {
	for p, n := range policyNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return p, nil
		}
	}
	return PolicyContains, errors.NewValidation("match policy", fmt.Sprintf("unknown policy %q", name))
}

// Match reports whether normalized satisfies the policy for marker.
func (p Policy) Match(normalized, marker string) bool {
	switch p {
	case PolicyEqual:
		return normalized == marker
	case PolicyPrefix:
		return strings.HasPrefix(normalized, marker)
	default:
		return strings.Contains(normalized, marker)
	}
}

// Normalize trims a line and squeezes interior whitespace runs to a single space.
func Normalize(line string) string {
	return strings.Join(strings.Fields(line), " ")
}

// Locator finds markers using a fixed match policy.
type Locator struct {
	Policy Policy
}

// New returns a Locator for the given policy.
func New(policy Policy) *Locator {
	return &Locator{Policy: policy}
}

// Locate returns the index of the first line at or after start whose
// normalized form matches the normalized marker. A start outside the
// sequence, or no match, yields a *errors.LookupError carrying the marker.
func (l *Locator) Locate(marker string, lines []string, start int) (int, error) {
	if start < 0 || start >= len(lines) {
		return -1, errors.NewLookup(marker, start)
	}
	want := Normalize(marker)
	for idx := start; idx < len(lines); idx++ {
		if l.Policy.Match(Normalize(lines[idx]), want) {
			return idx, nil
		}
	}
	return -1, errors.NewLookup(marker, start)
}

var defaultLocator = New(PolicyContains)

// Locate searches with PolicyContains.
func Locate(marker string, lines []string, start int) (int, error) {
	return defaultLocator.Locate(marker, lines, start)
}
