package content

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/standardbeagle/codescan/internal/scanerrors"
)

// Matcher decides whether a single line of source text is a match.
type Matcher interface {
	Match(line string) bool
}

type literalMatcher struct{ needle string }

func (m literalMatcher) Match(line string) bool {
	return strings.Contains(strings.ToLower(line), m.needle)
}

type multiTermMatcher struct{ terms []string }

func (m multiTermMatcher) Match(line string) bool {
	lower := strings.ToLower(line)
	for _, t := range m.terms {
		if strings.Contains(lower, t) {
			return true
		}
	}
	return false
}

type regexMatcher struct{ re *regexp.Regexp }

func (m regexMatcher) Match(line string) bool {
	return m.re.MatchString(line)
}

// NewMatcher builds the matcher for pattern: regex (when useRegex is
// set), multi-term (pattern contains `|` and regex was not requested),
// or a plain case-insensitive literal substring match otherwise. A
// regex compile failure is a user error.
func NewMatcher(pattern string, useRegex bool) (Matcher, error) {
	if useRegex {
		re, err := regexp.Compile("(?i)" + pattern)
		if err != nil {
			return nil, scanerrors.NewConfigError(scanerrors.KindInvalid, fmt.Sprintf("invalid regex pattern: %v", err), err)
		}
		return regexMatcher{re: re}, nil
	}

	if strings.Contains(pattern, "|") {
		parts := strings.Split(pattern, "|")
		terms := make([]string, 0, len(parts))
		for _, p := range parts {
			t := strings.ToLower(strings.TrimSpace(p))
			if t != "" {
				terms = append(terms, t)
			}
		}
		return multiTermMatcher{terms: terms}, nil
	}

	return literalMatcher{needle: strings.ToLower(pattern)}, nil
}
