package usecase

import (
	"context"
	"regexp"

	"github.com/m-mizutani/ctxlog"
)

// Matches reports whether value contains a match of pattern. An empty pattern
// imposes no filter. A nil value is absent and never matches a non-empty
// pattern; an empty string is a present value and is searched like any other.
// Patterns that fail to compile match everything.
func Matches(ctx context.Context, pattern string, value *string) bool {
	if pattern == "" {
		return true
	}
	if value == nil {
		return false
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		ctxlog.From(ctx).Warn("Invalid include pattern, matching everything",
			"pattern", pattern,
			"error", err,
		)
		return true
	}

	return re.MatchString(*value)
}
