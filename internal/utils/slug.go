package utils

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify normalizes a title into a URL-safe slug: lowercase, runs of
// non-alphanumeric characters collapsed to a single hyphen, no leading or
// trailing hyphen. May return "" when the title has no usable characters.
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = nonAlphanumeric.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// ExistsFunc reports whether a slug is already taken in a collection.
type ExistsFunc func(ctx context.Context, slug string) (bool, error)

// GenerateUniqueSlug derives a slug from title and probes the collection
// until an unused value is found: base, base-1, base-2, ...
//
// The probe is an optimization only. Two concurrent writers can both see a
// candidate as free; the unique index on the slug field is what actually
// guarantees the invariant, with the loser's insert surfacing as a conflict.
func GenerateUniqueSlug(ctx context.Context, title string, exists ExistsFunc) (string, error) {
	base := Slugify(title)
	if base == "" {
		base = fmt.Sprintf("untitled-%d", time.Now().UnixMilli())
	}

	candidate := base
	for i := 1; ; i++ {
		used, err := exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !used {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}
