package workflow

import (
	"context"
	"regexp"
	"strings"

	"github.com/Veraticus/global-series-tracker/internal/service"
)

var productSeparators = regexp.MustCompile(`[\n,;|]+`)

// ParseProducts splits bulk text on newlines, commas, semicolons and pipes.
// Names are trimmed and empty ones dropped; duplicates are kept.
func ParseProducts(text string) []string {
	return CleanNames(productSeparators.Split(text, -1))
}

// CleanNames trims names and drops empty ones without splitting them, so
// a listed name may contain separators.
func CleanNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, p := range names {
		if name := strings.TrimSpace(p); name != "" {
			out = append(out, name)
		}
	}
	return out
}

// ImportText parses text and merges the names into the product set. It
// returns how many names were parsed. Blank input is a no-op.
func ImportText(ctx context.Context, importer service.ProductImporter, text string) (int, error) {
	if strings.TrimSpace(text) == "" {
		return 0, nil
	}
	names := ParseProducts(text)
	if len(names) == 0 {
		return 0, nil
	}
	if err := importer.ImportProducts(ctx, names); err != nil {
		return len(names), err
	}
	return len(names), nil
}
