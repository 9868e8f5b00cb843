package models

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// shapeOf maps taxID onto the alphabet of f.Shape. Characters outside the
// alphabet are kept as they are, so they never match.
func (f TaxIDFormat) shapeOf(taxID string) string {
	mixed := strings.ContainsRune(f.Shape, 'X')

	var sb strings.Builder
	for _, r := range taxID {
		switch {
		case r >= '0' && r <= '9' && mixed, r >= 'A' && r <= 'Z' && mixed:
			sb.WriteRune('X')
		case r >= '0' && r <= '9':
			sb.WriteRune('9')
		case r >= 'A' && r <= 'Z':
			sb.WriteRune('A')
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// ExplainTaxID describes the first place where taxID departs from the
// layout required for country. It returns "" when the country has no fixed
// layout or the layout matches.
func ExplainTaxID(taxID, country string) string {
	taxID = strings.TrimSpace(taxID)
	f, ok := TaxIDRule(country)
	if !ok || f.Shape == "" || taxID == "" {
		return ""
	}

	got := f.shapeOf(taxID)
	if got == f.Shape {
		return ""
	}

	runes := []rune(taxID)
	pos := 0

	dmp := diffmatchpatch.New()
	for _, d := range dmp.DiffMain(f.Shape, got, false) {
		n := len([]rune(d.Text))
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			pos += n
		case diffmatchpatch.DiffDelete:
			return fmt.Sprintf("expected %s at position %d", describeShape(d.Text), pos+1)
		case diffmatchpatch.DiffInsert:
			end := pos + n
			if end > len(runes) {
				end = len(runes)
			}
			return fmt.Sprintf("unexpected %q at position %d", string(runes[pos:end]), pos+1)
		}
	}
	return ""
}

// describeShape names a run of one shape class, e.g. "3 letters".
// Anything else is quoted literally.
func describeShape(shape string) string {
	if shape == "" || strings.Trim(shape, shape[:1]) != "" {
		return fmt.Sprintf("%q", shape)
	}

	var one, many string
	switch shape[0] {
	case '9':
		one, many = "a digit", "digits"
	case 'A':
		one, many = "a letter", "letters"
	case 'X':
		one, many = "a letter or digit", "letters or digits"
	default:
		return fmt.Sprintf("%q", shape)
	}

	if n := len(shape); n > 1 {
		return fmt.Sprintf("%d %s", n, many)
	}
	return one
}
