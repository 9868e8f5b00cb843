package models

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/rohanthewiz/serr"
)

// MinUsernameLength is the shortest accepted username, counted in runes
// after trimming surrounding whitespace.
const MinUsernameLength = 2

// ValidationContext carries cross-field state a validator may depend on.
// The tax ID rule depends on the selected country.
type ValidationContext struct {
	Country string
}

// Validator reports whether value is acceptable in ctx.
type Validator func(value string, ctx ValidationContext) bool

// TaxIDFormat describes the tax ID shape accepted for a country.
type TaxIDFormat struct {
	Pattern *regexp.Regexp
	Example string // shown as the input placeholder
	Hint    string
	// Shape is the fixed layout: '9' a digit, 'A' a letter, 'X' either.
	// Empty for variable-length formats.
	Shape string
}

var (
	usTaxID = TaxIDFormat{
		Pattern: regexp.MustCompile(`^\d{4}-[A-Z]{3}-\d{5}$`),
		Example: "1234-ABC-12345",
		Hint:    "4 digits, 3 letters, 5 digits",
		Shape:   "9999-AAA-99999",
	}
	caTaxID = TaxIDFormat{
		Pattern: regexp.MustCompile(`^[0-9A-Z]{10}-[A-Z]{2}$`),
		Example: "123456789A-BC",
		Hint:    "10 letters or digits, then 2 letters",
		Shape:   "XXXXXXXXXX-XX",
	}
	genericTaxID = TaxIDFormat{
		Pattern: regexp.MustCompile(`(?i)^[0-9A-Z][0-9A-Z-]{3,18}[0-9A-Z]$`),
		Example: "AB-123456",
		Hint:    "5 to 20 letters, digits or dashes",
	}
)

var taxIDFormats = map[string]TaxIDFormat{
	CountryUnitedStates: usTaxID,
	CountryCanada:       caTaxID,
}

// TaxIDRule returns the format for country. ok is false when the country is
// unset or not in the list.
func TaxIDRule(country string) (format TaxIDFormat, ok bool) {
	c, known := CanonicalCountry(country)
	if !known {
		return TaxIDFormat{}, false
	}
	if f, exists := taxIDFormats[c]; exists {
		return f, true
	}
	return genericTaxID, true
}

// ValidateUsername reports whether the trimmed username has at least
// MinUsernameLength characters.
func ValidateUsername(username string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(username)) >= MinUsernameLength
}

// ValidateCountry reports whether country names an entry of the list.
func ValidateCountry(country string) bool {
	_, ok := CanonicalCountry(country)
	return ok
}

// ValidateTaxID checks taxID against the format of the selected country.
// Without a known country every tax ID is invalid.
func ValidateTaxID(taxID, country string) bool {
	format, ok := TaxIDRule(country)
	if !ok {
		return false
	}
	return format.Pattern.MatchString(strings.TrimSpace(taxID))
}

// Field validators in the Validator shape, keyed by field name.
var (
	UsernameValidator Validator = func(v string, _ ValidationContext) bool { return ValidateUsername(v) }
	CountryValidator  Validator = func(v string, _ ValidationContext) bool { return ValidateCountry(v) }
	TaxIDValidator    Validator = func(v string, ctx ValidationContext) bool { return ValidateTaxID(v, ctx.Country) }
)

// ValidateSubmission checks a whole payload and returns an error naming every
// failing field, or nil.
func ValidateSubmission(s Submission) error {
	var bad []string
	if !ValidateUsername(s.Username) {
		bad = append(bad, FieldUsername)
	}
	if !ValidateCountry(s.Country) {
		bad = append(bad, FieldCountry)
	}
	if !ValidateTaxID(s.TaxID, s.Country) {
		bad = append(bad, FieldTaxID)
	}
	if len(bad) > 0 {
		return serr.New("invalid fields: " + strings.Join(bad, ", "))
	}
	return nil
}
