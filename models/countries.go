package models

import "strings"

// countryNames is the static, ordered data set behind the country picker.
// Sovereign states only, alphabetical.
var countryNames = []string{
	"Afghanistan", "Albania", "Algeria", "Andorra", "Angola",
	"Antigua and Barbuda", "Argentina", "Armenia", "Australia", "Austria",
	"Azerbaijan", "Bahamas", "Bahrain", "Bangladesh", "Barbados",
	"Belarus", "Belgium", "Belize", "Benin", "Bhutan",
	"Bolivia", "Bosnia and Herzegovina", "Botswana", "Brazil", "Brunei",
	"Bulgaria", "Burkina Faso", "Burundi", "Cabo Verde", "Cambodia",
	"Cameroon", "Canada", "Central African Republic", "Chad", "Chile",
	"China", "Colombia", "Comoros", "Congo", "Costa Rica",
	"Croatia", "Cuba", "Cyprus", "Czechia", "Democratic Republic of the Congo",
	"Denmark", "Djibouti", "Dominica", "Dominican Republic", "Ecuador",
	"Egypt", "El Salvador", "Equatorial Guinea", "Eritrea", "Estonia",
	"Eswatini", "Ethiopia", "Fiji", "Finland", "France",
	"Gabon", "Gambia", "Georgia", "Germany", "Ghana",
	"Greece", "Grenada", "Guatemala", "Guinea", "Guinea-Bissau",
	"Guyana", "Haiti", "Honduras", "Hungary", "Iceland",
	"India", "Indonesia", "Iran", "Iraq", "Ireland",
	"Israel", "Italy", "Ivory Coast", "Jamaica", "Japan",
	"Jordan", "Kazakhstan", "Kenya", "Kiribati", "Kuwait",
	"Kyrgyzstan", "Laos", "Latvia", "Lebanon", "Lesotho",
	"Liberia", "Libya", "Liechtenstein", "Lithuania", "Luxembourg",
	"Madagascar", "Malawi", "Malaysia", "Maldives", "Mali",
	"Malta", "Marshall Islands", "Mauritania", "Mauritius", "Mexico",
	"Micronesia", "Moldova", "Monaco", "Mongolia", "Montenegro",
	"Morocco", "Mozambique", "Myanmar", "Namibia", "Nauru",
	"Nepal", "Netherlands", "New Zealand", "Nicaragua", "Niger",
	"Nigeria", "North Korea", "North Macedonia", "Norway", "Oman",
	"Pakistan", "Palau", "Panama", "Papua New Guinea", "Paraguay",
	"Peru", "Philippines", "Poland", "Portugal", "Qatar",
	"Romania", "Russia", "Rwanda", "Saint Kitts and Nevis", "Saint Lucia",
	"Saint Vincent and the Grenadines", "Samoa", "San Marino", "Sao Tome and Principe", "Saudi Arabia",
	"Senegal", "Serbia", "Seychelles", "Sierra Leone", "Singapore",
	"Slovakia", "Slovenia", "Solomon Islands", "Somalia", "South Africa",
	"South Korea", "South Sudan", "Spain", "Sri Lanka", "Sudan",
	"Suriname", "Sweden", "Switzerland", "Syria", "Tajikistan",
	"Tanzania", "Thailand", "Timor-Leste", "Togo", "Tonga",
	"Trinidad and Tobago", "Tunisia", "Turkey", "Turkmenistan", "Tuvalu",
	"Uganda", "Ukraine", "United Arab Emirates", "United Kingdom", "United States",
	"Uruguay", "Uzbekistan", "Vanuatu", "Vatican City", "Venezuela",
	"Vietnam", "Yemen", "Zambia", "Zimbabwe",
}

const (
	CountryUnitedStates = "United States"
	CountryCanada       = "Canada"
)

// Countries returns a copy of the country list so callers cannot mutate the
// shared data set.
func Countries() []string {
	out := make([]string, len(countryNames))
	copy(out, countryNames)
	return out
}

// FilterCountries returns the countries containing query, case-insensitively,
// in list order. An empty query matches nothing.
func FilterCountries(query string) []string {
	return FilterItems(countryNames, query)
}

// FilterItems is the substring filter shared by the picker and the countries API.
func FilterItems(items []string, query string) []string {
	q := strings.ToLower(query)
	if q == "" {
		return nil
	}

	var matches []string
	for _, item := range items {
		if strings.Contains(strings.ToLower(item), q) {
			matches = append(matches, item)
		}
	}
	return matches
}

// CanonicalCountry returns the list spelling of name, matched after trimming
// and ignoring case. ok is false for unknown countries.
func CanonicalCountry(name string) (canonical string, ok bool) {
	n := strings.TrimSpace(name)
	if n == "" {
		return "", false
	}
	for _, c := range countryNames {
		if strings.EqualFold(c, n) {
			return c, true
		}
	}
	return "", false
}
