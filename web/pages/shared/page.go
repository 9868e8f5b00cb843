// Package shared contains components used by more than one page.
package shared

// Page is embedded by full pages to share the document title and chrome.
type Page struct {
	Title    string
	Subtitle string
}

// Banner returns the page header.
func (p Page) Banner() Banner {
	return Banner{Title: p.Title, Subtitle: p.Subtitle}
}

// Footer returns the page footer.
func (p Page) Footer() Footer {
	return Footer{}
}
