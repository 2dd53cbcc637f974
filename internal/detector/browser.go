// Package detector decides whether a request comes from a human browser or a
// link unfurler.
package detector

import (
	"net/http"
	"strings"
)

// DefaultMarker is carried by virtually every mainstream browser user agent.
const DefaultMarker = "Mozilla"

// Browser is a substring heuristic over the User-Agent header.
type Browser struct {
	Marker string
}

// NewBrowser creates a detector. An empty marker selects DefaultMarker.
func NewBrowser(marker string) *Browser {
	if marker == "" {
		marker = DefaultMarker
	}
	return &Browser{Marker: marker}
}

// IsBrowser reports whether userAgent looks like a browser. An absent header
// is never a browser.
func (b *Browser) IsBrowser(userAgent string, present bool) bool {
	if !present {
		return false
	}
	return strings.Contains(userAgent, b.Marker)
}

// FromHeader classifies the request headers.
func (b *Browser) FromHeader(header http.Header) bool {
	values := header.Values("User-Agent")
	if len(values) == 0 {
		return b.IsBrowser("", false)
	}
	return b.IsBrowser(values[0], true)
}
