// Package assets maps raw image references from the store to servable paths.
package assets

import (
	"regexp"
	"strings"
)

const (
	ImageRoot   = "/images/"
	Placeholder = ImageRoot + "placeholder.jpg"
)

var reExternal = regexp.MustCompile(`(?i)^https?://`)

// Resolve turns a raw reference into a servable path. It never returns "".
//
//	""                  -> /images/placeholder.jpg
//	"https://cdn/x.jpg" -> unchanged
//	"/promo/a b.jpg"    -> /promo/a%20b.jpg
//	"u12/home.jpg"      -> /images/u12/home.jpg
func Resolve(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Placeholder
	}
	if reExternal.MatchString(s) {
		return s
	}
	if strings.HasPrefix(s, "/") {
		return Encode(s)
	}
	return Encode(ImageRoot + s)
}

// Encode percent-encodes a site path the way browsers expect an href:
// separators and URI punctuation survive, everything else is escaped.
// Existing %XX escapes are kept so encoding twice is a no-op.
func Encode(p string) string {
	var b strings.Builder
	b.Grow(len(p))
	for i := 0; i < len(p); i++ {
		c := p[i]
		switch {
		case c == '%' && i+2 < len(p) && isHex(p[i+1]) && isHex(p[i+2]):
			b.WriteByte(c)
		case keep(c):
			b.WriteByte(c)
		default:
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&15])
		}
	}
	return b.String()
}

const upperhex = "0123456789ABCDEF"

func keep(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*();/?:@&=+$,#", c) >= 0
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
