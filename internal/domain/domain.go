// Package domain maps free-text company names to best-guess internet domains.
package domain

import "strings"

// mapping associates a lowercase substring of a company name with a domain.
type mapping struct {
	match  string
	domain string
}

// knownDomains is an ordered lookup table: the first entry whose match is a
// substring of the lowercased company name wins. More specific entries must
// precede the general entry they would otherwise lose to ("google ventures"
// before "google", "amazon web services" before "amazon").
var knownDomains = []mapping{
	{"google ventures", "gv.com"},
	{"google cloud", "google.com"},
	{"google", "google.com"},
	{"amazon web services", "amazon.com"},
	{"alexa", "amazon.com"},
	{"amazon", "amazon.com"},
	{"microsoft", "microsoft.com"},
	{"apple", "apple.com"},
	{"openai", "openai.com"},
	{"paypal", "paypal.com"},
	{"morgan stanley", "morganstanley.com"},
	{"goldman sachs", "gs.com"},
	{"barclays", "barclays.com"},
	{"shift", "shift.com"},
	{"moore capital", "moorecap.com"},
	{"bechtel", "bechtel.com"},
	{"fidelity", "fidelity.com"},
	{"lazard", "lazard.com"},
	{"simon & schuster", "simonandschuster.com"},
	{"npr", "npr.org"},
	{"new balance", "newbalance.com"},
	{"bleacher report", "bleacherreport.com"},
	{"bustle", "bustle.com"},
	{"pinboard", "pinboard.in"},
	{"tsai capital", "tsaicapital.com"},
}

// Resolve returns the best-guess domain for a company name. Known companies
// resolve through the ordered table; everything else falls back to a slug of
// the name with ".com" appended. Never returns an empty string — an
// all-punctuation company yields just ".com".
func Resolve(company string) string {
	lower := strings.ToLower(company)
	for _, m := range knownDomains {
		if strings.Contains(lower, m.match) {
			return m.domain
		}
	}
	return slug(lower) + ".com"
}

// slug strips everything but ASCII letters and digits.
func slug(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
