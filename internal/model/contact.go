// Package model defines the core types shared across the resolution engine.
package model

import "strings"

// Contact is an immutable person record to resolve an email for.
// Name and Company are the only fields required for useful work; the rest
// are optional enrichments carried through to the output.
type Contact struct {
	Name        string `json:"name"`
	Company     string `json:"company"`
	Title       string `json:"title,omitempty"`
	Industry    string `json:"industry,omitempty"`
	LinkedInURL string `json:"linkedin_url,omitempty"`
	Location    string `json:"location,omitempty"`
}

// Key identifies a contact for logging and dedup purposes.
func (c Contact) Key() string {
	return c.Name + "|" + c.Company
}

// Source identifies which lookup produced a candidate.
type Source string

const (
	SourceHunter      Source = "hunter.io"
	SourceApollo      Source = "apollo.io"
	SourceRocketReach Source = "rocketreach"
	SourceClearbit    Source = "clearbit"
	SourceWebSearch   Source = "google_search"
	SourceGitHub      Source = "github"
	SourcePattern     Source = "pattern_guess"
)

// Confidence grades how trustworthy a candidate is.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Rank returns the sort rank of a confidence grade; lower is better.
// Unknown grades sort last.
func (c Confidence) Rank() int {
	switch c {
	case ConfidenceHigh:
		return 0
	case ConfidenceMedium:
		return 1
	case ConfidenceLow:
		return 2
	default:
		return 3
	}
}

// Candidate is one proposed email address with provenance. Email is kept
// exactly as the source produced it; Confidence is assigned once at creation
// and never upgraded afterward. Verification only flips Verified.
type Candidate struct {
	Email      string     `json:"email"`
	Source     Source     `json:"source"`
	Confidence Confidence `json:"confidence"`
	Verified   bool       `json:"verified"`
}

// DedupKey is the case-insensitive normalized email used to collapse
// duplicate candidates across sources.
func (c Candidate) DedupKey() string {
	return strings.ToLower(c.Email)
}

// Result is the terminal outcome of resolving one contact. Candidates hold
// discovery order (first-seen-wins dedup already applied); SourcesChecked is
// an audit trail of every adapter attempted regardless of outcome.
type Result struct {
	Contact        Contact     `json:"contact"`
	Candidates     []Candidate `json:"candidates"`
	SourcesChecked []string    `json:"sources_checked"`
}

// HasQualified reports whether any candidate reached high or medium
// confidence. The pattern fallback fires only when this is false.
func (r *Result) HasQualified() bool {
	for _, c := range r.Candidates {
		if c.Confidence == ConfidenceHigh || c.Confidence == ConfidenceMedium {
			return true
		}
	}
	return false
}
