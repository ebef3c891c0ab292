package catalog

import (
	"fmt"
	"strings"
)

// SearchRecord is one document of an external catalog search response.
// Any field may be missing.
type SearchRecord struct {
	CoverEditionKey  string   `json:"cover_edition_key,omitempty"`
	EditionKey       []string `json:"edition_key,omitempty"`
	AuthorName       []string `json:"author_name,omitempty"`
	Title            string   `json:"title,omitempty"`
	FirstPublishYear *int     `json:"first_publish_year,omitempty"`
}

// Choice is a search result the user can pick for ingestion.
type Choice struct {
	ExternalID string `json:"external_id"`
	Label      string `json:"label"`
}

// DetailRecord describes a single catalog edition.
type DetailRecord struct {
	Authors     []AuthorRef `json:"authors"`
	Title       string      `json:"title"`
	PublishDate string      `json:"publish_date"`
	Cover       *CoverRef   `json:"cover,omitempty"`
}

type AuthorRef struct {
	Name string `json:"name"`
}

type CoverRef struct {
	Small  string `json:"small,omitempty"`
	Medium string `json:"medium,omitempty"`
	Large  string `json:"large,omitempty"`
}

// MediumCover returns the medium cover URL, or "" when there is none.
func (d *DetailRecord) MediumCover() string {
	if d.Cover == nil {
		return ""
	}
	return d.Cover.Medium
}

// externalID resolves the edition to ingest, preferring the cover edition.
func (r SearchRecord) externalID() string {
	if r.CoverEditionKey != "" {
		return r.CoverEditionKey
	}
	if len(r.EditionKey) > 0 {
		return r.EditionKey[0]
	}
	return ""
}

func (r SearchRecord) complete() bool {
	return len(r.AuthorName) > 0 &&
		strings.TrimSpace(r.Title) != "" &&
		r.FirstPublishYear != nil &&
		r.externalID() != ""
}

// FilterSearchResults drops incomplete records and turns the rest into
// choices labelled "{first author}: {title} ({year})", keeping input order.
func FilterSearchResults(records []SearchRecord) []Choice {
	choices := make([]Choice, 0, len(records))
	for _, r := range records {
		if !r.complete() {
			continue
		}
		choices = append(choices, Choice{
			ExternalID: r.externalID(),
			Label:      fmt.Sprintf("%s: %s (%d)", r.AuthorName[0], r.Title, *r.FirstPublishYear),
		})
	}
	return choices
}
