package entities

import (
	"strconv"
	"time"
)

// Rating bounds for a listing.
const (
	MinRating = 1
	MaxRating = 5
)

// Listing is a book on a user's personal list. The Override* fields only
// affect how the entry is displayed to its owner; the shared Book is never
// modified through a listing.
type Listing struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"uniqueIndex:idx_listings_natural_key;not null" json:"user_id"`
	BookID         uint      `gorm:"uniqueIndex:idx_listings_natural_key;not null;index" json:"book_id"`
	Rating         *int      `json:"rating,omitempty"`
	OverrideTitle  string    `gorm:"size:50" json:"override_title,omitempty"`
	OverrideAuthor string    `gorm:"size:50" json:"override_author,omitempty"`
	OverrideYear   *int      `json:"override_year,omitempty"`
	OverrideCover  string    `gorm:"size:100" json:"override_cover,omitempty"`
	Added          time.Time `gorm:"autoCreateTime" json:"added"`
	Updated        time.Time `gorm:"autoUpdateTime" json:"updated"`
	User           User      `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Book           Book      `gorm:"foreignKey:BookID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"book"`
}

func (Listing) TableName() string {
	return "listings"
}

// DisplayTitle returns the override title if set, otherwise the book title.
func (l Listing) DisplayTitle() string {
	if l.OverrideTitle != "" {
		return l.OverrideTitle
	}
	return l.Book.Title
}

func (l Listing) DisplayAuthor() string {
	if l.OverrideAuthor != "" {
		return l.OverrideAuthor
	}
	return l.Book.Author.String()
}

func (l Listing) DisplayYear() int {
	if l.OverrideYear != nil && *l.OverrideYear != 0 {
		return *l.OverrideYear
	}
	return l.Book.FirstPublished
}

func (l Listing) DisplayCover() string {
	if l.OverrideCover != "" {
		return l.OverrideCover
	}
	return l.Book.Cover
}

// String renders "<username> lists <book>". User and Book.Author must be loaded.
func (l Listing) String() string {
	return l.User.Username + " lists " + l.Book.String()
}

// ValidRating reports whether r is an accepted rating value.
func ValidRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}

// RatingChoices enumerates the accepted ratings as (value, label) pairs.
func RatingChoices() [][2]string {
	choices := make([][2]string, 0, MaxRating-MinRating+1)
	for r := MinRating; r <= MaxRating; r++ {
		s := strconv.Itoa(r)
		choices = append(choices, [2]string{s, s})
	}
	return choices
}
