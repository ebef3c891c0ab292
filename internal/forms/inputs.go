package forms

import (
	"github.com/mrlokans/bookr/internal/database/listings"
)

type AuthorInput struct {
	FirstName string `json:"first_name" validate:"required,max=20"`
	LastName  string `json:"last_name" validate:"required,max=20"`
}

type BookInput struct {
	AuthorID       uint   `json:"author_id" validate:"required"`
	Title          string `json:"title" validate:"required,max=50"`
	FirstPublished int    `json:"first_published" validate:"required"`
	Cover          string `json:"cover" validate:"omitempty,url,max=100"`
}

type ListingAddInput struct {
	BookID uint `json:"book_id" validate:"required"`
}

type ListingEditInput struct {
	Rating         *int   `json:"rating" validate:"omitempty,min=1,max=5"`
	OverrideTitle  string `json:"override_title" validate:"max=50"`
	OverrideAuthor string `json:"override_author" validate:"max=50"`
	OverrideYear   *int   `json:"override_year"`
	OverrideCover  string `json:"override_cover" validate:"omitempty,url,max=100"`
}

// Edit converts the input into a listings.Edit.
func (in ListingEditInput) Edit() listings.Edit {
	return listings.Edit{
		Rating:         in.Rating,
		OverrideTitle:  in.OverrideTitle,
		OverrideAuthor: in.OverrideAuthor,
		OverrideYear:   in.OverrideYear,
		OverrideCover:  in.OverrideCover,
	}
}

type RateInput struct {
	ListingID uint `json:"listing_id" validate:"required"`
	Rating    int  `json:"rating" validate:"required,min=1,max=5"`
}

type IngestInput struct {
	ExternalID string `json:"external_id" validate:"required,max=32"`
}

type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type SetupInput struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"required"`

	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}
