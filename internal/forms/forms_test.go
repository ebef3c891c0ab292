package forms

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookr/internal/entities"
)

func TestLookup(t *testing.T) {
	form, ok := Lookup("listing-edit")
	require.True(t, ok)
	assert.Equal(t,
		[]string{"rating", "override_title", "override_author", "override_year", "override_cover"},
		form.FieldNames())
	assert.Len(t, form.Fields[0].Choices, 5)

	_, ok = Lookup("review")
	assert.False(t, ok)

	assert.Equal(t, []string{"author", "book", "listing-add", "listing-edit"}, Entities())
}

func TestFormsCarryHelpText(t *testing.T) {
	form, _ := Lookup("listing-edit")
	for _, f := range form.Fields[1:] {
		assert.NotEmpty(t, f.HelpText, f.Name)
	}
}

func TestWithBookChoices(t *testing.T) {
	books := []entities.Book{
		{ID: 1, Title: "Nine Stories", Author: entities.Author{FirstName: "J. D.", LastName: "Salinger"}},
		{ID: 3, Title: "Emma", Author: entities.Author{FirstName: "Jane", LastName: "Austen"}},
	}

	form := WithBookChoices(books)

	assert.Equal(t, [][2]string{
		{"1", "J. D. Salinger: Nine Stories"},
		{"3", "Jane Austen: Emma"},
	}, form.Fields[0].Choices)
	assert.Empty(t, ListingAdd.Fields[0].Choices, "registered form is not modified")
}

func intPtr(v int) *int { return &v }

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		input      any
		wantFields []string
	}{
		{
			name:  "valid author",
			input: AuthorInput{FirstName: "J. D.", LastName: "Salinger"},
		},
		{
			name:       "blank author",
			input:      AuthorInput{},
			wantFields: []string{"first_name", "last_name"},
		},
		{
			name:       "author name too long",
			input:      AuthorInput{FirstName: strings.Repeat("x", 21), LastName: "Salinger"},
			wantFields: []string{"first_name"},
		},
		{
			name:  "valid book",
			input: BookInput{AuthorID: 1, Title: "Nine Stories", FirstPublished: 1953, Cover: "https://example.org/c.jpg"},
		},
		{
			name:       "book with bad cover",
			input:      BookInput{AuthorID: 1, Title: "Nine Stories", FirstPublished: 1953, Cover: "not a url"},
			wantFields: []string{"cover"},
		},
		{
			name:       "book without author and title",
			input:      BookInput{FirstPublished: 1953},
			wantFields: []string{"author_id", "title"},
		},
		{
			name:  "listing edit clears everything",
			input: ListingEditInput{},
		},
		{
			name:       "listing edit out of range rating",
			input:      ListingEditInput{Rating: intPtr(7)},
			wantFields: []string{"rating"},
		},
		{
			name:       "listing edit long title",
			input:      ListingEditInput{OverrideTitle: strings.Repeat("t", 51)},
			wantFields: []string{"override_title"},
		},
		{
			name:       "rate zero",
			input:      RateInput{ListingID: 1, Rating: 0},
			wantFields: []string{"rating"},
		},
		{
			name:       "rate missing listing",
			input:      RateInput{Rating: 3},
			wantFields: []string{"listing_id"},
		},
		{
			name:       "listing add blank",
			input:      ListingAddInput{},
			wantFields: []string{"book_id"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.input)
			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			got := make([]string, len(verr.Fields))
			for i, f := range verr.Fields {
				got[i] = f.Field
				assert.NotEmpty(t, f.Message)
			}
			assert.Equal(t, tt.wantFields, got)
		})
	}
}

func TestValidate_RequiredMessage(t *testing.T) {
	err := Validate(ListingAddInput{})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "This field is required.", verr.Fields[0].Message)
	assert.Equal(t, "book_id: This field is required.", err.Error())
}

func TestListingEditInput_Edit(t *testing.T) {
	in := ListingEditInput{Rating: intPtr(4), OverrideTitle: "New title", OverrideYear: intPtr(1950)}
	edit := in.Edit()
	assert.Equal(t, 4, *edit.Rating)
	assert.Equal(t, "New title", edit.OverrideTitle)
	assert.Equal(t, 1950, *edit.OverrideYear)
}
