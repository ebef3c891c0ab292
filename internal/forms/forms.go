// Package forms describes the user-editable fields of each entity and
// validates submitted input against the same constraints.
package forms

import (
	"sort"
	"strconv"

	"github.com/mrlokans/bookr/internal/entities"
)

// Field types understood by clients rendering a Form.
const (
	FieldText   = "text"
	FieldNumber = "number"
	FieldURL    = "url"
	FieldSelect = "select"
)

// Field is one editable input of a form.
type Field struct {
	Name      string      `json:"name"`
	Label     string      `json:"label"`
	Type      string      `json:"type"`
	HelpText  string      `json:"help_text,omitempty"`
	Required  bool        `json:"required"`
	MaxLength int         `json:"max_length,omitempty"`
	Choices   [][2]string `json:"choices,omitempty"`
}

// Form enumerates the editable fields of an entity.
type Form struct {
	Entity string  `json:"entity"`
	Title  string  `json:"title"`
	Fields []Field `json:"fields"`
}

// FieldNames returns the names of the form's fields in display order.
func (f Form) FieldNames() []string {
	names := make([]string, len(f.Fields))
	for i, field := range f.Fields {
		names[i] = field.Name
	}
	return names
}

var (
	ListingAdd = Form{
		Entity: "listing-add",
		Title:  "Add a book to your list",
		Fields: []Field{
			{Name: "book_id", Label: "Book", Type: FieldSelect, Required: true,
				HelpText: "Only books that are not on your list yet can be chosen."},
		},
	}

	ListingEdit = Form{
		Entity: "listing-edit",
		Title:  "Edit list entry",
		Fields: []Field{
			{Name: "rating", Label: "Rating", Type: FieldSelect, Choices: entities.RatingChoices()},
			{Name: "override_title", Label: "Title", Type: FieldText, MaxLength: 50,
				HelpText: "Shown instead of the book title on your list. Leave empty to use the original."},
			{Name: "override_author", Label: "Author", Type: FieldText, MaxLength: 50,
				HelpText: "Shown instead of the author's name on your list."},
			{Name: "override_year", Label: "Override year of first publication", Type: FieldNumber,
				HelpText: "Shown instead of the original year of first publication."},
			{Name: "override_cover", Label: "Cover", Type: FieldURL, MaxLength: 100,
				HelpText: "URL of a cover image to show instead of the catalog cover."},
		},
	}

	BookAdmin = Form{
		Entity: "book",
		Title:  "Book",
		Fields: []Field{
			{Name: "author_id", Label: "Author", Type: FieldSelect, Required: true},
			{Name: "title", Label: "Title", Type: FieldText, Required: true, MaxLength: 50},
			{Name: "first_published", Label: "Year of first publication", Type: FieldNumber, Required: true},
			{Name: "cover", Label: "Cover", Type: FieldURL, MaxLength: 100,
				HelpText: "URL of the cover image."},
		},
	}

	AuthorAdmin = Form{
		Entity: "author",
		Title:  "Author",
		Fields: []Field{
			{Name: "first_name", Label: "First name", Type: FieldText, Required: true, MaxLength: 20,
				HelpText: "Everything except the last name, e.g. \"J. D.\"."},
			{Name: "last_name", Label: "Last name", Type: FieldText, Required: true, MaxLength: 20},
		},
	}
)

var registry = map[string]Form{
	ListingAdd.Entity:  ListingAdd,
	ListingEdit.Entity: ListingEdit,
	BookAdmin.Entity:   BookAdmin,
	AuthorAdmin.Entity: AuthorAdmin,
}

// Lookup returns the form registered for entity.
func Lookup(entity string) (Form, bool) {
	form, ok := registry[entity]
	return form, ok
}

// Entities lists every entity with a registered form, sorted.
func Entities() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WithBookChoices returns a copy of ListingAdd whose book field offers the
// given books.
func WithBookChoices(books []entities.Book) Form {
	form := ListingAdd
	form.Fields = append([]Field(nil), ListingAdd.Fields...)
	choices := make([][2]string, 0, len(books))
	for _, b := range books {
		choices = append(choices, [2]string{strconv.FormatUint(uint64(b.ID), 10), b.String()})
	}
	form.Fields[0].Choices = choices
	return form
}
