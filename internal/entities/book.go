package entities

import "time"

type Book struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	AuthorID       uint      `gorm:"uniqueIndex:idx_books_natural_key;not null" json:"author_id"`
	Title          string    `gorm:"uniqueIndex:idx_books_natural_key;size:50;not null" json:"title"`
	FirstPublished int       `gorm:"uniqueIndex:idx_books_natural_key;not null" json:"first_published"`
	Added          time.Time `gorm:"autoCreateTime;index" json:"added"`
	Cover          string    `gorm:"size:100" json:"cover,omitempty"`
	Author         Author    `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"author"`
	Listings       []Listing `gorm:"foreignKey:BookID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (Book) TableName() string {
	return "books"
}

// String renders the book as "<author>: <title>". Author must be loaded.
func (b Book) String() string {
	return b.Author.String() + ": " + b.Title
}
