package entities

import "time"

type Author struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FirstName string    `gorm:"uniqueIndex:idx_authors_natural_key;size:20;not null" json:"first_name"`
	LastName  string    `gorm:"uniqueIndex:idx_authors_natural_key;size:20;not null" json:"last_name"`
	Books     []Book    `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

func (Author) TableName() string {
	return "authors"
}

func (a Author) String() string {
	return a.FirstName + " " + a.LastName
}
