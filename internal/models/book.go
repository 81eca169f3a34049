package models

// Book represents a book row. Every book belongs to the user that
// created it; UserID is set from the caller's token, never from the
// request body.
type Book struct {
	ID              uint    `json:"id" gorm:"primaryKey"`
	Title           string  `json:"title" gorm:"type:varchar(255);not null"`
	Author          string  `json:"author" gorm:"type:varchar(255);not null"`
	PublicationDate *Date   `json:"publication_date" gorm:"type:date"`
	ISBN            *string `json:"isbn" gorm:"type:varchar(13);uniqueIndex"`
	UserID          uint    `json:"-" gorm:"not null"`
	User            *User   `json:"-" gorm:"constraint:OnDelete:RESTRICT"`
}

// BookCreate is the accepted shape for POST /books.
type BookCreate struct {
	Title           string  `json:"title" validate:"required,max=255"`
	Author          string  `json:"author" validate:"required,max=255"`
	PublicationDate *Date   `json:"publication_date"`
	ISBN            *string `json:"isbn" validate:"omitempty,max=13"`
}

// BookUpdate is the accepted shape for PUT /books/:id. Every field is
// optional; only fields present in the payload are applied.
type BookUpdate struct {
	Title           *string `json:"title" validate:"omitempty,min=1,max=255"`
	Author          *string `json:"author" validate:"omitempty,min=1,max=255"`
	PublicationDate *Date   `json:"publication_date"`
	ISBN            *string `json:"isbn" validate:"omitempty,max=13"`
}

// BookOut is the wire shape returned to clients. It deliberately omits
// the owner reference and internal columns.
type BookOut struct {
	ID              uint    `json:"id"`
	Title           string  `json:"title"`
	Author          string  `json:"author"`
	PublicationDate *Date   `json:"publication_date"`
	ISBN            *string `json:"isbn"`
}

// NewBook builds a Book owned by userID from a validated create payload.
func NewBook(in BookCreate, userID uint) *Book {
	return &Book{
		Title:           in.Title,
		Author:          in.Author,
		PublicationDate: in.PublicationDate,
		ISBN:            in.ISBN,
		UserID:          userID,
	}
}

// Apply merges the update payload into the book. Absent fields leave the
// stored value untouched.
func (u BookUpdate) Apply(b *Book) {
	if u.Title != nil {
		b.Title = *u.Title
	}
	if u.Author != nil {
		b.Author = *u.Author
	}
	if u.PublicationDate != nil {
		b.PublicationDate = u.PublicationDate
	}
	if u.ISBN != nil {
		b.ISBN = u.ISBN
	}
}

// Out converts the entity to its wire shape.
func (b *Book) Out() BookOut {
	return BookOut{
		ID:              b.ID,
		Title:           b.Title,
		Author:          b.Author,
		PublicationDate: b.PublicationDate,
		ISBN:            b.ISBN,
	}
}

// BooksOut converts a slice of entities, returning an empty (non-nil)
// slice for an empty input so the JSON stays [] rather than null.
func BooksOut(books []Book) []BookOut {
	out := make([]BookOut, 0, len(books))
	for i := range books {
		out = append(out, books[i].Out())
	}
	return out
}
