package models

// Book is a catalog record. ID is assigned by the store and never changes.
type Book struct {
	ID          int    `json:"id" db:"id"`
	Title       string `json:"title" db:"title"`
	Description string `json:"description" db:"description"`
	Pages       int    `json:"pages" db:"pages"`
	Author      string `json:"author" db:"author"` // free text, not a User reference
	Publisher   string `json:"publisher" db:"publisher"`
	Year        int    `json:"year" db:"year"`
}

// BookInput carries the fields of a book that is about to be created.
type BookInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Pages       int    `json:"pages"`
	Author      string `json:"author"`
	Publisher   string `json:"publisher"`
	Year        int    `json:"year"`
}

// WithID returns the stored form of the input.
func (in BookInput) WithID(id int) Book {
	return Book{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		Pages:       in.Pages,
		Author:      in.Author,
		Publisher:   in.Publisher,
		Year:        in.Year,
	}
}
