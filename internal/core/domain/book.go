package domain

// Reviews maps a username to that user's review text. A user holds at most
// one review per book.
type Reviews map[string]string

// Clone returns an independent copy. A nil receiver yields an empty map so
// JSON renders {} rather than null.
func (r Reviews) Clone() Reviews {
	out := make(Reviews, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Book is a catalog entry. ISBN, Title and Author never change after seeding.
type Book struct {
	ISBN    string  `json:"isbn" bson:"_id" yaml:"isbn"`
	Title   string  `json:"title" bson:"title" yaml:"title"`
	Author  string  `json:"author" bson:"author" yaml:"author"`
	Reviews Reviews `json:"reviews" bson:"-" yaml:"reviews,omitempty"`
}

// Clone returns a deep copy of the book.
func (b *Book) Clone() *Book {
	if b == nil {
		return nil
	}
	c := *b
	c.Reviews = b.Reviews.Clone()
	return &c
}
