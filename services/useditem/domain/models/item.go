package models

// Item is a used-goods listing, the aggregate root of this bounded context.
// It exclusively owns its Reviews, which exclusively own their Comments.
type Item struct {
	ID          int      `json:"id"          example:"1"`
	Title       string   `json:"title"       example:"Used Laptop"`
	Description string   `json:"description" example:"A slightly used laptop in good condition."`
	Price       float64  `json:"price"       example:"500"`
	IsSold      bool     `json:"isSold"      example:"false"`
	Seller      string   `json:"seller"      example:"John Doe"`
	Reviews     []Review `json:"reviews"`
} // @name Item

// Review is a rated comment on an Item. ReviewID is unique within its Item only.
type Review struct {
	ReviewID int       `json:"reviewId" example:"1"`
	User     string    `json:"user"     example:"Alice"`
	Rating   float64   `json:"rating"   example:"4"`
	Comment  string    `json:"comment"  example:"Great condition, fast delivery!"`
	Comments []Comment `json:"comments"`
} // @name Review

// Comment is an unaddressed reply attached to a Review.
type Comment struct {
	User string `json:"user" example:"Bob"`
	Text string `json:"text" example:"Is it still available?"`
} // @name Comment

// NewItem builds an unsold Item with no reviews. The ID is assigned by the store.
func NewItem(title, description string, price float64, seller string) Item {
	return Item{
		Title:       title,
		Description: description,
		Price:       price,
		Seller:      seller,
		Reviews:     []Review{},
	}
}

// NewReview builds a Review with no comments. The ReviewID is assigned by the store.
func NewReview(user string, rating float64, comment string) Review {
	return Review{
		User:     user,
		Rating:   rating,
		Comment:  comment,
		Comments: []Comment{},
	}
}

// Clone returns a deep copy so callers never alias store-owned slices.
func (i Item) Clone() Item {
	out := i
	out.Reviews = make([]Review, len(i.Reviews))
	for n, r := range i.Reviews {
		out.Reviews[n] = r.Clone()
	}
	return out
}

// Clone returns a deep copy of the review and its comments.
func (r Review) Clone() Review {
	out := r
	out.Comments = make([]Comment, len(r.Comments))
	copy(out.Comments, r.Comments)
	return out
}
