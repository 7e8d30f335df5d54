package models

// ItemDraft is caller input for a new listing, before validation.
type ItemDraft struct {
	Title       string  `json:"title"       validate:"required"`
	Description string  `json:"description" validate:"required"`
	Price       *Number `json:"price"`
	Seller      string  `json:"seller"      validate:"required"`
}

// ReviewDraft is caller input for a new review, before validation.
type ReviewDraft struct {
	User    string  `json:"user"    validate:"required"`
	Rating  *Number `json:"rating"`
	Comment string  `json:"comment" validate:"required"`
}

// CommentDraft is caller input for a new comment, before validation.
type CommentDraft struct {
	User string `json:"user" validate:"required"`
	Text string `json:"text" validate:"required"`
}
