// Package services contains stateless domain services for the used-item
// bounded context. Each validator turns a caller draft into either a fully
// built domain value or a typed *domain.ValidationError, so the rules can be
// tested without any HTTP or storage concerns.
package services

import (
	"fmt"
	"sort"

	pkgvalidator "github.com/ghuser/usedmarket/pkg/validator"
	"github.com/ghuser/usedmarket/services/useditem/domain"
	"github.com/ghuser/usedmarket/services/useditem/domain/models"
)

const (
	minRating = 1
	maxRating = 5
)

// ValidateItemDraft checks presence of all four fields first, then the price.
//
// Rules, in order:
//   - title, description, price and seller must be present and non-empty → ErrMissingField
//   - price must be a finite number strictly greater than zero → ErrInvalidPrice
func ValidateItemDraft(d models.ItemDraft) (models.Item, error) {
	missing, err := missingFields(&d)
	if err != nil {
		return models.Item{}, err
	}
	if !d.Price.Present() {
		missing = append(missing, "price")
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return models.Item{}, domain.ErrMissingField.WithFields(missing...)
	}

	price, ok := d.Price.Float()
	if !ok || price <= 0 {
		return models.Item{}, domain.ErrInvalidPrice
	}

	return models.NewItem(d.Title, d.Description, price, d.Seller), nil
}

// ValidateKeyword rejects an absent or empty search keyword.
func ValidateKeyword(keyword string) error {
	if keyword == "" {
		return domain.ErrMissingKeyword
	}
	return nil
}

// ValidateReviewDraft checks presence of user, rating and comment, then the
// rating range. Ratings need not be integers; 1 and 5 are both accepted.
func ValidateReviewDraft(d models.ReviewDraft) (models.Review, error) {
	missing, err := missingFields(&d)
	if err != nil {
		return models.Review{}, err
	}
	if !d.Rating.Present() {
		missing = append(missing, "rating")
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return models.Review{}, domain.ErrMissingReviewField.WithFields(missing...)
	}

	rating, ok := d.Rating.Float()
	if !ok || rating < minRating || rating > maxRating {
		return models.Review{}, domain.ErrInvalidRating
	}

	return models.NewReview(d.User, rating, d.Comment), nil
}

// ValidateCommentDraft checks that both user and text are present.
func ValidateCommentDraft(d models.CommentDraft) (models.Comment, error) {
	missing, err := missingFields(&d)
	if err != nil {
		return models.Comment{}, err
	}
	if len(missing) > 0 {
		return models.Comment{}, domain.ErrMissingCommentField.WithFields(missing...)
	}
	return models.Comment{User: d.User, Text: d.Text}, nil
}

// missingFields runs the struct's `required` tags and returns the JSON names
// of the fields that failed. Only a misconfigured validator yields an error.
func missingFields(draft any) ([]string, error) {
	err := pkgvalidator.Validate(draft)
	if err == nil {
		return nil, nil
	}
	fields := pkgvalidator.FailedFields(err)
	if fields == nil {
		return nil, fmt.Errorf("validate %T: %w", draft, err)
	}
	return fields, nil
}
