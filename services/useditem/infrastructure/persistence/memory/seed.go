package memory

import "github.com/ghuser/usedmarket/services/useditem/domain/models"

// SeedItems returns the listings present when the process starts.
func SeedItems() []models.Item {
	return []models.Item{
		{
			ID:          1,
			Title:       "Used Laptop",
			Description: "A slightly used laptop in good condition.",
			Price:       500,
			Seller:      "John Doe",
			Reviews: []models.Review{
				{
					ReviewID: 1,
					User:     "Alice",
					Rating:   4,
					Comment:  "Great condition, fast delivery!",
					Comments: []models.Comment{
						{User: "Bob", Text: "Is it still available?"},
						{User: "Charlie", Text: "What is the battery life like?"},
					},
				},
			},
		},
		{
			ID:          2,
			Title:       "Used Phone",
			Description: "A smartphone with minor scratches, works perfectly.",
			Price:       200,
			Seller:      "Jane Smith",
			Reviews:     []models.Review{},
		},
	}
}
