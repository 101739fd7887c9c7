package model

import "time"

// MaxProductImages is the number of pictures a product may carry.
const MaxProductImages = 4

// Product represents an item in the catalogue.
type Product struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	About       string    `json:"about" db:"about"`
	Description string    `json:"description" db:"description"`
	Price       float64   `json:"price" db:"price"`
	Stock       int       `json:"stock" db:"stock"`
	SellerID    string    `json:"sellerId" db:"seller_id"`
	Colors      []string  `json:"colors" db:"colors"`
	Sizes       []string  `json:"sizes" db:"sizes"`
	Categories  []string  `json:"categories" db:"categories"`
	Images      []string  `json:"images" db:"images"`
	Ratings     []float64 `json:"ratings" db:"ratings"`
	AvgRating   float64   `json:"avgRating" db:"-"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// AverageRating returns the mean of ratings, or 0 when there are none.
func AverageRating(ratings []float64) float64 {
	if len(ratings) == 0 {
		return 0
	}
	var sum float64
	for _, r := range ratings {
		sum += r
	}
	return sum / float64(len(ratings))
}

// ProductFilter narrows catalogue listings.
type ProductFilter struct {
	Category string
	Limit    int
	Offset   int
}

// RatingRequest is the payload for rating a product.
type RatingRequest struct {
	Score float64 `json:"score"`
}

// NewProductRequest describes a product created from the seller panel.
// Images are attached separately as uploads.
type NewProductRequest struct {
	Name        string   `json:"name"`
	About       string   `json:"about"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Stock       int      `json:"stock"`
	Colors      []string `json:"colors"`
	Sizes       []string `json:"sizes"`
	Categories  []string `json:"categories"`
}

// InventoryUpdate changes the stock and price of a seller's product.
type InventoryUpdate struct {
	ID    string   `json:"id"`
	Stock *int     `json:"stockQuantity"`
	Price *float64 `json:"price"`
}
