package product

import "time"

type Product struct {
	ID          string
	Name        string
	Description string
	Price       float64
	ImageURL    string
	Available   bool
	Stock       int
	TrackStock  bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
