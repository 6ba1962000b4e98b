package domain

import "time"

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	PriceCents  int64     `json:"priceCents"`
	Currency    string    `json:"currency"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Sizes       []string  `json:"sizes,omitempty"`
	Featured    bool      `json:"featured,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// DefaultSize returns the size used when a cart addition carries none.
func (p Product) DefaultSize() string {
	if len(p.Sizes) > 0 {
		return p.Sizes[0]
	}
	return "One Size"
}
