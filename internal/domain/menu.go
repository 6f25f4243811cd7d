package domain

import "time"

type MenuItem struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	IsVeg       bool    `json:"isVeg"`
	Image       string  `json:"image"`
	IsAvailable bool    `json:"isAvailable"`
}

// MenuCounts accompanies the menu list page.
type MenuCounts struct {
	Vegetarian    int `json:"vegetarian"`
	NonVegetarian int `json:"nonVegetarian"`
	Unavailable   int `json:"unavailable"`
}

type MenuPage struct {
	Menus  []MenuItem `json:"menus"`
	Total  int        `json:"total"`
	Counts MenuCounts `json:"counts"`
}

// MenuFilter narrows the menu list. Pointer fields distinguish "unset" from
// an explicit false.
type MenuFilter struct {
	Category    string
	IsAvailable *bool
	IsVeg       *bool
	Search      string
}

type Category struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type CategoryPage struct {
	Total      int        `json:"total"`
	Page       int        `json:"page"`
	Pages      int        `json:"pages"`
	Limit      int        `json:"limit"`
	Categories []Category `json:"categories"`
}

// OfferBanner is a promotional image slot; the backend owns the upload.
type OfferBanner struct {
	ID        string    `json:"_id"`
	ImageURL  string    `json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
