package domain

import "time"

type CourierStatus string

const (
	CourierActive   CourierStatus = "active"
	CourierInactive CourierStatus = "inactive"
	CourierBlocked  CourierStatus = "blocked"
)

// DeliveryBoy mirrors the upstream deliverBoy resource.
type DeliveryBoy struct {
	ID        string        `json:"_id"`
	Name      string        `json:"name"`
	Phone     string        `json:"phone"`
	Email     string        `json:"email,omitempty"`
	Status    CourierStatus `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

type DeliveryBoyPage struct {
	Page       int           `json:"page"`
	TotalPages int           `json:"totalPages"`
	Total      int           `json:"total"`
	Data       []DeliveryBoy `json:"data"`
}

type DeliveryBoyInput struct {
	Name   string        `json:"name"`
	Phone  string        `json:"phone"`
	Email  string        `json:"email,omitempty"`
	Status CourierStatus `json:"status,omitempty"`
}
