package entity

import "time"

// Client cliente/zamawiający de la empresa.
type Client struct {
	ID            string
	Name          string
	TaxID         string // NIP
	Phone         string
	Email         string
	Address       string
	City          string
	ContactPerson string
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
