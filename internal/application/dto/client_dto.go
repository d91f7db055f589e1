package dto

// CreateClientRequest body para POST /api/clients.
type CreateClientRequest struct {
	Name          string `json:"name"`
	TaxID         string `json:"tax_id,omitempty"` // NIP
	Phone         string `json:"phone,omitempty"`
	Email         string `json:"email,omitempty"`
	Address       string `json:"address,omitempty"`
	City          string `json:"city,omitempty"`
	ContactPerson string `json:"contact_person,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// UpdateClientRequest body para PUT /api/clients/:id.
type UpdateClientRequest = CreateClientRequest

// ClientResponse cliente en respuestas.
type ClientResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	TaxID         string `json:"tax_id,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Email         string `json:"email,omitempty"`
	Address       string `json:"address,omitempty"`
	City          string `json:"city,omitempty"`
	ContactPerson string `json:"contact_person,omitempty"`
	Notes         string `json:"notes,omitempty"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}
