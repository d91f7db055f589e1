package entity

import "time"

// User usuario de la aplicación (acceso a la API).
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string // bcrypt
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
