package entity

import "time"

// Contractor representa a un constructor del esquema nuevo del marketplace.
// Se autentica por email (único).
type Contractor struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	PhoneNumber  string
	Address      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
