package entity

import "time"

// Customer representa un cliente del taller.
type Customer struct {
	ID        string
	Name      string
	Phone     string
	Email     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Motorcycle representa una motocicleta registrada a nombre de un cliente.
type Motorcycle struct {
	ID          string
	CustomerID  string
	PlateNumber string
	Brand       string
	Model       string
	Year        int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
