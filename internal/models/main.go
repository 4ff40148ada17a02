// Package models defines the data structures exchanged with the
// vehicle-service backend and cached locally between runs.
package models

// Credentials holds the email/password pair the user logged in with.
// Both fields are non-empty once persisted.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionUser is the identity record derived from a successful login,
// enriched with the role from a follow-up profile fetch when available.
type SessionUser struct {
	// UserID is the backend's numeric identifier for the user.
	UserID int64 `json:"userId"`
	// Username is the login name, usually the email address.
	Username string `json:"username"`
	// Role is the access role ("MANAGER", "MECHANIC", "CLIENT", ...).
	// Empty when the profile fetch did not succeed.
	Role string `json:"role,omitempty"`
}

// User is a full backend user record.
type User struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name,omitempty"`
	Surname  string `json:"surname,omitempty"`
	Role     string `json:"role,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Username string `json:"username,omitempty"`
}

// Client is a customer of the workshop.
type Client struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
}

// Mechanic is a workshop employee assignable to reservations and repair jobs.
type Mechanic struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Surname        string `json:"surname"`
	Email          string `json:"email"`
	Specialization string `json:"specialization,omitempty"`
}

// Car is a vehicle registered to a client.
type Car struct {
	ID           int64  `json:"id"`
	ClientID     int64  `json:"clientId"`
	Brand        string `json:"brand"`
	Model        string `json:"model"`
	LicensePlate string `json:"licensePlate"`
	Year         int    `json:"year,omitempty"`
	VIN          string `json:"vin,omitempty"`
}

// Service is a catalog entry for work the workshop offers.
type Service struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	DurationMin int     `json:"durationMinutes,omitempty"`
}

// Reservation is a scheduled visit. Timestamps are RFC3339 strings as
// the backend sends them; they are parsed only where a comparison is
// actually needed.
type Reservation struct {
	ID            int64  `json:"id"`
	ClientID      int64  `json:"clientId"`
	ClientName    string `json:"clientName,omitempty"`
	MechanicID    int64  `json:"mechanicId,omitempty"`
	MechanicName  string `json:"mechanicName,omitempty"`
	CarID         int64  `json:"carId,omitempty"`
	ServiceID     int64  `json:"serviceId,omitempty"`
	ServiceName   string `json:"serviceName,omitempty"`
	VisitDateTime string `json:"visitDateTime,omitempty"`
	EndDateTime   string `json:"endDateTime,omitempty"`
	Status        string `json:"status,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// RepairJob is work performed on a car, typically spawned from a reservation.
type RepairJob struct {
	ID            int64   `json:"id"`
	ReservationID int64   `json:"reservationId,omitempty"`
	CarID         int64   `json:"carId,omitempty"`
	MechanicID    int64   `json:"mechanicId,omitempty"`
	Description   string  `json:"description,omitempty"`
	Status        string  `json:"status,omitempty"`
	Cost          float64 `json:"cost,omitempty"`
	StartedAt     string  `json:"startedAt,omitempty"`
	FinishedAt    string  `json:"finishedAt,omitempty"`
}

// VisitorRequest is a contact-form submission from a not-yet-registered visitor.
type VisitorRequest struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Message   string `json:"message,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// LoginRequest is the authenticate endpoint payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is the authenticate endpoint reply.
type LoginResponse struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role,omitempty"`
}

// SignupRequest is the registration payload.
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
	Surname  string `json:"surname" validate:"required"`
	Phone    string `json:"phone,omitempty"`
}

// Profile is the /users/profile reply for the authenticated user.
type Profile struct {
	ID    int64  `json:"id"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}
