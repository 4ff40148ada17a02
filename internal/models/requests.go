package models

// Create/update payloads posted to the backend. Validation tags are
// checked client-side before any network call.

// ClientRequest creates or updates a workshop customer.
type ClientRequest struct {
	Name    string `json:"name" validate:"required"`
	Surname string `json:"surname" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone,omitempty"`
}

// MechanicRequest creates or updates a mechanic.
type MechanicRequest struct {
	Name           string `json:"name" validate:"required"`
	Surname        string `json:"surname" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Specialization string `json:"specialization,omitempty"`
}

// CarRequest registers or updates a vehicle.
type CarRequest struct {
	ClientID     int64  `json:"clientId" validate:"required"`
	Brand        string `json:"brand" validate:"required"`
	Model        string `json:"model" validate:"required"`
	LicensePlate string `json:"licensePlate" validate:"required"`
	Year         int    `json:"year,omitempty"`
	VIN          string `json:"vin,omitempty"`
}

// ServiceRequest creates or updates a catalog entry.
type ServiceRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price" validate:"gte=0"`
	DurationMin int     `json:"durationMinutes,omitempty" validate:"gte=0"`
}

// ReservationRequest books or reschedules a visit.
type ReservationRequest struct {
	ClientID      int64  `json:"clientId" validate:"required"`
	CarID         int64  `json:"carId,omitempty"`
	ServiceID     int64  `json:"serviceId" validate:"required"`
	MechanicID    int64  `json:"mechanicId,omitempty"`
	VisitDateTime string `json:"visitDateTime" validate:"required"`
	EndDateTime   string `json:"endDateTime,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// RepairJobRequest opens or updates a repair job.
type RepairJobRequest struct {
	ReservationID int64   `json:"reservationId,omitempty"`
	CarID         int64   `json:"carId" validate:"required"`
	MechanicID    int64   `json:"mechanicId,omitempty"`
	Description   string  `json:"description" validate:"required"`
	Status        string  `json:"status,omitempty"`
	Cost          float64 `json:"cost,omitempty" validate:"gte=0"`
}

// VisitorRequestCreate submits a contact-form entry.
type VisitorRequestCreate struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone,omitempty"`
	Message string `json:"message,omitempty"`
}
