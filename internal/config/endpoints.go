package config

import "fmt"

// Endpoint path templates for the backend REST API. Collections follow
// the {resource}, {resource}/{id}, {resource}/new conventions.
const (
	EndpointAuthenticate = "/authenticate"
	EndpointSignup       = "/signup"

	EndpointUsers           = "/users"
	EndpointProfile         = "/users/profile"
	EndpointClients         = "/clients"
	EndpointMechanics       = "/mechanics"
	EndpointServices        = "/services"
	EndpointReservations    = "/reservations"
	EndpointRepairJobs      = "/repair-jobs"
	EndpointCars            = "/cars"
	EndpointVisitorRequests = "/visitor-requests"

	EndpointReservationSchedule = "/reservations/schedule"
	EndpointReservationFilter   = "/reservations/filter"
)

// ByID interpolates a numeric identifier into a collection path.
func ByID(collection string, id int64) string {
	return fmt.Sprintf("%s/%d", collection, id)
}

// ByKey interpolates a string identifier into a collection path.
func ByKey(collection, key string) string {
	return fmt.Sprintf("%s/%s", collection, key)
}

// ForCreate returns the {resource}/new path used by create operations.
func ForCreate(collection string) string {
	return collection + "/new"
}
