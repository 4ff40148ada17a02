// Package resource provides typed accessors over the backend's REST
// collections. Each gateway issues calls through the shared HTTP
// client and decodes the envelope into domain records, validating
// outbound payloads before any network traffic.
package resource

import (
	"context"
	"net/http"
	"net/url"

	"github.com/go-playground/validator/v10"

	"github.com/ahakimov/garagedesk/internal/api"
	"github.com/ahakimov/garagedesk/internal/config"
	"github.com/ahakimov/garagedesk/internal/models"
)

// Caller is the slice of the HTTP client the gateways need.
type Caller interface {
	Get(ctx context.Context, endpoint string, query url.Values) api.Response
	Post(ctx context.Context, endpoint string, body any) api.Response
	Put(ctx context.Context, endpoint string, body any) api.Response
	Delete(ctx context.Context, endpoint string) api.Response
}

// Collection exposes the standard operations of one backend
// collection following the {resource}, {resource}/{id},
// {resource}/new conventions.
type Collection[T any] struct {
	caller   Caller
	path     string
	validate *validator.Validate
}

func newCollection[T any](caller Caller, path string, v *validator.Validate) *Collection[T] {
	return &Collection[T]{caller: caller, path: path, validate: v}
}

// List fetches every record in the collection.
func (c *Collection[T]) List(ctx context.Context) ([]T, api.Response) {
	resp := c.caller.Get(ctx, c.path, nil)
	if !resp.OK() {
		return nil, resp
	}
	items, err := api.Decode[[]T](resp)
	if err != nil {
		return nil, api.Response{Error: err.Error(), Status: resp.Status}
	}
	return items, resp
}

// Get fetches one record by numeric ID.
func (c *Collection[T]) Get(ctx context.Context, id int64) (*T, api.Response) {
	resp := c.caller.Get(ctx, config.ByID(c.path, id), nil)
	if !resp.OK() {
		return nil, resp
	}
	item, err := api.Decode[T](resp)
	if err != nil {
		return nil, api.Response{Error: err.Error(), Status: resp.Status}
	}
	return &item, resp
}

// Create posts a new record after validating the payload locally.
func (c *Collection[T]) Create(ctx context.Context, payload any) api.Response {
	if err := c.validate.Struct(payload); err != nil {
		return api.Response{Error: err.Error(), Status: http.StatusBadRequest}
	}
	return c.caller.Post(ctx, config.ForCreate(c.path), payload)
}

// Update replaces the record with the given ID.
func (c *Collection[T]) Update(ctx context.Context, id int64, payload any) api.Response {
	if err := c.validate.Struct(payload); err != nil {
		return api.Response{Error: err.Error(), Status: http.StatusBadRequest}
	}
	return c.caller.Put(ctx, config.ByID(c.path, id), payload)
}

// Delete removes the record with the given ID.
func (c *Collection[T]) Delete(ctx context.Context, id int64) api.Response {
	return c.caller.Delete(ctx, config.ByID(c.path, id))
}

// Users adds the profile fetch to the standard user operations.
type Users struct {
	*Collection[models.User]
}

// Profile fetches the authenticated user's own profile.
func (u *Users) Profile(ctx context.Context) (*models.Profile, api.Response) {
	resp := u.caller.Get(ctx, config.EndpointProfile, nil)
	if !resp.OK() {
		return nil, resp
	}
	p, err := api.Decode[models.Profile](resp)
	if err != nil {
		return nil, api.Response{Error: err.Error(), Status: resp.Status}
	}
	return &p, resp
}

// Reservations adds the schedule and server-side filter endpoints to
// the standard reservation operations.
type Reservations struct {
	*Collection[models.Reservation]
}

// Schedule fetches the reservation schedule, optionally narrowed by
// query parameters (mechanicId, date, ...).
func (r *Reservations) Schedule(ctx context.Context, query url.Values) ([]models.Reservation, api.Response) {
	resp := r.caller.Get(ctx, config.EndpointReservationSchedule, query)
	if !resp.OK() {
		return nil, resp
	}
	items, err := api.Decode[[]models.Reservation](resp)
	if err != nil {
		return nil, api.Response{Error: err.Error(), Status: resp.Status}
	}
	return items, resp
}

// Filter runs a server-side reservation search.
func (r *Reservations) Filter(ctx context.Context, query url.Values) ([]models.Reservation, api.Response) {
	resp := r.caller.Get(ctx, config.EndpointReservationFilter, query)
	if !resp.OK() {
		return nil, resp
	}
	items, err := api.Decode[[]models.Reservation](resp)
	if err != nil {
		return nil, api.Response{Error: err.Error(), Status: resp.Status}
	}
	return items, resp
}

// Registry bundles every resource gateway behind the one shared
// client, built once at the composition root.
type Registry struct {
	Users           *Users
	Clients         *Collection[models.Client]
	Mechanics       *Collection[models.Mechanic]
	Cars            *Collection[models.Car]
	Services        *Collection[models.Service]
	Reservations    *Reservations
	RepairJobs      *Collection[models.RepairJob]
	VisitorRequests *Collection[models.VisitorRequest]
}

// NewRegistry constructs gateways for every backend collection.
func NewRegistry(caller Caller) *Registry {
	v := validator.New()
	return &Registry{
		Users:           &Users{newCollection[models.User](caller, config.EndpointUsers, v)},
		Clients:         newCollection[models.Client](caller, config.EndpointClients, v),
		Mechanics:       newCollection[models.Mechanic](caller, config.EndpointMechanics, v),
		Cars:            newCollection[models.Car](caller, config.EndpointCars, v),
		Services:        newCollection[models.Service](caller, config.EndpointServices, v),
		Reservations:    &Reservations{newCollection[models.Reservation](caller, config.EndpointReservations, v)},
		RepairJobs:      newCollection[models.RepairJob](caller, config.EndpointRepairJobs, v),
		VisitorRequests: newCollection[models.VisitorRequest](caller, config.EndpointVisitorRequests, v),
	}
}
