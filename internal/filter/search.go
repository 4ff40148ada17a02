package filter

import (
	"strings"
	"time"

	"github.com/ahakimov/garagedesk/internal/models"
)

// MatchesQuery reports whether any field contains the query,
// case-insensitive. An empty query matches everything.
func MatchesQuery(query string, fields ...string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}

// sameOrAfterDate / sameOrBeforeDate compare by calendar date so the
// range is inclusive on both ends.
func sameOrAfterDate(t, bound time.Time) bool {
	ty, tm, td := t.Date()
	by, bm, bd := bound.Date()
	return time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC).
		Compare(time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)) >= 0
}

func sameOrBeforeDate(t, bound time.Time) bool {
	ty, tm, td := t.Date()
	by, bm, bd := bound.Date()
	return time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC).
		Compare(time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)) <= 0
}

// ReservationFilter holds the independently toggled filter
// dimensions for reservation lists. Zero values switch a dimension
// off; active dimensions combine with AND.
type ReservationFilter struct {
	// Query is matched case-insensitively against client, mechanic,
	// and service names plus the notes field.
	Query string
	// DateFrom / DateTo bound the visit date, inclusive on both ends.
	DateFrom *time.Time
	DateTo   *time.Time
	// ClientID / MechanicID are exact-match identifiers.
	ClientID   int64
	MechanicID int64
	// Status is matched against the derived display status, with
	// "in progress" and "in_progress" treated as the same value.
	Status string
}

// Matches applies every active dimension to one reservation.
func (f ReservationFilter) Matches(r models.Reservation, now time.Time) bool {
	if !MatchesQuery(f.Query, r.ClientName, r.MechanicName, r.ServiceName, r.Notes) {
		return false
	}
	if f.ClientID != 0 && r.ClientID != f.ClientID {
		return false
	}
	if f.MechanicID != 0 && r.MechanicID != f.MechanicID {
		return false
	}
	if f.DateFrom != nil || f.DateTo != nil {
		visit, ok := ParseTime(r.VisitDateTime)
		if !ok {
			return false
		}
		if f.DateFrom != nil && !sameOrAfterDate(visit, *f.DateFrom) {
			return false
		}
		if f.DateTo != nil && !sameOrBeforeDate(visit, *f.DateTo) {
			return false
		}
	}
	if f.Status != "" {
		derived := ReservationStatus(r, now)
		if NormalizeStatus(derived.Label) != NormalizeStatus(f.Status) {
			return false
		}
	}
	return true
}

// Reservations returns the subset of list matching the filter.
func Reservations(list []models.Reservation, f ReservationFilter, now time.Time) []models.Reservation {
	out := make([]models.Reservation, 0, len(list))
	for _, r := range list {
		if f.Matches(r, now) {
			out = append(out, r)
		}
	}
	return out
}

// RepairJobFilter holds the toggled dimensions for repair-job lists.
type RepairJobFilter struct {
	Query      string
	MechanicID int64
	CarID      int64
	Status     string
}

// Matches applies every active dimension to one repair job.
func (f RepairJobFilter) Matches(j models.RepairJob) bool {
	if !MatchesQuery(f.Query, j.Description, j.Status) {
		return false
	}
	if f.MechanicID != 0 && j.MechanicID != f.MechanicID {
		return false
	}
	if f.CarID != 0 && j.CarID != f.CarID {
		return false
	}
	if f.Status != "" && NormalizeStatus(j.Status) != NormalizeStatus(f.Status) {
		return false
	}
	return true
}

// RepairJobs returns the subset of list matching the filter.
func RepairJobs(list []models.RepairJob, f RepairJobFilter) []models.RepairJob {
	out := make([]models.RepairJob, 0, len(list))
	for _, j := range list {
		if f.Matches(j) {
			out = append(out, j)
		}
	}
	return out
}
