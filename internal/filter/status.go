// Package filter holds the pure display-status derivation and
// collection-filtering helpers. Nothing here touches the network or
// shared state; the clock is always passed in.
package filter

import (
	"strings"
	"time"

	"github.com/ahakimov/garagedesk/internal/models"
)

// DisplayStatus pairs the derived label with a style token for the
// presentation layer.
type DisplayStatus struct {
	Label string
	Style string
}

// Style tokens understood by the presentation layer.
const (
	StyleSuccess = "green"
	StyleActive  = "blue"
	StyleMuted   = "gray"
	StyleDanger  = "red"
	StyleWarning = "yellow"
)

// Timestamp layouts the backend is known to emit.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime parses a backend timestamp, reporting ok=false for empty
// or unrecognized values.
func ParseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ReservationStatus derives the display status from the stored status
// and the visit window. An explicit cancellation always wins; with no
// known start time the stored status is shown as-is.
func ReservationStatus(r models.Reservation, now time.Time) DisplayStatus {
	if strings.EqualFold(r.Status, "cancelled") {
		return DisplayStatus{Label: "Cancelled", Style: StyleDanger}
	}

	start, ok := ParseTime(r.VisitDateTime)
	if !ok {
		if r.Status != "" {
			return DisplayStatus{Label: r.Status, Style: StyleMuted}
		}
		return DisplayStatus{Label: "Unknown", Style: StyleMuted}
	}

	if now.Before(start) {
		return DisplayStatus{Label: "Confirmed", Style: StyleSuccess}
	}
	if end, ok := ParseTime(r.EndDateTime); ok && now.After(end) {
		return DisplayStatus{Label: "Ended", Style: StyleMuted}
	}
	return DisplayStatus{Label: "In Progress", Style: StyleActive}
}

// RepairJobStatus maps a repair job's stored status onto a display
// label and style.
func RepairJobStatus(j models.RepairJob) DisplayStatus {
	switch NormalizeStatus(j.Status) {
	case "pending":
		return DisplayStatus{Label: "Pending", Style: StyleWarning}
	case "in progress":
		return DisplayStatus{Label: "In Progress", Style: StyleActive}
	case "completed", "done":
		return DisplayStatus{Label: "Completed", Style: StyleSuccess}
	case "cancelled":
		return DisplayStatus{Label: "Cancelled", Style: StyleDanger}
	case "":
		return DisplayStatus{Label: "Unknown", Style: StyleMuted}
	}
	return DisplayStatus{Label: j.Status, Style: StyleMuted}
}

// NormalizeStatus lower-cases a status and folds the
// "in_progress"/"in progress" spelling difference.
func NormalizeStatus(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.ReplaceAll(s, "_", " ")
}
