package format

import (
	"github.com/aletheia/portal/h"
)

// Badge is a label and a colour class.
type Badge struct {
	Label string
	Tone  string
}

var statusBadges = map[string]Badge{
	"successful":  {"Paid", "success"},
	"pending":     {"Pending", "warning"},
	"failed":      {"Failed", "danger"},
	"occupied":    {"Occupied", "success"},
	"vacant":      {"Vacant", "gray"},
	"open":        {"Open", "info"},
	"in_progress": {"In Progress", "warning"},
	"resolved":    {"Resolved", "success"},
	"closed":      {"Closed", "gray"},
	"accepted":    {"Accepted", "success"},
	"expired":     {"Expired", "danger"},
}

var priorityBadges = map[string]Badge{
	"low":    {"Low", "gray"},
	"medium": {"Medium", "info"},
	"high":   {"High", "warning"},
	"urgent": {"Urgent", "danger"},
}

// StatusFor looks up a status, falling back to the raw text in gray.
func StatusFor(status string) Badge {
	if b, ok := statusBadges[status]; ok {
		return b
	}
	return Badge{status, "gray"}
}

// PriorityFor looks up a priority, falling back to the raw text in gray.
func PriorityFor(priority string) Badge {
	if b, ok := priorityBadges[priority]; ok {
		return b
	}
	return Badge{priority, "gray"}
}

func (b Badge) Node() h.H {
	return h.Span(h.Class("badge badge-"+b.Tone), h.Text(b.Label))
}

func StatusBadge(status string) h.H {
	return StatusFor(status).Node()
}

func PriorityBadge(priority string) h.H {
	return PriorityFor(priority).Node()
}
