package format

import (
	"testing"
	"time"

	"github.com/aletheia/portal/h"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoney(t *testing.T) {
	assert.Equal(t, "₦250,000.00", Money(25_000_000))
	assert.Equal(t, "₦0.00", Money(0))
	assert.Equal(t, "₦1,500.50", Money(150_050))
	assert.Equal(t, "₦250,000", Naira(25_000_000))
	assert.Equal(t, "₦1,500.50", Naira(150_050))
	assert.Equal(t, int64(25_000_000), KoboFromNaira(250_000))
}

func TestOccupancy(t *testing.T) {
	assert.Equal(t, 0, OccupancyPercent(3, 0))
	assert.Equal(t, 67, OccupancyPercent(2, 3))
	assert.Equal(t, 33, OccupancyPercent(1, 3))
	assert.Equal(t, 100, OccupancyPercent(4, 4))
	assert.Equal(t, 50, OccupancyPercent(1, 2))

	assert.Equal(t, "Healthy", OccupancyLabel(80))
	assert.Equal(t, "Fair", OccupancyLabel(50))
	assert.Equal(t, "Low", OccupancyLabel(49))
}

func TestDates(t *testing.T) {
	assert.Equal(t, "Mar 5, 2025", DateString("2025-03-05T10:00:00Z"))
	assert.Equal(t, "Mar 5, 2025", DateString("2025-03-05"))
	assert.Equal(t, Empty, DateString(""))
	assert.Equal(t, Empty, DateString("yesterday"))
	assert.Equal(t, Empty, DatePtr(nil))
	assert.Equal(t, Empty, Date(time.Time{}))
	assert.Equal(t, "Oct 2026", Period(time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)))
}

func TestTimeAgo(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "Just now", TimeAgo(now.Add(-30*time.Second), now))
	assert.Equal(t, "5m ago", TimeAgo(now.Add(-5*time.Minute), now))
	assert.Equal(t, "3h ago", TimeAgo(now.Add(-3*time.Hour), now))
	assert.Equal(t, "2d ago", TimeAgo(now.Add(-49*time.Hour), now))
	assert.Equal(t, "Aug 1, 2026", TimeAgo(time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), now))
}

func TestText(t *testing.T) {
	assert.Equal(t, "AO", Initials("ada obi"))
	assert.Equal(t, "AO", Initials("  Ada   Obi Nwosu "))
	assert.Equal(t, "A", Initials("Ada"))
	assert.Equal(t, "?", Initials(""))
	assert.Equal(t, "Ada", FirstName("Ada Obi", "Chief"))
	assert.Equal(t, "Chief", FirstName(" ", "Chief"))
	assert.Equal(t, "property", Plural(1, "property", "properties"))
	assert.Equal(t, "properties", Plural(0, "property", "properties"))
	assert.Equal(t, "512 B", FileSize(512))
	assert.Equal(t, "1.5 KB", FileSize(1536))
	assert.Equal(t, "2.0 MB", FileSize(2*1024*1024))
	assert.Equal(t, "blue", AvatarColor(0))
	assert.Equal(t, "blue", AvatarColor(4))
	assert.Equal(t, "orange", AvatarColor(3))
	assert.Equal(t, "Landlord", Title("landlord"))
}

func TestBadges(t *testing.T) {
	cases := map[string]Badge{
		"successful":  {"Paid", "success"},
		"pending":     {"Pending", "warning"},
		"in_progress": {"In Progress", "warning"},
		"vacant":      {"Vacant", "gray"},
		"mystery":     {"mystery", "gray"},
	}
	for status, want := range cases {
		assert.Equal(t, want, StatusFor(status), status)
	}
	assert.Equal(t, Badge{"Urgent", "danger"}, PriorityFor("urgent"))
	assert.Equal(t, Badge{"someday", "gray"}, PriorityFor("someday"))

	s, err := h.String(StatusBadge("failed"))
	require.NoError(t, err)
	assert.Equal(t, `<span class="badge badge-danger">Failed</span>`, s)
}
