package booking

import (
	"testing"

	"suma-service/internal/app/models"

	"github.com/stretchr/testify/assert"
)

func TestGenerateTimeSlots(t *testing.T) {
	t.Run("emits slots duration apart starting at startTime", func(t *testing.T) {
		slots := GenerateTimeSlots("09:00", "11:00", 30)
		assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30"}, slots)
	})

	t.Run("keeps trailing slot that starts before closing but ends after", func(t *testing.T) {
		slots := GenerateTimeSlots("09:00", "10:10", 30)
		assert.Equal(t, []string{"09:00", "09:30", "10:00"}, slots, "10:00 starts before 10:10 so it stays")
	})

	t.Run("start equal to end produces nothing", func(t *testing.T) {
		assert.Empty(t, GenerateTimeSlots("09:00", "09:00", 30))
	})

	t.Run("start after end produces nothing", func(t *testing.T) {
		assert.Empty(t, GenerateTimeSlots("12:00", "09:00", 30))
	})

	t.Run("non-positive duration produces nothing", func(t *testing.T) {
		assert.Empty(t, GenerateTimeSlots("09:00", "12:00", 0))
		assert.Empty(t, GenerateTimeSlots("09:00", "12:00", -15))
	})

	t.Run("unparseable times produce nothing", func(t *testing.T) {
		assert.Empty(t, GenerateTimeSlots("9am", "12:00", 30))
	})
}

func TestResolveAvailableSlots(t *testing.T) {
	schedule := models.WeekSchedule{
		"monday": {
			Active: true,
			Slots:  []models.TimeRange{{Start: "09:00", End: "12:00"}},
		},
		"tuesday": {
			Active: false,
			Slots:  []models.TimeRange{{Start: "09:00", End: "12:00"}},
		},
	}

	t.Run("filters already booked times", func(t *testing.T) {
		// 2026-08-31 is a Monday.
		slots, err := ResolveAvailableSlots(schedule, "2026-08-31", 30, []string{"09:00", "09:30"})
		assert.NoError(t, err)
		assert.Equal(t, []string{"10:00", "10:30", "11:00", "11:30"}, slots)
	})

	t.Run("inactive day resolves empty regardless of configured slots", func(t *testing.T) {
		// 2026-09-01 is a Tuesday.
		slots, err := ResolveAvailableSlots(schedule, "2026-09-01", 30, nil)
		assert.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("day missing from schedule resolves empty", func(t *testing.T) {
		// 2026-09-02 is a Wednesday.
		slots, err := ResolveAvailableSlots(schedule, "2026-09-02", 30, nil)
		assert.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("overlapping intervals are concatenated without dedup", func(t *testing.T) {
		overlapping := models.WeekSchedule{
			"monday": {
				Active: true,
				Slots: []models.TimeRange{
					{Start: "09:00", End: "10:00"},
					{Start: "09:30", End: "10:30"},
				},
			},
		}
		slots, err := ResolveAvailableSlots(overlapping, "2026-08-31", 30, nil)
		assert.NoError(t, err)
		assert.Equal(t, []string{"09:00", "09:30", "09:30", "10:00"}, slots)
	})

	t.Run("booked slot never appears in the output", func(t *testing.T) {
		slots, err := ResolveAvailableSlots(schedule, "2026-08-31", 30, []string{"11:00"})
		assert.NoError(t, err)
		assert.NotContains(t, slots, "11:00")
	})

	t.Run("bad date is an error", func(t *testing.T) {
		_, err := ResolveAvailableSlots(schedule, "31/08/2026", 30, nil)
		assert.Error(t, err)
	})
}
