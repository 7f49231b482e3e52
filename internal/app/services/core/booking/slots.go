package booking

import (
	"strings"
	"time"

	"suma-service/internal/app/models"
	"suma-service/internal/pkg/constvars"
	"suma-service/internal/pkg/utils"
)

// GenerateTimeSlots walks from startTime in durationMinutes steps and emits
// every slot whose start is strictly before endTime. Only the start is
// checked, so a trailing slot that begins before closing is kept even when
// it runs past it.
func GenerateTimeSlots(startTime, endTime string, durationMinutes int) []string {
	slots := []string{}
	if durationMinutes <= 0 {
		return slots
	}

	start, okStart := utils.MinuteOfDay(startTime)
	end, okEnd := utils.MinuteOfDay(endTime)
	if !okStart || !okEnd || start >= end {
		return slots
	}

	for cursor := start; cursor < end; cursor += durationMinutes {
		slots = append(slots, utils.FormatMinuteOfDay(cursor))
	}
	return slots
}

// ResolveAvailableSlots lists the bookable times for a doctor on one date.
// Intervals are concatenated in configured order and not merged, so
// overlapping intervals repeat their shared slots. Booked times are removed
// by exact string match.
func ResolveAvailableSlots(schedule models.WeekSchedule, date string, slotDuration int, bookedTimes []string) ([]string, error) {
	day, err := time.Parse(constvars.DateLayout, date)
	if err != nil {
		return nil, err
	}

	daySchedule, ok := schedule[strings.ToLower(day.Weekday().String())]
	if !ok || !daySchedule.Active {
		return []string{}, nil
	}

	booked := make(map[string]bool, len(bookedTimes))
	for _, t := range bookedTimes {
		booked[t] = true
	}

	available := []string{}
	for _, interval := range daySchedule.Slots {
		for _, slot := range GenerateTimeSlots(interval.Start, interval.End, slotDuration) {
			if booked[slot] {
				continue
			}
			available = append(available, slot)
		}
	}
	return available, nil
}
