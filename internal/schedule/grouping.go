package schedule

import (
	"sort"

	"trainmice/internal/models"
)

// GroupBookingsByTrainer arranges bookings the way the dashboard list shows
// them: one group per trainer, dates ascending inside a group, trainers
// ordered by display name then id. Input order is preserved within a date.
func GroupBookingsByTrainer(bookings []models.BookingRequest) []models.TrainerBookingGroup {
	byTrainer := make(map[string][]models.BookingRequest)
	for _, b := range bookings {
		byTrainer[b.TrainerID] = append(byTrainer[b.TrainerID], b)
	}

	groups := make([]models.TrainerBookingGroup, 0, len(byTrainer))
	for trainerID, list := range byTrainer {
		byDate := make(map[string][]models.BookingRequest)
		for _, b := range list {
			d := CanonicalDate(b.RequestedDate)
			byDate[d] = append(byDate[d], b)
		}

		dates := make([]string, 0, len(byDate))
		for d := range byDate {
			dates = append(dates, d)
		}
		sort.Strings(dates)

		group := models.TrainerBookingGroup{
			TrainerID:   trainerID,
			TrainerName: list[0].TrainerName,
		}
		for _, d := range dates {
			group.Dates = append(group.Dates, models.BookingDateGroup{
				Date:     d,
				Bookings: byDate[d],
			})
		}
		groups = append(groups, group)
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].TrainerName != groups[j].TrainerName {
			return groups[i].TrainerName < groups[j].TrainerName
		}
		return groups[i].TrainerID < groups[j].TrainerID
	})
	return groups
}
