package service

import (
	"log"

	"cicorent/internal/db"
)

type JobRepo interface {
	GetStalePendingBookingIDs() ([]string, error)
	UpdateBookingStatuses(ids []string, newStatus string) error
}

// JobService holds scheduled maintenance work. It runs under the cron
// scheduler in main.
type JobService struct {
	Repo JobRepo
}

func NewJobService(repo JobRepo) *JobService {
	return &JobService{Repo: repo}
}

// CancelStalePendingBookings cancels PENDING bookings whose start date has
// already passed without confirmation, so their units return to the pool.
func (s *JobService) CancelStalePendingBookings() {
	ids, err := s.Repo.GetStalePendingBookingIDs()
	if err != nil {
		log.Printf("job: listing stale pending bookings: %v", err)
		return
	}
	if len(ids) == 0 {
		return
	}
	if err := s.Repo.UpdateBookingStatuses(ids, db.StatusCancelled); err != nil {
		log.Printf("job: cancelling stale pending bookings: %v", err)
		return
	}
	log.Printf("job: cancelled %d stale pending bookings", len(ids))
}
