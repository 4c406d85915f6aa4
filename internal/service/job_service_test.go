package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"cicorent/internal/db"
)

type fakeJobRepo struct {
	stale      []string
	listErr    error
	updatedIDs []string
	newStatus  string
}

func (f *fakeJobRepo) GetStalePendingBookingIDs() ([]string, error) {
	return f.stale, f.listErr
}

func (f *fakeJobRepo) UpdateBookingStatuses(ids []string, newStatus string) error {
	f.updatedIDs = ids
	f.newStatus = newStatus
	return nil
}

func TestCancelStalePendingBookings(t *testing.T) {
	repo := &fakeJobRepo{stale: []string{"book-1", "book-2"}}
	NewJobService(repo).CancelStalePendingBookings()

	assert.Equal(t, []string{"book-1", "book-2"}, repo.updatedIDs)
	assert.Equal(t, db.StatusCancelled, repo.newStatus)
}

func TestCancelStalePendingBookingsNothingToDo(t *testing.T) {
	repo := &fakeJobRepo{}
	NewJobService(repo).CancelStalePendingBookings()
	assert.Nil(t, repo.updatedIDs)
}

func TestCancelStalePendingBookingsListFailure(t *testing.T) {
	repo := &fakeJobRepo{stale: []string{"book-1"}, listErr: errors.New("db down")}
	NewJobService(repo).CancelStalePendingBookings()
	assert.Nil(t, repo.updatedIDs)
}
