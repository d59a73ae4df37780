package services

import (
	"context"

	"github.com/schilo132/real-estate-property-reservations-api/domain"
)

// AdmissionService is the single entry point deciding whether a candidate
// reservation may be admitted. On success the returned reservation carries
// its assigned code, timestamps and store identifier. On a field level
// failure the error is a *domain.Rejection; store and internal faults come
// back as plain errors.
//
// Admission is all or nothing: either the reservation is persisted exactly
// as returned, or nothing was written.
type AdmissionService interface {
	AdmitReservation(ctx context.Context, candidate *domain.Reservation) (*domain.Reservation, error)
}
