package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schilo132/real-estate-property-reservations-api/domain"
	"github.com/schilo132/real-estate-property-reservations-api/repository"
)

type admissionFixture struct {
	store         *repository.MemoryStore
	admission     AdmissionService
	property      *domain.Property
	advertisement *domain.Advertisement
}

func newAdmissionFixture(t *testing.T, guestVacancies int) *admissionFixture {
	t.Helper()
	logger := quietLogger()
	store := repository.NewMemoryStore()
	ctx := context.Background()

	property := &domain.Property{
		Code:           1,
		GuestVacancies: guestVacancies,
		Bathrooms:      2,
		PetsAllowed:    true,
		CleaningCost:   10.00,
	}
	_, err := store.InsertProperty(ctx, property)
	require.NoError(t, err)

	advertisement := &domain.Advertisement{
		PropertyID:  property.ID,
		Platform:    "TestPlatform1",
		PlatformTax: 50.00,
	}
	_, err = store.InsertAdvertisement(ctx, advertisement)
	require.NoError(t, err)

	codes := NewCodeServiceImpl(store, logger, 1000)
	return &admissionFixture{
		store:         store,
		admission:     NewAdmissionServiceImpl(store, codes, logger),
		property:      property,
		advertisement: advertisement,
	}
}

func (f *admissionFixture) candidate(checkin time.Time, checkout time.Time, guests int) *domain.Reservation {
	return &domain.Reservation{
		AdvertisementID: f.advertisement.ID,
		CheckinDate:     checkin,
		CheckoutDate:    checkout,
		TotalCost:       100.00,
		Comment:         "Test1",
		Guests:          guests,
	}
}

func requireRejection(t *testing.T, err error, field string, reason string) {
	t.Helper()
	rejection, ok := domain.IsRejection(err)
	require.True(t, ok, "expected a rejection, got %v", err)
	assert.Equal(t, field, rejection.Field)
	assert.Equal(t, reason, rejection.Reason)
}

func TestAdmitReservationAssignsCodeAndPersists(t *testing.T) {
	f := newAdmissionFixture(t, 3)
	ctx := context.Background()

	admitted, err := f.admission.AdmitReservation(ctx,
		f.candidate(day(2023, time.January, 6), day(2023, time.January, 7), 2))
	require.NoError(t, err)

	assert.False(t, admitted.ID.IsZero())
	assert.GreaterOrEqual(t, admitted.Code, 1)
	assert.LessOrEqual(t, admitted.Code, MaxReservationCode)
	assert.False(t, admitted.CreationDate.IsZero())
	assert.Equal(t, admitted.CreationDate, admitted.UpdateDate)

	stored, err := f.store.GetReservation(ctx, admitted.ID)
	require.NoError(t, err)
	assert.Equal(t, admitted.Code, stored.Code)
}

func TestAdmitReservationRejectsInvertedDates(t *testing.T) {
	f := newAdmissionFixture(t, 3)

	_, err := f.admission.AdmitReservation(context.Background(),
		f.candidate(day(2023, time.January, 7), day(2023, time.January, 6), 2))

	requireRejection(t, err, "checkin_date", domain.ReasonInvalidDateOrder)
}

func TestAdmitReservationDateOrderCheckedBeforeFieldChecks(t *testing.T) {
	f := newAdmissionFixture(t, 3)
	candidate := f.candidate(day(2023, time.January, 7), day(2023, time.January, 6), 2)
	candidate.Comment = ""

	_, err := f.admission.AdmitReservation(context.Background(), candidate)

	requireRejection(t, err, "checkin_date", domain.ReasonInvalidDateOrder)
}

func TestAdmitReservationRejectsGuestsOverVacancies(t *testing.T) {
	f := newAdmissionFixture(t, 3)

	// No overlapping reservations at all: the baseline check alone fires.
	_, err := f.admission.AdmitReservation(context.Background(),
		f.candidate(day(2023, time.January, 10), day(2023, time.January, 11), 20))

	requireRejection(t, err, "guests", domain.ReasonInsufficientVacancies)
}

func TestAdmitReservationRejectsAtCheckin(t *testing.T) {
	f := newAdmissionFixture(t, 3)
	ctx := context.Background()

	_, err := f.admission.AdmitReservation(ctx,
		f.candidate(day(2023, time.January, 6), day(2023, time.January, 7), 2))
	require.NoError(t, err)

	_, err = f.admission.AdmitReservation(ctx,
		f.candidate(day(2023, time.January, 6), day(2023, time.January, 9), 2))

	requireRejection(t, err, "checkin_date", domain.ReasonInsufficientVacanciesAtCheckin)
}

func TestAdmitReservationRejectsAtCheckout(t *testing.T) {
	f := newAdmissionFixture(t, 3)
	ctx := context.Background()

	_, err := f.admission.AdmitReservation(ctx,
		f.candidate(day(2023, time.January, 6), day(2023, time.January, 7), 2))
	require.NoError(t, err)

	_, err = f.admission.AdmitReservation(ctx,
		f.candidate(day(2023, time.January, 5), day(2023, time.January, 7), 2))

	requireRejection(t, err, "checkout_date", domain.ReasonInsufficientVacanciesAtCheckout)
}

func TestAdmitReservationCountsSiblingAdvertisements(t *testing.T) {
	// The capacity constraint spans the whole property, not just the
	// advertisement the candidate came through.
	f := newAdmissionFixture(t, 3)
	ctx := context.Background()

	other := &domain.Advertisement{
		PropertyID:  f.property.ID,
		Platform:    "TestPlatform2",
		PlatformTax: 25.00,
	}
	_, err := f.store.InsertAdvertisement(ctx, other)
	require.NoError(t, err)

	first := f.candidate(day(2023, time.January, 6), day(2023, time.January, 7), 2)
	first.AdvertisementID = other.ID
	_, err = f.admission.AdmitReservation(ctx, first)
	require.NoError(t, err)

	_, err = f.admission.AdmitReservation(ctx,
		f.candidate(day(2023, time.January, 6), day(2023, time.January, 9), 2))

	requireRejection(t, err, "checkin_date", domain.ReasonInsufficientVacanciesAtCheckin)
}

func TestAdmitReservationIsNotIdempotent(t *testing.T) {
	// Re-submitting an admitted reservation's exact data overlaps the
	// persisted copy and is rejected.
	f := newAdmissionFixture(t, 3)
	ctx := context.Background()

	_, err := f.admission.AdmitReservation(ctx,
		f.candidate(day(2023, time.January, 6), day(2023, time.January, 7), 2))
	require.NoError(t, err)

	_, err = f.admission.AdmitReservation(ctx,
		f.candidate(day(2023, time.January, 6), day(2023, time.January, 7), 2))

	requireRejection(t, err, "checkin_date", domain.ReasonInsufficientVacanciesAtCheckin)
}

func TestAdmitReservationUnknownAdvertisement(t *testing.T) {
	f := newAdmissionFixture(t, 3)
	unknown := f.candidate(day(2023, time.January, 6), day(2023, time.January, 7), 2)
	unknown.AdvertisementID = f.property.ID // not an advertisement id

	_, err := f.admission.AdmitReservation(context.Background(), unknown)

	assert.ErrorIs(t, err, domain.ErrAdvertisementNotFound())
}

func TestAdmitReservationSerializesPerProperty(t *testing.T) {
	// Two concurrent candidates, each fine on its own, jointly over
	// capacity: exactly one may be admitted.
	f := newAdmissionFixture(t, 3)
	ctx := context.Background()

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := range results {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			_, err := f.admission.AdmitReservation(ctx,
				f.candidate(day(2023, time.January, 6), day(2023, time.January, 9), 2))
			results[slot] = err
		}(i)
	}
	wg.Wait()

	admittedCount := 0
	rejectedCount := 0
	for _, err := range results {
		if err == nil {
			admittedCount++
			continue
		}
		requireRejection(t, err, "checkin_date", domain.ReasonInsufficientVacanciesAtCheckin)
		rejectedCount++
	}
	assert.Equal(t, 1, admittedCount)
	assert.Equal(t, 1, rejectedCount)

	stored, err := f.store.ListReservationsForProperty(ctx, f.property.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestAdmitReservationMapsDuplicateCodeToConflict(t *testing.T) {
	f := newAdmissionFixture(t, 30)
	ctx := context.Background()

	first, err := f.admission.AdmitReservation(ctx,
		f.candidate(day(2023, time.February, 1), day(2023, time.February, 2), 1))
	require.NoError(t, err)

	codes := &fixedCodeService{code: first.Code}
	admission := NewAdmissionServiceImpl(f.store, codes, quietLogger())

	_, err = admission.AdmitReservation(ctx,
		f.candidate(day(2023, time.March, 1), day(2023, time.March, 2), 1))

	assert.True(t, errors.Is(err, domain.ErrConcurrentAdmissionConflict))
}

// fixedCodeService simulates a generator in another process that picked an
// already claimed code after its own existence check.
type fixedCodeService struct {
	code int
}

func (s *fixedCodeService) GenerateUniqueReservationCode(ctx context.Context) (int, error) {
	return s.code, nil
}
