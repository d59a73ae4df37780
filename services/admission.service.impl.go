package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/schilo132/real-estate-property-reservations-api/domain"
	"github.com/schilo132/real-estate-property-reservations-api/repository"
)

type AdmissionServiceImpl struct {
	store  repository.EntityStore
	codes  CodeService
	logger *logrus.Logger

	// Admissions are serialized per property: two concurrent candidates
	// against the same property must not both pass validation on the same
	// pre-request state. Different properties do not contend.
	mu            sync.Mutex
	propertyLocks map[primitive.ObjectID]*sync.Mutex
}

func NewAdmissionServiceImpl(store repository.EntityStore, codes CodeService, logger *logrus.Logger) AdmissionService {
	return &AdmissionServiceImpl{
		store:         store,
		codes:         codes,
		logger:        logger,
		propertyLocks: make(map[primitive.ObjectID]*sync.Mutex),
	}
}

// AdmitReservation validates the candidate against its property and every
// reservation reachable from that property, and persists it with a fresh
// unique code when it fits. Checks run in order and short circuit on the
// first failure:
//
//  1. the advertisement and its property must exist
//  2. checkin must not be after checkout
//  3. per field checks (comment, cost, guests)
//  4. the guest count alone must fit the property's vacancies
//  5. occupancy at the checkin and checkout instants must stay within the
//     vacancies next to all existing reservations of the property
//
// The per property admission lock is held from before the reservation load
// through the insert, closing the race between validation and write.
func (s *AdmissionServiceImpl) AdmitReservation(ctx context.Context, candidate *domain.Reservation) (*domain.Reservation, error) {
	advertisement, err := s.store.GetAdvertisement(ctx, candidate.AdvertisementID)
	if err != nil {
		return nil, err
	}
	property, err := s.store.GetProperty(ctx, advertisement.PropertyID)
	if err != nil {
		return nil, err
	}

	lock := s.propertyLock(property.ID)
	lock.Lock()
	defer lock.Unlock()

	if candidate.CheckinDate.After(candidate.CheckoutDate) {
		return nil, domain.NewRejection("checkin_date", domain.ReasonInvalidDateOrder)
	}
	if err := candidate.Validate(); err != nil {
		return nil, err
	}
	if candidate.Guests > property.GuestVacancies {
		return nil, domain.NewRejection("guests", domain.ReasonInsufficientVacancies)
	}

	existing, err := s.store.ListReservationsForProperty(ctx, property.ID)
	if err != nil {
		return nil, err
	}
	switch CheckCapacity(candidate, existing, property.GuestVacancies) {
	case CapacityExceededAtCheckin:
		return nil, domain.NewRejection("checkin_date", domain.ReasonInsufficientVacanciesAtCheckin)
	case CapacityExceededAtCheckout:
		return nil, domain.NewRejection("checkout_date", domain.ReasonInsufficientVacanciesAtCheckout)
	}

	code, err := s.codes.GenerateUniqueReservationCode(ctx)
	if err != nil {
		return nil, err
	}

	admitted := *candidate
	admitted.Code = code
	now := time.Now().UTC()
	admitted.CreationDate = now
	admitted.UpdateDate = now

	if _, err := s.store.InsertReservation(ctx, &admitted); err != nil {
		if errors.Is(err, domain.ErrDuplicateReservationCode) {
			// Another admission, outside this process, claimed the code
			// between generation and insert.
			s.logger.WithFields(logrus.Fields{"path": "services/admission"}).Warn(
				"Reservation code claimed concurrently, admission must be retried")
			return nil, domain.ErrConcurrentAdmissionConflict
		}
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{"path": "services/admission"}).Info(
		"Admitted reservation ", admitted.Code, " for property ", property.Code)
	return &admitted, nil
}

func (s *AdmissionServiceImpl) propertyLock(propertyID primitive.ObjectID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.propertyLocks[propertyID]
	if !ok {
		lock = &sync.Mutex{}
		s.propertyLocks[propertyID] = lock
	}
	return lock
}
