package repository

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/schilo132/real-estate-property-reservations-api/domain"
)

// MemoryStore is an EntityStore held entirely in process memory. It mirrors
// MongoStore's behavior, including the code uniqueness constraint and the
// property delete cascade, and backs the service tests.
type MemoryStore struct {
	mu             sync.RWMutex
	properties     map[primitive.ObjectID]domain.Property
	advertisements map[primitive.ObjectID]domain.Advertisement
	reservations   map[primitive.ObjectID]domain.Reservation
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		properties:     make(map[primitive.ObjectID]domain.Property),
		advertisements: make(map[primitive.ObjectID]domain.Advertisement),
		reservations:   make(map[primitive.ObjectID]domain.Reservation),
	}
}

func (s *MemoryStore) InsertProperty(ctx context.Context, property *domain.Property) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.properties {
		if existing.Code == property.Code {
			return primitive.NilObjectID, domain.ErrDuplicatePropertyCode
		}
	}
	property.ID = primitive.NewObjectID()
	s.properties[property.ID] = *property
	return property.ID, nil
}

func (s *MemoryStore) GetProperty(ctx context.Context, id primitive.ObjectID) (*domain.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	property, ok := s.properties[id]
	if !ok {
		return nil, domain.ErrPropertyNotFound()
	}
	return &property, nil
}

func (s *MemoryStore) ListProperties(ctx context.Context, filter Filter) (domain.Properties, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var properties domain.Properties
	for _, property := range s.properties {
		if matchesFilter(property, filter) {
			copied := property
			properties = append(properties, &copied)
		}
	}
	return properties, nil
}

func (s *MemoryStore) UpdateProperty(ctx context.Context, property *domain.Property) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.properties[property.ID]; !ok {
		return domain.ErrPropertyNotFound()
	}
	for id, existing := range s.properties {
		if id != property.ID && existing.Code == property.Code {
			return domain.ErrDuplicatePropertyCode
		}
	}
	s.properties[property.ID] = *property
	return nil
}

func (s *MemoryStore) DeleteProperty(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.properties[id]; !ok {
		return domain.ErrPropertyNotFound()
	}
	for advertisementID, advertisement := range s.advertisements {
		if advertisement.PropertyID != id {
			continue
		}
		for reservationID, reservation := range s.reservations {
			if reservation.AdvertisementID == advertisementID {
				delete(s.reservations, reservationID)
			}
		}
		delete(s.advertisements, advertisementID)
	}
	delete(s.properties, id)
	return nil
}

func (s *MemoryStore) PropertyCodeExists(ctx context.Context, code int) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, property := range s.properties {
		if property.Code == code {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) InsertAdvertisement(ctx context.Context, advertisement *domain.Advertisement) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	advertisement.ID = primitive.NewObjectID()
	s.advertisements[advertisement.ID] = *advertisement
	return advertisement.ID, nil
}

func (s *MemoryStore) GetAdvertisement(ctx context.Context, id primitive.ObjectID) (*domain.Advertisement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	advertisement, ok := s.advertisements[id]
	if !ok {
		return nil, domain.ErrAdvertisementNotFound()
	}
	return &advertisement, nil
}

func (s *MemoryStore) ListAdvertisements(ctx context.Context, filter Filter) (domain.Advertisements, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var advertisements domain.Advertisements
	for _, advertisement := range s.advertisements {
		if matchesFilter(advertisement, filter) {
			copied := advertisement
			advertisements = append(advertisements, &copied)
		}
	}
	return advertisements, nil
}

func (s *MemoryStore) UpdateAdvertisement(ctx context.Context, advertisement *domain.Advertisement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.advertisements[advertisement.ID]; !ok {
		return domain.ErrAdvertisementNotFound()
	}
	s.advertisements[advertisement.ID] = *advertisement
	return nil
}

func (s *MemoryStore) InsertReservation(ctx context.Context, reservation *domain.Reservation) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.reservations {
		if existing.Code == reservation.Code {
			return primitive.NilObjectID, domain.ErrDuplicateReservationCode
		}
	}
	reservation.ID = primitive.NewObjectID()
	s.reservations[reservation.ID] = *reservation
	return reservation.ID, nil
}

func (s *MemoryStore) GetReservation(ctx context.Context, id primitive.ObjectID) (*domain.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	reservation, ok := s.reservations[id]
	if !ok {
		return nil, domain.ErrReservationNotFound()
	}
	return &reservation, nil
}

func (s *MemoryStore) ListReservations(ctx context.Context, filter Filter) (domain.Reservations, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var reservations domain.Reservations
	for _, reservation := range s.reservations {
		if matchesFilter(reservation, filter) {
			copied := reservation
			reservations = append(reservations, &copied)
		}
	}
	return reservations, nil
}

func (s *MemoryStore) ListReservationsForProperty(ctx context.Context, propertyID primitive.ObjectID) (domain.Reservations, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var reservations domain.Reservations
	for _, reservation := range s.reservations {
		advertisement, ok := s.advertisements[reservation.AdvertisementID]
		if !ok || advertisement.PropertyID != propertyID {
			continue
		}
		copied := reservation
		reservations = append(reservations, &copied)
	}
	return reservations, nil
}

func (s *MemoryStore) DeleteReservation(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reservations[id]; !ok {
		return domain.ErrReservationNotFound()
	}
	delete(s.reservations, id)
	return nil
}

func (s *MemoryStore) ReservationCodeExists(ctx context.Context, code int) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, reservation := range s.reservations {
		if reservation.Code == code {
			return true, nil
		}
	}
	return false, nil
}

// matchesFilter compares the record against the filter through a bson round
// trip, so filter keys are the same field names MongoStore queries by.
func matchesFilter(record interface{}, filter Filter) bool {
	if len(filter) == 0 {
		return true
	}
	raw, err := bson.Marshal(record)
	if err != nil {
		return false
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return false
	}
	for key, want := range filter {
		got, ok := doc[key]
		if !ok {
			return false
		}
		if fmt.Sprint(got) != fmt.Sprint(want) {
			return false
		}
	}
	return true
}
