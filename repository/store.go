package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/schilo132/real-estate-property-reservations-api/domain"
)

// Filter narrows a listing to records whose stored fields match the given
// values; an empty filter lists everything. Keys are the bson field names.
type Filter map[string]interface{}

// EntityStore is the read/write contract the admission path and the CRUD
// pass-through operate against. The core never assumes a storage engine;
// any backing store satisfying these contracts is acceptable. MongoStore is
// the production implementation, MemoryStore backs the tests.
//
// Uniqueness of property and reservation codes is the store's job: inserts
// must fail with domain.ErrDuplicatePropertyCode or
// domain.ErrDuplicateReservationCode when a code is already taken, so the
// generate-and-retry loop and concurrent admissions have a backstop that
// does not rely on in-process state.
type EntityStore interface {
	InsertProperty(ctx context.Context, property *domain.Property) (primitive.ObjectID, error)
	GetProperty(ctx context.Context, id primitive.ObjectID) (*domain.Property, error)
	ListProperties(ctx context.Context, filter Filter) (domain.Properties, error)
	UpdateProperty(ctx context.Context, property *domain.Property) error
	// DeleteProperty cascades: the property's advertisements and, through
	// them, their reservations go with it.
	DeleteProperty(ctx context.Context, id primitive.ObjectID) error
	PropertyCodeExists(ctx context.Context, code int) (bool, error)

	InsertAdvertisement(ctx context.Context, advertisement *domain.Advertisement) (primitive.ObjectID, error)
	GetAdvertisement(ctx context.Context, id primitive.ObjectID) (*domain.Advertisement, error)
	ListAdvertisements(ctx context.Context, filter Filter) (domain.Advertisements, error)
	UpdateAdvertisement(ctx context.Context, advertisement *domain.Advertisement) error

	InsertReservation(ctx context.Context, reservation *domain.Reservation) (primitive.ObjectID, error)
	GetReservation(ctx context.Context, id primitive.ObjectID) (*domain.Reservation, error)
	ListReservations(ctx context.Context, filter Filter) (domain.Reservations, error)
	// ListReservationsForProperty returns every reservation reachable from
	// the property across all of its advertisements, the set the occupancy
	// check runs over.
	ListReservationsForProperty(ctx context.Context, propertyID primitive.ObjectID) (domain.Reservations, error)
	DeleteReservation(ctx context.Context, id primitive.ObjectID) error
	ReservationCodeExists(ctx context.Context, code int) (bool, error)
}
