package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/schilo132/real-estate-property-reservations-api/domain"
	"github.com/schilo132/real-estate-property-reservations-api/repository"
)

type PropertyServiceImpl struct {
	store  repository.EntityStore
	logger *logrus.Logger
}

func NewPropertyServiceImpl(store repository.EntityStore, logger *logrus.Logger) PropertyService {
	return &PropertyServiceImpl{store: store, logger: logger}
}

// CreateProperty validates the fields, claims the property code and stamps
// the system managed dates. The activation date is set here, once, and
// never changes afterwards.
func (s *PropertyServiceImpl) CreateProperty(ctx context.Context, property *domain.Property) (*domain.Property, error) {
	if err := property.Validate(); err != nil {
		return nil, err
	}
	exists, err := s.store.PropertyCodeExists(ctx, property.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.NewRejection("code", domain.ReasonDuplicateCode)
	}

	now := time.Now().UTC()
	created := *property
	created.ActivationDate = now.Truncate(24 * time.Hour)
	created.CreationDate = now
	created.UpdateDate = now

	if _, err := s.store.InsertProperty(ctx, &created); err != nil {
		return nil, err
	}
	s.logger.WithFields(logrus.Fields{"path": "services/property"}).Info(
		"Created property ", created.Code)
	return &created, nil
}

func (s *PropertyServiceImpl) GetPropertyByID(ctx context.Context, id primitive.ObjectID) (*domain.Property, error) {
	return s.store.GetProperty(ctx, id)
}

func (s *PropertyServiceImpl) GetAllProperties(ctx context.Context, filter repository.Filter) (domain.Properties, error) {
	return s.store.ListProperties(ctx, filter)
}

// UpdateProperty replaces the editable fields of an existing property. The
// activation and creation dates are immutable and kept from the stored
// record; a changed code must still be unique.
func (s *PropertyServiceImpl) UpdateProperty(ctx context.Context, id primitive.ObjectID, updated *domain.Property) (*domain.Property, error) {
	current, err := s.store.GetProperty(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := updated.Validate(); err != nil {
		return nil, err
	}
	if updated.Code != current.Code {
		exists, err := s.store.PropertyCodeExists(ctx, updated.Code)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.NewRejection("code", domain.ReasonDuplicateCode)
		}
	}

	replacement := *updated
	replacement.ID = current.ID
	replacement.ActivationDate = current.ActivationDate
	replacement.CreationDate = current.CreationDate
	replacement.UpdateDate = time.Now().UTC()

	if err := s.store.UpdateProperty(ctx, &replacement); err != nil {
		return nil, err
	}
	return &replacement, nil
}

// DeleteProperty removes the property with all of its advertisements and
// their reservations; the cascade is the store's.
func (s *PropertyServiceImpl) DeleteProperty(ctx context.Context, id primitive.ObjectID) error {
	if err := s.store.DeleteProperty(ctx, id); err != nil {
		return err
	}
	s.logger.WithFields(logrus.Fields{"path": "services/property"}).Info(
		"Deleted property ", id.Hex(), " with its advertisements and reservations")
	return nil
}
