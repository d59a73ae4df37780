package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/schilo132/real-estate-property-reservations-api/domain"
	"github.com/schilo132/real-estate-property-reservations-api/repository"
)

type AdvertisementServiceImpl struct {
	store  repository.EntityStore
	logger *logrus.Logger
}

func NewAdvertisementServiceImpl(store repository.EntityStore, logger *logrus.Logger) AdvertisementService {
	return &AdvertisementServiceImpl{store: store, logger: logger}
}

func (s *AdvertisementServiceImpl) CreateAdvertisement(ctx context.Context, advertisement *domain.Advertisement) (*domain.Advertisement, error) {
	if err := advertisement.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.store.GetProperty(ctx, advertisement.PropertyID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created := *advertisement
	created.CreationDate = now
	created.UpdateDate = now

	if _, err := s.store.InsertAdvertisement(ctx, &created); err != nil {
		return nil, err
	}
	s.logger.WithFields(logrus.Fields{"path": "services/advertisement"}).Info(
		"Created advertisement on platform ", created.Platform)
	return &created, nil
}

func (s *AdvertisementServiceImpl) GetAdvertisementByID(ctx context.Context, id primitive.ObjectID) (*domain.Advertisement, error) {
	return s.store.GetAdvertisement(ctx, id)
}

func (s *AdvertisementServiceImpl) GetAllAdvertisements(ctx context.Context, filter repository.Filter) (domain.Advertisements, error) {
	return s.store.ListAdvertisements(ctx, filter)
}

// UpdateAdvertisement replaces the editable fields of an existing
// advertisement. A changed property reference must point at an existing
// property; the creation date stays as stored.
func (s *AdvertisementServiceImpl) UpdateAdvertisement(ctx context.Context, id primitive.ObjectID, updated *domain.Advertisement) (*domain.Advertisement, error) {
	current, err := s.store.GetAdvertisement(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := updated.Validate(); err != nil {
		return nil, err
	}
	if updated.PropertyID != current.PropertyID {
		if _, err := s.store.GetProperty(ctx, updated.PropertyID); err != nil {
			return nil, err
		}
	}

	replacement := *updated
	replacement.ID = current.ID
	replacement.CreationDate = current.CreationDate
	replacement.UpdateDate = time.Now().UTC()

	if err := s.store.UpdateAdvertisement(ctx, &replacement); err != nil {
		return nil, err
	}
	return &replacement, nil
}

func (s *AdvertisementServiceImpl) DeleteAdvertisement(ctx context.Context, id primitive.ObjectID) error {
	return domain.ErrAdvertisementDeletionNotAllowed
}
