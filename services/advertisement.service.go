package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/schilo132/real-estate-property-reservations-api/domain"
	"github.com/schilo132/real-estate-property-reservations-api/repository"
)

type AdvertisementService interface {
	CreateAdvertisement(ctx context.Context, advertisement *domain.Advertisement) (*domain.Advertisement, error)
	GetAdvertisementByID(ctx context.Context, id primitive.ObjectID) (*domain.Advertisement, error)
	GetAllAdvertisements(ctx context.Context, filter repository.Filter) (domain.Advertisements, error)
	UpdateAdvertisement(ctx context.Context, id primitive.ObjectID, updated *domain.Advertisement) (*domain.Advertisement, error)
	// DeleteAdvertisement always refuses: advertisements are not deletable
	// in this system, only the property delete cascade removes them.
	DeleteAdvertisement(ctx context.Context, id primitive.ObjectID) error
}
