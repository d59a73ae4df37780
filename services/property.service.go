package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/schilo132/real-estate-property-reservations-api/domain"
	"github.com/schilo132/real-estate-property-reservations-api/repository"
)

type PropertyService interface {
	CreateProperty(ctx context.Context, property *domain.Property) (*domain.Property, error)
	GetPropertyByID(ctx context.Context, id primitive.ObjectID) (*domain.Property, error)
	GetAllProperties(ctx context.Context, filter repository.Filter) (domain.Properties, error)
	UpdateProperty(ctx context.Context, id primitive.ObjectID, updated *domain.Property) (*domain.Property, error)
	DeleteProperty(ctx context.Context, id primitive.ObjectID) error
}
