package repository

import (
	"context"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/schilo132/real-estate-property-reservations-api/config"
	"github.com/schilo132/real-estate-property-reservations-api/domain"
)

// MongoStore is the production EntityStore on top of MongoDB. Unique indexes
// on the property and reservation code columns are the durable uniqueness
// constraint; inserts racing on the same code lose with a duplicate key
// error the caller can map to a retry.
type MongoStore struct {
	client   *mongo.Client
	database *mongo.Database
	logger   *logrus.Logger
}

func NewMongoStore(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.WithFields(logrus.Fields{"path": "repository/mongo"}).Error("Error connecting to MongoDB: ", err)
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		logger.WithFields(logrus.Fields{"path": "repository/mongo"}).Error("MongoDB unreachable: ", err)
		return nil, err
	}

	store := &MongoStore{
		client:   client,
		database: client.Database(cfg.MongoDatabase),
		logger:   logger,
	}
	if err := store.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *MongoStore) Disconnect(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) properties() *mongo.Collection {
	return s.database.Collection("properties")
}

func (s *MongoStore) advertisements() *mongo.Collection {
	return s.database.Collection("advertisements")
}

func (s *MongoStore) reservations() *mongo.Collection {
	return s.database.Collection("reservations")
}

func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)
	_, err := s.properties().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "code", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return err
	}
	_, err = s.reservations().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "code", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return err
	}
	// Admission reads reservations through the advertisement reference, so
	// keep both foreign keys indexed.
	_, err = s.advertisements().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "property_id", Value: 1}},
	})
	if err != nil {
		return err
	}
	_, err = s.reservations().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "advertisement_id", Value: 1}},
	})
	return err
}

func (s *MongoStore) InsertProperty(ctx context.Context, property *domain.Property) (primitive.ObjectID, error) {
	result, err := s.properties().InsertOne(ctx, property)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, domain.ErrDuplicatePropertyCode
		}
		s.logger.WithFields(logrus.Fields{"path": "repository/mongo"}).Error("Error inserting property: ", err)
		return primitive.NilObjectID, err
	}
	id := result.InsertedID.(primitive.ObjectID)
	property.ID = id
	return id, nil
}

func (s *MongoStore) GetProperty(ctx context.Context, id primitive.ObjectID) (*domain.Property, error) {
	var property domain.Property
	err := s.properties().FindOne(ctx, bson.M{"_id": id}).Decode(&property)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrPropertyNotFound()
		}
		return nil, err
	}
	return &property, nil
}

func (s *MongoStore) ListProperties(ctx context.Context, filter Filter) (domain.Properties, error) {
	cursor, err := s.properties().Find(ctx, toBSON(filter))
	if err != nil {
		return nil, err
	}
	var properties domain.Properties
	if err = cursor.All(ctx, &properties); err != nil {
		return nil, err
	}
	return properties, nil
}

func (s *MongoStore) UpdateProperty(ctx context.Context, property *domain.Property) error {
	result, err := s.properties().ReplaceOne(ctx, bson.M{"_id": property.ID}, property)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicatePropertyCode
		}
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrPropertyNotFound()
	}
	return nil
}

func (s *MongoStore) DeleteProperty(ctx context.Context, id primitive.ObjectID) error {
	advertisementIDs, err := s.advertisementIDsForProperty(ctx, id)
	if err != nil {
		return err
	}
	if len(advertisementIDs) > 0 {
		if _, err := s.reservations().DeleteMany(ctx, bson.M{"advertisement_id": bson.M{"$in": advertisementIDs}}); err != nil {
			return err
		}
		if _, err := s.advertisements().DeleteMany(ctx, bson.M{"property_id": id}); err != nil {
			return err
		}
	}
	result, err := s.properties().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return domain.ErrPropertyNotFound()
	}
	return nil
}

func (s *MongoStore) PropertyCodeExists(ctx context.Context, code int) (bool, error) {
	count, err := s.properties().CountDocuments(ctx, bson.M{"code": code})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *MongoStore) InsertAdvertisement(ctx context.Context, advertisement *domain.Advertisement) (primitive.ObjectID, error) {
	result, err := s.advertisements().InsertOne(ctx, advertisement)
	if err != nil {
		s.logger.WithFields(logrus.Fields{"path": "repository/mongo"}).Error("Error inserting advertisement: ", err)
		return primitive.NilObjectID, err
	}
	id := result.InsertedID.(primitive.ObjectID)
	advertisement.ID = id
	return id, nil
}

func (s *MongoStore) GetAdvertisement(ctx context.Context, id primitive.ObjectID) (*domain.Advertisement, error) {
	var advertisement domain.Advertisement
	err := s.advertisements().FindOne(ctx, bson.M{"_id": id}).Decode(&advertisement)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrAdvertisementNotFound()
		}
		return nil, err
	}
	return &advertisement, nil
}

func (s *MongoStore) ListAdvertisements(ctx context.Context, filter Filter) (domain.Advertisements, error) {
	cursor, err := s.advertisements().Find(ctx, toBSON(filter))
	if err != nil {
		return nil, err
	}
	var advertisements domain.Advertisements
	if err = cursor.All(ctx, &advertisements); err != nil {
		return nil, err
	}
	return advertisements, nil
}

func (s *MongoStore) UpdateAdvertisement(ctx context.Context, advertisement *domain.Advertisement) error {
	result, err := s.advertisements().ReplaceOne(ctx, bson.M{"_id": advertisement.ID}, advertisement)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrAdvertisementNotFound()
	}
	return nil
}

func (s *MongoStore) InsertReservation(ctx context.Context, reservation *domain.Reservation) (primitive.ObjectID, error) {
	result, err := s.reservations().InsertOne(ctx, reservation)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, domain.ErrDuplicateReservationCode
		}
		s.logger.WithFields(logrus.Fields{"path": "repository/mongo"}).Error("Error inserting reservation: ", err)
		return primitive.NilObjectID, err
	}
	id := result.InsertedID.(primitive.ObjectID)
	reservation.ID = id
	return id, nil
}

func (s *MongoStore) GetReservation(ctx context.Context, id primitive.ObjectID) (*domain.Reservation, error) {
	var reservation domain.Reservation
	err := s.reservations().FindOne(ctx, bson.M{"_id": id}).Decode(&reservation)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrReservationNotFound()
		}
		return nil, err
	}
	return &reservation, nil
}

func (s *MongoStore) ListReservations(ctx context.Context, filter Filter) (domain.Reservations, error) {
	cursor, err := s.reservations().Find(ctx, toBSON(filter))
	if err != nil {
		return nil, err
	}
	var reservations domain.Reservations
	if err = cursor.All(ctx, &reservations); err != nil {
		return nil, err
	}
	return reservations, nil
}

func (s *MongoStore) ListReservationsForProperty(ctx context.Context, propertyID primitive.ObjectID) (domain.Reservations, error) {
	advertisementIDs, err := s.advertisementIDsForProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if len(advertisementIDs) == 0 {
		return nil, nil
	}
	return s.ListReservations(ctx, Filter{"advertisement_id": bson.M{"$in": advertisementIDs}})
}

func (s *MongoStore) DeleteReservation(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.reservations().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return domain.ErrReservationNotFound()
	}
	return nil
}

func (s *MongoStore) ReservationCodeExists(ctx context.Context, code int) (bool, error) {
	count, err := s.reservations().CountDocuments(ctx, bson.M{"code": code})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *MongoStore) advertisementIDsForProperty(ctx context.Context, propertyID primitive.ObjectID) ([]primitive.ObjectID, error) {
	cursor, err := s.advertisements().Find(ctx, bson.M{"property_id": propertyID},
		options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	var rows []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	return ids, nil
}

func toBSON(filter Filter) bson.M {
	if filter == nil {
		return bson.M{}
	}
	return bson.M(filter)
}
