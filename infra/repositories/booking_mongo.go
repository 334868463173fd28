package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

var ErrBookingNotFound = errors.New("booking not found")

// LegacyBooking is the document-store booking shape. The legacy service
// predates the relational schema and names its fields in camelCase.
type LegacyBooking struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"id"`
	CustomerName string        `bson:"customerName" json:"customerName"`
	CoffeeType   string        `bson:"coffeeType" json:"coffeeType"`
	Date         time.Time     `bson:"date" json:"date"`
}

type BookingRepositoryMongo struct {
	collection *mongo.Collection
}

func NewBookingRepositoryMongo(collection *mongo.Collection) *BookingRepositoryMongo {
	return &BookingRepositoryMongo{collection: collection}
}

func (r *BookingRepositoryMongo) List(ctx context.Context) ([]LegacyBooking, error) {
	cursor, err := r.collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find bookings: %w", err)
	}
	bookings := []LegacyBooking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("decode bookings: %w", err)
	}
	return bookings, nil
}

func (r *BookingRepositoryMongo) GetByID(ctx context.Context, id string) (*LegacyBooking, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrBookingNotFound
	}
	var booking LegacyBooking
	err = r.collection.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	return &booking, nil
}

func (r *BookingRepositoryMongo) Insert(ctx context.Context, customerName, coffeeType string) (*LegacyBooking, error) {
	booking := LegacyBooking{
		CustomerName: customerName,
		CoffeeType:   coffeeType,
		Date:         time.Now(),
	}
	result, err := r.collection.InsertOne(ctx, booking)
	if err != nil {
		return nil, fmt.Errorf("insert booking: %w", err)
	}
	if oid, ok := result.InsertedID.(bson.ObjectID); ok {
		booking.ID = oid
	}
	return &booking, nil
}

func legacyUpdateSet(customerName, coffeeType string) bson.D {
	set := bson.D{}
	if customerName != "" {
		set = append(set, bson.E{Key: "customerName", Value: customerName})
	}
	if coffeeType != "" {
		set = append(set, bson.E{Key: "coffeeType", Value: coffeeType})
	}
	return set
}

func (r *BookingRepositoryMongo) Update(ctx context.Context, id, customerName, coffeeType string) (*LegacyBooking, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrBookingNotFound
	}

	// MongoDB rejects an empty $set document; a blank update just returns
	// the stored booking.
	set := legacyUpdateSet(customerName, coffeeType)
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	var updated LegacyBooking
	err = r.collection.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$set", Value: set}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update booking: %w", err)
	}
	return &updated, nil
}

func (r *BookingRepositoryMongo) Delete(ctx context.Context, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return ErrBookingNotFound
	}
	result, err := r.collection.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrBookingNotFound
	}
	return nil
}
