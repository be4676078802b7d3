package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stayhub/hotel-booking-system/internal/core/domain"
)

const collectionBookings = "bookings"

// indexHotelDate is the compound unique index over (hotel_id, date): the slot
// invariant. The second writer's insert fails with a duplicate-key error.
const indexHotelDate = "hotel_date_unique"

// indexIdempotency is the partial unique index over (user_id,
// idempotency_key); keys are unique per account, not globally.
const indexIdempotency = "idempotency_key_unique"

type BookingRepository struct {
	client *mongo.Client
	db     *mongo.Database
	coll   *mongo.Collection
}

func NewBookingRepository(client *mongo.Client, db *mongo.Database) *BookingRepository {
	return &BookingRepository{
		client: client,
		db:     db,
		coll:   db.Collection(collectionBookings),
	}
}

type mongoBooking struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	HotelID        primitive.ObjectID `bson:"hotel_id"`
	UserID         primitive.ObjectID `bson:"user_id"`
	Date           time.Time          `bson:"date"`
	IdempotencyKey string             `bson:"idempotency_key,omitempty"`
	CreatedAt      time.Time          `bson:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at"`
}

// CreateWithOwner inserts the booking and appends its id to the owner's
// booking list inside one session transaction, so the pair of writes commits
// or aborts as a unit. The unique (hotel_id, date) index serializes concurrent
// attempts on the same slot: the loser's insert is rejected by the store and
// surfaces as domain.ErrSlotUnavailable, with the transaction rolled back and
// no mutation applied.
func (r *BookingRepository) CreateWithOwner(ctx context.Context, booking *domain.Booking, ownerID string) error {
	hotelOID, err := primitive.ObjectIDFromHex(booking.HotelID)
	if err != nil {
		return fmt.Errorf("invalid hotel id %q: %w", booking.HotelID, err)
	}
	ownerOID, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return fmt.Errorf("invalid owner id %q: %w", ownerID, err)
	}
	userOID, err := primitive.ObjectIDFromHex(booking.UserID)
	if err != nil {
		return fmt.Errorf("invalid user id %q: %w", booking.UserID, err)
	}

	doc := mongoBooking{
		HotelID:        hotelOID,
		UserID:         userOID,
		Date:           booking.Date,
		IdempotencyKey: booking.IdempotencyKey,
		CreatedAt:      booking.CreatedAt,
		UpdatedAt:      booking.UpdatedAt,
	}

	session, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	result, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		res, err := r.coll.InsertOne(sc, doc)
		if err != nil {
			if dupErr := mapBookingDuplicate(err); dupErr != nil {
				return nil, dupErr
			}
			return nil, fmt.Errorf("insert booking: %w", err)
		}

		oid, ok := res.InsertedID.(primitive.ObjectID)
		if !ok {
			return nil, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
		}

		update := bson.M{
			"$push": bson.M{"bookings": oid},
			"$set":  bson.M{"updated_at": booking.UpdatedAt},
		}
		upd, err := r.db.Collection(collectionUsers).UpdateOne(sc, bson.M{"_id": ownerOID}, update)
		if err != nil {
			return nil, fmt.Errorf("append booking reference: %w", err)
		}
		if upd.MatchedCount == 0 {
			return nil, domain.ErrAccountNotFound
		}

		return oid, nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrSlotUnavailable) ||
			errors.Is(err, domain.ErrDuplicateIdempotencyKey) ||
			errors.Is(err, domain.ErrAccountNotFound) {
			return err
		}
		return fmt.Errorf("booking transaction: %w", err)
	}

	if oid, ok := result.(primitive.ObjectID); ok {
		booking.ID = oid.Hex()
	}
	return nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id string) (*domain.Booking, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid booking id %q: %w", id, err)
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *BookingRepository) FindByIdempotencyKey(ctx context.Context, ownerID, key string) (*domain.Booking, error) {
	ownerOID, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, fmt.Errorf("invalid owner id %q: %w", ownerID, err)
	}
	return r.findOne(ctx, bson.M{"user_id": ownerOID, "idempotency_key": key})
}

// mapBookingDuplicate translates a duplicate-key insert error into the domain
// conflict named by the offending index, or nil for any other error. The
// bookings collection carries two unique indexes, so the index name decides
// whether the loser hit the slot invariant or reused an idempotency key.
func mapBookingDuplicate(err error) error {
	if !mongo.IsDuplicateKeyError(err) {
		return nil
	}
	if strings.Contains(err.Error(), indexIdempotency) {
		return domain.ErrDuplicateIdempotencyKey
	}
	return domain.ErrSlotUnavailable
}

func (r *BookingRepository) findOne(ctx context.Context, filter bson.M) (*domain.Booking, error) {
	var mb mongoBooking
	if err := r.coll.FindOne(ctx, filter).Decode(&mb); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("booking: %w", mongo.ErrNoDocuments)
		}
		return nil, fmt.Errorf("find booking: %w", err)
	}
	return mb.toDomain(), nil
}

// HotelIDsOnDate returns the internal ids of all hotels holding a booking for
// exactly the given day.
func (r *BookingRepository) HotelIDsOnDate(ctx context.Context, date time.Time) ([]string, error) {
	raw, err := r.coll.Distinct(ctx, "hotel_id", bson.M{"date": date})
	if err != nil {
		return nil, fmt.Errorf("distinct hotel ids: %w", err)
	}

	ids := make([]string, 0, len(raw))
	for _, v := range raw {
		if oid, ok := v.(primitive.ObjectID); ok {
			ids = append(ids, oid.Hex())
		}
	}
	return ids, nil
}

func (mb *mongoBooking) toDomain() *domain.Booking {
	return &domain.Booking{
		ID:             mb.ID.Hex(),
		HotelID:        mb.HotelID.Hex(),
		UserID:         mb.UserID.Hex(),
		Date:           mb.Date,
		IdempotencyKey: mb.IdempotencyKey,
		CreatedAt:      mb.CreatedAt,
		UpdatedAt:      mb.UpdatedAt,
	}
}

// EnsureIndexes creates the ledger indexes. The compound unique index over
// (hotel_id, date) is the storage-level guarantee behind the one-booking-per-
// slot invariant; it must exist before the service accepts traffic.
func (r *BookingRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "hotel_id", Value: 1},
				{Key: "date", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName(indexHotelDate),
		},
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "idempotency_key", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetName(indexIdempotency).
				SetPartialFilterExpression(bson.M{"idempotency_key": bson.M{"$type": "string"}}),
		},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
