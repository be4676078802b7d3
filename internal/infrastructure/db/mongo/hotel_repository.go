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

const collectionHotels = "hotels"

const (
	indexHotelCode = "hotel_code_unique"
	indexHotelName = "hotel_name_unique"
)

type HotelRepository struct {
	coll *mongo.Collection
}

func NewHotelRepository(db *mongo.Database) *HotelRepository {
	return &HotelRepository{coll: db.Collection(collectionHotels)}
}

type mongoHotel struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Code      string             `bson:"hotel_code"`
	Name      string             `bson:"name"`
	Location  string             `bson:"location"`
	Price     float64            `bson:"price"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

// Create inserts a new hotel. The named unique indexes on hotel_code and name
// make the uniqueness check and the insert one atomic step; the offending
// index name in the duplicate-key error selects the conflict returned.
func (r *HotelRepository) Create(ctx context.Context, hotel *domain.Hotel) (*domain.Hotel, error) {
	doc := mongoHotel{
		Code:      hotel.Code,
		Name:      hotel.Name,
		Location:  hotel.Location,
		Price:     hotel.Price,
		CreatedAt: hotel.CreatedAt,
		UpdatedAt: hotel.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			if strings.Contains(err.Error(), indexHotelName) {
				return nil, domain.ErrDuplicateHotelName
			}
			return nil, domain.ErrDuplicateHotelCode
		}
		return nil, fmt.Errorf("insert hotel: %w", err)
	}

	created := *hotel
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *HotelRepository) FindByCode(ctx context.Context, code string) (*domain.Hotel, error) {
	return r.findOne(ctx, bson.M{"hotel_code": code})
}

func (r *HotelRepository) FindByID(ctx context.Context, id string) (*domain.Hotel, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrHotelNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *HotelRepository) findOne(ctx context.Context, filter bson.M) (*domain.Hotel, error) {
	var mh mongoHotel
	if err := r.coll.FindOne(ctx, filter).Decode(&mh); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrHotelNotFound
		}
		return nil, fmt.Errorf("find hotel: %w", err)
	}
	return mh.toDomain(), nil
}

// ListExcluding returns all hotels whose id is not in excludeIDs, in catalog
// (insertion) order.
func (r *HotelRepository) ListExcluding(ctx context.Context, excludeIDs []string) ([]*domain.Hotel, error) {
	excluded := make([]primitive.ObjectID, 0, len(excludeIDs))
	for _, id := range excludeIDs {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		excluded = append(excluded, oid)
	}

	filter := bson.M{}
	if len(excluded) > 0 {
		filter["_id"] = bson.M{"$nin": excluded}
	}

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list hotels: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoHotel
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode hotels: %w", err)
	}

	hotels := make([]*domain.Hotel, 0, len(docs))
	for i := range docs {
		hotels = append(hotels, docs[i].toDomain())
	}
	return hotels, nil
}

func (mh *mongoHotel) toDomain() *domain.Hotel {
	return &domain.Hotel{
		ID:        mh.ID.Hex(),
		Code:      mh.Code,
		Name:      mh.Name,
		Location:  mh.Location,
		Price:     mh.Price,
		CreatedAt: mh.CreatedAt,
		UpdatedAt: mh.UpdatedAt,
	}
}

// EnsureIndexes creates the unique indexes backing catalog identity.
func (r *HotelRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "hotel_code", Value: 1}},
			Options: options.Index().SetUnique(true).SetName(indexHotelCode),
		},
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true).SetName(indexHotelName),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
