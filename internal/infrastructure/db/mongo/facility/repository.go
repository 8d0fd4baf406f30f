package facility

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"medbook-api/config"
	"medbook-api/internal/domain/facility"
	mongodb "medbook-api/internal/infrastructure/db/mongo"
)

var ErrInvalidID = errors.New("invalid object id")

type Facility struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"`
	Name    string             `bson:"name"`
	Address string             `bson:"address,omitempty"`
	Image   string             `bson:"image"`

	IsDelete bool `bson:"isDelete"`

	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

type Repository struct {
	coll *mongo.Collection
}

func NewRepository(db *mongo.Database) facility.Repository {
	return &Repository{coll: db.Collection(mongodb.CollFacilities)}
}

func (r *Repository) FetchByID(ctx context.Context, id facility.ID) (*facility.Facility, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	f := new(Facility)
	err = r.coll.FindOne(ctx, bson.M{"_id": oid, "isDelete": bson.M{"$ne": true}}).Decode(f)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(f), nil
}

func (r *Repository) Create(ctx context.Context, req facility.Facility) (*facility.Facility, error) {
	now := time.Now()
	doc := &Facility{
		Name:      req.Name,
		Address:   req.Address,
		Image:     req.Image,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if doc.Image == "" {
		doc.Image = config.DefaultFacilityImage
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return fromDBModel(doc), nil
}

func fromDBModel(f *Facility) *facility.Facility {
	return &facility.Facility{
		ID:        f.ID.Hex(),
		Name:      f.Name,
		Address:   f.Address,
		Image:     f.Image,
		Deleted:   f.IsDelete,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}
