package assignment

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"medbook-api/internal/domain/assignment"
	mongodb "medbook-api/internal/infrastructure/db/mongo"
)

var ErrInvalidID = errors.New("invalid object id")

type Assignment struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"`
	Doctor  primitive.ObjectID `bson:"doctor"`
	Patient primitive.ObjectID `bson:"patient"`
	Date    time.Time          `bson:"date"`
	Status  string             `bson:"status"`
	Notes   string             `bson:"notes,omitempty"`

	IsDelete bool `bson:"isDelete"`

	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

type Repository struct {
	coll *mongo.Collection
}

func NewRepository(db *mongo.Database) assignment.Repository {
	return &Repository{coll: db.Collection(mongodb.CollAssignments)}
}

func (r *Repository) FetchByDoctor(ctx context.Context, doctorID string, page, limit int) (assignment.Page, error) {
	return r.fetchPage(ctx, "doctor", doctorID, page, limit)
}

func (r *Repository) FetchByPatient(ctx context.Context, patientID string, page, limit int) (assignment.Page, error) {
	return r.fetchPage(ctx, "patient", patientID, page, limit)
}

func (r *Repository) fetchPage(ctx context.Context, field, id string, page, limit int) (assignment.Page, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return assignment.Page{}, ErrInvalidID
	}

	filter := bson.M{field: oid, "isDelete": bson.M{"$ne": true}}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return assignment.Page{}, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return assignment.Page{}, err
	}
	defer cur.Close(ctx)

	var records assignment.Assignments
	for cur.Next(ctx) {
		a := new(Assignment)
		if err = cur.Decode(a); err != nil {
			return assignment.Page{}, err
		}
		records = append(records, fromDBModel(a))
	}
	if err = cur.Err(); err != nil {
		return assignment.Page{}, err
	}

	return assignment.Page{
		Records: records,
		Total:   total,
		Limit:   limit,
		Page:    page,
	}, nil
}

func (r *Repository) Create(ctx context.Context, req assignment.Assignment) (*assignment.Assignment, error) {
	doctorOID, err := primitive.ObjectIDFromHex(req.DoctorID)
	if err != nil {
		return nil, ErrInvalidID
	}
	patientOID, err := primitive.ObjectIDFromHex(req.PatientID)
	if err != nil {
		return nil, ErrInvalidID
	}

	now := time.Now()
	doc := &Assignment{
		Doctor:    doctorOID,
		Patient:   patientOID,
		Date:      req.Date,
		Status:    string(req.Status),
		Notes:     req.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if doc.Status == "" {
		doc.Status = string(assignment.StatusPending)
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return fromDBModel(doc), nil
}

func fromDBModel(a *Assignment) *assignment.Assignment {
	return &assignment.Assignment{
		ID:        a.ID.Hex(),
		DoctorID:  a.Doctor.Hex(),
		PatientID: a.Patient.Hex(),
		Date:      a.Date,
		Status:    assignment.Status(a.Status),
		Notes:     a.Notes,
		Deleted:   a.IsDelete,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
