package user

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"medbook-api/config"
	"medbook-api/internal/domain/facility"
	"medbook-api/internal/domain/user"
	mongodb "medbook-api/internal/infrastructure/db/mongo"
	"medbook-api/internal/infrastructure/password"
)

var (
	ErrEmailAlreadyExists = errors.New("an account with this email already exists")
	ErrInvalidID          = errors.New("invalid object id")
	ErrFacilityNotFound   = errors.New("no facility with this id")
)

type Repository struct {
	coll         *mongo.Collection
	hasher       *password.Hasher
	facilityRepo facility.Repository
}

func NewRepository(db *mongo.Database, hasher *password.Hasher, facilityRepo facility.Repository) user.Repository {
	return &Repository{
		coll:         db.Collection(mongodb.CollUsers),
		hasher:       hasher,
		facilityRepo: facilityRepo,
	}
}

// notDeleted is merged into every read filter so soft-deleted records
// never surface, mirroring the store-wide find rewrite the schema used to do.
func notDeleted(filter bson.M) bson.M {
	filter["isDelete"] = bson.M{"$ne": true}
	return filter
}

func (r *Repository) FetchByID(ctx context.Context, id user.ID) (*user.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	return r.fetchOne(ctx, notDeleted(bson.M{"_id": oid}))
}

func (r *Repository) FetchByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.fetchOne(ctx, notDeleted(bson.M{"email": email}))
}

func (r *Repository) FetchByProviderID(ctx context.Context, authType user.AuthType, providerID string) (*user.User, error) {
	var field string
	switch authType {
	case user.AuthGoogle:
		field = "googleId"
	case user.AuthFacebook:
		field = "facebookId"
	default:
		return nil, nil
	}

	return r.fetchOne(ctx, notDeleted(bson.M{field: providerID}))
}

func (r *Repository) fetchOne(ctx context.Context, filter bson.M) (*user.User, error) {
	u := new(User)
	if err := r.coll.FindOne(ctx, filter).Decode(u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(u), nil
}

func (r *Repository) Create(ctx context.Context, req user.User, plainPassword string) (*user.User, error) {
	applyDefaults(&req)

	if err := user.Validate(&req, plainPassword); err != nil {
		return nil, err
	}

	// A brand new doctor must reference a facility that actually exists.
	if req.Role == user.RoleDoctor {
		f, err := r.facilityRepo.FetchByID(ctx, req.FacilityID)
		if err != nil {
			return nil, err
		}
		if f == nil {
			return nil, ErrFacilityNotFound
		}
	}

	if plainPassword != "" {
		hash, err := r.hasher.Hash(plainPassword)
		if err != nil {
			return nil, err
		}
		now := time.Now()
		req.PasswordHash = &hash
		req.PasswordModified = &now
	}

	now := time.Now()
	req.CreatedAt = now
	req.UpdatedAt = now

	doc, err := toDBModel(req)
	if err != nil {
		return nil, err
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	req.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &req, nil
}

func (r *Repository) Update(ctx context.Context, id user.ID, upd user.Update) (*user.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	set := bson.M{"updatedAt": time.Now()}
	if upd.FullName != nil {
		set["fullName"] = *upd.FullName
	}
	if upd.PhoneNumber != nil {
		set["phoneNumber"] = *upd.PhoneNumber
	}
	if upd.Avatar != nil {
		set["avatar"] = *upd.Avatar
	}
	if upd.Descriptions != nil {
		set["descriptions"] = *upd.Descriptions
	}
	if upd.Specialisation != nil {
		set["specialisation"] = *upd.Specialisation
	}
	if upd.UnavailableTime != nil {
		slots := make([]UnavailableSlot, 0, len(upd.UnavailableTime))
		for _, s := range upd.UnavailableTime {
			slots = append(slots, UnavailableSlot{Date: s.Date, Time: s.Time})
		}
		set["unavailableTime"] = slots
	}
	if upd.HealthInfo != nil {
		set["healthInfor"] = HealthInfo{
			BMIAndBSA:     upd.HealthInfo.BMIAndBSA,
			BloodPressure: upd.HealthInfo.BloodPressure,
			Temperature:   upd.HealthInfo.Temperature,
		}
	}

	return r.findOneAndUpdate(ctx, oid, bson.M{"$set": set})
}

func (r *Repository) UpdatePassword(ctx context.Context, id user.ID, plainPassword string) (*user.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	if utf8.RuneCountInString(plainPassword) < user.MinPasswordLen {
		return nil, &user.ValidationError{Fields: map[string]string{
			"password": "password must have more or equal than 6 characters",
		}}
	}

	hash, err := r.hasher.Hash(plainPassword)
	if err != nil {
		return nil, err
	}

	return r.findOneAndUpdate(ctx, oid, bson.M{"$set": bson.M{
		"password":         hash,
		"passwordModified": time.Now(),
		"updatedAt":        time.Now(),
	}})
}

func (r *Repository) findOneAndUpdate(ctx context.Context, oid primitive.ObjectID, update bson.M) (*user.User, error) {
	u := new(User)
	err := r.coll.FindOneAndUpdate(
		ctx,
		notDeleted(bson.M{"_id": oid}),
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	return fromDBModel(u), nil
}

func (r *Repository) SoftDelete(ctx context.Context, id user.ID) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	_, err = r.coll.UpdateOne(
		ctx,
		notDeleted(bson.M{"_id": oid}),
		bson.M{"$set": bson.M{"isDelete": true, "updatedAt": time.Now()}},
	)

	return err
}

func applyDefaults(u *user.User) {
	if u.Role == "" {
		u.Role = user.RolePatient
	}
	if u.AuthType == "" {
		u.AuthType = user.AuthLocal
	}
	if u.Avatar == "" {
		u.Avatar = config.DefaultAvatar
	}
}
