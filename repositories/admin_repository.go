package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/phillip/lbd-events-go/httperr"
	"github.com/phillip/lbd-events-go/models"
)

// AdminRepository manages the admin profile documents in the users
// collection.
type AdminRepository interface {
	Create(ctx context.Context, admin *models.AdminUser) error
	FindByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.AdminUser, error)
	List(ctx context.Context) ([]models.AdminUser, error)
	SetActive(ctx context.Context, id primitive.ObjectID, active bool) error
}

var _ AdminRepository = (*adminRepository)(nil)

type adminRepository struct {
	collection *mongo.Collection
}

// NewAdminRepository creates the mongo-backed admin repository.
func NewAdminRepository(db *mongo.Database) AdminRepository {
	return &adminRepository{
		collection: db.Collection("users"),
	}
}

func (r *adminRepository) Create(ctx context.Context, admin *models.AdminUser) error {
	if admin.ID.IsZero() {
		admin.ID = primitive.NewObjectID()
	}
	admin.CreatedAt = time.Now().UTC()

	if _, err := r.collection.InsertOne(ctx, admin); err != nil {
		return httperr.Wrap(err, httperr.ErrInternal.Code, httperr.ErrInternal.Status, "could not create admin")
	}

	return nil
}

func (r *adminRepository) FindByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	var admin models.AdminUser
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&admin)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, httperr.Clone(httperr.ErrNotFound, "admin not found")
	}
	if err != nil {
		return nil, httperr.Wrap(err, httperr.ErrInternal.Code, httperr.ErrInternal.Status, "could not fetch admin")
	}

	return &admin, nil
}

func (r *adminRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.AdminUser, error) {
	var admin models.AdminUser
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&admin)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, httperr.Clone(httperr.ErrNotFound, "admin not found")
	}
	if err != nil {
		return nil, httperr.Wrap(err, httperr.ErrInternal.Code, httperr.ErrInternal.Status, "could not fetch admin")
	}

	return &admin, nil
}

func (r *adminRepository) List(ctx context.Context) ([]models.AdminUser, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, httperr.Wrap(err, httperr.ErrInternal.Code, httperr.ErrInternal.Status, "could not fetch admins")
	}

	admins := []models.AdminUser{}
	if err := cursor.All(ctx, &admins); err != nil {
		return nil, httperr.Wrap(err, httperr.ErrInternal.Code, httperr.ErrInternal.Status, "could not decode admins")
	}

	return admins, nil
}

func (r *adminRepository) SetActive(ctx context.Context, id primitive.ObjectID, active bool) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"isActive": active}})
	if err != nil {
		return httperr.Wrap(err, httperr.ErrInternal.Code, httperr.ErrInternal.Status, "could not update admin")
	}
	if res.MatchedCount == 0 {
		return httperr.Clone(httperr.ErrNotFound, "admin not found")
	}

	return nil
}
