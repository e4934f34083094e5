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

// EventPatch carries the fields of a partial event update. Nil fields are
// left untouched in the stored document.
type EventPatch struct {
	Title            *string
	BannerURL        *string
	Category         *string
	Description      *string
	StartDate        *time.Time
	EndDate          *time.Time
	Location         *models.Location
	RegistrationLink *string
	Gallery          *[]string
	AlbumURL         *string
	Stats            *models.StatList
	Tags             *[]string
}

// EventRepository is the sole writer of the events collection.
type EventRepository interface {
	Create(ctx context.Context, event *models.Event) (primitive.ObjectID, error)
	Update(ctx context.Context, id primitive.ObjectID, patch EventPatch) (*models.Event, error)
	// UpdateStatsAndGallery is deliberately restricted to the post-event
	// curation fields so it cannot clobber concurrent general edits.
	UpdateStatsAndGallery(ctx context.Context, id primitive.ObjectID, stats models.StatList, gallery []string, albumURL *string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	GetAll(ctx context.Context) ([]models.Event, error)
	GetByCategory(ctx context.Context, category string) ([]models.Event, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error)
}

var _ EventRepository = (*eventRepository)(nil)

type eventRepository struct {
	collection *mongo.Collection
}

// NewEventRepository creates the mongo-backed event repository.
func NewEventRepository(db *mongo.Database) EventRepository {
	return &eventRepository{
		collection: db.Collection("events"),
	}
}

func (r *eventRepository) Create(ctx context.Context, event *models.Event) (primitive.ObjectID, error) {
	now := time.Now().UTC()
	event.ID = primitive.NewObjectID()
	event.CreatedAt = now
	event.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, event); err != nil {
		return primitive.NilObjectID, httperr.Wrap(err, httperr.ErrInternal.Code, httperr.ErrInternal.Status, "could not create event")
	}

	return event.ID, nil
}

func (r *eventRepository) Update(ctx context.Context, id primitive.ObjectID, patch EventPatch) (*models.Event, error) {
	update := patch.updateDoc(time.Now().UTC())
	if len(update) == 1 {
		return nil, httperr.Clone(httperr.ErrValidation, "no fields to update")
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	if err != nil {
		return nil, httperr.Wrap(err, httperr.ErrInternal.Code, httperr.ErrInternal.Status, "could not update event")
	}
	if res.MatchedCount == 0 {
		return nil, httperr.Clone(httperr.ErrNotFound, "event not found")
	}

	var updated models.Event
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&updated); err != nil {
		return nil, httperr.Wrap(err, httperr.ErrInternal.Code, httperr.ErrInternal.Status, "could not fetch updated event")
	}

	return &updated, nil
}

func (r *eventRepository) UpdateStatsAndGallery(ctx context.Context, id primitive.ObjectID, stats models.StatList, gallery []string, albumURL *string) error {
	set, unset := statsAndGalleryDoc(stats, gallery, albumURL, time.Now().UTC())

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return httperr.Wrap(err, httperr.ErrInternal.Code, httperr.ErrInternal.Status, "could not update event stats")
	}
	if res.MatchedCount == 0 {
		return httperr.Clone(httperr.ErrNotFound, "event not found")
	}

	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	// Hard delete. CDN assets referenced by the document are left for
	// out-of-band cleanup.
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return httperr.Wrap(err, httperr.ErrInternal.Code, httperr.ErrInternal.Status, "could not delete event")
	}
	if res.DeletedCount == 0 {
		return httperr.Clone(httperr.ErrNotFound, "event not found")
	}

	return nil
}

func (r *eventRepository) GetAll(ctx context.Context) ([]models.Event, error) {
	return r.find(ctx, bson.M{})
}

func (r *eventRepository) GetByCategory(ctx context.Context, category string) ([]models.Event, error) {
	return r.find(ctx, bson.M{"category": category})
}

func (r *eventRepository) find(ctx context.Context, filter bson.M) ([]models.Event, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, httperr.Wrap(err, httperr.ErrInternal.Code, httperr.ErrInternal.Status, "could not fetch events")
	}

	events := []models.Event{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, httperr.Wrap(err, httperr.ErrInternal.Code, httperr.ErrInternal.Status, "could not decode events")
	}

	return events, nil
}

func (r *eventRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	var event models.Event
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&event)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, httperr.Clone(httperr.ErrNotFound, "event not found")
	}
	if err != nil {
		return nil, httperr.Wrap(err, httperr.ErrInternal.Code, httperr.ErrInternal.Status, "could not fetch event")
	}

	return &event, nil
}

// updateDoc translates the patch into a $set document, always refreshing
// updatedAt.
func (p EventPatch) updateDoc(now time.Time) bson.M {
	update := bson.M{"updatedAt": now}

	if p.Title != nil {
		update["title"] = *p.Title
	}
	if p.BannerURL != nil {
		update["bannerUrl"] = *p.BannerURL
	}
	if p.Category != nil {
		update["category"] = *p.Category
	}
	if p.Description != nil {
		update["description"] = *p.Description
	}
	if p.StartDate != nil {
		update["startDate"] = *p.StartDate
	}
	if p.EndDate != nil {
		update["endDate"] = *p.EndDate
	}
	if p.Location != nil {
		update["location"] = *p.Location
	}
	if p.RegistrationLink != nil {
		update["registrationLink"] = *p.RegistrationLink
	}
	if p.Gallery != nil {
		update["gallery"] = *p.Gallery
	}
	if p.AlbumURL != nil {
		update["albumUrl"] = *p.AlbumURL
	}
	if p.Stats != nil {
		update["stats"] = *p.Stats
	}
	if p.Tags != nil {
		update["tags"] = *p.Tags
	}

	return update
}

// statsAndGalleryDoc builds the restricted post-event patch. A non-nil empty
// albumURL clears the stored value; nil leaves it untouched.
func statsAndGalleryDoc(stats models.StatList, gallery []string, albumURL *string, now time.Time) (set bson.M, unset bson.M) {
	set = bson.M{
		"stats":     stats,
		"gallery":   gallery,
		"updatedAt": now,
	}
	unset = bson.M{}

	if albumURL != nil {
		if *albumURL == "" {
			unset["albumUrl"] = ""
		} else {
			set["albumUrl"] = *albumURL
		}
	}

	return set, unset
}
