package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/candipilot/candipilot-api/internal/core/domain"
	"github.com/candipilot/candipilot-api/internal/core/ports"
)

const collectionApplications = "applications"

// ApplicationRepository persists applications. Every query is scoped by
// user_id so a record owned by another user behaves exactly like a missing
// one.
type ApplicationRepository struct {
	col *mongo.Collection
}

func NewApplicationRepository(db *mongo.Database) *ApplicationRepository {
	return &ApplicationRepository{col: db.Collection(collectionApplications)}
}

type applicationDoc struct {
	ID            string                   `bson:"_id"`
	UserID        string                   `bson:"user_id"`
	Company       string                   `bson:"company"`
	Role          string                   `bson:"role"`
	URL           string                   `bson:"url,omitempty"`
	Status        domain.ApplicationStatus `bson:"status"`
	AppliedAt     *time.Time               `bson:"applied_at,omitempty"`
	LastContactAt *time.Time               `bson:"last_contact_at,omitempty"`
	Notes         string                   `bson:"notes,omitempty"`
	CreatedAt     time.Time                `bson:"created_at"`
	UpdatedAt     time.Time                `bson:"updated_at"`
}

func toDoc(app *domain.Application) *applicationDoc {
	return &applicationDoc{
		ID:            app.ID,
		UserID:        app.UserID,
		Company:       app.Company,
		Role:          app.Role,
		URL:           app.URL,
		Status:        app.Status,
		AppliedAt:     app.AppliedAt,
		LastContactAt: app.LastContactAt,
		Notes:         app.Notes,
		CreatedAt:     app.CreatedAt,
		UpdatedAt:     app.UpdatedAt,
	}
}

func (d *applicationDoc) toDomain() *domain.Application {
	return &domain.Application{
		ID:            d.ID,
		UserID:        d.UserID,
		Company:       d.Company,
		Role:          d.Role,
		URL:           d.URL,
		Status:        d.Status,
		AppliedAt:     d.AppliedAt,
		LastContactAt: d.LastContactAt,
		Notes:         d.Notes,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func (r *ApplicationRepository) Create(ctx context.Context, app *domain.Application) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, toDoc(app))
	return err
}

func (r *ApplicationRepository) FindByID(ctx context.Context, id, userID string) (*domain.Application, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc applicationDoc
	err := r.col.FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

// List returns the user's applications newest-created first.
func (r *ApplicationRepository) List(ctx context.Context, userID string) ([]*domain.Application, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*domain.Application
	for cursor.Next(ctx) {
		var doc applicationDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toDomain())
	}
	return out, cursor.Err()
}

func (r *ApplicationRepository) Count(ctx context.Context, userID string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"user_id": userID})
	return int(n), err
}

// Update applies a partial $set built from the non-nil fields of the patch.
func (r *ApplicationRepository) Update(ctx context.Context, id, userID string, patch ports.ApplicationPatch) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"updated_at": time.Now().UTC()}
	if patch.Company != nil {
		set["company"] = *patch.Company
	}
	if patch.Role != nil {
		set["role"] = *patch.Role
	}
	if patch.URL != nil {
		set["url"] = *patch.URL
	}
	if patch.Notes != nil {
		set["notes"] = *patch.Notes
	}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}
	if patch.AppliedAt != nil {
		set["applied_at"] = *patch.AppliedAt
	}
	if patch.LastContactAt != nil {
		set["last_contact_at"] = *patch.LastContactAt
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id, "user_id": userID}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrApplicationNotFound
	}
	return nil
}

func (r *ApplicationRepository) Delete(ctx context.Context, id, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrApplicationNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the applications collection.
func (r *ApplicationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "status", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
