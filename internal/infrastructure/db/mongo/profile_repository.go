package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/candipilot/candipilot-api/internal/core/domain"
)

const collectionUsers = "users"

type ProfileRepository struct {
	col *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{col: db.Collection(collectionUsers)}
}

type profileDoc struct {
	ID               string      `bson:"_id"`
	Email            string      `bson:"email"`
	PasswordHash     string      `bson:"password_hash"`
	Tier             domain.Tier `bson:"tier"`
	StripeCustomerID string      `bson:"stripe_customer_id,omitempty"`
	AIUsageCount     int         `bson:"ai_usage_count"`
	AIUsageResetAt   time.Time   `bson:"ai_usage_reset_at"`
	CreatedAt        time.Time   `bson:"created_at"`
	UpdatedAt        time.Time   `bson:"updated_at"`
}

func toProfileDoc(p *domain.Profile) *profileDoc {
	return &profileDoc{
		ID:               p.ID,
		Email:            p.Email,
		PasswordHash:     p.PasswordHash,
		Tier:             p.Tier,
		StripeCustomerID: p.StripeCustomerID,
		AIUsageCount:     p.AIUsageCount,
		AIUsageResetAt:   p.AIUsageResetAt,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func (d *profileDoc) toDomain() *domain.Profile {
	return &domain.Profile{
		ID:               d.ID,
		Email:            d.Email,
		PasswordHash:     d.PasswordHash,
		Tier:             d.Tier,
		StripeCustomerID: d.StripeCustomerID,
		AIUsageCount:     d.AIUsageCount,
		AIUsageResetAt:   d.AIUsageResetAt,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}

func (r *ProfileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, toProfileDoc(profile))
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrUserExists
	}
	return err
}

func (r *ProfileRepository) FindByID(ctx context.Context, id string) (*domain.Profile, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *ProfileRepository) FindByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *ProfileRepository) findOne(ctx context.Context, filter bson.M) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc profileDoc
	err := r.col.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

// ResetAIUsage zeroes the monthly counter and moves its anchor.
func (r *ProfileRepository) ResetAIUsage(ctx context.Context, userID string, anchor time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$set": bson.M{
			"ai_usage_count":    0,
			"ai_usage_reset_at": anchor,
			"updated_at":        time.Now().UTC(),
		},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// ReserveFollowupCredit atomically takes one credit. The filter requires the
// counter to still be under the limit, so two concurrent requests can never
// both pass a separate read-then-write check. Returns the counter value after
// the reservation.
func (r *ProfileRepository) ReserveFollowupCredit(ctx context.Context, userID string, limit int) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": userID, "ai_usage_count": bson.M{"$lt": limit}}
	update := bson.M{
		"$inc": bson.M{"ai_usage_count": 1},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc profileDoc
	err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Either the user is missing or the quota is spent; tell
			// them apart with a plain lookup.
			if _, lookupErr := r.FindByID(ctx, userID); lookupErr != nil {
				return 0, lookupErr
			}
			return 0, domain.ErrFollowupQuotaExceeded
		}
		return 0, err
	}
	return doc.AIUsageCount, nil
}

// ReleaseFollowupCredit refunds a reservation after a failed generation. The
// $gt guard keeps the counter from going negative if a reset raced in
// between.
func (r *ProfileRepository) ReleaseFollowupCredit(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": userID, "ai_usage_count": bson.M{"$gt": 0}}
	_, err := r.col.UpdateOne(ctx, filter, bson.M{"$inc": bson.M{"ai_usage_count": -1}})
	return err
}

func (r *ProfileRepository) SetTier(ctx context.Context, userID string, tier domain.Tier, customerID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"tier": tier, "updated_at": time.Now().UTC()}
	if customerID != "" {
		set["stripe_customer_id"] = customerID
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *ProfileRepository) SetTierByCustomer(ctx context.Context, customerID string, tier domain.Tier) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"stripe_customer_id": customerID},
		bson.M{"$set": bson.M{"tier": tier, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the users collection.
func (r *ProfileRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "stripe_customer_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
