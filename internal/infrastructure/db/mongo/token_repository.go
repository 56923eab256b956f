package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wetrack/wetrack/internal/core/domain"
)

const tokensCollection = "user_tokens"

// TokenRepository persists session tokens: one logical table, indexed by
// token string and by owning username. Expired tokens are not purged here;
// expiry is enforced by the session service on read.
type TokenRepository struct {
	coll *mongo.Collection
}

func NewTokenRepository(db *mongo.Database) *TokenRepository {
	return &TokenRepository{coll: db.Collection(tokensCollection)}
}

type mongoToken struct {
	Token      string    `bson:"token"`
	Username   string    `bson:"username"`
	IssueTime  time.Time `bson:"issue_time"`
	ExpireTime time.Time `bson:"expire_time"`
}

func (d mongoToken) toDomain() *domain.UserToken {
	return &domain.UserToken{
		Token:      d.Token,
		Username:   d.Username,
		IssueTime:  domain.NewDateTime(d.IssueTime.UTC()),
		ExpireTime: domain.NewDateTime(d.ExpireTime.UTC()),
	}
}

func (r *TokenRepository) FindByToken(ctx context.Context, token string) (*domain.UserToken, error) {
	var doc mongoToken
	if err := r.coll.FindOne(ctx, bson.M{"token": token}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTokenNotFound
		}
		return nil, fmt.Errorf("find token: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *TokenRepository) FindByUsername(ctx context.Context, username string) (*domain.UserToken, error) {
	var doc mongoToken
	if err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTokenNotFound
		}
		return nil, fmt.Errorf("find token by username: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *TokenRepository) Insert(ctx context.Context, token *domain.UserToken) error {
	doc := mongoToken{
		Token:      token.Token,
		Username:   token.Username,
		IssueTime:  token.IssueTime.Time,
		ExpireTime: token.ExpireTime.Time,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert token: %w", err)
	}
	return nil
}

func (r *TokenRepository) Delete(ctx context.Context, token string) error {
	if _, err := r.coll.DeleteOne(ctx, bson.M{"token": token}); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

// EnsureIndexes creates the two lookup paths into the token collection.
func (r *TokenRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "token", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "username", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
