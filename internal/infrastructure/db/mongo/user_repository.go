package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wetrack/wetrack/internal/core/domain"
)

const usersCollection = "users"

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

// mongoUser is the persistence shape of a user document. Dates are stored as
// their wire strings so documents written by the previous implementation stay
// readable.
type mongoUser struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Username  string             `bson:"username"`
	Password  string             `bson:"password"`
	Nickname  string             `bson:"nickname,omitempty"`
	IconURL   string             `bson:"icon_url,omitempty"`
	Email     string             `bson:"email,omitempty"`
	Gender    string             `bson:"gender,omitempty"`
	BirthDate string             `bson:"birth_date,omitempty"`
	Friends   []string           `bson:"friends,omitempty"`
}

func toMongoUser(u *domain.User) mongoUser {
	doc := mongoUser{
		Username: u.Username,
		Password: u.Password,
		Nickname: u.Nickname,
		IconURL:  u.IconURL,
		Email:    u.Email,
		Gender:   string(u.Gender),
		Friends:  u.Friends,
	}
	if !u.BirthDate.IsZero() {
		doc.BirthDate = u.BirthDate.Format(domain.DateLayout)
	}
	return doc
}

func (d mongoUser) toDomain() (*domain.User, error) {
	user := &domain.User{
		Username: d.Username,
		Password: d.Password,
		Nickname: d.Nickname,
		IconURL:  d.IconURL,
		Email:    d.Email,
		Gender:   domain.Gender(d.Gender),
		Friends:  d.Friends,
	}
	if d.BirthDate != "" {
		t, err := time.Parse(domain.DateLayout, d.BirthDate)
		if err != nil {
			return nil, fmt.Errorf("decode birth date: %w", err)
		}
		user.BirthDate = domain.Date{Time: t}
	}
	return user, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var doc mongoUser
	if err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toDomain()
}

func (r *UserRepository) CountByUsername(ctx context.Context, username string) (int64, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"username": username})
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}

func (r *UserRepository) Insert(ctx context.Context, user *domain.User) error {
	if _, err := r.coll.InsertOne(ctx, toMongoUser(user)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"username": user.Username}, toMongoUser(user))
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// EnsureIndexes creates the unique username index backing both the duplicate
// check on create and the key lookups everywhere else.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
