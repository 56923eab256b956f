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

const chatsCollection = "chats"

type ChatRepository struct {
	coll *mongo.Collection
}

func NewChatRepository(db *mongo.Database) *ChatRepository {
	return &ChatRepository{coll: db.Collection(chatsCollection)}
}

type mongoChat struct {
	ChatID  string   `bson:"chat_id"`
	Name    string   `bson:"name"`
	Members []string `bson:"members"`
}

func (r *ChatRepository) FindByID(ctx context.Context, chatID string) (*domain.Chat, error) {
	var doc mongoChat
	if err := r.coll.FindOne(ctx, bson.M{"chat_id": chatID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrChatNotFound
		}
		return nil, fmt.Errorf("find chat: %w", err)
	}
	return &domain.Chat{ChatID: doc.ChatID, Name: doc.Name, Members: doc.Members}, nil
}

func (r *ChatRepository) FindByMember(ctx context.Context, username string) ([]domain.Chat, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"members": username})
	if err != nil {
		return nil, fmt.Errorf("find chats by member: %w", err)
	}
	defer cursor.Close(ctx)

	chats := make([]domain.Chat, 0)
	for cursor.Next(ctx) {
		var doc mongoChat
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode chat: %w", err)
		}
		chats = append(chats, domain.Chat{ChatID: doc.ChatID, Name: doc.Name, Members: doc.Members})
	}
	return chats, cursor.Err()
}

func (r *ChatRepository) Insert(ctx context.Context, chat *domain.Chat) error {
	doc := mongoChat{ChatID: chat.ChatID, Name: chat.Name, Members: chat.Members}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert chat: %w", err)
	}
	return nil
}

func (r *ChatRepository) Update(ctx context.Context, chat *domain.Chat) error {
	doc := mongoChat{ChatID: chat.ChatID, Name: chat.Name, Members: chat.Members}
	res, err := r.coll.ReplaceOne(ctx, bson.M{"chat_id": chat.ChatID}, doc)
	if err != nil {
		return fmt.Errorf("update chat: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrChatNotFound
	}
	return nil
}

func (r *ChatRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "chat_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "members", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
