package repository

import (
	"context"
	"time"

	"qna_board_service/internal/board/domain"
	memberrepo "qna_board_service/internal/member/repository"
	"qna_board_service/pkg/database"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type messageDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	MemberID  string             `bson:"member_id"`
	MessageNo int64              `bson:"message_no"`
	Body      string             `bson:"message"`
	Author    *domain.Author     `bson:"author,omitempty"`
	Reply     string             `bson:"reply,omitempty"`
	ReplyAt   *time.Time         `bson:"reply_at,omitempty"`
	CreateAt  time.Time          `bson:"create_at"`
	Deny      bool               `bson:"deny"`
}

func (d *messageDocument) toDomain() *domain.Message {
	m := &domain.Message{
		ID:        d.ID.Hex(),
		MemberID:  d.MemberID,
		MessageNo: d.MessageNo,
		Body:      d.Body,
		Author:    d.Author,
		Reply:     d.Reply,
		CreateAt:  d.CreateAt.UTC(),
		Deny:      d.Deny,
	}
	if d.ReplyAt != nil {
		t := d.ReplyAt.UTC()
		m.ReplyAt = &t
	}
	return m
}

type memberCounter struct {
	MessageCount *int64 `bson:"message_count"`
}

type mongoMessageRepository struct {
	db           *database.MongoDB
	membersColl  *mongo.Collection
	messagesColl *mongo.Collection
}

// NewMongoMessageRepository create mongo MessageRepository
func NewMongoMessageRepository(db *database.MongoDB) MessageRepository {
	return &mongoMessageRepository{
		db:           db,
		membersColl:  db.Database.Collection(memberrepo.MemberCollection),
		messagesColl: db.Database.Collection(MessageCollection),
	}
}

// EnsureMongoIndexes messageNo 在同一個 member 內唯一
func EnsureMongoIndexes(ctx context.Context, db *database.MongoDB) error {
	_, err := db.Database.Collection(MessageCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "member_id", Value: 1}, {Key: "message_no", Value: -1}},
		Options: options.Index().SetUnique(true).SetName("member_message_no"),
	})
	return errors.Wrap(err, "create messages index")
}

// counter return the member's message counter, 0 when absent
func (r *mongoMessageRepository) counter(ctx context.Context, memberID string) (int64, error) {
	var c memberCounter
	err := r.membersColl.FindOne(ctx, bson.M{"_id": memberID},
		options.FindOne().SetProjection(bson.M{"message_count": 1})).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, domain.ErrMemberNotFound
	}
	if err != nil {
		return 0, errors.Wrap(err, "find member")
	}
	if c.MessageCount == nil {
		return 0, nil
	}
	return *c.MessageCount, nil
}

func (r *mongoMessageRepository) findMessage(ctx context.Context, memberID string, id primitive.ObjectID) (*messageDocument, error) {
	var doc messageDocument
	err := r.messagesColl.FindOne(ctx, bson.M{"_id": id, "member_id": memberID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrMessageNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "find message")
	}
	return &doc, nil
}

func (r *mongoMessageRepository) Post(ctx context.Context, memberID, body string, author *domain.Author) (*domain.Message, error) {
	res, err := r.db.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		no, err := r.counter(sc, memberID)
		if err != nil {
			return nil, err
		}
		if no < 1 {
			no = 1
		}

		fields := bson.M{
			"member_id":  memberID,
			"message_no": no,
			"message":    body,
			"deny":       false,
		}
		if author != nil {
			fields["author"] = author
		}
		up, err := r.messagesColl.UpdateOne(sc,
			bson.M{"member_id": memberID, "message_no": no},
			bson.M{
				"$setOnInsert": fields,
				"$currentDate": bson.M{"create_at": true},
			},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return nil, errors.Wrap(err, "insert message")
		}
		id, ok := up.UpsertedID.(primitive.ObjectID)
		if !ok {
			return nil, errors.Errorf("message_no %d already taken for member %s", no, memberID)
		}

		if _, err := r.membersColl.UpdateOne(sc,
			bson.M{"_id": memberID},
			bson.M{"$set": bson.M{"message_count": no + 1}},
		); err != nil {
			return nil, errors.Wrap(err, "update counter")
		}

		doc, err := r.findMessage(sc, memberID, id)
		if err != nil {
			return nil, err
		}
		return doc.toDomain(), nil
	})
	if err != nil {
		return nil, err
	}
	return res.(*domain.Message), nil
}

func (r *mongoMessageRepository) Reply(ctx context.Context, memberID, messageID, reply string) (*domain.Message, error) {
	id, err := primitive.ObjectIDFromHex(messageID)
	if err != nil {
		return nil, domain.ErrMessageNotFound
	}

	res, err := r.db.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := r.counter(sc, memberID); err != nil {
			return nil, err
		}
		doc, err := r.findMessage(sc, memberID, id)
		if err != nil {
			return nil, err
		}
		if doc.Reply != "" {
			return nil, domain.ErrAlreadyReplied
		}

		if _, err := r.messagesColl.UpdateOne(sc,
			bson.M{"_id": id, "member_id": memberID},
			bson.M{
				"$set":         bson.M{"reply": reply},
				"$currentDate": bson.M{"reply_at": true},
			},
		); err != nil {
			return nil, errors.Wrap(err, "update reply")
		}

		doc, err = r.findMessage(sc, memberID, id)
		if err != nil {
			return nil, err
		}
		return doc.toDomain(), nil
	})
	if err != nil {
		return nil, err
	}
	return res.(*domain.Message), nil
}

func (r *mongoMessageRepository) SetDeny(ctx context.Context, memberID, messageID string, deny bool) (*domain.Message, error) {
	id, err := primitive.ObjectIDFromHex(messageID)
	if err != nil {
		return nil, domain.ErrMessageNotFound
	}

	res, err := r.db.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := r.counter(sc, memberID); err != nil {
			return nil, err
		}
		up, err := r.messagesColl.UpdateOne(sc,
			bson.M{"_id": id, "member_id": memberID},
			bson.M{"$set": bson.M{"deny": deny}},
		)
		if err != nil {
			return nil, errors.Wrap(err, "update deny")
		}
		if up.MatchedCount == 0 {
			return nil, domain.ErrMessageNotFound
		}

		doc, err := r.findMessage(sc, memberID, id)
		if err != nil {
			return nil, err
		}
		return doc.toDomain(), nil
	})
	if err != nil {
		return nil, err
	}
	return res.(*domain.Message), nil
}

func (r *mongoMessageRepository) Get(ctx context.Context, memberID, messageID string) (*domain.Message, error) {
	id, err := primitive.ObjectIDFromHex(messageID)
	if err != nil {
		return nil, domain.ErrMessageNotFound
	}

	res, err := r.db.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := r.counter(sc, memberID); err != nil {
			return nil, err
		}
		doc, err := r.findMessage(sc, memberID, id)
		if err != nil {
			return nil, err
		}
		return doc.toDomain(), nil
	})
	if err != nil {
		return nil, err
	}
	return res.(*domain.Message), nil
}

func (r *mongoMessageRepository) ListPage(ctx context.Context, memberID string, page, size int64) (*domain.Page, error) {
	res, err := r.db.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		counter, err := r.counter(sc, memberID)
		if err != nil {
			return nil, err
		}

		w := domain.NewPageWindow(counter, page, size)
		p := domain.NewEmptyPage(w)
		if w.Empty() {
			return p, nil
		}

		cur, err := r.messagesColl.Find(sc,
			bson.M{"member_id": memberID, "message_no": bson.M{"$lte": w.StartAt}},
			options.Find().SetSort(bson.D{{Key: "message_no", Value: -1}}).SetLimit(size),
		)
		if err != nil {
			return nil, errors.Wrap(err, "find messages")
		}
		defer cur.Close(sc)

		for cur.Next(sc) {
			var doc messageDocument
			if err := cur.Decode(&doc); err != nil {
				return nil, errors.Wrap(err, "decode message")
			}
			p.Content = append(p.Content, doc.toDomain())
		}
		if err := cur.Err(); err != nil {
			return nil, errors.Wrap(err, "iterate messages")
		}
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return res.(*domain.Page), nil
}
