package repository

import (
	"context"
	"time"

	"qna_board_service/internal/member/domain"
	"qna_board_service/pkg/database"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type mongoMemberRepository struct {
	db              *database.MongoDB
	membersColl     *mongo.Collection
	screenNamesColl *mongo.Collection
}

// NewMongoMemberRepository create mongo MemberRepository
func NewMongoMemberRepository(db *database.MongoDB) MemberRepository {
	return &mongoMemberRepository{
		db:              db,
		membersColl:     db.Database.Collection(MemberCollection),
		screenNamesColl: db.Database.Collection(ScreenNameCollection),
	}
}

func (r *mongoMemberRepository) Create(ctx context.Context, member *domain.Member) (bool, error) {
	res, err := r.db.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		err := r.membersColl.FindOne(sc, bson.M{"_id": member.UID}).Err()
		if err == nil {
			return false, nil
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.Wrap(err, "find member")
		}

		var holder domain.ScreenNameRecord
		err = r.screenNamesColl.FindOne(sc, bson.M{"_id": member.ScreenName}).Decode(&holder)
		if err == nil && holder.UID != member.UID {
			return nil, domain.ErrScreenNameTaken
		}
		if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.Wrap(err, "find screen name")
		}

		if member.CreatedAt.IsZero() {
			member.CreatedAt = time.Now().UTC()
		}
		if _, err := r.membersColl.InsertOne(sc, member); err != nil {
			return nil, errors.Wrap(err, "insert member")
		}
		if _, err := r.screenNamesColl.InsertOne(sc, domain.NewScreenNameRecord(member)); err != nil {
			return nil, errors.Wrap(err, "insert screen name")
		}
		return true, nil
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(errors.Cause(err)) {
			return r.resolveDuplicate(ctx, member.UID)
		}
		return false, err
	}
	return res.(bool), nil
}

// resolveDuplicate 同一 uid 併發註冊視為已存在, 否則是 screen name 衝突
func (r *mongoMemberRepository) resolveDuplicate(ctx context.Context, uid string) (bool, error) {
	if _, err := r.FindByID(ctx, uid); err == nil {
		return false, nil
	}
	return false, domain.ErrScreenNameTaken
}

func (r *mongoMemberRepository) FindByID(ctx context.Context, uid string) (*domain.Member, error) {
	var member domain.Member
	err := r.membersColl.FindOne(ctx, bson.M{"_id": uid}).Decode(&member)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrMemberNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "find member")
	}
	return &member, nil
}

func (r *mongoMemberRepository) FindByScreenName(ctx context.Context, screenName string) (*domain.Member, error) {
	var rec domain.ScreenNameRecord
	err := r.screenNamesColl.FindOne(ctx, bson.M{"_id": screenName}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrMemberNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "find screen name")
	}
	return rec.ToMember(), nil
}
