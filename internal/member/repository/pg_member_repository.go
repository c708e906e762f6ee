package repository

import (
	"context"
	"time"

	"qna_board_service/internal/member/domain"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/pkg/errors"
)

const pgUniqueViolation = "23505"

// MemberSchema members table DDL
const MemberSchema = `
CREATE TABLE IF NOT EXISTS members (
	uid           TEXT PRIMARY KEY,
	email         TEXT NOT NULL,
	display_name  TEXT NOT NULL DEFAULT '',
	photo_url     TEXT NOT NULL DEFAULT '',
	screen_name   TEXT NOT NULL,
	message_count BIGINT,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	CONSTRAINT members_screen_name_key UNIQUE (screen_name)
)`

type pgMemberRepository struct {
	db *pgxpool.Pool
}

// NewPGMemberRepository create postgres MemberRepository
func NewPGMemberRepository(db *pgxpool.Pool) MemberRepository {
	return &pgMemberRepository{db: db}
}

// EnsurePGSchema create members table if absent
func EnsurePGSchema(ctx context.Context, db *pgxpool.Pool) error {
	_, err := db.Exec(ctx, MemberSchema)
	return errors.Wrap(err, "create members table")
}

func (r *pgMemberRepository) Create(ctx context.Context, member *domain.Member) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, errors.Wrap(err, "begin")
	}
	defer tx.Rollback(ctx)

	var exists bool
	if err := tx.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM members WHERE uid = $1)", member.UID).Scan(&exists); err != nil {
		return false, errors.Wrap(err, "find member")
	}
	if exists {
		return false, nil
	}

	if member.CreatedAt.IsZero() {
		member.CreatedAt = time.Now().UTC()
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO members (uid, email, display_name, photo_url, screen_name, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		member.UID, member.Email, member.DisplayName, member.PhotoURL, member.ScreenName, member.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			if pgErr.ConstraintName == "members_pkey" {
				return false, nil
			}
			return false, domain.ErrScreenNameTaken
		}
		return false, errors.Wrap(err, "insert member")
	}

	if err := tx.Commit(ctx); err != nil {
		return false, errors.Wrap(err, "commit")
	}
	return true, nil
}

const memberColumns = "uid, email, display_name, photo_url, screen_name, created_at, message_count"

func (r *pgMemberRepository) FindByID(ctx context.Context, uid string) (*domain.Member, error) {
	return r.findOne(ctx, "SELECT "+memberColumns+" FROM members WHERE uid = $1", uid)
}

func (r *pgMemberRepository) FindByScreenName(ctx context.Context, screenName string) (*domain.Member, error) {
	return r.findOne(ctx, "SELECT "+memberColumns+" FROM members WHERE screen_name = $1", screenName)
}

func (r *pgMemberRepository) findOne(ctx context.Context, query string, arg string) (*domain.Member, error) {
	var m domain.Member
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&m.UID, &m.Email, &m.DisplayName, &m.PhotoURL, &m.ScreenName, &m.CreatedAt, &m.MessageCount)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrMemberNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "find member")
	}
	return &m, nil
}
