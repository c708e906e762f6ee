package repository

import (
	"context"
	"time"

	"qna_board_service/internal/board/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/pkg/errors"
)

// MessageSchema messages table DDL, members table must exist first
const MessageSchema = `
CREATE TABLE IF NOT EXISTS messages (
	id                  UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	member_id           TEXT NOT NULL REFERENCES members(uid),
	message_no          BIGINT NOT NULL,
	body                TEXT NOT NULL,
	author_display_name TEXT,
	author_photo_url    TEXT,
	reply               TEXT,
	reply_at            TIMESTAMPTZ,
	create_at           TIMESTAMPTZ NOT NULL DEFAULT now(),
	deny                BOOLEAN NOT NULL DEFAULT false,
	CONSTRAINT messages_member_no_key UNIQUE (member_id, message_no)
)`

const messageColumns = "id::text, member_id, message_no, body, author_display_name, author_photo_url, reply, reply_at, create_at, deny"

type pgMessageRepository struct {
	db *pgxpool.Pool
}

// NewPGMessageRepository create postgres MessageRepository
func NewPGMessageRepository(db *pgxpool.Pool) MessageRepository {
	return &pgMessageRepository{db: db}
}

// EnsurePGSchema create messages table if absent
func EnsurePGSchema(ctx context.Context, db *pgxpool.Pool) error {
	_, err := db.Exec(ctx, MessageSchema)
	return errors.Wrap(err, "create messages table")
}

func scanMessage(row pgx.Row) (*domain.Message, error) {
	var (
		m           domain.Message
		authorName  *string
		authorPhoto *string
		reply       *string
		replyAt     *time.Time
	)
	if err := row.Scan(&m.ID, &m.MemberID, &m.MessageNo, &m.Body, &authorName, &authorPhoto, &reply, &replyAt, &m.CreateAt, &m.Deny); err != nil {
		return nil, err
	}
	if authorName != nil && *authorName != "" {
		m.Author = &domain.Author{DisplayName: *authorName}
		if authorPhoto != nil {
			m.Author.PhotoURL = *authorPhoto
		}
	}
	if reply != nil {
		m.Reply = *reply
	}
	if replyAt != nil {
		t := replyAt.UTC()
		m.ReplyAt = &t
	}
	m.CreateAt = m.CreateAt.UTC()
	return &m, nil
}

// lockCounter lock the member row and return its counter, 0 when absent
func lockCounter(ctx context.Context, tx pgx.Tx, memberID string, forUpdate bool) (int64, error) {
	query := "SELECT message_count FROM members WHERE uid = $1"
	if forUpdate {
		query += " FOR UPDATE"
	}
	var counter *int64
	err := tx.QueryRow(ctx, query, memberID).Scan(&counter)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, domain.ErrMemberNotFound
	}
	if err != nil {
		return 0, errors.Wrap(err, "find member")
	}
	if counter == nil {
		return 0, nil
	}
	return *counter, nil
}

func (r *pgMessageRepository) inTx(ctx context.Context, opts pgx.TxOptions, fn func(tx pgx.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, opts)
	if err != nil {
		return errors.Wrap(err, "begin")
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}
	return errors.Wrap(tx.Commit(ctx), "commit")
}

func (r *pgMessageRepository) Post(ctx context.Context, memberID, body string, author *domain.Author) (*domain.Message, error) {
	var out *domain.Message
	err := r.inTx(ctx, pgx.TxOptions{}, func(tx pgx.Tx) error {
		no, err := lockCounter(ctx, tx, memberID, true)
		if err != nil {
			return err
		}
		if no < 1 {
			no = 1
		}

		var authorName, authorPhoto *string
		if author != nil {
			authorName = &author.DisplayName
			if author.PhotoURL != "" {
				authorPhoto = &author.PhotoURL
			}
		}
		out, err = scanMessage(tx.QueryRow(ctx,
			`INSERT INTO messages (member_id, message_no, body, author_display_name, author_photo_url)
			 VALUES ($1, $2, $3, $4, $5) RETURNING `+messageColumns,
			memberID, no, body, authorName, authorPhoto))
		if err != nil {
			return errors.Wrap(err, "insert message")
		}

		_, err = tx.Exec(ctx, "UPDATE members SET message_count = $2 WHERE uid = $1", memberID, no+1)
		return errors.Wrap(err, "update counter")
	})
	return out, err
}

func (r *pgMessageRepository) Reply(ctx context.Context, memberID, messageID, reply string) (*domain.Message, error) {
	if _, err := uuid.Parse(messageID); err != nil {
		return nil, domain.ErrMessageNotFound
	}

	var out *domain.Message
	err := r.inTx(ctx, pgx.TxOptions{}, func(tx pgx.Tx) error {
		if _, err := lockCounter(ctx, tx, memberID, false); err != nil {
			return err
		}
		current, err := r.selectMessage(ctx, tx, memberID, messageID, true)
		if err != nil {
			return err
		}
		if current.HasReply() {
			return domain.ErrAlreadyReplied
		}

		out, err = scanMessage(tx.QueryRow(ctx,
			`UPDATE messages SET reply = $3, reply_at = now()
			 WHERE id = $1 AND member_id = $2 RETURNING `+messageColumns,
			messageID, memberID, reply))
		return errors.Wrap(err, "update reply")
	})
	return out, err
}

func (r *pgMessageRepository) SetDeny(ctx context.Context, memberID, messageID string, deny bool) (*domain.Message, error) {
	if _, err := uuid.Parse(messageID); err != nil {
		return nil, domain.ErrMessageNotFound
	}

	var out *domain.Message
	err := r.inTx(ctx, pgx.TxOptions{}, func(tx pgx.Tx) error {
		if _, err := lockCounter(ctx, tx, memberID, false); err != nil {
			return err
		}
		var err error
		out, err = scanMessage(tx.QueryRow(ctx,
			`UPDATE messages SET deny = $3
			 WHERE id = $1 AND member_id = $2 RETURNING `+messageColumns,
			messageID, memberID, deny))
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrMessageNotFound
		}
		return errors.Wrap(err, "update deny")
	})
	return out, err
}

func (r *pgMessageRepository) Get(ctx context.Context, memberID, messageID string) (*domain.Message, error) {
	if _, err := uuid.Parse(messageID); err != nil {
		return nil, domain.ErrMessageNotFound
	}

	var out *domain.Message
	err := r.inTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}, func(tx pgx.Tx) error {
		if _, err := lockCounter(ctx, tx, memberID, false); err != nil {
			return err
		}
		var err error
		out, err = r.selectMessage(ctx, tx, memberID, messageID, false)
		return err
	})
	return out, err
}

func (r *pgMessageRepository) selectMessage(ctx context.Context, tx pgx.Tx, memberID, messageID string, forUpdate bool) (*domain.Message, error) {
	query := "SELECT " + messageColumns + " FROM messages WHERE id = $1 AND member_id = $2"
	if forUpdate {
		query += " FOR UPDATE"
	}
	m, err := scanMessage(tx.QueryRow(ctx, query, messageID, memberID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrMessageNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "find message")
	}
	return m, nil
}

func (r *pgMessageRepository) ListPage(ctx context.Context, memberID string, page, size int64) (*domain.Page, error) {
	var out *domain.Page
	err := r.inTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}, func(tx pgx.Tx) error {
		counter, err := lockCounter(ctx, tx, memberID, false)
		if err != nil {
			return err
		}

		w := domain.NewPageWindow(counter, page, size)
		out = domain.NewEmptyPage(w)
		if w.Empty() {
			return nil
		}

		rows, err := tx.Query(ctx,
			"SELECT "+messageColumns+` FROM messages
			 WHERE member_id = $1 AND message_no <= $2
			 ORDER BY message_no DESC LIMIT $3`,
			memberID, w.StartAt, size)
		if err != nil {
			return errors.Wrap(err, "find messages")
		}
		defer rows.Close()

		for rows.Next() {
			m, err := scanMessage(rows)
			if err != nil {
				return errors.Wrap(err, "scan message")
			}
			out.Content = append(out.Content, m)
		}
		return errors.Wrap(rows.Err(), "iterate messages")
	})
	return out, err
}
