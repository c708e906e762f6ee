package app

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"qna_board_service/internal/board/domain"
	memberdomain "qna_board_service/internal/member/domain"
)

// memoryLedger in-memory MessageRepository, 每個方法持有 mutex 視為一個 transaction
type memoryLedger struct {
	mu       sync.Mutex
	members  map[string]*memberdomain.Member
	messages map[string][]*domain.Message
	seq      int
	now      func() time.Time
}

func newMemoryLedger() *memoryLedger {
	return &memoryLedger{
		members:  map[string]*memberdomain.Member{},
		messages: map[string][]*domain.Message{},
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (l *memoryLedger) addMember(uid, screenName string, counter *int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.members[uid] = &memberdomain.Member{UID: uid, ScreenName: screenName, MessageCount: counter}
}

func (l *memoryLedger) counter(uid string) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	if c := l.members[uid].MessageCount; c != nil {
		return *c
	}
	return 0
}

func (l *memoryLedger) FindByScreenName(_ context.Context, screenName string) (*memberdomain.Member, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, m := range l.members {
		if m.ScreenName == screenName {
			out := *m
			return &out, nil
		}
	}
	return nil, nil
}

func (l *memoryLedger) find(memberID, messageID string) (*domain.Message, error) {
	if _, ok := l.members[memberID]; !ok {
		return nil, domain.ErrMemberNotFound
	}
	for _, m := range l.messages[memberID] {
		if m.ID == messageID {
			return m, nil
		}
	}
	return nil, domain.ErrMessageNotFound
}

func copyMessage(m *domain.Message) *domain.Message {
	out := *m
	return &out
}

func (l *memoryLedger) Post(_ context.Context, memberID, body string, author *domain.Author) (*domain.Message, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	member, ok := l.members[memberID]
	if !ok {
		return nil, domain.ErrMemberNotFound
	}
	no := int64(1)
	if member.MessageCount != nil && *member.MessageCount > 0 {
		no = *member.MessageCount
	}
	for _, m := range l.messages[memberID] {
		if m.MessageNo == no {
			return nil, fmt.Errorf("duplicate message_no %d", no)
		}
	}

	l.seq++
	msg := &domain.Message{
		ID:        fmt.Sprintf("msg-%d", l.seq),
		MemberID:  memberID,
		MessageNo: no,
		Body:      body,
		Author:    author,
		CreateAt:  l.now(),
	}
	l.messages[memberID] = append(l.messages[memberID], msg)
	next := no + 1
	member.MessageCount = &next
	return copyMessage(msg), nil
}

func (l *memoryLedger) Reply(_ context.Context, memberID, messageID, reply string) (*domain.Message, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	msg, err := l.find(memberID, messageID)
	if err != nil {
		return nil, err
	}
	if msg.HasReply() {
		return nil, domain.ErrAlreadyReplied
	}
	now := l.now()
	msg.Reply = reply
	msg.ReplyAt = &now
	return copyMessage(msg), nil
}

func (l *memoryLedger) SetDeny(_ context.Context, memberID, messageID string, deny bool) (*domain.Message, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	msg, err := l.find(memberID, messageID)
	if err != nil {
		return nil, err
	}
	msg.Deny = deny
	return copyMessage(msg), nil
}

func (l *memoryLedger) Get(_ context.Context, memberID, messageID string) (*domain.Message, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	msg, err := l.find(memberID, messageID)
	if err != nil {
		return nil, err
	}
	return copyMessage(msg), nil
}

func (l *memoryLedger) ListPage(_ context.Context, memberID string, page, size int64) (*domain.Page, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	member, ok := l.members[memberID]
	if !ok {
		return nil, domain.ErrMemberNotFound
	}
	var counter int64
	if member.MessageCount != nil {
		counter = *member.MessageCount
	}
	w := domain.NewPageWindow(counter, page, size)
	p := domain.NewEmptyPage(w)
	if w.Empty() {
		return p, nil
	}

	all := append([]*domain.Message(nil), l.messages[memberID]...)
	sort.Slice(all, func(i, j int) bool { return all[i].MessageNo > all[j].MessageNo })
	for _, m := range all {
		if m.MessageNo > w.StartAt {
			continue
		}
		if int64(len(p.Content)) == size {
			break
		}
		p.Content = append(p.Content, copyMessage(m))
	}
	return p, nil
}
