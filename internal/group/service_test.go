package group

import (
	"context"
	"testing"
	"time"

	"chatlink/internal/chat"
	"chatlink/pkg/apperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	users   map[string]int
	groups  map[string]*Group
	members map[uuid.UUID]map[int]bool
	msgs    map[uuid.UUID][]chat.Message
	nextID  int
	msgSeq  int
}

func newFakeStore(handles ...string) *fakeStore {
	s := &fakeStore{
		users:   make(map[string]int),
		groups:  make(map[string]*Group),
		members: make(map[uuid.UUID]map[int]bool),
		msgs:    make(map[uuid.UUID][]chat.Message),
	}
	for i, h := range handles {
		s.users[h] = i + 1
	}
	return s
}

func (s *fakeStore) GetIDByHandle(_ context.Context, handle string) (int, error) {
	id, ok := s.users[handle]
	if !ok {
		return 0, apperr.ErrUserNotFound
	}
	return id, nil
}

func (s *fakeStore) Create(_ context.Context, name string, adminID int) (*Group, error) {
	if _, ok := s.groups[name]; ok {
		return nil, apperr.ErrGroupNameTaken
	}
	s.nextID++
	g := &Group{
		ID:             s.nextID,
		Name:           name,
		AdminID:        adminID,
		ConversationID: uuid.New(),
		CreatedAt:      time.Now(),
	}
	s.groups[name] = g
	s.members[g.ConversationID] = map[int]bool{adminID: true}
	return g, nil
}

func (s *fakeStore) GetByName(_ context.Context, name string) (*Group, error) {
	g, ok := s.groups[name]
	if !ok {
		return nil, apperr.ErrGroupNotFound
	}
	return g, nil
}

func (s *fakeStore) ListByMember(_ context.Context, userID int) ([]Group, error) {
	var out []Group
	for _, g := range s.groups {
		if s.members[g.ConversationID][userID] {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (s *fakeStore) Rename(_ context.Context, name, newName string) (*Group, error) {
	g, ok := s.groups[name]
	if !ok {
		return nil, apperr.ErrGroupNotFound
	}
	if _, taken := s.groups[newName]; taken && newName != name {
		return nil, apperr.ErrGroupNameTaken
	}
	delete(s.groups, name)
	g.Name = newName
	s.groups[newName] = g
	return g, nil
}

func (s *fakeStore) Delete(_ context.Context, name string) error {
	g, ok := s.groups[name]
	if !ok {
		return apperr.ErrGroupNotFound
	}
	delete(s.members, g.ConversationID)
	delete(s.msgs, g.ConversationID)
	delete(s.groups, name)
	return nil
}

func (s *fakeStore) Search(_ context.Context, query string) ([]Profile, error) {
	var out []Profile
	for name := range s.groups {
		if name == query {
			out = append(out, Profile{Name: name})
		}
	}
	return out, nil
}

func (s *fakeStore) AddMember(_ context.Context, convID uuid.UUID, userID int) error {
	if s.members[convID] == nil {
		s.members[convID] = make(map[int]bool)
	}
	s.members[convID][userID] = true
	return nil
}

func (s *fakeStore) RemoveMember(_ context.Context, convID uuid.UUID, userID int) error {
	delete(s.members[convID], userID)
	return nil
}

func (s *fakeStore) IsMember(_ context.Context, convID uuid.UUID, userID int) (bool, error) {
	return s.members[convID][userID], nil
}

func (s *fakeStore) InsertMessage(_ context.Context, convID uuid.UUID, sender, groupName, body string) (*chat.Message, error) {
	s.msgSeq++
	m := chat.Message{
		ID:             s.msgSeq,
		ConversationID: convID,
		From:           sender,
		To:             groupName,
		Content:        body,
		IsGroupMsg:     true,
		CreatedAt:      time.Now(),
	}
	s.msgs[convID] = append(s.msgs[convID], m)
	return &m, nil
}

func (s *fakeStore) Messages(_ context.Context, convID uuid.UUID) ([]chat.Message, error) {
	return append([]chat.Message(nil), s.msgs[convID]...), nil
}

func TestCreateGroup(t *testing.T) {
	svc := NewService(newFakeStore("alice"))
	ctx := context.Background()

	g, err := svc.Create(ctx, "gophers", "alice")
	require.NoError(t, err)
	assert.Equal(t, "gophers", g.Name)

	// The creator is the first member.
	groups, err := svc.ListByMember(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, groups, 1)

	t.Run("duplicate name", func(t *testing.T) {
		_, err := svc.Create(ctx, "gophers", "alice")
		assert.ErrorIs(t, err, apperr.ErrGroupNameTaken)
	})

	t.Run("unknown admin", func(t *testing.T) {
		_, err := svc.Create(ctx, "others", "nobody")
		assert.ErrorIs(t, err, apperr.ErrUserNotFound)
	})
}

func TestGroupMessagingRequiresMembership(t *testing.T) {
	store := newFakeStore("alice", "bob")
	svc := NewService(store)
	ctx := context.Background()

	_, err := svc.Create(ctx, "gophers", "alice")
	require.NoError(t, err)

	_, err = svc.SendMessage(ctx, "gophers", "bob", "hello")
	assert.ErrorIs(t, err, apperr.ErrNotGroupMember)

	require.NoError(t, svc.Join(ctx, "gophers", "bob"))

	msg, err := svc.SendMessage(ctx, "gophers", "bob", "hello")
	require.NoError(t, err)
	assert.True(t, msg.IsGroupMsg)
	assert.Equal(t, "gophers", msg.To)

	msgs, err := svc.History(ctx, "gophers", "alice")
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "hello", msgs[0].Content)
}

func TestGroupLeaveRevokesAccess(t *testing.T) {
	svc := NewService(newFakeStore("alice", "bob"))
	ctx := context.Background()

	_, err := svc.Create(ctx, "gophers", "alice")
	require.NoError(t, err)
	require.NoError(t, svc.Join(ctx, "gophers", "bob"))
	require.NoError(t, svc.Leave(ctx, "gophers", "bob"))

	_, err = svc.History(ctx, "gophers", "bob")
	assert.ErrorIs(t, err, apperr.ErrNotGroupMember)
}

func TestGroupRenameAndDelete(t *testing.T) {
	svc := NewService(newFakeStore("alice"))
	ctx := context.Background()

	_, err := svc.Create(ctx, "gophers", "alice")
	require.NoError(t, err)

	g, err := svc.Rename(ctx, "gophers", "rustaceans")
	require.NoError(t, err)
	assert.Equal(t, "rustaceans", g.Name)

	_, err = svc.Rename(ctx, "gophers", "x")
	assert.ErrorIs(t, err, apperr.ErrGroupNotFound)

	require.NoError(t, svc.Delete(ctx, "rustaceans"))
	assert.ErrorIs(t, svc.Delete(ctx, "rustaceans"), apperr.ErrGroupNotFound)
}

func TestGroupSearchRequiresQuery(t *testing.T) {
	svc := NewService(newFakeStore())

	_, err := svc.Search(context.Background(), "")
	assert.ErrorIs(t, err, apperr.ErrInvalidQuery)
}
