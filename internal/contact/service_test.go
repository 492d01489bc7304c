package contact

import (
	"context"
	"testing"

	"chatlink/internal/chat"
	"chatlink/internal/user"
	"chatlink/pkg/apperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore mirrors the repository semantics in memory: set-based pending
// requests, both-direction friendships, one conversation per pair key.
type fakeStore struct {
	users   map[string]int
	images  map[int]string
	pending map[int]map[int]bool
	friends map[int]map[int]bool
	convs   map[string]uuid.UUID
}

func newFakeStore(handles ...string) *fakeStore {
	s := &fakeStore{
		users:   make(map[string]int),
		images:  make(map[int]string),
		pending: make(map[int]map[int]bool),
		friends: make(map[int]map[int]bool),
		convs:   make(map[string]uuid.UUID),
	}
	for i, h := range handles {
		s.users[h] = i + 1
	}
	return s
}

func (s *fakeStore) handleOf(id int) string {
	for h, i := range s.users {
		if i == id {
			return h
		}
	}
	return ""
}

func (s *fakeStore) GetIDByHandle(_ context.Context, handle string) (int, error) {
	id, ok := s.users[handle]
	if !ok {
		return 0, apperr.ErrUserNotFound
	}
	return id, nil
}

func (s *fakeStore) AddRequest(_ context.Context, receiverID, requesterID int) (bool, error) {
	if s.pending[receiverID] == nil {
		s.pending[receiverID] = make(map[int]bool)
	}
	if s.pending[receiverID][requesterID] {
		return false, nil
	}
	s.pending[receiverID][requesterID] = true
	return true, nil
}

func (s *fakeStore) Accept(_ context.Context, accepterID, requesterID int) (uuid.UUID, error) {
	delete(s.pending[accepterID], requesterID)

	if s.friends[accepterID] == nil {
		s.friends[accepterID] = make(map[int]bool)
	}
	if s.friends[requesterID] == nil {
		s.friends[requesterID] = make(map[int]bool)
	}
	s.friends[accepterID][requesterID] = true
	s.friends[requesterID][accepterID] = true

	key := chat.PairKey(accepterID, requesterID)
	if id, ok := s.convs[key]; ok {
		return id, nil
	}
	id := uuid.New()
	s.convs[key] = id
	return id, nil
}

func (s *fakeStore) ListPending(_ context.Context, receiverID int) ([]user.Profile, error) {
	var out []user.Profile
	for id := range s.pending[receiverID] {
		out = append(out, user.Profile{Handle: s.handleOf(id), ProfileImage: s.images[id]})
	}
	return out, nil
}

func (s *fakeStore) ListFriends(_ context.Context, userID int) ([]Friend, error) {
	var out []Friend
	for id := range s.friends[userID] {
		f := Friend{Handle: s.handleOf(id), ProfileImage: s.images[id]}
		if convID, ok := s.convs[chat.PairKey(userID, id)]; ok {
			f.ConversationID = uuid.NullUUID{UUID: convID, Valid: true}
		}
		out = append(out, f)
	}
	return out, nil
}

func TestSendRequestValidation(t *testing.T) {
	svc := NewService(newFakeStore("alice", "bob"))
	ctx := context.Background()

	t.Run("unknown receiver", func(t *testing.T) {
		_, err := svc.SendRequest(ctx, "alice", "nobody")
		assert.ErrorIs(t, err, apperr.ErrInvalidParticipants)
	})

	t.Run("unknown sender", func(t *testing.T) {
		_, err := svc.SendRequest(ctx, "nobody", "alice")
		assert.ErrorIs(t, err, apperr.ErrInvalidParticipants)
	})

	t.Run("self request", func(t *testing.T) {
		_, err := svc.SendRequest(ctx, "alice", "alice")
		assert.ErrorIs(t, err, apperr.ErrInvalidParticipants)
	})
}

func TestSendRequestIdempotent(t *testing.T) {
	store := newFakeStore("alice", "bob")
	svc := NewService(store)
	ctx := context.Background()

	already, err := svc.SendRequest(ctx, "bob", "alice")
	require.NoError(t, err)
	assert.False(t, already)

	// Resending reports "already pending" and does not duplicate the entry.
	already, err = svc.SendRequest(ctx, "bob", "alice")
	require.NoError(t, err)
	assert.True(t, already)
	assert.Len(t, store.pending[store.users["alice"]], 1)
}

func TestAcceptRequestValidation(t *testing.T) {
	svc := NewService(newFakeStore("alice", "bob"))
	ctx := context.Background()

	t.Run("self acceptance", func(t *testing.T) {
		_, err := svc.AcceptRequest(ctx, "alice", "alice")
		assert.ErrorIs(t, err, apperr.ErrSelfAcceptance)
	})

	t.Run("unknown requester", func(t *testing.T) {
		_, err := svc.AcceptRequest(ctx, "alice", "nobody")
		assert.ErrorIs(t, err, apperr.ErrInvalidParticipants)
	})
}

func TestAcceptRequestSymmetricAndSingleConversation(t *testing.T) {
	store := newFakeStore("alice", "bob")
	svc := NewService(store)
	ctx := context.Background()

	_, err := svc.SendRequest(ctx, "bob", "alice")
	require.NoError(t, err)

	first, err := svc.AcceptRequest(ctx, "alice", "bob")
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, first)

	aliceID, bobID := store.users["alice"], store.users["bob"]
	assert.True(t, store.friends[aliceID][bobID])
	assert.True(t, store.friends[bobID][aliceID])
	assert.Empty(t, store.pending[aliceID])

	// A repeated acceptance (simulating a concurrent duplicate) must resolve
	// to the same conversation, never a second one.
	second, err := svc.AcceptRequest(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Len(t, store.convs, 1)
}

func TestListFriendsAnnotatesConversation(t *testing.T) {
	store := newFakeStore("alice", "bob")
	svc := NewService(store)
	ctx := context.Background()

	_, err := svc.SendRequest(ctx, "bob", "alice")
	require.NoError(t, err)
	convID, err := svc.AcceptRequest(ctx, "alice", "bob")
	require.NoError(t, err)

	friends, err := svc.ListFriends(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, friends, 1)
	assert.Equal(t, "bob", friends[0].Handle)
	require.True(t, friends[0].ConversationID.Valid)
	assert.Equal(t, convID, friends[0].ConversationID.UUID)
}

func TestListPendingUnknownUser(t *testing.T) {
	svc := NewService(newFakeStore("alice"))

	_, err := svc.ListPending(context.Background(), "nobody")
	assert.ErrorIs(t, err, apperr.ErrUserNotFound)
}
