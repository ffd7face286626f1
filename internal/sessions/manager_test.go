package sessions

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"codeberg.org/docrouter/server/internal/assistant"
	"codeberg.org/docrouter/server/internal/augmentor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// implements Asker for testing
type mockAsker struct {
	mu        sync.Mutex
	askFunc   func(ctx context.Context, conversationID, prompt string) (*assistant.RagResponse, error)
	forgotten []string
}

func (m *mockAsker) Ask(ctx context.Context, conversationID, prompt string) (*assistant.RagResponse, error) {
	if m.askFunc != nil {
		return m.askFunc(ctx, conversationID, prompt)
	}

	return &assistant.RagResponse{
		Answer:    "answer to " + prompt,
		DebugInfo: "--- The router selected 1 retriever(s) ---\n\n",
		Selected:  []augmentor.Selection{{Retriever: "EmbeddingStoreContentRetriever(rag)"}},
	}, nil
}

func (m *mockAsker) Forget(_ context.Context, conversationID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.forgotten = append(m.forgotten, conversationID)

	return nil
}

func (m *mockAsker) forgot() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]string(nil), m.forgotten...)
}

func newManager(t *testing.T, asker Asker, ttl time.Duration) *Manager {
	t.Helper()

	m := NewManager(asker, ttl)
	t.Cleanup(m.Close)

	return m
}

func TestCreateAndGetSession(t *testing.T) {
	m := newManager(t, &mockAsker{}, time.Hour)

	s := m.CreateSession()
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, DefaultRole, s.Role)
	assert.False(t, s.RoleChangeable)
	assert.False(t, s.Debug)

	got, err := m.GetSession(s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)
	assert.Equal(t, 1, m.GetSessionCount())

	_, err = m.GetSession("unknown")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSend(t *testing.T) {
	m := newManager(t, &mockAsker{}, time.Hour)
	s := m.CreateSession()

	got, err := m.Send(context.Background(), s.ID, "What is RAG?")
	require.NoError(t, err)

	assert.Equal(t, "What is RAG?", got.Question)
	assert.Equal(t, "answer to What is RAG?", got.Answer)
	assert.Contains(t, got.DebugInfo, "selected 1 retriever(s)")
	assert.Equal(t, []string{"EmbeddingStoreContentRetriever(rag)"}, got.Retrievers)
	assert.Equal(t, "== User:\nWhat is RAG?\n== Assistant:\nanswer to What is RAG?\n\n", got.Conversation)

	got, err = m.Send(context.Background(), s.ID, "And bonds?")
	require.NoError(t, err)
	assert.Equal(t,
		"== User:\nWhat is RAG?\n== Assistant:\nanswer to What is RAG?\n\n"+
			"== User:\nAnd bonds?\n== Assistant:\nanswer to And bonds?\n\n",
		got.Conversation)
}

func TestSend_MissingQuestion(t *testing.T) {
	m := newManager(t, &mockAsker{}, time.Hour)
	s := m.CreateSession()

	_, err := m.Send(context.Background(), s.ID, "   ")
	assert.ErrorIs(t, err, ErrMissingQuestion)
	assert.Equal(t, "please enter a question", err.Error())

	got, err := m.GetSession(s.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Conversation)
}

func TestSend_AssistantError(t *testing.T) {
	asker := &mockAsker{askFunc: func(context.Context, string, string) (*assistant.RagResponse, error) {
		return nil, errors.New("quota exceeded")
	}}

	m := newManager(t, asker, time.Hour)
	s := m.CreateSession()

	got, err := m.Send(context.Background(), s.ID, "q")
	require.Error(t, err)

	assert.Empty(t, got.Answer)
	assert.Equal(t, "Error during execution: quota exceeded", got.DebugInfo)
	assert.Empty(t, got.Conversation)

	stored, err := m.GetSession(s.ID)
	require.NoError(t, err)
	assert.Equal(t, got.DebugInfo, stored.DebugInfo)
}

func TestToggleDebug(t *testing.T) {
	m := newManager(t, &mockAsker{}, time.Hour)
	s := m.CreateSession()

	got, err := m.ToggleDebug(s.ID)
	require.NoError(t, err)
	assert.True(t, got.Debug)

	got, err = m.ToggleDebug(s.ID)
	require.NoError(t, err)
	assert.False(t, got.Debug)

	_, err = m.ToggleDebug("unknown")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestReset(t *testing.T) {
	asker := &mockAsker{}
	m := newManager(t, asker, time.Hour)
	s := m.CreateSession()

	_, err := m.Send(context.Background(), s.ID, "q")
	require.NoError(t, err)

	fresh, err := m.Reset(context.Background(), s.ID)
	require.NoError(t, err)

	assert.NotEqual(t, s.ID, fresh.ID)
	assert.Empty(t, fresh.Conversation)
	assert.Equal(t, []string{s.ID}, asker.forgot())

	_, err = m.GetSession(s.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Equal(t, 1, m.GetSessionCount())

	_, err = m.Reset(context.Background(), "unknown")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestDeleteSession(t *testing.T) {
	m := newManager(t, &mockAsker{}, time.Hour)
	s := m.CreateSession()

	require.NoError(t, m.DeleteSession(context.Background(), s.ID))
	assert.ErrorIs(t, m.DeleteSession(context.Background(), s.ID), ErrSessionNotFound)
}

func TestExpiredSessions(t *testing.T) {
	asker := &mockAsker{}
	m := newManager(t, asker, 10*time.Millisecond)

	expired := m.CreateSession()
	time.Sleep(20 * time.Millisecond)

	_, err := m.GetSession(expired.ID)
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Equal(t, []string{expired.ID}, asker.forgot())
	assert.Zero(t, m.GetSessionCount())
}

func TestExpiredIDs(t *testing.T) {
	m := newManager(t, &mockAsker{}, time.Minute)

	s := m.CreateSession()

	assert.Empty(t, m.expiredIDs(time.Now()))
	assert.Equal(t, []string{s.ID}, m.expiredIDs(time.Now().Add(2*time.Minute)))
}

func TestRoles(t *testing.T) {
	roles := Roles()
	require.Len(t, roles, 1)
	assert.Equal(t, Role{Value: "RAG-Base", Label: "RAG assistant (Finance, AI)"}, roles[0])
}

func TestSnapshotIsolation(t *testing.T) {
	m := newManager(t, &mockAsker{}, time.Hour)
	s := m.CreateSession()

	got, err := m.Send(context.Background(), s.ID, "q")
	require.NoError(t, err)

	got.Retrievers[0] = "mutated"

	again, err := m.GetSession(s.ID)
	require.NoError(t, err)
	assert.Equal(t, "EmbeddingStoreContentRetriever(rag)", again.Retrievers[0])
}

// fails the test when fn does not return within a second
func within(t *testing.T, name string, fn func()) {
	t.Helper()

	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("%s blocked while a question was in flight", name)
	}
}

// returns an asker whose Ask blocks until release is closed
func blockingAsker() (*mockAsker, chan struct{}, chan struct{}) {
	started := make(chan struct{})
	release := make(chan struct{})

	var once sync.Once
	asker := &mockAsker{}
	asker.askFunc = func(_ context.Context, _ string, prompt string) (*assistant.RagResponse, error) {
		once.Do(func() { close(started) })
		<-release

		return &assistant.RagResponse{Answer: "answer to " + prompt}, nil
	}

	return asker, started, release
}

func TestSend_DoesNotBlockOtherOperations(t *testing.T) {
	asker, started, release := blockingAsker()
	m := newManager(t, asker, time.Hour)

	asking := m.CreateSession()
	other := m.CreateSession()

	sent := make(chan error, 1)
	go func() {
		_, err := m.Send(context.Background(), asking.ID, "slow question")
		sent <- err
	}()

	<-started

	within(t, "expiredIDs", func() { m.expiredIDs(time.Now()) })
	within(t, "CreateSession", func() { m.CreateSession() })
	within(t, "GetSessionCount", func() { m.GetSessionCount() })
	within(t, "GetSession of another session", func() {
		_, err := m.GetSession(other.ID)
		assert.NoError(t, err)
	})
	within(t, "GetSession of the asking session", func() {
		got, err := m.GetSession(asking.ID)
		assert.NoError(t, err)
		assert.Equal(t, "slow question", got.Question)
	})
	within(t, "ToggleDebug of the asking session", func() {
		_, err := m.ToggleDebug(asking.ID)
		assert.NoError(t, err)
	})

	close(release)
	require.NoError(t, <-sent)

	got, err := m.GetSession(asking.ID)
	require.NoError(t, err)
	assert.Equal(t, "answer to slow question", got.Answer)
	assert.True(t, got.Debug)
}

func TestSend_SerializesQuestionsPerSession(t *testing.T) {
	asker, started, release := blockingAsker()
	m := newManager(t, asker, time.Hour)
	s := m.CreateSession()

	go m.Send(context.Background(), s.ID, "first") //nolint:errcheck

	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := m.Send(ctx, s.ID, "second")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(release)
}

func TestSend_DeletedDuringQuestionForgetsAgain(t *testing.T) {
	asker, started, release := blockingAsker()
	m := newManager(t, asker, time.Hour)
	s := m.CreateSession()

	sent := make(chan error, 1)
	go func() {
		_, err := m.Send(context.Background(), s.ID, "q")
		sent <- err
	}()

	<-started

	fresh, err := m.Reset(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{s.ID}, asker.forgot())

	close(release)

	assert.ErrorIs(t, <-sent, ErrSessionNotFound)
	assert.Equal(t, []string{s.ID, s.ID}, asker.forgot())

	_, err = m.GetSession(fresh.ID)
	assert.NoError(t, err)
}
