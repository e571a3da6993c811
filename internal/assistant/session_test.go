package assistant

import (
	"context"
	"errors"
	"testing"
	"time"

	"eventmatch/internal/config"
	"eventmatch/internal/events"
	"eventmatch/internal/logger"
	"eventmatch/internal/models"
	"eventmatch/internal/sse"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, topic, key string, payload any) error {
	args := m.Called(ctx, topic, key, payload)
	return args.Error(0)
}

func (m *mockPublisher) Close() error { return nil }

// timers collects scheduled replies so tests decide when they fire.
type timers struct {
	delays []time.Duration
	funcs  []func()
}

func (t *timers) after(d time.Duration, f func()) {
	t.delays = append(t.delays, d)
	t.funcs = append(t.funcs, f)
}

func (t *timers) fireAll() {
	funcs := t.funcs
	t.funcs = nil
	for _, f := range funcs {
		f()
	}
}

func setupManager(t *testing.T, pub *mockPublisher) (*Manager, *timers) {
	catalog, err := events.NewCatalog(events.SampleEvents())
	require.NoError(t, err)

	m := NewManager(catalog, sse.NewReplyEmitter(), pub, logger.Discard(),
		config.ChatConfig{ResponseDelay: time.Second, SessionTTL: 30 * time.Minute}, "chat.classified")
	tm := &timers{}
	m.after = tm.after
	return m, tm
}

func TestCreateStartsWithGreeting(t *testing.T) {
	m, _ := setupManager(t, &mockPublisher{})

	s := m.Create()
	tr := s.Transcript()

	require.Len(t, tr.Messages, 1)
	assert.Equal(t, models.RoleAssistant, tr.Messages[0].Role)
	assert.Equal(t, Greeting, tr.Messages[0].Content)
	assert.Equal(t, Suggestions, tr.Suggestions)
	assert.False(t, tr.Pending)

	got, err := m.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)
}

func TestSubmitEchoesThenRepliesAfterDelay(t *testing.T) {
	pub := &mockPublisher{}
	m, tm := setupManager(t, pub)
	s := m.Create()

	pub.On("Publish", mock.Anything, "chat.classified", s.ID, mock.MatchedBy(func(p models.ChatClassified) bool {
		return p.Rule == "category:music" && len(p.EventIDs) == 3
	})).Return(nil).Once()

	echo, err := s.Submit("Show me music events in Mumbai")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, echo.Role)
	assert.Equal(t, []time.Duration{time.Second}, tm.delays)

	tr := s.Transcript()
	require.Len(t, tr.Messages, 2)
	assert.Equal(t, "Show me music events in Mumbai", tr.Messages[1].Content)
	assert.True(t, tr.Pending)
	assert.Empty(t, tr.Suggestions)

	tm.fireAll()

	tr = s.Transcript()
	require.Len(t, tr.Messages, 3)
	reply := tr.Messages[2]
	assert.Equal(t, models.RoleAssistant, reply.Role)
	assert.Equal(t, "category:music", reply.Rule)
	assert.Len(t, reply.Events, 3)
	assert.False(t, tr.Pending)
	pub.AssertExpectations(t)
}

func TestSubmitRejectsEmptyAndPending(t *testing.T) {
	pub := &mockPublisher{}
	pub.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	m, tm := setupManager(t, pub)
	s := m.Create()

	_, err := s.Submit("   ")
	assert.ErrorIs(t, err, ErrEmptyMessage)

	_, err = s.Submit("free events")
	require.NoError(t, err)
	_, err = s.Submit("tech")
	assert.ErrorIs(t, err, ErrResponsePending)
	assert.Len(t, s.Transcript().Messages, 2)

	tm.fireAll()
	_, err = s.Submit("tech")
	assert.NoError(t, err)
}

func TestSubmitTrimsMessage(t *testing.T) {
	pub := &mockPublisher{}
	pub.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	m, tm := setupManager(t, pub)
	s := m.Create()

	echo, err := s.Submit("   free events  \n")
	require.NoError(t, err)
	assert.Equal(t, "free events", echo.Content)
	assert.Equal(t, "free events", s.Transcript().Messages[1].Content)

	tm.fireAll()
	assert.Equal(t, "free", s.Transcript().Messages[2].Rule)
}

func TestReplyIsStreamedToSubscribers(t *testing.T) {
	pub := &mockPublisher{}
	pub.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	m, tm := setupManager(t, pub)
	s := m.Create()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	stream := m.emitter.Subscribe(ctx, s.ID)

	_, err := s.Submit("anything in delhi")
	require.NoError(t, err)
	tm.fireAll()

	select {
	case msg := <-stream:
		assert.Equal(t, "city:delhi", msg.Rule)
	case <-time.After(time.Second):
		t.Fatal("reply was not streamed")
	}
}

func TestPublishFailureDoesNotLoseReply(t *testing.T) {
	pub := &mockPublisher{}
	pub.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("broker down"))
	m, tm := setupManager(t, pub)
	s := m.Create()

	_, err := s.Submit("asdf")
	require.NoError(t, err)
	tm.fireAll()

	tr := s.Transcript()
	require.Len(t, tr.Messages, 3)
	assert.Equal(t, "help", tr.Messages[2].Rule)
	assert.False(t, tr.Pending)
}

func TestGetUnknownSession(t *testing.T) {
	m, _ := setupManager(t, &mockPublisher{})
	_, err := m.Get("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestEvictKeepsActiveAndPendingSessions(t *testing.T) {
	pub := &mockPublisher{}
	m, _ := setupManager(t, pub)

	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	idle := m.Create()
	waiting := m.Create()
	_, err := waiting.Submit("music")
	require.NoError(t, err)

	now = now.Add(time.Hour)
	fresh := m.Create()

	assert.Equal(t, 1, m.Evict())
	_, err = m.Get(idle.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = m.Get(waiting.ID)
	assert.NoError(t, err)
	_, err = m.Get(fresh.ID)
	assert.NoError(t, err)
	assert.Equal(t, 2, m.Count())
}
