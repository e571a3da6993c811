package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"eventmatch/internal/config"
	"eventmatch/internal/kafka"
	"eventmatch/internal/logger"
	"eventmatch/internal/models"
	"eventmatch/internal/monitoring"
	"eventmatch/internal/sse"

	"github.com/google/uuid"
)

var (
	ErrEmptyMessage    = errors.New("message is empty")
	ErrResponsePending = errors.New("assistant is still answering the previous message")
	ErrSessionNotFound = errors.New("chat session not found")
)

const Greeting = "Hey! 👋 I'm your EventMatch assistant. I can help you discover amazing events " +
	"based on your interests, location, and schedule. What kind of experiences are you looking for?"

// Suggestions are offered until the user sends a first message.
var Suggestions = []string{
	"Show me music events in Mumbai",
	"What's happening this weekend?",
	"Find free events near me",
	"Tech conferences in Bangalore",
}

const publishTimeout = 5 * time.Second

// EventSource is the catalogue the assistant answers from.
type EventSource interface {
	All() []models.Event
}

// Transcript is a point-in-time copy of a session.
type Transcript struct {
	ID          string               `json:"id"`
	Messages    []models.ChatMessage `json:"messages"`
	Pending     bool                 `json:"pending"`
	Suggestions []string             `json:"suggestions,omitempty"`
}

type Session struct {
	ID string

	mu         sync.Mutex
	messages   []models.ChatMessage
	pending    bool
	lastActive time.Time
	manager    *Manager
}

// Submit echoes text into the transcript at once and schedules the assistant reply.
func (s *Session) Submit(text string) (models.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.ChatMessage{}, ErrEmptyMessage
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending {
		return models.ChatMessage{}, ErrResponsePending
	}

	m := s.manager
	echo := models.ChatMessage{
		ID:        uuid.NewString(),
		Role:      models.RoleUser,
		Content:   text,
		CreatedAt: m.now(),
	}
	s.messages = append(s.messages, echo)
	s.pending = true
	s.lastActive = echo.CreatedAt

	m.after(m.delay, func() { s.reply(text) })
	return echo, nil
}

func (s *Session) reply(text string) {
	m := s.manager
	res := Classify(text, m.catalog.All())

	msg := models.ChatMessage{
		ID:        uuid.NewString(),
		Role:      models.RoleAssistant,
		Content:   res.Response,
		Events:    res.Events,
		Rule:      res.Rule,
		CreatedAt: m.now(),
	}

	s.mu.Lock()
	s.messages = append(s.messages, msg)
	s.pending = false
	s.lastActive = msg.CreatedAt
	s.mu.Unlock()

	m.emitter.Emit(s.ID, msg)
	m.logger.LogChat(s.ID, res.Rule, len(res.Events))
	monitoring.TrackClassification(res.Rule)

	eventIDs := make([]string, 0, len(res.Events))
	for _, e := range res.Events {
		eventIDs = append(eventIDs, e.ID)
	}
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	err := m.publisher.Publish(ctx, m.topic, s.ID, models.ChatClassified{
		SessionID: s.ID,
		Utterance: text,
		Rule:      res.Rule,
		EventIDs:  eventIDs,
		At:        msg.CreatedAt,
	})
	if err != nil {
		m.logger.Warn("CHAT", fmt.Sprintf("Failed to publish classification for session %s: %v", s.ID, err))
		monitoring.TrackPublishFailure(m.topic)
	}
}

func (s *Session) Transcript() Transcript {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := Transcript{
		ID:       s.ID,
		Messages: append([]models.ChatMessage{}, s.messages...),
		Pending:  s.pending,
	}
	if len(s.messages) == 1 {
		t.Suggestions = append([]string{}, Suggestions...)
	}
	return t
}

func (s *Session) idleSince(cutoff time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.pending && s.lastActive.Before(cutoff)
}

// Manager owns the in-memory chat sessions.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	catalog   EventSource
	emitter   *sse.ReplyEmitter
	publisher kafka.Publisher
	logger    *logger.Logger
	topic     string
	delay     time.Duration
	ttl       time.Duration

	after func(time.Duration, func())
	now   func() time.Time
}

func NewManager(catalog EventSource, emitter *sse.ReplyEmitter, publisher kafka.Publisher, log *logger.Logger, cfg config.ChatConfig, topic string) *Manager {
	return &Manager{
		sessions:  make(map[string]*Session),
		catalog:   catalog,
		emitter:   emitter,
		publisher: publisher,
		logger:    log,
		topic:     topic,
		delay:     cfg.ResponseDelay,
		ttl:       cfg.SessionTTL,
		after:     func(d time.Duration, f func()) { time.AfterFunc(d, f) },
		now:       time.Now,
	}
}

// Create starts a session whose transcript opens with the assistant greeting.
func (m *Manager) Create() *Session {
	now := m.now()
	s := &Session{
		ID: uuid.NewString(),
		messages: []models.ChatMessage{{
			ID:        uuid.NewString(),
			Role:      models.RoleAssistant,
			Content:   Greeting,
			CreatedAt: now,
		}},
		lastActive: now,
		manager:    m,
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	count := len(m.sessions)
	m.mu.Unlock()

	monitoring.SetChatSessions(count)
	m.logger.Info("CHAT", fmt.Sprintf("Session %s created (%d active)", s.ID, count))
	return s
}

func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", id, ErrSessionNotFound)
	}
	return s, nil
}

func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Evict drops sessions idle for longer than the TTL. Sessions awaiting a reply are kept.
func (m *Manager) Evict() int {
	if m.ttl <= 0 {
		return 0
	}
	cutoff := m.now().Add(-m.ttl)

	m.mu.Lock()
	evicted := 0
	for id, s := range m.sessions {
		if s.idleSince(cutoff) {
			delete(m.sessions, id)
			evicted++
		}
	}
	count := len(m.sessions)
	m.mu.Unlock()

	if evicted > 0 {
		monitoring.SetChatSessions(count)
		m.logger.Info("CHAT", fmt.Sprintf("Evicted %d idle sessions (%d active)", evicted, count))
	}
	return evicted
}

// RunJanitor evicts idle sessions every interval until ctx is done.
func (m *Manager) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Evict()
		}
	}
}
