package sse

import (
	"context"
	"sync"

	"eventmatch/internal/models"
)

// ReplyEmitter fans assistant replies out to the SSE clients watching a chat session.
type ReplyEmitter struct {
	clients map[string][]chan models.ChatMessage
	mu      sync.RWMutex
}

func NewReplyEmitter() *ReplyEmitter {
	return &ReplyEmitter{
		clients: make(map[string][]chan models.ChatMessage),
	}
}

// Subscribe registers a client for sessionID until ctx is done, then closes the channel.
func (e *ReplyEmitter) Subscribe(ctx context.Context, sessionID string) <-chan models.ChatMessage {
	clientChan := make(chan models.ChatMessage, 10)

	e.mu.Lock()
	e.clients[sessionID] = append(e.clients[sessionID], clientChan)
	e.mu.Unlock()

	go func() {
		<-ctx.Done()
		e.remove(sessionID, clientChan)
	}()

	return clientChan
}

// Emit never blocks: a client whose buffer is full misses the message.
func (e *ReplyEmitter) Emit(sessionID string, msg models.ChatMessage) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	for _, clientChan := range e.clients[sessionID] {
		select {
		case clientChan <- msg:
		default:
		}
	}
}

func (e *ReplyEmitter) ClientCount(sessionID string) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.clients[sessionID])
}

func (e *ReplyEmitter) remove(sessionID string, clientChan chan models.ChatMessage) {
	e.mu.Lock()
	defer e.mu.Unlock()

	clients := e.clients[sessionID]
	for i, ch := range clients {
		if ch == clientChan {
			e.clients[sessionID] = append(clients[:i], clients[i+1:]...)
			close(clientChan)
			break
		}
	}

	if len(e.clients[sessionID]) == 0 {
		delete(e.clients, sessionID)
	}
}
