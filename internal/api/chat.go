package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"eventmatch/internal/utils"

	"github.com/go-chi/chi/v5"
)

const maxMessageBytes = 4 << 10

func (h *Handler) CreateChatSession(w http.ResponseWriter, r *http.Request) {
	s := h.Chat.Create()
	utils.WriteSuccess(w, http.StatusCreated, "Chat session created", s.Transcript())
}

func (h *Handler) GetChatSession(w http.ResponseWriter, r *http.Request) {
	s, err := h.Chat.Get(chi.URLParam(r, "sessionId"))
	if err != nil {
		h.fail(w, "CHAT", "Chat session not found", err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, "Chat transcript", s.Transcript())
}

// SubmitChatMessage echoes the message right away; the reply follows on the stream.
// Expected body: {"message": "..."}
func (h *Handler) SubmitChatMessage(w http.ResponseWriter, r *http.Request) {
	s, err := h.Chat.Get(chi.URLParam(r, "sessionId"))
	if err != nil {
		h.fail(w, "CHAT", "Chat session not found", err)
		return
	}

	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxMessageBytes)).Decode(&body); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	echo, err := s.Submit(body.Message)
	if err != nil {
		h.fail(w, "CHAT", "Message rejected", err)
		return
	}
	utils.WriteSuccess(w, http.StatusAccepted, "Message accepted", echo)
}

// StreamChatReplies pushes assistant replies for one session as server-sent events.
func (h *Handler) StreamChatReplies(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")
	if _, err := h.Chat.Get(sessionID); err != nil {
		h.fail(w, "SSE", "Chat session not found", err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.WriteError(w, http.StatusInternalServerError, "Streaming unsupported", nil)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	ctx := r.Context()
	replies := h.Replies.Subscribe(ctx, sessionID)

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\",\"sessionId\":%q}\n\n", sessionID)
	flusher.Flush()
	h.Logger.Info("SSE", fmt.Sprintf("Client connected to chat stream for session: %s", sessionID))

	for {
		select {
		case msg, ok := <-replies:
			if !ok {
				h.Logger.Debug("SSE", fmt.Sprintf("Channel closed for session: %s", sessionID))
				return
			}
			jsonData, err := json.Marshal(msg)
			if err != nil {
				h.Logger.Error("SSE", fmt.Sprintf("Failed to serialize reply: %v", err))
				continue
			}
			fmt.Fprintf(w, "event: reply\ndata: %s\n\n", jsonData)
			flusher.Flush()

		case <-ctx.Done():
			h.Logger.Debug("SSE", fmt.Sprintf("Client disconnected from chat stream for session: %s", sessionID))
			return
		}
	}
}
