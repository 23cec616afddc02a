package webhook

import (
	"encoding/json"
	"io"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"spotlink/internal/domain"
	"spotlink/internal/metrics"
)

const maxBodyBytes = 1 << 20

func (s *Server) handleUpdate(rw http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(rw, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	// A responder without a bot token cannot reply to anything; fail the
	// whole request so the platform keeps the update.
	if s.pipeline == nil {
		s.logger.Error("update rejected: bot token not configured")
		http.Error(rw, "Bot Token Not Configured", http.StatusInternalServerError)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		http.Error(rw, "Bad Request", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	var update tgbotapi.Update
	if err := json.Unmarshal(body, &update); err != nil {
		http.Error(rw, "Invalid JSON", http.StatusBadRequest)
		return
	}
	metrics.UpdatesReceived.Inc()

	// Everything past this point acknowledges success: chat-visible failures
	// must not make the platform redeliver the update.
	if post := postFromUpdate(&update); post != nil {
		eventID := uuid.NewString()
		s.logger.Info("update accepted",
			"event_id", eventID,
			"message_id", post.MessageID,
			"chat_id", post.ChatID,
		)
		s.pipeline.Process(r.Context(), post)
	}

	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(http.StatusOK)
	json.NewEncoder(rw).Encode(map[string]string{"status": "ok"})
}

// postFromUpdate normalizes a message or channel post into the single shape
// the pipeline operates on. Updates carrying neither are ignored.
func postFromUpdate(u *tgbotapi.Update) *domain.Post {
	msg := u.Message
	if msg == nil {
		msg = u.ChannelPost
	}
	if msg == nil || msg.Chat == nil {
		return nil
	}

	post := &domain.Post{
		MessageID:       msg.MessageID,
		ChatID:          msg.Chat.ID,
		Text:            msg.Text,
		Caption:         msg.Caption,
		Entities:        convertEntities(msg.Entities),
		CaptionEntities: convertEntities(msg.CaptionEntities),
	}
	if msg.From != nil {
		post.Sender = &domain.Sender{
			ID:        msg.From.ID,
			IsBot:     msg.From.IsBot,
			Username:  msg.From.UserName,
			FirstName: msg.From.FirstName,
			LastName:  msg.From.LastName,
		}
	}
	return post
}

func convertEntities(entities []tgbotapi.MessageEntity) []domain.Entity {
	if len(entities) == 0 {
		return nil
	}
	out := make([]domain.Entity, 0, len(entities))
	for _, e := range entities {
		out = append(out, domain.Entity{
			Kind:   e.Type,
			Offset: e.Offset,
			Length: e.Length,
			URL:    e.URL,
		})
	}
	return out
}
