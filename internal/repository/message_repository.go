package repository

import (
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"portfolio/internal/apperr"
	"portfolio/internal/filestore"
	"portfolio/internal/models"
)

const messagesFile = "messages"

// MessagePage is one page of messages plus pagination metadata.
type MessagePage struct {
	Messages   []models.Message `json:"messages"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	Total      int              `json:"total"`
	TotalPages int              `json:"totalPages"`
	HasNext    bool             `json:"hasNext"`
	HasPrev    bool             `json:"hasPrev"`
}

// MessagePatch carries the fields a PATCH may change.
type MessagePatch struct {
	IsRead *bool `json:"isRead"`
}

// MessageRepository persists contact messages in the messages content file,
// most recent first. Messages are never deleted.
type MessageRepository interface {
	Create(in models.MessageInput) (*models.Message, error)
	List(page, limit int) (*MessagePage, error)
	Patch(id string, patch MessagePatch) (*models.Message, error)
}

// messageFile is the on-disk root shape of the messages collection.
type messageFile struct {
	Messages []models.Message `json:"messages"`
}

type messageRepository struct {
	store *filestore.Store
	log   zerolog.Logger
}

// NewMessageRepository creates a repository over the given file store.
func NewMessageRepository(store *filestore.Store, log zerolog.Logger) MessageRepository {
	return &messageRepository{
		store: store,
		log:   log.With().Str("component", "message_repository").Logger(),
	}
}

func (r *messageRepository) Create(in models.MessageInput) (*models.Message, error) {
	msg, err := models.NewMessage(in)
	if err != nil {
		return nil, err
	}

	err = r.store.Update(messagesFile, func(raw json.RawMessage) (interface{}, error) {
		var f messageFile
		if err := json.Unmarshal(raw, &f); err != nil {
			return nil, &apperr.FileStoreError{Name: messagesFile, Err: err}
		}
		f.Messages = append([]models.Message{*msg}, f.Messages...)
		return f, nil
	})
	if err != nil {
		return nil, err
	}

	r.log.Info().Str("id", msg.ID).Str("email", msg.Email).Msg("contact message stored")
	return msg, nil
}

func (r *messageRepository) List(page, limit int) (*MessagePage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	var f messageFile
	if err := r.store.ReadInto(messagesFile, &f); err != nil {
		return nil, err
	}

	total := len(f.Messages)
	totalPages := (total + limit - 1) / limit

	start := (page - 1) * limit
	end := start + limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	items := f.Messages[start:end]
	if items == nil {
		items = []models.Message{}
	}

	return &MessagePage{
		Messages:   items,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}, nil
}

func (r *messageRepository) Patch(id string, patch MessagePatch) (*models.Message, error) {
	var updated *models.Message

	err := r.store.Update(messagesFile, func(raw json.RawMessage) (interface{}, error) {
		var f messageFile
		if err := json.Unmarshal(raw, &f); err != nil {
			return nil, &apperr.FileStoreError{Name: messagesFile, Err: err}
		}
		for i := range f.Messages {
			if f.Messages[i].ID != id {
				continue
			}
			if patch.IsRead != nil {
				f.Messages[i].IsRead = *patch.IsRead
			}
			now := time.Now().UTC()
			f.Messages[i].UpdatedAt = &now
			updated = &f.Messages[i]
			return f, nil
		}
		return nil, apperr.ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
