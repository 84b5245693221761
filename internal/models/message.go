package models

import (
	"strconv"
	"time"

	"portfolio/internal/apperr"
)

// Message is a contact form submission, stored in the messages content file.
// Messages are never deleted; the only mutation is the isRead toggle.
type Message struct {
	ID        string     `json:"id" example:"1717430400000"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Subject   string     `json:"subject"`
	Body      string     `json:"message"`
	IsRead    bool       `json:"isRead"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// MessageInput carries an inbound contact submission.
type MessageInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Body    string `json:"message"`
}

// NewMessage validates the submission and assigns a timestamp-derived id.
func NewMessage(in MessageInput) (*Message, error) {
	var missing []string
	if in.Name == "" {
		missing = append(missing, "name")
	}
	if in.Email == "" {
		missing = append(missing, "email")
	}
	if in.Subject == "" {
		missing = append(missing, "subject")
	}
	if in.Body == "" {
		missing = append(missing, "message")
	}
	if len(missing) > 0 {
		return nil, apperr.NewValidationError(missing...)
	}

	now := time.Now().UTC()
	return &Message{
		ID:        strconv.FormatInt(now.UnixMilli(), 10),
		Name:      in.Name,
		Email:     in.Email,
		Subject:   in.Subject,
		Body:      in.Body,
		CreatedAt: now,
	}, nil
}
