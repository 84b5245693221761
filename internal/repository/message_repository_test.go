package repository

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/internal/apperr"
	"portfolio/internal/filestore"
	"portfolio/internal/models"
)

func newMessageRepo(t *testing.T) MessageRepository {
	t.Helper()
	store := filestore.New(t.TempDir(), zerolog.Nop())
	return NewMessageRepository(store, zerolog.Nop())
}

func validMessage(subject string) models.MessageInput {
	return models.MessageInput{
		Name:    "Alex",
		Email:   "alex@example.com",
		Subject: subject,
		Body:    "Hello there",
	}
}

func TestCreateMessageValidation(t *testing.T) {
	repo := newMessageRepo(t)

	_, err := repo.Create(models.MessageInput{Name: "Alex"})
	var vErr *apperr.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.ElementsMatch(t, []string{"email", "subject", "message"}, vErr.Fields)
}

func TestCreateMessageDefaults(t *testing.T) {
	repo := newMessageRepo(t)

	msg, err := repo.Create(validMessage("first"))
	require.NoError(t, err)
	assert.NotEmpty(t, msg.ID)
	assert.False(t, msg.IsRead)
	assert.False(t, msg.CreatedAt.IsZero())
	assert.Nil(t, msg.UpdatedAt)
}

func TestMessagesMostRecentFirst(t *testing.T) {
	repo := newMessageRepo(t)

	_, err := repo.Create(validMessage("older"))
	require.NoError(t, err)
	_, err = repo.Create(validMessage("newer"))
	require.NoError(t, err)

	page, err := repo.List(1, 10)
	require.NoError(t, err)
	require.Len(t, page.Messages, 2)
	assert.Equal(t, "newer", page.Messages[0].Subject)
	assert.Equal(t, "older", page.Messages[1].Subject)
}

func TestListPagination(t *testing.T) {
	repo := newMessageRepo(t)
	for i := 0; i < 25; i++ {
		_, err := repo.Create(validMessage("msg"))
		require.NoError(t, err)
	}

	page1, err := repo.List(1, 10)
	require.NoError(t, err)
	assert.Len(t, page1.Messages, 10)
	assert.Equal(t, 25, page1.Total)
	assert.Equal(t, 3, page1.TotalPages)
	assert.True(t, page1.HasNext)
	assert.False(t, page1.HasPrev)

	page3, err := repo.List(3, 10)
	require.NoError(t, err)
	assert.Len(t, page3.Messages, 5)
	assert.False(t, page3.HasNext)
	assert.True(t, page3.HasPrev)
}

func TestListBeyondLastPageIsEmpty(t *testing.T) {
	repo := newMessageRepo(t)
	_, err := repo.Create(validMessage("only"))
	require.NoError(t, err)

	page, err := repo.List(5, 10)
	require.NoError(t, err)
	assert.Empty(t, page.Messages)
	assert.Equal(t, 1, page.Total)
}

func TestListEmptyStore(t *testing.T) {
	repo := newMessageRepo(t)

	page, err := repo.List(1, 10)
	require.NoError(t, err)
	assert.Empty(t, page.Messages)
	assert.Equal(t, 0, page.Total)
	assert.False(t, page.HasNext)
	assert.False(t, page.HasPrev)
}

func TestPatchMarksRead(t *testing.T) {
	repo := newMessageRepo(t)
	msg, err := repo.Create(validMessage("unread"))
	require.NoError(t, err)

	read := true
	updated, err := repo.Patch(msg.ID, MessagePatch{IsRead: &read})
	require.NoError(t, err)
	assert.True(t, updated.IsRead)
	require.NotNil(t, updated.UpdatedAt)

	page, err := repo.List(1, 10)
	require.NoError(t, err)
	assert.True(t, page.Messages[0].IsRead)
}

func TestPatchUnknownIDReturnsNotFound(t *testing.T) {
	repo := newMessageRepo(t)

	read := true
	_, err := repo.Patch("does-not-exist", MessagePatch{IsRead: &read})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
