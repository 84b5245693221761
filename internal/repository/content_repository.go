package repository

import (
	"github.com/rs/zerolog"

	"portfolio/internal/filestore"
)

// ContentRepository serves whole-document reads and writes for the simple
// content collections (tools, services, gallery, footer, announcements,
// social links, Q&A, experience, todos). Shape validation is the caller's
// responsibility; the store only guarantees the default shape per name.
type ContentRepository interface {
	Get(name string) (interface{}, error)
	Put(name string, doc interface{}) error
	Exists(name string) bool
}

type contentRepository struct {
	store *filestore.Store
	log   zerolog.Logger
}

// NewContentRepository creates a repository over the given file store.
func NewContentRepository(store *filestore.Store, log zerolog.Logger) ContentRepository {
	return &contentRepository{
		store: store,
		log:   log.With().Str("component", "content_repository").Logger(),
	}
}

func (r *contentRepository) Get(name string) (interface{}, error) {
	return r.store.Read(name)
}

func (r *contentRepository) Put(name string, doc interface{}) error {
	if err := r.store.Write(name, doc); err != nil {
		return err
	}
	r.log.Info().Str("collection", name).Msg("content collection replaced")
	return nil
}

func (r *contentRepository) Exists(name string) bool {
	return filestore.IsRegistered(name)
}
