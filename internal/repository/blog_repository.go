package repository

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"portfolio/database"
	"portfolio/internal/apperr"
	"portfolio/internal/cache"
	"portfolio/internal/models"
	"portfolio/internal/utils"
)

const (
	blogCollection      = "articles"
	blogAllCacheKey     = "blog:all"
	blogCacheKeyPrefix  = "blog:id:"
	blogSlugCachePrefix = "blog:slug:"
	cacheExpiration     = 30 * time.Minute
)

// BlogRepository persists articles in the document database. Read operations
// return serialized wire-safe documents; writes return the typed record.
type BlogRepository interface {
	Create(ctx context.Context, in models.ArticleInput) (*models.Article, error)
	FindAll(ctx context.Context) ([]map[string]interface{}, error)
	FindByID(ctx context.Context, id string) (map[string]interface{}, error)
	FindBySlug(ctx context.Context, slug string) (map[string]interface{}, error)
	Update(ctx context.Context, id string, in models.ArticleInput) (*models.Article, error)
	Delete(ctx context.Context, id string) error
	EnsureIndexes(ctx context.Context) error
}

type blogRepository struct {
	manager *database.Manager
	redis   *cache.RedisClient
	log     zerolog.Logger
}

// NewBlogRepository creates an uncached repository.
func NewBlogRepository(manager *database.Manager, log zerolog.Logger) BlogRepository {
	return NewCachedBlogRepository(manager, nil, log)
}

// NewCachedBlogRepository creates a repository that serves list/detail reads
// from redis and invalidates on every write. A nil client disables caching.
func NewCachedBlogRepository(manager *database.Manager, redisClient *cache.RedisClient, log zerolog.Logger) BlogRepository {
	return &blogRepository{
		manager: manager,
		redis:   redisClient,
		log:     log.With().Str("component", "blog_repository").Logger(),
	}
}

func (r *blogRepository) collection(ctx context.Context) (*mongo.Collection, error) {
	db, err := r.manager.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(blogCollection), nil
}

// EnsureIndexes creates the unique slug index. The index, not the probe in
// the slug generator, is what guarantees slug uniqueness under concurrency.
func (r *blogRepository) EnsureIndexes(ctx context.Context) error {
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return translate(err)
}

func (r *blogRepository) slugExists(coll *mongo.Collection, excludeID *primitive.ObjectID) utils.ExistsFunc {
	return func(ctx context.Context, slug string) (bool, error) {
		filter := bson.M{"slug": slug}
		if excludeID != nil {
			filter["_id"] = bson.M{"$ne": *excludeID}
		}
		n, err := coll.CountDocuments(ctx, filter)
		if err != nil {
			return false, translate(err)
		}
		return n > 0, nil
	}
}

func (r *blogRepository) Create(ctx context.Context, in models.ArticleInput) (*models.Article, error) {
	article, err := models.NewArticle(in)
	if err != nil {
		return nil, err
	}

	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	if article.Slug == "" || article.Slug == models.SlugPlaceholder {
		slug, err := utils.GenerateUniqueSlug(ctx, article.Title, r.slugExists(coll, nil))
		if err != nil {
			return nil, err
		}
		article.Slug = slug
	} else {
		article.Slug = utils.Slugify(article.Slug)
	}

	res, err := coll.InsertOne(ctx, article)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, &apperr.ConflictError{Field: "slug", Value: article.Slug}
		}
		return nil, translate(err)
	}
	article.ID = res.InsertedID.(primitive.ObjectID)

	r.invalidate(article.ID.Hex(), article.Slug)
	return article, nil
}

func (r *blogRepository) FindAll(ctx context.Context) ([]map[string]interface{}, error) {
	if r.redis != nil {
		var cached []map[string]interface{}
		if ok, _ := r.redis.GetJSON(blogAllCacheKey, &cached); ok {
			return cached, nil
		}
	}

	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "publishedDate", Value: -1}})
	cursor, err := coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, translate(err)
	}
	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, translate(err)
	}

	out := make([]map[string]interface{}, len(docs))
	for i, doc := range docs {
		out[i] = utils.Serialize(doc).(map[string]interface{})
	}

	if r.redis != nil {
		if err := r.redis.SetJSON(blogAllCacheKey, out, cacheExpiration); err != nil {
			r.log.Warn().Err(err).Msg("failed to cache article list")
		}
	}
	return out, nil
}

func (r *blogRepository) FindByID(ctx context.Context, id string) (map[string]interface{}, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.NewValidationError("id")
	}

	cacheKey := blogCacheKeyPrefix + id
	if r.redis != nil {
		var cached map[string]interface{}
		if ok, _ := r.redis.GetJSON(cacheKey, &cached); ok {
			return cached, nil
		}
	}

	doc, err := r.findOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return nil, err
	}

	if r.redis != nil {
		if err := r.redis.SetJSON(cacheKey, doc, cacheExpiration); err != nil {
			r.log.Warn().Err(err).Str("id", id).Msg("failed to cache article")
		}
	}
	return doc, nil
}

func (r *blogRepository) FindBySlug(ctx context.Context, slug string) (map[string]interface{}, error) {
	cacheKey := blogSlugCachePrefix + slug
	if r.redis != nil {
		var cached map[string]interface{}
		if ok, _ := r.redis.GetJSON(cacheKey, &cached); ok {
			return cached, nil
		}
	}

	doc, err := r.findOne(ctx, bson.M{"slug": slug})
	if err != nil {
		return nil, err
	}

	if r.redis != nil {
		if err := r.redis.SetJSON(cacheKey, doc, cacheExpiration); err != nil {
			r.log.Warn().Err(err).Str("slug", slug).Msg("failed to cache article")
		}
	}
	return doc, nil
}

func (r *blogRepository) findOne(ctx context.Context, filter bson.M) (map[string]interface{}, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}
	var doc bson.M
	if err := coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, translate(err)
	}
	return utils.Serialize(doc).(map[string]interface{}), nil
}

func (r *blogRepository) Update(ctx context.Context, id string, in models.ArticleInput) (*models.Article, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.NewValidationError("id")
	}

	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	var existing models.Article
	if err := coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&existing); err != nil {
		return nil, translate(err)
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if in.Title != "" {
		set["title"] = in.Title
	}
	if in.Subtitle != "" {
		set["subtitle"] = in.Subtitle
	}
	if in.Description != "" {
		set["description"] = in.Description
	}
	if in.Image != "" {
		set["image"] = in.Image
	}
	if in.Category != "" {
		set["category"] = in.Category
	}
	if in.Author != "" {
		set["author"] = in.Author
	}
	if in.Tags != nil {
		set["tags"] = in.Tags
	}
	if in.PublishedDate != nil {
		set["publishedDate"] = *in.PublishedDate
	}
	if in.Featured != nil {
		set["featured"] = *in.Featured
	}
	if in.IsActive != nil {
		set["isActive"] = *in.IsActive
	}
	if in.ReadTime > 0 {
		set["readTime"] = int(in.ReadTime)
	}

	// An explicit slug change must re-validate uniqueness excluding this
	// record; updating to the current value is a no-op.
	if in.Slug != "" && in.Slug != models.SlugPlaceholder {
		newSlug := utils.Slugify(in.Slug)
		if newSlug != existing.Slug {
			used, err := r.slugExists(coll, &oid)(ctx, newSlug)
			if err != nil {
				return nil, err
			}
			if used {
				return nil, &apperr.ConflictError{Field: "slug", Value: newSlug}
			}
			set["slug"] = newSlug
		}
	}

	if _, err := coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set}); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, &apperr.ConflictError{Field: "slug", Value: in.Slug}
		}
		return nil, translate(err)
	}

	var updated models.Article
	if err := coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&updated); err != nil {
		return nil, translate(err)
	}

	r.invalidate(id, existing.Slug, updated.Slug)
	return &updated, nil
}

func (r *blogRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.NewValidationError("id")
	}

	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}

	var existing models.Article
	if err := coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&existing); err != nil {
		return translate(err)
	}

	res, err := coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return translate(err)
	}
	if res.DeletedCount == 0 {
		return apperr.ErrNotFound
	}

	r.invalidate(id, existing.Slug)
	return nil
}

// invalidate signals dependent read paths that a write happened. A
// successful write must be visible to the very next read.
func (r *blogRepository) invalidate(id string, slugs ...string) {
	if r.redis == nil {
		return
	}
	keys := []string{blogAllCacheKey, blogCacheKeyPrefix + id}
	for _, s := range slugs {
		if s != "" {
			keys = append(keys, blogSlugCachePrefix+s)
		}
	}
	if err := r.redis.Delete(keys...); err != nil {
		r.log.Warn().Err(err).Str("id", id).Msg("cache invalidation failed")
	}
}
