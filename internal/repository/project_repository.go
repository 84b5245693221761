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
	projectCollection      = "projects"
	projectAllCacheKey     = "project:all"
	projectCacheKeyPrefix  = "project:id:"
	projectSlugCachePrefix = "project:slug:"
)

// ProjectRepository persists projects in the document database.
type ProjectRepository interface {
	Create(ctx context.Context, in models.ProjectInput) (*models.Project, error)
	FindAll(ctx context.Context) ([]map[string]interface{}, error)
	FindByID(ctx context.Context, id string) (map[string]interface{}, error)
	FindBySlug(ctx context.Context, slug string) (map[string]interface{}, error)
	Update(ctx context.Context, id string, in models.ProjectInput) (*models.Project, error)
	Delete(ctx context.Context, id string) error
	EnsureIndexes(ctx context.Context) error
}

type projectRepository struct {
	manager *database.Manager
	redis   *cache.RedisClient
	log     zerolog.Logger
}

// NewProjectRepository creates an uncached repository.
func NewProjectRepository(manager *database.Manager, log zerolog.Logger) ProjectRepository {
	return NewCachedProjectRepository(manager, nil, log)
}

// NewCachedProjectRepository creates a repository that serves list/detail
// reads from redis and invalidates on every write.
func NewCachedProjectRepository(manager *database.Manager, redisClient *cache.RedisClient, log zerolog.Logger) ProjectRepository {
	return &projectRepository{
		manager: manager,
		redis:   redisClient,
		log:     log.With().Str("component", "project_repository").Logger(),
	}
}

func (r *projectRepository) collection(ctx context.Context) (*mongo.Collection, error) {
	db, err := r.manager.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(projectCollection), nil
}

func (r *projectRepository) EnsureIndexes(ctx context.Context) error {
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

func (r *projectRepository) slugExists(coll *mongo.Collection, excludeID *primitive.ObjectID) utils.ExistsFunc {
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

func (r *projectRepository) Create(ctx context.Context, in models.ProjectInput) (*models.Project, error) {
	project, err := models.NewProject(in)
	if err != nil {
		return nil, err
	}

	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	// "new" is the admin form's placeholder for "derive one from the title".
	if project.Slug == "" || project.Slug == models.SlugPlaceholder {
		slug, err := utils.GenerateUniqueSlug(ctx, project.Title, r.slugExists(coll, nil))
		if err != nil {
			return nil, err
		}
		project.Slug = slug
	} else {
		project.Slug = utils.Slugify(project.Slug)
	}

	res, err := coll.InsertOne(ctx, project)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, &apperr.ConflictError{Field: "slug", Value: project.Slug}
		}
		return nil, translate(err)
	}
	project.ID = res.InsertedID.(primitive.ObjectID)

	r.invalidate(project.ID.Hex(), project.Slug)
	return project, nil
}

func (r *projectRepository) FindAll(ctx context.Context) ([]map[string]interface{}, error) {
	if r.redis != nil {
		var cached []map[string]interface{}
		if ok, _ := r.redis.GetJSON(projectAllCacheKey, &cached); ok {
			return cached, nil
		}
	}

	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
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
		if err := r.redis.SetJSON(projectAllCacheKey, out, cacheExpiration); err != nil {
			r.log.Warn().Err(err).Msg("failed to cache project list")
		}
	}
	return out, nil
}

func (r *projectRepository) FindByID(ctx context.Context, id string) (map[string]interface{}, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.NewValidationError("id")
	}

	cacheKey := projectCacheKeyPrefix + id
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
			r.log.Warn().Err(err).Str("id", id).Msg("failed to cache project")
		}
	}
	return doc, nil
}

func (r *projectRepository) FindBySlug(ctx context.Context, slug string) (map[string]interface{}, error) {
	cacheKey := projectSlugCachePrefix + slug
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
			r.log.Warn().Err(err).Str("slug", slug).Msg("failed to cache project")
		}
	}
	return doc, nil
}

func (r *projectRepository) findOne(ctx context.Context, filter bson.M) (map[string]interface{}, error) {
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

func (r *projectRepository) Update(ctx context.Context, id string, in models.ProjectInput) (*models.Project, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.NewValidationError("id")
	}

	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	var existing models.Project
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
	if in.Technologies != nil {
		if len(in.Technologies) == 0 {
			return nil, apperr.NewValidationError("technologies")
		}
		set["technologies"] = in.Technologies
	}
	if in.Category != "" {
		set["category"] = in.Category
	}
	if in.Status != "" {
		if in.Status != models.StatusCompleted && in.Status != models.StatusInProgress && in.Status != models.StatusPlanned {
			return nil, apperr.NewValidationError("status")
		}
		set["status"] = in.Status
	}
	if in.Rating != 0 {
		if in.Rating < 0 || in.Rating > 5 {
			return nil, apperr.NewValidationError("rating")
		}
		set["rating"] = float64(in.Rating)
	}
	if in.Downloads != "" {
		set["downloads"] = in.Downloads
	}
	if in.Image != "" {
		set["image"] = in.Image
	}
	if in.Screenshots != nil {
		set["screenshots"] = in.Screenshots
	}
	if in.Features != nil {
		set["features"] = in.Features
	}
	if in.Challenges != nil {
		set["challenges"] = in.Challenges
	}
	if in.Learnings != nil {
		set["learnings"] = in.Learnings
	}
	if in.Author != "" {
		set["author"] = in.Author
	}
	if in.DemoURL != "" {
		set["demoUrl"] = in.DemoURL
	}
	if in.GithubURL != "" {
		set["githubUrl"] = in.GithubURL
	}
	if in.LiveURL != "" {
		set["liveUrl"] = in.LiveURL
	}
	if in.Featured != nil {
		set["featured"] = *in.Featured
	}

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

	var updated models.Project
	if err := coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&updated); err != nil {
		return nil, translate(err)
	}

	r.invalidate(id, existing.Slug, updated.Slug)
	return &updated, nil
}

func (r *projectRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.NewValidationError("id")
	}

	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}

	var existing models.Project
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

func (r *projectRepository) invalidate(id string, slugs ...string) {
	if r.redis == nil {
		return
	}
	keys := []string{projectAllCacheKey, projectCacheKeyPrefix + id}
	for _, s := range slugs {
		if s != "" {
			keys = append(keys, projectSlugCachePrefix+s)
		}
	}
	if err := r.redis.Delete(keys...); err != nil {
		r.log.Warn().Err(err).Str("id", id).Msg("cache invalidation failed")
	}
}
