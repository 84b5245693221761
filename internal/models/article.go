package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"portfolio/internal/apperr"
)

// Article is a blog post stored in the articles collection.
type Article struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id" example:"665f1c2e8b3e4a0012345678"`
	Title         string             `bson:"title" json:"title" example:"Building a Portfolio Backend"`
	Subtitle      string             `bson:"subtitle" json:"subtitle"`
	Slug          string             `bson:"slug" json:"slug" example:"building-a-portfolio-backend"`
	Description   string             `bson:"description" json:"description"`
	Image         string             `bson:"image" json:"image"`
	Category      string             `bson:"category" json:"category"`
	Author        string             `bson:"author" json:"author"`
	Tags          []string           `bson:"tags" json:"tags"`
	PublishedDate time.Time          `bson:"publishedDate" json:"publishedDate"`
	Featured      bool               `bson:"featured" json:"featured"`
	ReadTime      int                `bson:"readTime" json:"readTime"`
	IsActive      bool               `bson:"isActive" json:"isActive"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ArticleInput carries client-supplied article fields. Numeric fields accept
// string input, booleans and dates are pointers so absence is detectable.
type ArticleInput struct {
	Title         string     `json:"title"`
	Subtitle      string     `json:"subtitle"`
	Slug          string     `json:"slug"`
	Description   string     `json:"description"`
	Image         string     `json:"image"`
	Category      string     `json:"category"`
	Author        string     `json:"author"`
	Tags          []string   `json:"tags"`
	PublishedDate *time.Time `json:"publishedDate"`
	Featured      *bool      `json:"featured"`
	ReadTime      FlexInt    `json:"readTime"`
	IsActive      *bool      `json:"isActive"`
}

// NewArticle validates required fields and applies defaults. Invalid input
// never reaches the storage boundary.
func NewArticle(in ArticleInput) (*Article, error) {
	var missing []string
	if in.Title == "" {
		missing = append(missing, "title")
	}
	if in.Subtitle == "" {
		missing = append(missing, "subtitle")
	}
	if in.Description == "" {
		missing = append(missing, "description")
	}
	if in.Image == "" {
		missing = append(missing, "image")
	}
	if in.Category == "" {
		missing = append(missing, "category")
	}
	if in.Author == "" {
		missing = append(missing, "author")
	}
	if in.ReadTime <= 0 {
		missing = append(missing, "readTime")
	}
	if len(missing) > 0 {
		return nil, apperr.NewValidationError(missing...)
	}

	now := time.Now().UTC()
	a := &Article{
		Title:         in.Title,
		Subtitle:      in.Subtitle,
		Slug:          in.Slug,
		Description:   in.Description,
		Image:         in.Image,
		Category:      in.Category,
		Author:        in.Author,
		Tags:          in.Tags,
		PublishedDate: now,
		ReadTime:      int(in.ReadTime),
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if a.Tags == nil {
		a.Tags = []string{}
	}
	if in.PublishedDate != nil {
		a.PublishedDate = *in.PublishedDate
	}
	if in.Featured != nil {
		a.Featured = *in.Featured
	}
	if in.IsActive != nil {
		a.IsActive = *in.IsActive
	}
	return a, nil
}
