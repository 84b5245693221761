package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"portfolio/internal/apperr"
)

// Project status values.
const (
	StatusCompleted  = "Completed"
	StatusInProgress = "In Progress"
	StatusPlanned    = "Planned"
)

// SlugPlaceholder marks a project submitted without a real slug; the
// repository generates one from the title.
const SlugPlaceholder = "new"

// Project is a portfolio project stored in the projects collection.
type Project struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title        string             `bson:"title" json:"title" example:"My Cool App"`
	Subtitle     string             `bson:"subtitle" json:"subtitle"`
	Slug         string             `bson:"slug" json:"slug" example:"my-cool-app"`
	Description  string             `bson:"description" json:"description"`
	Technologies []string           `bson:"technologies" json:"technologies"`
	Category     string             `bson:"category" json:"category"`
	Status       string             `bson:"status" json:"status" example:"In Progress"`
	Rating       float64            `bson:"rating" json:"rating"`
	Downloads    string             `bson:"downloads" json:"downloads" example:"0"`
	Image        string             `bson:"image" json:"image"`
	Screenshots  []string           `bson:"screenshots" json:"screenshots"`
	Features     []string           `bson:"features" json:"features"`
	Challenges   []string           `bson:"challenges" json:"challenges"`
	Learnings    []string           `bson:"learnings" json:"learnings"`
	Author       string             `bson:"author" json:"author"`
	DemoURL      string             `bson:"demoUrl" json:"demoUrl"`
	GithubURL    string             `bson:"githubUrl" json:"githubUrl"`
	LiveURL      string             `bson:"liveUrl" json:"liveUrl"`
	Featured     bool               `bson:"featured" json:"featured"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ProjectInput carries client-supplied project fields.
type ProjectInput struct {
	Title        string    `json:"title"`
	Subtitle     string    `json:"subtitle"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description"`
	Technologies []string  `json:"technologies"`
	Category     string    `json:"category"`
	Status       string    `json:"status"`
	Rating       FlexFloat `json:"rating"`
	Downloads    string    `json:"downloads"`
	Image        string    `json:"image"`
	Screenshots  []string  `json:"screenshots"`
	Features     []string  `json:"features"`
	Challenges   []string  `json:"challenges"`
	Learnings    []string  `json:"learnings"`
	Author       string    `json:"author"`
	DemoURL      string    `json:"demoUrl"`
	GithubURL    string    `json:"githubUrl"`
	LiveURL      string    `json:"liveUrl"`
	Featured     *bool     `json:"featured"`
}

// NewProject validates required fields and applies defaults.
func NewProject(in ProjectInput) (*Project, error) {
	var missing []string
	if in.Title == "" {
		missing = append(missing, "title")
	}
	if in.Description == "" {
		missing = append(missing, "description")
	}
	if len(in.Technologies) == 0 {
		missing = append(missing, "technologies")
	}
	if in.Category == "" {
		missing = append(missing, "category")
	}
	if in.Image == "" {
		missing = append(missing, "image")
	}
	if len(missing) > 0 {
		return nil, apperr.NewValidationError(missing...)
	}

	status := in.Status
	if status == "" {
		status = StatusInProgress
	}
	if status != StatusCompleted && status != StatusInProgress && status != StatusPlanned {
		return nil, apperr.NewValidationError("status")
	}
	if in.Rating < 0 || in.Rating > 5 {
		return nil, apperr.NewValidationError("rating")
	}

	now := time.Now().UTC()
	p := &Project{
		Title:        in.Title,
		Subtitle:     in.Subtitle,
		Slug:         in.Slug,
		Description:  in.Description,
		Technologies: in.Technologies,
		Category:     in.Category,
		Status:       status,
		Rating:       float64(in.Rating),
		Downloads:    in.Downloads,
		Image:        in.Image,
		Screenshots:  emptyIfNil(in.Screenshots),
		Features:     emptyIfNil(in.Features),
		Challenges:   emptyIfNil(in.Challenges),
		Learnings:    emptyIfNil(in.Learnings),
		Author:       in.Author,
		DemoURL:      in.DemoURL,
		GithubURL:    in.GithubURL,
		LiveURL:      in.LiveURL,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if p.Downloads == "" {
		p.Downloads = "0"
	}
	if in.Featured != nil {
		p.Featured = *in.Featured
	}
	return p, nil
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
