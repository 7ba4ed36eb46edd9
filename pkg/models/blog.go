package models

import (
	"time"

	"github.com/juju/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BlogPost is a MongoDB object for blog persistence
type BlogPost struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title" json:"title"`
	Body      string             `bson:"body" json:"body"`
	Author    string             `bson:"author,omitempty" json:"author,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}

// NewBlogPost is the payload accepted when a post is created.
type NewBlogPost struct {
	Title  string `json:"title" yaml:"title"`
	Body   string `json:"body" yaml:"body"`
	Author string `json:"author,omitempty" yaml:"author"`
}

// BlogPostPatch carries the fields of a PUT payload. Nil fields are left
// untouched on the stored post.
type BlogPostPatch struct {
	Title  *string `json:"title,omitempty"`
	Body   *string `json:"body,omitempty"`
	Author *string `json:"author,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p BlogPostPatch) Empty() bool {
	return p.Title == nil && p.Body == nil && p.Author == nil
}

// Apply copies the non-nil patch fields onto post.
func (p BlogPostPatch) Apply(post *BlogPost) {
	if p.Title != nil {
		post.Title = *p.Title
	}
	if p.Body != nil {
		post.Body = *p.Body
	}
	if p.Author != nil {
		post.Author = *p.Author
	}
}

// Fields returns the patch as a bson-keyed field set suitable for $set.
func (p BlogPostPatch) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if p.Title != nil {
		fields["title"] = *p.Title
	}
	if p.Body != nil {
		fields["body"] = *p.Body
	}
	if p.Author != nil {
		fields["author"] = *p.Author
	}
	return fields
}

// Validate checks the fields every stored post must carry.
func Validate(title, body string) error {
	if title == "" || body == "" {
		return errors.NewNotValid(nil, "title and body are required")
	}
	return nil
}

// ValidatePatch applies the create check to a PUT payload. A field missing
// from the payload counts as empty.
func ValidatePatch(p BlogPostPatch) error {
	var title, body string
	if p.Title != nil {
		title = *p.Title
	}
	if p.Body != nil {
		body = *p.Body
	}
	return Validate(title, body)
}
