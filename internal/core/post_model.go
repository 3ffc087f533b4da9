package core

import "time"

// MediaContent is an image or gif attached to a blog post.
type MediaContent struct {
	URL     string `json:"url"`
	Type    string `json:"type"` // 'image' or 'gif'
	Caption string `json:"caption,omitempty"`
	AltText string `json:"alt_text,omitempty"`
}

// BlogPost is a stored blog post, draft or published.
type BlogPost struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Content     string         `json:"content"`
	Tags        []string       `json:"tags"`
	Type        string         `json:"type"` // 'insight', 'tutorial', ...
	Published   bool           `json:"published"`
	Thumbnail   string         `json:"thumbnail,omitempty"`
	Media       []MediaContent `json:"media,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// PostMetadata is the AI-generated metadata block for a drafted article.
type PostMetadata struct {
	Title       string   `json:"title" jsonschema_description:"A compelling, specific title for the article"`
	Description string   `json:"description" jsonschema_description:"A 1-2 sentence summary suitable for a post listing page"`
	Tags        []string `json:"tags" jsonschema_description:"3-6 lowercase topic tags"`
	Type        string   `json:"type" jsonschema_description:"The post type, one of: insight, tutorial, announcement"`
}

// PostInput carries the writeable fields for creating or updating a post.
type PostInput struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Content     string         `json:"content"`
	Tags        []string       `json:"tags"`
	Type        string         `json:"type"`
	Thumbnail   string         `json:"thumbnail,omitempty"`
	Media       []MediaContent `json:"media,omitempty"`
}
