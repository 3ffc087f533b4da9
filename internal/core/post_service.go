package core

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostService provides blog post persistence.
type PostService interface {
	// ListPosts returns posts ordered newest first. publishedOnly restricts
	// the result to published posts.
	ListPosts(ctx context.Context, publishedOnly bool) ([]BlogPost, error)

	// GetPost returns a single post by ID.
	GetPost(ctx context.Context, id string) (*BlogPost, error)

	// CreatePost inserts a new draft post and returns it.
	CreatePost(ctx context.Context, input PostInput) (*BlogPost, error)

	// UpdatePost replaces the writeable fields of an existing post.
	UpdatePost(ctx context.Context, id string, input PostInput) (*BlogPost, error)

	// SetPublished flips the published flag.
	SetPublished(ctx context.Context, id string, published bool) (*BlogPost, error)

	// DeletePost removes a post permanently.
	DeletePost(ctx context.Context, id string) error
}

type postService struct {
	pool *pgxpool.Pool
}

// NewPostService constructs a PostService backed by PostgreSQL.
func NewPostService(pool *pgxpool.Pool) PostService {
	return &postService{pool: pool}
}

const postColumns = `id, title, description, content, tags, type, published, thumbnail, media, created_at, updated_at`

func scanPost(row interface{ Scan(dest ...any) error }) (*BlogPost, error) {
	p := &BlogPost{}
	var thumbnail *string
	if err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.Content, &p.Tags, &p.Type,
		&p.Published, &thumbnail, &p.Media, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if thumbnail != nil {
		p.Thumbnail = *thumbnail
	}
	return p, nil
}

func (s *postService) ListPosts(ctx context.Context, publishedOnly bool) ([]BlogPost, error) {
	query := `SELECT ` + postColumns + ` FROM posts ORDER BY created_at DESC`
	if publishedOnly {
		query = `SELECT ` + postColumns + ` FROM posts WHERE published = true ORDER BY created_at DESC`
	}

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var posts []BlogPost
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

func (s *postService) GetPost(ctx context.Context, id string) (*BlogPost, error) {
	p, err := scanPost(s.pool.QueryRow(ctx,
		`SELECT `+postColumns+` FROM posts WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("post %s not found: %w", id, err)
	}
	return p, nil
}

func (s *postService) CreatePost(ctx context.Context, input PostInput) (*BlogPost, error) {
	postType := input.Type
	if postType == "" {
		postType = "insight"
	}

	p, err := scanPost(s.pool.QueryRow(ctx, `
		INSERT INTO posts (id, title, description, content, tags, type, published, thumbnail, media)
		VALUES ($1, $2, $3, $4, $5, $6, false, $7, $8)
		RETURNING `+postColumns,
		uuid.NewString(), input.Title, input.Description, input.Content,
		input.Tags, postType, nullable(input.Thumbnail), input.Media,
	))
	if err != nil {
		return nil, fmt.Errorf("create post %q: %w", input.Title, err)
	}
	return p, nil
}

func (s *postService) UpdatePost(ctx context.Context, id string, input PostInput) (*BlogPost, error) {
	p, err := scanPost(s.pool.QueryRow(ctx, `
		UPDATE posts
		SET title = $2, description = $3, content = $4, tags = $5, type = $6,
		    thumbnail = $7, media = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING `+postColumns,
		id, input.Title, input.Description, input.Content, input.Tags,
		input.Type, nullable(input.Thumbnail), input.Media,
	))
	if err != nil {
		return nil, fmt.Errorf("update post %s: %w", id, err)
	}
	return p, nil
}

func (s *postService) SetPublished(ctx context.Context, id string, published bool) (*BlogPost, error) {
	p, err := scanPost(s.pool.QueryRow(ctx, `
		UPDATE posts SET published = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING `+postColumns,
		id, published,
	))
	if err != nil {
		return nil, fmt.Errorf("set published on post %s: %w", id, err)
	}
	return p, nil
}

func (s *postService) DeletePost(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("post %s not found", id)
	}
	return nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
