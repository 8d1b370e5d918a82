package models

import "time"

// Post is an article published in a topic.
type Post struct {
	ID        int64
	TopicID   int64
	AuthorID  int64
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time

	// AuthorName and TopicName are read-side join columns populated by
	// list queries for display purposes; they are not written back.
	AuthorName string
	TopicName  string
}

// Comment is a reply attached to a post.
type Comment struct {
	ID        int64
	PostID    int64
	AuthorID  int64
	Content   string
	CreatedAt time.Time

	AuthorName string
}
