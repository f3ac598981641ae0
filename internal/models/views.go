package models

import "time"

// Author is the public part of a user shown next to posts and comments.
type Author struct {
	ID       uint   `json:"id"`
	Nickname string `json:"nickname"`
}

// IDRef carries only an id, used for likers and profile lists.
type IDRef struct {
	ID uint `json:"id"`
}

// CommentView is a comment joined with its author.
type CommentView struct {
	ID        uint      `json:"id"`
	Content   string    `json:"content"`
	PostID    uint      `json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
	User      Author    `json:"user"`
}

// RetweetView is the original post shown inside a retweet.
type RetweetView struct {
	ID        uint      `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	User      Author    `json:"user"`
	Images    []Image   `json:"images"`
}

// PostView is the full-post projection returned to clients.
type PostView struct {
	ID        uint          `json:"id"`
	Content   string        `json:"content"`
	CreatedAt time.Time     `json:"created_at"`
	User      Author        `json:"user"`
	Likers    []IDRef       `json:"likers"`
	Comments  []CommentView `json:"comments"`
	Images    []Image       `json:"images"`
	Hashtags  []string      `json:"hashtags"`
	RetweetID *uint         `json:"retweet_id"`
	Retweet   *RetweetView  `json:"retweet,omitempty"`
}

// UserProfile is a user without the password hash, plus the ids of its posts
// and of both sides of its follow edges.
type UserProfile struct {
	ID         uint      `json:"id"`
	Email      string    `json:"email"`
	Nickname   string    `json:"nickname"`
	CreatedAt  time.Time `json:"created_at"`
	Posts      []IDRef   `json:"posts"`
	Followers  []IDRef   `json:"followers"`
	Followings []IDRef   `json:"followings"`
}

// AuthorOf returns the public part of u. A nil user yields only the id hint.
func AuthorOf(u *User, id uint) Author {
	if u == nil {
		return Author{ID: id}
	}
	return Author{ID: u.ID, Nickname: u.Nickname}
}

// NewCommentView projects a comment loaded with its author.
func NewCommentView(c *Comment) CommentView {
	return CommentView{
		ID:        c.ID,
		Content:   c.Content,
		PostID:    c.PostID,
		CreatedAt: c.CreatedAt,
		User:      AuthorOf(c.User, c.UserID),
	}
}

// NewPostView projects a post loaded with its associations. Slices are never
// nil so that clients always receive arrays.
func NewPostView(p *Post) PostView {
	v := PostView{
		ID:        p.ID,
		Content:   p.Content,
		CreatedAt: p.CreatedAt,
		User:      AuthorOf(p.User, p.UserID),
		Likers:    make([]IDRef, 0, len(p.Likers)),
		Comments:  make([]CommentView, 0, len(p.Comments)),
		Images:    make([]Image, 0, len(p.Images)),
		Hashtags:  make([]string, 0, len(p.Hashtags)),
		RetweetID: p.RetweetID,
	}
	for _, u := range p.Likers {
		v.Likers = append(v.Likers, IDRef{ID: u.ID})
	}
	for i := range p.Comments {
		v.Comments = append(v.Comments, NewCommentView(&p.Comments[i]))
	}
	v.Images = append(v.Images, p.Images...)
	for _, h := range p.Hashtags {
		v.Hashtags = append(v.Hashtags, h.Name)
	}
	if p.Retweet != nil {
		rv := &RetweetView{
			ID:        p.Retweet.ID,
			Content:   p.Retweet.Content,
			CreatedAt: p.Retweet.CreatedAt,
			User:      AuthorOf(p.Retweet.User, p.Retweet.UserID),
			Images:    make([]Image, 0, len(p.Retweet.Images)),
		}
		rv.Images = append(rv.Images, p.Retweet.Images...)
		v.Retweet = rv
	}
	return v
}

// NewPostViews projects a page of posts, keeping their order.
func NewPostViews(posts []Post) []PostView {
	views := make([]PostView, 0, len(posts))
	for i := range posts {
		views = append(views, NewPostView(&posts[i]))
	}
	return views
}
