// Package dto holds the typed view models handed to the renderer, one per
// route.
package dto

import (
	"yatube/forms"
	"yatube/models"
	"yatube/pagination"
)

// Layout is shared by every page.
type Layout struct {
	Path   string
	Viewer *models.User
}

// PostList is a paginated list of posts.
type PostList = pagination.Page[models.Post]

type IndexPage struct {
	Layout
	Page *PostList
}

type GroupPage struct {
	Layout
	Group *models.Group
	Page  *PostList
}

// FollowPage is the feed of authors the viewer follows.
type FollowPage struct {
	Layout
	Page *PostList
}

// PostFormPage serves both new and edit. Post is nil for a new post.
type PostFormPage struct {
	Layout
	Form   *forms.PostForm
	Groups []models.Group
	Post   *models.Post
}

func (p PostFormPage) IsEdit() bool {
	return p.Post != nil
}

// AuthorStats are the counters shown next to an author.
type AuthorStats struct {
	PostsCount     int64
	FollowersCount int64
	FollowingCount int64
}

type ProfilePage struct {
	Layout
	Author *models.User
	AuthorStats
	Page      *PostList
	Following bool
}

// CanFollow reports whether the follow/unfollow buttons apply.
func (p ProfilePage) CanFollow() bool {
	return p.Viewer != nil && p.Viewer.ID != p.Author.ID
}

type PostPage struct {
	Layout
	Author *models.User
	AuthorStats
	Post        *models.Post
	Comments    []models.Comment
	CommentForm *forms.CommentForm
	Following   bool
}

// CanEdit reports whether the viewer wrote the post.
func (p PostPage) CanEdit() bool {
	return p.Viewer != nil && p.Viewer.ID == p.Post.AuthorID
}

type SignupPage struct {
	Layout
	Form *forms.SignupForm
}

type LoginPage struct {
	Layout
	Form *forms.LoginForm
}

type StaticPage struct {
	Layout
}

type ErrorPage struct {
	Layout
	Status int
}
