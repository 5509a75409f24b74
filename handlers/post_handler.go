package handlers

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"yatube/auth"
	"yatube/dto"
	"yatube/forms"
	"yatube/models"
	"yatube/monitoring"
	"yatube/repositories"
	"yatube/templates"
)

// Index lists every post, newest first.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	page, err := h.repos.Posts.List(r.Context(), pageNumber(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, templates.Index, dto.IndexPage{Layout: h.layout(r), Page: page})
}

// GroupPosts lists the posts of the group named by the slug.
func (h *Handler) GroupPosts(w http.ResponseWriter, r *http.Request) {
	group, err := h.repos.Groups.FindBySlug(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	page, err := h.repos.Posts.ListByGroup(r.Context(), group.ID, pageNumber(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, templates.Group, dto.GroupPage{Layout: h.layout(r), Group: group, Page: page})
}

// NewPost shows the post form and creates a post on a valid submission.
func (h *Handler) NewPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := auth.CurrentUser(r)

	if r.Method == http.MethodGet {
		h.renderPostForm(w, r, http.StatusOK, forms.NewPostForm(nil, nil), nil)
		return
	}

	form, err := h.bindPostForm(w, r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	ok, err := form.Valid(ctx, h.repos.Groups, repositories.ErrNotFound)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if !ok {
		monitoring.FormRejections.WithLabelValues("post").Inc()
		h.renderPostForm(w, r, http.StatusBadRequest, form, nil)
		return
	}

	post := &models.Post{AuthorID: user.ID}
	form.Apply(post)
	if form.Image != nil {
		if post.Image, err = h.media.SavePostImage(form.Image.Data); err != nil {
			h.fail(w, r, err)
			return
		}
	}
	if err := h.repos.Posts.Create(ctx, post); err != nil {
		h.discardImage(post.Image)
		h.fail(w, r, err)
		return
	}

	monitoring.PostsCreated.Inc()
	logrus.WithFields(logrus.Fields{"post_id": post.ID, "author": user.Username}).Info("Post created")
	http.Redirect(w, r, "/", http.StatusFound)
}

// PostView shows one post with its comments.
func (h *Handler) PostView(w http.ResponseWriter, r *http.Request) {
	post, err := h.findPost(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.renderPost(w, r, http.StatusOK, post, forms.NewCommentForm(nil))
}

// PostEdit lets the author change a post. Anyone else is sent to the post
// view.
func (h *Handler) PostEdit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	post, err := h.findPost(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if post.AuthorID != auth.CurrentUser(r).ID {
		http.Redirect(w, r, postURL(post.Author.Username, post.ID), http.StatusFound)
		return
	}

	if r.Method == http.MethodGet {
		h.renderPostForm(w, r, http.StatusOK, forms.PostFormFrom(post), post)
		return
	}

	form, err := h.bindPostForm(w, r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	ok, err := form.Valid(ctx, h.repos.Groups, repositories.ErrNotFound)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if !ok {
		monitoring.FormRejections.WithLabelValues("post").Inc()
		h.renderPostForm(w, r, http.StatusBadRequest, form, post)
		return
	}

	oldImage := post.Image
	form.Apply(post)
	if form.Image != nil {
		if post.Image, err = h.media.SavePostImage(form.Image.Data); err != nil {
			h.fail(w, r, err)
			return
		}
	}
	if err := h.repos.Posts.Update(ctx, post); err != nil {
		if post.Image != oldImage {
			h.discardImage(post.Image)
		}
		h.fail(w, r, err)
		return
	}
	if post.Image != oldImage {
		h.discardImage(oldImage)
	}

	monitoring.PostsEdited.Inc()
	http.Redirect(w, r, postURL(post.Author.Username, post.ID), http.StatusFound)
}

// AddComment attaches a comment to the post in the route.
func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	post, err := h.findPost(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.badRequest(w, r, err)
		return
	}

	form := forms.NewCommentForm(r.PostForm)
	if !form.Valid() {
		monitoring.FormRejections.WithLabelValues("comment").Inc()
		h.renderPost(w, r, http.StatusBadRequest, post, form)
		return
	}

	comment := &models.Comment{
		PostID:   post.ID,
		AuthorID: auth.CurrentUser(r).ID,
		Text:     form.Text,
	}
	if err := h.repos.Comments.Create(r.Context(), comment); err != nil {
		h.fail(w, r, err)
		return
	}

	monitoring.CommentsCreated.Inc()
	http.Redirect(w, r, postURL(post.Author.Username, post.ID), http.StatusFound)
}

func (h *Handler) findPost(r *http.Request) (*models.Post, error) {
	id, err := postID(r)
	if err != nil {
		return nil, err
	}
	return h.repos.Posts.FindByAuthor(r.Context(), mux.Vars(r)["username"], id)
}

func (h *Handler) bindPostForm(w http.ResponseWriter, r *http.Request) (*forms.PostForm, error) {
	if err := parsePostBody(w, r); err != nil {
		return nil, err
	}
	image, err := readImage(r)
	if err != nil {
		return nil, err
	}
	return forms.NewPostForm(r.PostForm, image), nil
}

func (h *Handler) renderPostForm(w http.ResponseWriter, r *http.Request, status int, form *forms.PostForm, post *models.Post) {
	groups, err := h.repos.Groups.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, status, templates.NewPost, dto.PostFormPage{
		Layout: h.layout(r),
		Form:   form,
		Groups: groups,
		Post:   post,
	})
}

func (h *Handler) renderPost(w http.ResponseWriter, r *http.Request, status int, post *models.Post, form *forms.CommentForm) {
	ctx := r.Context()
	stats, err := h.authorStats(ctx, post.AuthorID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	comments, err := h.repos.Comments.ListByPost(ctx, post.ID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	following, err := h.viewerFollows(r, post.AuthorID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, status, templates.Post, dto.PostPage{
		Layout:      h.layout(r),
		Author:      &post.Author,
		AuthorStats: stats,
		Post:        post,
		Comments:    comments,
		CommentForm: form,
		Following:   following,
	})
}

func (h *Handler) authorStats(ctx context.Context, authorID uint) (dto.AuthorStats, error) {
	var (
		stats dto.AuthorStats
		err   error
	)
	if stats.PostsCount, err = h.repos.Posts.CountByAuthor(ctx, authorID); err != nil {
		return stats, err
	}
	if stats.FollowersCount, err = h.repos.Follows.CountFollowers(ctx, authorID); err != nil {
		return stats, err
	}
	if stats.FollowingCount, err = h.repos.Follows.CountFollowing(ctx, authorID); err != nil {
		return stats, err
	}
	return stats, nil
}

// viewerFollows is false for guests.
func (h *Handler) viewerFollows(r *http.Request, authorID uint) (bool, error) {
	viewer := auth.CurrentUser(r)
	if viewer == nil {
		return false, nil
	}
	return h.repos.Follows.IsFollowing(r.Context(), viewer.ID, authorID)
}

func (h *Handler) discardImage(rel string) {
	if err := h.media.Remove(rel); err != nil {
		logrus.WithError(err).WithField("image", rel).Warn("Failed to remove image")
	}
}

func (h *Handler) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	logrus.WithError(err).WithField("path", r.URL.Path).Debug("Rejected malformed request body")
	http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
}
