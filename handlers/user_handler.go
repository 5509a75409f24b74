package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"yatube/auth"
	"yatube/dto"
	"yatube/monitoring"
	"yatube/templates"
)

// Profile shows an author's posts, counters and whether the viewer follows
// them.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	author, err := h.repos.Users.FindByUsername(ctx, mux.Vars(r)["username"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	page, err := h.repos.Posts.ListByAuthor(ctx, author.ID, pageNumber(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	stats, err := h.authorStats(ctx, author.ID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	following, err := h.viewerFollows(r, author.ID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, templates.Profile, dto.ProfilePage{
		Layout:      h.layout(r),
		Author:      author,
		AuthorStats: stats,
		Page:        page,
		Following:   following,
	})
}

// FollowIndex shows the feed of posts by the authors the viewer follows.
func (h *Handler) FollowIndex(w http.ResponseWriter, r *http.Request) {
	page, err := h.repos.Posts.ListFollowed(r.Context(), auth.CurrentUser(r).ID, pageNumber(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, templates.Follow, dto.FollowPage{Layout: h.layout(r), Page: page})
}

// ProfileFollow subscribes the viewer to the author. Following oneself or an
// author already followed changes nothing.
func (h *Handler) ProfileFollow(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	viewer := auth.CurrentUser(r)
	author, err := h.repos.Users.FindByUsername(ctx, mux.Vars(r)["username"])
	if err != nil {
		h.fail(w, r, err)
		return
	}

	created, err := h.repos.Follows.Follow(ctx, viewer.ID, author.ID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if created {
		monitoring.FollowChanges.WithLabelValues("follow").Inc()
		logrus.WithFields(logrus.Fields{"user": viewer.Username, "author": author.Username}).Info("Follow created")
	}
	http.Redirect(w, r, profileURL(author.Username), http.StatusFound)
}

// ProfileUnfollow removes the viewer's subscription, if any.
func (h *Handler) ProfileUnfollow(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	viewer := auth.CurrentUser(r)
	author, err := h.repos.Users.FindByUsername(ctx, mux.Vars(r)["username"])
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.repos.Follows.Unfollow(ctx, viewer.ID, author.ID); err != nil {
		h.fail(w, r, err)
		return
	}
	monitoring.FollowChanges.WithLabelValues("unfollow").Inc()
	http.Redirect(w, r, profileURL(author.Username), http.StatusFound)
}
