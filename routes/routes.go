package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"yatube/auth"
	"yatube/cache"
	"yatube/handlers"
	"yatube/logger"
	"yatube/media"
	"yatube/monitoring"
)

// SetupRoutes initializes all the application routes
// The routing logic is isolated here
func SetupRoutes(h *handlers.Handler, sessions *auth.Sessions, pages *cache.Pages, store *media.Store) http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.Use(monitoring.InstrumentHandler, sessions.Middleware)

	// Uploads and metrics
	router.PathPrefix(media.URLPrefix).Handler(store.Handler()).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Listings
	router.Handle("/", pages.Middleware(indexCacheKey)(http.HandlerFunc(h.Index))).Methods("GET")
	router.HandleFunc("/group/{slug}/", h.GroupPosts).Methods("GET")
	router.HandleFunc("/new/", auth.RequireLogin(h.NewPost)).Methods("GET", "POST")
	router.HandleFunc("/follow/", auth.RequireLogin(h.FollowIndex)).Methods("GET")

	// Static pages
	router.HandleFunc("/about/author/", h.AboutAuthor).Methods("GET")
	router.HandleFunc("/about/tech/", h.AboutTech).Methods("GET")

	// Accounts
	router.HandleFunc("/auth/signup/", h.Signup).Methods("GET", "POST")
	router.HandleFunc("/auth/login/", h.Login).Methods("GET", "POST")
	router.HandleFunc("/auth/logout/", h.Logout).Methods("GET")

	// Profiles and posts
	router.HandleFunc("/{username}/", h.Profile).Methods("GET")
	router.HandleFunc("/{username}/follow/", auth.RequireLogin(h.ProfileFollow)).Methods("GET")
	router.HandleFunc("/{username}/unfollow/", auth.RequireLogin(h.ProfileUnfollow)).Methods("GET")
	router.HandleFunc("/{username}/{post_id:[0-9]+}/", h.PostView).Methods("GET")
	router.HandleFunc("/{username}/{post_id:[0-9]+}/edit/", auth.RequireLogin(h.PostEdit)).Methods("GET", "POST")
	router.HandleFunc("/{username}/{post_id:[0-9]+}/comment/", auth.RequireLogin(h.AddComment)).Methods("POST")

	// Router middleware only runs for matched routes.
	router.NotFoundHandler = sessions.Middleware(http.HandlerFunc(h.NotFound))

	return logger.AccessLog(router)
}

func indexCacheKey(r *http.Request) string {
	viewer := ""
	if user := auth.CurrentUser(r); user != nil {
		viewer = user.Username
	}
	return r.URL.RequestURI() + "|" + viewer
}
