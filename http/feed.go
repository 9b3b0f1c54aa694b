package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"wtfBlog/cache"
	"wtfBlog/domain"
	"wtfBlog/errs"
)

func (s *Server) registerFeedRoutes(r *mux.Router) {
	r.HandleFunc("/", s.handleIndex).Methods("GET")
	r.HandleFunc("/follow", s.requireAuth(s.handleFollowFeed)).Methods("GET")
	r.HandleFunc("/group/{slug}", s.handleGroupFeed).Methods("GET")
	r.HandleFunc("/profile/{username}", s.handleProfile).Methods("GET")
}

// handleIndex handles the route "GET /".
// It serves the global feed, newest posts first. The rendered fragment is
// cached as one unit under a fixed key for cache.FeedTTL; within that window
// every request gets the cached bytes back, whatever its page parameter, and
// new posts only show up once the TTL runs out. Writes never invalidate it.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if data, err := s.cache.Get(r.Context(), cache.FeedKey); err == nil {
		w.Write(data)
		return
	}

	feed, err := s.feeds.Global(parsePage(r))
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	payload, err := json.Marshal(feed)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	if err := s.cache.Set(r.Context(), cache.FeedKey, payload, cache.FeedTTL); err != nil {
		errs.LogError(r, err)
	}
	w.Write(payload)
}

// handleFollowFeed handles the route "GET /follow".
// It serves the posts of all authors the acting user follows. A user who
// follows nobody gets an empty feed. Never cached.
func (s *Server) handleFollowFeed(w http.ResponseWriter, r *http.Request) {
	user := s.getUserFromContext(r.Context())

	feed, err := s.feeds.Following(user.ID, parsePage(r))
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	if err := json.NewEncoder(w).Encode(feed); err != nil {
		errs.LogError(r, err)
	}
}

// handleGroupFeed handles the route "GET /group/{slug}".
// It serves the posts filed under one group.
func (s *Server) handleGroupFeed(w http.ResponseWriter, r *http.Request) {
	group, err := s.gs.BySlug(mux.Vars(r)["slug"])
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	feed, err := s.feeds.Group(group.ID, parsePage(r))
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	response := struct {
		Group *domain.Group `json:"group"`
		*domain.Feed
	}{group, feed}
	if err := json.NewEncoder(w).Encode(&response); err != nil {
		errs.LogError(r, err)
	}
}

// handleProfile handles the route "GET /profile/{username}".
// It serves an author's posts along with whether the acting user follows
// them. The follow flag is false for anonymous visitors.
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.us.ByUsername(mux.Vars(r)["username"])
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	feed, err := s.feeds.Profile(profile.ID, parsePage(r))
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	var actorID int
	if user := s.getUserFromContext(r.Context()); user != nil {
		actorID = user.ID
	}
	following, err := s.fs.IsFollowing(actorID, profile.ID)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	response := struct {
		Profile   *domain.User `json:"profile"`
		Following bool         `json:"following"`
		*domain.Feed
	}{profile, following, feed}
	if err := json.NewEncoder(w).Encode(&response); err != nil {
		errs.LogError(r, err)
	}
}

// parsePage reads the 1-based page number from the query string.
// Anything unusable means page 1; out-of-range values are clamped later by
// the feed composer.
func parsePage(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
