package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"wtfBlog/domain"
	"wtfBlog/errs"
)

func (s *Server) registerFollowRoutes(r *mux.Router) {
	r.HandleFunc("/profile/{username}/follow", s.requireAuth(s.handleCreateFollow)).Methods("POST")
	r.HandleFunc("/profile/{username}/unfollow", s.requireAuth(s.handleDeleteFollow)).Methods("POST")
}

// handleCreateFollow handles the route "POST /profile/{username}/follow".
// Following yourself and following someone twice are both no-ops, so the
// response always reflects the resulting state of the edge.
func (s *Server) handleCreateFollow(w http.ResponseWriter, r *http.Request) {
	followed, err := s.us.ByUsername(mux.Vars(r)["username"])
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	follower := s.getUserFromContext(r.Context())
	follow := domain.Follow{
		FollowerID: follower.ID,
		FollowedID: followed.ID,
	}
	if err := s.fs.Create(&follow); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	s.returnFollowState(w, r, follower.ID, followed.ID)
}

// handleDeleteFollow handles the route "POST /profile/{username}/unfollow".
// Unfollowing someone you never followed is a no-op.
func (s *Server) handleDeleteFollow(w http.ResponseWriter, r *http.Request) {
	followed, err := s.us.ByUsername(mux.Vars(r)["username"])
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	follower := s.getUserFromContext(r.Context())
	follow := domain.Follow{
		FollowerID: follower.ID,
		FollowedID: followed.ID,
	}
	if err := s.fs.Delete(&follow); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	s.returnFollowState(w, r, follower.ID, followed.ID)
}

// returnFollowState answers a follow mutation with the edge's current state.
func (s *Server) returnFollowState(w http.ResponseWriter, r *http.Request, followerID, followedID int) {
	following, err := s.fs.IsFollowing(followerID, followedID)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	response := map[string]bool{"following": following}
	if err := json.NewEncoder(w).Encode(&response); err != nil {
		errs.LogError(r, err)
	}
}
