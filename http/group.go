package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"wtfBlog/domain"
	"wtfBlog/errs"
)

func (s *Server) registerGroupRoutes(r *mux.Router) {
	r.HandleFunc("/groups", s.handleGetGroups).Methods("GET")
	r.HandleFunc("/group/new", s.requireAuth(s.handleCreateGroup)).Methods("POST")
	r.HandleFunc("/group/delete/{slug}", s.requireAuth(s.handleDeleteGroup)).Methods("DELETE")
}

// handleGetGroups handles the route "GET /groups".
// It lists all groups, alphabetically.
func (s *Server) handleGetGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := s.gs.All()
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	if err := json.NewEncoder(w).Encode(groups); err != nil {
		errs.LogError(r, err)
	}
}

// handleCreateGroup handles the route "POST /group/new".
func (s *Server) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	var group domain.Group
	if err := json.NewDecoder(r.Body).Decode(&group); err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid group data."))
		return
	}

	if err := s.gs.Create(&group); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(&group); err != nil {
		errs.LogError(r, err)
	}
}

// handleDeleteGroup handles the route "DELETE /group/delete/{slug}".
// The group's posts survive with their group reference unset.
func (s *Server) handleDeleteGroup(w http.ResponseWriter, r *http.Request) {
	group, err := s.gs.BySlug(mux.Vars(r)["slug"])
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	if err := s.gs.Delete(group); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	if err := json.NewEncoder(w).Encode(group); err != nil {
		errs.LogError(r, err)
	}
}
