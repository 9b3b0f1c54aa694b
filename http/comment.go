package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"wtfBlog/auth"
	"wtfBlog/domain"
	"wtfBlog/errs"
)

func (s *Server) registerCommentRoutes(r *mux.Router) {
	// No auth middleware here: anonymous submissions are dropped inside the
	// handler, silently, instead of being answered with an error.
	r.HandleFunc("/profile/{username}/post/{post_id:[0-9]+}/comment", s.handleAddComment).Methods("POST")
}

// handleAddComment handles the route "POST /profile/{username}/post/{post_id}/comment".
// An anonymous submission is redirected to the post view with no record
// created and no error raised; the write is simply never attempted.
func (s *Server) handleAddComment(w http.ResponseWriter, r *http.Request) {
	post, err := s.postFromVars(r)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	user := s.getUserFromContext(r.Context())
	if !auth.CanComment(user) {
		http.Redirect(w, r, postPath(post.Author.Username, post.ID), http.StatusFound)
		return
	}

	var comment domain.Comment
	if err := json.NewDecoder(r.Body).Decode(&comment); err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid comment data."))
		return
	}
	comment.PostID = post.ID
	comment.AuthorID = user.ID

	if err := s.cs.Create(&comment); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(&comment); err != nil {
		errs.LogError(r, err)
	}
}
