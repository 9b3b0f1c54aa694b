package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"wtfBlog/auth"
	"wtfBlog/domain"
	"wtfBlog/errs"
)

func (s *Server) registerPostRoutes(r *mux.Router) {
	r.HandleFunc("/post/new", s.requireAuth(s.handleCreatePost)).Methods("POST")
	r.HandleFunc("/post/delete/{id:[0-9]+}", s.requireAuth(s.handleDeletePost)).Methods("DELETE")
	r.HandleFunc("/profile/{username}/post/{post_id:[0-9]+}", s.handlePostView).Methods("GET")
	r.HandleFunc("/profile/{username}/post/{post_id:[0-9]+}/edit", s.requireAuth(s.handleEditPost)).Methods("POST")
}

// postPath builds the canonical read-only view url of a post.
func postPath(username string, postID int) string {
	return fmt.Sprintf("/profile/%v/post/%v", username, postID)
}

// handleCreatePost handles the route "POST /post/new".
// It accepts either a json body or a multipart form with an optional image
// part. An upload that isn't a decodable raster image fails validation before
// any post record is created.
func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	user := s.getUserFromContext(r.Context())
	if !auth.CanCreatePost(user) {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	var post domain.Post
	var img *domain.Image

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(domain.MaxUploadSize); err != nil {
			errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, errs.ErrorMessage(err)))
			return
		}
		post.Text = r.FormValue("text")
		if g := r.FormValue("group_id"); g != "" {
			groupID, err := strconv.Atoi(g)
			if err != nil {
				errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid group id format."))
				return
			}
			post.GroupID = &groupID
		}
		if file, header, err := r.FormFile("image"); err == nil {
			defer file.Close()
			img = &domain.Image{
				OwnerType: domain.OwnerTypePost,
				File:      file,
				Filename:  header.Filename,
			}
			// Reject bad uploads before the post record exists.
			if err := s.is.Validate(img); err != nil {
				errs.ReturnError(w, r, err)
				return
			}
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&post); err != nil {
			errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid post data."))
			return
		}
	}

	post.AuthorID = user.ID
	if err := s.ps.Create(&post); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	if img != nil {
		img.OwnerID = post.ID
		if err := s.is.Create(img); err != nil {
			errs.ReturnError(w, r, err)
			return
		}
		post.Image = img.RelativePath()
		if err := s.ps.Update(&post); err != nil {
			errs.ReturnError(w, r, err)
			return
		}
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(&post); err != nil {
		errs.LogError(r, err)
	}
}

// handlePostView handles the route "GET /profile/{username}/post/{post_id}".
// It serves a single post with its comments, newest comments first.
func (s *Server) handlePostView(w http.ResponseWriter, r *http.Request) {
	post, err := s.postFromVars(r)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	if err := json.NewEncoder(w).Encode(post); err != nil {
		errs.LogError(r, err)
	}
}

// handleEditPost handles the route "POST /profile/{username}/post/{post_id}/edit".
// Only the author may edit; anyone else is sent back to the read-only post
// view without an error and without a change. The author never changes.
func (s *Server) handleEditPost(w http.ResponseWriter, r *http.Request) {
	post, err := s.postFromVars(r)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	user := s.getUserFromContext(r.Context())
	if !auth.CanEditPost(user, post) {
		http.Redirect(w, r, postPath(post.Author.Username, post.ID), http.StatusFound)
		return
	}

	var upd struct {
		Text    string `json:"text"`
		GroupID *int   `json:"group_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid update data."))
		return
	}

	post.Text = upd.Text
	post.GroupID = upd.GroupID
	post.Group = nil
	if err := s.ps.Update(post); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	if err := json.NewEncoder(w).Encode(post); err != nil {
		errs.LogError(r, err)
	}
}

// handleDeletePost handles the route "DELETE /post/delete/{id}".
// Only the author may delete. The post's comments go with it, and so do its
// image files.
func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid Id format."))
		return
	}

	post, err := s.ps.ByID(id)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	user := s.getUserFromContext(r.Context())
	if !auth.CanEditPost(user, post) {
		http.Redirect(w, r, postPath(post.Author.Username, post.ID), http.StatusFound)
		return
	}

	if err := s.ps.Delete(post); err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	if err := s.is.DeleteAll(domain.OwnerTypePost, post.ID); err != nil {
		errs.LogError(r, err)
	}

	if err := json.NewEncoder(w).Encode(post); err != nil {
		errs.LogError(r, err)
	}
}

// postFromVars resolves the {username}/{post_id} route pair to a post.
// A post id that exists under a different author still reads as not found,
// matching the url scheme's promise.
func (s *Server) postFromVars(r *http.Request) (*domain.Post, error) {
	id, err := strconv.Atoi(mux.Vars(r)["post_id"])
	if err != nil {
		return nil, errs.Errorf(errs.EINVALID, "Invalid Id format.")
	}
	post, err := s.ps.ByID(id)
	if err != nil {
		return nil, err
	}
	if post.Author.Username != mux.Vars(r)["username"] {
		return nil, errs.Errorf(errs.ENOTFOUND, "The post does not exist.")
	}
	return post, nil
}
