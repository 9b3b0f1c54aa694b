package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"wtfBlog/auth"
	"wtfBlog/domain"
	"wtfBlog/errs"
)

const githubProvider = "github"

func (s *Server) registerOAuthRoutes(r *mux.Router) {
	r.HandleFunc("/oauth/github", s.handleGithubLogin).Methods("GET")
	r.HandleFunc("/oauth/github/callback", s.handleGithubCallback).Methods("GET")
}

// handleGithubLogin handles the route "GET /oauth/github".
// It sends the visitor to Github's consent screen, with a random state value
// parked in a cookie for the callback to verify.
func (s *Server) handleGithubLogin(w http.ResponseWriter, r *http.Request) {
	state, err := auth.MakeRememberToken()
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    state,
		HttpOnly: true,
	})
	http.Redirect(w, r, s.github.AuthCodeURL(state), http.StatusFound)
}

// githubUser is the part of Github's user payload this app cares about.
type githubUser struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
	Email string `json:"email"`
}

// handleGithubCallback handles the route "GET /oauth/github/callback".
// It exchanges the code for a token, fetches the Github identity, and signs
// in the linked user. A first-time visitor gets a fresh account linked to
// their Github identity.
func (s *Server) handleGithubCallback(w http.ResponseWriter, r *http.Request) {
	stateCookie, err := r.Cookie("oauth_state")
	if err != nil || stateCookie.Value != r.FormValue("state") {
		errs.ReturnError(w, r, errs.Errorf(errs.EUNAUTHORIZED, "Invalid oauth state."))
		return
	}

	token, err := s.github.Exchange(r.Context(), r.FormValue("code"))
	if err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EUNAUTHORIZED, "Github code exchange failed."))
		return
	}

	resp, err := s.github.Client(r.Context(), token).Get("https://api.github.com/user")
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	defer resp.Body.Close()
	var ghUser githubUser
	if err := json.NewDecoder(resp.Body).Decode(&ghUser); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	user, err := s.userForGithubIdentity(&ghUser)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	if err := s.signIn(w, user); err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

// userForGithubIdentity returns the local user linked to the Github identity,
// registering one on first contact.
func (s *Server) userForGithubIdentity(ghUser *githubUser) (*domain.User, error) {
	providerUserID := strconv.FormatInt(ghUser.ID, 10)

	oauth, err := s.os.Find(githubProvider, providerUserID)
	if err == nil {
		return s.us.ByID(oauth.UserID)
	}
	if errs.ErrorCode(err) != errs.ENOTFOUND {
		return nil, err
	}

	// First login through Github: register a user. Github may withhold the
	// email address, so fall back to the noreply form Github publishes.
	password, err := auth.MakeRememberToken()
	if err != nil {
		return nil, err
	}
	email := ghUser.Email
	if email == "" {
		email = fmt.Sprintf("%v@users.noreply.github.com", ghUser.Login)
	}
	user := &domain.User{
		Username: ghUser.Login,
		Email:    email,
		Password: password,
	}
	if err := s.us.Create(user); err != nil {
		return nil, err
	}

	if err := s.os.Create(&domain.OAuth{
		UserID:         user.ID,
		Provider:       githubProvider,
		ProviderUserID: providerUserID,
	}); err != nil {
		return nil, err
	}
	return user, nil
}
