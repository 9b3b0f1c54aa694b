package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"wtfBlog/cache"
	"wtfBlog/crud"
	"wtfBlog/domain"
)

// Server provides most of the http functionality of this app, namely routing,
// request handling, and middleware. It identifies the acting user on every
// request and runs the capability checks before handing things over to one of
// the crud services.
type Server struct {
	router *mux.Router
	us     domain.UserService
	os     domain.OAuthService
	gs     domain.GroupService
	ps     domain.PostService
	cs     domain.CommentService
	fs     domain.FollowService
	feeds  domain.FeedService
	is     domain.ImageService
	cache  cache.Cache
	github oauth2.Config
}

// NewServer returns a new instance of the server, registers all necessary
// routes and gives their handlers access to the services passed in.
func NewServer(
	isProd bool,
	csrfKey string,
	github oauth2.Config,
	services *crud.Services,
	is domain.ImageService,
	c cache.Cache,
) *Server {

	// Construct a new Server with a gorilla router and the services passed in.
	s := &Server{
		router: mux.NewRouter(),
		us:     services.User,
		os:     services.OAuth,
		gs:     services.Group,
		ps:     services.Post,
		cs:     services.Comment,
		fs:     services.Follow,
		feeds:  services.Feed,
		is:     is,
		cache:  c,
		github: github,
	}

	// Register routes of the auth system.
	s.registerAuthRoutes(s.router)
	s.registerOAuthRoutes(s.router)

	// Register routes of the content system.
	s.registerFeedRoutes(s.router)
	s.registerPostRoutes(s.router)
	s.registerCommentRoutes(s.router)
	s.registerGroupRoutes(s.router)
	s.registerFollowRoutes(s.router)

	// Set up middleware that needs to run on every request. CSRF protection
	// only runs in production, where requests come from the browser client.
	if isProd {
		csrfMw := csrf.Protect([]byte(csrfKey), csrf.Path("/"))
		s.router.Use(csrfMw)
	}
	s.router.Use(logRequest, setContentTypeJSON, s.authUser)
	return s
}

// The setContentTypeJSON middleware sets the content type to "application/json".
func setContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// The logRequest middleware logs every request with its duration.
func logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		zap.L().Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// Router exposes the configured handler, mainly so tests can drive the
// server through httptest without opening a port.
func (s *Server) Router() http.Handler {
	return s.router
}

// Run starts to listen and serve on the specified port.
func (s *Server) Run(port int) {
	addr := "localhost:" + strconv.Itoa(port)
	zap.L().Info("listening", zap.String("addr", addr))
	zap.L().Fatal("server exited", zap.Error(http.ListenAndServe(addr, s.router)))
}
