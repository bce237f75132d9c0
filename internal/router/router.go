// Package router binds the HTTP routes to their handlers: registration,
// user listing, song search, the music catalog proxy and song reviews.
package router

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/patric-chuzhbe/songhub/internal/auth"
	"github.com/patric-chuzhbe/songhub/internal/gzippedhttp"
	"github.com/patric-chuzhbe/songhub/internal/logger"
	"github.com/patric-chuzhbe/songhub/internal/models"
	"github.com/patric-chuzhbe/songhub/internal/user"
)

// The user listing is generated HTML, so it goes through html/template to
// get escaping for free instead of splicing strings.
const usersTemplateText = `<h2>User List</h2>
<ul>
{{- range . }}
	<li>User ID: {{ .UserID }}, Password: {{ .Password }}</li>
{{- end }}
</ul>
`

type songhubService interface {
	RegisterUser(ctx context.Context, userID, password string) error
	GetUsers(ctx context.Context) ([]user.User, error)
	SearchSongs(ctx context.Context, title string) (*models.CatalogSearchResponse, error)
	GetSongReviews(ctx context.Context, songName string) ([]models.Review, error)
	SubmitReview(ctx context.Context, songName, userID, reviewText string) error
	Ping(ctx context.Context) error
}

type authenticator interface {
	AuthenticateUser(h http.Handler) http.Handler
}

// Router holds the handler dependencies: the service layer, the assets
// directory with static pages, and the parsed page templates.
type Router struct {
	service         songhubService
	assetsDir       string
	reviewsTemplate *template.Template
	usersTemplate   *template.Template
	validate        *validator.Validate
}

// New assembles the chi router with the logging middleware on every route
// and the Basic auth middleware on the protected group.
func New(service songhubService, theAuth authenticator, assetsDir string) (*chi.Mux, error) {
	reviewsTemplate, err := template.ParseFiles(filepath.Join(assetsDir, "reviews.html"))
	if err != nil {
		return nil, fmt.Errorf(
			"in internal/router/router.go/New(): error while `template.ParseFiles()` calling: %w",
			err,
		)
	}

	myRouter := &Router{
		service:         service,
		assetsDir:       assetsDir,
		reviewsTemplate: reviewsTemplate,
		usersTemplate:   template.Must(template.New("users").Parse(usersTemplateText)),
		validate:        validator.New(),
	}

	router := chi.NewRouter()
	router.Use(logger.WithLoggingHTTPMiddleware)
	router.Use(gzippedhttp.GzipResponse)

	router.Get(`/ping`, myRouter.GetPing)
	router.Get(`/register.html`, myRouter.GetRegisterhtml)
	router.Post(`/register`, myRouter.PostRegister)
	router.Get(`/js/*`, myRouter.GetStaticAsset)

	router.Group(func(protected chi.Router) {
		protected.Use(theAuth.AuthenticateUser)
		protected.Get(`/users`, myRouter.GetUsers)
		protected.Handle(`/songsearch`, http.HandlerFunc(myRouter.Songsearch))
		protected.Get(`/music`, myRouter.GetMusic)
		protected.Get(`/reviews`, myRouter.GetReviews)
		protected.Post(`/submitReview`, myRouter.PostSubmitreview)
	})

	return router, nil
}

// GetPing reports storage health.
func (theRouter *Router) GetPing(res http.ResponseWriter, req *http.Request) {
	if err := theRouter.service.Ping(req.Context()); err != nil {
		logger.Log.Debugln("Error calling the `theRouter.service.Ping()`: ", zap.Error(err))
		res.WriteHeader(http.StatusInternalServerError)
		return
	}

	res.WriteHeader(http.StatusOK)
}

// GetRegisterhtml serves the static registration form.
func (theRouter *Router) GetRegisterhtml(res http.ResponseWriter, req *http.Request) {
	http.ServeFile(res, req, filepath.Join(theRouter.assetsDir, "register.html"))
}

// GetStaticAsset serves the client-side scripts under /js/.
func (theRouter *Router) GetStaticAsset(res http.ResponseWriter, req *http.Request) {
	http.StripPrefix(
		"/js/",
		http.FileServer(http.Dir(filepath.Join(theRouter.assetsDir, "js"))),
	).ServeHTTP(res, req)
}

// PostRegister creates a new guest user from the form fields.
// Both missing fields and storage failures yield the same 500 error page
// the original produced.
func (theRouter *Router) PostRegister(res http.ResponseWriter, req *http.Request) {
	if err := req.ParseForm(); err != nil {
		theRouter.sendRegistrationError(res, err)
		return
	}

	request := models.RegisterRequest{
		UserID:   req.FormValue("userid"),
		Password: req.FormValue("password"),
	}
	if err := theRouter.validate.Struct(request); err != nil {
		theRouter.sendRegistrationError(res, err)
		return
	}

	if err := theRouter.service.RegisterUser(req.Context(), request.UserID, request.Password); err != nil {
		theRouter.sendRegistrationError(res, err)
		return
	}

	res.Header().Set("Content-Type", "text/html")
	res.WriteHeader(http.StatusOK)
	_, _ = res.Write([]byte("<h2>User registered successfully</h2>"))
}

func (theRouter *Router) sendRegistrationError(res http.ResponseWriter, err error) {
	logger.Log.Debugln("Error registering user: ", zap.Error(err))
	res.Header().Set("Content-Type", "text/html")
	res.WriteHeader(http.StatusInternalServerError)
	_, _ = res.Write([]byte("<h2>Error registering user</h2>"))
}

// GetUsers renders the user list for admins. The admin gate is a content
// check, not a transport one: non-admins get a 200 with an inline error,
// matching the original behavior.
func (theRouter *Router) GetUsers(res http.ResponseWriter, req *http.Request) {
	res.Header().Set("Content-Type", "text/html")

	if err := auth.RequireRole(req.Context(), user.RoleAdmin); err != nil {
		res.WriteHeader(http.StatusOK)
		_, _ = res.Write([]byte("<h2>ERROR: Admin Privileges Required To See Users</h2>"))
		return
	}

	users, err := theRouter.service.GetUsers(req.Context())
	if err != nil {
		logger.Log.Debugln("Error calling the `theRouter.service.GetUsers()`: ", zap.Error(err))
		res.WriteHeader(http.StatusInternalServerError)
		_, _ = res.Write([]byte("<h2>Error retrieving users</h2>"))
		return
	}

	res.WriteHeader(http.StatusOK)
	if err := theRouter.usersTemplate.Execute(res, users); err != nil {
		logger.Log.Debugln("Error rendering the user list: ", zap.Error(err))
	}
}

// Songsearch serves the static song-search page for any method.
func (theRouter *Router) Songsearch(res http.ResponseWriter, req *http.Request) {
	http.ServeFile(res, req, filepath.Join(theRouter.assetsDir, "songsearch.html"))
}

// GetMusic proxies a title query to the music catalog and returns the
// response envelope as JSON. An empty title short-circuits with a prompt
// instead of contacting the catalog.
func (theRouter *Router) GetMusic(res http.ResponseWriter, req *http.Request) {
	title := req.URL.Query().Get("title")
	if title == "" {
		writeJSON(res, http.StatusOK, models.MessageResponse{Message: "Please enter a song name"})
		return
	}

	result, err := theRouter.service.SearchSongs(req.Context(), title)
	if err != nil {
		logger.Log.Debugln("Error calling the `theRouter.service.SearchSongs()`: ", zap.Error(err))
		writeJSON(res, http.StatusBadGateway, models.MessageResponse{Message: "Error searching the music catalog"})
		return
	}

	writeJSON(res, http.StatusOK, result)
}

type reviewsPageData struct {
	SongName string
	Reviews  []models.Review
}

// GetReviews renders the reviews page for a song.
func (theRouter *Router) GetReviews(res http.ResponseWriter, req *http.Request) {
	songName := req.URL.Query().Get("song")

	reviews, err := theRouter.service.GetSongReviews(req.Context(), songName)
	if err != nil {
		logger.Log.Debugln("Error calling the `theRouter.service.GetSongReviews()`: ", zap.Error(err))
		res.Header().Set("Content-Type", "text/html")
		_, _ = res.Write([]byte("Error retrieving reviews"))
		return
	}

	res.Header().Set("Content-Type", "text/html")
	err = theRouter.reviewsTemplate.Execute(res, reviewsPageData{
		SongName: songName,
		Reviews:  reviews,
	})
	if err != nil {
		logger.Log.Debugln("Error rendering the reviews page: ", zap.Error(err))
	}
}

// PostSubmitreview stores a review and redirects to the reviews page of
// the song. The user_id form field is trusted as-is.
func (theRouter *Router) PostSubmitreview(res http.ResponseWriter, req *http.Request) {
	if err := req.ParseForm(); err != nil {
		res.Header().Set("Content-Type", "text/html")
		_, _ = res.Write([]byte("Error submitting review"))
		return
	}

	songName := req.FormValue("songName")
	userID := req.FormValue("userId")
	reviewText := req.FormValue("reviewText")

	if err := theRouter.service.SubmitReview(req.Context(), songName, userID, reviewText); err != nil {
		logger.Log.Debugln("Error calling the `theRouter.service.SubmitReview()`: ", zap.Error(err))
		res.Header().Set("Content-Type", "text/html")
		_, _ = res.Write([]byte("Error submitting review"))
		return
	}

	http.Redirect(res, req, "/reviews?song="+url.QueryEscape(songName), http.StatusFound)
}

func writeJSON(res http.ResponseWriter, status int, value interface{}) {
	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(status)
	if err := json.NewEncoder(res).Encode(value); err != nil {
		logger.Log.Debugln("Error encoding the JSON response: ", zap.Error(err))
	}
}
