package examples

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"time"

	"github.com/patric-chuzhbe/songhub/internal/auth"
	"github.com/patric-chuzhbe/songhub/internal/catalog"
	"github.com/patric-chuzhbe/songhub/internal/db/memorystorage"
	"github.com/patric-chuzhbe/songhub/internal/logger"
	"github.com/patric-chuzhbe/songhub/internal/router"
	"github.com/patric-chuzhbe/songhub/internal/service"
	"github.com/patric-chuzhbe/songhub/internal/user"
)

const fakeCatalogResponse = `{
	"resultCount": 1,
	"results": [
		{"trackName": "Yesterday", "artistName": "The Beatles"}
	]
}`

func basicAuthHeader(userid, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(userid+":"+password))
}

func setupTestRouter() *httptest.Server {
	if err := logger.Init("error"); err != nil {
		panic(err)
	}

	db, err := memorystorage.New()
	if err != nil {
		panic(err)
	}

	ctx := context.Background()
	if err := db.CreateUser(ctx, &user.User{UserID: "ahmed", Password: "secret", Role: user.RoleAdmin}); err != nil {
		panic(err)
	}
	if err := db.CreateUser(ctx, &user.User{UserID: "guest", Password: "secret2", Role: user.RoleGuest}); err != nil {
		panic(err)
	}

	upstream := httptest.NewServer(http.HandlerFunc(func(res http.ResponseWriter, req *http.Request) {
		res.Header().Set("Content-Type", "text/javascript; charset=utf-8")
		_, _ = res.Write([]byte(fakeCatalogResponse))
	}))

	theRouter, err := router.New(
		service.New(db, catalog.New(upstream.URL, 3, 5*time.Second)),
		auth.New(db),
		"../../public",
	)
	if err != nil {
		panic(err)
	}

	return httptest.NewServer(theRouter)
}

func ExampleRouter_GetMusic() {
	server := setupTestRouter()
	defer server.Close()

	req, err := http.NewRequest(http.MethodGet, server.URL+"/music?title=", nil)
	if err != nil {
		panic(err)
	}
	req.Header.Set("Authorization", basicAuthHeader("guest", "secret2"))

	client := &http.Client{}

	resp, err := client.Do(req)
	if err != nil {
		panic(err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		panic(err)
	}

	fmt.Println("Status Code:", resp.StatusCode)
	fmt.Println("Body:", strings.TrimSpace(string(b)))

	// Output:
	// Status Code: 200
	// Body: {"message":"Please enter a song name"}
}

func ExampleRouter_PostRegister() {
	server := setupTestRouter()
	defer server.Close()

	form := url.Values{}
	form.Set("userid", "newbie")
	form.Set("password", "pw")

	resp, err := http.PostForm(server.URL+"/register", form)
	if err != nil {
		panic(err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		panic(err)
	}

	fmt.Println("Status Code:", resp.StatusCode)
	fmt.Println("Body:", string(b))

	// Output:
	// Status Code: 200
	// Body: <h2>User registered successfully</h2>
}

func ExampleRouter_GetUsers() {
	server := setupTestRouter()
	defer server.Close()

	req, err := http.NewRequest(http.MethodGet, server.URL+"/users", nil)
	if err != nil {
		panic(err)
	}
	req.Header.Set("Authorization", basicAuthHeader("guest", "secret2"))

	client := &http.Client{}

	resp, err := client.Do(req)
	if err != nil {
		panic(err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		panic(err)
	}

	fmt.Println("Status Code:", resp.StatusCode)
	fmt.Println("Admin gate triggered:", strings.Contains(string(b), "Admin Privileges Required"))

	// Output:
	// Status Code: 200
	// Admin gate triggered: true
}

func ExampleRouter_PostSubmitreview() {
	server := setupTestRouter()
	defer server.Close()

	form := url.Values{}
	form.Set("songName", "Yesterday")
	form.Set("userId", "guest")
	form.Set("reviewText", "great")

	req, err := http.NewRequest(http.MethodPost, server.URL+"/submitReview", strings.NewReader(form.Encode()))
	if err != nil {
		panic(err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", basicAuthHeader("guest", "secret2"))

	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			// Returning http.ErrUseLastResponse tells the client to not follow redirects
			return http.ErrUseLastResponse
		},
	}

	resp, err := client.Do(req)
	if err != nil {
		panic(err)
	}
	defer resp.Body.Close()
	_, _ = io.ReadAll(resp.Body)

	fmt.Println("Status Code:", resp.StatusCode)
	fmt.Println("Location:", resp.Header.Get("Location"))

	// Output:
	// Status Code: 302
	// Location: /reviews?song=Yesterday
}
