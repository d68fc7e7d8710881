package integrationtests

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	auction "auction-marketplace/internal/auctionService"
	auth "auction-marketplace/internal/authService"
	bidding "auction-marketplace/internal/biddingService"
	"auction-marketplace/internal/cache"
	"auction-marketplace/internal/repository"
	"auction-marketplace/internal/seed"
	"auction-marketplace/internal/server"
	"auction-marketplace/internal/testutil"
	users "auction-marketplace/internal/userService"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	adminEmail    = "admin@auction.com"
	adminPassword = "admin123"
	userEmail     = "user@example.com"
	userPassword  = "user123"

	// seeded "Vintage Klocka" auction: starting bid 500, bids of 600 and 750 by the test user
	seededAuctionID = 1
)

// SetupTestRouter builds the full application on a seeded in-memory database
func SetupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewTestDB(t)
	repo := repository.NewGormRepo(db)

	_, err := seed.Run(context.Background(), repo, seed.Options{
		AdminEmail:    adminEmail,
		AdminPassword: adminPassword,
	}, time.Now().UTC())
	require.NoError(t, err)

	store := cache.NewMemoryStore()
	router := server.SetupRouter(server.Services{
		DB:       db,
		Bidding:  bidding.NewBiddingService(repo),
		Auctions: auction.NewAuctionService(repo, store, nil),
		Auth:     auth.NewAuthService(repo, "integration-test-secret", time.Hour, cache.NewTokenBlacklist(store)),
		Users:    users.NewUserService(repo),
	}, 1<<20)
	return router, db
}

// ExecuteRequestAndParse executes an HTTP request on the given router and parses the response envelope
func ExecuteRequestAndParse(t *testing.T, router *gin.Engine, method, url, token string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	var reqBody []byte
	var err error

	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	default:
		reqBody, err = json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
	}
	return resp, w
}

// Login returns a bearer token for the given credentials
func Login(t *testing.T, router *gin.Engine, email, password string) string {
	t.Helper()

	resp, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token, _ := resp["data"].(map[string]any)["token"].(string)
	require.NotEmpty(t, token)
	return token
}

// RegisterAndLogin creates a new user and returns a token for it
func RegisterAndLogin(t *testing.T, router *gin.Engine, email, firstName string) string {
	t.Helper()

	_, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/auth/register", "", map[string]string{
		"email":            email,
		"first_name":       firstName,
		"last_name":        "Testsson",
		"password":         "secret1",
		"confirm_password": "secret1",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return Login(t, router, email, "secret1")
}

func data(t *testing.T, resp map[string]any) map[string]any {
	t.Helper()
	d, ok := resp["data"].(map[string]any)
	require.True(t, ok, "response has no data object: %v", resp)
	return d
}

func newFormRequest(t *testing.T, url, token, form string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, url, strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func serve(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func newMultipartRequest(t *testing.T, url, token, field, fileName string, content []byte) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, fileName)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, url, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}
