package auth_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"fictionhub/config"
	"fictionhub/database"
	"fictionhub/internal/api/auth"
	"fictionhub/internal/app/http/middleware"
	"fictionhub/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/register", auth.Register)
	r.POST("/login", auth.Login)
	r.GET("/me", middleware.AuthMiddleware(), auth.Me)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type authResponse struct {
	Access string `json:"access"`
	User   struct {
		ID       uint   `json:"id"`
		Username string `json:"username"`
	} `json:"user"`
}

func TestRegisterLoginMe(t *testing.T) {
	config.JWT_SECRET = "test-secret"
	database.DB = testutil.NewDB(t)
	r := newRouter()

	w := doJSON(t, r, http.MethodPost, "/register", gin.H{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "sekret123",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var reg authResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reg))
	assert.NotEmpty(t, reg.Access)
	assert.Equal(t, "alice", reg.User.Username)

	w = doJSON(t, r, http.MethodPost, "/login", gin.H{
		"username": "alice",
		"password": "sekret123",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var login authResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	require.NotEmpty(t, login.Access)

	w = doJSON(t, r, http.MethodGet, "/me", nil, login.Access)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"username":"alice"`)
	// the password hash never leaves the server
	assert.NotContains(t, w.Body.String(), "password")
}

func TestRegister_Validation(t *testing.T) {
	config.JWT_SECRET = "test-secret"
	database.DB = testutil.NewDB(t)
	r := newRouter()

	t.Run("weak password", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/register", gin.H{
			"username": "bob",
			"password": "short",
		}, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("bad username", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/register", gin.H{
			"username": "x",
			"password": "sekret123",
		}, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("duplicate username", func(t *testing.T) {
		body := gin.H{"username": "carol", "password": "sekret123"}
		w := doJSON(t, r, http.MethodPost, "/register", body, "")
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = doJSON(t, r, http.MethodPost, "/register", body, "")
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestLogin_WrongCredentials(t *testing.T) {
	config.JWT_SECRET = "test-secret"
	database.DB = testutil.NewDB(t)
	r := newRouter()

	w := doJSON(t, r, http.MethodPost, "/register", gin.H{
		"username": "dave",
		"password": "sekret123",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/login", gin.H{
		"username": "dave",
		"password": "wrongpass1",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/login", gin.H{
		"username": "nobody",
		"password": "sekret123",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
