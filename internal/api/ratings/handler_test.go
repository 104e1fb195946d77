package ratings_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"fictionhub/database"
	"fictionhub/internal/api/ratings"
	"fictionhub/internal/domain/fiction"
	"fictionhub/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(userID uint, username string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != 0 {
			c.Set("user_id", userID)
			c.Set("username", username)
		}
		c.Next()
	})
	r.GET("/ratings", ratings.List)
	r.POST("/ratings", ratings.Create)
	r.DELETE("/ratings/:id", ratings.Delete)
	r.GET("/ratings/chapter/:chapterID", ratings.ByChapter)
	r.GET("/ratings/story/:storyID/average", ratings.ByStory)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateRating(t *testing.T) {
	database.DB = testutil.NewDB(t)
	author := testutil.SeedUser(t, database.DB, "author")
	reader := testutil.SeedUser(t, database.DB, "reader")
	story := testutil.SeedStory(t, database.DB, author.ID, "Dragons")
	ch := testutil.SeedChapter(t, database.DB, story.ID, 1)

	r := newRouter(reader.ID, reader.Username)
	w := doJSON(t, r, http.MethodPost, "/ratings", gin.H{"chapter": ch.ID, "value": 3})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var got ratings.RatingDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "reader", got.Author)
	assert.EqualValues(t, 3, got.Value)
}

// Resubmitting a rating for the same chapter replaces the stored value instead
// of inserting a duplicate or surfacing a conflict.
func TestCreateRating_ResubmitReplaces(t *testing.T) {
	database.DB = testutil.NewDB(t)
	author := testutil.SeedUser(t, database.DB, "author")
	reader := testutil.SeedUser(t, database.DB, "reader")
	story := testutil.SeedStory(t, database.DB, author.ID, "Dragons")
	ch := testutil.SeedChapter(t, database.DB, story.ID, 1)

	r := newRouter(reader.ID, reader.Username)

	w := doJSON(t, r, http.MethodPost, "/ratings", gin.H{"chapter": ch.ID, "value": 3})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/ratings", gin.H{"chapter": ch.ID, "value": 5})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var stored []fiction.Rating
	require.NoError(t, database.DB.
		Where("author_id = ? AND chapter_id = ?", reader.ID, ch.ID).
		Find(&stored).Error)
	require.Len(t, stored, 1)
	assert.EqualValues(t, 5, stored[0].Value)
}

func TestCreateRating_ZeroIsAValidValue(t *testing.T) {
	database.DB = testutil.NewDB(t)
	author := testutil.SeedUser(t, database.DB, "author")
	reader := testutil.SeedUser(t, database.DB, "reader")
	story := testutil.SeedStory(t, database.DB, author.ID, "Dragons")
	ch := testutil.SeedChapter(t, database.DB, story.ID, 1)

	r := newRouter(reader.ID, reader.Username)
	w := doJSON(t, r, http.MethodPost, "/ratings", gin.H{"chapter": ch.ID, "value": 0})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestCreateRating_UnknownChapter(t *testing.T) {
	database.DB = testutil.NewDB(t)
	reader := testutil.SeedUser(t, database.DB, "reader")

	r := newRouter(reader.ID, reader.Username)
	w := doJSON(t, r, http.MethodPost, "/ratings", gin.H{"chapter": 9999, "value": 3})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateRating_Anonymous(t *testing.T) {
	database.DB = testutil.NewDB(t)

	r := newRouter(0, "")
	w := doJSON(t, r, http.MethodPost, "/ratings", gin.H{"chapter": 1, "value": 3})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDeleteRating_SelfOwnershipOnly(t *testing.T) {
	database.DB = testutil.NewDB(t)
	author := testutil.SeedUser(t, database.DB, "author")
	reader := testutil.SeedUser(t, database.DB, "reader")
	story := testutil.SeedStory(t, database.DB, author.ID, "Dragons")
	ch := testutil.SeedChapter(t, database.DB, story.ID, 1)
	rating := testutil.SeedRating(t, database.DB, ch.ID, reader.ID, 4)

	// even the story author may not delete someone else's rating
	r := newRouter(author.ID, author.Username)
	w := doJSON(t, r, http.MethodDelete, "/ratings/"+strconv.FormatUint(uint64(rating.ID), 10), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	r = newRouter(reader.ID, reader.Username)
	w = doJSON(t, r, http.MethodDelete, "/ratings/"+strconv.FormatUint(uint64(rating.ID), 10), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestAverageEndpoints(t *testing.T) {
	database.DB = testutil.NewDB(t)
	author := testutil.SeedUser(t, database.DB, "author")
	r1 := testutil.SeedUser(t, database.DB, "r1")
	r2 := testutil.SeedUser(t, database.DB, "r2")
	story := testutil.SeedStory(t, database.DB, author.ID, "Dragons")
	chA := testutil.SeedChapter(t, database.DB, story.ID, 1)
	chB := testutil.SeedChapter(t, database.DB, story.ID, 2)
	testutil.SeedRating(t, database.DB, chA.ID, r1.ID, 5)
	testutil.SeedRating(t, database.DB, chA.ID, r2.ID, 5)
	testutil.SeedRating(t, database.DB, chB.ID, r1.ID, 1)

	r := newRouter(0, "")

	t.Run("chapter average", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/ratings/chapter/"+strconv.FormatUint(uint64(chA.ID), 10), nil)
		require.Equal(t, http.StatusOK, w.Code)
		var got struct {
			AverageRating float64 `json:"average_rating"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.InDelta(t, 5.0, got.AverageRating, 1e-9)
	})

	t.Run("story average over the union of ratings", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/ratings/story/"+strconv.FormatUint(uint64(story.ID), 10)+"/average", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var got struct {
			AverageRating float64 `json:"average_rating"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.InDelta(t, 11.0/3.0, got.AverageRating, 1e-9)
	})

	t.Run("empty population is zero", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/ratings/chapter/9999", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var got struct {
			AverageRating float64 `json:"average_rating"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, 0.0, got.AverageRating)
	})
}
