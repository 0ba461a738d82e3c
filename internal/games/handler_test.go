package games_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/juegoteca/backend/internal/games"
	"github.com/juegoteca/backend/internal/reviews"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	gin.EnableJsonDecoderDisallowUnknownFields()
	os.Exit(m.Run())
}

type testAPI struct {
	engine    *gin.Engine
	gameRepo  *games.MemoryRepository
	reviewSvc *reviews.Service
}

func newTestAPI() *testAPI {
	gameRepo := games.NewMemoryRepository()
	gameSvc := games.NewService(gameRepo)
	reviewSvc := reviews.NewService(reviews.NewMemoryRepository(), gameSvc)

	g := gin.New()
	api := g.Group("/api")
	games.RegisterRoutes(api, gameSvc, reviewSvc, nil)
	reviews.RegisterRoutes(api, reviewSvc)
	return &testAPI{engine: g, gameRepo: gameRepo, reviewSvc: reviewSvc}
}

func (a *testAPI) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func TestCreateGameValidation(t *testing.T) {
	a := newTestAPI()

	// title missing
	w := a.do(t, http.MethodPost, "/api/juegos", `{"platform":"PC"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body["error"])

	// rating out of range
	w = a.do(t, http.MethodPost, "/api/juegos", `{"title":"Celeste","rating":6}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// unknown fields are rejected rather than merged
	w = a.do(t, http.MethodPost, "/api/juegos", `{"title":"Celeste","publisher":"EA"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateGameRoundTripWithDefaults(t *testing.T) {
	a := newTestAPI()

	w := a.do(t, http.MethodPost, "/api/juegos", `{"title":"Celeste","platform":"Switch","genre":"platformer"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var created games.Game
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.False(t, created.ID.IsZero())
	require.Equal(t, "Celeste", created.Title)
	require.False(t, created.Completed)
	require.Equal(t, float64(0), created.Rating)
	require.Equal(t, float64(0), created.HoursPlayed)
	require.False(t, created.DateAdded.IsZero())

	w = a.do(t, http.MethodGet, "/api/juegos/"+created.ID.Hex(), "")
	require.Equal(t, http.StatusOK, w.Code)
	var fetched games.Game
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	require.Equal(t, created.ID, fetched.ID)
	require.Equal(t, "Switch", fetched.Platform)
	require.Equal(t, "platformer", fetched.Genre)
}

func TestGetGameNotFound(t *testing.T) {
	a := newTestAPI()
	w := a.do(t, http.MethodGet, "/api/juegos/"+primitive.NewObjectID().Hex(), "")
	require.Equal(t, http.StatusNotFound, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body["error"])
}

func TestListGamesNewestFirst(t *testing.T) {
	a := newTestAPI()
	ctx := context.Background()

	base := time.Now().UTC()
	for i, title := range []string{"oldest", "middle", "newest"} {
		_, err := a.gameRepo.Create(ctx, &games.Game{Title: title, DateAdded: base.Add(time.Duration(i) * time.Hour)})
		require.NoError(t, err)
	}

	w := a.do(t, http.MethodGet, "/api/juegos", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []games.Game
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 3)
	require.Equal(t, "newest", list[0].Title)
	require.Equal(t, "middle", list[1].Title)
	require.Equal(t, "oldest", list[2].Title)
}

func TestUpdateGame(t *testing.T) {
	a := newTestAPI()

	w := a.do(t, http.MethodPost, "/api/juegos", `{"title":"Outer Wilds"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var created games.Game
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = a.do(t, http.MethodPut, "/api/juegos/"+created.ID.Hex(), `{"rating":4.5,"completed":true}`)
	require.Equal(t, http.StatusOK, w.Code)
	var updated games.Game
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	require.Equal(t, 4.5, updated.Rating)
	require.True(t, updated.Completed)
	require.Equal(t, "Outer Wilds", updated.Title)

	// validation failure
	w = a.do(t, http.MethodPut, "/api/juegos/"+created.ID.Hex(), `{"rating":6}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// unknown id
	w = a.do(t, http.MethodPut, "/api/juegos/"+primitive.NewObjectID().Hex(), `{"rating":3}`)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteGameCascadesReviews(t *testing.T) {
	a := newTestAPI()
	ctx := context.Background()

	w := a.do(t, http.MethodPost, "/api/juegos", `{"title":"Bloodborne"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var g games.Game
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &g))
	id := g.ID.Hex()

	otherID := primitive.NewObjectID().Hex()
	for _, in := range []*reviews.CreateInput{
		{GameID: id, Content: "brutal but fair"},
		{GameID: id, Content: "lovecraft with swords"},
		{GameID: otherID, Content: "not about this game"},
	} {
		_, err := a.reviewSvc.Create(ctx, in)
		require.NoError(t, err)
	}

	w = a.do(t, http.MethodDelete, "/api/juegos/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	var res map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.NotEmpty(t, res["message"])
	require.Equal(t, float64(2), res["reviewsDeleted"])

	w = a.do(t, http.MethodGet, "/api/resenas/juego/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	var remaining []reviews.Review
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &remaining))
	require.Empty(t, remaining)

	// the unrelated review survives
	others, err := a.reviewSvc.ListByGame(ctx, otherID)
	require.NoError(t, err)
	require.Len(t, others, 1)
}

type failingPurger struct{}

func (failingPurger) DeleteByGame(ctx context.Context, gameID string) (int64, error) {
	return 0, errors.New("resenas collection unavailable")
}

func TestDeleteGamePartialWhenPurgeFails(t *testing.T) {
	gameSvc := games.NewService(games.NewMemoryRepository())
	g := gin.New()
	games.RegisterRoutes(g.Group("/api"), gameSvc, failingPurger{}, nil)

	created, err := gameSvc.Create(context.Background(), &games.CreateInput{Title: "Dark Souls"})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/juegos/"+created.ID.Hex(), nil))
	require.Equal(t, http.StatusOK, w.Code)

	var res map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Equal(t, true, res["partial"])
	require.Equal(t, float64(0), res["reviewsDeleted"])
	require.NotEmpty(t, res["message"])
	require.NotEmpty(t, res["error"])

	// the game itself is gone despite the failed purge
	_, err = gameSvc.Get(context.Background(), created.ID.Hex())
	require.ErrorIs(t, err, games.ErrNotFound)
}

func TestDeleteGameTwice(t *testing.T) {
	a := newTestAPI()

	w := a.do(t, http.MethodPost, "/api/juegos", `{"title":"Tetris"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var g games.Game
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &g))

	w = a.do(t, http.MethodDelete, "/api/juegos/"+g.ID.Hex(), "")
	require.Equal(t, http.StatusOK, w.Code)
	w = a.do(t, http.MethodDelete, "/api/juegos/"+g.ID.Hex(), "")
	require.Equal(t, http.StatusNotFound, w.Code)
}
