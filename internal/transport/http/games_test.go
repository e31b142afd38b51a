package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-cpu/internal/config"
	"github.com/iamasit07/connect4-cpu/internal/domain"
	"github.com/iamasit07/connect4-cpu/internal/service/bot"
	"github.com/iamasit07/connect4-cpu/internal/service/game"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	prev := config.AppConfig
	config.AppConfig = &config.Config{JWTSecret: "test-secret", GameTokenTTL: time.Hour}
	t.Cleanup(func() { config.AppConfig = prev })

	sessions := game.NewSessionManager(bot.NewService(game.BotPlayer, nil, 0))
	sessions.MaxDepth = 4
	handler := NewGameHandler(game.NewService(sessions), "easy")
	return NewRouter(handler, nil, []string{"http://allowed.test"})
}

func doJSON(router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func createGame(t *testing.T, router *gin.Engine, body any) createGameResponse {
	t.Helper()
	rec := doJSON(router, http.MethodPost, "/api/games", "", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create game: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp createGameResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	return resp
}

func TestCreateGameAndMove(t *testing.T) {
	router := newTestRouter(t)
	created := createGame(t, router, nil)

	if created.Token == "" || created.Game.GameID == "" {
		t.Fatalf("expected a game and a token, got %+v", created)
	}
	if created.Game.Difficulty != "easy" || created.Game.Depth != 2 {
		t.Fatalf("expected default easy difficulty, got %+v", created.Game)
	}

	rec := doJSON(router, http.MethodPost, "/api/games/"+created.Game.GameID+"/moves", created.Token, map[string]int{"column": 3})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp moveResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode move response: %v", err)
	}
	if len(resp.Events) != 2 || resp.Events[0].Column == nil || *resp.Events[0].Column != 3 || resp.Events[1].Player != int(game.BotPlayer) {
		t.Fatalf("expected human and bot moves, got %+v", resp.Events)
	}
	if len(resp.Game.Moves) != 2 {
		t.Fatalf("expected 2 logged moves, got %v", resp.Game.Moves)
	}
}

func TestCreateGameCapsRequestedDepth(t *testing.T) {
	router := newTestRouter(t)

	created := createGame(t, router, map[string]any{"depth": 8, "botFirst": true})
	if created.Game.Depth != 4 {
		t.Fatalf("expected depth capped at 4, got %d", created.Game.Depth)
	}
	hard := createGame(t, router, map[string]any{"difficulty": "hard"})
	if hard.Game.Depth != 4 {
		t.Fatalf("expected hard capped at 4, got %d", hard.Game.Depth)
	}
}

func TestMoveRequiresMatchingToken(t *testing.T) {
	router := newTestRouter(t)
	first := createGame(t, router, nil)
	second := createGame(t, router, map[string]any{"difficulty": "hard", "depth": 1})

	path := "/api/games/" + first.Game.GameID + "/moves"
	if rec := doJSON(router, http.MethodPost, path, "", map[string]int{"column": 0}); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
	if rec := doJSON(router, http.MethodPost, path, "garbage", map[string]int{"column": 0}); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for a bad token, got %d", rec.Code)
	}
	if rec := doJSON(router, http.MethodPost, path, second.Token, map[string]int{"column": 0}); rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for another game's token, got %d", rec.Code)
	}
}

func TestMalformedGameID(t *testing.T) {
	router := newTestRouter(t)
	created := createGame(t, router, nil)

	for _, path := range []string{"/api/games/not-a-game", "/api/games/1234/moves"} {
		method := http.MethodGet
		if strings.HasSuffix(path, "/moves") {
			method = http.MethodPost
		}
		if rec := doJSON(router, method, path, created.Token, map[string]int{"column": 0}); rec.Code != http.StatusNotFound {
			t.Fatalf("%s: expected 404, got %d", path, rec.Code)
		}
	}
}

func TestMoveValidation(t *testing.T) {
	router := newTestRouter(t)
	created := createGame(t, router, nil)
	path := "/api/games/" + created.Game.GameID + "/moves"

	if rec := doJSON(router, http.MethodPost, path, created.Token, map[string]string{}); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing column, got %d", rec.Code)
	}
	if rec := doJSON(router, http.MethodPost, path, created.Token, map[string]int{"column": 9}); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for column 9, got %d", rec.Code)
	}
}

func TestBotFirstGame(t *testing.T) {
	router := newTestRouter(t)
	created := createGame(t, router, map[string]any{"botFirst": true})

	if len(created.Events) != 2 || created.Events[1].Type != "move_made" {
		t.Fatalf("expected the bot's opening move, got %+v", created.Events)
	}
	if created.Game.CurrentTurn != int(domain.Player1) || len(created.Game.Moves) != 1 {
		t.Fatalf("expected the human to move next, got %+v", created.Game)
	}
}

func TestGetGameReplayAndDelete(t *testing.T) {
	router := newTestRouter(t)
	created := createGame(t, router, nil)
	base := "/api/games/" + created.Game.GameID

	doJSON(router, http.MethodPost, base+"/moves", created.Token, map[string]int{"column": 0})

	rec := doJSON(router, http.MethodGet, base, created.Token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var view game.GameView
	json.Unmarshal(rec.Body.Bytes(), &view)
	if view.GameID != created.Game.GameID || len(view.Moves) != 2 {
		t.Fatalf("unexpected view %+v", view)
	}

	rec = doJSON(router, http.MethodGet, base+"/replay", created.Token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var replay replayResponse
	json.Unmarshal(rec.Body.Bytes(), &replay)
	if len(replay.Frames) != 2 || len(replay.Moves) != 2 {
		t.Fatalf("expected 2 frames, got %+v", replay)
	}

	rec = doJSON(router, http.MethodGet, "/api/watch", "", nil)
	var live []liveGameResponse
	json.Unmarshal(rec.Body.Bytes(), &live)
	if len(live) != 1 || live[0].MoveCount != 2 {
		t.Fatalf("unexpected live games %+v", live)
	}

	if rec := doJSON(router, http.MethodDelete, base, created.Token, nil); rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if rec := doJSON(router, http.MethodGet, base, created.Token, nil); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestCORS(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/games", nil)
	req.Header.Set("Origin", "http://allowed.test")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || rec.Header().Get("Access-Control-Allow-Origin") != "http://allowed.test" {
		t.Fatalf("expected allowed preflight, got %d %v", rec.Code, rec.Header())
	}

	req = httptest.NewRequest(http.MethodPost, "/api/games", nil)
	req.Header.Set("Origin", "http://evil.test")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for unknown origin, got %d", rec.Code)
	}
}
