package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mindfulware/therabot/internal/domain"
	"github.com/mindfulware/therabot/internal/emotion"
	"github.com/mindfulware/therabot/internal/knowledge"
	"github.com/mindfulware/therabot/internal/repository"
	"github.com/mindfulware/therabot/internal/retrieval"
	"github.com/mindfulware/therabot/internal/service"
)

type scriptedGenerator struct {
	text string
}

func (g *scriptedGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return g.text, nil
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	db, err := repository.NewDB(filepath.Join(dir, "therabot.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	userRepo := repository.NewUserRepository(db)
	authRepo := repository.NewAuthRepository(db)
	chatRepo := repository.NewChatRepository(db)
	journalRepo := repository.NewJournalRepository(db)

	// An unreachable embedder keeps retrieval on its placeholder path,
	// which is exactly what the endpoints must survive.
	embedder := retrieval.NewOllamaEmbedder("http://127.0.0.1:1", "nomic-embed-text")
	classifier := emotion.NewClassifier(nil, nil)
	loader := knowledge.NewLoader(filepath.Join(dir, "kb.json"), nil)
	retriever := retrieval.NewRetriever(embedder, 0.3, nil)
	response := service.NewResponseService(&scriptedGenerator{text: "I'm here with you 💙"}, 1, time.Millisecond, nil)
	responder := service.NewResponder(classifier, loader, retriever, embedder, response, 1, nil)

	authService := service.NewAuthService(userRepo, authRepo, time.Hour)
	chatService := service.NewChatService(chatRepo, responder, nil)
	journalService := service.NewJournalService(journalRepo)

	return SetupRouter(authService, chatService, journalService, RouterConfig{})
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
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

func signupTestUser(t *testing.T, r *gin.Engine, username string) string {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/auth/signup", "", gin.H{
		"username": username, "password": "secret123",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("signup status = %d, body %s", w.Code, w.Body.String())
	}
	var resp domain.AuthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode signup response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("signup returned no token")
	}
	return resp.Token
}

func TestHealthEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestSignupAndLogin(t *testing.T) {
	r := newTestRouter(t)
	signupTestUser(t, r, "alex")

	// Duplicate username is rejected.
	w := doJSON(t, r, http.MethodPost, "/api/auth/signup", "", gin.H{
		"username": "alex", "password": "other",
	})
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate signup status = %d, want 409", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "alex", "password": "secret123",
	})
	if w.Code != http.StatusOK {
		t.Errorf("login status = %d, body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "alex", "password": "wrong",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bad login status = %d, want 401", w.Code)
	}
}

func TestChatRequiresSession(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/chat", "", gin.H{"message": "hello"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestChatEndpoint(t *testing.T) {
	r := newTestRouter(t)
	token := signupTestUser(t, r, "alex")

	w := doJSON(t, r, http.MethodPost, "/api/chat", token, gin.H{
		"message": "I feel so anxious about work",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var resp domain.ChatResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.BotReply == "" {
		t.Error("empty bot reply")
	}
	if resp.Emotion != domain.EmotionWorried {
		t.Errorf("emotion = %s, want worried", resp.Emotion)
	}
	if !resp.PlayRain {
		t.Error("expected play_rain for an anxious message")
	}

	// Both turns land in history.
	w = doJSON(t, r, http.MethodGet, "/api/chat/history", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("history status = %d", w.Code)
	}
	var messages []*domain.ChatMessage
	if err := json.Unmarshal(w.Body.Bytes(), &messages); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("history has %d messages, want 2", len(messages))
	}
	if messages[0].Sender != "user" || messages[1].Sender != "bot" {
		t.Errorf("unexpected sender order: %s, %s", messages[0].Sender, messages[1].Sender)
	}
}

func TestHiddenChatMessageNotPersisted(t *testing.T) {
	r := newTestRouter(t)
	token := signupTestUser(t, r, "alex")

	w := doJSON(t, r, http.MethodPost, "/api/chat", token, gin.H{
		"message": "hello there",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("chat status = %d", w.Code)
	}

	// A hidden turn still produces a reply but leaves history alone.
	w = doJSON(t, r, http.MethodPost, "/api/chat", token, gin.H{
		"message": "feeling happy", "hidden": true,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("hidden chat status = %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/chat/history", token, nil)
	var messages []*domain.ChatMessage
	if err := json.Unmarshal(w.Body.Bytes(), &messages); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("history has %d messages, want 2", len(messages))
	}
}

func TestChatHistoryGreetsNewUser(t *testing.T) {
	r := newTestRouter(t)
	token := signupTestUser(t, r, "alex")

	w := doJSON(t, r, http.MethodGet, "/api/chat/history", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var messages []*domain.ChatMessage
	if err := json.Unmarshal(w.Body.Bytes(), &messages); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(messages) != 1 {
		t.Fatalf("got %d messages, want the greeting", len(messages))
	}
	if messages[0].Sender != "bot" {
		t.Errorf("greeting sender = %s", messages[0].Sender)
	}

	// The greeting is persisted, not re-generated per call.
	w = doJSON(t, r, http.MethodGet, "/api/chat/history", token, nil)
	if err := json.Unmarshal(w.Body.Bytes(), &messages); err != nil {
		t.Fatalf("decode second history: %v", err)
	}
	if len(messages) != 1 {
		t.Fatalf("got %d messages after second call, want 1", len(messages))
	}
}

func TestJournalEndpoints(t *testing.T) {
	r := newTestRouter(t)
	token := signupTestUser(t, r, "alex")
	const date = "2025-06-01"

	// Empty template before anything is saved.
	w := doJSON(t, r, http.MethodGet, "/api/journal/entry/"+date, token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}
	var got struct {
		Content string `json:"content"`
		IsNew   bool   `json:"is_new"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !got.IsNew || got.Content != "" {
		t.Fatalf("expected empty template, got %+v", got)
	}

	w = doJSON(t, r, http.MethodPost, "/api/journal/entry/"+date, token, gin.H{
		"content": "Slept well for once.", "mood": "happy",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("save status = %d, body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/api/journal/entries", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	var list []*domain.JournalEntrySummary
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 1 || list[0].Date != date {
		t.Fatalf("list = %+v", list)
	}

	w = doJSON(t, r, http.MethodDelete, "/api/journal/entry/"+date, token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d", w.Code)
	}
	w = doJSON(t, r, http.MethodDelete, "/api/journal/entry/"+date, token, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d, want 404", w.Code)
	}
}

func TestJournalRejectsBadDate(t *testing.T) {
	r := newTestRouter(t)
	token := signupTestUser(t, r, "alex")

	w := doJSON(t, r, http.MethodGet, "/api/journal/entry/june-first", token, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestSessionCookieAccepted(t *testing.T) {
	r := newTestRouter(t)
	token := signupTestUser(t, r, "alex")

	req := httptest.NewRequest(http.MethodGet, "/api/chat/history", nil)
	req.AddCookie(&http.Cookie{Name: "session_token", Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	r := newTestRouter(t)
	token := signupTestUser(t, r, "alex")

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: "session_token", Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("logout status = %d", w.Code)
	}

	w2 := doJSON(t, r, http.MethodGet, "/api/chat/history", token, nil)
	if w2.Code != http.StatusUnauthorized {
		t.Fatalf("status after logout = %d, want 401", w2.Code)
	}
}
