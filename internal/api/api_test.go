package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/campusboard/lostfound/internal/account"
	"github.com/campusboard/lostfound/internal/db"
	"github.com/campusboard/lostfound/internal/images"
	"github.com/campusboard/lostfound/internal/model"
	"github.com/campusboard/lostfound/internal/store"
)

const testJWTSecret = "test-secret"

func setupTestServer(t *testing.T) (*httptest.Server, *sql.DB, string) {
	t.Helper()
	database := db.NewTestDB(t)
	imgs, err := images.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	router := NewRouter(database, imgs, testJWTSecret)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	// Seed an admin and log in.
	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	store.CreateAdmin(ctx, database, "reviewer", string(hash))

	body, _ := json.Marshal(map[string]string{"admin_name": "reviewer", "password": "password"})
	resp, err := http.Post(server.URL+"/api/admin/login", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("admin login request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin login failed: %d", resp.StatusCode)
	}

	var loginResp map[string]string
	json.NewDecoder(resp.Body).Decode(&loginResp)
	token := loginResp["token"]
	if token == "" {
		t.Fatal("empty token from admin login")
	}

	return server, database, token
}

func authRequest(method, url, token string, body any) (*http.Request, error) {
	var bodyReader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(data)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func TestAdminLoginEndpoint(t *testing.T) {
	server, _, _ := setupTestServer(t)

	body, _ := json.Marshal(map[string]string{"admin_name": "reviewer", "password": "wrong"})
	resp, _ := http.Post(server.URL+"/api/admin/login", "application/json", bytes.NewReader(body))
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for bad password, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestReviewRequiresAdminToken(t *testing.T) {
	server, _, _ := setupTestServer(t)

	resp, _ := http.Get(server.URL + "/api/review")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 without a token, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestRegisterApproveLoginFlow(t *testing.T) {
	server, database, token := setupTestServer(t)
	ctx := context.Background()

	// Register a member; it lands in the review queue.
	if _, err := account.Register(ctx, database, account.Registration{
		Username: "Alice", Email: "a@x.com", Password: "pw",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	// The queue shows up for the admin.
	req, _ := authRequest("GET", server.URL+"/api/review", token, nil)
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var pending []model.PendingAccount
	json.NewDecoder(resp.Body).Decode(&pending)
	resp.Body.Close()
	if len(pending) != 1 || pending[0].Email != "a@x.com" {
		t.Fatalf("expected Alice in the review queue, got %+v", pending)
	}

	// Approve her.
	req, _ = authRequest("POST", server.URL+"/api/review/passed", token, map[string][]int64{"ids": {pending[0].ID}})
	resp, _ = http.DefaultClient.Do(req)
	var result reviewResult
	json.NewDecoder(resp.Body).Decode(&result)
	resp.Body.Close()
	if !result.Success {
		t.Fatalf("expected success, got %+v", result)
	}

	// She can log in now.
	member, err := account.Login(ctx, database, "a@x.com", "pw")
	if err != nil {
		t.Fatalf("Login after approval: %v", err)
	}
	if member.Username != "Alice" {
		t.Errorf("expected Alice, got %q", member.Username)
	}

	// The queue is empty again.
	req, _ = authRequest("GET", server.URL+"/api/review", token, nil)
	resp, _ = http.DefaultClient.Do(req)
	pending = nil
	json.NewDecoder(resp.Body).Decode(&pending)
	resp.Body.Close()
	if len(pending) != 0 {
		t.Errorf("expected empty queue, got %+v", pending)
	}
}

func TestReviewFailedEndpoint(t *testing.T) {
	server, database, token := setupTestServer(t)
	ctx := context.Background()

	p, _ := account.Register(ctx, database, account.Registration{Username: "Bob", Email: "b@x.com", Password: "pw"})

	// Empty id list is reported as a failure, not an HTTP error.
	req, _ := authRequest("POST", server.URL+"/api/review/failed", token, map[string][]int64{"ids": {}})
	resp, _ := http.DefaultClient.Do(req)
	var result reviewResult
	json.NewDecoder(resp.Body).Decode(&result)
	resp.Body.Close()
	if result.Success {
		t.Error("expected success=false for empty id list")
	}

	// Rejecting removes the pending account without creating a member.
	req, _ = authRequest("POST", server.URL+"/api/review/failed", token, map[string][]int64{"ids": {p.ID}})
	resp, _ = http.DefaultClient.Do(req)
	json.NewDecoder(resp.Body).Decode(&result)
	resp.Body.Close()
	if !result.Success {
		t.Fatalf("expected success, got %+v", result)
	}

	if m, _ := store.GetMemberByEmail(ctx, database, "b@x.com"); m != nil {
		t.Error("reject must not create a member")
	}
}

func TestItemsSearchEndpoint(t *testing.T) {
	server, database, _ := setupTestServer(t)
	ctx := context.Background()

	m, _ := store.CreateMember(ctx, database, "Poster", "p@x.com", "hash", "", "")
	store.CreateLostItem(ctx, database, m.ID, "台中市", "太平區", "library", "2025-06-01", "水壺", "", "")
	store.CreateLostItem(ctx, database, m.ID, "台北市", "大安區", "park", "2025-06-02", "雨傘", "", "")

	resp, _ := http.Get(server.URL + "/api/items")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var items []model.LostItem
	json.NewDecoder(resp.Body).Decode(&items)
	resp.Body.Close()
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}

	resp, _ = http.Get(server.URL + "/api/items?county=" + "%E5%8F%B0%E4%B8%AD%E5%B8%82")
	items = nil
	json.NewDecoder(resp.Body).Decode(&items)
	resp.Body.Close()
	if len(items) != 1 || items[0].County != "台中市" {
		t.Errorf("expected county filter to match 1 item, got %+v", items)
	}
}
