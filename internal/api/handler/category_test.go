package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
)

func TestCategoryHandler_Create_Success(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/categories", "u1",
		`{"name":"  Comedy  ","emoji":"😂","color":"bg-red-500","is_locked":true,"pin":"1234"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusCreated)
	}

	var resp CategoryResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Name != "Comedy" {
		t.Errorf("Name = %q, want Comedy", resp.Name)
	}
	if resp.ID == "" {
		t.Error("expected an id")
	}
	if !resp.IsLocked {
		t.Error("expected is_locked true")
	}
}

func TestCategoryHandler_Create_DoesNotEchoPIN(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/categories", "u1",
		`{"name":"Locked","is_locked":true,"pin":"9999"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusCreated)
	}
	if strings.Contains(w.Body.String(), "9999") {
		t.Errorf("response leaks the PIN: %s", w.Body.String())
	}
}

func TestCategoryHandler_Create_EmptyName(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/categories", "u1", `{"name":"   "}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestCategoryHandler_Create_InvalidJSON(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/categories", "u1", "invalid json")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestCategoryHandler_List_ScopedToUser(t *testing.T) {
	env := newTestEnv(t)

	if w := env.do(http.MethodPost, "/categories", "u1", `{"name":"Mine"}`); w.Code != http.StatusCreated {
		t.Fatalf("create failed: %d", w.Code)
	}

	w := env.do(http.MethodGet, "/categories", "u1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	var resp CategoryListResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Total != 1 || len(resp.Categories) != 1 {
		t.Errorf("expected one category, got %+v", resp)
	}

	other := env.do(http.MethodGet, "/categories", "u2", "")
	var otherResp CategoryListResponse
	if err := json.NewDecoder(other.Body).Decode(&otherResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if otherResp.Total != 0 {
		t.Errorf("expected no categories for another user, got %d", otherResp.Total)
	}
}

func TestCategoryHandler_Update(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/categories", "u1", `{"name":"Old","emoji":"😂"}`)
	var created CategoryResponse
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	w = env.do(http.MethodPut, "/categories/"+created.ID, "u1", `{"name":"New"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	var updated CategoryResponse
	if err := json.NewDecoder(w.Body).Decode(&updated); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if updated.Name != "New" || updated.Emoji != "😂" {
		t.Errorf("unexpected update result: %+v", updated)
	}
}

func TestCategoryHandler_Update_NotFound(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPut, "/categories/missing", "u1", `{"name":"x"}`)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestCategoryHandler_Update_OtherUsersCategory(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/categories", "u1", `{"name":"Private"}`)
	var created CategoryResponse
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	w = env.do(http.MethodPut, "/categories/"+created.ID, "u2", `{"name":"Stolen"}`)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestCategoryHandler_Delete(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/categories", "u1", `{"name":"Doomed"}`)
	var created CategoryResponse
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	w = env.do(http.MethodDelete, "/categories/"+created.ID, "u1", "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNoContent)
	}

	w = env.do(http.MethodDelete, "/categories/"+created.ID, "u1", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestCategoryHandler_MissingUserHeader(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/categories", "", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}
