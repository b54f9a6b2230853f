package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
)

func (e *testEnv) createCategory(t *testing.T, userID, name string) CategoryResponse {
	t.Helper()
	w := e.do(http.MethodPost, "/categories", userID, fmt.Sprintf(`{"name":%q}`, name))
	if w.Code != http.StatusCreated {
		t.Fatalf("create category %q failed: %d", name, w.Code)
	}
	var resp CategoryResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	return resp
}

func (e *testEnv) saveVideo(t *testing.T, userID, body string) VideoResponse {
	t.Helper()
	w := e.do(http.MethodPost, "/videos", userID, body)
	if w.Code != http.StatusCreated {
		t.Fatalf("save video failed: %d %s", w.Code, w.Body.String())
	}
	var resp VideoResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestVideoHandler_Save_Success(t *testing.T) {
	env := newTestEnv(t)

	video := env.saveVideo(t, "u1",
		`{"url":"https://www.youtube.com/watch?v=abc","title":"Funny clip","is_favorite":true}`)

	if video.Title != "Funny clip" {
		t.Errorf("Title = %q, want Funny clip", video.Title)
	}
	if video.Platform != "youtube" {
		t.Errorf("Platform = %q, want youtube", video.Platform)
	}
	if !video.IsFavorite {
		t.Error("expected favorite flag set")
	}
	if video.DateAdded.IsZero() {
		t.Error("expected DateAdded set")
	}
}

func TestVideoHandler_Save_InvalidURL(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/videos", "u1", `{"url":"not a url"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestVideoHandler_List_Filters(t *testing.T) {
	env := newTestEnv(t)
	category := env.createCategory(t, "u1", "Comedy")

	env.saveVideo(t, "u1", fmt.Sprintf(`{"url":"https://example.com/a","title":"a","category_id":%q}`, category.ID))
	env.saveVideo(t, "u1", `{"url":"https://example.com/b","title":"b","is_favorite":true}`)

	list := func(path string) VideoListResponse {
		t.Helper()
		w := env.do(http.MethodGet, path, "u1", "")
		if w.Code != http.StatusOK {
			t.Fatalf("list %q failed: %d", path, w.Code)
		}
		var resp VideoListResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatal(err)
		}
		return resp
	}

	if resp := list("/videos"); resp.Total != 2 {
		t.Errorf("all: total = %d, want 2", resp.Total)
	}
	if resp := list("/videos?category=" + category.ID); resp.Total != 1 || resp.Videos[0].Title != "a" {
		t.Errorf("category filter: unexpected %+v", resp)
	}
	if resp := list("/videos?category=none"); resp.Total != 1 || resp.Videos[0].Title != "b" {
		t.Errorf("uncategorized filter: unexpected %+v", resp)
	}
	if resp := list("/videos?favorites=true"); resp.Total != 1 || resp.Videos[0].Title != "b" {
		t.Errorf("favorites filter: unexpected %+v", resp)
	}
}

func TestVideoHandler_Get_NotFound(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/videos/missing", "u1", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestVideoHandler_Update(t *testing.T) {
	env := newTestEnv(t)
	video := env.saveVideo(t, "u1", `{"url":"https://example.com/v","title":"clip"}`)

	w := env.do(http.MethodPatch, "/videos/"+video.ID, "u1", `{"notes":"watch later","is_favorite":true}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	var updated VideoResponse
	if err := json.NewDecoder(w.Body).Decode(&updated); err != nil {
		t.Fatal(err)
	}
	if updated.Notes != "watch later" || !updated.IsFavorite {
		t.Errorf("unexpected update result: %+v", updated)
	}
	if updated.Title != "clip" {
		t.Errorf("expected untouched title, got %q", updated.Title)
	}
}

func TestVideoHandler_Update_UnknownCategory(t *testing.T) {
	env := newTestEnv(t)
	video := env.saveVideo(t, "u1", `{"url":"https://example.com/v","title":"clip"}`)

	w := env.do(http.MethodPatch, "/videos/"+video.ID, "u1", `{"category_id":"missing"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestVideoHandler_Delete(t *testing.T) {
	env := newTestEnv(t)
	video := env.saveVideo(t, "u1", `{"url":"https://example.com/v","title":"clip"}`)

	w := env.do(http.MethodDelete, "/videos/"+video.ID, "u1", "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNoContent)
	}
	w = env.do(http.MethodGet, "/videos/"+video.ID, "u1", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("status after delete = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestVideoHandler_BulkMove(t *testing.T) {
	env := newTestEnv(t)
	category := env.createCategory(t, "u1", "Target")
	a := env.saveVideo(t, "u1", `{"url":"https://example.com/a","title":"a"}`)
	b := env.saveVideo(t, "u1", `{"url":"https://example.com/b","title":"b"}`)

	w := env.do(http.MethodPost, "/videos/bulk/move", "u1",
		fmt.Sprintf(`{"video_ids":[%q,%q],"category_id":%q}`, a.ID, b.ID, category.ID))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}

	list := env.do(http.MethodGet, "/videos?category="+category.ID, "u1", "")
	var resp VideoListResponse
	if err := json.NewDecoder(list.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Total != 2 {
		t.Errorf("expected both videos moved, got %d", resp.Total)
	}
}

func TestVideoHandler_BulkMove_EmptySelection(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/videos/bulk/move", "u1", `{"video_ids":[],"category_id":"x"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestVideoHandler_BulkDelete(t *testing.T) {
	env := newTestEnv(t)
	a := env.saveVideo(t, "u1", `{"url":"https://example.com/a","title":"a"}`)
	b := env.saveVideo(t, "u1", `{"url":"https://example.com/b","title":"b"}`)

	w := env.do(http.MethodPost, "/videos/bulk/delete", "u1",
		fmt.Sprintf(`{"video_ids":[%q,%q]}`, a.ID, b.ID))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	list := env.do(http.MethodGet, "/videos", "u1", "")
	var resp VideoListResponse
	if err := json.NewDecoder(list.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Total != 0 {
		t.Errorf("expected empty collection, got %d", resp.Total)
	}
}
