package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/RenzoCostarelli/verduapp/internal/adapter/http/dto"
	"github.com/RenzoCostarelli/verduapp/internal/adapter/http/middleware"
	"github.com/RenzoCostarelli/verduapp/internal/clock"
	"github.com/RenzoCostarelli/verduapp/internal/domain"
	"github.com/RenzoCostarelli/verduapp/internal/query"
	"github.com/RenzoCostarelli/verduapp/internal/usecase"
	"github.com/RenzoCostarelli/verduapp/internal/usecase/mocks"
)

var testZone = time.FixedZone("-03", -3*60*60)

func testClock() *clock.Clock {
	now := time.Date(2026, 8, 15, 14, 30, 0, 0, testZone)
	return clock.NewFixed(now, testZone)
}

func newEntryHandler(repo *mocks.MockEntryRepository) *EntryHandler {
	c := testClock()
	entryUC := usecase.NewEntryUseCase(repo, mocks.NewMockIDGenerator(), c, nil)
	planner := usecase.NewQueryPlanner(repo, c, 10)
	return NewEntryHandler(entryUC, planner, nil)
}

func seedRepo(repo *mocks.MockEntryRepository, n int) {
	base := time.Date(2026, 8, 15, 10, 0, 0, 0, testZone)
	for i := 0; i < n; i++ {
		repo.Seed(&domain.Entry{
			ID:        string(rune('a'+i)) + "1",
			Type:      domain.EntryTypeIncome,
			Amount:    decimal.NewFromInt(int64(10 * (i + 1))),
			Date:      base.Add(-time.Duration(i) * time.Hour),
			Method:    domain.MethodCash,
			CreatedBy: "user-1",
		})
	}
}

func TestEntryHandler_List(t *testing.T) {
	repo := mocks.NewMockEntryRepository()
	seedRepo(repo, 3)
	handler := newEntryHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/entries?period=today", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.PageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Total != 3 || len(resp.Entries) != 3 || resp.Page != 1 {
		t.Fatalf("unexpected page: total=%d entries=%d page=%d", resp.Total, len(resp.Entries), resp.Page)
	}
}

func TestEntryHandler_List_FilterChangeScopedToSession(t *testing.T) {
	repo := mocks.NewMockEntryRepository()
	seedRepo(repo, 23)
	handler := newEntryHandler(repo)

	list := func(user, target string) *dto.PageResponse {
		t.Helper()
		req := httptest.NewRequest(http.MethodGet, target, nil)
		req = req.WithContext(middleware.WithUser(req.Context(), user))
		rec := httptest.NewRecorder()
		handler.List(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("GET %s: expected 200, got %d: %s", target, rec.Code, rec.Body.String())
		}
		var resp dto.PageResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		return &resp
	}

	list("user-1", "/entries?page=1")
	// Another session interleaves with a different filter.
	list("user-2", "/entries?paymentMethod=cash&page=1")

	// The first session's filter never changed; its page 2 request must
	// not be reset to page 1 by the interleaved call.
	resp := list("user-1", "/entries?page=2")
	if resp.Page != 2 {
		t.Fatalf("session asked for page 2 of its unchanged filter, got page %d", resp.Page)
	}
}

func TestEntryHandler_List_BadFilter(t *testing.T) {
	handler := newEntryHandler(mocks.NewMockEntryRepository())

	req := httptest.NewRequest(http.MethodGet, "/entries?paymentMethod=cheque", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestEntryHandler_List_StoreError(t *testing.T) {
	repo := mocks.NewMockEntryRepository()
	repo.CountFunc = func(ctx context.Context, pred query.Predicate) (int, error) {
		return 0, errors.New("db down")
	}
	handler := newEntryHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/entries", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestEntryHandler_Create(t *testing.T) {
	repo := mocks.NewMockEntryRepository()
	handler := newEntryHandler(repo)

	body, _ := json.Marshal(dto.CreateEntryRequest{
		Type:   "income",
		Amount: decimal.NewFromInt(1500),
		Date:   time.Date(2026, 8, 15, 10, 0, 0, 0, testZone),
		Method: "cash",
	})

	req := httptest.NewRequest(http.MethodPost, "/entries", bytes.NewReader(body))
	req = req.WithContext(middleware.WithUser(req.Context(), "user-1"))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.EntryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.CreatedBy != "user-1" {
		t.Errorf("created_by = %q", resp.CreatedBy)
	}
}

func TestEntryHandler_Create_NoSession(t *testing.T) {
	handler := newEntryHandler(mocks.NewMockEntryRepository())

	body, _ := json.Marshal(dto.CreateEntryRequest{
		Type:   "income",
		Amount: decimal.NewFromInt(100),
		Date:   time.Date(2026, 8, 15, 10, 0, 0, 0, testZone),
		Method: "cash",
	})

	req := httptest.NewRequest(http.MethodPost, "/entries", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestEntryHandler_Create_InvalidJSON(t *testing.T) {
	handler := newEntryHandler(mocks.NewMockEntryRepository())

	req := httptest.NewRequest(http.MethodPost, "/entries", bytes.NewBufferString("{invalid"))
	req = req.WithContext(middleware.WithUser(req.Context(), "user-1"))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestEntryHandler_Delete_WithRefresh(t *testing.T) {
	repo := mocks.NewMockEntryRepository()
	seedRepo(repo, 3)
	handler := newEntryHandler(repo)

	req := httptest.NewRequest(http.MethodDelete, "/entries/a1?period=today", nil)
	req = withURLParam(req, "id", "a1")
	rec := httptest.NewRecorder()

	handler.Delete(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.DeleteEntryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Deleted {
		t.Error("expected deleted=true")
	}
	if resp.RefreshError != "" {
		t.Errorf("unexpected refresh error: %s", resp.RefreshError)
	}
	if resp.Page == nil || resp.Page.Total != 2 {
		t.Fatalf("expected refreshed page with 2 entries, got %+v", resp.Page)
	}
}

func TestEntryHandler_Delete_RefreshFailureStillReportsSuccess(t *testing.T) {
	repo := mocks.NewMockEntryRepository()
	seedRepo(repo, 2)
	repo.CountFunc = func(ctx context.Context, pred query.Predicate) (int, error) {
		return 0, errors.New("db down")
	}
	handler := newEntryHandler(repo)

	req := httptest.NewRequest(http.MethodDelete, "/entries/a1", nil)
	req = withURLParam(req, "id", "a1")
	rec := httptest.NewRecorder()

	handler.Delete(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 despite refresh failure, got %d", rec.Code)
	}

	var resp dto.DeleteEntryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Deleted {
		t.Error("delete succeeded and must be reported as such")
	}
	if resp.RefreshError == "" {
		t.Error("refresh failure should be reported")
	}
	if resp.Page != nil {
		t.Error("no page should accompany a failed refresh")
	}
}

func TestEntryHandler_Delete_NotFound(t *testing.T) {
	handler := newEntryHandler(mocks.NewMockEntryRepository())

	req := httptest.NewRequest(http.MethodDelete, "/entries/missing", nil)
	req = withURLParam(req, "id", "missing")
	rec := httptest.NewRecorder()

	handler.Delete(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestEntryHandler_UpdateDescription(t *testing.T) {
	repo := mocks.NewMockEntryRepository()
	repo.Seed(&domain.Entry{ID: "e1", CreatedBy: "user-1"})
	handler := newEntryHandler(repo)

	body, _ := json.Marshal(dto.UpdateDescriptionRequest{Description: "updated"})
	req := httptest.NewRequest(http.MethodPatch, "/entries/e1/description", bytes.NewReader(body))
	req = withURLParam(req, "id", "e1")
	req = req.WithContext(middleware.WithUser(req.Context(), "user-1"))
	rec := httptest.NewRecorder()

	handler.UpdateDescription(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestEntryHandler_UpdateDescription_NotAuthor(t *testing.T) {
	repo := mocks.NewMockEntryRepository()
	repo.Seed(&domain.Entry{ID: "e1", CreatedBy: "user-1"})
	handler := newEntryHandler(repo)

	body, _ := json.Marshal(dto.UpdateDescriptionRequest{Description: "updated"})
	req := httptest.NewRequest(http.MethodPatch, "/entries/e1/description", bytes.NewReader(body))
	req = withURLParam(req, "id", "e1")
	req = req.WithContext(middleware.WithUser(req.Context(), "user-2"))
	rec := httptest.NewRecorder()

	handler.UpdateDescription(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestEntryHandler_ListCreators(t *testing.T) {
	repo := mocks.NewMockEntryRepository()
	seedRepo(repo, 2)
	handler := newEntryHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/entries/creators", nil)
	rec := httptest.NewRecorder()

	handler.ListCreators(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []*dto.CreatorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp) != 1 || resp[0].ID != "user-1" {
		t.Fatalf("creators = %+v", resp)
	}
}
