package members

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msinoftech/getsettime/internal/tenancy"
	"github.com/msinoftech/getsettime/pkg/logging"
)

func workspaceRequest(t *testing.T, method, target, workspaceID string, body []byte) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	return req.WithContext(tenancy.WithWorkspaceID(req.Context(), workspaceID))
}

func TestCreateMember(t *testing.T) {
	repo := NewInMemoryRepository()
	h := NewHandler(repo, logging.Default())

	body, _ := json.Marshal(map[string]string{
		"name":  "Dana Reeves",
		"email": "dana@example.com",
		"role":  "provider",
	})
	req := workspaceRequest(t, http.MethodPost, "/members", "ws-1", body)
	rec := httptest.NewRecorder()

	h.CreateMember(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var m Member
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&m))
	assert.NotEmpty(t, m.ID)
	assert.Equal(t, "ws-1", m.WorkspaceID)
	assert.Equal(t, "Dana Reeves", m.Name)
}

func TestCreateMemberRequiresName(t *testing.T) {
	h := NewHandler(NewInMemoryRepository(), logging.Default())

	body, _ := json.Marshal(map[string]string{"email": "x@example.com"})
	req := workspaceRequest(t, http.MethodPost, "/members", "ws-1", body)
	rec := httptest.NewRecorder()

	h.CreateMember(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListMembersScopedToWorkspace(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()
	_, err := repo.CreateMember(ctx, &Member{WorkspaceID: "ws-1", Name: "Alice"})
	require.NoError(t, err)
	_, err = repo.CreateMember(ctx, &Member{WorkspaceID: "ws-2", Name: "Bob"})
	require.NoError(t, err)

	h := NewHandler(repo, logging.Default())
	req := workspaceRequest(t, http.MethodGet, "/members", "ws-1", nil)
	rec := httptest.NewRecorder()

	h.ListMembers(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var items []*Member
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&items))
	require.Len(t, items, 1)
	assert.Equal(t, "Alice", items[0].Name)
}

func TestDeleteMember(t *testing.T) {
	repo := NewInMemoryRepository()
	m, err := repo.CreateMember(context.Background(), &Member{WorkspaceID: "ws-1", Name: "Alice"})
	require.NoError(t, err)

	h := NewHandler(repo, logging.Default())

	req := workspaceRequest(t, http.MethodDelete, "/members/"+m.ID, "ws-1", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("memberID", m.ID)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	rec := httptest.NewRecorder()

	h.DeleteMember(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)

	items, err := repo.ListMembers(context.Background(), "ws-1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestDeleteMemberNotFound(t *testing.T) {
	h := NewHandler(NewInMemoryRepository(), logging.Default())

	req := workspaceRequest(t, http.MethodDelete, "/members/missing", "ws-1", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("memberID", "missing")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	rec := httptest.NewRecorder()

	h.DeleteMember(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateAndListDepartments(t *testing.T) {
	repo := NewInMemoryRepository()
	h := NewHandler(repo, logging.Default())

	body, _ := json.Marshal(map[string]string{"name": "Dermatology"})
	req := workspaceRequest(t, http.MethodPost, "/departments", "ws-1", body)
	rec := httptest.NewRecorder()

	h.CreateDepartment(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	req = workspaceRequest(t, http.MethodGet, "/departments", "ws-1", nil)
	rec = httptest.NewRecorder()
	h.ListDepartments(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var items []*Department
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&items))
	require.Len(t, items, 1)
	assert.Equal(t, "Dermatology", items[0].Name)

	has, err := repo.HasDepartments(context.Background(), "ws-1")
	require.NoError(t, err)
	assert.True(t, has)
}

func TestHandlersRequireWorkspaceContext(t *testing.T) {
	h := NewHandler(NewInMemoryRepository(), logging.Default())

	req := httptest.NewRequest(http.MethodGet, "/members", nil)
	rec := httptest.NewRecorder()
	h.ListMembers(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
