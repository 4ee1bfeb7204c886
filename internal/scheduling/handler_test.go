package scheduling

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msinoftech/getsettime/internal/bookings"
	"github.com/msinoftech/getsettime/internal/tenancy"
	"github.com/msinoftech/getsettime/pkg/logging"
)

func newTestHandler(t *testing.T) (*Handler, string) {
	t.Helper()
	svc, etID := newTestService(t, &stubSettings{ws: mondayOnlySettings()}, bookings.NewInMemoryRepository(), nil, nil)
	return NewHandler(svc, logging.Default()), etID
}

func tenantRequest(target string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	return req.WithContext(tenancy.WithWorkspaceID(req.Context(), "ws-1"))
}

func TestSlotsEndpoint(t *testing.T) {
	h, etID := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.Slots(rec, tenantRequest("/slots?date=2026-10-12&event_type_id="+etID))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp slotsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "2026-10-12", resp.Date)
	require.Len(t, resp.Slots, 6)
	assert.Equal(t, "9:00 AM", resp.Slots[0].Time)
}

func TestSlotsEndpointDisabledDayReturnsEmptyList(t *testing.T) {
	h, etID := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.Slots(rec, tenantRequest("/slots?date=2026-10-13&event_type_id="+etID))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp slotsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Empty(t, resp.Slots)
}

func TestSlotsEndpointValidation(t *testing.T) {
	h, etID := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.Slots(rec, tenantRequest("/slots?date=not-a-date&event_type_id="+etID))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.Slots(rec, tenantRequest("/slots?date=2026-10-12"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/slots?date=2026-10-12&event_type_id="+etID, nil)
	h.Slots(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCalendarEndpoint(t *testing.T) {
	h, etID := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.Calendar(rec, tenantRequest("/calendar?month=2026-10&event_type_id="+etID))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp calendarResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "2026-10", resp.Month)
	assert.Len(t, resp.Days, 31)
	assert.True(t, resp.Days["2026-10-12"])
	assert.False(t, resp.Days["2026-10-13"])
}

func TestCalendarEndpointValidation(t *testing.T) {
	h, etID := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.Calendar(rec, tenantRequest("/calendar?month=October&event_type_id="+etID))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
