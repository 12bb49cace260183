package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"app/internal/domain/model"
	"app/internal/middleware"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

// =====================
// stubs
// =====================

type auditLogRepoStub struct {
	logs      []model.AuditLog
	gotFilter repo.AuditLogFilter
	created   []model.AuditLog
}

func (s *auditLogRepoStub) Create(ctx context.Context, log model.AuditLog) error {
	s.created = append(s.created, log)
	return nil
}

func (s *auditLogRepoStub) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	s.gotFilter = filter
	return s.logs, nil
}

// =====================
// helpers
// =====================

func newAdminEcho(auditRepo repo.AuditLogRepository) *echo.Echo {
	uc := usecase.NewProductUsecase(nil, nil, auditRepo)

	e := echo.New()
	NewAdminProductHandler(uc).RegisterRoutes(e)
	return e
}

func adminRequest(e *echo.Echo, method, target, userID, role string, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if userID != "" {
		req.Header.Set(middleware.HeaderUserID, userID)
	}
	if role != "" {
		req.Header.Set(middleware.HeaderUserRole, role)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// =====================
// tests
// =====================

// ADMIN以外のroleは403で、ハンドラまで届かない
func TestAdminRoutes_RejectNonAdmin(t *testing.T) {
	e := newAdminEcho(&auditLogRepoStub{})

	rec := adminRequest(e, http.MethodPost, "/admin/products", "user-1", "USER", `{"name":"Apple"}`)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminRoutes_RejectMissingRole(t *testing.T) {
	e := newAdminEcho(&auditLogRepoStub{})

	rec := adminRequest(e, http.MethodGet, "/admin/audit-logs", "user-1", "", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminRoutes_RejectMissingIdentity(t *testing.T) {
	e := newAdminEcho(&auditLogRepoStub{})

	rec := adminRequest(e, http.MethodGet, "/admin/audit-logs", "", "ADMIN", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuditLogsEndpoint_ReturnsLogs(t *testing.T) {
	stub := &auditLogRepoStub{logs: []model.AuditLog{
		{ID: 2, ActorUserID: "admin-1", Action: model.AuditActionUpdateStock},
		{ID: 1, ActorUserID: "admin-1", Action: model.AuditActionCreateProduct},
	}}
	e := newAdminEcho(stub)

	rec := adminRequest(e, http.MethodGet, "/admin/audit-logs", "admin-1", "ADMIN", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	var logs []model.AuditLog
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &logs))
	assert.Len(t, logs, 2)
}

// クエリパラメータがフィルタにそのまま載る
func TestAuditLogsEndpoint_QueryToFilter(t *testing.T) {
	stub := &auditLogRepoStub{}
	e := newAdminEcho(stub)

	rec := adminRequest(e, http.MethodGet,
		"/admin/audit-logs?actor=admin-2&action=UPDATE_STOCK&from=2026-08-01T00:00:00Z&limit=10",
		"admin-1", "ADMIN", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	if assert.NotNil(t, stub.gotFilter.ActorUserID) {
		assert.Equal(t, "admin-2", *stub.gotFilter.ActorUserID)
	}
	if assert.NotNil(t, stub.gotFilter.Action) {
		assert.Equal(t, model.AuditActionUpdateStock, *stub.gotFilter.Action)
	}
	if assert.NotNil(t, stub.gotFilter.CreatedFrom) {
		assert.Equal(t, "2026-08-01T00:00:00Z", stub.gotFilter.CreatedFrom.UTC().Format("2006-01-02T15:04:05Z"))
	}
	assert.Nil(t, stub.gotFilter.CreatedTo)
	assert.Equal(t, 10, stub.gotFilter.Limit)
}

func TestAuditLogsEndpoint_BadTimestamp(t *testing.T) {
	e := newAdminEcho(&auditLogRepoStub{})

	rec := adminRequest(e, http.MethodGet, "/admin/audit-logs?from=yesterday", "admin-1", "ADMIN", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid from", decodeError(t, rec).Error)
}
