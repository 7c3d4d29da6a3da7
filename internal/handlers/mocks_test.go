package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"roleplay/api/internal/middleware"
	"roleplay/api/internal/models"
	"roleplay/api/internal/services"
	"roleplay/api/internal/utils"

	"github.com/go-chi/chi/v5"
)

type mockUserService struct {
	createFn func(context.Context, *services.CreateUserInput) (*models.User, error)
	updateFn func(context.Context, uint, uint, *services.UpdateUserInput) (*models.User, error)
}

func (m *mockUserService) Create(ctx context.Context, in *services.CreateUserInput) (*models.User, error) {
	if m.createFn == nil {
		panic("unexpected call to Create")
	}
	return m.createFn(ctx, in)
}

func (m *mockUserService) Update(ctx context.Context, actor, id uint, in *services.UpdateUserInput) (*models.User, error) {
	if m.updateFn == nil {
		panic("unexpected call to Update")
	}
	return m.updateFn(ctx, actor, id, in)
}

type mockSessionService struct {
	loginFn  func(context.Context, *services.LoginInput) (*models.User, string, error)
	logoutFn func(context.Context, string) error
}

func (m *mockSessionService) Login(ctx context.Context, in *services.LoginInput) (*models.User, string, error) {
	if m.loginFn == nil {
		panic("unexpected call to Login")
	}
	return m.loginFn(ctx, in)
}

func (m *mockSessionService) Logout(ctx context.Context, sessionID string) error {
	if m.logoutFn == nil {
		panic("unexpected call to Logout")
	}
	return m.logoutFn(ctx, sessionID)
}

type mockPasswordService struct {
	requestFn func(context.Context, *services.RequestResetInput) error
	consumeFn func(context.Context, *services.ConsumeResetInput) error
}

func (m *mockPasswordService) RequestReset(ctx context.Context, in *services.RequestResetInput) error {
	if m.requestFn == nil {
		panic("unexpected call to RequestReset")
	}
	return m.requestFn(ctx, in)
}

func (m *mockPasswordService) ConsumeReset(ctx context.Context, in *services.ConsumeResetInput) error {
	if m.consumeFn == nil {
		panic("unexpected call to ConsumeReset")
	}
	return m.consumeFn(ctx, in)
}

type mockGroupService struct {
	createFn       func(context.Context, *services.CreateGroupInput) (*models.Group, error)
	updateFn       func(context.Context, uint, uint, *services.UpdateGroupInput) (*models.Group, error)
	deleteFn       func(context.Context, uint, uint) error
	removePlayerFn func(context.Context, uint, uint, uint) error
	listFn         func(context.Context, services.ListGroupsInput) ([]models.Group, error)
}

func (m *mockGroupService) Create(ctx context.Context, in *services.CreateGroupInput) (*models.Group, error) {
	if m.createFn == nil {
		panic("unexpected call to Create")
	}
	return m.createFn(ctx, in)
}

func (m *mockGroupService) Update(ctx context.Context, actor, id uint, in *services.UpdateGroupInput) (*models.Group, error) {
	if m.updateFn == nil {
		panic("unexpected call to Update")
	}
	return m.updateFn(ctx, actor, id, in)
}

func (m *mockGroupService) Delete(ctx context.Context, actor, id uint) error {
	if m.deleteFn == nil {
		panic("unexpected call to Delete")
	}
	return m.deleteFn(ctx, actor, id)
}

func (m *mockGroupService) RemovePlayer(ctx context.Context, actor, groupID, playerID uint) error {
	if m.removePlayerFn == nil {
		panic("unexpected call to RemovePlayer")
	}
	return m.removePlayerFn(ctx, actor, groupID, playerID)
}

func (m *mockGroupService) List(ctx context.Context, in services.ListGroupsInput) ([]models.Group, error) {
	if m.listFn == nil {
		panic("unexpected call to List")
	}
	return m.listFn(ctx, in)
}

type mockGroupRequestService struct {
	createFn func(context.Context, uint, uint) (*models.GroupRequest, error)
	listFn   func(context.Context, uint) ([]models.GroupRequest, error)
	acceptFn func(context.Context, uint, uint, uint) (*models.GroupRequest, error)
	rejectFn func(context.Context, uint, uint, uint) error
}

func (m *mockGroupRequestService) Create(ctx context.Context, groupID, userID uint) (*models.GroupRequest, error) {
	if m.createFn == nil {
		panic("unexpected call to Create")
	}
	return m.createFn(ctx, groupID, userID)
}

func (m *mockGroupRequestService) List(ctx context.Context, master uint) ([]models.GroupRequest, error) {
	if m.listFn == nil {
		panic("unexpected call to List")
	}
	return m.listFn(ctx, master)
}

func (m *mockGroupRequestService) Accept(ctx context.Context, actor, groupID, requestID uint) (*models.GroupRequest, error) {
	if m.acceptFn == nil {
		panic("unexpected call to Accept")
	}
	return m.acceptFn(ctx, actor, groupID, requestID)
}

func (m *mockGroupRequestService) Reject(ctx context.Context, actor, groupID, requestID uint) error {
	if m.rejectFn == nil {
		panic("unexpected call to Reject")
	}
	return m.rejectFn(ctx, actor, groupID, requestID)
}

// serve mounts h on pattern and sends one request, authenticated as actor when non-zero.
func serve(t *testing.T, method, pattern, target, body string, actor uint, h http.Handler) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	if actor != 0 {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				p := &services.Principal{UserID: actor, SessionID: "sess-1"}
				next.ServeHTTP(w, req.WithContext(middleware.WithPrincipal(req.Context(), p)))
			})
		})
	}
	r.Method(method, pattern, h)

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body %q: %v", rec.Body.String(), err)
	}
	return body
}

func decodeErrorBody(t *testing.T, rec *httptest.ResponseRecorder) utils.ErrorBody {
	t.Helper()
	var body utils.ErrorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode error body %q: %v", rec.Body.String(), err)
	}
	return body
}

func svcErr(kind error, status int, msg string) error {
	return &services.Error{Kind: kind, Status: status, Message: msg}
}
