package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-ledger/internal/config"
	"github.com/MKhiriev/go-ledger/internal/logger"
	"github.com/MKhiriev/go-ledger/internal/service"
	"github.com/MKhiriev/go-ledger/internal/utils"
	"github.com/MKhiriev/go-ledger/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Service fakes
// ─────────────────────────────────────────────

// fakeAuthService implements service.AuthService. Unset fields panic when
// called, which flags handlers reaching a service they should not.
type fakeAuthService struct {
	registerFn          func(ctx context.Context, req models.RegisterRequest) (models.User, error)
	verifyEmailFn       func(ctx context.Context, token string) error
	loginFn             func(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error)
	refreshTokenFn      func(ctx context.Context, req models.RefreshRequest) (string, error)
	requestResetFn      func(ctx context.Context, req models.PasswordResetRequest) error
	confirmResetTokenFn func(ctx context.Context, link models.PasswordResetLink) error
	setNewPasswordFn    func(ctx context.Context, req models.SetNewPasswordRequest) error
}

func (f *fakeAuthService) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	return f.registerFn(ctx, req)
}

func (f *fakeAuthService) VerifyEmail(ctx context.Context, token string) error {
	return f.verifyEmailFn(ctx, token)
}

func (f *fakeAuthService) Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error) {
	return f.loginFn(ctx, req)
}

func (f *fakeAuthService) RefreshToken(ctx context.Context, req models.RefreshRequest) (string, error) {
	return f.refreshTokenFn(ctx, req)
}

func (f *fakeAuthService) RequestPasswordReset(ctx context.Context, req models.PasswordResetRequest) error {
	return f.requestResetFn(ctx, req)
}

func (f *fakeAuthService) ConfirmResetTokenValid(ctx context.Context, link models.PasswordResetLink) error {
	return f.confirmResetTokenFn(ctx, link)
}

func (f *fakeAuthService) SetNewPassword(ctx context.Context, req models.SetNewPasswordRequest) error {
	return f.setNewPasswordFn(ctx, req)
}

// fakeTokenService only implements what the auth middleware needs.
type fakeTokenService struct {
	service.TokenService

	parseAccessFn func(ctx context.Context, token string) (models.Token, error)
}

func (f *fakeTokenService) ParseAccess(ctx context.Context, token string) (models.Token, error) {
	return f.parseAccessFn(ctx, token)
}

type fakeLedgerService struct {
	createFn func(ctx context.Context, ownerID int64, record models.LedgerRecord) (models.LedgerRecord, error)
	listFn   func(ctx context.Context, ownerID int64, kind models.RecordKind) ([]models.LedgerRecord, error)
	getFn    func(ctx context.Context, ownerID int64, kind models.RecordKind, id int64) (models.LedgerRecord, error)
	updateFn func(ctx context.Context, ownerID int64, kind models.RecordKind, id int64, record models.LedgerRecord) (models.LedgerRecord, error)
	patchFn  func(ctx context.Context, ownerID int64, kind models.RecordKind, id int64, patch models.RecordPatch) (models.LedgerRecord, error)
	deleteFn func(ctx context.Context, ownerID int64, kind models.RecordKind, id int64) error
}

func (f *fakeLedgerService) Create(ctx context.Context, ownerID int64, record models.LedgerRecord) (models.LedgerRecord, error) {
	return f.createFn(ctx, ownerID, record)
}

func (f *fakeLedgerService) List(ctx context.Context, ownerID int64, kind models.RecordKind) ([]models.LedgerRecord, error) {
	return f.listFn(ctx, ownerID, kind)
}

func (f *fakeLedgerService) Get(ctx context.Context, ownerID int64, kind models.RecordKind, id int64) (models.LedgerRecord, error) {
	return f.getFn(ctx, ownerID, kind, id)
}

func (f *fakeLedgerService) Update(ctx context.Context, ownerID int64, kind models.RecordKind, id int64, record models.LedgerRecord) (models.LedgerRecord, error) {
	return f.updateFn(ctx, ownerID, kind, id, record)
}

func (f *fakeLedgerService) Patch(ctx context.Context, ownerID int64, kind models.RecordKind, id int64, patch models.RecordPatch) (models.LedgerRecord, error) {
	return f.patchFn(ctx, ownerID, kind, id, patch)
}

func (f *fakeLedgerService) Delete(ctx context.Context, ownerID int64, kind models.RecordKind, id int64) error {
	return f.deleteFn(ctx, ownerID, kind, id)
}

type fakeStatsService struct {
	expenseFn func(ctx context.Context, userID int64) (models.CategorySummary, error)
	incomeFn  func(ctx context.Context, userID int64) (models.CategorySummary, error)
}

func (f *fakeStatsService) ExpenseCategorySummary(ctx context.Context, userID int64) (models.CategorySummary, error) {
	return f.expenseFn(ctx, userID)
}

func (f *fakeStatsService) IncomeSourceSummary(ctx context.Context, userID int64) (models.CategorySummary, error) {
	return f.incomeFn(ctx, userID)
}

type fakeAppInfoService struct {
	version string
}

func (f *fakeAppInfoService) GetAppVersion(context.Context) string {
	return f.version
}

func (f *fakeAppInfoService) GetBuildInfo(context.Context) models.AppBuildInfo {
	return models.NewAppBuildInfo(f.version, "N/A", "N/A")
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

const (
	testUserID      int64 = 7
	testAccessToken       = "access-token"
)

// acceptingTokenService accepts testAccessToken as user testUserID and
// rejects everything else as invalid.
func acceptingTokenService() *fakeTokenService {
	return &fakeTokenService{
		parseAccessFn: func(_ context.Context, token string) (models.Token, error) {
			if token != testAccessToken {
				return models.Token{}, service.ErrTokenIsInvalid
			}
			return models.Token{UserID: testUserID}, nil
		},
	}
}

// newTestHandler fills unset services with harmless defaults.
func newTestHandler(t *testing.T, services *service.Services) *Handler {
	t.Helper()
	if services.AppInfoService == nil {
		services.AppInfoService = &fakeAppInfoService{version: "test"}
	}
	if services.TokenService == nil {
		services.TokenService = acceptingTokenService()
	}
	return NewHandler(services, config.Server{}, logger.Nop())
}

// serve runs one request through the full router.
func serve(t *testing.T, h *Handler, method, path, body string, authorized bool) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if authorized {
		req.Header.Set("Authorization", "Bearer "+testAccessToken)
	}

	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, req)
	return rr
}

// withUser returns r as the auth middleware would pass it on.
func withUser(r *http.Request, userID int64) *http.Request {
	return r.WithContext(utils.WithUserID(r.Context(), userID))
}

// ─────────────────────────────────────────────
// NewHandler
// ─────────────────────────────────────────────

func TestNewHandler(t *testing.T) {
	svcs := &service.Services{}
	log := logger.Nop()

	h := NewHandler(svcs, config.Server{RequestTimeout: 3 * time.Second}, log)

	require.NotNil(t, h)
	assert.Same(t, svcs, h.services)
	assert.Equal(t, log, h.logger)
	assert.Equal(t, 3*time.Second, h.requestTimeout)
}

func TestNewHandler_IndependentInstances(t *testing.T) {
	h1 := NewHandler(&service.Services{}, config.Server{}, logger.Nop())
	h2 := NewHandler(&service.Services{}, config.Server{}, logger.Nop())

	assert.NotSame(t, h1, h2)
}
