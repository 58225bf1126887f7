package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tenant-auth-service/app/domain"
	mock_port "tenant-auth-service/app/mocks"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newJSONContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestAuthHandler_AdminLogin(t *testing.T) {
	adminSession := domain.NewAdministratorSession(uuid.New(), "alice@corp.example", "Alice")

	tests := []struct {
		name           string
		body           string
		setupMock      func(m *mock_port.MockAuthUsecase)
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "successful login",
			body: `{"email":"alice@corp.example","password":"secret"}`,
			setupMock: func(m *mock_port.MockAuthUsecase) {
				m.EXPECT().
					LoginAsAdministrator(gomock.Any(), "alice@corp.example", "secret").
					Return(adminSession, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "unauthorized email domain",
			body: `{"email":"alice@other.example","password":"secret"}`,
			setupMock: func(m *mock_port.MockAuthUsecase) {
				m.EXPECT().
					LoginAsAdministrator(gomock.Any(), "alice@other.example", "secret").
					Return(nil, domain.ErrUnauthorizedDomain)
			},
			expectedStatus: http.StatusForbidden,
			expectedCode:   "UNAUTHORIZED_DOMAIN",
		},
		{
			name: "invalid credentials",
			body: `{"email":"alice@corp.example","password":"wrong"}`,
			setupMock: func(m *mock_port.MockAuthUsecase) {
				m.EXPECT().
					LoginAsAdministrator(gomock.Any(), "alice@corp.example", "wrong").
					Return(nil, domain.ErrInvalidCredentials)
			},
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   "INVALID_CREDENTIALS",
		},
		{
			name:           "missing password",
			body:           `{"email":"alice@corp.example"}`,
			setupMock:      func(m *mock_port.MockAuthUsecase) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "MISSING_FIELD",
		},
		{
			name:           "malformed body",
			body:           `{not json`,
			setupMock:      func(m *mock_port.MockAuthUsecase) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "INVALID_INPUT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockUsecase := mock_port.NewMockAuthUsecase(ctrl)
			tt.setupMock(mockUsecase)

			handler := NewAuthHandler(mockUsecase, testLogger())
			c, rec := newJSONContext(t, http.MethodPost, "/v1/auth/admin/login", tt.body)

			require.NoError(t, handler.AdminLogin(c))
			assert.Equal(t, tt.expectedStatus, rec.Code)

			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, decodeError(t, rec).Code)
			}
			if tt.expectedStatus == http.StatusOK {
				var body SessionResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				require.NotNil(t, body.Session)
				assert.Equal(t, domain.RoleAdministrator, body.Session.Role)
				assert.Equal(t, "alice@corp.example", body.Session.Email)
			}
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	owner, err := domain.NewTenantOwner("John Doe", "johndoe", "$2a$04$hashhashhashhashhashha", "john@example.com")
	require.NoError(t, err)
	ownerSession, err := domain.NewSessionFromIdentity(owner)
	require.NoError(t, err)

	tests := []struct {
		name           string
		body           string
		setupMock      func(m *mock_port.MockAuthUsecase)
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "successful owner login",
			body: `{"username":"johndoe","password":"secret"}`,
			setupMock: func(m *mock_port.MockAuthUsecase) {
				m.EXPECT().
					LoginWithCredentials(gomock.Any(), "johndoe", "secret").
					Return(ownerSession, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "unknown username",
			body: `{"username":"nobody","password":"secret"}`,
			setupMock: func(m *mock_port.MockAuthUsecase) {
				m.EXPECT().
					LoginWithCredentials(gomock.Any(), "nobody", "secret").
					Return(nil, domain.ErrInvalidCredentials)
			},
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   "INVALID_CREDENTIALS",
		},
		{
			name: "inactive account",
			body: `{"username":"johndoe","password":"secret"}`,
			setupMock: func(m *mock_port.MockAuthUsecase) {
				m.EXPECT().
					LoginWithCredentials(gomock.Any(), "johndoe", "secret").
					Return(nil, domain.ErrAccountInactive)
			},
			expectedStatus: http.StatusForbidden,
			expectedCode:   "ACCOUNT_INACTIVE",
		},
		{
			name:           "missing username",
			body:           `{"password":"secret"}`,
			setupMock:      func(m *mock_port.MockAuthUsecase) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "MISSING_FIELD",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockUsecase := mock_port.NewMockAuthUsecase(ctrl)
			tt.setupMock(mockUsecase)

			handler := NewAuthHandler(mockUsecase, testLogger())
			c, rec := newJSONContext(t, http.MethodPost, "/v1/auth/login", tt.body)

			require.NoError(t, handler.Login(c))
			assert.Equal(t, tt.expectedStatus, rec.Code)

			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, decodeError(t, rec).Code)
			}
			if tt.expectedStatus == http.StatusOK {
				var body SessionResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				require.NotNil(t, body.Session)
				assert.Equal(t, "johndoe", body.Session.Username)
			}
		})
	}
}

func TestAuthHandler_Restore(t *testing.T) {
	owner, err := domain.NewTenantOwner("John Doe", "johndoe", "$2a$04$hashhashhashhashhashha", "john@example.com")
	require.NoError(t, err)
	ownerSession, err := domain.NewSessionFromIdentity(owner)
	require.NoError(t, err)

	t.Run("restores persisted session", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockUsecase := mock_port.NewMockAuthUsecase(ctrl)
		mockUsecase.EXPECT().RestoreSession(gomock.Any()).Return(ownerSession, nil)

		handler := NewAuthHandler(mockUsecase, testLogger())
		c, rec := newJSONContext(t, http.MethodPost, "/v1/auth/restore", "")

		require.NoError(t, handler.Restore(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var body SessionResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.NotNil(t, body.Session)
		assert.Equal(t, ownerSession.UID, body.Session.UID)
	})

	t.Run("nothing to restore yields null session", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockUsecase := mock_port.NewMockAuthUsecase(ctrl)
		mockUsecase.EXPECT().RestoreSession(gomock.Any()).Return(nil, nil)

		handler := NewAuthHandler(mockUsecase, testLogger())
		c, rec := newJSONContext(t, http.MethodPost, "/v1/auth/restore", "")

		require.NoError(t, handler.Restore(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var body SessionResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Nil(t, body.Session)
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUsecase := mock_port.NewMockAuthUsecase(ctrl)
	mockUsecase.EXPECT().Logout(gomock.Any()).Return(nil)

	handler := NewAuthHandler(mockUsecase, testLogger())
	c, rec := newJSONContext(t, http.MethodPost, "/v1/auth/logout", "")

	require.NoError(t, handler.Logout(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestAuthHandler_CurrentSession(t *testing.T) {
	t.Run("no session", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockUsecase := mock_port.NewMockAuthUsecase(ctrl)
		mockUsecase.EXPECT().CurrentSession().Return(nil)

		handler := NewAuthHandler(mockUsecase, testLogger())
		c, rec := newJSONContext(t, http.MethodGet, "/v1/auth/session", "")

		require.NoError(t, handler.CurrentSession(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "NO_SESSION", decodeError(t, rec).Code)
	})

	t.Run("active session", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		adminSession := domain.NewAdministratorSession(uuid.New(), "alice@corp.example", "Alice")
		mockUsecase := mock_port.NewMockAuthUsecase(ctrl)
		mockUsecase.EXPECT().CurrentSession().Return(adminSession)

		handler := NewAuthHandler(mockUsecase, testLogger())
		c, rec := newJSONContext(t, http.MethodGet, "/v1/auth/session", "")

		require.NoError(t, handler.CurrentSession(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestAuthHandler_CheckAccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUsecase := mock_port.NewMockAuthUsecase(ctrl)
	mockUsecase.EXPECT().
		CheckAccess(gomock.Any()).
		DoAndReturn(func(spec domain.AccessSpec) domain.Decision {
			assert.True(t, spec.OwnerOnly)
			assert.Equal(t, []domain.Permission{domain.PermissionViewDashboard}, spec.RequiredPermissions)
			return domain.Decision{Allowed: false, Redirect: domain.RedirectManagerDashboard}
		})

	handler := NewAuthHandler(mockUsecase, testLogger())
	body := `{"owner_only":true,"required_permissions":["view_dashboard"]}`
	c, rec := newJSONContext(t, http.MethodPost, "/v1/auth/access", body)

	require.NoError(t, handler.CheckAccess(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var decision domain.Decision
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decision))
	assert.False(t, decision.Allowed)
	assert.Equal(t, domain.RedirectManagerDashboard, decision.Redirect)
}
