package handler

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"crmdash/internal/delivery/http/validator"
	"crmdash/internal/domain/entity"
	"crmdash/internal/mocks"
	"crmdash/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newContext(method, target string, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = validator.New()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestSessionHandler_Login_Redirect(t *testing.T) {
	uc := mocks.NewMockSessionUsecase(t)
	uc.On("LoginURL").Return("https://login.salesforce.com/services/oauth2/authorize?response_type=token", nil)

	h := NewSessionHandler(uc, newTestLogger())

	c, rec := newContext(http.MethodGet, "/auth/login", "")
	require.NoError(t, h.Login(c))

	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderLocation), "/services/oauth2/authorize")
}

func TestSessionHandler_Login_JSON(t *testing.T) {
	uc := mocks.NewMockSessionUsecase(t)
	uc.On("LoginURL").Return("https://login.salesforce.com/services/oauth2/authorize?response_type=token", nil)

	h := NewSessionHandler(uc, newTestLogger())

	c, rec := newContext(http.MethodGet, "/auth/login?redirect=false", "")
	require.NoError(t, h.Login(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "loginUrl")
}

func TestSessionHandler_Callback_ServesRelayPage(t *testing.T) {
	h := NewSessionHandler(mocks.NewMockSessionUsecase(t), newTestLogger())

	c, rec := newContext(http.MethodGet, "/auth/callback", "")
	require.NoError(t, h.Callback(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "location.hash")
	assert.Contains(t, body, "history.replaceState")
	assert.Contains(t, body, "/api/session")
}

func TestSessionHandler_ResumeSession(t *testing.T) {
	uc := mocks.NewMockSessionUsecase(t)
	uc.On("Resume", mock.Anything, "access_token=x&instance_url=y").Return(&entity.SessionState{
		Phase: entity.PhaseAuthenticated,
		Mode:  entity.ModeLive,
	}, nil)

	h := NewSessionHandler(uc, newTestLogger())

	c, rec := newContext(http.MethodPost, "/api/session",
		`{"fragment":"access_token=x&instance_url=y"}`)
	require.NoError(t, h.ResumeSession(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"phase":"authenticated"`)
	assert.Contains(t, rec.Body.String(), `"mode":"live"`)
}

func TestSessionHandler_GetSession(t *testing.T) {
	uc := mocks.NewMockSessionUsecase(t)
	uc.On("Current").Return(&entity.SessionState{Phase: entity.PhaseUnauthenticated})

	h := NewSessionHandler(uc, newTestLogger())

	c, rec := newContext(http.MethodGet, "/api/session", "")
	require.NoError(t, h.GetSession(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"phase":"unauthenticated"`)
}

func TestSessionHandler_Logout(t *testing.T) {
	uc := mocks.NewMockSessionUsecase(t)
	uc.On("Logout", mock.Anything).Return(nil)

	h := NewSessionHandler(uc, newTestLogger())

	c, rec := newContext(http.MethodDelete, "/api/session", "")
	require.NoError(t, h.Logout(c))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDashboardHandler_GetDashboard(t *testing.T) {
	uc := mocks.NewMockSessionUsecase(t)
	uc.On("Refresh", mock.Anything).Return(&entity.DashboardSnapshot{
		Accounts: &entity.QueryResult{TotalSize: 5, Done: true},
	}, nil)

	h := NewDashboardHandler(uc, newTestLogger())

	c, rec := newContext(http.MethodGet, "/api/dashboard", "")
	require.NoError(t, h.GetDashboard(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"totalSize":5`)
}

func TestRecordHandler_GetRecord_ParsesFields(t *testing.T) {
	uc := mocks.NewMockSessionUsecase(t)
	uc.On("GetRecord", mock.Anything, entity.ObjectAccount, "001xx", []string{"Name", "Industry"}).
		Return(entity.Record{"Name": "Helio Systems", "Industry": "Technology"}, nil)

	h := NewRecordHandler(uc, newTestLogger())

	c, rec := newContext(http.MethodGet, "/api/records/Account/001xx?fields=Name,%20Industry", "")
	c.SetParamNames("type", "id")
	c.SetParamValues("Account", "001xx")
	require.NoError(t, h.GetRecord(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Helio Systems")
}

func TestRecordHandler_CreateRecord(t *testing.T) {
	uc := mocks.NewMockSessionUsecase(t)
	uc.On("Mutate", mock.Anything, mock.MatchedBy(func(input *usecase.MutateInput) bool {
		return input.Kind == usecase.MutationCreate &&
			input.ObjectType == entity.ObjectAccount &&
			input.Data["Name"] == "Northstar Logistics"
	})).Return(&usecase.MutateOutput{
		Result: &entity.SaveResult{ID: "001xxNEW", Success: true},
	}, nil)

	h := NewRecordHandler(uc, newTestLogger())

	c, rec := newContext(http.MethodPost, "/api/records/Account",
		`{"Name":"Northstar Logistics"}`)
	c.SetParamNames("type")
	c.SetParamValues("Account")
	require.NoError(t, h.CreateRecord(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "001xxNEW")
}

func TestSessionHandler_ResumeSession_RejectsOversizedFragment(t *testing.T) {
	h := NewSessionHandler(mocks.NewMockSessionUsecase(t), newTestLogger())

	c, rec := newContext(http.MethodPost, "/api/session",
		`{"fragment":"access_token=`+strings.Repeat("a", 5000)+`"}`)
	require.NoError(t, h.ResumeSession(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
}

func TestRecordHandler_CreateRecord_RejectsMissingType(t *testing.T) {
	h := NewRecordHandler(mocks.NewMockSessionUsecase(t), newTestLogger())

	c, rec := newContext(http.MethodPost, "/api/records/",
		`{"Name":"Northstar Logistics"}`)
	c.SetParamNames("type")
	c.SetParamValues("")
	require.NoError(t, h.CreateRecord(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
}

func TestRecordHandler_UpdateRecord_RejectsMissingPayload(t *testing.T) {
	h := NewRecordHandler(mocks.NewMockSessionUsecase(t), newTestLogger())

	c, rec := newContext(http.MethodPatch, "/api/records/Account/001xx", "")
	c.SetParamNames("type", "id")
	c.SetParamValues("Account", "001xx")
	require.NoError(t, h.UpdateRecord(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
}

func TestRecordHandler_DeleteRecord(t *testing.T) {
	uc := mocks.NewMockSessionUsecase(t)
	uc.On("Mutate", mock.Anything, mock.MatchedBy(func(input *usecase.MutateInput) bool {
		return input.Kind == usecase.MutationDelete && input.ID == "006xx"
	})).Return(&usecase.MutateOutput{
		Result: &entity.SaveResult{ID: "006xx", Success: true},
	}, nil)

	h := NewRecordHandler(uc, newTestLogger())

	c, rec := newContext(http.MethodDelete, "/api/records/Opportunity/006xx", "")
	c.SetParamNames("type", "id")
	c.SetParamValues("Opportunity", "006xx")
	require.NoError(t, h.DeleteRecord(c))

	assert.Equal(t, http.StatusOK, rec.Code)
}
