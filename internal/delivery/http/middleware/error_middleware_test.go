package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	domainerrors "crmdash/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func handleError(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()

	m := NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/records/Account/001xx", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	m.HandleHTTPError(err, c)

	return rec
}

func TestErrorMiddleware_MissingRecordIsNotFound(t *testing.T) {
	err := domainerrors.NewTransportError("get record", http.StatusNotFound,
		errors.New("no such record"))

	rec := handleError(t, errors.Wrap(err, "failed to fetch record"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "RECORD_NOT_FOUND")
}

func TestErrorMiddleware_TransportFailureIsBadGateway(t *testing.T) {
	err := domainerrors.NewTransportError("list accounts", http.StatusInternalServerError, nil)

	rec := handleError(t, err)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "TRANSPORT_FAILURE")
}

func TestErrorMiddleware_AppErrorKeepsItsCode(t *testing.T) {
	rec := handleError(t, domainerrors.ErrAuthenticationRejected)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "AUTHENTICATION_REJECTED")
}

func TestErrorMiddleware_UnknownErrorIsInternal(t *testing.T) {
	rec := handleError(t, errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "INTERNAL_ERROR")
}
