package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilangpay/payslip-backend-go/internal/pkg/jwt"
)

func newTestRouter(svc *fakePayslipService) (http.Handler, jwt.Service) {
	jwtService := jwt.NewJWTService("test-secret", "15m")
	handler := NewPayslipHandler(svc)
	return NewRouter(jwtService, handler, []string{"http://localhost:3000"}), jwtService
}

func TestRouter_Heartbeat(t *testing.T) {
	router, _ := newTestRouter(&fakePayslipService{})

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_PayslipsRequireToken(t *testing.T) {
	router, _ := newTestRouter(&fakePayslipService{})

	r := httptest.NewRequest(http.MethodGet, "/api/v1/payslips", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_PayslipsWithAccessToken(t *testing.T) {
	router, jwtService := newTestRouter(&fakePayslipService{})

	token, _, err := jwtService.GenerateAccessToken("user-1", "comp-1")
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/api/v1/payslips", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
}
