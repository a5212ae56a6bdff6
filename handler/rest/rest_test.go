package rest

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gearbox/core"
	"gearbox/internal/gearbox"
	"gearbox/pkg/number"

	"github.com/stretchr/testify/assert"
)

func TestPoolViewYearRates(t *testing.T) {
	pool := &core.Pool{
		BorrowRatePerBlock: number.Decimal("0.0000001"),
		SupplyRatePerBlock: number.Decimal("0.00000004"),
	}

	view := poolView(pool)
	assert.True(t, view.BorrowRatePerYear.Equal(pool.BorrowRatePerBlock.Mul(gearbox.BlocksPerYear)))
	assert.True(t, view.SupplyRatePerYear.Equal(pool.SupplyRatePerBlock.Mul(gearbox.BlocksPerYear)))
}

func TestAdminOnly(t *testing.T) {
	deps := Deps{System: &core.System{Admins: []string{"admin-1"}}}

	var called bool
	handler := adminOnly(deps, func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	// no operator header
	r := httptest.NewRequest("POST", "/allowlist/tokens", strings.NewReader("{}"))
	w := httptest.NewRecorder()
	handler(w, r)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, called)

	// operator not on the admin list
	r = httptest.NewRequest("POST", "/allowlist/tokens", strings.NewReader("{}"))
	r.Header.Set("X-Operator-ID", "user-1")
	w = httptest.NewRecorder()
	handler(w, r)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, called)

	// configured admin passes through
	r = httptest.NewRequest("POST", "/allowlist/tokens", strings.NewReader("{}"))
	r.Header.Set("X-Operator-ID", "admin-1")
	w = httptest.NewRecorder()
	handler(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, called)
}
