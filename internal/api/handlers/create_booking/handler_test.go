package create_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m4rkov/CSI-SalesService/internal/api/handlers"
	createBooking "github.com/m4rkov/CSI-SalesService/internal/usecase/create_booking"
)

type stubUseCase struct {
	result *createBooking.Response
	err    error
}

func (u *stubUseCase) Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	return u.result, u.err
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

const validBody = `{
	"companyId": 1, "guideId": 2, "excursionId": 7, "familyId": 9,
	"date": "2026-09-10", "adults": 2, "children": 1,
	"travelerIds": [1, 2, 3]
}`

func doRequest(t *testing.T, uc CreateBookingUseCase, body string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewHandler(uc, nopLogger{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandleCreated(t *testing.T) {
	uc := &stubUseCase{result: &createBooking.Response{ID: 42, Status: "DRAFT", BookingCode: "AB12CD34EF"}}

	rec := doRequest(t, uc, validBody)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp createBooking.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "DRAFT", resp.Status)
}

func TestHandleInvalidBody(t *testing.T) {
	rec := doRequest(t, &stubUseCase{}, `{"companyId": "oops"`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleUnknownFieldRejected(t *testing.T) {
	rec := doRequest(t, &stubUseCase{}, `{"companyId": 1, "bogus": true}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleTravelerConflict(t *testing.T) {
	uc := &stubUseCase{err: &createBooking.TravelerConflictError{TravelerIDs: []int64{2, 3}}}

	rec := doRequest(t, uc, validBody)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp handlers.ConflictResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []int64{2, 3}, resp.TravelerIDs)
	assert.NotEmpty(t, resp.Error)
}

func TestHandleErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{createBooking.ErrDuplicateBooking, http.StatusBadRequest},
		{createBooking.ErrCompanyNotFound, http.StatusNotFound},
		{createBooking.ErrCompanyInactive, http.StatusBadRequest},
		{createBooking.ErrFamilyNotFound, http.StatusNotFound},
		{createBooking.ErrPricingUnavailable, http.StatusNotFound},
		{createBooking.ErrInvalidDate, http.StatusBadRequest},
		{createBooking.ErrInvalidInput, http.StatusBadRequest},
		{createBooking.ErrInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		rec := doRequest(t, &stubUseCase{err: tc.err}, validBody)
		assert.Equal(t, tc.code, rec.Code, "err=%v", tc.err)
	}
}

func TestHandlePricingUnavailableBody(t *testing.T) {
	rec := doRequest(t, &stubUseCase{err: createBooking.ErrPricingUnavailable}, validBody)

	var resp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "pricing_unavailable", resp.Error)
}
