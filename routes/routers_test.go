package routes

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"

	"stayhub/config"
	"stayhub/constants"
	"stayhub/middleware"
	"stayhub/services"
	"stayhub/services/logger"
	"stayhub/services/notification"
	"stayhub/store/memstore"
	"stayhub/validator"
)

type envelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Error      string          `json:"error"`
	Code       string          `json:"code"`
	Pagination *struct {
		Total int64 `json:"total"`
	} `json:"pagination"`
}

type testAPI struct {
	t      *testing.T
	router *gin.Engine
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validator.RegisterGinTagNames()
	log := logger.NewNopLogger()
	tokens := services.NewTokenService("test-secret")
	svc := NewServices(Dependencies{
		Store:            memstore.New(),
		Notifier:         &notification.Recorder{},
		Mailer:           services.LogMailer{Logger: log},
		Tokens:           tokens,
		Logger:           log,
		PropertyIDPrefix: "PG",
		PropertyIDOffset: 1000,
	})
	if err := svc.Auth.SeedAdmin(context.Background(), "admin@stayhub.io", "adminpass"); err != nil {
		t.Fatal(err)
	}
	router := gin.New()
	SetupRoutes(router, svc, middleware.NewGuard(tokens, config.Enforced, config.Enforced), false, log)
	return &testAPI{t: t, router: router}
}

func (a *testAPI) do(method, path string, body interface{}, cookies ...*http.Cookie) (*httptest.ResponseRecorder, envelope) {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			a.t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			a.t.Fatalf("%s %s: bad body %q", method, path, w.Body.String())
		}
	}
	return w, env
}

func cookieNamed(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func (a *testAPI) expect(w *httptest.ResponseRecorder, env envelope, status int) {
	a.t.Helper()
	if w.Code != status {
		a.t.Fatalf("status = %d, want %d: %s", w.Code, status, w.Body.String())
	}
	if env.Success != (status < 300) {
		a.t.Fatalf("success = %v for status %d", env.Success, status)
	}
}

func decode(t *testing.T, raw json.RawMessage, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(raw, v); err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
}

func TestPing(t *testing.T) {
	api := newTestAPI(t)
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	api.router.ServeHTTP(w, req)
	if w.Body.String() != "pong" {
		t.Errorf("ping = %q", w.Body.String())
	}
}

func TestBookingFlow(t *testing.T) {
	api := newTestAPI(t)

	w, env := api.do(http.MethodPost, "/api/admin/login", map[string]string{"identifier": "admin@stayhub.io", "password": "adminpass"})
	api.expect(w, env, http.StatusOK)
	admin := cookieNamed(w, constants.AdminCookie)
	if admin == nil || !admin.HttpOnly {
		t.Fatalf("admin cookie = %+v", admin)
	}

	w, env = api.do(http.MethodPost, "/api/auth/register", map[string]string{
		"name": "Asha", "email": "asha@example.com", "phone": "9000000001", "password": "secret123",
	})
	api.expect(w, env, http.StatusCreated)
	student := cookieNamed(w, constants.StudentCookie)
	if student == nil {
		t.Fatal("no student cookie")
	}
	var account struct {
		ID string `json:"_id"`
	}
	decode(t, env.Data, &account)

	// scenario: a new property has zero roll-ups until rooms are added
	w, env = api.do(http.MethodPost, "/api/admin/vendor-properties", map[string]interface{}{
		"name": "Green Nest", "type": "PG", "gender": "female", "area": "HSR", "city": "Bengaluru",
		"state": "Karnataka", "pincode": "560102", "contactNumber": "9876543210", "vendorId": "vendor-1",
	}, admin)
	api.expect(w, env, http.StatusCreated)
	var prop struct {
		ID         string `json:"_id"`
		PropertyID string `json:"propertyId"`
		TotalBeds  int    `json:"totalBeds"`
	}
	decode(t, env.Data, &prop)
	if prop.PropertyID != "PG1001" || prop.TotalBeds != 0 {
		t.Errorf("property = %+v", prop)
	}

	w, env = api.do(http.MethodPost, "/api/admin/vendor-properties/"+prop.ID+"/rooms", map[string]interface{}{
		"noOfSharing": 3, "acType": "AC", "bedSize": "Single", "rent": 6000, "totalBeds": 3,
	}, admin)
	api.expect(w, env, http.StatusCreated)
	var added struct {
		Room struct {
			ID   string `json:"_id"`
			Beds []struct {
				ID string `json:"_id"`
			} `json:"beds"`
		} `json:"room"`
		Property struct {
			TotalBeds     int `json:"totalBeds"`
			AvailableBeds int `json:"availableBeds"`
		} `json:"property"`
	}
	decode(t, env.Data, &added)
	if added.Property.TotalBeds != 3 || added.Property.AvailableBeds != 3 || len(added.Room.Beds) != 3 {
		t.Fatalf("room added = %+v", added)
	}

	booking := map[string]interface{}{
		"student": account.ID, "property": prop.ID, "room": added.Room.ID, "bed": added.Room.Beds[0].ID,
		"checkInDate": "2024-07-15T00:00:00Z", "totalAmount": 6000, "advanceAmount": 1000,
	}
	w, env = api.do(http.MethodPost, "/api/booking", booking, admin)
	api.expect(w, env, http.StatusCreated)

	w, env = api.do(http.MethodPost, "/api/booking", booking, admin)
	api.expect(w, env, http.StatusBadRequest)
	if env.Code != "CONFLICT" || !strings.Contains(env.Error, "not available") {
		t.Errorf("double booking = %+v", env)
	}

	w, env = api.do(http.MethodPut, "/api/admin/vendor-properties/"+prop.ID+"/rooms/"+added.Room.ID, map[string]interface{}{
		"noOfSharing": 3, "acType": "AC", "bedSize": "Single", "rent": 6000, "totalBeds": 1,
	}, admin)
	api.expect(w, env, http.StatusBadRequest)
	if env.Error != "Cannot reduce beds below occupied count" {
		t.Errorf("shrink error = %q", env.Error)
	}

	w, env = api.do(http.MethodGet, "/api/admin/vendor-properties/"+prop.ID, nil, admin)
	api.expect(w, env, http.StatusOK)
	var rollups struct {
		OccupiedBeds  int `json:"occupiedBeds"`
		AvailableBeds int `json:"availableBeds"`
	}
	decode(t, env.Data, &rollups)
	if rollups.OccupiedBeds != 1 || rollups.AvailableBeds != 2 {
		t.Errorf("roll-ups = %+v", rollups)
	}

	w, env = api.do(http.MethodGet, "/api/student/bookings", nil, student)
	api.expect(w, env, http.StatusOK)
	if env.Pagination == nil || env.Pagination.Total != 1 {
		t.Errorf("student bookings pagination = %+v", env.Pagination)
	}

	w, env = api.do(http.MethodGet, "/api/booking/stats", nil, admin)
	api.expect(w, env, http.StatusOK)
}

func TestRoleGuards(t *testing.T) {
	api := newTestAPI(t)

	w, env := api.do(http.MethodGet, "/api/booking", nil)
	api.expect(w, env, http.StatusUnauthorized)

	w, env = api.do(http.MethodPost, "/api/auth/register", map[string]string{
		"name": "Asha", "email": "asha@example.com", "phone": "9000000001", "password": "secret123",
	})
	api.expect(w, env, http.StatusCreated)
	student := cookieNamed(w, constants.StudentCookie)

	w, env = api.do(http.MethodGet, "/api/booking", nil, &http.Cookie{Name: constants.AdminCookie, Value: student.Value})
	api.expect(w, env, http.StatusForbidden)

	w, env = api.do(http.MethodGet, "/api/vendor-properties", nil)
	api.expect(w, env, http.StatusUnauthorized)
}

func TestValidationEnvelope(t *testing.T) {
	api := newTestAPI(t)

	w, env := api.do(http.MethodPost, "/api/auth/register", map[string]string{"email": "nope"})
	api.expect(w, env, http.StatusBadRequest)
	if env.Code != "VALIDATION_ERROR" || !strings.Contains(env.Error, "name is required") {
		t.Errorf("envelope = %+v", env)
	}

	w, env = api.do(http.MethodPost, "/api/frontend/booking", map[string]interface{}{
		"phone": "9000000099", "property": "p", "room": "r", "bed": "b", "checkInDate": "2024-07-15T00:00:00Z",
	})
	api.expect(w, env, http.StatusUnauthorized)
	if env.Error != "Please login" {
		t.Errorf("frontend booking without account = %+v", env)
	}
}

func TestWalletFlow(t *testing.T) {
	api := newTestAPI(t)

	w, env := api.do(http.MethodPost, "/api/admin/login", map[string]string{"identifier": "admin@stayhub.io", "password": "adminpass"})
	api.expect(w, env, http.StatusOK)
	admin := cookieNamed(w, constants.AdminCookie)

	w, env = api.do(http.MethodPost, "/api/auth/register", map[string]string{
		"name": "Asha", "email": "asha@example.com", "phone": "9000000001", "password": "secret123",
	})
	api.expect(w, env, http.StatusCreated)
	student := cookieNamed(w, constants.StudentCookie)
	var account struct {
		ID string `json:"_id"`
	}
	decode(t, env.Data, &account)

	w, env = api.do(http.MethodPost, "/api/admin/payments", map[string]interface{}{"student": account.ID, "type": "credit", "amount": 1000}, admin)
	api.expect(w, env, http.StatusCreated)

	w, env = api.do(http.MethodPost, "/api/admin/payments", map[string]interface{}{"student": account.ID, "type": "debit", "amount": 1500}, admin)
	api.expect(w, env, http.StatusBadRequest)

	w, env = api.do(http.MethodGet, "/api/student/wallet", nil, student)
	api.expect(w, env, http.StatusOK)
	var wallet struct {
		Balance      float64           `json:"balance"`
		Transactions []json.RawMessage `json:"transactions"`
	}
	decode(t, env.Data, &wallet)
	if wallet.Balance != 1000 || len(wallet.Transactions) != 1 {
		t.Errorf("wallet = %+v", wallet)
	}

	w, env = api.do(http.MethodGet, "/api/admin/payments", nil, admin)
	api.expect(w, env, http.StatusBadRequest)
}
