package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"stayhub/config"
	"stayhub/constants"
	"stayhub/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// whoami echoes what the guard put in the context.
func whoami(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"id": PrincipalID(c), "role": PrincipalRole(c), "scope": VendorScope(c)})
}

func newRouter(g *Guard) *gin.Engine {
	r := gin.New()
	r.GET("/student", g.RequireStudent(), whoami)
	r.GET("/vendor", g.RequireVendor(), whoami)
	r.GET("/admin", g.RequireAdmin(), whoami)
	r.GET("/either", g.RequireAdminOrVendor(), whoami)
	return r
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGuardEnforced(t *testing.T) {
	tokens := services.NewTokenService("test-secret")
	r := newRouter(NewGuard(tokens, config.Enforced, config.Enforced))

	student, _ := tokens.Generate(constants.RoleStudent, "s-1", "s@example.com", time.Hour)
	vendor, _ := tokens.Generate(constants.RoleVendor, "v-1", "v@example.com", time.Hour)
	admin, _ := tokens.Generate(constants.RoleAdmin, "a-1", "a@example.com", time.Hour)

	cases := []struct {
		name   string
		path   string
		cookie *http.Cookie
		bearer string
		want   int
	}{
		{"no token", "/student", nil, "", http.StatusUnauthorized},
		{"garbage token", "/student", &http.Cookie{Name: constants.StudentCookie, Value: "nope"}, "", http.StatusUnauthorized},
		{"student cookie", "/student", &http.Cookie{Name: constants.StudentCookie, Value: student}, "", http.StatusOK},
		{"student bearer", "/student", nil, student, http.StatusOK},
		{"vendor token on student route", "/student", nil, vendor, http.StatusForbidden},
		{"vendor cookie", "/vendor", &http.Cookie{Name: constants.VendorCookie, Value: vendor}, "", http.StatusOK},
		{"student on admin route", "/admin", nil, student, http.StatusForbidden},
		{"admin cookie", "/admin", &http.Cookie{Name: constants.AdminCookie, Value: admin}, "", http.StatusOK},
		{"either with admin", "/either", &http.Cookie{Name: constants.AdminCookie, Value: admin}, "", http.StatusOK},
		{"either with vendor", "/either", &http.Cookie{Name: constants.VendorCookie, Value: vendor}, "", http.StatusOK},
		{"either with student", "/either", nil, student, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.cookie != nil {
				req.AddCookie(tc.cookie)
			}
			if tc.bearer != "" {
				req.Header.Set("Authorization", "Bearer "+tc.bearer)
			}
			if w := serve(r, req); w.Code != tc.want {
				t.Errorf("status = %d, want %d (%s)", w.Code, tc.want, w.Body.String())
			}
		})
	}
}

func TestGuardVendorScope(t *testing.T) {
	tokens := services.NewTokenService("test-secret")
	r := newRouter(NewGuard(tokens, config.Enforced, config.Enforced))
	vendor, _ := tokens.Generate(constants.RoleVendor, "v-1", "v@example.com", time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/vendor", nil)
	req.AddCookie(&http.Cookie{Name: constants.VendorCookie, Value: vendor})
	w := serve(r, req)
	if w.Code != http.StatusOK || w.Body.String() != `{"id":"v-1","role":"vendor","scope":"v-1"}` {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestGuardBypassed(t *testing.T) {
	r := newRouter(NewGuard(services.NewTokenService("test-secret"), config.Bypassed, config.Bypassed))

	w := serve(r, httptest.NewRequest(http.MethodGet, "/admin", nil))
	if w.Code != http.StatusOK || w.Body.String() != `{"id":"","role":"admin","scope":""}` {
		t.Errorf("admin bypass: %d %s", w.Code, w.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/vendor", nil)
	req.Header.Set(VendorHeader, "v-9")
	w = serve(r, req)
	if w.Code != http.StatusOK || w.Body.String() != `{"id":"v-9","role":"vendor","scope":"v-9"}` {
		t.Errorf("vendor bypass: %d %s", w.Code, w.Body.String())
	}

	// students are never bypassed
	if w := serve(r, httptest.NewRequest(http.MethodGet, "/student", nil)); w.Code != http.StatusUnauthorized {
		t.Errorf("student bypass: %d", w.Code)
	}
}

func TestSessionMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(SessionMiddleware())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, SessionID(c)) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Body.Len() == 0 || w.Header().Get(SessionHeader) != w.Body.String() {
		t.Errorf("generated session = %q header %q", w.Body.String(), w.Header().Get(SessionHeader))
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(SessionHeader, "sess-1")
	if w := serve(r, req); w.Body.String() != "sess-1" {
		t.Errorf("kept session = %q", w.Body.String())
	}
}
