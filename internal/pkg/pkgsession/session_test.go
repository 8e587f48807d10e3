package pkgsession

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

type seqGenerator struct {
	n int
}

func (g *seqGenerator) Generate() string {
	g.n++
	return "sid-" + string(rune('0'+g.n))
}

func TestMiddlewareIssuesAndReusesID(t *testing.T) {
	gen := &seqGenerator{}
	mgr := NewManager(Options{Secret: []byte("0123456789abcdef0123456789abcdef")}, gen)

	var seen []string
	h := mgr.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, ID(r.Context()))
	}))

	first := httptest.NewRecorder()
	h.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))

	cookies := first.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != DefaultCookieName {
		t.Fatalf("expected one session cookie, got %v", cookies)
	}
	if !cookies[0].HttpOnly {
		t.Fatalf("expected http-only cookie")
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	second := httptest.NewRecorder()
	h.ServeHTTP(second, req)

	if len(seen) != 2 || seen[0] != "sid-1" || seen[1] != "sid-1" {
		t.Fatalf("expected the same id twice, got %v", seen)
	}
	if gen.n != 1 {
		t.Fatalf("expected generator called once, got %d", gen.n)
	}
	if len(second.Result().Cookies()) != 0 {
		t.Fatalf("expected no new cookie for a browser-session cookie")
	}
}

func TestMiddlewareRefreshesExpiringCookie(t *testing.T) {
	gen := &seqGenerator{}
	mgr := NewManager(Options{Secret: []byte("0123456789abcdef0123456789abcdef"), MaxAge: 1800}, gen)

	var seen []string
	h := mgr.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, ID(r.Context()))
	}))

	first := httptest.NewRecorder()
	h.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))
	issued := first.Result().Cookies()
	if len(issued) != 1 || issued[0].MaxAge != 1800 {
		t.Fatalf("expected one cookie with MaxAge 1800, got %v", issued)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(issued[0])
	second := httptest.NewRecorder()
	h.ServeHTTP(second, req)

	refreshed := second.Result().Cookies()
	if len(refreshed) != 1 || refreshed[0].MaxAge != 1800 {
		t.Fatalf("expected the active session cookie to be re-issued, got %v", refreshed)
	}

	again := httptest.NewRequest(http.MethodGet, "/", nil)
	again.AddCookie(refreshed[0])
	h.ServeHTTP(httptest.NewRecorder(), again)

	if len(seen) != 3 || seen[0] != "sid-1" || seen[1] != "sid-1" || seen[2] != "sid-1" {
		t.Fatalf("expected the id to survive refreshes, got %v", seen)
	}
	if gen.n != 1 {
		t.Fatalf("expected generator called once, got %d", gen.n)
	}
}

func TestMiddlewareReplacesForeignCookie(t *testing.T) {
	gen := &seqGenerator{}
	mgr := NewManager(Options{Name: "dash", Secret: []byte("another-secret-another-secret-xx")}, gen)

	var got string
	h := mgr.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = ID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "dash", Value: "tampered"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got != "sid-1" {
		t.Fatalf("expected fresh id, got %q", got)
	}
}
