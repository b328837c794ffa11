package security

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

func TestCookieRuleCandidates(t *testing.T) {
	cases := []struct {
		name   string
		secure bool
		want   []string
	}{
		{"plain mode", false, []string{"sid", "__Host-sid"}},
		{"secure mode", true, []string{"__Host-sid", "sid"}},
	}

	for _, tt := range cases {
		rule := CookieRule{Secure: "__Host-sid", Plain: "sid", SecureMode: tt.secure}
		if got := rule.Candidates(); !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("%s: Candidates()=%v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestCookieRuleSessionToken(t *testing.T) {
	cases := []struct {
		name    string
		secure  bool
		cookies map[string]string
		want    string
		found   bool
	}{
		{"none", false, nil, "", false},
		{"plain only", false, map[string]string{"sid": "abc"}, "abc", true},
		{"host-locked fallback in plain mode", false, map[string]string{"__Host-sid": "locked"}, "locked", true},
		{"plain preferred in plain mode", false, map[string]string{"sid": "abc", "__Host-sid": "locked"}, "abc", true},
		{"host-locked preferred in secure mode", true, map[string]string{"sid": "abc", "__Host-sid": "locked"}, "locked", true},
		{"plain fallback in secure mode", true, map[string]string{"sid": "abc"}, "abc", true},
		{"first present value wins even when empty", true, map[string]string{"__Host-sid": "", "sid": "abc"}, "", true},
		{"unrelated cookie", false, map[string]string{"session": "abc"}, "", false},
	}

	for _, tt := range cases {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/applications", nil)
		for name, value := range tt.cookies {
			req.AddCookie(&http.Cookie{Name: name, Value: value})
		}

		rule := CookieRule{Secure: "__Host-sid", Plain: "sid", SecureMode: tt.secure}
		got, found := rule.SessionToken(req)
		if got != tt.want || found != tt.found {
			t.Fatalf("%s: SessionToken()=(%q, %v), want (%q, %v)", tt.name, got, found, tt.want, tt.found)
		}
	}
}
