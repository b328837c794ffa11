package security

import (
	"net/http"
)

// CookieRule names the session cookie. Secure is the host-locked name used
// when the deployment terminates TLS itself; Plain is used otherwise.
type CookieRule struct {
	Secure     string
	Plain      string
	SecureMode bool
}

// Candidates lists cookie names in lookup order: the name for the current
// mode, then the plain name, then the host-locked name. Duplicates are
// dropped.
func (r CookieRule) Candidates() []string {
	primary := r.Plain
	if r.SecureMode {
		primary = r.Secure
	}

	names := make([]string, 0, 3)
	seen := make(map[string]struct{}, 3)
	for _, name := range []string{primary, r.Plain, r.Secure} {
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

// SessionToken returns the value of the first session cookie present on
// req, even when that value is empty. An empty token never authenticates.
func (r CookieRule) SessionToken(req *http.Request) (string, bool) {
	for _, name := range r.Candidates() {
		cookie, err := req.Cookie(name)
		if err != nil {
			continue
		}
		return cookie.Value, true
	}
	return "", false
}
