package session

import "net/http"

const DefaultCookieName = "showroom_session"

// CookieOptions defines how session cookies are issued.
type CookieOptions struct {
	Name   string
	Path   string
	Secure bool
}

func (o CookieOptions) normalize() CookieOptions {
	if o.Name == "" {
		o.Name = DefaultCookieName
	}
	if o.Path == "" {
		o.Path = "/"
	}
	return o
}

// SetCookie issues the session cookie. It has no expiry; the browser drops it
// when closed and the server drops the session on logout.
func SetCookie(w http.ResponseWriter, token string, opts CookieOptions) {
	opts = opts.normalize()

	http.SetCookie(w, &http.Cookie{
		Name:     opts.Name,
		Value:    token,
		Path:     opts.Path,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie removes the session cookie from the client.
func ClearCookie(w http.ResponseWriter, opts CookieOptions) {
	opts = opts.normalize()

	http.SetCookie(w, &http.Cookie{
		Name:     opts.Name,
		Value:    "",
		Path:     opts.Path,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// TokenFromRequest returns the token from the session cookie, or "" when absent.
func TokenFromRequest(r *http.Request, opts CookieOptions) string {
	opts = opts.normalize()
	c, err := r.Cookie(opts.Name)
	if err != nil {
		return ""
	}
	return c.Value
}
