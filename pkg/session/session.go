package session

import (
	"net/http"

	"github.com/asavirtual/flightboard-backend/pkg/config"
	"github.com/asavirtual/flightboard-backend/pkg/enums"
)

// Cookie names for the session pair. The pair IS the session record; there is
// no server-side session table.
const (
	UsernameCookie = "fb_username"
	RoleCookie     = "fb_role"
)

// Session is the authenticated identity threaded through every request.
type Session struct {
	Username string
	Role     enums.StaffRole
}

// IsOwner reports whether the session belongs to the owner role.
func (s Session) IsOwner() bool {
	return s.Role == enums.StaffRoleOwner
}

// IsStaff reports whether the session belongs to any staff role.
func (s Session) IsStaff() bool {
	return s.Role.IsValid()
}

// Manager writes and reads the session cookie pair.
type Manager struct {
	cfg config.SessionConfig
}

func NewManager(cfg config.SessionConfig) *Manager {
	return &Manager{cfg: cfg}
}

// Issue sets the cookie pair for a freshly authenticated session. Both
// cookies are httpOnly, SameSite=Strict session cookies with no max age.
func (m *Manager) Issue(w http.ResponseWriter, sess Session) {
	http.SetCookie(w, m.cookie(UsernameCookie, sess.Username, 0))
	http.SetCookie(w, m.cookie(RoleCookie, sess.Role.String(), 0))
}

// Clear expires both cookies.
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, m.cookie(UsernameCookie, "", -1))
	http.SetCookie(w, m.cookie(RoleCookie, "", -1))
}

// Read extracts the session pair from the request. It returns false when
// either cookie is missing or the role value is not a known staff role. The
// caller still has to validate the pair against the staff directory.
func (m *Manager) Read(r *http.Request) (Session, bool) {
	userCookie, err := r.Cookie(UsernameCookie)
	if err != nil || userCookie.Value == "" {
		return Session{}, false
	}
	roleCookie, err := r.Cookie(RoleCookie)
	if err != nil {
		return Session{}, false
	}
	role, err := enums.ParseStaffRole(roleCookie.Value)
	if err != nil {
		return Session{}, false
	}
	return Session{Username: userCookie.Value, Role: role}, true
}

func (m *Manager) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   m.cfg.CookieDomain,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.cfg.CookieSecure,
		SameSite: http.SameSiteStrictMode,
	}
}
