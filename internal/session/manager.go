package session

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gonotes/internal/pkg/jwtutil"
)

const contextKey = "session"

type Options struct {
	Secret       string
	TTL          time.Duration
	CookieName   string
	SecureCookie bool
}

// Manager binds sessions to requests. The cookie carries only a signed
// session id; everything else lives in the Store.
type Manager struct {
	store Store
	opts  Options
}

func NewManager(store Store, opts Options) *Manager {
	if opts.TTL <= 0 {
		opts.TTL = 24 * time.Hour
	}
	if opts.CookieName == "" {
		opts.CookieName = "notes_session"
	}
	return &Manager{store: store, opts: opts}
}

// Middleware loads or starts the request's session and saves it once the
// handlers are done if anything changed.
func (m *Manager) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := m.load(c)
		if err != nil {
			slog.ErrorContext(c.Request.Context(), "load session failed", "error", err)
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.Set(contextKey, sess)

		c.Next()

		if !sess.dirty {
			return
		}
		if err := m.store.Save(c.Request.Context(), sess.id, sess.data, m.opts.TTL); err != nil {
			slog.ErrorContext(c.Request.Context(), "save session failed", "error", err)
		}
	}
}

// Lookup returns the session attached by Middleware, if any.
func Lookup(c *gin.Context) (*Session, bool) {
	v, ok := c.Get(contextKey)
	if !ok {
		return nil, false
	}
	sess, ok := v.(*Session)
	return sess, ok
}

// FromContext is Lookup for handlers mounted behind Middleware.
func FromContext(c *gin.Context) *Session {
	sess, ok := Lookup(c)
	if !ok {
		panic("session: middleware not installed")
	}
	return sess
}

// Login records username as the claimed identity under a fresh session id
// and confirmation token, discarding the pre-login id.
func (m *Manager) Login(c *gin.Context, username string) error {
	sess := FromContext(c)
	flashes := sess.data.Flashes
	if err := m.renew(c, sess); err != nil {
		return err
	}
	sess.data.Username = username
	sess.data.Flashes = flashes
	return nil
}

// Destroy drops the claimed identity together with the session record and
// continues the request on a new anonymous session.
func (m *Manager) Destroy(c *gin.Context) error {
	return m.renew(c, FromContext(c))
}

// DestroyUser ends every session that claims username, the current one
// included, and continues the request on a new anonymous session.
func (m *Manager) DestroyUser(c *gin.Context, username string) error {
	if err := m.store.DeleteByUsername(c.Request.Context(), username); err != nil {
		return fmt.Errorf("delete user sessions failed: %w", err)
	}
	return m.renew(c, FromContext(c))
}

func (m *Manager) renew(c *gin.Context, sess *Session) error {
	if err := m.store.Delete(c.Request.Context(), sess.id); err != nil {
		return fmt.Errorf("delete session failed: %w", err)
	}
	fresh, err := m.start(c)
	if err != nil {
		return err
	}
	*sess = *fresh
	return nil
}

func (m *Manager) load(c *gin.Context) (*Session, error) {
	raw, err := c.Cookie(m.opts.CookieName)
	if err != nil || raw == "" {
		return m.start(c)
	}

	claims, err := jwtutil.ParseToken(m.opts.Secret, raw)
	if err != nil {
		return m.start(c)
	}

	data, err := m.store.Load(c.Request.Context(), claims.SessionID())
	if err != nil {
		return nil, err
	}
	if data == nil {
		return m.start(c)
	}
	return &Session{id: claims.SessionID(), data: data}, nil
}

func (m *Manager) start(c *gin.Context) (*Session, error) {
	csrf, err := newCSRFToken()
	if err != nil {
		return nil, err
	}
	sess := &Session{
		id:    uuid.NewString(),
		data:  &Data{CSRFToken: csrf},
		dirty: true,
	}

	token, err := jwtutil.GenerateToken(m.opts.Secret, m.opts.TTL, sess.id)
	if err != nil {
		return nil, err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.opts.CookieName, token, int(m.opts.TTL.Seconds()), "/", "", m.opts.SecureCookie, true)
	return sess, nil
}
