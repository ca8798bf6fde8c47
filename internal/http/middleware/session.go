package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"urbantide.com/store/internal/modules/auth"
)

const (
	ctxKeyIdentity  = "identity"
	ctxKeySessionID = "session_id"
)

// SessionRestorer resolves a session cookie to an identity.
type SessionRestorer interface {
	Restore(ctx context.Context, sessionID string) (auth.Identity, error)
}

type SessionCfg struct {
	CookieName string
	Secure     bool
}

// Session restores the identity behind the session cookie. Any restore
// failure leaves the request anonymous; a session that no longer exists
// also has its cookie cleared.
func Session(p SessionRestorer, cfg SessionCfg, l *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(cfg.CookieName)
		if err != nil || sid == "" {
			c.Next()
			return
		}

		id, err := p.Restore(c.Request.Context(), sid)
		switch {
		case errors.Is(err, auth.ErrSessionNotFound):
			ClearSessionCookie(c, cfg)
		case err != nil:
			l.WarnContext(c.Request.Context(), "session restore failed",
				slog.String("request_id", GetRequestID(c)),
				slog.Any("err", err),
			)
		default:
			c.Set(ctxKeyIdentity, id)
			c.Set(ctxKeySessionID, sid)
		}
		c.Next()
	}
}

func SetSessionCookie(c *gin.Context, cfg SessionCfg, sess auth.Session, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cfg.CookieName, sess.ID, maxAge, "/", "", cfg.Secure, true)
}

func ClearSessionCookie(c *gin.Context, cfg SessionCfg) {
	clearCookie(c, cfg.CookieName, cfg.Secure)
}

// CurrentIdentity is anonymous unless Session restored a login.
func CurrentIdentity(c *gin.Context) auth.Identity {
	if v, ok := c.Get(ctxKeyIdentity); ok {
		if id, ok := v.(auth.Identity); ok {
			return id
		}
	}
	return auth.Identity{}
}

// SessionID is the restored session cookie, empty when anonymous.
func SessionID(c *gin.Context) string {
	return c.GetString(ctxKeySessionID)
}
