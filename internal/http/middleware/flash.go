package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"urbantide.com/store/internal/http/flash"
	"urbantide.com/store/pkg/view"
)

const (
	CtxKeyFlash      = "flash"
	ctxKeyFlashCodec = "flash_codec"
)

// FlashMiddleware verifies the flash cookie and parks it on the context.
// The cookie survives until TakeFlash reads it, so the page and asset loads
// that follow a redirect do not eat the message before the SPA asks for
// it. A cookie that fails to verify is dropped right away.
func FlashMiddleware(codec *flash.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ctxKeyFlashCodec, codec)
		if v, err := c.Cookie(codec.CookieName); err == nil && v != "" {
			if f, err := codec.Decode(v); err == nil {
				c.Set(CtxKeyFlash, f)
			} else {
				clearCookie(c, codec.CookieName, codec.Secure)
			}
		}
		c.Next()
	}
}

// TakeFlash returns the pending flash once and clears its cookie.
func TakeFlash(c *gin.Context) *view.Flash {
	v, ok := c.Get(CtxKeyFlash)
	if !ok {
		return nil
	}
	f, _ := v.(*view.Flash)
	if codec, ok := c.Get(ctxKeyFlashCodec); ok {
		if codec, ok := codec.(*flash.Codec); ok {
			clearCookie(c, codec.CookieName, codec.Secure)
		}
	}
	c.Set(CtxKeyFlash, nil)
	return f
}

func SetFlashCookie(c *gin.Context, codec *flash.Codec, f view.Flash) {
	val, err := codec.Encode(f)
	if err != nil {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(codec.CookieName, val, codec.CookieMaxAge(), "/", "", codec.Secure, true)
}

func clearCookie(c *gin.Context, name string, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, "", -1, "/", "", secure, true)
}
