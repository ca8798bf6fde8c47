package middleware

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"urbantide.com/store/internal/http/flash"
	"urbantide.com/store/internal/shared/apperr"
	"urbantide.com/store/pkg/view"
)

// RequireAuth sends anonymous browsers to /login with a return_to and a
// flash; API callers get 401.
func RequireAuth(flashCodec *flash.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentIdentity(c).Authenticated() {
			c.Next()
			return
		}
		redirectToLogin(c, flashCodec, "Faça login para continuar.")
	}
}

func redirectToLogin(c *gin.Context, flashCodec *flash.Codec, msg string) {
	if WantsJSON(c) {
		Fail(c, apperr.UnauthorizedErr("Faça login para continuar."))
		return
	}

	SetFlashCookie(c, flashCodec, view.Flash{Kind: view.FlashWarning, Message: msg})
	c.Redirect(http.StatusFound, "/login?return_to="+url.QueryEscape(c.Request.URL.RequestURI()))
	c.Abort()
}
