package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"urbantide.com/store/internal/http/flash"
	"urbantide.com/store/internal/shared/apperr"
	"urbantide.com/store/pkg/view"
)

// RequireAdmin gates on the role claim: anonymous goes to login, a signed
// in non-admin goes home (403 for API callers).
func RequireAdmin(flashCodec *flash.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := CurrentIdentity(c)
		if !id.Authenticated() {
			redirectToLogin(c, flashCodec, "Faça login para acessar o painel.")
			return
		}

		if !id.IsAdmin() {
			if WantsJSON(c) {
				Fail(c, apperr.ForbiddenErr("Acesso restrito a administradores."))
				return
			}
			SetFlashCookie(c, flashCodec, view.Flash{
				Kind:    view.FlashError,
				Message: "Acesso restrito a administradores.",
			})
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}

		c.Next()
	}
}
