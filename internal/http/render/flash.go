package render

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"urbantide.com/store/internal/http/flash"
	"urbantide.com/store/internal/http/middleware"
	"urbantide.com/store/pkg/view"
)

// Redirect sends a browser to location with f waiting in the flash cookie.
// API callers get {"data":{"redirect":location},"flash":f} instead, because
// fetch would follow a redirect without telling the page.
func Redirect(c *gin.Context, codec *flash.Codec, location string, f view.Flash) {
	if middleware.WantsJSON(c) {
		JSON(c, http.StatusOK, gin.H{"redirect": location}, f)
		return
	}
	middleware.SetFlashCookie(c, codec, f)
	c.Redirect(http.StatusSeeOther, location)
}
