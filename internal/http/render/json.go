package render

import (
	"github.com/gin-gonic/gin"

	"urbantide.com/store/pkg/view"
)

// JSON writes {"data": ..., "flash": ...}; flash is omitted when empty.
func JSON(c *gin.Context, status int, data any, f view.Flash) {
	body := gin.H{"data": data}
	if !f.Empty() {
		body["flash"] = f
	}
	c.JSON(status, body)
}
