package handlers

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"urbantide.com/store/internal/http/middleware"
	"urbantide.com/store/internal/shared/apperr"
)

const (
	HealthMessage   = "Server is up and running. Version: COUPON_SYSTEM_V3"
	MissingIndexMsg = "Error: index.html not found. Ensure the project is built correctly."
)

// StaticHandler hosts the pre-built SPA bundle.
type StaticHandler struct {
	DistDir string
}

func NewStaticHandler(distDir string) *StaticHandler {
	return &StaticHandler{DistDir: distDir}
}

func (h *StaticHandler) Health(c *gin.Context) {
	c.String(http.StatusOK, HealthMessage)
}

// Index serves the entry document for client-side routes.
func (h *StaticHandler) Index(c *gin.Context) {
	index := filepath.Join(h.DistDir, "index.html")
	if !isFile(index) {
		c.String(http.StatusNotFound, MissingIndexMsg)
		return
	}
	c.Header("Cache-Control", "no-cache")
	c.File(index)
}

// Fallback serves a bundle file when one matches the path, and the entry
// document otherwise. Unknown API paths get a JSON 404.
func (h *StaticHandler) Fallback(c *gin.Context) {
	if middleware.WantsJSON(c) && strings.HasPrefix(c.Request.URL.Path, "/api/") {
		c.Error(apperr.NotFoundErr("Recurso não encontrado."))
		return
	}
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		c.String(http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
		return
	}

	rel := path.Clean("/" + c.Request.URL.Path)
	if rel != "/" {
		candidate := filepath.Join(h.DistDir, filepath.FromSlash(rel))
		if isFile(candidate) {
			c.File(candidate)
			return
		}
	}
	h.Index(c)
}

func isFile(p string) bool {
	st, err := os.Stat(p)
	return err == nil && !st.IsDir()
}
