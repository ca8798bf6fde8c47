package admin

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"urbantide.com/store/internal/http/middleware"
	"urbantide.com/store/internal/http/render"
	"urbantide.com/store/internal/http/validation"
	adminsvc "urbantide.com/store/internal/modules/admin"
	"urbantide.com/store/internal/modules/products"
	"urbantide.com/store/internal/shared/apperr"
	"urbantide.com/store/pkg/view"
)

const HeaderConfirmToken = "X-Confirm-Token"

type ProductsHandler struct {
	svc *adminsvc.Service
}

func NewProductsHandler(svc *adminsvc.Service) *ProductsHandler {
	return &ProductsHandler{svc: svc}
}

// owner keys the pending delete marks; one per admin session.
func owner(c *gin.Context) string {
	if sid := middleware.SessionID(c); sid != "" {
		return sid
	}
	return middleware.CurrentIdentity(c).UserID
}

func (h *ProductsHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	pending, _ := h.svc.PendingDelete(owner(c))
	c.JSON(http.StatusOK, gin.H{
		"items":    view.NewAdminProductRows(items, pending),
		"products": items,
	})
}

func (h *ProductsHandler) save(c *gin.Context, d products.Draft, status int) {
	p, fl, err := h.svc.Save(c.Request.Context(), d)
	if err != nil {
		c.Error(err)
		return
	}
	render.JSON(c, status, p, fl)
}

func (h *ProductsHandler) Create(c *gin.Context) {
	var d products.Draft
	if err := c.ShouldBindJSON(&d); err != nil {
		c.Error(validation.BindErr(err, &d))
		return
	}
	d.ID = ""
	h.save(c, d, http.StatusCreated)
}

func (h *ProductsHandler) Update(c *gin.Context) {
	var d products.Draft
	if err := c.ShouldBindJSON(&d); err != nil {
		c.Error(validation.BindErr(err, &d))
		return
	}
	d.ID = c.Param("id")
	h.save(c, d, http.StatusOK)
}

type imageInput struct {
	URL string `json:"url" form:"url" binding:"required"`
}

// RemoveImage takes the image URL from the body or ?url=.
func (h *ProductsHandler) RemoveImage(c *gin.Context) {
	var in imageInput
	if err := c.ShouldBind(&in); err != nil {
		c.Error(validation.BindErr(err, &in))
		return
	}
	p, fl, err := h.svc.RemoveImage(c.Request.Context(), c.Param("id"), in.URL)
	if err != nil {
		c.Error(err)
		return
	}
	render.JSON(c, http.StatusOK, p, fl)
}

func (h *ProductsHandler) SetPrimaryImage(c *gin.Context) {
	var in imageInput
	if err := c.ShouldBind(&in); err != nil {
		c.Error(validation.BindErr(err, &in))
		return
	}
	p, fl, err := h.svc.SetPrimaryImage(c.Request.Context(), c.Param("id"), in.URL)
	if err != nil {
		c.Error(err)
		return
	}
	render.JSON(c, http.StatusOK, p, fl)
}

type markResponse struct {
	ProductID string    `json:"product_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// MarkDelete is step one of a delete; the token goes back in
// X-Confirm-Token on the DELETE.
func (h *ProductsHandler) MarkDelete(c *gin.Context) {
	id := c.Param("id")
	tok, exp, fl := h.svc.MarkDelete(owner(c), id)
	render.JSON(c, http.StatusAccepted, markResponse{ProductID: id, Token: tok, ExpiresAt: exp}, fl)
}

func (h *ProductsHandler) ConfirmDelete(c *gin.Context) {
	fl, err := h.svc.ConfirmDelete(c.Request.Context(), owner(c), c.Param("id"), c.GetHeader(HeaderConfirmToken))
	if err != nil {
		c.Error(err)
		return
	}
	render.JSON(c, http.StatusOK, gin.H{"id": c.Param("id")}, fl)
}

func (h *ProductsHandler) CancelDelete(c *gin.Context) {
	render.JSON(c, http.StatusOK, gin.H{"id": c.Param("id")}, h.svc.CancelDelete(owner(c)))
}

type deleteAllInput struct {
	Confirm string `json:"confirm" form:"confirm"`
}

func (h *ProductsHandler) DeleteAll(c *gin.Context) {
	var in deleteAllInput
	if err := c.ShouldBind(&in); err != nil && !errors.Is(err, io.EOF) {
		c.Error(validation.BindErr(err, &in))
		return
	}
	n, fl, err := h.svc.DeleteAll(c.Request.Context(), in.Confirm)
	if err != nil {
		c.Error(err)
		return
	}
	render.JSON(c, http.StatusOK, gin.H{"deleted": n}, fl)
}

func (h *ProductsHandler) Sync(c *gin.Context) {
	n, fl, err := h.svc.Sync(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	render.JSON(c, http.StatusOK, gin.H{"synced": n}, fl)
}

func (h *ProductsHandler) Setup(c *gin.Context) {
	fl, err := h.svc.SetupStorage(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	render.JSON(c, http.StatusOK, gin.H{"ready": true}, fl)
}

// Upload takes multipart "files" plus the draft's current "image" and
// "images". On a partial failure the earlier URLs come back with the error.
func (h *ProductsHandler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.Error(apperr.InvalidErr("Envie as imagens como multipart/form-data.", map[string]string{"files": "Campo obrigatório."}))
		return
	}

	d := products.Draft{Image: c.PostForm("image"), Images: c.PostFormArray("images")}
	res, err := h.svc.Upload(c.Request.Context(), d, uploadFiles(form.File["files"]))
	if err != nil {
		if len(res.URLs) == 0 {
			c.Error(err)
			return
		}
		_ = c.Error(err)
		c.JSON(apperr.HTTPStatus(err), gin.H{
			"error":      apperr.PublicMessage(err),
			"request_id": middleware.GetRequestID(c),
			"data":       res,
		})
		return
	}
	render.JSON(c, http.StatusOK, res, res.Flash)
}

func uploadFiles(headers []*multipart.FileHeader) []adminsvc.File {
	files := make([]adminsvc.File, 0, len(headers))
	for _, fh := range headers {
		files = append(files, adminsvc.File{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Open:        func() (io.ReadCloser, error) { return fh.Open() },
		})
	}
	return files
}
