package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"urbantide.com/store/internal/http/middleware"
	"urbantide.com/store/internal/http/render"
	"urbantide.com/store/internal/http/validation"
	"urbantide.com/store/internal/modules/catalog"
	"urbantide.com/store/internal/modules/checkout"
	"urbantide.com/store/internal/modules/coupon"
	"urbantide.com/store/internal/modules/products"
	"urbantide.com/store/internal/shared/apperr"
	"urbantide.com/store/pkg/view"
)

const featuredCount = 4

type CatalogHandler struct {
	svc    *catalog.Service
	asm    *checkout.Assembler
	coupon *coupon.Evaluator
	log    *slog.Logger
}

func NewCatalogHandler(svc *catalog.Service, asm *checkout.Assembler, ev *coupon.Evaluator, l *slog.Logger) *CatalogHandler {
	return &CatalogHandler{svc: svc, asm: asm, coupon: ev, log: l}
}

func (h *CatalogHandler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": catalog.CategoryOptions()})
}

func (h *CatalogHandler) Sizes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": products.StandardSizes})
}

type listResponse struct {
	Items    []view.ProductCard `json:"items"`
	Category string             `json:"category"`
	Query    string             `json:"q"`
	Empty    *view.EmptyState   `json:"empty,omitempty"`
	Error    string             `json:"error,omitempty"`
}

func (h *CatalogHandler) cards(items []products.Product) []view.ProductCard {
	out := make([]view.ProductCard, 0, len(items))
	for _, p := range items {
		out = append(out, view.NewProductCard(p, h.asm.CardLink(p)))
	}
	return out
}

// List filters the catalog. A failed fetch still answers with an empty list
// next to the error so the page can leave its loading state.
func (h *CatalogHandler) List(c *gin.Context) {
	crit := catalog.Criteria{
		Category: strings.TrimSpace(c.Query("category")),
		Query:    c.Query("q"),
	}
	resp := listResponse{Items: []view.ProductCard{}, Category: crit.Category, Query: crit.Query}
	if crit.MatchesAll() {
		resp.Category = catalog.AllCategories
	}

	items, err := h.svc.Browse(c.Request.Context(), crit)
	if err != nil {
		_ = c.Error(err)
		resp.Error = apperr.GatewayErr("Erro ao carregar produtos: ", err).PublicMsg
		c.JSON(http.StatusBadGateway, resp)
		return
	}

	resp.Items = h.cards(items)
	if len(resp.Items) == 0 {
		resp.Empty = &view.NoResults
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogHandler) Featured(c *gin.Context) {
	items, err := h.svc.Featured(c.Request.Context(), featuredCount)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusBadGateway, gin.H{"items": []view.ProductCard{}, "error": apperr.GatewayErr("Erro ao carregar produtos: ", err).PublicMsg})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": h.cards(items)})
}

func (h *CatalogHandler) load(c *gin.Context, id string) (products.Product, bool) {
	p, err := h.svc.Product(c.Request.Context(), id)
	if errors.Is(err, products.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":      view.ProductNotFound.Title,
			"empty":      view.ProductNotFound,
			"request_id": middleware.GetRequestID(c),
		})
		return products.Product{}, false
	}
	if err != nil {
		c.Error(apperr.GatewayErr("Erro ao carregar produto: ", err))
		return products.Product{}, false
	}
	return p, true
}

// Detail assembles the product page for ?size= and ?coupon=. An unknown
// coupon code is reported on the page and leaves the price untouched.
func (h *CatalogHandler) Detail(c *gin.Context) {
	p, ok := h.load(c, c.Param("id"))
	if !ok {
		return
	}

	size := strings.TrimSpace(c.Query("size"))
	if _, err := checkout.SelectSize(p, size); err != nil {
		c.Error(sizeErr(err))
		return
	}

	var st coupon.State
	if code := c.Query("coupon"); code != "" {
		st = h.coupon.Apply(code)
	}

	page := view.NewProductDetailPage(h.asm.Assemble(p, checkout.UIState{Size: size, CouponApplied: st.Applied}))
	page.CouponCode = st.Code
	page.CouponError = st.Error
	c.JSON(http.StatusOK, gin.H{"data": page})
}

func sizeErr(err error) error {
	msg := "Tamanho indisponível para este produto."
	return apperr.InvalidErr(msg, map[string]string{"size": msg}).WithErr(err)
}

type couponInput struct {
	Code      string `json:"code" form:"code" binding:"required"`
	ProductID string `json:"product_id" form:"product_id"`
	Size      string `json:"size" form:"size"`
}

type couponResponse struct {
	coupon.State
	Percent int64                   `json:"percent"`
	Detail  *view.ProductDetailPage `json:"detail,omitempty"`
}

// ApplyCoupon checks a code and, with a product id, returns the repriced
// detail. A wrong code is a 400 carrying the coupon error.
func (h *CatalogHandler) ApplyCoupon(c *gin.Context) {
	var in couponInput
	if err := c.ShouldBind(&in); err != nil {
		c.Error(validation.BindErr(err, &in))
		return
	}

	st := h.coupon.Apply(in.Code)
	if !st.Applied {
		c.Error(apperr.InvalidErr(st.Error, map[string]string{"code": st.Error}))
		return
	}

	resp := couponResponse{State: st, Percent: h.coupon.Percent()}
	if in.ProductID != "" {
		p, ok := h.load(c, in.ProductID)
		if !ok {
			return
		}
		size := strings.TrimSpace(in.Size)
		if _, err := checkout.SelectSize(p, size); err != nil {
			size = ""
		}
		page := view.NewProductDetailPage(h.asm.Assemble(p, checkout.UIState{Size: size, CouponApplied: true}))
		page.CouponCode = st.Code
		resp.Detail = &page
	}
	render.JSON(c, http.StatusOK, resp, view.Flash{Kind: view.FlashSuccess, Message: "Cupom aplicado!"})
}

// Contact returns the chat links used by the floating button and the
// checkout instructions page.
func (h *CatalogHandler) Contact(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"phone":   h.asm.Phone(),
		"chatUrl": h.asm.ContactLink(),
	}})
}
