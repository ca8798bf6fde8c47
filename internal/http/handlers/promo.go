package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"urbantide.com/store/internal/modules/promo"
	"urbantide.com/store/internal/shared/apperr"
)

type PromoHandler struct {
	rotator *promo.Rotator
}

func NewPromoHandler(r *promo.Rotator) *PromoHandler { return &PromoHandler{rotator: r} }

// Current returns the slide for this request only. With no query it is the
// clock-driven slide; ?go=<n> shows slide n and ?from=<i>&step=next|prev
// moves relative to the slide the client is showing. Nothing is stored.
func (h *PromoHandler) Current(c *gin.Context) {
	if v := c.Query("go"); v != "" {
		n, err := strconv.Atoi(v)
		view, ok := h.rotator.Show(n)
		if err != nil || !ok {
			c.Error(invalidSlide("go"))
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": view})
		return
	}

	var step int
	switch c.Query("step") {
	case "":
		c.JSON(http.StatusOK, gin.H{"data": h.rotator.Current()})
		return
	case "next":
		step = 1
	case "prev":
		step = -1
	default:
		c.Error(invalidSlide("step"))
		return
	}

	from := h.rotator.Current().Index
	if v := c.Query("from"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			c.Error(invalidSlide("from"))
			return
		}
		from = n
	}
	view, ok := h.rotator.Step(from, step)
	if !ok {
		c.Error(invalidSlide("from"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": view})
}

func invalidSlide(field string) error {
	return apperr.InvalidErr("Slide inválido.", map[string]string{field: "Slide inválido."})
}
