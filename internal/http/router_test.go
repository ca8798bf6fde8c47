package http_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"urbantide.com/store/internal/database/dbtest"
	apphttp "urbantide.com/store/internal/http"
	"urbantide.com/store/internal/http/flash"
	"urbantide.com/store/internal/http/handlers"
	"urbantide.com/store/internal/http/middleware"
	"urbantide.com/store/internal/modules/admin"
	"urbantide.com/store/internal/modules/auth"
	"urbantide.com/store/internal/modules/catalog"
	"urbantide.com/store/internal/modules/checkout"
	"urbantide.com/store/internal/modules/coupon"
	"urbantide.com/store/internal/modules/products"
	"urbantide.com/store/internal/modules/promo"
	"urbantide.com/store/internal/storage"
)

const adminEmail = "admin@urbantide.com"

type testApp struct {
	t      *testing.T
	engine *gin.Engine
	repo   *products.Repo
	dist   string
}

func newApp(t *testing.T, models ...any) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)
	l := slog.New(slog.NewTextHandler(io.Discard, nil))

	if models == nil {
		models = append(auth.Models(), &products.Product{})
	}
	db := dbtest.Open(t, models...)
	return buildApp(t, db, l)
}

func buildApp(t *testing.T, db *gorm.DB, l *slog.Logger) *testApp {
	repo := products.NewRepo(db)
	ev := coupon.New("URBAN20", 20)
	asm := checkout.NewAssembler("5511991583540", ev)
	provider := auth.NewProvider(db, auth.NewBroker(), auth.Options{
		AdminEmail: adminEmail,
		BcryptCost: bcrypt.MinCost,
	}, l)
	dist := t.TempDir()
	rotator := promo.NewRotator(nil, time.Minute)
	rotator.Clock = func() time.Time { return promoNow }

	engine := apphttp.NewRouter(apphttp.Deps{
		Logger:    l,
		DistDir:   dist,
		Session:   middleware.SessionCfg{CookieName: "ut_session"},
		Flash:     flash.NewCodec([]byte("test-secret"), "ut_flash", false),
		Auth:      provider,
		Catalog:   catalog.NewService(repo, l),
		Assembler: asm,
		Coupon:    ev,
		Admin:     admin.NewService(repo, storage.NewLocal(t.TempDir(), "products", "/uploads"), admin.Options{Bucket: "products"}, l),
		Promo:     rotator,
	})
	return &testApp{t: t, engine: engine, repo: repo, dist: dist}
}

func (a *testApp) do(method, target, body string, cookies []*http.Cookie, headers ...string) *httptest.ResponseRecorder {
	a.t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func (a *testApp) login(email string) []*http.Cookie {
	a.t.Helper()
	creds := `{"email":"` + email + `","password":"secret123","password_confirm":"secret123"}`
	w := a.do(http.MethodPost, "/api/auth/signup", creds, nil)
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())

	w = a.do(http.MethodPost, "/api/auth/login", creds, nil)
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())
	return w.Result().Cookies()
}

func (a *testApp) seed(p products.Product) {
	a.t.Helper()
	require.NoError(a.t, a.repo.Upsert(context.Background(), p))
}

func polo() products.Product {
	stock := 5
	return products.Product{
		ID:       "p-polo",
		Name:     "Polo Navy",
		Brand:    "Urban Tide",
		Ref:      "FT-001",
		Price:    decimal.RequireFromString("100.00"),
		Category: products.CategoryPolo,
		Gender:   products.GenderMale,
		Image:    "/polo.jpg",
		Stock:    &stock,
		Sizes:    datatypes.JSONSlice[string]{"M", "G"},
	}
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

// promoNow falls on an even one-minute slot, so the rotation shows slide 0.
var promoNow = time.Unix(1_800_000_000, 0)

func promoIndex(t *testing.T, w *httptest.ResponseRecorder) float64 {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decode(t, w)["data"].(map[string]any)["index"].(float64)
}

func TestPromoNavigationIsPerRequest(t *testing.T) {
	a := newApp(t)

	assert.Equal(t, float64(0), promoIndex(t, a.do(http.MethodGet, "/api/promo", "", nil)))

	// One visitor clicks through the slides.
	assert.Equal(t, float64(1), promoIndex(t, a.do(http.MethodGet, "/api/promo?from=0&step=next", "", nil)))
	assert.Equal(t, float64(0), promoIndex(t, a.do(http.MethodGet, "/api/promo?from=1&step=next", "", nil)))
	assert.Equal(t, float64(1), promoIndex(t, a.do(http.MethodGet, "/api/promo?go=1", "", nil)))

	// Another visitor still sees the clock-driven slide.
	assert.Equal(t, float64(0), promoIndex(t, a.do(http.MethodGet, "/api/promo", "", nil)))

	w := a.do(http.MethodGet, "/api/promo?go=7", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = a.do(http.MethodGet, "/api/promo?from=0&step=sideways", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealth(t *testing.T) {
	w := newApp(t).do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, handlers.HealthMessage, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID))
}

func TestSPAFallback(t *testing.T) {
	a := newApp(t)

	w := a.do(http.MethodGet, "/catalog?category=Camisas+Polo", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, handlers.MissingIndexMsg, w.Body.String())

	require.NoError(t, os.WriteFile(filepath.Join(a.dist, "index.html"), []byte("<html>spa</html>"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(a.dist, "assets"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(a.dist, "assets", "app.js"), []byte("console.log(1)"), 0o644))

	w = a.do(http.MethodGet, "/product/abc", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "spa")

	w = a.do(http.MethodGet, "/assets/app.js", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "console.log(1)", w.Body.String())

	w = a.do(http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
}

func TestRouteGating(t *testing.T) {
	a := newApp(t)
	require.NoError(t, os.WriteFile(filepath.Join(a.dist, "index.html"), []byte("spa"), 0o644))

	w := a.do(http.MethodGet, "/checkout", "", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login?return_to="+url.QueryEscape("/checkout"), w.Header().Get("Location"))

	customer := a.login("cliente@example.com")
	w = a.do(http.MethodGet, "/checkout", "", customer)
	assert.Equal(t, http.StatusOK, w.Code)

	w = a.do(http.MethodGet, "/admin", "", customer)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	w = a.do(http.MethodGet, "/api/admin/products", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = a.do(http.MethodGet, "/api/admin/products", "", customer)
	assert.Equal(t, http.StatusForbidden, w.Code)

	staff := a.login(adminEmail)
	w = a.do(http.MethodGet, "/admin/products", "", staff)
	assert.Equal(t, http.StatusOK, w.Code)
	w = a.do(http.MethodGet, "/api/admin/products", "", staff)
	assert.Equal(t, http.StatusOK, w.Code)

	w = a.do(http.MethodGet, "/api/session", "", staff)
	body := decode(t, w)
	assert.Equal(t, true, body["isAdmin"])
}

func TestSessionRestoreFailureIsAnonymous(t *testing.T) {
	a := newApp(t)
	w := a.do(http.MethodGet, "/api/session", "", []*http.Cookie{{Name: "ut_session", Value: "stale"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decode(t, w)["authenticated"])
}

func TestCatalogListAndFilter(t *testing.T) {
	a := newApp(t)
	a.seed(polo())
	dress := polo()
	dress.ID, dress.Name, dress.Ref, dress.Category = "p-dress", "Vestido Midi", "FW-001", products.CategoryDresses
	a.seed(dress)

	w := a.do(http.MethodGet, "/api/products?category="+url.QueryEscape("Camisas Polo")+"&q=navy", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	items := decode(t, w)["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "p-polo", items[0].(map[string]any)["id"])

	w = a.do(http.MethodGet, "/api/products?category=Todos&q=zzz", "", nil)
	body := decode(t, w)
	assert.Empty(t, body["items"])
	assert.NotNil(t, body["empty"])
}

func TestCatalogFetchFailureReturnsEmptyList(t *testing.T) {
	a := newApp(t, auth.Models()...)
	w := a.do(http.MethodGet, "/api/products", "", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	body := decode(t, w)
	assert.Equal(t, []any{}, body["items"])
	assert.NotEmpty(t, body["error"])
}

func TestProductDetailWithCoupon(t *testing.T) {
	a := newApp(t)
	a.seed(polo())

	w := a.do(http.MethodGet, "/api/products/p-polo?size=M", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, "R$ 100,00", data["priceLabel"])
	assert.NotContains(t, data["message"], "CUPOM")

	w = a.do(http.MethodGet, "/api/products/p-polo?size=M&coupon=urban20", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data = decode(t, w)["data"].(map[string]any)
	assert.Equal(t, "R$ 80,00", data["priceLabel"])
	assert.Contains(t, data["message"], "CUPOM APLICADO: URBAN20 (20% OFF)")

	w = a.do(http.MethodGet, "/api/products/p-polo?coupon=NOPE", "", nil)
	data = decode(t, w)["data"].(map[string]any)
	assert.Equal(t, coupon.InvalidCodeMessage, data["couponError"])
	assert.Equal(t, "R$ 100,00", data["priceLabel"])

	w = a.do(http.MethodGet, "/api/products/p-polo?size=XG", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = a.do(http.MethodGet, "/api/products/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestApplyCoupon(t *testing.T) {
	a := newApp(t)
	a.seed(polo())

	w := a.do(http.MethodPost, "/api/coupons/apply", `{"code":"errado"}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, coupon.InvalidCodeMessage, decode(t, w)["error"])

	w = a.do(http.MethodPost, "/api/coupons/apply", `{"code":" Urban20 ","product_id":"p-polo","size":"G"}`, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, true, data["applied"])
	detail := data["detail"].(map[string]any)
	assert.Equal(t, "R$ 80,00", detail["priceLabel"])
}

func TestAdminTwoStepDelete(t *testing.T) {
	a := newApp(t)
	a.seed(polo())
	staff := a.login(adminEmail)

	w := a.do(http.MethodDelete, "/api/admin/products/p-polo", "", staff)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = a.do(http.MethodPost, "/api/admin/products/p-polo/delete", "", staff)
	require.Equal(t, http.StatusAccepted, w.Code)
	token := decode(t, w)["data"].(map[string]any)["token"].(string)

	w = a.do(http.MethodDelete, "/api/admin/products/p-polo", "", staff, "X-Confirm-Token", token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	_, err := a.repo.Get(context.Background(), "p-polo")
	assert.ErrorIs(t, err, products.ErrNotFound)
}

func TestAdminProductImages(t *testing.T) {
	a := newApp(t)
	p := polo()
	p.Images = datatypes.JSONSlice[string]{"/polo.jpg", "/polo-back.jpg"}
	a.seed(p)
	staff := a.login(adminEmail)

	w := a.do(http.MethodPut, "/api/admin/products/p-polo/images/primary", `{"url":"/polo-back.jpg"}`, staff)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "/polo-back.jpg", decode(t, w)["data"].(map[string]any)["image"])

	w = a.do(http.MethodDelete, "/api/admin/products/p-polo/images?url="+url.QueryEscape("/polo.jpg"), "", staff)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	stored, err := a.repo.Get(context.Background(), "p-polo")
	require.NoError(t, err)
	assert.Equal(t, []string{"/polo-back.jpg"}, []string(stored.Images))

	w = a.do(http.MethodDelete, "/api/admin/products/p-polo/images", "", staff)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = a.do(http.MethodDelete, "/api/admin/products/missing/images?url=/x.jpg", "", staff)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLogoutNeedsPost(t *testing.T) {
	a := newApp(t)
	customer := a.login("cliente@example.com")

	a.do(http.MethodGet, "/logout", "", customer)
	w := a.do(http.MethodGet, "/api/session", "", customer)
	assert.Equal(t, true, decode(t, w)["authenticated"], "GET must not end the session")

	w = a.do(http.MethodPost, "/logout", "", customer)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	w = a.do(http.MethodGet, "/api/session", "", customer)
	assert.Equal(t, false, decode(t, w)["authenticated"])
}

func TestAdminDeleteAllNeedsPhrase(t *testing.T) {
	a := newApp(t)
	a.seed(polo())
	staff := a.login(adminEmail)

	w := a.do(http.MethodDelete, "/api/admin/products", `{"confirm":"sim"}`, staff)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = a.do(http.MethodDelete, "/api/admin/products", `{"confirm":"`+admin.DeleteAllPhrase+`"}`, staff)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.EqualValues(t, 1, decode(t, w)["data"].(map[string]any)["deleted"])
}
