package routes

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront/database/dbtest"
	"github.com/junaidrashid-git/storefront/events"
	"github.com/junaidrashid-git/storefront/gateway"
	"github.com/junaidrashid-git/storefront/middleware"
	"github.com/junaidrashid-git/storefront/models"
	"github.com/junaidrashid-git/storefront/spreadsheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const adminKey = "admin-key"

type api struct {
	t      *testing.T
	db     *gorm.DB
	router *gin.Engine
}

func newAPI(t *testing.T) *api {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := dbtest.Open(t)
	gw := gateway.New(db, gateway.NewSigner("test-secret", time.Hour), gateway.NewMemoryTokenStore(""), zap.NewNop(),
		gateway.WithPasswordCost(bcrypt.MinCost))
	deps := &middleware.Deps{Gateway: gw, Publisher: events.Nop{}, Log: zap.NewNop(), AdminAPIKey: adminKey}
	return &api{t: t, db: db, router: NewRouter(deps, events.NewHub(zap.NewNop()), nil)}
}

func (a *api) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

// register signs up and signs in, returning the bearer token.
func (a *api) register(email string) string {
	a.t.Helper()
	w := a.do(http.MethodPost, "/auth/signup", "", gin.H{"email": email, "password": "secret1", "full_name": "Asha Rao"})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())

	w = a.do(http.MethodPost, "/auth/signin", "", gin.H{"email": email, "password": "secret1"})
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())
	token, _ := decode(a.t, w)["token"].(string)
	require.NotEmpty(a.t, token)
	return token
}

func (a *api) product(name string, price float64) models.Product {
	a.t.Helper()
	p := models.Product{Name: name, Price: price, Category: "general"}
	require.NoError(a.t, a.db.Create(&p).Error)
	return p
}

func TestHealth(t *testing.T) {
	a := newAPI(t)
	w := a.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthFlow(t *testing.T) {
	a := newAPI(t)

	w := a.do(http.MethodPost, "/auth/signup", "", gin.H{"email": "asha@example.com", "password": "123"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	token := a.register("asha@example.com")

	w = a.do(http.MethodPost, "/auth/signup", "", gin.H{"email": "new@example.com", "password": "secret1", "full_name": " "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = a.do(http.MethodPost, "/auth/signup", "", gin.H{"email": "asha@example.com", "password": "secret1", "full_name": "Asha"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = a.do(http.MethodPost, "/auth/signin", "", gin.H{"email": "asha@example.com", "password": "wrong-one"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid email or password", decode(t, w)["error"])

	w = a.do(http.MethodGet, "/auth/session", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "anonymous", decode(t, w)["state"])

	w = a.do(http.MethodGet, "/auth/session", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "authenticated", decode(t, w)["state"])

	w = a.do(http.MethodPost, "/auth/signout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = a.do(http.MethodGet, "/user/", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code, "revoked token")
}

func TestProfile(t *testing.T) {
	a := newAPI(t)

	w := a.do(http.MethodGet, "/user/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := a.register("asha@example.com")
	w = a.do(http.MethodGet, "/user/", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Asha Rao", decode(t, w)["full_name"])

	w = a.do(http.MethodPut, "/user/", token, gin.H{"full_name": "Asha R."})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Asha R.", decode(t, w)["full_name"])

	w = a.do(http.MethodPut, "/user/", token, gin.H{"full_name": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCatalog(t *testing.T) {
	a := newAPI(t)
	p := a.product("Mug", 200)
	a.product("Lamp", 1500)

	w := a.do(http.MethodGet, "/products?max_price=1000", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var products []models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	require.Len(t, products, 1)
	assert.Equal(t, p.ID, products[0].ID)

	w = a.do(http.MethodGet, "/products?min_price=abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = a.do(http.MethodGet, "/products/"+p.ID, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = a.do(http.MethodGet, "/products/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCartAndCheckout(t *testing.T) {
	a := newAPI(t)
	token := a.register("asha@example.com")
	shirt := a.product("Shirt", 100)
	socks := a.product("Socks", 50)

	w := a.do(http.MethodPost, "/user/checkout", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code, "empty cart")

	w = a.do(http.MethodPost, "/user/cart", token, gin.H{"product_id": shirt.ID, "quantity": 1})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = a.do(http.MethodPost, "/user/cart", token, gin.H{"product_id": shirt.ID, "quantity": 1})
	require.Equal(t, http.StatusOK, w.Code)
	w = a.do(http.MethodPost, "/user/cart", token, gin.H{"product_id": socks.ID})
	require.Equal(t, http.StatusOK, w.Code)

	w = a.do(http.MethodGet, "/user/cart", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	cart := decode(t, w)
	assert.EqualValues(t, 3, cart["count"])
	assert.EqualValues(t, 250, cart["total"])

	w = a.do(http.MethodPost, "/user/cart", token, gin.H{"product_id": shirt.ID, "quantity": -1})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = a.do(http.MethodPut, "/user/cart/"+socks.ID, token, gin.H{"quantity": 3})
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 350, decode(t, w)["total"])

	w = a.do(http.MethodPut, "/user/cart/missing", token, gin.H{"quantity": 3})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = a.do(http.MethodDelete, "/user/cart/"+socks.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 200, decode(t, w)["total"])

	w = a.do(http.MethodPost, "/user/checkout", token, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	order, _ := decode(t, w)["order"].(map[string]interface{})
	require.NotNil(t, order)
	assert.EqualValues(t, 200, order["total_amount"])
	orderID, _ := order["id"].(string)

	w = a.do(http.MethodGet, "/user/cart", token, nil)
	assert.EqualValues(t, 0, decode(t, w)["count"])

	w = a.do(http.MethodGet, "/user/orders", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var orders []models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orders))
	require.Len(t, orders, 1)
	assert.Equal(t, orderID, orders[0].ID)
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, "Shirt", orders[0].Items[0].Product.Name)

	w = a.do(http.MethodGet, "/user/orders/"+orderID, token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	other := a.register("ravi@example.com")
	w = a.do(http.MethodGet, "/user/orders/"+orderID, other, nil)
	assert.Equal(t, http.StatusNotFound, w.Code, "orders are scoped to their owner")

	w = a.do(http.MethodGet, "/user/orders/export", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, spreadsheet.ContentType, w.Header().Get("Content-Type"))
	assert.NotZero(t, w.Body.Len())
}

func TestAdminCatalogImport(t *testing.T) {
	a := newAPI(t)

	var sheet bytes.Buffer
	require.NoError(t, spreadsheet.WriteProducts(&sheet, []models.Product{
		{Name: "Mug", Price: 200, Category: "home"},
		{Name: "Plate", Price: 300, Category: "home"},
	}))

	upload := func(key string) *httptest.ResponseRecorder {
		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		fw, err := mw.CreateFormFile("file", "catalog.xlsx")
		require.NoError(t, err)
		_, err = fw.Write(sheet.Bytes())
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/admin/products/import-excel", &body)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		if key != "" {
			req.Header.Set("X-API-KEY", key)
		}
		w := httptest.NewRecorder()
		a.router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusUnauthorized, upload("").Code)
	assert.Equal(t, http.StatusUnauthorized, upload("wrong").Code)

	w := upload(adminKey)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.EqualValues(t, 2, decode(t, w)["created_count"])

	var count int64
	require.NoError(t, a.db.Model(&models.Product{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestAdminOrderFeedRequiresKey(t *testing.T) {
	a := newAPI(t)
	w := a.do(http.MethodGet, "/admin/orders/ws", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
