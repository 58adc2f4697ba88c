package restaurantserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	cartmemory "github.com/firaolassefa/restaurant-management-system/internal/domains/cart/adapters/memory"
	cartapp "github.com/firaolassefa/restaurant-management-system/internal/domains/cart/application"
	menumemory "github.com/firaolassefa/restaurant-management-system/internal/domains/menu/adapters/memory"
	menuapp "github.com/firaolassefa/restaurant-management-system/internal/domains/menu/application"
	menudomain "github.com/firaolassefa/restaurant-management-system/internal/domains/menu/domain"
	orderevents "github.com/firaolassefa/restaurant-management-system/internal/domains/orders/adapters/events"
	ordersmemory "github.com/firaolassefa/restaurant-management-system/internal/domains/orders/adapters/memory"
	ordersworkflows "github.com/firaolassefa/restaurant-management-system/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/firaolassefa/restaurant-management-system/internal/domains/orders/application"
	staffmemory "github.com/firaolassefa/restaurant-management-system/internal/domains/staff/adapters/memory"
	stafftokens "github.com/firaolassefa/restaurant-management-system/internal/domains/staff/adapters/tokens"
	staffapp "github.com/firaolassefa/restaurant-management-system/internal/domains/staff/application"
	staffdomain "github.com/firaolassefa/restaurant-management-system/internal/domains/staff/domain"
	staffports "github.com/firaolassefa/restaurant-management-system/internal/domains/staff/ports"
	apierrors "github.com/firaolassefa/restaurant-management-system/internal/shared/errors"
	"github.com/firaolassefa/restaurant-management-system/internal/shared/identity"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "admin-password"
	staffEmail    = "dana@example.com"
	staffPassword = "dana-password"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	staffdomain.HashCost = bcrypt.MinCost
	os.Exit(m.Run())
}

type testServer struct {
	router *gin.Engine
	hub    *orderevents.Hub
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx := context.Background()

	menuRepo := menumemory.NewRepository()
	_, err := menuRepo.ReplaceAll(ctx, menudomain.DefaultMenu())
	require.NoError(t, err)
	menuService := menuapp.NewService(menuRepo)

	hub := orderevents.NewHub()
	orderService := ordersapp.NewService(ordersmemory.NewRepository(), ordersapp.WithEventPublisher(hub))
	placer := ordersworkflows.NewInlineOrderWorkflows(orderService)
	cartService := cartapp.NewService(cartmemory.NewRepository(), menuService, placer)

	issuer, err := stafftokens.NewJWTIssuer("router-test-secret-0123456789")
	require.NoError(t, err)
	staffService := staffapp.NewService(staffmemory.NewRepository(), staffmemory.NewSessionStore(), issuer)
	_, err = staffService.EnsureAdmin(ctx, "Admin", adminEmail, adminPassword)
	require.NoError(t, err)
	_, err = staffService.CreateMember(ctx, staffports.NewMember{
		Name:     "Dana",
		Email:    staffEmail,
		Password: staffPassword,
		Role:     identity.RoleStaff,
		Position: staffdomain.PositionWaiter,
	})
	require.NoError(t, err)

	router := NewRouter(ApiHandleFunctions{
		MenuAPI:       NewMenuAPI(menuService),
		CartAPI:       NewCartAPI(cartService, orderService),
		OrderAPI:      NewOrderAPI(orderService),
		StaffAPI:      NewStaffAPI(staffService),
		AuthAPI:       NewAuthAPI(staffService),
		TrackingAPI:   NewTrackingAPI(hub, nil),
		Authenticator: staffService,
	})
	return &testServer{router: router, hub: hub}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, BasePath+path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) login(t *testing.T, email, password string) string {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/auth/login", "", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var out struct {
		Token string `json:"token"`
	}
	decode(t, rec, &out)
	require.NotEmpty(t, out.Token)
	return out.Token
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func problemOf(t *testing.T, rec *httptest.ResponseRecorder) apierrors.ProblemDetail {
	t.Helper()
	assert.Equal(t, apierrors.ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
	var problem apierrors.ProblemDetail
	decode(t, rec, &problem)
	return problem
}

type cartBody struct {
	CartID    string `json:"cartId"`
	ItemCount int    `json:"itemCount"`
	Subtotal  string `json:"subtotal"`
	Tax       string `json:"tax"`
	Total     string `json:"total"`
}

type orderBody struct {
	ID          int64  `json:"id"`
	OrderNumber string `json:"orderNumber"`
	Status      string `json:"status"`
	Waiter      string `json:"waiter"`
	Total       string `json:"total"`
}

func (s *testServer) openCart(t *testing.T) string {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/carts", "", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	var cart cartBody
	decode(t, rec, &cart)
	require.NotEmpty(t, cart.CartID)
	return cart.CartID
}

func (s *testServer) placeBurgerOrder(t *testing.T, token string) orderBody {
	t.Helper()
	cartID := s.openCart(t)
	for range 2 {
		rec := s.do(t, http.MethodPost, "/carts/"+cartID+"/items", "", map[string]int64{"menuItemId": 2})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}
	rec := s.do(t, http.MethodPost, "/carts/"+cartID+"/checkout", token, map[string]string{
		"customerName": "Alice",
		"tableNumber":  "5",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var order orderBody
	decode(t, rec, &order)
	return order
}

func TestCartCheckoutFlow(t *testing.T) {
	srv := newTestServer(t)
	cartID := srv.openCart(t)

	rec := srv.do(t, http.MethodPost, "/carts/"+cartID+"/items", "", map[string]int64{"menuItemId": 2})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = srv.do(t, http.MethodPut, "/carts/"+cartID+"/items/2", "", map[string]int{"quantity": 2})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, http.MethodGet, "/carts/"+cartID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var cart cartBody
	decode(t, rec, &cart)
	assert.Equal(t, 2, cart.ItemCount)
	assert.Equal(t, "21.00", cart.Subtotal)
	assert.Equal(t, "1.68", cart.Tax)
	assert.Equal(t, "22.68", cart.Total)

	rec = srv.do(t, http.MethodPost, "/carts/"+cartID+"/checkout", "", map[string]string{"customerName": "Alice", "tableNumber": "5"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var order orderBody
	decode(t, rec, &order)
	assert.Equal(t, "ORD-001", order.OrderNumber)
	assert.Equal(t, "Preparing", order.Status, "guests see the customer vocabulary")
	assert.Equal(t, "22.68", order.Total)

	rec = srv.do(t, http.MethodGet, "/carts/"+cartID, "", nil)
	decode(t, rec, &cart)
	assert.Zero(t, cart.ItemCount)
}

func TestCheckoutErrors(t *testing.T) {
	srv := newTestServer(t)
	cartID := srv.openCart(t)

	rec := srv.do(t, http.MethodPost, "/carts/"+cartID+"/checkout", "", map[string]string{"customerName": "Alice", "tableNumber": "5"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	problem := problemOf(t, rec)
	assert.Equal(t, apierrors.TypeValidation, problem.Type)

	srv.do(t, http.MethodPost, "/carts/"+cartID+"/items", "", map[string]int64{"menuItemId": 2})
	rec = srv.do(t, http.MethodPost, "/carts/"+cartID+"/checkout", "", map[string]string{"tableNumber": "5"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(t, http.MethodPost, "/carts/missing/checkout", "", map[string]string{"customerName": "Alice", "tableNumber": "5"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = srv.do(t, http.MethodPost, "/carts/"+cartID+"/items", "", map[string]int64{"menuItemId": 999})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = srv.do(t, http.MethodPut, "/carts/"+cartID+"/items/abc", "", map[string]int{"quantity": 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckoutIdempotencyKey(t *testing.T) {
	srv := newTestServer(t)
	cartID := srv.openCart(t)
	srv.do(t, http.MethodPost, "/carts/"+cartID+"/items", "", map[string]int64{"menuItemId": 1})

	body := map[string]string{"customerName": "Alice", "tableNumber": "5"}
	first := srv.do(t, http.MethodPost, "/carts/"+cartID+"/checkout", "", body, IdempotencyKeyHeader, "retry-1")
	require.Equal(t, http.StatusCreated, first.Code, first.Body.String())
	second := srv.do(t, http.MethodPost, "/carts/"+cartID+"/checkout", "", body, IdempotencyKeyHeader, "retry-1")
	require.Equal(t, http.StatusCreated, second.Code, second.Body.String())

	var a, b orderBody
	decode(t, first, &a)
	decode(t, second, &b)
	assert.Equal(t, a.OrderNumber, b.OrderNumber)
}

func TestMenuVisibilityAndAdminAccess(t *testing.T) {
	srv := newTestServer(t)
	admin := srv.login(t, adminEmail, adminPassword)
	staff := srv.login(t, staffEmail, staffPassword)

	rec := srv.do(t, http.MethodPost, "/menu/3/availability", staff, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = srv.do(t, http.MethodPost, "/menu/3/availability", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = srv.do(t, http.MethodPost, "/menu/3/availability", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = srv.do(t, http.MethodGet, "/menu/3", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code, "guests cannot look up unavailable items")
	rec = srv.do(t, http.MethodGet, "/menu/3", staff, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var items []struct {
		ID        int64 `json:"id"`
		Available bool  `json:"available"`
	}
	rec = srv.do(t, http.MethodGet, "/menu?available=false", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &items)
	assert.Len(t, items, 11, "guests never see unavailable items")

	rec = srv.do(t, http.MethodGet, "/menu", admin, nil)
	decode(t, rec, &items)
	assert.Len(t, items, 12)

	rec = srv.do(t, http.MethodGet, "/menu?category=Dessert&q=cake", "", nil)
	decode(t, rec, &items)
	require.Len(t, items, 1)
	assert.Equal(t, int64(4), items[0].ID)

	rec = srv.do(t, http.MethodGet, "/menu?category=Soup", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(t, http.MethodPost, "/menu", admin, map[string]any{"name": "Tea", "price": "2.25", "category": "Beverage"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		ID    int64  `json:"id"`
		Price string `json:"price"`
	}
	decode(t, rec, &created)
	assert.Equal(t, "2.25", created.Price)

	rec = srv.do(t, http.MethodPost, "/menu", admin, map[string]any{"name": "Tea", "category": "Beverage"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(t, http.MethodDelete, "/menu/999", admin, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOrderEndpointsRequireStaff(t *testing.T) {
	srv := newTestServer(t)
	staff := srv.login(t, staffEmail, staffPassword)
	placed := srv.placeBurgerOrder(t, staff)

	rec := srv.do(t, http.MethodGet, "/orders", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = srv.do(t, http.MethodGet, "/orders", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = srv.do(t, http.MethodGet, "/orders/"+itoa(placed.ID), staff, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var order orderBody
	decode(t, rec, &order)
	assert.Equal(t, "Pending", order.Status)
	assert.Equal(t, "Dana", order.Waiter)

	rec = srv.do(t, http.MethodPost, "/orders/"+itoa(placed.ID)+"/status", staff, map[string]string{"status": "Served"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	rec = srv.do(t, http.MethodPost, "/orders/"+itoa(placed.ID)+"/status", staff, map[string]string{"status": "Bogus"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = srv.do(t, http.MethodPost, "/orders/"+itoa(placed.ID)+"/status", staff, map[string]string{"status": "Preparing"})
	require.Equal(t, http.StatusOK, rec.Code)

	var orders []orderBody
	rec = srv.do(t, http.MethodGet, "/orders?status=Pending", staff, nil)
	decode(t, rec, &orders)
	assert.Empty(t, orders)
	rec = srv.do(t, http.MethodGet, "/orders?status=Preparing&view=customer", staff, nil)
	decode(t, rec, &orders)
	require.Len(t, orders, 1)
	assert.Empty(t, orders[0].Waiter)
	rec = srv.do(t, http.MethodGet, "/orders?status=All&q=alice&sort=newest", staff, nil)
	decode(t, rec, &orders)
	assert.Len(t, orders, 1)
	rec = srv.do(t, http.MethodGet, "/orders?sort=sideways", staff, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(t, http.MethodGet, "/orders/summary", staff, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var summary struct {
		TotalOrders int    `json:"totalOrders"`
		OpenOrders  int    `json:"openOrders"`
		Revenue     string `json:"revenue"`
	}
	decode(t, rec, &summary)
	assert.Equal(t, 1, summary.TotalOrders)
	assert.Equal(t, 1, summary.OpenOrders)
	assert.Equal(t, "22.68", summary.Revenue)

	rec = srv.do(t, http.MethodGet, "/orders/77", staff, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStaffAdministrationAndLogout(t *testing.T) {
	srv := newTestServer(t)
	admin := srv.login(t, adminEmail, adminPassword)

	rec := srv.do(t, http.MethodPost, "/staff", admin, map[string]string{
		"name": "Sam", "email": "sam@example.com", "password": "sam-password", "position": "Chef",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var member struct {
		ID       int64  `json:"id"`
		Role     string `json:"role"`
		Position string `json:"position"`
	}
	decode(t, rec, &member)
	assert.Equal(t, "staff", member.Role)
	assert.Equal(t, "Chef", member.Position)

	rec = srv.do(t, http.MethodPost, "/staff", admin, map[string]string{
		"name": "Sam", "email": "sam@example.com", "password": "sam-password",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	rec = srv.do(t, http.MethodPost, "/staff", admin, map[string]string{
		"name": "Kim", "email": "kim@example.com", "password": "kim-password", "role": "owner",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	sam := srv.login(t, "sam@example.com", "sam-password")
	rec = srv.do(t, http.MethodGet, "/auth/me", sam, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, http.MethodPut, "/staff/"+itoa(member.ID), admin, map[string]any{"active": false})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = srv.do(t, http.MethodGet, "/auth/me", sam, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "deactivation revokes sessions")

	rec = srv.do(t, http.MethodGet, "/staff?q=chef", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "sam@example.com"))

	rec = srv.do(t, http.MethodDelete, "/staff/"+itoa(member.ID), admin, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = srv.do(t, http.MethodGet, "/staff/"+itoa(member.ID), admin, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = srv.do(t, http.MethodPost, "/auth/login", "", map[string]string{"email": adminEmail, "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = srv.do(t, http.MethodPost, "/auth/logout", admin, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = srv.do(t, http.MethodPost, "/auth/logout", admin, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = srv.do(t, http.MethodGet, "/staff", admin, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func (s *testServer) dialTracking(t *testing.T, httpServer *httptest.Server, query, token string) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	url := "ws" + strings.TrimPrefix(httpServer.URL, "http") + BasePath + "/orders/track" + query
	header := http.Header{}
	if token != "" {
		header.Set("Authorization", "Bearer "+token)
	}
	conn, resp, err := websocket.DefaultDialer.Dial(url, header)
	t.Cleanup(func() {
		if resp != nil {
			_ = resp.Body.Close()
		}
		if conn != nil {
			_ = conn.Close()
		}
	})
	return conn, resp, err
}

func readEnvelope(t *testing.T, conn *websocket.Conn) orderevents.Envelope {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var env orderevents.Envelope
	require.NoError(t, conn.ReadJSON(&env))
	return env
}

func TestTrackOrdersStreamsRedactedEventsToGuests(t *testing.T) {
	srv := newTestServer(t)
	httpServer := httptest.NewServer(srv.router)
	t.Cleanup(httpServer.Close)

	conn, _, err := srv.dialTracking(t, httpServer, "?number=ORD-001", "")
	require.NoError(t, err)

	order := srv.placeBurgerOrder(t, "")
	require.Equal(t, "ORD-001", order.OrderNumber)

	env := readEnvelope(t, conn)
	assert.Equal(t, "ORD-001", env.OrderNumber)
	assert.Equal(t, "Pending", env.Status)
	assert.Equal(t, "22.68", env.Total)
	assert.Empty(t, env.Customer)
	assert.Empty(t, env.Table)
}

func TestTrackOrdersGuestsMustNameAnOrder(t *testing.T) {
	srv := newTestServer(t)
	httpServer := httptest.NewServer(srv.router)
	t.Cleanup(httpServer.Close)

	_, resp, err := srv.dialTracking(t, httpServer, "", "")
	require.ErrorIs(t, err, websocket.ErrBadHandshake)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTrackOrdersStaffFollowEveryOrder(t *testing.T) {
	srv := newTestServer(t)
	httpServer := httptest.NewServer(srv.router)
	t.Cleanup(httpServer.Close)
	staff := srv.login(t, staffEmail, staffPassword)

	conn, _, err := srv.dialTracking(t, httpServer, "", staff)
	require.NoError(t, err)

	srv.placeBurgerOrder(t, staff)
	env := readEnvelope(t, conn)
	assert.Equal(t, "ORD-001", env.OrderNumber)
	assert.Equal(t, "Alice", env.Customer)
	assert.Equal(t, "5", env.Table)
}

func TestLookupOrderByNumber(t *testing.T) {
	srv := newTestServer(t)
	srv.placeBurgerOrder(t, "")

	rec := srv.do(t, http.MethodGet, "/orders/track/ord-001?table=5", "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var order orderBody
	decode(t, rec, &order)
	assert.Equal(t, "ORD-001", order.OrderNumber)
	assert.Equal(t, "Preparing", order.Status)
	assert.Empty(t, order.Waiter)

	rec = srv.do(t, http.MethodGet, "/orders/track/ORD-001?table=6", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = srv.do(t, http.MethodGet, "/orders/track/ORD-001", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	staff := srv.login(t, staffEmail, staffPassword)
	rec = srv.do(t, http.MethodGet, "/orders/track/ORD-001", staff, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = srv.do(t, http.MethodGet, "/orders/track/ORD-404", staff, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReorderCart(t *testing.T) {
	srv := newTestServer(t)
	srv.placeBurgerOrder(t, "")

	type reorderBody struct {
		cartBody
		Skipped []string `json:"skipped"`
	}
	cartID := srv.openCart(t)
	rec := srv.do(t, http.MethodPost, "/carts/"+cartID+"/reorder", "", map[string]string{"orderNumber": "ORD-001", "tableNumber": "5"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var refilled reorderBody
	decode(t, rec, &refilled)
	assert.Equal(t, 2, refilled.ItemCount)
	assert.Equal(t, "21.00", refilled.Subtotal)
	assert.Empty(t, refilled.Skipped)

	rec = srv.do(t, http.MethodPost, "/carts/"+cartID+"/reorder", "", map[string]string{"orderNumber": "ORD-001", "tableNumber": "9"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = srv.do(t, http.MethodPost, "/carts/"+cartID+"/reorder", "", map[string]string{"tableNumber": "5"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	admin := srv.login(t, adminEmail, adminPassword)
	rec = srv.do(t, http.MethodPost, "/menu/2/availability", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	other := srv.openCart(t)
	rec = srv.do(t, http.MethodPost, "/carts/"+other+"/reorder", "", map[string]string{"orderNumber": "ORD-001", "tableNumber": "5"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var partial reorderBody
	decode(t, rec, &partial)
	assert.Zero(t, partial.ItemCount)
	assert.Equal(t, []string{"Burger"}, partial.Skipped)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
