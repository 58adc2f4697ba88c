//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	pacttest "github.com/firaolassefa/restaurant-management-system/test/pact"

	restaurantserver "github.com/firaolassefa/restaurant-management-system/go"
	"github.com/firaolassefa/restaurant-management-system/internal/app/api"
	cartmemory "github.com/firaolassefa/restaurant-management-system/internal/domains/cart/adapters/memory"
	cartapp "github.com/firaolassefa/restaurant-management-system/internal/domains/cart/application"
	cartdomain "github.com/firaolassefa/restaurant-management-system/internal/domains/cart/domain"
	orderevents "github.com/firaolassefa/restaurant-management-system/internal/domains/orders/adapters/events"
	ordersworkflows "github.com/firaolassefa/restaurant-management-system/internal/domains/orders/adapters/workflows"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/stretchr/testify/require"
)

func TestRestaurantProviderPact(t *testing.T) {
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateMenuSeeded: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			return nil, nil
		},
		pacttest.StateMenuItemMissing: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			return nil, nil
		},
		pacttest.StateCartReady: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			if setup {
				app.seedCart(t)
			}
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
	})
	require.NoError(t, err)
}

// contractProviderApp serves a fresh in-memory restaurant for every provider state.
type contractProviderApp struct {
	mu     sync.RWMutex
	router *gin.Engine
	carts  *cartmemory.Repository
	server *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()
	app := &contractProviderApp{}
	app.reset(t)
	app.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.mu.RLock()
		router := app.router
		app.mu.RUnlock()
		router.ServeHTTP(w, r)
	}))
	t.Cleanup(app.server.Close)
	return app
}

func (a *contractProviderApp) reset(t testing.TB) {
	t.Helper()
	ctx := context.Background()
	stores := api.NewStores(nil)
	_, err := api.SeedMenu(ctx, stores.Menu)
	require.NoError(t, err)

	menuService := api.NewMenuService(stores.Menu, nil)
	hub := orderevents.NewHub()
	orderService := api.NewOrderService(stores.Orders, hub, nil)
	carts := cartmemory.NewRepository()
	cartService := cartapp.NewService(carts, menuService, ordersworkflows.NewInlineOrderWorkflows(orderService))

	router := gin.New()
	router.Use(gin.Recovery())
	router = restaurantserver.NewRouterWithGinEngine(router, restaurantserver.ApiHandleFunctions{
		MenuAPI:     restaurantserver.NewMenuAPI(menuService),
		CartAPI:     restaurantserver.NewCartAPI(cartService, orderService),
		OrderAPI:    restaurantserver.NewOrderAPI(orderService),
		TrackingAPI: restaurantserver.NewTrackingAPI(hub, nil),
	})

	a.mu.Lock()
	a.router = router
	a.carts = carts
	a.mu.Unlock()
}

func (a *contractProviderApp) seedCart(t testing.TB) {
	t.Helper()
	cart := cartdomain.New(pacttest.CartID, time.Now().UTC())
	cart.Lines = []cartdomain.Line{{ItemID: pacttest.BurgerID, Quantity: 2}}
	a.mu.RLock()
	defer a.mu.RUnlock()
	require.NoError(t, a.carts.Create(context.Background(), cart))
}
