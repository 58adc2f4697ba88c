package restaurantserver

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	orderevents "github.com/firaolassefa/restaurant-management-system/internal/domains/orders/adapters/events"
	apierrors "github.com/firaolassefa/restaurant-management-system/internal/shared/errors"
	"github.com/firaolassefa/restaurant-management-system/internal/shared/identity"
)

const (
	trackingWriteWait  = 10 * time.Second
	trackingPongWait   = 60 * time.Second
	trackingPingPeriod = (trackingPongWait * 9) / 10
)

// OrderEventSource hands out live order event streams.
type OrderEventSource interface {
	Subscribe(orderNumber string) (<-chan orderevents.Envelope, func())
}

// TrackingAPI streams order events to websocket clients.
type TrackingAPI struct {
	source   OrderEventSource
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewTrackingAPI creates a TrackingAPI. allowedOrigins empty or containing "*" accepts every origin.
func NewTrackingAPI(source OrderEventSource, logger *slog.Logger, allowedOrigins ...string) TrackingAPI {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return TrackingAPI{
		source: source,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

// Get /api/v1/orders/track
// Upgrades to a websocket and pushes the events of ?number=. Staff may omit the
// number to follow every order; guests must name one and get redacted events.
func (api *TrackingAPI) TrackOrders(c *gin.Context) {
	if api.source == nil {
		respondProblem(c, apierrors.ErrInternal.WithDetail("order tracking is not configured"))
		return
	}
	number := strings.TrimSpace(c.Query("number"))
	_, staff := identity.FromContext(c.Request.Context())
	if !staff && number == "" {
		respondBadRequest(c, errors.New("number is required to track an order"))
		return
	}
	// Subscribe before the handshake so nothing published after it is missed.
	events, cancel := api.source.Subscribe(number)
	defer cancel()
	conn, err := api.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		api.logger.Warn("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	api.logger.Info("order tracking subscribed", slog.String("order_number", number), slog.Bool("staff", staff))
	closed := make(chan struct{})
	go api.readPump(conn, closed)

	ticker := time.NewTicker(trackingPingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-closed:
			return
		case <-c.Request.Context().Done():
			return
		case env, ok := <-events:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""), time.Now().Add(trackingWriteWait))
				return
			}
			if !staff {
				env = env.ForGuest()
			}
			_ = conn.SetWriteDeadline(time.Now().Add(trackingWriteWait))
			if err := conn.WriteJSON(env); err != nil {
				api.logger.Warn("order tracking write failed", slog.String("error", err.Error()))
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(trackingWriteWait)); err != nil {
				return
			}
		}
	}
}

// readPump drains client frames so pongs and close frames are processed.
func (api *TrackingAPI) readPump(conn *websocket.Conn, closed chan<- struct{}) {
	defer close(closed)
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(trackingPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(trackingPongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func originChecker(allowed []string) func(*http.Request) bool {
	set := make(map[string]struct{}, len(allowed))
	for _, origin := range allowed {
		if origin == "*" {
			return func(*http.Request) bool { return true }
		}
		set[origin] = struct{}{}
	}
	if len(set) == 0 {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}
