package web

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/quentinrf/plant-monitor/services/farm-service/internal/domain"
	"github.com/quentinrf/plant-monitor/services/farm-service/internal/ports"
)

const writeWait = 10 * time.Second

func newUpgrader(allowedOrigins []string) *websocket.Upgrader {
	return &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(allowedOrigins),
	}
}

// originChecker accepts requests without an Origin header, same-host
// origins and the listed ones, compared case-insensitively.
func originChecker(allowed []string) func(r *http.Request) bool {
	allowAll := false
	origins := make(map[string]struct{}, len(allowed))
	for _, origin := range allowed {
		origin = strings.ToLower(strings.TrimSuffix(strings.TrimSpace(origin), "/"))
		switch origin {
		case "":
		case "*":
			allowAll = true
		default:
			origins[origin] = struct{}{}
		}
	}

	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || allowAll {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		if strings.EqualFold(u.Host, r.Host) {
			return true
		}
		_, ok := origins[strings.ToLower(origin)]
		if !ok {
			log.Warn().Str("origin", origin).Msg("websocket origin not allowed")
		}
		return ok
	}
}

// handleWatchFarm pushes a farm card over a websocket every time the farm's
// feed publishes. Unlisted farms get one card and a normal close.
func handleWatchFarm(dashboard *ports.Dashboard, upgrader *websocket.Upgrader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		farmID := domain.NormalizeFarmID(r.PathValue("farmID"))
		if farmID == "" {
			writeErrorMessage(w, http.StatusBadRequest, "farm id required")
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade already replied with an HTTP error
			log.Warn().Err(err).Str("farm_id", farmID).Msg("websocket upgrade failed")
			return
		}
		defer conn.Close()

		feed, unsubscribe, ok := dashboard.Subscribe(farmID)
		if !ok {
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(dashboard.Card(r.Context(), farmID)); err == nil {
				conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			}
			return
		}
		defer unsubscribe()

		// the read side only detects the client going away
		gone := make(chan struct{})
		go func() {
			defer close(gone)
			for {
				if _, _, err := conn.NextReader(); err != nil {
					return
				}
			}
		}()

		live := dashboard.Live(farmID)
		for {
			select {
			case <-gone:
				return
			case snapshot, ok := <-feed:
				if !ok {
					return
				}
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteJSON(ports.NewFarmCard(farmID, live, snapshot)); err != nil {
					log.Debug().Err(err).Str("farm_id", farmID).Msg("websocket write failed")
					return
				}
			}
		}
	}
}
