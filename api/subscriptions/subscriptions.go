// Copyright (c) 2025 The Gona developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/gona-network/gonastake/api/utils"
	"github.com/gona-network/gonastake/builtin/staker"
	"github.com/gona-network/gonastake/co"
	"github.com/gona-network/gonastake/gona"
	"github.com/gona-network/gonastake/log"
	"github.com/gona-network/gonastake/metrics"
	"github.com/gona-network/gonastake/runtime"
)

const (
	listenerBuffer = 64
	pingPeriod     = 20 * time.Second
	pongWait       = pingPeriod * 3 / 2
	writeWait      = 10 * time.Second
)

var (
	logger                     = log.WithContext("pkg", "subscriptions")
	metricActiveWebsocketGauge = metrics.LazyLoadGaugeVec("api_active_websocket_gauge", []string{"subject"})
)

// Subscriptions streams committed staking events over websocket.
type Subscriptions struct {
	upgrader  *websocket.Upgrader
	listeners map[chan *runtime.Committed]struct{}
	mu        sync.RWMutex
	done      chan struct{}
	closeOnce sync.Once
	goes      co.Goes
}

// New starts dispatching the committed operations of rt. Close must be called
// to stop it.
func New(rt *runtime.Runtime, allowedOrigins []string) *Subscriptions {
	s := &Subscriptions{
		upgrader: &websocket.Upgrader{
			EnableCompression: true,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				for _, allowed := range allowedOrigins {
					if allowed == "*" || allowed == strings.ToLower(origin) {
						return true
					}
				}
				return false
			},
		},
		listeners: make(map[chan *runtime.Committed]struct{}),
		done:      make(chan struct{}),
	}

	ch := make(chan *runtime.Committed, listenerBuffer)
	sub := rt.SubscribeCommitted(ch)
	s.goes.Go(func() {
		defer sub.Unsubscribe()
		s.dispatchLoop(ch, sub.Err())
	})
	return s
}

func (s *Subscriptions) subscribe(ch chan *runtime.Committed) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[ch] = struct{}{}
}

func (s *Subscriptions) unsubscribe(ch chan *runtime.Committed) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.listeners, ch)
}

func (s *Subscriptions) dispatchLoop(ch <-chan *runtime.Committed, subErr <-chan error) {
	for {
		select {
		case c := <-ch:
			s.mu.RLock()
			for lsn := range s.listeners {
				select {
				case lsn <- c:
				default: // slow listeners miss messages rather than stall the runtime
				}
			}
			s.mu.RUnlock()
		case <-subErr:
			return
		case <-s.done:
			return
		}
	}
}

func parseFilter(req *http.Request) (*eventFilter, error) {
	var f eventFilter
	query := req.URL.Query()
	if s := query.Get("staker"); s != "" {
		key, err := gona.ParsePublicKey(s)
		if err != nil {
			return nil, utils.BadRequest(errors.WithMessage(err, "staker"))
		}
		f.Staker = &key
	}
	if s := query.Get("tag"); s != "" {
		n, err := strconv.ParseUint(s, 0, 8)
		if err != nil {
			return nil, utils.BadRequest(errors.WithMessage(err, "tag"))
		}
		tag := staker.EventTag(n)
		f.Tag = &tag
	}
	return &f, nil
}

func (s *Subscriptions) handleSubscribeEvent(w http.ResponseWriter, req *http.Request) error {
	filter, err := parseFilter(req)
	if err != nil {
		return err
	}

	conn, err := s.upgrader.Upgrade(w, req, nil)
	if err != nil {
		// the upgrader has already replied
		logger.Debug("upgrade failed", "err", err)
		return nil
	}
	defer conn.Close()

	metricActiveWebsocketGauge().AddWithLabel(1, map[string]string{"subject": "event"})
	defer metricActiveWebsocketGauge().AddWithLabel(-1, map[string]string{"subject": "event"})

	ch := make(chan *runtime.Committed, listenerBuffer)
	s.subscribe(ch)
	defer s.unsubscribe(ch)

	closed := make(chan struct{})
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				logger.Debug("websocket read", "err", err)
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case c := <-ch:
			if !filter.match(c.Result.Receipt.Event) {
				continue
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(convertCommitted(c)); err != nil {
				logger.Debug("websocket write", "err", err)
				return nil
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return nil
			}
		case <-closed:
			return nil
		case <-s.done:
			conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, ""), time.Now().Add(writeWait))
			return nil
		}
	}
}

// Close stops the dispatcher and ends open streams.
func (s *Subscriptions) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.goes.Wait()
	})
}

func (s *Subscriptions) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/event").
		Methods(http.MethodGet).
		Name("WS /subscriptions/event").
		HandlerFunc(utils.WrapHandlerFunc(s.handleSubscribeEvent))
}
