package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"sort"
	"sync"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
	"github.com/lintang-b-s/navigatorx-indoor/pkg/concurrent"
)

// User. one websocket client sending route queries.
type User struct {
	io   sync.Mutex
	conn io.ReadWriteCloser

	id  uint
	hub *Hub
}

func (u *User) readRequest() (*routeMessage, error) {
	u.io.Lock()
	defer u.io.Unlock()

	h, r, err := wsutil.NextReader(u.conn, ws.StateServerSide)
	if err != nil {
		return nil, err
	}
	if h.OpCode.IsControl() {
		return nil, wsutil.ControlFrameHandler(u.conn, ws.StateServerSide)(h, r)
	}

	req := &routeMessage{}
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(req); err != nil {
		return nil, err
	}
	return req, nil
}

// RouteQuery. read one route message and answer it. invalid queries get an error envelope,
// only connection failures are returned.
func (u *User) RouteQuery(ctx context.Context) error {
	req, err := u.readRequest()
	if err != nil {
		u.conn.Close()
		return err
	}

	if req == nil {
		return nil
	}

	if err := validateRequest(req); err != nil {
		return u.write(errorEnvelope(http.StatusBadRequest, err.Error()))
	}
	q := req.toQuery()
	if err := validateRequest(q); err != nil {
		return u.write(errorEnvelope(http.StatusBadRequest, err.Error()))
	}

	route, directions, err := u.hub.routingService.ShortestPath(ctx, q.OriginLon, q.OriginLat, q.DestinationLon, q.DestinationLat)
	if err != nil {
		return u.write(errorEnvelope(statusCode(err), err.Error()))
	}

	return u.write(envelope{"data": NewShortestPathResponse(route, directions)})
}

func (u *User) write(x interface{}) error {
	w := wsutil.NewWriter(u.conn, ws.StateServerSide, ws.OpText)
	encoder := json.NewEncoder(w)

	u.io.Lock()
	defer u.io.Unlock()

	if err := encoder.Encode(x); err != nil {
		return err
	}

	return w.Flush()
}

type Hub struct {
	mu             sync.RWMutex
	seq            uint
	us             []*User
	ns             map[uint]*User
	routingService RoutingService

	pool *concurrent.Pool
}

func NewHub(pool *concurrent.Pool, routingService RoutingService) *Hub {
	return &Hub{
		pool:           pool,
		ns:             make(map[uint]*User),
		us:             make([]*User, 0),
		routingService: routingService,
	}
}

func (h *Hub) Register(conn net.Conn) *User {
	user := &User{
		hub:  h,
		conn: conn,
	}

	h.mu.Lock()
	user.id = h.seq
	h.ns[user.id] = user
	h.us = append(h.us, user)

	h.seq++
	h.mu.Unlock()

	return user
}

func (h *Hub) Remove(user *User) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.remove(user)
}

func (h *Hub) remove(user *User) {
	if _, ok := h.ns[user.id]; !ok {
		return
	}
	delete(h.ns, user.id)

	i := sort.Search(len(h.us), func(i int) bool {
		return h.us[i].id >= user.id
	})

	newUs := make([]*User, len(h.us)-1)
	copy(newUs[:i], h.us[:i])
	copy(newUs[i:], h.us[i+1:])
	h.us = newUs
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.us)
}

// RemoveAllUser. drop every user and close its connection.
func (h *Hub) RemoveAllUser() {
	h.mu.Lock()
	users := h.us
	h.us = make([]*User, 0)
	h.ns = make(map[uint]*User)
	h.mu.Unlock()

	for _, user := range users {
		user.conn.Close()
	}
}
