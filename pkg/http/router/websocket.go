package router

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/gobwas/ws"
	"github.com/lintang-b-s/navigatorx-indoor/pkg/concurrent"
	"github.com/lintang-b-s/navigatorx-indoor/pkg/http/router/controllers"
	http_server "github.com/lintang-b-s/navigatorx-indoor/pkg/http/server"
	"github.com/mailru/easygo/netpoll"
	"go.uber.org/zap"
)

const (
	wsPoolSize    = 64
	wsPoolQueue   = 16
	wsPoolSpawn   = 16
	acceptTimeout = time.Second
	acceptBackoff = 5 * time.Millisecond
)

// handleWebsocket. route query websocket server. connections are watched with epoll through netpoll and
// served by a bounded goroutine pool, instead of one blocked goroutine per idle connection.
func (api *API) handleWebsocket(ctx context.Context, config http_server.Config,
	routingService controllers.RoutingService, errChan chan error,
) {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", config.WebsocketPort))
	if err != nil {
		errChan <- err
		return
	}
	api.log.Info(fmt.Sprintf("indoor route websocket API run on port %d", config.WebsocketPort))

	acceptDesc, err := netpoll.HandleListener(ln, netpoll.EventRead|netpoll.EventOneShot)
	if err != nil {
		ln.Close()
		errChan <- err
		return
	}

	api.poller, err = netpoll.New(nil)
	if err != nil {
		ln.Close()
		errChan <- err
		return
	}

	api.pool = concurrent.NewPool(wsPoolSize, wsPoolQueue, wsPoolSpawn)
	api.hub = controllers.NewHub(api.pool, routingService)

	accept := make(chan error, 1)

	api.poller.Start(acceptDesc, func(ev netpoll.Event) {
		defer api.poller.Resume(acceptDesc)
		err := api.pool.ScheduleTimeout(acceptTimeout, func() {
			conn, err := ln.Accept()
			if err != nil {
				accept <- err
				return
			}

			accept <- nil
			api.handle(ctx, conn)
		})
		if err == nil {
			err = <-accept
		}
		if err != nil {
			// pool saturated or transient accept failure, cool down before the next accept
			var ne net.Error
			if errors.Is(err, concurrent.ErrScheduleTimeout) || (errors.As(err, &ne) && ne.Timeout()) {
				api.log.Sugar().Infof("accept error: %v; retrying in %s", err, acceptBackoff)
				time.Sleep(acceptBackoff)
				return
			}
			api.log.Error("accept error", zap.Error(err))
		}
	})

	<-ctx.Done()

	ln.Close()

	api.hub.RemoveAllUser()
	api.poller.Stop(acceptDesc)

	api.log.Info("websocket server stopped")
}

// handle. upgrade conn and register its read events with the poller, every readable event answers
// one route query on the pool.
func (api *API) handle(ctx context.Context, conn net.Conn) {
	br := bufio.NewReader(conn)

	rw := struct {
		io.Reader
		io.Writer
	}{br, conn}

	hs, err := ws.Upgrade(rw)
	if err != nil {
		api.log.Info("upgrade error", zap.Error(err), zap.String("connection", nameConn(conn)))
		conn.Close()
		return
	}

	api.log.Info("established websocket connection", zap.String("connection", nameConn(conn)),
		zap.String("protocol", hs.Protocol))

	user := api.hub.Register(conn)

	desc, err := netpoll.HandleRead(conn)
	if err != nil {
		api.log.Error("failed to watch websocket connection", zap.Error(err))
		api.hub.Remove(user)
		conn.Close()
		return
	}

	api.poller.Start(desc, func(ev netpoll.Event) {
		if ev&(netpoll.EventReadHup|netpoll.EventHup) != 0 {
			api.log.Info("user disconnected from websocket server", zap.String("connection", nameConn(conn)))

			api.poller.Stop(desc)
			api.hub.Remove(user)
			conn.Close()
			return
		}

		api.pool.Schedule(func() {
			if err := user.RouteQuery(ctx); err != nil {
				api.log.Info("closing websocket connection", zap.Error(err))
				api.poller.Stop(desc)
				api.hub.Remove(user)
			}
		})
	})
}

func nameConn(conn net.Conn) string {
	return conn.LocalAddr().String() + " > " + conn.RemoteAddr().String()
}
