package controllers

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"testing"

	"github.com/gobwas/ws/wsutil"
	"github.com/lintang-b-s/navigatorx-indoor/pkg/concurrent"
	"github.com/lintang-b-s/navigatorx-indoor/pkg/engine"
	"github.com/lintang-b-s/navigatorx-indoor/pkg/http/usecases"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const crossingGeoJSON = `{"type": "FeatureCollection", "features": [
  {"type": "Feature", "properties": {}, "geometry": {"type": "LineString", "coordinates": [[0, 0], [1, 0], [2, 0]]}},
  {"type": "Feature", "properties": {}, "geometry": {"type": "LineString", "coordinates": [[1, 0], [1, 1], [1, 2]]}}
]}`

func newTestHub(t *testing.T) *Hub {
	e, err := engine.NewEngine(engine.DefaultConfig(), zap.NewNop())
	require.NoError(t, err)
	_, err = e.LoadFromBytes(context.Background(), "indoor.geojson", []byte(crossingGeoJSON))
	require.NoError(t, err)
	return NewHub(concurrent.NewPool(4, 0, 0), usecases.NewRoutingService(zap.NewNop(), e, 0.05))
}

type wsReply struct {
	Data struct {
		Found bool    `json:"found"`
		Cost  float64 `json:"cost"`
	} `json:"data"`
	Error struct {
		Code string `json:"code"`
	} `json:"error"`
}

func TestUserRouteQuery(t *testing.T) {
	testCases := []struct {
		name      string
		message   string
		wantCost  float64
		wantError string
	}{
		{name: "route", message: `{"origin": [0, 0], "destination": [1, 2]}`, wantCost: 3},
		{name: "unknown endpoint", message: `{"origin": [0, 0], "destination": [9, 9]}`, wantError: http.StatusText(http.StatusNotFound)},
		{name: "invalid position", message: `{"origin": [0], "destination": [1, 2]}`, wantError: http.StatusText(http.StatusBadRequest)},
		{name: "latitude out of range", message: `{"origin": [0, 95], "destination": [1, 2]}`, wantError: http.StatusText(http.StatusBadRequest)},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			hub := newTestHub(t)
			server, client := net.Pipe()
			defer client.Close()

			user := hub.Register(server)
			assert.Equal(t, 1, hub.Len())

			replies := make(chan []byte, 1)
			errs := make(chan error, 1)
			go func() {
				if err := wsutil.WriteClientText(client, []byte(tt.message)); err != nil {
					errs <- err
					return
				}
				reply, err := wsutil.ReadServerText(client)
				if err != nil {
					errs <- err
					return
				}
				replies <- reply
			}()

			require.NoError(t, user.RouteQuery(context.Background()))

			select {
			case err := <-errs:
				t.Fatalf("client error: %v", err)
			case reply := <-replies:
				var got wsReply
				require.NoError(t, json.Unmarshal(reply, &got))
				if tt.wantError != "" {
					assert.Equal(t, tt.wantError, got.Error.Code)
					return
				}
				assert.True(t, got.Data.Found)
				assert.InDelta(t, tt.wantCost, got.Data.Cost, 1e-9)
			}

			hub.Remove(user)
			assert.Equal(t, 0, hub.Len())
		})
	}
}

func TestHubRemoveAllUser(t *testing.T) {
	hub := newTestHub(t)
	for i := 0; i < 3; i++ {
		server, client := net.Pipe()
		defer client.Close()
		hub.Register(server)
	}
	assert.Equal(t, 3, hub.Len())

	hub.RemoveAllUser()
	assert.Equal(t, 0, hub.Len())
}
