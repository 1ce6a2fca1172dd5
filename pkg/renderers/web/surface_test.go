package web

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSurface_RunServesUntilCancelled(t *testing.T) {
	addrCh := make(chan net.Addr, 1)
	surface := New(
		WithAddr("127.0.0.1:0"),
		WithMount(func(mux Mux) error {
			mux.Handle("/healthz", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			}))
			return nil
		}),
	).OnReady(func(addr net.Addr) { addrCh <- addr })

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- surface.Run(ctx, testFactory()) }()

	var addr net.Addr
	select {
	case addr = <-addrCh:
	case <-time.After(2 * time.Second):
		t.Fatalf("expected server to start")
	}

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	res, err := client.Get("http://" + addr.String() + "/healthz")
	require.NoError(t, err)
	_ = res.Body.Close()
	assert.Equal(t, http.StatusNoContent, res.StatusCode)

	res, err = client.Get("http://" + addr.String() + "/")
	require.NoError(t, err)
	_ = res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatalf("expected server to stop")
	}
}

func TestSurface_Name(t *testing.T) {
	assert.Equal(t, "web", New().Name())
}
