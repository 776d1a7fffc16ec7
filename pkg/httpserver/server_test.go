package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("nil handler rejected", func(t *testing.T) {
		_, err := New(nil)

		assert.Error(t, err)
	})

	t.Run("invalid port rejected", func(t *testing.T) {
		_, err := New(ok, WithPort(0))

		assert.Error(t, err)

		_, err = New(ok, WithPort(70000))
		assert.Error(t, err)
	})
}

func TestServerLifecycle(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// find a free port so the test is runnable in parallel environments
	probe, err := New(handler, WithPort(18080))
	if err != nil {
		t.Skipf("port 18080 busy: %v", err)
	}
	port := 18080

	probe.Start()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = probe.Shutdown(ctx)
	}()

	resp, err := http.Get(fmt.Sprintf("http://%s/", probe.Addr()))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Contains(t, probe.Addr().String(), fmt.Sprintf(":%d", port))
}
