package server

import (
	"bytes"
	"context"
	"encoding/json"
	"image/color"
	"image/png"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"

	"github.com/matzehuels/lootgrid/pkg/assets"
	"github.com/matzehuels/lootgrid/pkg/catalog"
	"github.com/matzehuels/lootgrid/pkg/render"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	dir := t.TempDir()
	f, err := os.Create(filepath.Join(dir, "1.png"))
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, imaging.New(8, 8, color.Black)); err != nil {
		t.Fatal(err)
	}
	f.Close()

	cat := catalog.New(
		map[string]catalog.Container{
			"bird_nest": {Name: "Bird Nest", GridSize: 2, MinItems: 1, MaxItems: 1, AllowTypes: []string{"X"}},
			"air_box":   {GridSize: 3, MinItems: 2, MaxItems: 1, AllowTypes: []string{"X"}},
		},
		[]catalog.Item{{ID: 1, Grade: 1, Width: 1, Length: 1, SecondClass: "X", Pic: "1.png"}},
	)
	logger := log.NewWithOptions(&bytes.Buffer{}, log.Options{Level: log.ErrorLevel})
	local := assets.NewLocal(dir)
	r := render.New(cat, assets.NewResolver(logger, local), local, logger, render.Options{CellTexture: "-"})
	return New("127.0.0.1:0", r, logger)
}

func TestListContainers(t *testing.T) {
	srv := httptest.NewServer(testServer(t).Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/containers")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var got []containerSummary
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Key != "air_box" || got[1].Key != "bird_nest" {
		t.Fatalf("containers = %+v", got)
	}
	if got[0].Name != "air_box" {
		t.Errorf("unnamed container name = %q, want key", got[0].Name)
	}
	if got[0].MaxItems != got[0].MinItems {
		t.Errorf("range not clamped: %+v", got[0])
	}
}

func TestOpenContainer(t *testing.T) {
	srv := httptest.NewServer(testServer(t).Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/containers/bird_nest/open?user=alice&seed=3")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("content type = %q", ct)
	}
	if resp.Header.Get("X-Render-ID") == "" || resp.Header.Get("X-Items-Placed") != "1" {
		t.Errorf("headers = %v", resp.Header)
	}
	img, err := png.Decode(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 2*render.DefaultCellSize || b.Dy() != 2*render.DefaultCellSize {
		t.Errorf("bounds = %v", b)
	}
}

func TestOpenErrors(t *testing.T) {
	srv := httptest.NewServer(testServer(t).Handler())
	defer srv.Close()

	tests := []struct {
		name   string
		path   string
		status int
		code   string
	}{
		{"unknown container", "/containers/nope/open", http.StatusNotFound, "UNKNOWN_CONTAINER"},
		{"bad seed", "/containers/bird_nest/open?seed=-1", http.StatusBadRequest, "INVALID_INPUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Get(srv.URL + tt.path)
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			var body map[string]string
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if body["code"] != tt.code {
				t.Errorf("code = %q, want %q", body["code"], tt.code)
			}
		})
	}
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(testServer(t).Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" || body["version"] == "" {
		t.Errorf("health = %v", body)
	}
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := l.Addr().String()
	l.Close()

	s := testServer(t)
	s.addr = addr
	s.httpServer.Addr = addr

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx) }()

	// Wait until the server accepts connections.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if resp, err := http.Get("http://" + addr + "/healthz"); err == nil {
			resp.Body.Close()
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ListenAndServe = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
