package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/slidecast/slidecast/pkg/render"
)

func previewServer(t *testing.T) *httptest.Server {
	t.Helper()
	c := New(io.Discard, LogInfo)
	router := c.previewRouter(initDeck(t), render.NewRenderer(render.NewHTTPLoader(nil)))
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func TestServeDeckSummary(t *testing.T) {
	srv := previewServer(t)

	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}

	var s summary
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		t.Fatalf("invalid summary JSON: %v", err)
	}
	if s.App.Name != "FitTracker" || s.SlideCount != 1 || s.PageCount != 2 {
		t.Errorf("unexpected summary: %+v", s)
	}
	if len(s.Slides) != 1 || len(s.Slides[0].Pages) != 2 {
		t.Fatalf("unexpected slide listing: %+v", s.Slides)
	}
	if s.Slides[0].Pages[0] != "/slides/1/pages/1" {
		t.Errorf("unexpected page route: %s", s.Slides[0].Pages[0])
	}
}

func TestServeStrategies(t *testing.T) {
	srv := previewServer(t)

	resp, err := http.Get(srv.URL + "/strategies")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var list []struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatalf("invalid strategies JSON: %v", err)
	}
	if len(list) != 5 {
		t.Errorf("expected 5 strategies, got %d", len(list))
	}
}

func TestServePageRendersPNG(t *testing.T) {
	srv := previewServer(t)

	resp, err := http.Get(srv.URL + "/slides/1/pages/1")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("unexpected content type %s", ct)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Error("response is not a PNG image")
	}
}

func TestServeUnknownPage(t *testing.T) {
	srv := previewServer(t)

	resp, err := http.Get(srv.URL + "/slides/9/pages/1")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for unknown slide, got %d", resp.StatusCode)
	}
}
