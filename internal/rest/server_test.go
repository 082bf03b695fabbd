package rest_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikmak/psga/internal/rest"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := rest.NewServer(rest.SeedStore(), "127.0.0.1:0", nil)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, method, url, body string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func detail(t *testing.T, body []byte) string {
	t.Helper()
	var d struct {
		Detail string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(body, &d))
	return d.Detail
}

func TestListTrails(t *testing.T) {
	ts := newTestServer(t)

	resp, body := do(t, http.MethodGet, ts.URL+"/demo/trails", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var places []rest.Place
	require.NoError(t, json.Unmarshal(body, &places))
	require.Len(t, places, 4)
	assert.Equal(t, "Ninglinspo", places[0].Name)
	assert.Equal(t, 4, places[3].ID)
}

func TestListCities(t *testing.T) {
	ts := newTestServer(t)

	resp, body := do(t, http.MethodGet, ts.URL+"/demo/cities", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var places []rest.Place
	require.NoError(t, json.Unmarshal(body, &places))
	assert.Len(t, places, 3)
}

func TestUnknownResource(t *testing.T) {
	ts := newTestServer(t)

	resp, body := do(t, http.MethodGet, ts.URL+"/demo/rivers", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "unknown resource", detail(t, body))
}

func TestCreateReadDelete(t *testing.T) {
	ts := newTestServer(t)
	url := ts.URL + "/demo/cities"

	resp, body := do(t, http.MethodPost, url, `{"id":"9","name":"Ghent","location":"Ghent","description":"Towers"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	resp, body = do(t, http.MethodGet, url+"/9", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var p rest.Place
	require.NoError(t, json.Unmarshal(body, &p))
	assert.Equal(t, rest.Place{ID: 9, Name: "Ghent", Location: "Ghent", Description: "Towers"}, p)

	resp, _ = do(t, http.MethodDelete, url+"/9", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = do(t, http.MethodGet, url+"/9", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "not found (9)", detail(t, body))
}

func TestCreateExisting(t *testing.T) {
	ts := newTestServer(t)

	resp, body := do(t, http.MethodPost, ts.URL+"/demo/trails", `{"id":1,"name":"dup"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "exist already (1)", detail(t, body))
}

func TestCreateInvalidBody(t *testing.T) {
	ts := newTestServer(t)

	resp, _ := do(t, http.MethodPost, ts.URL+"/demo/trails", `{"id":"x"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp, _ = do(t, http.MethodPost, ts.URL+"/demo/trails", `not json`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestUpdate(t *testing.T) {
	ts := newTestServer(t)
	url := ts.URL + "/demo/trails/2"

	resp, body := do(t, http.MethodPut, url, `{"id":3,"name":"x"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "id's mismatch (2 != 3)", detail(t, body))

	resp, body = do(t, http.MethodPut, url, `{"id":2,"name":"Le Hérou bis"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var p rest.Place
	require.NoError(t, json.Unmarshal(body, &p))
	assert.Equal(t, "Le Hérou bis", p.Name)
}

func TestDeleteMissing(t *testing.T) {
	ts := newTestServer(t)

	resp, _ := do(t, http.MethodDelete, ts.URL+"/demo/trails/42", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = do(t, http.MethodDelete, ts.URL+"/demo/trails/abc", "")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestServeShutsDownOnCancel(t *testing.T) {
	srv := rest.NewServer(rest.NewStore("trails"), "127.0.0.1:0", nil)

	ctx, cancel := context.WithCancel(context.Background())
	ln, err := srv.Listen(ctx)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	resp, body := do(t, http.MethodGet, "http://"+ln.Addr().String()+"/demo/trails", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, "[]", string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
