package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/dashkit/internal/dashboard"
	"github.com/davetashner/dashkit/internal/dashboards"
	"github.com/davetashner/dashkit/internal/dataset"
)

func testDashboards(t *testing.T) []*dashboard.Dashboard {
	t.Helper()
	gw, err := dataset.New(
		[]string{"Date", "Rainfall", "Groundwater_Borehole1", "Groundwater_Borehole2"},
		[][]string{
			{"2020-01-01", "5", "10", "12"},
			{"2020-02-01", "0", "11", "13"},
		},
	)
	require.NoError(t, err)
	gm, err := dataset.New(
		[]string{"country", "continent", "year", "lifeExp", "pop", "gdpPercap"},
		[][]string{
			{"Chile", "Americas", "2002", "77.86", "15497046", "10778.78"},
			{"Chile", "Americas", "2007", "78.553", "16284741", "13171.64"},
			{"Kenya", "Africa", "2007", "54.11", "35610177", "1463.25"},
		},
	)
	require.NoError(t, err)

	picker, err := (&dashboards.GroundwaterPicker{}).Build(dashboard.Spec{Dataset: "gw.csv"}, gw)
	require.NoError(t, err)
	overview, err := (&dashboards.GroundwaterOverview{}).Build(dashboard.Spec{Dataset: "gw.csv"}, gw)
	require.NoError(t, err)
	slider, err := (&dashboards.Gapminder{}).Build(dashboard.Spec{Dataset: "gapminder.csv"}, gm)
	require.NoError(t, err)
	return []*dashboard.Dashboard{picker, overview, slider}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := New(testDashboards(t), Options{AssetsHost: "http://assets.test/"})
	require.NoError(t, err)
	return s
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestNew_RejectsDuplicatesAndUnbound(t *testing.T) {
	ds := testDashboards(t)
	_, err := New(append(ds, ds[0]), Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")

	_, err = New([]*dashboard.Dashboard{{Name: "bare"}}, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no callback")
}

func TestHealthz(t *testing.T) {
	w := do(t, newTestServer(t).Handler(), http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]any{"status": "ok", "dashboards": 3.0}, decode(t, w))
}

func TestRequestID(t *testing.T) {
	h := newTestServer(t).Handler()

	w := do(t, h, http.MethodGet, "/healthz", "")
	assert.Len(t, w.Header().Get(HeaderRequestID), 36)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(HeaderRequestID))
}

func TestIndex(t *testing.T) {
	w := do(t, newTestServer(t).Handler(), http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `href="/d/gapminder"`)
	assert.Contains(t, body, `href="/d/groundwater"`)
	assert.Contains(t, body, `href="/d/groundwater-overview"`)
	assert.Contains(t, body, "2 rows from gw.csv")
}

func TestPage(t *testing.T) {
	h := newTestServer(t).Handler()

	tests := []struct {
		name     string
		contains []string
	}{
		{"groundwater", []string{
			`id="interactive-groundwater-graph"`,
			`<input type="date" id="start-date" min="2020-01-01" max="2020-02-01" value="2020-01-01">`,
			`class="theme-dark"`,
		}},
		{"groundwater-overview", []string{
			`id="groundwater-graph"`,
			`data-range="1m"`,
			`class="preset active" data-range="all"`,
		}},
		{"gapminder", []string{
			`id="graph-with-slider"`,
			`<input type="range" id="year-input" min="0" max="1" step="1" value="0">`,
			"const years = [2002,2007];",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, http.MethodGet, "/d/"+tt.name, "")
			require.Equal(t, http.StatusOK, w.Code)
			body := w.Body.String()
			assert.Contains(t, body, `<script src="http://assets.test/echarts.min.js"></script>`)
			assert.Contains(t, body, "chart.setOption({")
			for _, s := range tt.contains {
				assert.Contains(t, body, s)
			}
		})
	}
}

func TestPage_Unknown(t *testing.T) {
	w := do(t, newTestServer(t).Handler(), http.MethodGet, "/d/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, decode(t, w)["error"], "nope")
}

func TestUpdate(t *testing.T) {
	h := newTestServer(t).Handler()

	w := do(t, h, http.MethodPost, "/d/groundwater/_update",
		`{"widget":"date-picker-range","inputs":{"start_date":"2020-01-01","end_date":"2020-01-31"}}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	out := decode(t, w)
	assert.EqualValues(t, 3, out["points"])

	fig := out["figure"].(map[string]any)
	series := fig["series"].([]any)
	require.Len(t, series, 3)
	assert.Equal(t, "bar", series[0].(map[string]any)["type"])
}

func TestUpdate_DefaultsWithoutBody(t *testing.T) {
	w := do(t, newTestServer(t).Handler(), http.MethodPost, "/d/gapminder/_update", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.EqualValues(t, 1, decode(t, w)["points"])
}

func TestUpdate_BadInput(t *testing.T) {
	h := newTestServer(t).Handler()

	tests := []struct {
		name   string
		target string
		body   string
	}{
		{"bad date", "/d/groundwater/_update", `{"inputs":{"start_date":"soon"}}`},
		{"bad year", "/d/gapminder/_update", `{"inputs":{"year":"later"}}`},
		{"unknown preset", "/d/groundwater-overview/_update", `{"inputs":{"range":"10y"}}`},
		{"foreign widget", "/d/groundwater/_update", `{"widget":"year-slider","inputs":{}}`},
		{"malformed body", "/d/groundwater/_update", `{"inputs":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, http.MethodPost, tt.target, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.NotEmpty(t, decode(t, w)["error"])
		})
	}
}

func TestFigure(t *testing.T) {
	h := newTestServer(t).Handler()

	w := do(t, h, http.MethodGet, "/d/gapminder/figure?year=2007", "")
	require.Equal(t, http.StatusOK, w.Code)
	out := decode(t, w)
	traces := out["traces"].([]any)
	require.Len(t, traces, 2)
	assert.Equal(t, "Americas", traces[0].(map[string]any)["name"])

	w = do(t, h, http.MethodGet, "/d/groundwater-overview/figure?range=1m", "")
	require.Equal(t, http.StatusOK, w.Code)
	layout := decode(t, w)["layout"].(map[string]any)
	assert.NotNil(t, layout["rangeslider"])

	w = do(t, h, http.MethodGet, "/d/gapminder/figure?year=1900", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode(t, w)["traces"])
}

func TestRun_ServesUntilCancelled(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, []Site{{Handler: newTestServer(t).Handler(), Listener: ln}})
	}()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(ShutdownTimeout + time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRun_NoSites(t *testing.T) {
	assert.Error(t, Run(context.Background(), nil))
}

func TestRun_ListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	err = Run(context.Background(), []Site{{Addr: ln.Addr().String(), Handler: http.NotFoundHandler()}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listen")
}
