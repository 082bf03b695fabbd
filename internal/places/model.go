package places

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/mikmak/psga/internal/action"
	"github.com/mikmak/psga/internal/dispatcher"
	"github.com/mikmak/psga/internal/logging"
	"github.com/mikmak/psga/internal/window"
)

// DefaultBaseURL is where the mock REST service listens by default.
const DefaultBaseURL = "http://127.0.0.1:8000/"

// Row is one decoded record of a resource.
type Row map[string]any

// Cell returns the value under heading formatted for display.
func (r Row) Cell(heading string) string {
	v, ok := r[heading]
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// Response is the outcome of one REST request, posted back to the loop.
type Response struct {
	Resource string
	Body     []byte
	Err      error
}

// HTTPError is a REST response with an error status.
type HTTPError struct {
	StatusCode int
	Reason     string
	Detail     string
}

func (e *HTTPError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("HTTP status code: %d - %s", e.StatusCode, e.Reason)
	}
	return fmt.Sprintf("%s\n\n(HTTP status code: %d - %s)", e.Detail, e.StatusCode, e.Reason)
}

func newHTTPError(status int, body []byte) *HTTPError {
	e := &HTTPError{StatusCode: status, Reason: http.StatusText(status)}
	if detail := gjson.GetBytes(body, "detail"); detail.Exists() {
		e.Detail = detail.String()
	}
	return e
}

// Resources is what controllers need from the model.
type Resources interface {
	Read(resource string)
	Create(resource string, fields map[string]string)
	Delete(resource, id string)
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithRetryMax sets how often failed requests are retried.
func WithRetryMax(n int) ModelOption {
	return func(m *Model) {
		m.client.RetryMax = n
	}
}

// WithTimeout bounds each request, retries included. Zero disables the
// bound; negative durations are ignored.
func WithTimeout(d time.Duration) ModelOption {
	return func(m *Model) {
		if d >= 0 {
			m.timeout = d
		}
	}
}

// WithModelLogger sets the logger for request tracing.
func WithModelLogger(l *logging.Logger) ModelOption {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// Model manages resources held by a REST service.
//
// Requests run through the window's PerformLongOperation; their responses
// come back as events handled by the model's own actions, which then post
// the decoded rows, or the error, under the resource name.
type Model struct {
	win     window.Window
	client  *retryablehttp.Client
	baseURL string
	timeout time.Duration
	logger  *logging.Logger

	onRefreshed *action.Action
	onCreated   *action.Action
	onDeleted   *action.Action
}

// NewModel creates a model for the service at baseURL and registers its
// actions with d. The model is not a controller, so it registers them itself.
func NewModel(d *dispatcher.Dispatcher, win window.Window, baseURL string, opts ...ModelOption) *Model {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	m := &Model{
		win:     win,
		client:  retryablehttp.NewClient(),
		baseURL: baseURL,
		timeout: 10 * time.Second,
		logger:  logging.NewNull(),
	}
	m.client.RetryWaitMin = 50 * time.Millisecond
	m.client.RetryWaitMax = 500 * time.Millisecond
	m.client.ErrorHandler = retryablehttp.PassthroughErrorHandler
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.WithComponent("model")
	m.client.Logger = leveledLogger{m.logger}

	m.onRefreshed = action.New(m.refreshed)
	m.onCreated = action.New(m.created)
	m.onDeleted = action.New(m.deleted)
	d.Register(m.onRefreshed).Register(m.onCreated).Register(m.onDeleted)

	return m
}

// Read fetches every record of resource.
func (m *Model) Read(resource string) {
	m.request(m.onRefreshed, resource, http.MethodGet, resource, nil)
}

// Create adds a record built from fields.
func (m *Model) Create(resource string, fields map[string]string) {
	body, err := encodeFields(fields)
	if err != nil {
		m.win.WriteEventValue(resource, err)
		return
	}
	m.request(m.onCreated, resource, http.MethodPost, resource, body)
}

// Delete removes the record with id.
func (m *Model) Delete(resource, id string) {
	m.request(m.onDeleted, resource, http.MethodDelete, resource+"/"+url.PathEscape(id), nil)
}

func (m *Model) request(reply *action.Action, resource, method, path string, body []byte) {
	target := m.baseURL + path
	m.win.PerformLongOperation(func() any {
		return m.send(resource, method, target, body)
	}, reply.Name())
}

func (m *Model) requestContext() (context.Context, context.CancelFunc) {
	if m.timeout == 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), m.timeout)
}

func (m *Model) send(resource, method, target string, body []byte) Response {
	ctx, cancel := m.requestContext()
	defer cancel()

	var raw any
	if body != nil {
		raw = body
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, method, target, raw)
	if err != nil {
		return Response{Resource: resource, Err: fmt.Errorf("building request: %w", err)}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return Response{Resource: resource, Err: fmt.Errorf("%s %s: %w", method, target, err)}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{Resource: resource, Err: fmt.Errorf("reading response: %w", err)}
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return Response{Resource: resource, Body: data, Err: newHTTPError(resp.StatusCode, data)}
	}
	return Response{Resource: resource, Body: data}
}

// response extracts the Response posted under a's name. It reports false
// after posting the error, if any, under the resource name.
func (m *Model) response(a *action.Action, values window.Values) (Response, bool) {
	v, _ := values.Get(a.Name())
	resp, ok := v.(Response)
	if !ok {
		m.logger.Warn("%s: unexpected value %T", a.Name(), v)
		return Response{}, false
	}
	if resp.Err != nil {
		m.logger.Debug("%s failed (operation %s): %v", resp.Resource, values.Operation(), resp.Err)
		m.win.WriteEventValue(resp.Resource, resp.Err)
		return resp, false
	}
	return resp, true
}

func (m *Model) refreshed(values window.Values) {
	resp, ok := m.response(m.onRefreshed, values)
	if !ok {
		return
	}
	rows, err := decodeRows(resp.Body)
	if err != nil {
		m.win.WriteEventValue(resp.Resource, err)
		return
	}
	m.logger.Debug("%s: %d rows (operation %s)", resp.Resource, len(rows), values.Operation())
	m.win.WriteEventValue(resp.Resource, rows)
}

func (m *Model) created(values window.Values) {
	if resp, ok := m.response(m.onCreated, values); ok {
		m.Read(resp.Resource)
	}
}

func (m *Model) deleted(values window.Values) {
	if resp, ok := m.response(m.onDeleted, values); ok {
		m.Read(resp.Resource)
	}
}

func decodeRows(body []byte) ([]Row, error) {
	dec := json.NewDecoder(strings.NewReader(string(body)))
	dec.UseNumber()
	var rows []Row
	if err := dec.Decode(&rows); err != nil {
		return nil, fmt.Errorf("decoding rows: %w", err)
	}
	return rows, nil
}

func encodeFields(fields map[string]string) ([]byte, error) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	body := []byte("{}")
	for _, k := range keys {
		var err error
		body, err = sjson.SetBytes(body, k, fields[k])
		if err != nil {
			return nil, fmt.Errorf("encoding field %q: %w", k, err)
		}
	}
	return body, nil
}

// leveledLogger adapts logging.Logger to retryablehttp.LeveledLogger.
type leveledLogger struct {
	l *logging.Logger
}

func (l leveledLogger) Error(msg string, kv ...any) { l.with(kv).Error("%s", msg) }
func (l leveledLogger) Info(msg string, kv ...any)  { l.with(kv).Debug("%s", msg) }
func (l leveledLogger) Debug(msg string, kv ...any) { l.with(kv).Debug("%s", msg) }
func (l leveledLogger) Warn(msg string, kv ...any)  { l.with(kv).Warn("%s", msg) }

func (l leveledLogger) with(kv []any) *logging.Logger {
	if len(kv) == 0 {
		return l.l
	}
	fields := make(map[string]any, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		fields[fmt.Sprint(kv[i])] = kv[i+1]
	}
	return l.l.WithFields(fields)
}
