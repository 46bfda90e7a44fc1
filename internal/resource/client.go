package resource

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/canonical/scim-admin-ui/internal/logging"
	"github.com/canonical/scim-admin-ui/internal/monitoring"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"
)

const (
	ActionGet    = "get"
	ActionUpdate = "update"

	maxErrorBody = 512
)

type Action struct {
	Method string `json:"method" yaml:"method"`
	URL    string `json:"url" yaml:"url"`
}

// Definition is one entry of the resource table, URL is the template of the implied get action
type Definition struct {
	Name    string            `json:"name" yaml:"name"`
	URL     string            `json:"url" yaml:"url"`
	Params  []string          `json:"params" yaml:"params"`
	Actions map[string]Action `json:"actions" yaml:"actions"`
}

// Client issues the actions of one REST resource, it holds no per call state and is safe
// to share between bindings
type Client struct {
	name    string
	baseURL string
	actions map[string]Action

	http *http.Client
	sf   singleflight.Group

	tracer  trace.Tracer
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (c *Client) Name() string {
	return c.name
}

// Actions lists the action names sorted
func (c *Client) Actions() []string {
	names := make([]string, 0, len(c.actions))

	for name := range c.actions {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Do runs action with the url expanded from params, body is JSON encoded when not nil.
// Identical concurrent GETs share a single request.
func (c *Client) Do(ctx context.Context, action string, params map[string]string, body interface{}) (json.RawMessage, error) {
	ctx, span := c.tracer.Start(ctx, "resource.Client.Do")
	defer span.End()

	a, ok := c.actions[action]

	if !ok {
		return nil, fmt.Errorf("%w %s for resource %s", ErrUnknownAction, action, c.name)
	}

	path, err := expand(a.URL, params)

	if err != nil {
		return nil, fmt.Errorf("resource %s: %w", c.name, err)
	}

	url := c.baseURL + path

	span.SetAttributes(
		attribute.String("resource.name", c.name),
		attribute.String("resource.action", action),
		attribute.String("http.url", url),
	)

	if a.Method != http.MethodGet || body != nil {
		raw, err := c.execute(ctx, action, a.Method, url, body)

		if err != nil {
			span.SetStatus(codes.Error, err.Error())
		}

		return raw, err
	}

	// the shared request outlives any single caller, it is bounded by the http client timeout
	shared := trace.ContextWithSpan(context.Background(), span)

	ch := c.sf.DoChan(a.Method+" "+url, func() (interface{}, error) {
		return c.execute(shared, action, a.Method, url, nil)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Shared {
			c.logger.Debugf("resource %s: shared in-flight %s %s", c.name, a.Method, url)
		}

		if res.Err != nil {
			span.SetStatus(codes.Error, res.Err.Error())
			return nil, res.Err
		}

		return res.Val.(json.RawMessage), nil
	}
}

func (c *Client) execute(ctx context.Context, action, method, url string, body interface{}) (json.RawMessage, error) {
	terr := &TransportError{Resource: c.name, Action: action, Method: method, URL: url}

	var reader io.Reader

	if body != nil {
		payload, err := json.Marshal(body)

		if err != nil {
			return nil, fmt.Errorf("resource %s: encoding %s payload: %w", c.name, action, err)
		}

		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)

	if err != nil {
		terr.Err = err
		return nil, terr
	}

	req.Header.Set("Accept", "application/scim+json, application/json")

	if body != nil {
		req.Header.Set("Content-Type", "application/scim+json")
	}

	startTime := time.Now()
	resp, err := c.http.Do(req)

	// a caller going away says nothing about the server
	if err != nil && ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if err != nil {
		c.availability(0)
		terr.Err = err

		return nil, terr
	}

	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)

	if err != nil && ctx.Err() != nil {
		return nil, ctx.Err()
	}

	c.responseTime(action, resp.StatusCode, time.Since(startTime))

	if err != nil {
		c.availability(0)
		terr.Err = fmt.Errorf("reading body: %w", err)

		return nil, terr
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// 5xx are the server being unhealthy, 4xx are answers
		if resp.StatusCode >= 500 {
			c.availability(0)
		} else {
			c.availability(1)
		}

		terr.Status = resp.StatusCode
		terr.Body = truncate(strings.TrimSpace(string(raw)), maxErrorBody)
		terr.Err = fmt.Errorf("unexpected status %d", resp.StatusCode)

		return nil, terr
	}

	c.availability(1)

	return json.RawMessage(raw), nil
}

func (c *Client) availability(v float64) {
	if err := c.monitor.SetDependencyAvailability(map[string]string{"component": c.name}, v); err != nil {
		c.logger.Debugf("error setting dependency availability: %s", err)
	}
}

func (c *Client) responseTime(action string, status int, elapsed time.Duration) {
	tags := map[string]string{
		"route":  fmt.Sprintf("upstream %s.%s", c.name, action),
		"status": fmt.Sprint(status),
	}

	if err := c.monitor.SetResponseTimeMetric(tags, elapsed.Seconds()); err != nil {
		c.logger.Debugf("error setting response time metric: %s", err)
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}

	// back off to a rune boundary so the body stays valid UTF-8
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}

	return s[:max] + "..."
}

// NewHTTPClient returns a client with traced transport, shared by all resources
func NewHTTPClient(timeout time.Duration) *http.Client {
	c := new(http.Client)

	c.Timeout = timeout
	c.Transport = otelhttp.NewTransport(http.DefaultTransport)

	return c
}

// NewClient validates every url template of def, undeclared placeholders are reported here
// and never at call time
func NewClient(baseURL string, def Definition, httpClient *http.Client, tracer trace.Tracer, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) (*Client, error) {
	if def.Name == "" {
		return nil, fmt.Errorf("resource definition without name")
	}

	declared := make(map[string]bool)

	for _, p := range def.Params {
		declared[p] = true
	}

	actions := make(map[string]Action)

	if def.URL != "" {
		actions[ActionGet] = Action{Method: http.MethodGet, URL: def.URL}
	}

	for name, a := range def.Actions {
		if a.URL == "" {
			a.URL = def.URL
		}

		if a.Method == "" {
			a.Method = http.MethodGet
		}

		a.Method = strings.ToUpper(a.Method)
		actions[name] = a
	}

	if len(actions) == 0 {
		return nil, fmt.Errorf("resource %s: %w: no url and no actions", def.Name, ErrInvalidTemplate)
	}

	for name, a := range actions {
		names, err := placeholders(a.URL)

		if err != nil {
			return nil, fmt.Errorf("resource %s action %s: %w", def.Name, name, err)
		}

		for _, n := range names {
			if !declared[n] {
				return nil, fmt.Errorf("resource %s action %s: %w: %s", def.Name, name, ErrUnknownPlaceholder, n)
			}
		}
	}

	if httpClient == nil {
		httpClient = NewHTTPClient(10 * time.Second)
	}

	c := new(Client)

	c.name = def.Name
	c.baseURL = strings.TrimSuffix(baseURL, "/")
	c.actions = actions
	c.http = httpClient

	c.tracer = tracer
	c.monitor = monitor
	c.logger = logger

	return c, nil
}
