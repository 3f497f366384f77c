// Package runtime executes compiled operation descriptors against a live
// server: it builds the request URL from the operation's template, serializes
// parameters and body, and classifies the response into a Result envelope.
package runtime

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/gorilla/schema"

	"github.com/CodeGra-de/apigen/pkg/codec"
	"github.com/CodeGra-de/apigen/pkg/descriptor"
)

var (
	defaultsMu      sync.RWMutex
	defaultBaseURL  string
	defaultToken    string
	defaultsEncoder = schema.NewEncoder()
)

// SetBaseURL sets the process-wide base URL used by clients whose own
// BaseURL is empty.
func SetBaseURL(u string) {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	defaultBaseURL = u
}

// SetToken sets the process-wide bearer token used by clients whose own
// Token is empty.
func SetToken(t string) {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	defaultToken = t
}

func processDefaults() (baseURL, token string) {
	defaultsMu.RLock()
	defer defaultsMu.RUnlock()
	return defaultBaseURL, defaultToken
}

// Client executes operations against one API server. The zero value falls
// back to the process-wide defaults and http.DefaultClient.
type Client struct {
	BaseURL string
	Token   string

	// Headers are sent on every request and can be overridden per call by
	// header parameters.
	Headers map[string]string

	// DefaultQuery is an optional struct whose schema-tagged fields are
	// appended to every request's query string.
	DefaultQuery any

	// Models resolves named type references while decoding responses.
	Models codec.Models

	HTTPClient *http.Client
	Logger     *slog.Logger
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *Client) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// Call executes one compiled operation. Path, query, header and cookie
// parameters are taken from args, keyed by the parameter's argument name.
// The return contract has three outcomes: a Result with Err unset for
// accepted statuses, a Result with Err set for rejected statuses, and a
// non-nil error only when an accepted response body fails to decode or the
// request itself cannot be executed.
func (c *Client) Call(ctx context.Context, op descriptor.Operation, args map[string]any, body any) (*Result, error) {
	reqURL, err := c.buildURL(op, args)
	if err != nil {
		return nil, err
	}

	reqBody, contentType, err := encodeBody(op.Body, body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, strings.ToUpper(op.Method), reqURL, reqBody)
	if err != nil {
		return nil, err
	}
	c.applyHeaders(req, op, args, contentType)

	c.logger().Debug("executing operation",
		slog.String("operation", op.Name),
		slog.String("method", req.Method),
		slog.String("url", reqURL))

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return c.classify(op, resp)
}

func (c *Client) baseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	base, _ := processDefaults()
	return base
}

func (c *Client) token() string {
	if c.Token != "" {
		return c.Token
	}
	_, token := processDefaults()
	return token
}

func (c *Client) buildURL(op descriptor.Operation, args map[string]any) (string, error) {
	var path strings.Builder
	for _, seg := range op.Template {
		if seg.Param == "" {
			path.WriteString(seg.Literal)
			continue
		}
		p, ok := findParam(op, descriptor.InPath, seg.Param)
		if !ok {
			return "", fmt.Errorf("operation %s: path template references unknown parameter %q", op.Name, seg.Param)
		}
		v, ok := args[p.Arg]
		if !ok {
			return "", fmt.Errorf("operation %s: missing path argument %q", op.Name, p.Arg)
		}
		path.WriteString(url.PathEscape(codec.CoerceString(v)))
	}

	vals := url.Values{}
	if c.DefaultQuery != nil {
		if err := defaultsEncoder.Encode(c.DefaultQuery, vals); err != nil {
			return "", fmt.Errorf("encoding default query flags: %w", err)
		}
	}
	for _, p := range parameters(op) {
		if p.In != descriptor.InQuery {
			continue
		}
		v, ok := args[p.Arg]
		if !ok {
			continue
		}
		// caller values replace default flags of the same name
		vals.Del(p.Name)
		codec.AppendQuery(vals, p.Name, p.Style, p.Explode, v)
	}

	full := strings.TrimRight(c.baseURL(), "/") + path.String()
	if len(vals) > 0 {
		full += "?" + codec.EncodeQuery(vals)
	}
	return full, nil
}

func (c *Client) applyHeaders(req *http.Request, op descriptor.Operation, args map[string]any, contentType string) {
	req.Header.Set("Accept", "application/json")
	for k, v := range c.Headers {
		req.Header.Set(k, v)
	}
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for _, p := range parameters(op) {
		v, ok := args[p.Arg]
		if !ok {
			continue
		}
		switch p.In {
		case descriptor.InHeader:
			req.Header.Set(p.Name, codec.CoerceString(v))
		case descriptor.InCookie:
			req.AddCookie(&http.Cookie{Name: p.Name, Value: codec.CoerceString(v)})
		}
	}
}

// encodeBody serializes the request body per the operation's declared
// encoding and reports the Content-Type to send alongside it.
func encodeBody(decl *descriptor.Body, body any) (io.Reader, string, error) {
	if decl == nil || body == nil {
		return nil, "", nil
	}
	switch decl.Encoding {
	case descriptor.EncodingForm:
		fields, ok := body.(map[string]any)
		if !ok {
			return nil, "", fmt.Errorf("form bodies must be objects, got %T", body)
		}
		return strings.NewReader(codec.EncodeForm(fields)), "application/x-www-form-urlencoded", nil
	case descriptor.EncodingMultipart:
		fields, ok := body.(map[string]any)
		if !ok {
			return nil, "", fmt.Errorf("multipart bodies must be objects, got %T", body)
		}
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		for _, key := range sortedFieldKeys(fields) {
			if err := w.WriteField(key, codec.CoerceString(fields[key])); err != nil {
				return nil, "", err
			}
		}
		if err := w.Close(); err != nil {
			return nil, "", err
		}
		return &buf, w.FormDataContentType(), nil
	default:
		// content type follows the value's runtime shape
		switch v := body.(type) {
		case []byte:
			return bytes.NewReader(v), "application/octet-stream", nil
		case string:
			return strings.NewReader(v), "text/plain", nil
		}
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(raw), "application/json", nil
	}
}

// acceptedStatuses are the responses treated as success regardless of how
// the source document grouped its response schemas.
var acceptedStatuses = map[int]bool{
	http.StatusOK:                   true,
	http.StatusCreated:              true,
	http.StatusAccepted:             true,
	http.StatusNonAuthoritativeInfo: true,
	http.StatusNoContent:            true,
}

func (c *Client) classify(op descriptor.Operation, resp *http.Response) (*Result, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		// a truncated body downgrades to an empty one
		body = nil
	}

	var raw any
	if len(body) > 0 && strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(body, &raw); err != nil {
			raw = nil
		}
	} else if len(body) > 0 {
		raw = string(body)
	}

	res := &Result{
		Status:  resp.StatusCode,
		Headers: resp.Header,
	}
	if !acceptedStatuses[resp.StatusCode] {
		res.Err = true
		// a malformed error payload is still a usable error result
		if data, err := codec.Decode(op.Error, c.Models, raw); err == nil {
			res.Data = data
		}
		c.logger().Debug("operation rejected",
			slog.String("operation", op.Name),
			slog.Int("status", resp.StatusCode))
		return res, nil
	}

	if resp.StatusCode == http.StatusNoContent {
		return res, nil
	}
	// an absent or unparseable body still goes through the success codec:
	// a typed codec turns it into a decode failure
	data, err := codec.Decode(op.Success, c.Models, raw)
	if err != nil {
		return nil, err
	}
	res.Data = data
	return res, nil
}

func parameters(op descriptor.Operation) []descriptor.Parameter {
	out := make([]descriptor.Parameter, 0, len(op.Required)+len(op.Optional))
	out = append(out, op.Required...)
	out = append(out, op.Optional...)
	return out
}

func findParam(op descriptor.Operation, in descriptor.Location, name string) (descriptor.Parameter, bool) {
	for _, p := range parameters(op) {
		if p.In == in && p.Name == name {
			return p, true
		}
	}
	return descriptor.Parameter{}, false
}

func sortedFieldKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
