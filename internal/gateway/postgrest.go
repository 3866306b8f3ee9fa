package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// PostgREST talks to a hosted Supabase project through its REST endpoint.
type PostgREST struct {
	http       *resty.Client
	configured bool
}

// PostgRESTOption customizes a PostgREST gateway.
type PostgRESTOption func(*PostgREST)

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) PostgRESTOption {
	return func(p *PostgREST) {
		p.http.SetTimeout(d)
	}
}

// WithTransport swaps the HTTP round tripper.
func WithTransport(rt http.RoundTripper) PostgRESTOption {
	return func(p *PostgREST) {
		p.http.SetTransport(rt)
	}
}

// NewPostgREST builds a gateway for the project at projectURL. Missing
// credentials do not fail construction: the gateway is returned in a
// non-functional state and every call fails with ErrNotConfigured.
func NewPostgREST(projectURL, apiKey string, opts ...PostgRESTOption) *PostgREST {
	base := strings.TrimRight(projectURL, "/")
	client := resty.New().
		SetBaseURL(base+"/rest/v1").
		SetTimeout(30*time.Second).
		SetHeader("apikey", apiKey).
		SetHeader("Authorization", "Bearer "+apiKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	p := &PostgREST{
		http:       client,
		configured: projectURL != "" && apiKey != "",
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Configured reports whether both URL and API key were provided.
func (p *PostgREST) Configured() bool {
	return p.configured
}

func (p *PostgREST) Select(ctx context.Context, q Query) ([]Row, error) {
	if err := p.ready(); err != nil {
		return nil, err
	}
	if err := validateQuery(q); err != nil {
		return nil, err
	}

	params := filterParams(q.Filters)
	columns := "*"
	if len(q.Columns) > 0 {
		columns = strings.Join(q.Columns, ",")
	}
	params.Set("select", columns)
	if len(q.Orders) > 0 {
		keys := make([]string, len(q.Orders))
		for i, o := range q.Orders {
			dir := "asc"
			if o.Descending {
				dir = "desc"
			}
			keys[i] = o.Column + "." + dir
		}
		params.Set("order", strings.Join(keys, ","))
	}

	resp, err := p.http.R().
		SetContext(ctx).
		SetQueryParamsFromValues(params).
		Get("/" + q.Table)
	return decodeRows(resp, err)
}

func (p *PostgREST) Insert(ctx context.Context, table string, row Row) ([]Row, error) {
	if err := p.ready(); err != nil {
		return nil, err
	}
	if err := validIdent(table); err != nil {
		return nil, err
	}

	resp, err := p.http.R().
		SetContext(ctx).
		SetHeader("Prefer", "return=representation").
		SetQueryParam("select", "*").
		SetBody([]Row{row}).
		Post("/" + table)
	return decodeRows(resp, err)
}

func (p *PostgREST) Update(ctx context.Context, table string, values Row, filters ...Filter) ([]Row, error) {
	if err := p.ready(); err != nil {
		return nil, err
	}
	if err := validIdent(table); err != nil {
		return nil, err
	}
	if err := validateFilters(filters); err != nil {
		return nil, err
	}

	params := filterParams(filters)
	params.Set("select", "*")
	if values == nil {
		values = Row{}
	}
	resp, err := p.http.R().
		SetContext(ctx).
		SetHeader("Prefer", "return=representation").
		SetQueryParamsFromValues(params).
		SetBody(values).
		Patch("/" + table)
	return decodeRows(resp, err)
}

func (p *PostgREST) Delete(ctx context.Context, table string, filters ...Filter) error {
	if err := p.ready(); err != nil {
		return err
	}
	if err := validIdent(table); err != nil {
		return err
	}
	if err := validateFilters(filters); err != nil {
		return err
	}

	resp, err := p.http.R().
		SetContext(ctx).
		SetHeader("Prefer", "return=minimal").
		SetQueryParamsFromValues(filterParams(filters)).
		Delete("/" + table)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	if resp.StatusCode() >= 400 {
		return parseError(resp.Body(), resp.StatusCode())
	}
	return nil
}

func (p *PostgREST) ready() error {
	if !p.configured {
		return ErrNotConfigured
	}
	return nil
}

func filterParams(filters []Filter) url.Values {
	params := url.Values{}
	for _, f := range filters {
		switch f.Op {
		case OpEqFold:
			params.Add(f.Column, "ilike."+escapeLike(fmt.Sprint(f.Value)))
		default:
			params.Add(f.Column, "eq."+fmt.Sprint(f.Value))
		}
	}
	return params
}

func decodeRows(resp *resty.Response, err error) ([]Row, error) {
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	if resp.StatusCode() >= 400 {
		return nil, parseError(resp.Body(), resp.StatusCode())
	}
	body := resp.Body()
	if len(body) == 0 {
		return nil, nil
	}
	var rows []Row
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	return rows, nil
}

// parseError turns a PostgREST error body into an *Error.
func parseError(body []byte, statusCode int) error {
	var errResp struct {
		Code             string `json:"code"`
		Message          string `json:"message"`
		Details          string `json:"details"`
		Hint             string `json:"hint"`
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}
	if err := json.Unmarshal(body, &errResp); err != nil {
		return &Error{Code: "unknown", Message: string(body), StatusCode: statusCode}
	}

	msg := errResp.Message
	if msg == "" {
		msg = errResp.Error
	}
	if msg == "" {
		msg = errResp.ErrorDescription
	}
	return &Error{
		Code:       errResp.Code,
		Message:    msg,
		Details:    errResp.Details,
		Hint:       errResp.Hint,
		StatusCode: statusCode,
	}
}

// escapeLike neutralizes LIKE wildcards so a pattern only matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
