// Package beeper talks to the Beeper Desktop local HTTP API: the chat
// listing paginator, the accounts connectivity probe, and the Matrix media
// download used by the avatar proxy.
package beeper

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strconv"

	"github.com/go-resty/resty/v2"

	"github.com/antighoster/antighoster/internal/config"
	"github.com/antighoster/antighoster/internal/model"
)

// Client wraps the Beeper Desktop API with bearer auth and a fixed timeout.
type Client struct {
	http      *resty.Client
	pageLimit int
}

// NewClient creates a Client from service configuration.
func NewClient(cfg *config.Config) *Client {
	c := resty.New().
		SetBaseURL(cfg.BeeperBaseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(cfg.UpstreamTimeout)

	if cfg.BeeperAccessToken != "" {
		c.SetAuthToken(cfg.BeeperAccessToken)
	}

	return &Client{http: c, pageLimit: cfg.PageLimit}
}

// chatPage mirrors one page of the /v1/chats response.
type chatPage struct {
	Items        []model.RawChat `json:"items"`
	HasMore      bool            `json:"hasMore"`
	OldestCursor string          `json:"oldestCursor"`
}

// ListAllChats pages /v1/chats to exhaustion, including muted and archived
// conversations, and returns the concatenated items. Pages are not
// deduplicated here; the consuming layer dedups by id.
func (c *Client) ListAllChats(ctx context.Context) ([]model.RawChat, error) {
	var chats []model.RawChat
	cursor := ""
	for {
		params := map[string]string{
			"limit":           strconv.Itoa(c.pageLimit),
			"includeMuted":    "true",
			"includeArchived": "true",
		}
		if cursor != "" {
			params["cursor"] = cursor
		}

		var page chatPage
		if err := c.getJSON(ctx, "/v1/chats", params, &page); err != nil {
			return nil, err
		}

		chats = append(chats, page.Items...)
		if !page.HasMore || page.OldestCursor == "" {
			return chats, nil
		}
		cursor = page.OldestCursor
	}
}

// ListChatsPage fetches a single page without following cursors. Used by the
// debug endpoint to inspect raw response and pagination fields.
func (c *Client) ListChatsPage(ctx context.Context, limit int) (map[string]any, error) {
	params := map[string]string{
		"limit":        strconv.Itoa(limit),
		"includeMuted": "true",
	}
	var raw map[string]any
	if err := c.getJSON(ctx, "/v1/chats", params, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// Probe checks connectivity by listing accounts. A nil return means the
// upstream is reachable and the token, if any, was accepted.
func (c *Client) Probe(ctx context.Context) error {
	var ignored json.RawMessage
	return c.getJSON(ctx, "/v1/accounts", nil, &ignored)
}

// DownloadMedia fetches one mxc media object through the Matrix media
// endpoint and returns its bytes plus the reported content type.
func (c *Client) DownloadMedia(ctx context.Context, server, mediaID string) ([]byte, string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		Get(fmt.Sprintf("/_matrix/media/v3/download/%s/%s", server, mediaID))
	if err != nil {
		return nil, "", classifyTransport(err)
	}
	if err := classifyStatus(resp); err != nil {
		return nil, "", err
	}
	contentType := resp.Header().Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}
	return resp.Body(), contentType, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params map[string]string, out any) error {
	req := c.http.R().SetContext(ctx)
	if len(params) > 0 {
		req.SetQueryParams(params)
	}
	resp, err := req.Get(path)
	if err != nil {
		return classifyTransport(err)
	}
	if err := classifyStatus(resp); err != nil {
		return err
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return &Error{Kind: KindUpstream, Msg: fmt.Sprintf("decode %s response: %v", path, err)}
	}
	return nil
}

func classifyTransport(err error) error {
	if ne, ok := err.(net.Error); ok && ne.Timeout() {
		return &Error{Kind: KindUpstream, Msg: fmt.Sprintf("Beeper Desktop request timed out: %v", err)}
	}
	return &Error{
		Kind: KindUnreachable,
		Msg:  "Cannot reach Beeper Desktop. Make sure it's running with the API enabled.",
	}
}

func classifyStatus(resp *resty.Response) error {
	code := resp.StatusCode()
	switch {
	case code == http.StatusUnauthorized:
		return &Error{
			Kind:   KindUnauthorized,
			Status: code,
			Msg:    "Unauthorized — check the Beeper access token",
		}
	case code < 200 || code >= 300:
		return &Error{
			Kind:   KindUpstream,
			Status: code,
			Msg:    fmt.Sprintf("Beeper Desktop returned status %d: %s", code, resp.String()),
		}
	}
	return nil
}
