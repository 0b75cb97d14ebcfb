// Package reddit retrieves discussion comments for a course via the public
// JSON API. The lookup is best-effort: rate limiting or network failure
// surfaces as an error the caller degrades to an empty comment set.
package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/learnsphere/learnsphere-backend/internal/logger"
	"github.com/learnsphere/learnsphere-backend/internal/utils"
)

const (
	maxDiscussions           = 5
	maxCommentsPerDiscussion = 5
)

type Client interface {
	// Comments returns up to 5 top-level comments from each of up to 5
	// discussions matching the topic query.
	Comments(ctx context.Context, topic string) ([]string, error)
}

type client struct {
	log        *logger.Logger
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

func NewClient(log *logger.Logger) Client {
	baseURL := strings.TrimRight(utils.GetEnv("REDDIT_BASE_URL", "https://www.reddit.com", log), "/")
	return &client{
		log:       log.With("client", "Reddit"),
		baseURL:   baseURL,
		userAgent: "course_recommender v1.0",
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type listing struct {
	Data struct {
		Children []struct {
			Kind string `json:"kind"`
			Data struct {
				Permalink string `json:"permalink"`
				Body      string `json:"body"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

func (c *client) Comments(ctx context.Context, topic string) ([]string, error) {
	searchURL := fmt.Sprintf("%s/search.json?q=%s&limit=%d", c.baseURL, url.QueryEscape(topic), maxDiscussions)

	var results listing
	if err := c.getJSON(ctx, searchURL, &results); err != nil {
		return nil, fmt.Errorf("discussion search: %w", err)
	}

	var comments []string
	for _, child := range results.Data.Children {
		if child.Data.Permalink == "" {
			continue
		}
		batch, err := c.discussionComments(ctx, child.Data.Permalink)
		if err != nil {
			// One dead discussion does not sink the lookup.
			c.log.Warn("Failed to fetch discussion comments", "permalink", child.Data.Permalink, "error", err)
			continue
		}
		comments = append(comments, batch...)
	}
	return comments, nil
}

func (c *client) discussionComments(ctx context.Context, permalink string) ([]string, error) {
	commentsURL := fmt.Sprintf("%s%s.json?limit=%d&depth=1", c.baseURL, strings.TrimSuffix(permalink, "/"), maxCommentsPerDiscussion)

	// A discussion page decodes as [post listing, comment listing].
	var pages []listing
	if err := c.getJSON(ctx, commentsURL, &pages); err != nil {
		return nil, err
	}
	if len(pages) < 2 {
		return nil, nil
	}

	var comments []string
	for _, child := range pages[1].Data.Children {
		if child.Kind != "t1" || strings.TrimSpace(child.Data.Body) == "" {
			continue
		}
		comments = append(comments, child.Data.Body)
		if len(comments) >= maxCommentsPerDiscussion {
			break
		}
	}
	return comments, nil
}

func (c *client) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
