package jira

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	jirav2 "github.com/ctreminiom/go-atlassian/v2/jira/v2"
	jirav3 "github.com/ctreminiom/go-atlassian/v2/jira/v3"
	"github.com/ctreminiom/go-atlassian/v2/pkg/infra/models"
)

// ErrEmailRequired is returned when a Jira Cloud client is created without an
// account email.
var ErrEmailRequired = errors.New("jira-user-email is required for Jira Cloud authentication")

const pageSize = 50

// IsCloud reports whether baseURL points at an Atlassian-hosted instance.
func IsCloud(baseURL string) bool {
	return strings.Contains(baseURL, ".atlassian.net")
}

// BrowseURL returns the web URL of an issue.
func BrowseURL(baseURL, key string) string {
	return strings.TrimSuffix(baseURL, "/") + "/browse/" + key
}

// Options configures a Client.
type Options struct {
	BaseURL string
	Token   string
	Email   string // required for Jira Cloud

	// HTTPClient overrides the default client with a 30s timeout.
	HTTPClient *http.Client
}

// projectSearcher is the project search endpoint shared by the v2 and v3
// REST clients.
type projectSearcher interface {
	Search(ctx context.Context, options *models.ProjectSearchOptionsScheme, startAt, maxResults int) (*models.ProjectSearchScheme, *models.ResponseScheme, error)
}

// Client lists Jira projects.
type Client struct {
	cloud    bool
	projects projectSearcher
}

// NewClient creates a client for the deployment type implied by the base
// URL: Cloud uses basic auth against REST API v3, Server and Data Center use
// a bearer token against REST API v2.
func NewClient(opts Options) (*Client, error) {
	base := strings.TrimSuffix(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		return nil, errors.New("jira base URL is required")
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	if IsCloud(base) {
		if opts.Email == "" {
			return nil, ErrEmailRequired
		}
		api, err := jirav3.New(httpClient, base)
		if err != nil {
			return nil, fmt.Errorf("creating jira cloud client: %w", err)
		}
		api.Auth.SetBasicAuth(opts.Email, opts.Token)
		return &Client{cloud: true, projects: api.Project}, nil
	}

	api, err := jirav2.New(httpClient, base)
	if err != nil {
		return nil, fmt.Errorf("creating jira client: %w", err)
	}
	api.Auth.SetBearerToken(opts.Token)
	return &Client{projects: api.Project}, nil
}

// ProjectKeys returns the keys of every project visible to the caller, in
// the order the API lists them.
func (c *Client) ProjectKeys(ctx context.Context) ([]string, error) {
	keys := []string{}
	startAt := 0

	for {
		page, res, err := c.projects.Search(ctx, &models.ProjectSearchOptionsScheme{}, startAt, pageSize)
		if err != nil {
			if res != nil && (res.Code < 200 || res.Code > 299) {
				return nil, fmt.Errorf("project search returned status %d: %w", res.Code, err)
			}
			return nil, fmt.Errorf("searching projects: %w", err)
		}
		if page == nil {
			break
		}

		for _, p := range page.Values {
			if p != nil && p.Key != "" {
				keys = append(keys, p.Key)
			}
		}

		if page.IsLast || len(page.Values) == 0 {
			break
		}
		startAt += len(page.Values)
	}

	return keys, nil
}

// FilterKeys keeps the keys present in allowed, comparing case-insensitively.
// An empty allow-list keeps every key.
func FilterKeys(keys, allowed []string) []string {
	if len(allowed) == 0 {
		return keys
	}

	set := make(map[string]struct{}, len(allowed))
	for _, k := range allowed {
		set[strings.ToUpper(k)] = struct{}{}
	}

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if _, ok := set[strings.ToUpper(k)]; ok {
			out = append(out, k)
		}
	}
	return out
}

// FetchProjectKeys lists the project keys visible with the given credentials,
// narrowed by allowed.
func FetchProjectKeys(ctx context.Context, opts Options, allowed []string) ([]string, error) {
	client, err := NewClient(opts)
	if err != nil {
		return nil, err
	}

	keys, err := client.ProjectKeys(ctx)
	if err != nil {
		return nil, fmt.Errorf("jira API error: %w", err)
	}

	return FilterKeys(keys, allowed), nil
}
