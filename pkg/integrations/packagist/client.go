package packagist

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/matzehuels/composer2rpm/pkg/buildinfo"
	"github.com/matzehuels/composer2rpm/pkg/cache"
	"github.com/matzehuels/composer2rpm/pkg/composer"
	"github.com/matzehuels/composer2rpm/pkg/errors"
	"github.com/matzehuels/composer2rpm/pkg/integrations"
)

// DefaultBaseURL is the Packagist metadata endpoint (Composer v2 "p2" layout).
const DefaultBaseURL = "https://repo.packagist.org/p2/"

// cachePrefix namespaces Packagist documents inside a shared cache.
const cachePrefix = "packagist:"

// Metadata is the raw version entry selected for a package.
type Metadata struct {
	Name   string          // Package name the entry was looked up by
	Raw    json.RawMessage // First element of packages[Name]
	Cached bool            // Whether the document came from the cache
}

// Client fetches package documents from Packagist through a write-once cache.
type Client struct {
	*integrations.Client
	baseURL string
	cache   cache.Cache
}

// NewClient creates a Packagist client.
//
// store holds fetched documents forever (see [cache.Permanent]); pass
// [cache.NewNullCache] to always hit the network. An empty baseURL selects
// [DefaultBaseURL]. timeout bounds each request; 0 disables it.
func NewClient(store cache.Cache, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Client{
		Client: integrations.NewClient(timeout, map[string]string{
			"User-Agent": "composer2rpm/" + buildinfo.Version,
			"Accept":     "application/json",
		}),
		baseURL: baseURL,
		cache:   cache.NewScoped(store, cachePrefix),
	}
}

// BaseURL returns the registry endpoint documents are fetched from.
func (c *Client) BaseURL() string { return c.baseURL }

// Lookup returns the version entry for id, fetching the document only if
// it is not cached yet. A successful fetch is stored and never refreshed;
// a failed fetch is not stored.
func (c *Client) Lookup(ctx context.Context, id composer.Identifier) (*Metadata, error) {
	doc, cached, err := cache.GetOrCompute(ctx, c.cache, id.Name, cache.Permanent, func(ctx context.Context) ([]byte, error) {
		return c.Fetch(ctx, id)
	})
	if err != nil {
		return nil, err
	}

	entry, err := versionEntry(doc, id.Name)
	if err != nil {
		return nil, err
	}
	return &Metadata{Name: id.Name, Raw: entry, Cached: cached}, nil
}

// Fetch downloads the registry document for id, bypassing the cache.
// The document is returned unmodified once it is known to hold at least
// one version entry for the package.
func (c *Client) Fetch(ctx context.Context, id composer.Identifier) ([]byte, error) {
	doc, err := c.Get(ctx, id.RegistryURL(c.baseURL))
	if err != nil {
		return nil, err
	}
	if _, err := versionEntry(doc, id.Name); err != nil {
		return nil, err
	}
	return doc, nil
}

func versionEntry(doc []byte, name string) (json.RawMessage, error) {
	var resp p2Response
	if err := json.Unmarshal(doc, &resp); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRegistry, err, "decode packagist response for %s", name)
	}
	versions, ok := resp.Packages[name]
	if !ok || len(versions) == 0 {
		return nil, errors.New(errors.ErrCodeRegistry, "no versions found for %s", name)
	}
	return versions[0], nil
}

type p2Response struct {
	Packages map[string][]json.RawMessage `json:"packages"`
}
