// Package integrations provides the HTTP client used to talk to package registries.
//
// # Overview
//
// [Client] is the shared transport: it sets default headers, follows up to
// five redirects, and turns every non-200 response into a REGISTRY_ERROR
// carrying the status. It does not retry and does not cache; caching is
// layered on top by the registry-specific subpackages.
//
//   - [packagist]: PHP Composer packages from repo.packagist.org
//
// # Usage
//
//	client := integrations.NewClient(30*time.Second, map[string]string{
//	    "User-Agent": "composer2rpm/dev",
//	})
//	body, err := client.Get(ctx, "https://repo.packagist.org/p2/psr/log.json")
//
// [packagist]: github.com/matzehuels/composer2rpm/pkg/integrations/packagist
package integrations
