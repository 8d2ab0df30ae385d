// Package packagist fetches Composer package metadata from Packagist.
//
// # Overview
//
// Documents come from the Composer v2 endpoint
// (https://repo.packagist.org/p2/<vendor>/<project>.json), which lists the
// versions of one package newest first. composer2rpm uses the first entry.
//
// # Usage
//
//	store, _ := cache.NewFileCache(dir)
//	client := packagist.NewClient(store, "", 30*time.Second)
//
//	id, _ := composer.ParseIdentifier("psr/log")
//	md, err := client.Lookup(ctx, id)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	m, _ := composer.ParseManifest(md.Raw)
//	fmt.Println(m.Version())
//
// # Caching
//
// [Client.Lookup] stores each successfully fetched document under
// "packagist:<vendor>/<project>" and serves it from the cache on every later
// call. Entries never expire. Failed fetches (non-200 responses, bodies that
// do not decode, documents without versions) are never stored.
package packagist
