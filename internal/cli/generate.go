package cli

import (
	"context"

	"github.com/matzehuels/composer2rpm/pkg/composer"
	"github.com/matzehuels/composer2rpm/pkg/integrations/packagist"
	"github.com/matzehuels/composer2rpm/pkg/recipe"
)

// generate resolves name and writes both outputs into c.outDir.
// Nothing is written unless every step before the write succeeds.
func (c *CLI) generate(ctx context.Context, name string) error {
	logger := loggerFromContext(ctx)

	id, err := composer.ParseIdentifier(name)
	if err != nil {
		return err
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	store, err := c.newCache(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	client := packagist.NewClient(store, cfg.Registry.URL, cfg.HTTP.Timeout)
	logger.Debug("Looking up package", "name", id.Name, "registry", client.BaseURL())

	prog := newProgress(logger)
	md, err := client.Lookup(ctx, id)
	if err != nil {
		return err
	}
	prog.done("Resolved " + id.Name)

	manifest, err := composer.ParseManifest(md.Raw)
	if err != nil {
		return err
	}
	rc, err := recipe.NewContext(id, manifest, recipe.Options{Packager: cfg.PackagerIdentity()})
	if err != nil {
		return err
	}
	logger.Debug("Rendering", "version", rc.Version, "namespace", rc.Namespace, "dependencies", len(rc.Dependencies))

	files, err := recipe.Render(rc)
	if err != nil {
		return err
	}
	if err := recipe.Write(c.outDir, files); err != nil {
		return err
	}

	printSuccess("Generated %s %s", StyleHighlight.Render(id.Name), StyleValue.Render(rc.Version))
	for _, f := range files {
		printFile(f.Name)
	}
	printStats(len(rc.Dependencies)+len(rc.Extensions), md.Cached)
	return nil
}
