// Package recipe renders the RPM spec file and PHP autoloader for a Composer package.
//
// # Overview
//
// [NewContext] flattens an [composer.Identifier] and its [composer.Manifest]
// into a [Context]; [Render] fills both templates from it and [Write] puts
// the results on disk.
//
//	rc, err := recipe.NewContext(id, manifest, recipe.Options{Packager: "Jane <jane@example.org>"})
//	if err != nil {
//	    return err // CONFIG_ERROR: no single PSR-4 namespace
//	}
//	files, err := recipe.Render(rc)
//	if err != nil {
//	    return err
//	}
//	return recipe.Write(".", files)
//
// # Outputs
//
//   - autoload.php: registers the namespace with the Fedora autoloader and
//     pulls in /usr/share/php/<dependency>/autoload.php for each library dependency
//   - php-<vendor>-<project>.spec: the build recipe, installing into
//     %{_datadir}/php/<vendor>/<project>
//
// Templates hold no business logic beyond skipping empty lists; everything
// they print is computed by [NewContext].
package recipe
