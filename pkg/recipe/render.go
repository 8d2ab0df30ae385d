package recipe

import (
	"bytes"
	"embed"
	"strings"
	"text/template"
	"time"

	"github.com/matzehuels/composer2rpm/pkg/errors"
)

// AutoloaderFileName is the name of the generated PHP autoloader.
const AutoloaderFileName = "autoload.php"

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"phpString":     phpString,
	"changelogDate": changelogDate,
}).ParseFS(templateFS, "templates/*.tmpl"))

// File is one rendered output.
type File struct {
	Name string
	Data []byte
}

// Render fills both templates. The returned slice holds the autoloader
// followed by the spec file.
func Render(rc *Context) ([]File, error) {
	autoload, err := RenderAutoloader(rc)
	if err != nil {
		return nil, err
	}
	spec, err := RenderSpec(rc)
	if err != nil {
		return nil, err
	}
	return []File{
		{Name: AutoloaderFileName, Data: autoload},
		{Name: rc.Name + ".spec", Data: spec},
	}, nil
}

// RenderAutoloader renders autoload.php.
func RenderAutoloader(rc *Context) ([]byte, error) {
	return execute("autoload.php.tmpl", rc)
}

// RenderSpec renders the RPM spec file.
func RenderSpec(rc *Context) ([]byte, error) {
	return execute("package.spec.tmpl", rc)
}

func execute(name string, rc *Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, rc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", name)
	}
	if !bytes.HasSuffix(buf.Bytes(), []byte("\n")) {
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

var phpStringReplacer = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// phpString escapes s for a single-quoted PHP literal.
func phpString(s string) string {
	return phpStringReplacer.Replace(s)
}

// changelogDate formats t the way rpm expects in %changelog entries.
func changelogDate(t time.Time) string {
	return t.Format("Mon Jan 02 2006")
}
