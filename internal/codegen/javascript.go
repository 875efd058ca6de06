package codegen

import (
	"fmt"
	"strings"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/rafbgarcia/approutes"
)

// JavaScript produces the TypeScript module transpiled to plain ES module
// JavaScript with esbuild's in-process transform. Nothing is bundled; the
// dynamic imports are kept as written.
func JavaScript(records []approutes.RouteRecord, opts Options) (string, error) {
	var src strings.Builder
	writeModule(&src, records, opts)

	result := api.Transform(src.String(), api.TransformOptions{
		Loader:     api.LoaderTS,
		Format:     api.FormatESModule,
		Target:     api.ES2020,
		Sourcefile: "routes.gen.ts",
	})
	if len(result.Errors) > 0 {
		var msgs []string
		for _, msg := range result.Errors {
			text := msg.Text
			if msg.Location != nil {
				text = fmt.Sprintf("%s:%d:%d: %s", msg.Location.File, msg.Location.Line, msg.Location.Column, msg.Text)
			}
			msgs = append(msgs, text)
		}
		return "", fmt.Errorf("esbuild errors:\n%s", strings.Join(msgs, "\n"))
	}
	return Header + "\n" + string(result.Code), nil
}
