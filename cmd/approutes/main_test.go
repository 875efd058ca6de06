package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafbgarcia/approutes/internal/codegen"
)

// project creates files below a fresh working directory.
func project(t *testing.T, files ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, f := range files {
		p := filepath.Join(dir, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte("<template />"), 0644))
	}
	t.Chdir(dir)
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	return out.String(), err
}

func TestGenerate(t *testing.T) {
	dir := project(t, "app/page.vue", "app/blog/[slug]/page.vue", "app/blog/card.vue")

	out, err := run(t, "generate")
	require.NoError(t, err)
	assert.Contains(t, out, "  Discover ........ done (3 files)")
	assert.Contains(t, out, "  Compile ......... done (2 routes)")
	assert.Contains(t, out, "  Write ........... done (src/router/routes.gen.ts)")

	data, err := os.ReadFile(filepath.Join(dir, "src", "router", "routes.gen.ts"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), codegen.Header))
	assert.Contains(t, string(data), `component: () => import("app/blog/[slug]/page.vue")`)

	out, err = run(t, "generate")
	require.NoError(t, err)
	assert.Contains(t, out, "  Write ........... unchanged (src/router/routes.gen.ts)")
}

func TestGenerateFlags(t *testing.T) {
	dir := project(t, "app/page.vue")

	_, err := run(t, "generate", "-o", "out/routes.json", "-f", "json")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "out", "routes.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"path": "", "name": "/", "component": "app/page.vue"}]`, string(data))

	_, err = run(t, "generate", "-f", "toml")
	assert.ErrorContains(t, err, "output.format")
}

func TestGenerateCompileError(t *testing.T) {
	project(t, "app/page.vue", "app/page.tsx")

	out, err := run(t, "generate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "conflicting route definition")
	assert.Contains(t, out, "  Compile ......... FAILED")
	assert.NoFileExists(t, filepath.Join("src", "router", "routes.gen.ts"))
}

func TestInitThenGenerate(t *testing.T) {
	dir := project(t, "pages/page.vue", "pages/about/page.vue")

	out, err := run(t, "init", "--source", "pages", "--format", "yaml", "--locales", "en,fr")
	require.NoError(t, err)
	assert.Contains(t, out, "wrote approutes.yaml")

	_, err = run(t, "init")
	assert.ErrorIs(t, err, os.ErrExist)

	_, err = run(t, "generate")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "src", "router", "routes.gen.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "component: pages/about/page.vue")
	assert.Contains(t, string(data), "locale: fr")
}

func TestPrint(t *testing.T) {
	project(t, "app/layout.vue", "app/page.vue", "app/blog/[slug]/page.vue")

	out, err := run(t, "print", "--no-color")
	require.NoError(t, err)
	assert.Equal(t, "/  app/layout.vue\n"+
		"├── (index)  app/page.vue\n"+
		"└── blog\n"+
		"    └── :slug  app/blog/[slug]/page.vue\n", out)

	out, err = run(t, "print", "--flat")
	require.NoError(t, err)
	assert.Equal(t, "/            app/page.vue\n/blog/:slug  app/blog/[slug]/page.vue\n", out)

	out, err = run(t, "print", "--format", "ts")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, codegen.Header))
}

func TestLogLevel(t *testing.T) {
	project(t, "app/page.vue")

	_, err := run(t, "print", "--log-level", "loud")
	assert.ErrorContains(t, err, "--log-level")
}

func TestFmtDuration(t *testing.T) {
	assert.Equal(t, "12ms", fmtDuration(12*time.Millisecond))
	assert.Equal(t, "1.3s", fmtDuration(1300*time.Millisecond))
}
