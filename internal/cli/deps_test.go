package cli

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const modulePath = "slangclip"

// Libraries that open the desktop session when loaded; the CLI must run
// without one.
var desktopOnlyImports = []string{
	"golang.design/x/hotkey",
	"github.com/micmonay/keybd_event",
}

func moduleImports(t *testing.T, root, pkg string, seen map[string]bool, external map[string][]string) {
	t.Helper()
	if seen[pkg] {
		return
	}
	seen[pkg] = true

	dir := filepath.Join(root, strings.TrimPrefix(strings.TrimPrefix(pkg, modulePath), "/"))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	fset := token.NewFileSet()
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		file, err := parser.ParseFile(fset, filepath.Join(dir, name), nil, parser.ImportsOnly)
		require.NoError(t, err)
		for _, spec := range file.Imports {
			path, err := strconv.Unquote(spec.Path.Value)
			require.NoError(t, err)
			if path == modulePath || strings.HasPrefix(path, modulePath+"/") {
				moduleImports(t, root, path, seen, external)
				continue
			}
			external[path] = append(external[path], pkg)
		}
	}
}

func TestCLIDoesNotDependOnDesktopSession(t *testing.T) {
	t.Parallel()

	root, err := filepath.Abs(filepath.Join("..", ".."))
	require.NoError(t, err)
	gomod, err := os.ReadFile(filepath.Join(root, "go.mod"))
	require.NoError(t, err)
	require.Contains(t, string(gomod), "module "+modulePath+"\n")

	external := map[string][]string{}
	for _, pkg := range []string{modulePath + "/internal/cli", modulePath + "/cmd/slangclip-cli"} {
		moduleImports(t, root, pkg, map[string]bool{}, external)
	}

	require.Contains(t, external, "github.com/spf13/cobra")
	for _, lib := range desktopOnlyImports {
		require.NotContains(t, external, lib, "imported by %v", external[lib])
	}
}
