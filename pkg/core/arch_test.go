package core_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

const modulePath = "github.com/leapstack-labs/phonet"

// packageImports returns the imports of every non-test file in dir, keyed by
// file name.
func packageImports(t *testing.T, dir string) map[string][]string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", dir, err)
	}

	fset := token.NewFileSet()
	imports := make(map[string][]string)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".go") || strings.HasSuffix(entry.Name(), "_test.go") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		f, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			t.Errorf("Failed to parse %s: %v", path, err)
			continue
		}
		for _, imp := range f.Imports {
			imports[entry.Name()] = append(imports[entry.Name()], strings.Trim(imp.Path.Value, `"`))
		}
	}
	return imports
}

// TestCoreImportsOnlyStdlib verifies pkg/core has no dependencies outside
// the standard library.
func TestCoreImportsOnlyStdlib(t *testing.T) {
	for file, imports := range packageImports(t, ".") {
		for _, imp := range imports {
			if strings.Contains(imp, ".") {
				t.Errorf("%s imports non-stdlib package: %s", file, imp)
			}
		}
	}
}

// TestPackageLayering verifies each pkg/ package only reaches downward:
// core <- parser, class <- rule <- scheme.
func TestPackageLayering(t *testing.T) {
	allowed := map[string][]string{
		"parser": {"core"},
		"class":  {"core"},
		"rule":   {"core", "class"},
		"scheme": {"core", "parser", "class", "rule"},
	}

	for pkg, deps := range allowed {
		t.Run(pkg, func(t *testing.T) {
			for file, imports := range packageImports(t, filepath.Join("..", pkg)) {
				for _, imp := range imports {
					rest, ok := strings.CutPrefix(imp, modulePath+"/")
					if !ok {
						continue
					}
					if strings.HasPrefix(rest, "internal/") {
						t.Errorf("%s/%s imports internal package: %s", pkg, file, imp)
						continue
					}
					if !slices.Contains(deps, strings.TrimPrefix(rest, "pkg/")) {
						t.Errorf("%s/%s imports %s (allowed: %v)", pkg, file, imp, deps)
					}
				}
			}
		})
	}
}
