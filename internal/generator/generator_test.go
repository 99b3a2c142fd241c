package generator

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/altuslabsxyz/typetology/internal/output"
	"github.com/altuslabsxyz/typetology/pkg/binding"
)

const storeABI = `{
  "hash": "0x0102030405060708090a0b0c0d0e0f1011121314",
  "entrypoint": "Main",
  "functions": [
    {"name": "Query", "parameters": [{"name": "key", "type": "String"}], "returntype": "ByteArray"},
    {"name": "Put", "parameters": [{"name": "key", "type": "ByteArray"}, {"name": "value", "type": "Integer"}], "returntype": "Boolean"}
  ]
}`

const tokenABI = `{
  "hash": "14131211100f0e0d0c0b0a090807060504030201",
  "entrypoint": "Main",
  "functions": [
    {"name": "Transfer", "parameters": [{"name": "from", "type": "ByteArray"}, {"name": "to", "type": "ByteArray"}, {"name": "amount", "type": "Integer"}], "returntype": "Boolean"}
  ]
}`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// setup creates abi/store.json and abi/token_test.json under a temp dir.
func setup(t *testing.T) (pattern, outDir string) {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "abi", "store.json"), storeABI)
	writeFile(t, filepath.Join(dir, "abi", "token_test.json"), tokenABI)
	return filepath.Join(dir, "abi", "*.json"), filepath.Join(dir, "out")
}

func newRunner(t *testing.T, pattern, outDir string, force bool, prompter output.Prompter) *Runner {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Patterns = []string{pattern}
	cfg.OutputDir = outDir
	cfg.Force = force
	r, err := NewRunner(cfg, prompter, nil)
	require.NoError(t, err)
	return r
}

func TestRunner_GeneratesBindings(t *testing.T) {
	pattern, outDir := setup(t)

	result, err := newRunner(t, pattern, outDir, false, nil).Run()
	require.NoError(t, err)
	require.Len(t, result.Inputs, 2)
	require.Equal(t, []string{
		filepath.Join(outDir, "store.go"),
		filepath.Join(outDir, "tokentest.go"),
		filepath.Join(outDir, binding.RuntimeFileName),
	}, result.Written)
	require.Empty(t, result.Unchanged)

	fset := token.NewFileSet()
	for _, path := range result.Written {
		f, err := parser.ParseFile(fset, path, nil, 0)
		require.NoError(t, err, path)
		require.Equal(t, binding.DefaultPackage, f.Name.Name)
	}

	store, err := os.ReadFile(filepath.Join(outDir, "store.go"))
	require.NoError(t, err)
	require.Contains(t, string(store), "func NewStore(")
	require.Contains(t, string(store), "QueryTx(")

	tokenSrc, err := os.ReadFile(filepath.Join(outDir, "tokentest.go"))
	require.NoError(t, err)
	require.Contains(t, string(tokenSrc), "func NewTokenTest(")
}

func TestRunner_SecondRunIsUnchanged(t *testing.T) {
	pattern, outDir := setup(t)

	_, err := newRunner(t, pattern, outDir, false, nil).Run()
	require.NoError(t, err)

	prompter := &output.StaticPrompter{Answer: false}
	result, err := newRunner(t, pattern, outDir, false, prompter).Run()
	require.NoError(t, err)
	require.Empty(t, result.Written)
	require.Len(t, result.Unchanged, 3)
	require.Empty(t, prompter.Asked)
}

func TestRunner_ExistingFile(t *testing.T) {
	tests := []struct {
		name      string
		force     bool
		prompter  *output.StaticPrompter
		wantErr   bool
		wantAsked bool
	}{
		{name: "non-interactive", wantErr: true},
		{name: "declined", prompter: &output.StaticPrompter{Answer: false}, wantErr: true, wantAsked: true},
		{name: "confirmed", prompter: &output.StaticPrompter{Answer: true}, wantAsked: true},
		{name: "force", force: true, prompter: &output.StaticPrompter{Answer: false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pattern, outDir := setup(t)
			target := filepath.Join(outDir, "store.go")
			writeFile(t, target, "package bindings\n")

			var prompter output.Prompter
			if tt.prompter != nil {
				prompter = tt.prompter
			}
			result, err := newRunner(t, pattern, outDir, tt.force, prompter).Run()

			content, readErr := os.ReadFile(target)
			require.NoError(t, readErr)

			if tt.wantErr {
				require.ErrorIs(t, err, ErrFileExists)
				require.Equal(t, "package bindings\n", string(content))
				// Nothing else is written on failure
				_, statErr := os.Stat(filepath.Join(outDir, binding.RuntimeFileName))
				require.True(t, os.IsNotExist(statErr))
			} else {
				require.NoError(t, err)
				require.Contains(t, result.Written, target)
				require.Contains(t, string(content), "func NewStore(")
			}

			if tt.prompter != nil {
				if tt.wantAsked {
					require.Equal(t, []string{"Overwrite " + target}, tt.prompter.Asked)
				} else {
					require.Empty(t, tt.prompter.Asked)
				}
			}
		})
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "contracts", "a", "store.json"), storeABI)
	writeFile(t, filepath.Join(dir, "contracts", "b", "token.json"), tokenABI)
	writeFile(t, filepath.Join(dir, "contracts", "node_modules", "dep", "dep.json"), tokenABI)
	writeFile(t, filepath.Join(dir, "contracts", "a", "notes.txt"), "x")

	pattern := filepath.Join(dir, "contracts", "**", "*.json")

	files, err := Discover([]string{pattern}, []string{DefaultIgnore})
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(dir, "contracts", "a", "store.json"),
		filepath.Join(dir, "contracts", "b", "token.json"),
	}, files)

	files, err = Discover([]string{pattern}, nil)
	require.NoError(t, err)
	require.Len(t, files, 3)

	_, err = Discover([]string{filepath.Join(dir, "missing", "*.json")}, nil)
	require.ErrorIs(t, err, ErrNoInputs)

	_, err = Discover([]string{pattern}, []string{"[unclosed"})
	require.ErrorContains(t, err, "invalid ignore pattern")

	_, err = Discover(nil, nil)
	require.Error(t, err)
}

func TestRunner_DuplicateType(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "abi", "a", "store.json"), storeABI)
	writeFile(t, filepath.Join(dir, "abi", "b", "store.json"), tokenABI)
	outDir := filepath.Join(dir, "out")

	_, err := newRunner(t, filepath.Join(dir, "abi", "**", "*.json"), outDir, true, nil).Run()
	require.ErrorIs(t, err, ErrDuplicateType)

	_, statErr := os.Stat(outDir)
	require.True(t, os.IsNotExist(statErr))
}

func TestRunner_InvalidABIAborts(t *testing.T) {
	pattern, outDir := setup(t)
	writeFile(t, filepath.Join(filepath.Dir(pattern), "broken.json"), `{"hash": "01"}`)

	_, err := newRunner(t, pattern, outDir, true, nil).Run()
	require.ErrorContains(t, err, "broken.json")

	_, statErr := os.Stat(outDir)
	require.True(t, os.IsNotExist(statErr))
}

func TestNewRunner_RequiresOutput(t *testing.T) {
	_, err := NewRunner(&Config{Patterns: []string{"*.json"}}, nil, nil)
	require.ErrorContains(t, err, "output directory is required")
}

func TestOutputFileName(t *testing.T) {
	tests := []struct {
		name, typeName, want string
	}{
		{"store", "Store", "store.go"},
		{"domain-contract.v2", "DomainContractV2", "domain-contract.v2.go"},
		{"token_test", "TokenTest", "tokentest.go"},
		{"oracle_linux", "OracleLinux", "oraclelinux.go"},
		{".hidden", "Hidden", "hidden.go"},
		{"naïve", "Nave", "nave.go"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, outputFileName(tt.name, tt.typeName), tt.name)
	}
}
