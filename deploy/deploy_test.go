package deploy

import (
	"testing"

	apperrors "github.com/leeforge/modkit/errors"
	"github.com/leeforge/modkit/manifest"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newTestDeployer(t *testing.T) (*Deployer, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	d, err := New(fs, Config{
		NativeSource: "/src/cpp_examples",
		ScriptSource: "/src/python_examples",
		Target:       "/mo2/plugins",
	}, nil)
	require.NoError(t, err)
	return d, fs
}

func write(t *testing.T, fs afero.Fs, path, body string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, path, []byte(body), 0o644))
}

func read(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	return string(data)
}

func TestNew_Defaults(t *testing.T) {
	d, err := New(afero.NewMemMapFs(), Config{Target: "/plugins"}, nil)
	require.NoError(t, err)

	cfg := d.Config()
	assert.Equal(t, "cpp_examples", cfg.NativeSource)
	assert.Equal(t, "python_examples", cfg.ScriptSource)
	assert.Equal(t, "vsbuild/src/RelWithDebInfo", cfg.BuildDir)
	assert.Equal(t, ".dll", cfg.LibraryExt)
	assert.Equal(t, ".pdb", cfg.SymbolsExt)

	_, err = New(afero.NewMemMapFs(), Config{}, nil)
	assert.Error(t, err)
}

func TestDeployNative(t *testing.T) {
	d, fs := newTestDeployer(t)
	write(t, fs, "/src/cpp_examples/hello_tool/vsbuild/src/RelWithDebInfo/hello_tool.dll", "library")
	write(t, fs, "/src/cpp_examples/hello_tool/vsbuild/src/RelWithDebInfo/hello_tool.pdb", "symbols")

	res, err := d.DeployNative("hello_tool")
	require.NoError(t, err)
	assert.Equal(t, manifest.KindNative, res.Kind)
	assert.Equal(t, []string{"/mo2/plugins/hello_tool.dll", "/mo2/plugins/hello_tool.pdb"}, res.Files)
	assert.Equal(t, "library", read(t, fs, "/mo2/plugins/hello_tool.dll"))
	assert.Equal(t, "symbols", read(t, fs, "/mo2/plugins/hello_tool.pdb"))
}

func TestDeployNative_SymbolsOptional(t *testing.T) {
	d, fs := newTestDeployer(t)
	write(t, fs, "/src/cpp_examples/hello_plugin/vsbuild/src/RelWithDebInfo/hello_plugin.dll", "library")

	res, err := d.DeployNative("hello_plugin")
	require.NoError(t, err)
	assert.Equal(t, []string{"/mo2/plugins/hello_plugin.dll"}, res.Files)

	ok, _ := afero.Exists(fs, "/mo2/plugins/hello_plugin.pdb")
	assert.False(t, ok)
}

func TestDeployNative_NotBuilt(t *testing.T) {
	d, fs := newTestDeployer(t)
	require.NoError(t, fs.MkdirAll("/src/cpp_examples/hello_feature/src", 0o755))

	_, err := d.DeployNative("hello_feature")
	assert.ErrorIs(t, err, ErrNotBuilt)

	_, err = d.DeployNative("missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDeployNatives_AllSkipsUnbuilt(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	fs := afero.NewMemMapFs()
	d, err := New(fs, Config{NativeSource: "/src/cpp_examples", Target: "/mo2/plugins"}, zap.New(core))
	require.NoError(t, err)

	write(t, fs, "/src/cpp_examples/hello_tool/vsbuild/src/RelWithDebInfo/hello_tool.dll", "library")
	require.NoError(t, fs.MkdirAll("/src/cpp_examples/hello_feature/src", 0o755))

	results, err := d.DeployNatives()
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "hello_feature", results[0].Name)
	assert.True(t, results[0].Skipped)
	assert.Equal(t, "hello_tool", results[1].Name)
	assert.False(t, results[1].Skipped)
	assert.Equal(t, 1, logs.FilterMessage("plugin has not been built").Len())
}

func TestDeployNatives_ValidatesNamesFirst(t *testing.T) {
	d, fs := newTestDeployer(t)
	write(t, fs, "/src/cpp_examples/hello_tool/vsbuild/src/RelWithDebInfo/hello_tool.dll", "library")

	_, err := d.DeployNatives("hello_tool", "nope")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	ok, _ := afero.Exists(fs, "/mo2/plugins/hello_tool.dll")
	assert.False(t, ok, "nothing is copied when a name is unknown")
}

func TestListScripts(t *testing.T) {
	d, fs := newTestDeployer(t)
	write(t, fs, "/src/python_examples/hello_plugin.py", "plugin")
	write(t, fs, "/src/python_examples/packaged/__init__.py", "init")
	write(t, fs, "/src/python_examples/notes.txt", "ignored")

	names, err := d.ListScripts()
	require.NoError(t, err)
	assert.Equal(t, []string{"hello_plugin", "packaged"}, names)
}

func TestDeployScript_File(t *testing.T) {
	d, fs := newTestDeployer(t)
	write(t, fs, "/src/python_examples/hello_plugin.py", "def createPlugin(): ...")
	write(t, fs, "/mo2/plugins/hello_plugin/stale.py", "old folder deployment")

	res, err := d.DeployScript("hello_plugin")
	require.NoError(t, err)
	assert.Equal(t, manifest.KindScript, res.Kind)
	assert.Equal(t, []string{"/mo2/plugins/hello_plugin.py"}, res.Files)
	assert.Equal(t, "def createPlugin(): ...", read(t, fs, "/mo2/plugins/hello_plugin.py"))

	ok, _ := afero.DirExists(fs, "/mo2/plugins/hello_plugin")
	assert.False(t, ok, "previous folder deployment is removed")
}

func TestDeployScript_Folder(t *testing.T) {
	d, fs := newTestDeployer(t)
	write(t, fs, "/src/python_examples/packaged/__init__.py", "init")
	write(t, fs, "/src/python_examples/packaged/lib/util.py", "util")
	write(t, fs, "/mo2/plugins/packaged.py", "old file deployment")
	write(t, fs, "/mo2/plugins/packaged/removed.py", "stale")

	res, err := d.DeployScript("packaged")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		"/mo2/plugins/packaged/__init__.py",
		"/mo2/plugins/packaged/lib/util.py",
	}, res.Files)
	assert.Equal(t, "util", read(t, fs, "/mo2/plugins/packaged/lib/util.py"))

	for _, gone := range []string{"/mo2/plugins/packaged.py", "/mo2/plugins/packaged/removed.py"} {
		ok, _ := afero.Exists(fs, gone)
		assert.False(t, ok, gone)
	}
}

func TestDeployScripts(t *testing.T) {
	d, fs := newTestDeployer(t)
	write(t, fs, "/src/python_examples/hello_plugin.py", "plugin")

	results, err := d.DeployScripts()
	require.NoError(t, err)
	require.Len(t, results, 1)

	_, err = d.DeployScripts("hello_plugin", "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDeployScripts_ValidatesNamesFirst(t *testing.T) {
	d, fs := newTestDeployer(t)
	write(t, fs, "/src/python_examples/hello_plugin.py", "new")
	write(t, fs, "/mo2/plugins/hello_plugin.py", "old")

	results, err := d.DeployScripts("hello_plugin", "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Empty(t, results)
	assert.Equal(t, "old", read(t, fs, "/mo2/plugins/hello_plugin.py"))
}
