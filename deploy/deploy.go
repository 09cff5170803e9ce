// Package deploy copies built plugin artifacts into the host plugins
// directory.
package deploy

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/creasty/defaults"
	apperrors "github.com/leeforge/modkit/errors"
	"github.com/leeforge/modkit/manifest"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const scriptExt = ".py"

// ErrNotBuilt means a native plugin has no library in its build directory.
// Such plugins are skipped rather than failing the run.
var ErrNotBuilt = errors.New("plugin has not been built")

// Result describes one deployed (or skipped) plugin.
type Result struct {
	Name    string        `json:"name"`
	Kind    manifest.Kind `json:"kind"`
	Files   []string      `json:"files,omitempty"`
	Skipped bool          `json:"skipped,omitempty"`
	Reason  string        `json:"reason,omitempty"`
}

// Deployer copies artifacts between directories of one filesystem.
type Deployer struct {
	fs     afero.Fs
	cfg    Config
	logger *zap.Logger
}

// New creates a Deployer. Empty config fields take their defaults.
func New(fs afero.Fs, cfg Config, logger *zap.Logger) (*Deployer, error) {
	if err := defaults.Set(&cfg); err != nil {
		return nil, apperrors.Wrap(err, "set deploy defaults")
	}
	if cfg.Target == "" {
		return nil, apperrors.NewInvalid("deploy.target", cfg.Target, "plugins directory is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Deployer{fs: fs, cfg: cfg, logger: logger.Named("deploy")}, nil
}

// Config returns the effective configuration.
func (d *Deployer) Config() Config { return d.cfg }

// --- Native ---

// ListNative returns the native plugin projects, sorted.
func (d *Deployer) ListNative() ([]string, error) {
	entries, err := afero.ReadDir(d.fs, d.cfg.NativeSource)
	if err != nil {
		return nil, apperrors.NewNotFound("native source", d.cfg.NativeSource).WithInnerError(err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// DeployNative copies <name>.dll and, when present, <name>.pdb from the
// project's build directory. A missing library returns ErrNotBuilt.
func (d *Deployer) DeployNative(name string) (Result, error) {
	res := Result{Name: name, Kind: manifest.KindNative}
	if ok, _ := afero.DirExists(d.fs, filepath.Join(d.cfg.NativeSource, name)); !ok {
		return res, apperrors.NewNotFound("native plugin", name)
	}

	buildDir := filepath.Join(d.cfg.NativeSource, name, d.cfg.BuildDir)
	library := filepath.Join(buildDir, name+d.cfg.LibraryExt)
	if ok, _ := afero.Exists(d.fs, library); !ok {
		return res, fmt.Errorf("%s: %w", name, ErrNotBuilt)
	}
	if err := d.fs.MkdirAll(d.cfg.Target, 0o755); err != nil {
		return res, apperrors.Wrap(err, "create plugins directory")
	}

	d.logger.Info("copying library", zap.String("plugin", name), zap.String("file", filepath.Base(library)))
	dst := filepath.Join(d.cfg.Target, filepath.Base(library))
	if err := copyFile(d.fs, library, dst); err != nil {
		return res, apperrors.Wrap(err, "copy "+library)
	}
	res.Files = append(res.Files, dst)

	symbols := filepath.Join(buildDir, name+d.cfg.SymbolsExt)
	if ok, _ := afero.Exists(d.fs, symbols); ok {
		dst := filepath.Join(d.cfg.Target, filepath.Base(symbols))
		if err := copyFile(d.fs, symbols, dst); err != nil {
			return res, apperrors.Wrap(err, "copy "+symbols)
		}
		res.Files = append(res.Files, dst)
	}
	return res, nil
}

// DeployNatives deploys the named projects, or all of them when names is
// empty. Every name is checked before anything is copied. Unbuilt projects
// are reported as skipped.
func (d *Deployer) DeployNatives(names ...string) ([]Result, error) {
	if len(names) == 0 {
		all, err := d.ListNative()
		if err != nil {
			return nil, err
		}
		names = all
	} else {
		for _, name := range names {
			if ok, _ := afero.DirExists(d.fs, filepath.Join(d.cfg.NativeSource, name)); !ok {
				return nil, apperrors.NewNotFound("native plugin", name).
					WithDetail("source", d.cfg.NativeSource)
			}
		}
	}

	chain := apperrors.NewErrorChain()
	results := make([]Result, 0, len(names))
	for _, name := range names {
		res, err := d.DeployNative(name)
		switch {
		case errors.Is(err, ErrNotBuilt):
			d.logger.Warn("plugin has not been built", zap.String("plugin", name))
			res.Skipped = true
			res.Reason = ErrNotBuilt.Error()
		case err != nil:
			chain.Add(err)
			continue
		}
		results = append(results, res)
	}
	return results, chain.Err()
}

// --- Scripts ---

// ListScripts returns script plugins: folders and .py files (without the
// extension), sorted.
func (d *Deployer) ListScripts() ([]string, error) {
	entries, err := afero.ReadDir(d.fs, d.cfg.ScriptSource)
	if err != nil {
		return nil, apperrors.NewNotFound("script source", d.cfg.ScriptSource).WithInnerError(err)
	}
	seen := map[string]bool{}
	var names []string
	for _, e := range entries {
		name := e.Name()
		switch {
		case e.IsDir():
		case strings.HasSuffix(name, scriptExt):
			name = strings.TrimSuffix(name, scriptExt)
		default:
			continue
		}
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// DeployScript copies a script plugin folder, or a single <name>.py file
// when no folder exists. Any previous deployment of the plugin, folder or
// file, is removed first.
func (d *Deployer) DeployScript(name string) (Result, error) {
	res := Result{Name: name, Kind: manifest.KindScript}
	srcDir := filepath.Join(d.cfg.ScriptSource, name)
	srcFile := srcDir + scriptExt
	dstDir := filepath.Join(d.cfg.Target, name)
	dstFile := dstDir + scriptExt

	isDir, err := d.findScript(name)
	if err != nil {
		return res, err
	}

	if err := d.fs.RemoveAll(dstDir); err != nil {
		return res, apperrors.Wrap(err, "remove "+dstDir)
	}
	if err := d.fs.Remove(dstFile); err != nil && !os.IsNotExist(err) {
		return res, apperrors.Wrap(err, "remove "+dstFile)
	}
	if err := d.fs.MkdirAll(d.cfg.Target, 0o755); err != nil {
		return res, apperrors.Wrap(err, "create plugins directory")
	}

	if isDir {
		files, err := copyTree(d.fs, srcDir, dstDir)
		if err != nil {
			return res, apperrors.Wrap(err, "copy "+srcDir)
		}
		res.Files = files
		d.logger.Info("deployed folder", zap.String("plugin", name), zap.String("target", dstDir))
		return res, nil
	}

	if err := copyFile(d.fs, srcFile, dstFile); err != nil {
		return res, apperrors.Wrap(err, "copy "+srcFile)
	}
	res.Files = []string{dstFile}
	d.logger.Info("deployed file", zap.String("plugin", name), zap.String("target", dstFile))
	return res, nil
}

// DeployScripts deploys the named script plugins, or all of them when names
// is empty.
func (d *Deployer) DeployScripts(names ...string) ([]Result, error) {
	if len(names) == 0 {
		all, err := d.ListScripts()
		if err != nil {
			return nil, err
		}
		names = all
	} else {
		for _, name := range names {
			if _, err := d.findScript(name); err != nil {
				return nil, err
			}
		}
	}

	chain := apperrors.NewErrorChain()
	results := make([]Result, 0, len(names))
	for _, name := range names {
		res, err := d.DeployScript(name)
		if err != nil {
			chain.Add(err)
			continue
		}
		results = append(results, res)
	}
	return results, chain.Err()
}

// --- Internal ---

// findScript reports whether a script plugin is a folder or a single file.
func (d *Deployer) findScript(name string) (isDir bool, err error) {
	srcDir := filepath.Join(d.cfg.ScriptSource, name)
	if ok, _ := afero.DirExists(d.fs, srcDir); ok {
		return true, nil
	}
	if info, err := d.fs.Stat(srcDir + scriptExt); err == nil && !info.IsDir() {
		return false, nil
	}
	return false, apperrors.NewNotFound("script plugin", name).
		WithDetail("source", d.cfg.ScriptSource)
}

func copyFile(fs afero.Fs, src, dst string) error {
	in, err := fs.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	out, err := fs.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return fs.Chtimes(dst, info.ModTime(), info.ModTime())
}

func copyTree(fs afero.Fs, src, dst string) ([]string, error) {
	var files []string
	err := afero.Walk(fs, src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if info.IsDir() {
			return fs.MkdirAll(target, info.Mode().Perm()|0o700)
		}
		if err := copyFile(fs, path, target); err != nil {
			return err
		}
		files = append(files, target)
		return nil
	})
	return files, err
}
