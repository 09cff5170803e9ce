package cli

import (
	"context"
	"io"

	apperrors "github.com/leeforge/modkit/errors"
	"github.com/leeforge/modkit/manifest"
	"github.com/leeforge/modkit/plugin"
	"github.com/leeforge/modkit/plugin/examples/hello"
	"github.com/leeforge/modkit/registry"
	"github.com/leeforge/modkit/settings"
	"go.uber.org/zap"
)

// hostWindow is the parent handed to notifications raised from the CLI.
const hostWindow = "modkit"

// session is one running host: settings backend, registry and the
// notifications plugins raised.
type session struct {
	registry *registry.Registry
	notes    *plugin.RecordingNotifier
	store    settings.Store
	closer   io.Closer
	logger   *zap.Logger
}

// openSession builds a host from configuration, registers the plugins and
// initializes them. Plugins that fail to initialize are logged and stay
// registered in the failed state.
func (a *app) openSession(ctx context.Context) (*session, error) {
	logger := a.log.Zap()

	store, closer, err := settings.Open(ctx, a.cfg.Settings, logger)
	if err != nil {
		return nil, err
	}

	notes := plugin.NewRecordingNotifier(plugin.NewLogNotifier(logger))
	host := plugin.NewHost(plugin.Host{
		Logger:   logger,
		Notifier: notes,
		Window:   hostWindow,
		Paths: plugin.Paths{
			Base:    a.cfg.Paths.Base,
			Plugins: a.cfg.Paths.Plugins,
			Mods:    a.cfg.Paths.Mods,
			Data:    a.cfg.Paths.Data,
		},
		Settings: store,
		Disabled: a.cfg.DisabledSet(),
	})

	s := &session{
		registry: registry.New(registry.Config{Host: host, Logger: logger}),
		notes:    notes,
		store:    store,
		closer:   closer,
		logger:   logger,
	}
	if err := a.registerPlugins(s.registry); err != nil {
		_ = closer.Close()
		return nil, err
	}
	if err := s.registry.InitAll(); err != nil {
		logger.Warn("some plugins failed to initialize", zap.Error(err))
	}
	return s, nil
}

// registerPlugins registers the plugins named by the manifests in the
// plugins directory, or the whole bundled catalog when there are none.
// Manifest files that all fail to load are an error.
func (a *app) registerPlugins(r *registry.Registry) error {
	manifests, err := manifest.Discover(a.fs, a.cfg.Paths.Plugins)
	if err != nil {
		if len(manifests) == 0 {
			return apperrors.Wrap(err, "no usable plugin manifests in "+a.cfg.Paths.Plugins)
		}
		a.log.Warn("manifest discovery reported problems", zap.Error(err))
	}
	if len(manifests) == 0 {
		a.log.Info("no plugin manifests found, registering bundled catalog",
			zap.String("dir", a.cfg.Paths.Plugins))
		return r.RegisterCatalog(hello.IIDs(), hello.Catalog())
	}
	if err := r.RegisterManifests(manifests, hello.Catalog()); err != nil {
		a.log.Warn("some manifests could not be registered", zap.Error(err))
	}
	return nil
}

func (s *session) Close(ctx context.Context) error {
	chain := apperrors.NewErrorChain()
	chain.Add(s.registry.Shutdown(ctx))
	chain.Add(s.closer.Close())
	return chain.Err()
}
