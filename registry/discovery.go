package registry

import (
	apperrors "github.com/leeforge/modkit/errors"
	"github.com/leeforge/modkit/manifest"
	"github.com/leeforge/modkit/plugin"
	"go.uber.org/zap"
)

// RegisterManifests creates and registers one plugin per enabled manifest,
// using catalog to map a manifest IID to its factory. Problems with single
// manifests are collected; the rest are still registered.
func (r *Registry) RegisterManifests(manifests []manifest.Manifest, catalog map[string]plugin.Factory) error {
	chain := apperrors.NewErrorChain()
	for _, m := range manifests {
		if !m.Enabled {
			r.logger.Info("manifest disabled, skipping", zap.String("iid", m.IID))
			continue
		}
		factory, ok := catalog[m.IID]
		if !ok {
			chain.Add(apperrors.NewNotFound("plugin factory", m.IID).WithDetail("path", m.Path))
			continue
		}
		chain.Add(r.RegisterFrom(m.IID, factory()))
	}
	return chain.Err()
}

// RegisterCatalog registers every factory of catalog in the order of ids.
func (r *Registry) RegisterCatalog(ids []string, catalog map[string]plugin.Factory) error {
	chain := apperrors.NewErrorChain()
	for _, id := range ids {
		factory, ok := catalog[id]
		if !ok {
			chain.Add(apperrors.NewNotFound("plugin factory", id))
			continue
		}
		chain.Add(r.RegisterFrom(id, factory()))
	}
	return chain.Err()
}
