package commands

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/cloud-ru/deposit-calculator-go/internal/cache"
	"github.com/cloud-ru/deposit-calculator-go/internal/calculations"
	"github.com/cloud-ru/deposit-calculator-go/internal/catalog"
	"github.com/cloud-ru/deposit-calculator-go/internal/config"
	"github.com/cloud-ru/deposit-calculator-go/internal/tools"
	"github.com/cloud-ru/deposit-calculator-go/internal/tracing"
)

// buildDeps wires the catalog, random source and cache from cfg. The
// tracer comes from the tracing package (the global noop provider until
// tracing is initialised).
func buildDeps(cfg *config.Config, log *logrus.Logger, c cache.Cache) (*tools.Deps, error) {
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	if cfg.CatalogPath != "" {
		log.WithFields(logrus.Fields{"path": cfg.CatalogPath, "products": cat.Len()}).Info("catalog loaded")
	}

	return &tools.Deps{
		Config:  cfg,
		Tracer:  tracing.TracerFor(cfg.OTELServiceName),
		Catalog: cat,
		Random:  calculations.NewLockedSource(cfg.RandomSeed),
		Cache:   c,
		Log:     log,
	}, nil
}
