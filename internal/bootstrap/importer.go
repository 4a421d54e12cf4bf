package bootstrap

import (
	"go.uber.org/zap"

	app "github.com/mohammadpnp/profile-import/internal/application/profileimport"
	infrafile "github.com/mohammadpnp/profile-import/internal/infrastructure/file"
	"github.com/mohammadpnp/profile-import/internal/infrastructure/repository"
	"github.com/mohammadpnp/profile-import/internal/platform/config"
)

func NewImporter(db *Database, cfg config.ImportConfig, logger *zap.Logger, metrics app.Metrics) *app.Importer {
	store := repository.NewIdentityStoreRepository(db.Pool)
	provisioner := repository.NewSubAccountProvisioner(db.Gorm)

	return app.NewImporter(store, provisioner, app.ImporterConfig{
		CountryCode:   cfg.CountryCode,
		PauseEvery:    cfg.PauseEvery,
		PauseDuration: cfg.PauseDuration,
	}, logger, metrics)
}

func NewImportWorker(db *Database, source *infrafile.LocalSource, importer *app.Importer, cfg config.ImportConfig, logger *zap.Logger) *app.ImportWorker {
	return app.NewImportWorker(repository.NewImportJobRepository(db.Gorm), source, importer, app.ImportWorkerConfig{
		Workers:       cfg.Workers,
		LeaseDuration: cfg.LeaseDuration,
		ProgressEvery: cfg.ProgressEvery,
	}, logger.Named("import_worker"))
}
