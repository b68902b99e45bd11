package migrate

import (
	"context"

	"github.com/agrigouv/pspc/pkg/middleware/db"
	"github.com/agrigouv/pspc/pkg/middleware/logger"
	"github.com/agrigouv/pspc/pkg/repo/model"
)

func Table(ctx context.Context) error {
	d := db.DB().DBWithContext(ctx)
	models := []any{
		&model.User{},
		&model.ProgrammingPlan{},
		&model.Prescription{},
		&model.Laboratory{},
		&model.Document{},
		&model.Sample{},
		&model.SampleItem{},
	}
	for _, m := range models {
		if err := d.AutoMigrate(m); err != nil {
			logger.Errorf(ctx, "migrate table err: %+v", err)
			return err
		}
	}

	// Sequence backing the human-readable reference serials, plus the item
	// cascade AutoMigrate cannot express from the parent side.
	raw := []string{
		`CREATE SEQUENCE IF NOT EXISTS samples_serial`,
		`ALTER TABLE sample_items DROP CONSTRAINT IF EXISTS fk_sample_items_sample`,
		`ALTER TABLE sample_items ADD CONSTRAINT fk_sample_items_sample
			FOREIGN KEY (sample_id) REFERENCES samples (id)
			ON UPDATE CASCADE ON DELETE CASCADE`,
	}
	for _, stmt := range raw {
		if err := d.Exec(stmt).Error; err != nil {
			logger.Errorf(ctx, "migrate raw ddl err: %+v", err)
			return err
		}
	}
	return nil
}
