package migration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_patients",
		SQL: `CREATE TABLE IF NOT EXISTS patients (
  id         UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  first_name TEXT        NOT NULL,
  last_name  TEXT        NOT NULL,
  birth_date DATE,
  sex        TEXT,
  ethnicity  TEXT,
  email      TEXT,
  phone      TEXT,
  city       TEXT,
  province   TEXT,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  deleted_at TIMESTAMPTZ
);`,
	},
	{
		Name: "create_table_visits",
		SQL: `CREATE TABLE IF NOT EXISTS visits (
  id           UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  patient_id   UUID        NOT NULL REFERENCES patients (id),
  visit_date   DATE        NOT NULL,
  visit_time   TEXT,
  practitioner TEXT,
  notes        TEXT,
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
  deleted_at   TIMESTAMPTZ
);`,
	},
	{
		Name: "create_table_treatments",
		SQL: `CREATE TABLE IF NOT EXISTS treatments (
  id             UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  visit_id       UUID        NOT NULL REFERENCES visits (id),
  product_id     UUID,
  product_name   TEXT,
  brand          TEXT,
  treatment_type TEXT,
  category       TEXT,
  lot_number     TEXT,
  expiry_date    DATE,
  created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
  deleted_at     TIMESTAMPTZ
);`,
	},
	{
		Name: "create_table_treatment_areas",
		SQL: `CREATE TABLE IF NOT EXISTS treatment_areas (
  id           UUID    PRIMARY KEY DEFAULT uuid_generate_v4(),
  treatment_id UUID    NOT NULL REFERENCES treatments (id),
  area_id      UUID    NOT NULL,
  name         TEXT    NOT NULL,
  units        NUMERIC NOT NULL DEFAULT 0,
  cost         NUMERIC NOT NULL DEFAULT 0,
  deleted_at   TIMESTAMPTZ
);`,
	},
	{
		Name: "create_table_photos",
		SQL: `CREATE TABLE IF NOT EXISTS photos (
  id             UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  visit_id       UUID        NOT NULL REFERENCES visits (id),
  position       TEXT,
  state          TEXT,
  original_path  TEXT        NOT NULL,
  thumbnail_path TEXT,
  sort_order     INT         NOT NULL DEFAULT 0,
  created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
  deleted_at     TIMESTAMPTZ
);`,
	},
	{
		Name: "create_table_consents",
		SQL: `CREATE TABLE IF NOT EXISTS consents (
  id             UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  patient_id     UUID        NOT NULL REFERENCES patients (id),
  visit_id       UUID        REFERENCES visits (id),
  consent_type   TEXT        NOT NULL,
  signed_at      TIMESTAMPTZ,
  signature_data TEXT,
  deleted_at     TIMESTAMPTZ
);`,
	},
	{
		Name: "create_table_annotations",
		SQL: `CREATE TABLE IF NOT EXISTS annotations (
  id           UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  treatment_id UUID        NOT NULL REFERENCES treatments (id),
  points       TEXT        NOT NULL,
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
  deleted_at   TIMESTAMPTZ
);`,
	},
	{
		Name: "create_table_portfolios",
		SQL: `CREATE TABLE IF NOT EXISTS portfolios (
  id              UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  name            TEXT        NOT NULL,
  patient_id      UUID        NOT NULL REFERENCES patients (id),
  before_visit_id UUID        NOT NULL REFERENCES visits (id),
  after_visit_id  UUID        NOT NULL REFERENCES visits (id),
  created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
  deleted_at      TIMESTAMPTZ
);`,
	},
	{
		Name: "create_index_patients_name",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_patients_name ON patients (last_name, first_name) WHERE deleted_at IS NULL;`,
	},
	{
		Name: "create_index_visits_patient",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_visits_patient ON visits (patient_id) WHERE deleted_at IS NULL;`,
	},
	{
		Name: "create_index_treatments_visit",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_treatments_visit ON treatments (visit_id) WHERE deleted_at IS NULL;`,
	},
	{
		Name: "create_index_photos_visit",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_photos_visit ON photos (visit_id, sort_order) WHERE deleted_at IS NULL;`,
	},
	{
		Name: "create_index_consents_patient_type",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_consents_patient_type ON consents (patient_id, consent_type) WHERE deleted_at IS NULL;`,
	},
}

// EnsureMigrated checks if the 'patients' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, loc *time.Location, dbHost string) error {
	start := time.Now()

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_check",
		"status":    "starting",
		"db_host":   dbHost,
	})

	var exists bool
	query := "SELECT to_regclass('public.patients') IS NOT NULL"
	err := db.QueryRowContext(ctx, query).Scan(&exists)
	if err != nil {
		logJSON(loc, map[string]any{
			"component":     "database",
			"event":         "db_migration_failed",
			"status":        "error",
			"error_message": fmt.Sprintf("failed to check sentinel table: %v", err),
			"db_host":       dbHost,
			"duration_ms":   time.Since(start).Milliseconds(),
		})
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		logJSON(loc, map[string]any{
			"component":   "database",
			"event":       "db_migration_skip",
			"status":      "success",
			"msg":         "schema already exists, skipping migration",
			"db_host":     dbHost,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil
	}

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_start",
		"status":    "in_progress",
		"db_host":   dbHost,
	})

	for _, step := range steps {
		stepStart := time.Now()
		_, err := db.ExecContext(ctx, step.SQL)
		if err != nil {
			logJSON(loc, map[string]any{
				"component":        "database",
				"event":            "db_migration_failed",
				"status":           "error",
				"migration_step":   step.Name,
				"error_message":    err.Error(),
				"db_host":          dbHost,
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			})
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		logJSON(loc, map[string]any{
			"component":        "database",
			"event":            "db_migration_step",
			"status":           "success",
			"migration_step":   step.Name,
			"db_host":          dbHost,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	logJSON(loc, map[string]any{
		"component":   "database",
		"event":       "db_migration_success",
		"status":      "success",
		"db_host":     dbHost,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return nil
}

func logJSON(loc *time.Location, data map[string]any) {
	data["ts"] = time.Now().In(loc).Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		if data["status"] == "error" {
			data["level"] = "error"
		} else {
			data["level"] = "info"
		}
	}

	b, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to marshal migration log: %v", err)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}
