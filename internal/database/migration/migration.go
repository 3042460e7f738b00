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
		Name: "create_table_profiles",
		SQL: `CREATE TABLE IF NOT EXISTS profiles (
  id         UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  full_name  TEXT        NOT NULL DEFAULT '',
  role       TEXT        NOT NULL DEFAULT 'customer' CHECK (role IN ('customer', 'technician', 'admin')),
  avatar_url TEXT        NOT NULL DEFAULT '',
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_technicians",
		SQL: `CREATE TABLE IF NOT EXISTS technicians (
  user_id      UUID        PRIMARY KEY REFERENCES profiles (id),
  specialty    TEXT        NOT NULL DEFAULT '',
  rating       NUMERIC     NOT NULL DEFAULT 0 CHECK (rating >= 0 AND rating <= 5),
  bio          TEXT        NOT NULL DEFAULT '',
  availability TEXT[]      NOT NULL DEFAULT '{}',
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_services",
		SQL: `CREATE TABLE IF NOT EXISTS services (
  id               UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  name             TEXT        NOT NULL,
  duration_minutes INT         NOT NULL CHECK (duration_minutes > 0),
  price            BIGINT      NOT NULL CHECK (price >= 0),
  is_active        BOOLEAN     NOT NULL DEFAULT true,
  created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_bookings",
		SQL: `CREATE TABLE IF NOT EXISTS bookings (
  id            UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  customer_id   UUID        NOT NULL REFERENCES profiles (id),
  technician_id UUID        NOT NULL REFERENCES technicians (user_id),
  service_id    UUID        NOT NULL REFERENCES services (id),
  booking_time  TIMESTAMPTZ NOT NULL,
  status        TEXT        NOT NULL DEFAULT 'scheduled' CHECK (status IN ('scheduled', 'completed', 'canceled')),
  notes         TEXT        NOT NULL DEFAULT '',
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_posts",
		SQL: `CREATE TABLE IF NOT EXISTS posts (
  id                 UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  technician_id      UUID        NOT NULL REFERENCES technicians (user_id),
  customer_id        UUID        REFERENCES profiles (id),
  booking_id         UUID        REFERENCES bookings (id),
  raw_image_url      TEXT        NOT NULL,
  enhanced_image_url TEXT        NOT NULL DEFAULT '',
  generated_captions TEXT[]      NOT NULL DEFAULT '{}',
  selected_caption   TEXT        NOT NULL DEFAULT '',
  ai_status          TEXT        NOT NULL DEFAULT 'processing' CHECK (ai_status IN ('processing', 'generated', 'completed', 'failed')),
  style_tags         TEXT[]      NOT NULL DEFAULT '{}',
  created_at         TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_bookings_customer_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_bookings_customer_id ON bookings (customer_id);`,
	},
	{
		Name: "create_index_bookings_technician_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_bookings_technician_id ON bookings (technician_id);`,
	},
	{
		Name: "create_index_posts_technician_status",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_posts_technician_status ON posts (technician_id, ai_status);`,
	},
	{
		Name: "create_index_posts_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_posts_created_at ON posts (created_at);`,
	},
}

// EnsureMigrated checks if the 'posts' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, loc *time.Location, dbHost string) error {
	start := time.Now()

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_check",
		"status":    "starting",
		"db_host":   dbHost,
	})

	var exists bool
	query := "SELECT to_regclass('public.posts') IS NOT NULL"
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
