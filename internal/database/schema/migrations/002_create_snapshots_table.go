package migrations

import "skillpulse/internal/database/schema"

var CreateSnapshotsTable = schema.Migration{
	Version:     2,
	Description: "Create analytics snapshots table",
	Up: `
		CREATE TABLE IF NOT EXISTS snapshots (
			id UUID,
			generated_at DateTime,
			forecast_count UInt32,
			city_count UInt32,
			payload String,
			PRIMARY KEY (id)
		) ENGINE = MergeTree()
		PARTITION BY toYYYYMM(generated_at)
		ORDER BY (id, generated_at)
		SETTINGS index_granularity = 8192
	`,
	Down: `DROP TABLE IF EXISTS snapshots`,
}
