package migrations

import "skillpulse/internal/database/schema"

var CreatePostingsTable = schema.Migration{
	Version:     1,
	Description: "Create postings table",
	Up: `
		CREATE TABLE IF NOT EXISTS postings (
			id UUID,
			title String,
			company String,
			location String,
			date_posted String,
			job_url String,
			searched_city String,
			searched_role String,
			skills Array(String),
			fetched_at DateTime,
			PRIMARY KEY (id)
		) ENGINE = ReplacingMergeTree(fetched_at)
		ORDER BY (id)
		SETTINGS index_granularity = 8192
	`,
	Down: `DROP TABLE IF EXISTS postings`,
}
