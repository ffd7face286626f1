package vectorstore

const (
	createExtensionQuery = `CREATE EXTENSION IF NOT EXISTS vector`

	createTableQuery = `
		CREATE TABLE IF NOT EXISTS segments (
			id BIGSERIAL PRIMARY KEY,
			source TEXT NOT NULL,
			content TEXT NOT NULL,
			metadata JSONB NOT NULL DEFAULT '{}'::jsonb,
			embedding vector NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`

	createSourceIndexQuery = `CREATE INDEX IF NOT EXISTS segments_source_idx ON segments (source)`

	insertSegmentQuery = `
		INSERT INTO segments (source, content, metadata, embedding)
		VALUES ($1, $2, $3, $4)
	`

	searchSegmentsQuery = `
		SELECT content, metadata, score
		FROM (
			SELECT
				id,
				content,
				metadata,
				((1 - (embedding <=> $1)) + 1) / 2 AS score
			FROM segments
			WHERE source = $2
		) scored
		WHERE score >= $3
		ORDER BY score DESC, id ASC
		LIMIT $4
	`

	countSegmentsQuery = `SELECT COUNT(*) FROM segments WHERE source = $1`

	countBySourceQuery = `
		SELECT source, COUNT(*)
		FROM segments
		GROUP BY source
		ORDER BY source
	`

	deleteSegmentsQuery = `DELETE FROM segments WHERE source = $1`

	deleteAllSegmentsQuery = `DELETE FROM segments`
)
