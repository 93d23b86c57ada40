package mysql

// The pipeline only reads properties; the surrounding application owns the
// rest of the schema.

const selectCatalogSQL = `
SELECT
  p.id,
  p.name,
  p.aliases        -- JSON array of alternate spellings, may be NULL
FROM properties p
WHERE p.active = 1
ORDER BY p.id
`

// One row per distinct raw name; repeats bump seen_count so alias curation
// can be prioritized by frequency.
const upsertUnmatchedSQL = `
INSERT INTO unmatched_property_names (raw_name, best_score, suggestion, seen_count)
VALUES (?, ?, ?, 1)
ON DUPLICATE KEY UPDATE
  seen_count = seen_count + 1,
  best_score = GREATEST(best_score, VALUES(best_score)),
  suggestion = VALUES(suggestion),
  last_seen_at = CURRENT_TIMESTAMP
`

const schemaDDL = `
CREATE TABLE IF NOT EXISTS properties (
  id      BIGINT       NOT NULL,
  name    VARCHAR(255) NOT NULL,
  aliases JSON         NULL,
  active  TINYINT(1)   NOT NULL DEFAULT 1,
  PRIMARY KEY (id),
  UNIQUE KEY uq_properties_name (name)
);

CREATE TABLE IF NOT EXISTS unmatched_property_names (
  raw_name     VARCHAR(512) NOT NULL,
  best_score   INT          NOT NULL DEFAULT 0,
  suggestion   VARCHAR(255) NOT NULL DEFAULT '',
  seen_count   INT          NOT NULL DEFAULT 1,
  first_seen_at TIMESTAMP   NOT NULL DEFAULT CURRENT_TIMESTAMP,
  last_seen_at  TIMESTAMP   NOT NULL DEFAULT CURRENT_TIMESTAMP,
  PRIMARY KEY (raw_name(191))
);
`
