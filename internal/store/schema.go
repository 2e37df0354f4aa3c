package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS estimates (
    estimate_id          TEXT PRIMARY KEY,
    discipline           TEXT NOT NULL,
    standard_rate        REAL NOT NULL,
    multiplier           REAL NOT NULL,
    billing_rate         REAL NOT NULL,
    target_fee           REAL NOT NULL,
    scale                REAL NOT NULL,
    base_total_hours     REAL NOT NULL,
    total_hours          REAL NOT NULL,
    total_fee            REAL NOT NULL,
    exported_at          TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS estimate_rows (
    estimate_id          TEXT NOT NULL REFERENCES estimates(estimate_id) ON DELETE CASCADE,
    seq                  INTEGER NOT NULL,
    is_subtotal          INTEGER NOT NULL DEFAULT 0,
    phase                TEXT NOT NULL,
    task                 TEXT NOT NULL DEFAULT '',
    hours                REAL NOT NULL,
    fee                  REAL NOT NULL,
    exact_hours          REAL,
    exact_fee            REAL,
    PRIMARY KEY (estimate_id, seq)
);

CREATE INDEX IF NOT EXISTS idx_estimates_exported ON estimates(exported_at);
`
