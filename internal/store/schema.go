package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS scenarios (
    id                   INTEGER PRIMARY KEY AUTOINCREMENT,
    name                 TEXT NOT NULL UNIQUE,
    remaining            TEXT NOT NULL,
    created_at           TEXT NOT NULL,
    updated_at           TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS scenario_costs (
    scenario_id          INTEGER NOT NULL REFERENCES scenarios(id) ON DELETE CASCADE,
    position             INTEGER NOT NULL,
    cost_id              INTEGER NOT NULL,
    name                 TEXT NOT NULL,
    amount               TEXT NOT NULL,
    description          TEXT NOT NULL,
    PRIMARY KEY (scenario_id, position)
);

CREATE INDEX IF NOT EXISTS idx_scenarios_updated ON scenarios(updated_at);
`
