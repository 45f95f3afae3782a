package storage

const schema = `
-- The 'decks' table stores each imported deck. The content hash lets sync
-- skip decks whose source file has not changed.
CREATE TABLE IF NOT EXISTS decks (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    content_hash TEXT NOT NULL DEFAULT '',
    source_id INTEGER,

    FOREIGN KEY(source_id) REFERENCES sources(id)
);

-- The 'questions' table stores a deck's questions in authored order.
-- Type-specific fields (options, blanks, match pairs, ...) live in 'extra'
-- as JSON since only the owning question type reads them.
CREATE TABLE IF NOT EXISTS questions (
    deck_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    type TEXT NOT NULL,
    question TEXT NOT NULL,
    answer TEXT NOT NULL DEFAULT '',
    image_url TEXT NOT NULL DEFAULT '',
    extra TEXT NOT NULL DEFAULT '{}',

    PRIMARY KEY(deck_id, position),
    FOREIGN KEY(deck_id) REFERENCES decks(id) ON DELETE CASCADE
);

-- The 'sources' table tracks where decks come from, either a local
-- directory or a git repository.
CREATE TABLE IF NOT EXISTS sources (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    path TEXT NOT NULL UNIQUE,
    type TEXT NOT NULL DEFAULT 'local',
    last_scanned DATETIME
);

-- The 'sessions' table is the append-only history of completed study
-- sessions. Rows are immutable once written.
CREATE TABLE IF NOT EXISTS sessions (
    id TEXT PRIMARY KEY,
    deck_id TEXT NOT NULL,
    start_time DATETIME NOT NULL,
    end_time DATETIME NOT NULL,
    cards_reviewed INTEGER NOT NULL,
    cards_mastered INTEGER NOT NULL,
    rating_again INTEGER NOT NULL DEFAULT 0,
    rating_hard INTEGER NOT NULL DEFAULT 0,
    rating_good INTEGER NOT NULL DEFAULT 0,
    rating_easy INTEGER NOT NULL DEFAULT 0
);

-- The 'daily_stats' table aggregates activity per local calendar day.
-- Session completion merges into the existing row by summation.
CREATE TABLE IF NOT EXISTS daily_stats (
    date TEXT PRIMARY KEY,
    cards_reviewed INTEGER NOT NULL DEFAULT 0,
    cards_mastered INTEGER NOT NULL DEFAULT 0,
    time_spent INTEGER NOT NULL DEFAULT 0
);
`
