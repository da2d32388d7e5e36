package store

const Schema = `
CREATE TABLE IF NOT EXISTS market_data (
	symbol TEXT NOT NULL,
	date DATE NOT NULL,
	open REAL NOT NULL,
	high REAL NOT NULL,
	low REAL NOT NULL,
	close REAL NOT NULL,
	adjusted_close REAL NOT NULL,
	volume INTEGER NOT NULL,
	source TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (symbol, date)
);

CREATE TABLE IF NOT EXISTS positions (
	symbol TEXT PRIMARY KEY,
	quantity REAL NOT NULL,
	average_cost REAL NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS paper_account (
	id INTEGER PRIMARY KEY,
	balance REAL NOT NULL,
	starting_balance REAL NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS trades (
	trade_id TEXT PRIMARY KEY,
	account_id INTEGER NOT NULL,
	symbol TEXT NOT NULL,
	action TEXT NOT NULL,
	quantity REAL NOT NULL,
	price REAL NOT NULL,
	balance_after REAL NOT NULL,
	paper_trade INTEGER NOT NULL DEFAULT 1,
	timestamp DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_timestamp ON trades(timestamp);

CREATE TABLE IF NOT EXISTS signals (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	symbol TEXT NOT NULL,
	signal_type TEXT NOT NULL,
	indicator TEXT NOT NULL,
	strength REAL NOT NULL,
	date DATE NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_signals_symbol_date ON signals(symbol, date);

CREATE TABLE IF NOT EXISTS watchlist (
	symbol TEXT PRIMARY KEY,
	notes TEXT,
	added_at DATETIME NOT NULL
);
`
