/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package database

// Schema covers three concerns: the market-data tables the engine decodes
// off the FIX wire (trades, order book, OHLCV), a table of raw decoded JSON
// values handed up from the streaming parser, and a FIX session checkpoint
// table recording each session's last inbound/outbound sequence numbers so
// a restart can tell whether reset_seq_num should apply.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS sessions (
	session_id     TEXT PRIMARY KEY,
	symbol         TEXT NOT NULL,
	request_type   TEXT NOT NULL,
	data_types     TEXT NOT NULL,
	md_req_id      TEXT NOT NULL,
	depth          INTEGER,
	created_at     TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS trades (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	symbol         TEXT NOT NULL,
	price          TEXT NOT NULL,
	size           TEXT NOT NULL,
	aggressor_side TEXT NOT NULL,
	trade_time     TEXT NOT NULL,
	seq_num        INTEGER NOT NULL,
	md_req_id      TEXT NOT NULL,
	is_snapshot    BOOLEAN NOT NULL,
	inserted_at    TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_trades_symbol ON trades(symbol, trade_time);

CREATE TABLE IF NOT EXISTS order_book_entries (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	symbol         TEXT NOT NULL,
	side           TEXT NOT NULL,
	price          TEXT NOT NULL,
	size           TEXT NOT NULL,
	position       INTEGER NOT NULL,
	seq_num        INTEGER NOT NULL,
	md_req_id      TEXT NOT NULL,
	is_snapshot    BOOLEAN NOT NULL,
	inserted_at    TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_order_book_symbol ON order_book_entries(symbol, position);

CREATE TABLE IF NOT EXISTS ohlcv (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	symbol         TEXT NOT NULL,
	data_type      TEXT NOT NULL,
	value          TEXT NOT NULL,
	entry_time     TEXT NOT NULL,
	seq_num        INTEGER NOT NULL,
	md_req_id      TEXT NOT NULL,
	inserted_at    TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_ohlcv_symbol ON ohlcv(symbol, entry_time);

CREATE TABLE IF NOT EXISTS json_values (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	source         TEXT NOT NULL,
	kind           TEXT NOT NULL,
	raw_json       TEXT NOT NULL,
	received_at    TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_json_values_source ON json_values(source, received_at);

CREATE TABLE IF NOT EXISTS fix_session_checkpoints (
	sender_comp_id  TEXT NOT NULL,
	target_comp_id  TEXT NOT NULL,
	inbound_seq     INTEGER NOT NULL,
	outbound_seq    INTEGER NOT NULL,
	updated_at      TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (sender_comp_id, target_comp_id)
);
`

const insertSessionQuery = `
INSERT INTO sessions (session_id, symbol, request_type, data_types, md_req_id, depth)
VALUES (?, ?, ?, ?, ?, ?)`

const insertTradeQuery = `
INSERT INTO trades (symbol, price, size, aggressor_side, trade_time, seq_num, md_req_id, is_snapshot)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

const insertOrderBookQuery = `
INSERT INTO order_book_entries (symbol, side, price, size, position, seq_num, md_req_id, is_snapshot)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

const insertOHLCVQuery = `
INSERT INTO ohlcv (symbol, data_type, value, entry_time, seq_num, md_req_id)
VALUES (?, ?, ?, ?, ?, ?)`

const insertJSONValueQuery = `
INSERT INTO json_values (source, kind, raw_json)
VALUES (?, ?, ?)`

const upsertCheckpointQuery = `
INSERT INTO fix_session_checkpoints (sender_comp_id, target_comp_id, inbound_seq, outbound_seq, updated_at)
VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(sender_comp_id, target_comp_id) DO UPDATE SET
	inbound_seq = excluded.inbound_seq,
	outbound_seq = excluded.outbound_seq,
	updated_at = CURRENT_TIMESTAMP`

const selectCheckpointQuery = `
SELECT inbound_seq, outbound_seq FROM fix_session_checkpoints
WHERE sender_comp_id = ? AND target_comp_id = ?`

func (mdb *MarketDataDb) initSchema() error {
	_, err := mdb.db.Exec(schemaDDL)
	return err
}
