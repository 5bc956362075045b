package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestDb(t *testing.T) *MarketDataDb {
	t.Helper()
	path := filepath.Join(t.TempDir(), "marketdata.db")
	mdb, err := NewMarketDataDb(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = mdb.Close() })
	return mdb
}

func TestStoreTradeAndOrderBookAndOHLCV(t *testing.T) {
	mdb := newTestDb(t)

	require.NoError(t, mdb.CreateSession("sess-1", "BTC-USD", "SNAPSHOT_AND_UPDATES", "trades", "md-1", nil))
	require.NoError(t, mdb.StoreTrade("BTC-USD", "50000.00", "0.01", "1", "20260730-12:00:00", 1, "md-1", true))
	require.NoError(t, mdb.StoreOrderBookEntry("BTC-USD", "0", "49999.50", "0.5", 0, 2, "md-1", true))
	require.NoError(t, mdb.StoreOHLCV("BTC-USD", "open", "50010.00", "20260730-12:00:00", 3, "md-1"))

	var count int
	require.NoError(t, mdb.db.QueryRow("SELECT COUNT(*) FROM trades").Scan(&count))
	require.Equal(t, 1, count)
	require.NoError(t, mdb.db.QueryRow("SELECT COUNT(*) FROM order_book_entries").Scan(&count))
	require.Equal(t, 1, count)
	require.NoError(t, mdb.db.QueryRow("SELECT COUNT(*) FROM ohlcv").Scan(&count))
	require.Equal(t, 1, count)
}

func TestBatchInsertsShareOneTransaction(t *testing.T) {
	mdb := newTestDb(t)

	tx, err := mdb.BeginTransaction()
	require.NoError(t, err)
	require.NoError(t, mdb.StoreTradeBatch(tx, "ETH-USD", "3000.00", "1.0", "2", "20260730-12:00:01", 1, "md-2", false))
	require.NoError(t, mdb.StoreOrderBookBatch(tx, "ETH-USD", "1", "3001.00", "2.0", 0, 2, "md-2", false))
	require.NoError(t, mdb.StoreOhlcvBatch(tx, "ETH-USD", "close", "3005.00", "20260730-12:00:02", 3, "md-2"))
	require.NoError(t, tx.Commit())

	var count int
	require.NoError(t, mdb.db.QueryRow("SELECT COUNT(*) FROM trades WHERE symbol = 'ETH-USD'").Scan(&count))
	require.Equal(t, 1, count)
}

func TestStoreJSONValuePersistsDecodedFeedMessages(t *testing.T) {
	mdb := newTestDb(t)

	require.NoError(t, mdb.StoreJSONValue("ws:level2", "map", `{"type":"snapshot","product_id":"BTC-USD"}`))

	var count int
	require.NoError(t, mdb.db.QueryRow("SELECT COUNT(*) FROM json_values WHERE source = 'ws:level2'").Scan(&count))
	require.Equal(t, 1, count)
}

func TestCheckpointRoundTripsAndUpdatesInPlace(t *testing.T) {
	mdb := newTestDb(t)

	_, _, found, err := mdb.LoadCheckpoint("CLIENT", "PRIME")
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, mdb.SaveCheckpoint("CLIENT", "PRIME", 5, 7))
	inSeq, outSeq, found, err := mdb.LoadCheckpoint("CLIENT", "PRIME")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, int64(5), inSeq)
	require.Equal(t, int64(7), outSeq)

	require.NoError(t, mdb.SaveCheckpoint("CLIENT", "PRIME", 10, 12))
	inSeq, outSeq, found, err = mdb.LoadCheckpoint("CLIENT", "PRIME")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, int64(10), inSeq)
	require.Equal(t, int64(12), outSeq)
}
