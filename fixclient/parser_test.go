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

package fixclient

import (
	"testing"

	"github.com/stretchr/testify/require"

	"prime-fix-engine-go/constants"
	"prime-fix-engine-go/fix"
)

func testParserCfg() fix.SessionConfig {
	return fix.SessionConfig{BeginString: "FIX.4.4", SenderCompID: "CLIENT", TargetCompID: "PRIME"}
}

// mdEntry is one MdEntryType-keyed tuple written into a market data
// snapshot's NoMdEntries repeating group for tests.
type mdEntry struct {
	entryType string
	price     string
	size      string
	entryTime string
	position  string
	aggressor string
}

func buildMarketDataView(t *testing.T, entries []mdEntry) *fix.MessageView {
	t.Helper()
	w := fix.NewWriter()
	buf := make([]byte, 4096)
	// Written from the counterparty's perspective, so the parser below
	// (configured as the client) sees this frame as inbound.
	serverCfg := fix.SessionConfig{BeginString: "FIX.4.4", SenderCompID: "PRIME", TargetCompID: "CLIENT"}
	w.Start(buf, 0, serverCfg, constants.MsgTypeMarketDataSnapshot, 1, 0)
	w.PutASCIIString(constants.TagMdReqId, "req-123")
	w.PutASCIIString(constants.TagSymbol, "BTC-USD")
	w.PutInteger(constants.TagNoMdEntries, int64(len(entries)))
	for _, e := range entries {
		w.PutASCIIString(constants.TagMdEntryType, e.entryType)
		if e.price != "" {
			w.PutASCIIString(constants.TagMdEntryPx, e.price)
		}
		if e.size != "" {
			w.PutASCIIString(constants.TagMdEntrySize, e.size)
		}
		if e.entryTime != "" {
			w.PutASCIIString(constants.TagMdEntryTime, e.entryTime)
		}
		if e.position != "" {
			w.PutASCIIString(constants.TagMdEntryPositionNo, e.position)
		}
		if e.aggressor != "" {
			w.PutASCIIString(constants.TagAggressorSide, e.aggressor)
		}
	}

	var sent []byte
	w.Send(func(b []byte, off, length int) { sent = append([]byte{}, b[off:off+length]...) })

	p := fix.NewParser(testParserCfg())
	view, consumed, err := p.Parse(sent, 0, len(sent))
	require.NoError(t, err)
	require.Equal(t, len(sent), consumed)
	return view
}

func TestExtractTradesSingleTradeEntry(t *testing.T) {
	view := buildMarketDataView(t, []mdEntry{
		{entryType: constants.MdEntryTypeTrade, price: "50000.00", size: "1.5000", entryTime: "20250101-12:00:00", aggressor: "1"},
	})

	trades := extractTrades(view, "BTC-USD", "req-123", false, "1")
	require.Len(t, trades, 1)
	require.Equal(t, constants.MdEntryTypeTrade, trades[0].EntryType)
	require.Equal(t, "50000.00", trades[0].Price)
	require.Equal(t, "1.5000", trades[0].Size)
	require.Equal(t, "20250101-12:00:00", trades[0].Time)
	require.Equal(t, "Buy", trades[0].Aggressor)
}

func TestExtractTradesBidOfferDefaultPosition(t *testing.T) {
	view := buildMarketDataView(t, []mdEntry{
		{entryType: constants.MdEntryTypeBid, price: "49999.00", size: "1.0"},
		{entryType: constants.MdEntryTypeOffer, price: "50001.00", size: "2.0"},
	})

	trades := extractTrades(view, "BTC-USD", "req-123", true, "1")
	require.Len(t, trades, 2)
	require.Equal(t, "1", trades[0].Position)
	require.Equal(t, "2", trades[1].Position)
}

func TestExtractTradesBidOfferExplicitPosition(t *testing.T) {
	view := buildMarketDataView(t, []mdEntry{
		{entryType: constants.MdEntryTypeBid, price: "49999.00", size: "2.5", position: "7"},
	})

	trades := extractTrades(view, "BTC-USD", "req-123", false, "1")
	require.Len(t, trades, 1)
	require.Equal(t, "7", trades[0].Position)
}

func TestExtractTradesOHLCVEntries(t *testing.T) {
	cases := []struct {
		entryType string
	}{
		{constants.MdEntryTypeOpen}, {constants.MdEntryTypeClose},
		{constants.MdEntryTypeHigh}, {constants.MdEntryTypeLow}, {constants.MdEntryTypeVolume},
	}
	for _, c := range cases {
		view := buildMarketDataView(t, []mdEntry{{entryType: c.entryType, price: "50000.00", entryTime: "20250101-00:00:00"}})
		trades := extractTrades(view, "ETH-USD", "req-456", true, "1")
		require.Len(t, trades, 1)
		require.Equal(t, c.entryType, trades[0].EntryType)
	}
}

func TestExtractTradesAggressorSideMapping(t *testing.T) {
	cases := []struct {
		code, label string
	}{{"1", "Buy"}, {"2", "Sell"}}
	for _, c := range cases {
		view := buildMarketDataView(t, []mdEntry{{entryType: constants.MdEntryTypeTrade, price: "50000.00", aggressor: c.code}})
		trades := extractTrades(view, "BTC-USD", "req-123", false, "1")
		require.Equal(t, c.label, trades[0].Aggressor)
	}
}

func TestExtractTradesMultipleEntriesInMessage(t *testing.T) {
	view := buildMarketDataView(t, []mdEntry{
		{entryType: constants.MdEntryTypeBid, price: "49999.00", position: "1"},
		{entryType: constants.MdEntryTypeOffer, price: "50001.00", position: "1"},
		{entryType: constants.MdEntryTypeTrade, price: "50000.00", aggressor: "1"},
	})

	trades := extractTrades(view, "BTC-USD", "req-123", true, "1")
	require.Len(t, trades, 3)
}

func TestExtractTradesSnapshotVsUpdate(t *testing.T) {
	view := buildMarketDataView(t, []mdEntry{{entryType: constants.MdEntryTypeTrade, price: "50000.00"}})

	snap := extractTrades(view, "BTC-USD", "req-123", true, "1")
	require.True(t, snap[0].IsSnapshot)
	require.False(t, snap[0].IsUpdate)

	upd := extractTrades(view, "BTC-USD", "req-123", false, "1")
	require.False(t, upd[0].IsSnapshot)
	require.True(t, upd[0].IsUpdate)
}

func TestExtractTradesMissingOptionalFields(t *testing.T) {
	view := buildMarketDataView(t, []mdEntry{{entryType: constants.MdEntryTypeTrade, price: "50000.00", size: "1.0"}})
	trades := extractTrades(view, "BTC-USD", "req-123", false, "1")
	require.Empty(t, trades[0].Aggressor)
}

func TestExtractTradesNoEntriesReturnsNil(t *testing.T) {
	view := buildMarketDataView(t, nil)
	require.Empty(t, extractTrades(view, "BTC-USD", "req-123", false, "1"))
}

func TestExtractExecutionReportFields(t *testing.T) {
	w := fix.NewWriter()
	buf := make([]byte, 4096)
	serverCfg := fix.SessionConfig{BeginString: "FIX.4.4", SenderCompID: "PRIME", TargetCompID: "CLIENT"}
	w.Start(buf, 0, serverCfg, constants.MsgTypeExecutionReport, 1, 0)
	w.PutASCIIString(constants.TagClOrdID, "order-1")
	w.PutASCIIString(constants.TagOrderID, "engine-order-1")
	w.PutASCIIString(constants.TagExecID, "exec-1")
	w.PutASCIIString(constants.TagOrdStatus, constants.OrdStatusFilled)
	w.PutASCIIString(constants.TagExecType, constants.ExecTypeFilled)
	var sent []byte
	w.Send(func(b []byte, off, length int) { sent = append([]byte{}, b[off:off+length]...) })

	p := fix.NewParser(testParserCfg())
	view, _, err := p.Parse(sent, 0, len(sent))
	require.NoError(t, err)

	er := extractExecutionReport(view)
	require.Equal(t, "order-1", er.ClOrdID)
	require.Equal(t, "engine-order-1", er.OrderID)
	require.Equal(t, constants.OrdStatusFilled, er.OrdStatus)
	require.Equal(t, constants.ExecTypeFilled, er.ExecType)
}
