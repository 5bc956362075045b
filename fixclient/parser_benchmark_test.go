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

// Benchmarks for the market data extraction hot path.
// Run with: go test -bench=. -benchmem ./fixclient/
package fixclient

import (
	"strconv"
	"testing"

	"prime-fix-engine-go/constants"
	"prime-fix-engine-go/fix"
)

// benchMarketDataView builds a parsed market data snapshot view with
// numEntries MD entries, alternating bid/offer/trade, for use as fixed
// benchmark input (built once, outside the timed loop).
func benchMarketDataView(numEntries int) *fix.MessageView {
	entries := make([]mdEntry, numEntries)
	for i := range entries {
		switch i % 3 {
		case 0:
			entries[i] = mdEntry{entryType: constants.MdEntryTypeBid, price: "49999.00", size: "2.5000", entryTime: "20250101-12:00:00"}
		case 1:
			entries[i] = mdEntry{entryType: constants.MdEntryTypeOffer, price: "50001.00", size: "3.0000", entryTime: "20250101-12:00:00"}
		default:
			entries[i] = mdEntry{entryType: constants.MdEntryTypeTrade, price: "50000.00", size: "1.5000", entryTime: "20250101-12:00:00", aggressor: "1"}
		}
	}

	w := fix.NewWriter()
	buf := make([]byte, 64*1024)
	serverCfg := fix.SessionConfig{BeginString: "FIX.4.4", SenderCompID: "PRIME", TargetCompID: "CLIENT"}
	w.Start(buf, 0, serverCfg, constants.MsgTypeMarketDataSnapshot, 1, 0)
	w.PutASCIIString(constants.TagMdReqId, "req-123")
	w.PutASCIIString(constants.TagSymbol, "BTC-USD")
	w.PutInteger(constants.TagNoMdEntries, int64(len(entries)))
	for _, e := range entries {
		w.PutASCIIString(constants.TagMdEntryType, e.entryType)
		w.PutASCIIString(constants.TagMdEntryPx, e.price)
		w.PutASCIIString(constants.TagMdEntrySize, e.size)
		w.PutASCIIString(constants.TagMdEntryTime, e.entryTime)
		if e.aggressor != "" {
			w.PutASCIIString(constants.TagAggressorSide, e.aggressor)
		}
	}

	var sent []byte
	w.Send(func(b []byte, off, length int) { sent = append([]byte{}, b[off:off+length]...) })

	p := fix.NewParser(fix.SessionConfig{BeginString: "FIX.4.4", SenderCompID: "CLIENT", TargetCompID: "PRIME"})
	view, _, err := p.Parse(sent, 0, len(sent))
	if err != nil {
		panic(err)
	}
	return view
}

// BenchmarkExtractTrades measures end-to-end extraction of a market data
// snapshot's MD entries into Trade values, across entry-count sizes typical
// of snapshot and incremental refresh messages.
func BenchmarkExtractTrades(b *testing.B) {
	sizes := []int{1, 5, 10, 20, 50, 100}
	for _, n := range sizes {
		view := benchMarketDataView(n)
		b.Run(strconv.Itoa(n)+"Entries", func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = extractTrades(view, "BTC-USD", "req-123", false, "12345")
			}
		})
	}
}

// BenchmarkRepeatingGroups isolates the cost of fix.MessageView.RepeatingGroups
// itself, without the per-entry Trade construction extractTrades layers on top.
func BenchmarkRepeatingGroups(b *testing.B) {
	sizes := []int{1, 5, 10, 20, 50, 100}
	for _, n := range sizes {
		view := benchMarketDataView(n)
		b.Run(strconv.Itoa(n)+"Entries", func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_, _ = view.RepeatingGroups(constants.TagNoMdEntries, constants.TagMdEntryType)
			}
		})
	}
}
