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

// TradeStore is the in-memory landing zone for extractTrades' output: a
// fixed-capacity ring buffer so a long-running session never grows
// unbounded memory no matter how many snapshots/incrementals arrive, plus
// a map of active market data subscriptions keyed by MdReqId.
//
// HOT PATH [4]: AddTrades runs on every inbound MarketDataSnapshot/
// MarketDataIncremental, right after extractTrades (parser.go) and right
// before storeTradesToDatabase (storage.go).
package fixclient

import (
	"log"
	"sync"
	"time"

	"prime-fix-engine-go/constants"
)

// Trade is one MdEntryType-keyed market data entry decoded from an
// inbound FIX message: a trade print, a book level (bid/offer), or an
// OHLCV summary field. Fields are ordered time.Time, then strings, then
// bools to minimize struct padding.
type Trade struct {
	Timestamp  time.Time `json:"timestamp"`
	Symbol     string    `json:"symbol"`
	Price      string    `json:"price"`
	Size       string    `json:"size"`
	Time       string    `json:"time"`
	Aggressor  string    `json:"aggressor"`
	MdReqId    string    `json:"mdReqId"`
	EntryType  string    `json:"entryType"` // constants.MdEntryType*
	Position   string    `json:"position"`  // book depth position, for bids/offers
	SeqNum     string    `json:"seqNum"`     // FIX MsgSeqNum, for ordering
	IsSnapshot bool      `json:"isSnapshot"`
	IsUpdate   bool      `json:"isUpdate"`
}

// TradeStore is a fixed-capacity ring buffer of Trade plus the set of
// subscriptions currently believed active. head/count track a classic
// circular buffer: writes land at (head+count)%maxSize; once count hits
// maxSize, each further write also advances head, evicting the oldest
// entry in place with zero allocation.
type TradeStore struct {
	mu            sync.RWMutex
	trades        []Trade
	head          int
	count         int
	subscriptions map[string]*Subscription
	updateCount   int64
	maxSize       int
}

// Subscription tracks one outstanding MarketDataRequest by MdReqId.
type Subscription struct {
	LastUpdate       time.Time
	TotalUpdates     int64
	Symbol           string
	SubscriptionType string // constants.SubscriptionRequestType*
	MdReqId          string
	Active           bool
	SnapshotReceived bool
}

// NewTradeStore allocates a TradeStore whose ring buffer never grows past
// maxSize. persistenceFile is accepted for interface parity with the
// engine's configuration surface but isn't consulted here; durable
// storage is storage.go/database.MarketDataDb's job, not this struct's.
func NewTradeStore(maxSize int, persistenceFile string) *TradeStore {
	return &TradeStore{
		trades:        make([]Trade, maxSize),
		subscriptions: make(map[string]*Subscription),
		maxSize:       maxSize,
	}
}

// AddTrades stamps symbol/mdReqId/snapshot-or-update metadata onto each
// trade and inserts it into the ring buffer, then bumps the matching
// subscription's counters if one is tracked for mdReqId.
// HOT PATH [4]: one lock acquisition and one time.Now() call per batch,
// not per trade.
func (ts *TradeStore) AddTrades(symbol string, trades []Trade, isSnapshot bool, mdReqId string) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	now := time.Now()
	if sub, exists := ts.subscriptions[mdReqId]; exists {
		sub.LastUpdate = now
		sub.TotalUpdates += int64(len(trades))
		if isSnapshot {
			sub.SnapshotReceived = true
		}
	}

	for _, trade := range trades {
		trade.Timestamp = now
		trade.Symbol = symbol
		trade.MdReqId = mdReqId
		trade.IsSnapshot = isSnapshot
		trade.IsUpdate = !isSnapshot

		writeIdx := (ts.head + ts.count) % ts.maxSize
		ts.trades[writeIdx] = trade

		if ts.count < ts.maxSize {
			ts.count++
		} else {
			ts.head = (ts.head + 1) % ts.maxSize
		}
		ts.updateCount++
	}
}

// GetRecentTrades returns up to limit trades for symbol, oldest first.
// Two passes avoid the O(n^2) cost of repeated slice prepends: the first
// counts matches walking newest-to-oldest, the second fills a
// single exact-capacity allocation from the tail backward.
func (ts *TradeStore) GetRecentTrades(symbol string, limit int) []Trade {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	if ts.count == 0 {
		return nil
	}

	matchCount := 0
	for i := 0; i < ts.count && matchCount < limit; i++ {
		idx := (ts.head + ts.count - 1 - i) % ts.maxSize
		if ts.trades[idx].Symbol == symbol {
			matchCount++
		}
	}
	if matchCount == 0 {
		return nil
	}

	recent := make([]Trade, matchCount)
	resultIdx := matchCount - 1
	for i := 0; i < ts.count && resultIdx >= 0; i++ {
		idx := (ts.head + ts.count - 1 - i) % ts.maxSize
		if ts.trades[idx].Symbol == symbol {
			recent[resultIdx] = ts.trades[idx]
			resultIdx--
		}
	}
	return recent
}

// GetAllTrades returns a defensive copy of every trade currently in the
// buffer, oldest first.
func (ts *TradeStore) GetAllTrades() []Trade {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	if ts.count == 0 {
		return nil
	}

	result := make([]Trade, ts.count)
	for i := 0; i < ts.count; i++ {
		idx := (ts.head + i) % ts.maxSize
		result[i] = ts.trades[idx]
	}
	return result
}

func (ts *TradeStore) AddSubscription(symbol, subscriptionType, mdReqId string) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	ts.subscriptions[mdReqId] = &Subscription{
		Symbol:           symbol,
		SubscriptionType: subscriptionType,
		MdReqId:          mdReqId,
		Active:           true,
		LastUpdate:       time.Now(),
	}

	log.Printf("Added subscription: %s (type=%s, reqId=%s)", symbol, getSubscriptionTypeDesc(subscriptionType), mdReqId)
}

func (ts *TradeStore) RemoveSubscription(symbol string) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	for reqId, sub := range ts.subscriptions {
		if sub.Symbol == symbol {
			delete(ts.subscriptions, reqId)
			log.Printf("Removed subscription: %s (reqId: %s, total updates: %d)", symbol, reqId, sub.TotalUpdates)
		}
	}
}

func (ts *TradeStore) RemoveSubscriptionByReqId(reqId string) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if sub, exists := ts.subscriptions[reqId]; exists {
		delete(ts.subscriptions, reqId)
		log.Printf("Removed subscription: %s (ReqId: %s)", sub.Symbol, reqId)
	}
}

func (ts *TradeStore) GetSubscriptionStatus() map[string]*Subscription {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	result := make(map[string]*Subscription)
	for reqId, v := range ts.subscriptions {
		sub := *v
		result[reqId] = &sub
	}
	return result
}

func (ts *TradeStore) GetSubscriptionsBySymbol() map[string][]*Subscription {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	result := make(map[string][]*Subscription)
	for _, sub := range ts.subscriptions {
		subCopy := *sub
		result[sub.Symbol] = append(result[sub.Symbol], &subCopy)
	}
	return result
}

func getSubscriptionTypeDesc(subType string) string {
	switch subType {
	case constants.SubscriptionRequestTypeSnapshot:
		return "Snapshot Only"
	case constants.SubscriptionRequestTypeSubscribe:
		return "Snapshot + Updates"
	case constants.SubscriptionRequestTypeUnsubscribe:
		return "Unsubscribe"
	default:
		return "Unknown"
	}
}

// DisplayRealtimeUpdate logs a single-line summary of trade, dispatched
// by MdEntryType; used by the REPL's live subscription display.
func (ts *TradeStore) DisplayRealtimeUpdate(trade Trade) {
	entryType := trade.EntryType
	if entryType == "" {
		entryType = constants.MdEntryTypeTrade
	}

	switch entryType {
	case constants.MdEntryTypeBid:
		log.Printf("%s Bid: %s | Size: %s | Pos: %s",
			trade.Symbol, trade.Price, trade.Size, trade.Position)
	case constants.MdEntryTypeOffer:
		log.Printf("%s Offer: %s | Size: %s | Pos: %s",
			trade.Symbol, trade.Price, trade.Size, trade.Position)
	case constants.MdEntryTypeTrade:
		aggressor := trade.Aggressor
		if aggressor == "" {
			aggressor = "-"
		}
		log.Printf("%s Trade: %s | Size: %s | Aggressor: %s",
			trade.Symbol, trade.Price, trade.Size, aggressor)
	case constants.MdEntryTypeOpen:
		log.Printf("%s Open: %s", trade.Symbol, trade.Price)
	case constants.MdEntryTypeClose:
		log.Printf("%s Close: %s", trade.Symbol, trade.Price)
	case constants.MdEntryTypeHigh:
		log.Printf("%s High: %s", trade.Symbol, trade.Price)
	case constants.MdEntryTypeLow:
		log.Printf("%s Low: %s", trade.Symbol, trade.Price)
	case constants.MdEntryTypeVolume:
		log.Printf("%s Volume: %s", trade.Symbol, trade.Size)
	default:
		log.Printf("%s [%s]: %s | Size: %s",
			trade.Symbol, entryType, trade.Price, trade.Size)
	}
}
