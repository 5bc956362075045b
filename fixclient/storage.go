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

// Persistence of parsed market data into database.MarketDataDb: one
// transaction per inbound batch, dispatched by MdEntryType to the
// book/trade/ohlcv table each entry belongs to.
package fixclient

import (
	"log"
	"strconv"
	"time"

	"prime-fix-engine-go/constants"
)

// storeTradesToDatabase persists one batch of parsed Trade entries inside
// a single transaction, rolling back on the first write error. A no-op
// when the app was built without a database (a.Db == nil).
func (a *FixApp) storeTradesToDatabase(trades []Trade, seqNum string, isSnapshot bool) {
	if a.Db == nil {
		return
	}

	seqNumInt, _ := strconv.Atoi(seqNum)

	tx, err := a.Db.BeginTransaction()
	if err != nil {
		log.Printf("Failed to begin database transaction: %v", err)
		return
	}
	defer tx.Rollback()

	for _, trade := range trades {
		switch trade.EntryType {
		case constants.MdEntryTypeBid:
			posInt, _ := strconv.Atoi(trade.Position)
			err = a.Db.StoreOrderBookBatch(tx, trade.Symbol, "bid", trade.Price, trade.Size,
				posInt, seqNumInt, trade.MdReqId, isSnapshot)
		case constants.MdEntryTypeOffer:
			posInt, _ := strconv.Atoi(trade.Position)
			err = a.Db.StoreOrderBookBatch(tx, trade.Symbol, "offer", trade.Price, trade.Size,
				posInt, seqNumInt, trade.MdReqId, isSnapshot)
		case constants.MdEntryTypeTrade:
			err = a.Db.StoreTradeBatch(tx, trade.Symbol, trade.Price, trade.Size,
				trade.Aggressor, trade.Time, seqNumInt, trade.MdReqId, isSnapshot)
		case constants.MdEntryTypeOpen:
			err = a.Db.StoreOhlcvBatch(tx, trade.Symbol, "open", trade.Price, trade.Time,
				seqNumInt, trade.MdReqId)
		case constants.MdEntryTypeClose:
			err = a.Db.StoreOhlcvBatch(tx, trade.Symbol, "close", trade.Price, trade.Time,
				seqNumInt, trade.MdReqId)
		case constants.MdEntryTypeHigh:
			err = a.Db.StoreOhlcvBatch(tx, trade.Symbol, "high", trade.Price, trade.Time,
				seqNumInt, trade.MdReqId)
		case constants.MdEntryTypeLow:
			err = a.Db.StoreOhlcvBatch(tx, trade.Symbol, "low", trade.Price, trade.Time,
				seqNumInt, trade.MdReqId)
		case constants.MdEntryTypeVolume:
			err = a.Db.StoreOhlcvBatch(tx, trade.Symbol, "volume", trade.Size, trade.Time,
				seqNumInt, trade.MdReqId)
		}

		if err != nil {
			log.Printf("Failed to store %s data to database: %v", getMdEntryTypeName(trade.EntryType), err)
			return
		}
	}

	if err = tx.Commit(); err != nil {
		log.Printf("Failed to commit database transaction: %v", err)
	}
}

// createDatabaseSession records metadata about a new market data request
// (its data type and, for book requests, its depth) so stored rows can be
// traced back to the request that produced them.
func (a *FixApp) createDatabaseSession(symbol, subscriptionType, marketDepth string, entryTypes []string, reqId string) {
	if a.Db == nil {
		return
	}

	requestType := "snapshot"
	if subscriptionType == constants.SubscriptionRequestTypeSubscribe {
		requestType = "subscribe"
	}

	var dataTypes string
	var hasBook bool

	for _, entryType := range entryTypes {
		switch entryType {
		case constants.MdEntryTypeBid, constants.MdEntryTypeOffer:
			if dataTypes == "" {
				dataTypes = "order_book"
				hasBook = true
			}
		case constants.MdEntryTypeTrade:
			if dataTypes == "" {
				dataTypes = "trades"
			}
		case constants.MdEntryTypeOpen, constants.MdEntryTypeClose,
			constants.MdEntryTypeHigh, constants.MdEntryTypeLow, constants.MdEntryTypeVolume:
			if dataTypes == "" {
				dataTypes = "ohlcv"
			}
		}
	}

	var depth *int
	if hasBook && marketDepth != "0" {
		if d, err := strconv.Atoi(marketDepth); err == nil {
			depth = &d
		}
	}

	sessionId := symbol + "_" + requestType + "_" + strconv.FormatInt(time.Now().Unix(), 10)
	err := a.Db.CreateSession(sessionId, symbol, requestType, dataTypes, reqId, depth)
	if err != nil {
		log.Printf("Failed to create session record: %v", err)
	}
}
