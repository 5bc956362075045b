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

// Package builder assembles outbound application-level FIX messages
// (market data requests, orders, quotes) on top of the engine's fix.Writer,
// the same per-message-type constructor shape the teacher used over
// quickfix.Message.
package builder

import (
	"github.com/shopspring/decimal"

	"prime-fix-engine-go/constants"
	"prime-fix-engine-go/fix"
)

// --- Market Data Request ---

// MarketDataRequestParams contains parameters for subscribing or
// unsubscribing to market data.
type MarketDataRequestParams struct {
	MdReqID                 string
	Symbols                 []string
	SubscriptionRequestType string
	MarketDepth             int64
	MdEntryTypes            []string
}

// MarketDataRequestFields writes a Market Data Request (V) message's body
// fields onto w, which must already have a header started via w.Start.
func MarketDataRequestFields(w *fix.Writer, params MarketDataRequestParams) {
	w.PutASCIIString(constants.TagMdReqId, params.MdReqID)
	w.PutASCIIString(constants.TagSubscriptionRequestType, params.SubscriptionRequestType)
	w.PutInteger(constants.TagMarketDepth, params.MarketDepth)

	if params.SubscriptionRequestType == constants.SubscriptionRequestTypeSubscribe {
		w.PutASCIIString(constants.TagMdUpdateType, constants.MdUpdateTypeIncremental)
	}

	w.PutInteger(constants.TagNoMdEntryTypes, int64(len(params.MdEntryTypes)))
	for _, entryType := range params.MdEntryTypes {
		w.PutASCIIString(constants.TagMdEntryType, entryType)
	}

	w.PutInteger(constants.TagNoRelatedSym, int64(len(params.Symbols)))
	for _, symbol := range params.Symbols {
		w.PutASCIIString(constants.TagSymbol, symbol)
	}
}

// BuildMarketDataRequest writes a complete Market Data Request (V) message
// into buf starting at off: header plus MarketDataRequestFields.
func BuildMarketDataRequest(w *fix.Writer, buf []byte, off int, cfg fix.SessionConfig, outSeq int64, nowNs int64, params MarketDataRequestParams) {
	w.Start(buf, off, cfg, constants.MsgTypeMarketDataRequest, outSeq, nowNs)
	MarketDataRequestFields(w, params)
}

// --- New Order Single (D) ---

// NewOrderParams contains parameters for creating a new order.
type NewOrderParams struct {
	Account        string          // Portfolio ID (required)
	ClOrdID        string          // Client order ID (required)
	Symbol         string          // Product pair e.g. BTC-USD (required)
	Side           string          // "1" buy, "2" sell (required)
	OrdType        string          // Order type (required)
	TargetStrategy string          // L, M, T, V, SL, R (required)
	TimeInForce    string          // 1, 3, 4, 6 (required)
	OrderQty       decimal.Decimal // Size in base units (conditional)
	CashOrderQty   decimal.Decimal // Size in quote units (conditional)
	Price          decimal.Decimal // Limit price (conditional)
	StopPx         decimal.Decimal // Stop price for stop orders (conditional)
	ExpireTime     int64           // Epoch ns, for GTD/TWAP/VWAP (conditional)
	EffectiveTime  int64           // Epoch ns, start time for TWAP/VWAP (conditional)
	MaxShow        decimal.Decimal // Display size (optional)
	ExecInst       string          // "A" for post-only (conditional)
	PartRate       decimal.Decimal // Participation rate for TWAP/VWAP (conditional)
	QuoteID        string          // For RFQ orders (conditional)
	IsRaiseExact   string          // Y/N for raise exact orders (optional)
}

func putDecimalIfNotZero(w *fix.Writer, tag fix.Tag, v decimal.Decimal) {
	if v.IsZero() {
		return
	}
	f, _ := v.Float64()
	w.PutDecimal(tag, f, 0, 8)
}

// NewOrderSingleFields writes a New Order Single (D) message's body fields
// onto w, which must already have a header started via w.Start.
//
// Example - Market order:
//
//	params := NewOrderParams{
//	    Account: "portfolio-123", ClOrdID: "order-1", Symbol: "BTC-USD",
//	    Side: constants.SideBuy, OrdType: constants.OrdTypeMarket,
//	    TargetStrategy: constants.TargetStrategyMarket,
//	    TimeInForce: constants.TimeInForceIOC, OrderQty: decimal.NewFromFloat(0.01),
//	}
//	NewOrderSingleFields(w, nowNs, params)
func NewOrderSingleFields(w *fix.Writer, nowNs int64, params NewOrderParams) {
	// Required fields
	w.PutASCIIString(constants.TagAccount, params.Account)
	w.PutASCIIString(constants.TagClOrdID, params.ClOrdID)
	w.PutASCIIString(constants.TagSymbol, params.Symbol)
	w.PutASCIIString(constants.TagSide, params.Side)
	w.PutASCIIString(constants.TagOrdType, params.OrdType)
	w.PutASCIIString(constants.TagTargetStrategy, params.TargetStrategy)
	w.PutASCIIString(constants.TagTimeInForce, params.TimeInForce)
	w.PutTimestamp(constants.TagTransactTime, nowNs)

	// Conditional fields
	putDecimalIfNotZero(w, constants.TagOrderQty, params.OrderQty)
	putDecimalIfNotZero(w, constants.TagCashOrderQty, params.CashOrderQty)
	putDecimalIfNotZero(w, constants.TagPrice, params.Price)
	putDecimalIfNotZero(w, constants.TagStopPx, params.StopPx)
	if params.ExpireTime != 0 {
		w.PutTimestamp(constants.TagExpireTime, params.ExpireTime)
	}
	if params.EffectiveTime != 0 {
		w.PutTimestamp(constants.TagEffectiveTime, params.EffectiveTime)
	}
	putDecimalIfNotZero(w, constants.TagMaxShow, params.MaxShow)
	if params.ExecInst != "" {
		w.PutASCIIString(constants.TagExecInst, params.ExecInst)
	}
	putDecimalIfNotZero(w, constants.TagParticipationRate, params.PartRate)
	if params.QuoteID != "" {
		w.PutASCIIString(constants.TagQuoteID, params.QuoteID)
	}
	if params.IsRaiseExact != "" {
		w.PutASCIIString(constants.TagIsRaiseExact, params.IsRaiseExact)
	}
}

// BuildNewOrderSingle writes a complete New Order Single (D) message into
// buf starting at off: header plus NewOrderSingleFields.
func BuildNewOrderSingle(w *fix.Writer, buf []byte, off int, cfg fix.SessionConfig, outSeq int64, nowNs int64, params NewOrderParams) {
	w.Start(buf, off, cfg, constants.MsgTypeNewOrderSingle, outSeq, nowNs)
	NewOrderSingleFields(w, nowNs, params)
}

// --- Order Cancel Request (F) ---

// CancelOrderParams contains parameters for canceling an order.
type CancelOrderParams struct {
	Account      string          // Portfolio ID (required)
	ClOrdID      string          // Cancel request ID (required)
	OrigClOrdID  string          // Original order's ClOrdID (required)
	OrderID      string          // Engine-assigned order ID (required)
	Symbol       string          // Product pair (required)
	Side         string          // "1" buy, "2" sell (required)
	OrderQty     decimal.Decimal // Original order quantity (conditional)
	CashOrderQty decimal.Decimal // If originally in quote units (conditional)
}

// OrderCancelRequestFields writes an Order Cancel Request (F) message's
// body fields onto w, which must already have a header started via w.Start.
func OrderCancelRequestFields(w *fix.Writer, nowNs int64, params CancelOrderParams) {
	w.PutASCIIString(constants.TagAccount, params.Account)
	w.PutASCIIString(constants.TagClOrdID, params.ClOrdID)
	w.PutASCIIString(constants.TagOrigClOrdID, params.OrigClOrdID)
	w.PutASCIIString(constants.TagOrderID, params.OrderID)
	w.PutASCIIString(constants.TagSymbol, params.Symbol)
	w.PutASCIIString(constants.TagSide, params.Side)
	w.PutTimestamp(constants.TagTransactTime, nowNs)

	putDecimalIfNotZero(w, constants.TagOrderQty, params.OrderQty)
	putDecimalIfNotZero(w, constants.TagCashOrderQty, params.CashOrderQty)
}

// BuildOrderCancelRequest writes a complete Order Cancel Request (F)
// message into buf starting at off: header plus OrderCancelRequestFields.
func BuildOrderCancelRequest(w *fix.Writer, buf []byte, off int, cfg fix.SessionConfig, outSeq int64, nowNs int64, params CancelOrderParams) {
	w.Start(buf, off, cfg, constants.MsgTypeOrderCancelRequest, outSeq, nowNs)
	OrderCancelRequestFields(w, nowNs, params)
}

// --- Order Cancel/Replace Request (G) ---

// ReplaceOrderParams contains parameters for modifying an order.
type ReplaceOrderParams struct {
	Account      string          // Portfolio ID (required)
	ClOrdID      string          // New request ID (required, must differ from OrigClOrdID)
	OrigClOrdID  string          // Original order's ClOrdID (required)
	OrderID      string          // Engine-assigned order ID (required)
	Symbol       string          // Product pair (required)
	Side         string          // Must match original (required)
	OrdType      string          // Must match original (required)
	OrderQty     decimal.Decimal // Total intended quantity including filled (conditional)
	CashOrderQty decimal.Decimal // If originally in quote units (conditional)
	Price        decimal.Decimal // New limit price (required)
	StopPx       decimal.Decimal // New stop price for stop-limit (conditional)
	ExpireTime   int64           // New expiration, epoch ns (conditional)
	MaxShow      decimal.Decimal // New display size (conditional)
}

// OrderCancelReplaceRequestFields writes an Order Cancel/Replace Request
// (G) message's body fields onto w, which must already have a header
// started via w.Start.
func OrderCancelReplaceRequestFields(w *fix.Writer, nowNs int64, params ReplaceOrderParams) {
	w.PutASCIIString(constants.TagAccount, params.Account)
	w.PutASCIIString(constants.TagClOrdID, params.ClOrdID)
	w.PutASCIIString(constants.TagOrigClOrdID, params.OrigClOrdID)
	w.PutASCIIString(constants.TagOrderID, params.OrderID)
	w.PutASCIIString(constants.TagSymbol, params.Symbol)
	w.PutASCIIString(constants.TagSide, params.Side)
	w.PutASCIIString(constants.TagOrdType, params.OrdType)
	w.PutASCIIString(constants.TagHandlInst, constants.HandlInstAutomatedNoIntervention)
	w.PutTimestamp(constants.TagTransactTime, nowNs)
	price, _ := params.Price.Float64()
	w.PutDecimal(constants.TagPrice, price, 0, 8)

	putDecimalIfNotZero(w, constants.TagOrderQty, params.OrderQty)
	putDecimalIfNotZero(w, constants.TagCashOrderQty, params.CashOrderQty)
	putDecimalIfNotZero(w, constants.TagStopPx, params.StopPx)
	if params.ExpireTime != 0 {
		w.PutTimestamp(constants.TagExpireTime, params.ExpireTime)
	}
	putDecimalIfNotZero(w, constants.TagMaxShow, params.MaxShow)
}

// BuildOrderCancelReplaceRequest writes a complete Order Cancel/Replace
// Request (G) message into buf starting at off: header plus
// OrderCancelReplaceRequestFields.
func BuildOrderCancelReplaceRequest(w *fix.Writer, buf []byte, off int, cfg fix.SessionConfig, outSeq int64, nowNs int64, params ReplaceOrderParams) {
	w.Start(buf, off, cfg, constants.MsgTypeOrderCancelReplace, outSeq, nowNs)
	OrderCancelReplaceRequestFields(w, nowNs, params)
}

// --- Order Status Request (H) ---

// OrderStatusRequestFields writes an Order Status Request (H) message's
// body fields onto w, which must already have a header started via w.Start.
func OrderStatusRequestFields(w *fix.Writer, orderID, clOrdID, symbol, side string) {
	w.PutASCIIString(constants.TagOrderID, orderID)
	if clOrdID != "" {
		w.PutASCIIString(constants.TagClOrdID, clOrdID)
	}
	if symbol != "" {
		w.PutASCIIString(constants.TagSymbol, symbol)
	}
	if side != "" {
		w.PutASCIIString(constants.TagSide, side)
	}
}

// BuildOrderStatusRequest writes a complete Order Status Request (H)
// message into buf starting at off: header plus OrderStatusRequestFields.
func BuildOrderStatusRequest(w *fix.Writer, buf []byte, off int, cfg fix.SessionConfig, outSeq int64, nowNs int64, orderID, clOrdID, symbol, side string) {
	w.Start(buf, off, cfg, constants.MsgTypeOrderStatusRequest, outSeq, nowNs)
	OrderStatusRequestFields(w, orderID, clOrdID, symbol, side)
}

// --- Quote Request (R) ---

// QuoteRequestParams contains parameters for requesting a quote.
type QuoteRequestParams struct {
	QuoteReqID string          // Client-selected identifier (required)
	Account    string          // Portfolio ID (required)
	Symbol     string          // Product pair (required)
	Side       string          // "1" buy, "2" sell (required)
	OrderQty   decimal.Decimal // Size in base units (required)
	Price      decimal.Decimal // Limit price (required)
}

// QuoteRequestFields writes a Quote Request (R) message's body fields
// (for RFQ) onto w, which must already have a header started via w.Start.
func QuoteRequestFields(w *fix.Writer, params QuoteRequestParams) {
	w.PutASCIIString(constants.TagQuoteReqID, params.QuoteReqID)
	w.PutASCIIString(constants.TagAccount, params.Account)
	w.PutASCIIString(constants.TagSymbol, params.Symbol)
	w.PutASCIIString(constants.TagSide, params.Side)
	qty, _ := params.OrderQty.Float64()
	w.PutDecimal(constants.TagOrderQty, qty, 0, 8)
	w.PutASCIIString(constants.TagOrdType, constants.OrdTypeLimit)
	price, _ := params.Price.Float64()
	w.PutDecimal(constants.TagPrice, price, 0, 8)
	w.PutASCIIString(constants.TagTimeInForce, constants.TimeInForceFOK)
}

// BuildQuoteRequest writes a complete Quote Request (R) message for RFQ
// into buf starting at off: header plus QuoteRequestFields.
func BuildQuoteRequest(w *fix.Writer, buf []byte, off int, cfg fix.SessionConfig, outSeq int64, nowNs int64, params QuoteRequestParams) {
	w.Start(buf, off, cfg, constants.MsgTypeQuoteRequest, outSeq, nowNs)
	QuoteRequestFields(w, params)
}

// --- Accept Quote (New Order Single with QuoteID) ---

// AcceptQuoteParams contains parameters for accepting a quote.
type AcceptQuoteParams struct {
	Account  string          // Portfolio ID (required)
	ClOrdID  string          // Client order ID (required)
	Symbol   string          // Product pair (required)
	Side     string          // "1" buy, "2" sell (required)
	QuoteID  string          // From Quote message tag 117 (required)
	OrderQty decimal.Decimal // Size in base units (required)
	Price    decimal.Decimal // From Quote bid/offer price (required)
}

// AcceptQuoteFields writes a New Order Single (D) accepting a Quote's
// body fields onto w, which must already have a header started via
// w.Start.
func AcceptQuoteFields(w *fix.Writer, nowNs int64, params AcceptQuoteParams) {
	w.PutASCIIString(constants.TagAccount, params.Account)
	w.PutASCIIString(constants.TagClOrdID, params.ClOrdID)
	w.PutASCIIString(constants.TagSymbol, params.Symbol)
	w.PutASCIIString(constants.TagSide, params.Side)
	w.PutASCIIString(constants.TagOrdType, constants.OrdTypePreviouslyQuoted)
	w.PutASCIIString(constants.TagTargetStrategy, constants.TargetStrategyRFQ)
	w.PutASCIIString(constants.TagTimeInForce, constants.TimeInForceFOK)
	w.PutASCIIString(constants.TagQuoteID, params.QuoteID)
	qty, _ := params.OrderQty.Float64()
	w.PutDecimal(constants.TagOrderQty, qty, 0, 8)
	price, _ := params.Price.Float64()
	w.PutDecimal(constants.TagPrice, price, 0, 8)
	w.PutTimestamp(constants.TagTransactTime, nowNs)
}

// BuildAcceptQuote writes a complete New Order Single (D) message that
// accepts a Quote into buf starting at off: header plus AcceptQuoteFields.
func BuildAcceptQuote(w *fix.Writer, buf []byte, off int, cfg fix.SessionConfig, outSeq int64, nowNs int64, params AcceptQuoteParams) {
	w.Start(buf, off, cfg, constants.MsgTypeNewOrderSingle, outSeq, nowNs)
	AcceptQuoteFields(w, nowNs, params)
}
