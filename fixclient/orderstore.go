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

// OrderStore is the client-side book of record for everything order
// entry touches: open/filled orders keyed by ClOrdID and RFQ quotes
// keyed by QuoteReqID. It exists because an ExecutionReport only ever
// carries a delta (the fields that changed); reconstructing "what is
// this order's current state" requires folding those deltas onto
// whatever was already known.
package fixclient

import (
	"sync"
	"time"

	"prime-fix-engine-go/constants"
)

// Order is one order's current state as tracked by the client, folded
// from its most recent ExecutionReport.
type Order struct {
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
	ValidUntilTime time.Time `json:"validUntilTime,omitempty"`

	ClOrdID        string `json:"clOrdId"`
	OrderID        string `json:"orderId"`
	Symbol         string `json:"symbol"`
	Side           string `json:"side"` // constants.Side*
	OrdType        string `json:"ordType"`
	TargetStrategy string `json:"targetStrategy"`
	TimeInForce    string `json:"timeInForce"`
	OrdStatus      string `json:"ordStatus"` // constants.OrdStatus*
	ExecType       string `json:"execType"`  // constants.ExecType*

	OrderQty     string `json:"orderQty"`
	CashOrderQty string `json:"cashOrderQty,omitempty"`
	Price        string `json:"price"`
	StopPx       string `json:"stopPx"`
	AvgPx        string `json:"avgPx"`
	CumQty       string `json:"cumQty"`
	LeavesQty    string `json:"leavesQty"`

	LastPx     string `json:"lastPx"`
	LastShares string `json:"lastShares"`
	ExecID     string `json:"execId"`

	Commission string `json:"commission"`
	FilledAmt  string `json:"filledAmt"`
	NetAvgPx   string `json:"netAvgPx"`

	OrdRejReason string `json:"ordRejReason,omitempty"`
	Text         string `json:"text,omitempty"`

	Account string `json:"account"`
}

// Quote is a received RFQ quote. Only one of the bid/offer pairs is
// populated, matching whichever side of the quote request was asked for.
type Quote struct {
	ReceivedAt     time.Time `json:"receivedAt"`
	ValidUntilTime time.Time `json:"validUntilTime"`

	QuoteID    string `json:"quoteId"`
	QuoteReqID string `json:"quoteReqId"`
	Account    string `json:"account"`
	Symbol     string `json:"symbol"`

	BidPx     string `json:"bidPx,omitempty"`
	BidSize   string `json:"bidSize,omitempty"`
	OfferPx   string `json:"offerPx,omitempty"`
	OfferSize string `json:"offerSize,omitempty"`
}

// ExecutionReport is one parsed Execution Report (8) message, the delta
// UpdateOrderFromExecReport folds onto the matching Order.
type ExecutionReport struct {
	ClOrdID string `json:"clOrdId"`
	OrderID string `json:"orderId"`
	ExecID  string `json:"execId"`
	Account string `json:"account"`
	Symbol  string `json:"symbol"`

	OrdStatus string `json:"ordStatus"` // constants.OrdStatus*
	ExecType  string `json:"execType"`  // constants.ExecType*
	Side      string `json:"side"`      // constants.Side*
	OrdType   string `json:"ordType"`

	OrderQty     string `json:"orderQty"`
	CumQty       string `json:"cumQty"`
	LeavesQty    string `json:"leavesQty"`
	CashOrderQty string `json:"cashOrderQty,omitempty"`

	Price      string `json:"price,omitempty"`
	AvgPx      string `json:"avgPx,omitempty"`
	LastPx     string `json:"lastPx,omitempty"`
	LastShares string `json:"lastShares,omitempty"`

	Commission string `json:"commission,omitempty"`
	FilledAmt  string `json:"filledAmt,omitempty"`
	NetAvgPx   string `json:"netAvgPx,omitempty"`

	OrdRejReason string `json:"ordRejReason,omitempty"`
	Text         string `json:"text,omitempty"`

	EffectiveTime string `json:"effectiveTime,omitempty"`
}

// OrderCancelReject is one parsed Order Cancel Reject (9) message.
type OrderCancelReject struct {
	ClOrdID          string `json:"clOrdId"`
	OrigClOrdID      string `json:"origClOrdId"`
	OrderID          string `json:"orderId"`
	OrdStatus        string `json:"ordStatus"`
	CxlRejReason     string `json:"cxlRejReason,omitempty"`
	CxlRejResponseTo string `json:"cxlRejResponseTo"` // constants.CxlRejResponseTo*
	Text             string `json:"text,omitempty"`
}

// SessionReject is one parsed session-level Reject (3) message.
type SessionReject struct {
	RefSeqNum           string `json:"refSeqNum"`
	RefMsgType          string `json:"refMsgType"`
	RefTagID            string `json:"refTagId,omitempty"`
	SessionRejectReason string `json:"sessionRejectReason,omitempty"`
	Text                string `json:"text,omitempty"`
}

// BusinessReject is one parsed Business Message Reject (j) message.
type BusinessReject struct {
	RefSeqNum            string `json:"refSeqNum"`
	RefMsgType           string `json:"refMsgType"`
	BusinessRejectReason string `json:"businessRejectReason"`
	Text                 string `json:"text,omitempty"`
}

// QuoteAck is one parsed Quote Acknowledgement (b) message; the client
// only ever sees this form as a rejection of an outstanding Quote Request.
type QuoteAck struct {
	QuoteID           string `json:"quoteId,omitempty"`
	QuoteReqID        string `json:"quoteReqId"`
	Account           string `json:"account"`
	Symbol            string `json:"symbol"`
	QuoteAckStatus    string `json:"quoteAckStatus"`
	QuoteRejectReason string `json:"quoteRejectReason"`
	Text              string `json:"text,omitempty"`
}

// OrderStore is the thread-safe order/quote book shared between the FIX
// event handlers (writers) and the REPL/display layer (readers).
type OrderStore struct {
	mu     sync.RWMutex
	orders map[string]*Order // ClOrdID -> Order
	quotes map[string]*Quote // QuoteReqID -> Quote
}

// NewOrderStore creates an empty OrderStore.
func NewOrderStore() *OrderStore {
	return &OrderStore{
		orders: make(map[string]*Order),
		quotes: make(map[string]*Quote),
	}
}

// AddOrder inserts or replaces an order wholesale, stamping CreatedAt on
// first insert. Used when an order is submitted locally, before any
// ExecutionReport has arrived to fold onto it.
func (os *OrderStore) AddOrder(order *Order) {
	os.mu.Lock()
	defer os.mu.Unlock()
	order.UpdatedAt = time.Now()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = order.UpdatedAt
	}
	os.orders[order.ClOrdID] = order
}

// GetOrder returns a defensive copy of the order keyed by ClOrdID, or
// nil if unknown.
func (os *OrderStore) GetOrder(clOrdID string) *Order {
	os.mu.RLock()
	defer os.mu.RUnlock()
	if order, exists := os.orders[clOrdID]; exists {
		copy := *order
		return &copy
	}
	return nil
}

// GetOrderByOrderID scans for the order carrying the exchange-assigned
// OrderID, since that ID isn't indexed directly.
func (os *OrderStore) GetOrderByOrderID(orderID string) *Order {
	os.mu.RLock()
	defer os.mu.RUnlock()
	for _, order := range os.orders {
		if order.OrderID == orderID {
			copy := *order
			return &copy
		}
	}
	return nil
}

// UpdateOrderFromExecReport folds an ExecutionReport's delta onto the
// matching order, creating one if this is the first report seen for
// ClOrdID. OrderID, Symbol, Side, OrdType, OrdStatus, ExecType and
// Account are always copied from the report, even when empty; every other
// field overwrites the existing value only when the report carries it.
func (os *OrderStore) UpdateOrderFromExecReport(er *ExecutionReport) {
	os.mu.Lock()
	defer os.mu.Unlock()

	order, exists := os.orders[er.ClOrdID]
	if !exists {
		order = &Order{
			ClOrdID:   er.ClOrdID,
			CreatedAt: time.Now(),
		}
		os.orders[er.ClOrdID] = order
	}

	order.UpdatedAt = time.Now()
	order.OrderID = er.OrderID
	order.Symbol = er.Symbol
	order.Side = er.Side
	order.OrdType = er.OrdType
	order.OrdStatus = er.OrdStatus
	order.ExecType = er.ExecType
	order.Account = er.Account

	if er.OrderQty != "" {
		order.OrderQty = er.OrderQty
	}
	if er.CashOrderQty != "" {
		order.CashOrderQty = er.CashOrderQty
	}
	if er.Price != "" {
		order.Price = er.Price
	}
	if er.AvgPx != "" {
		order.AvgPx = er.AvgPx
	}
	if er.CumQty != "" {
		order.CumQty = er.CumQty
	}
	if er.LeavesQty != "" {
		order.LeavesQty = er.LeavesQty
	}
	if er.LastPx != "" {
		order.LastPx = er.LastPx
	}
	if er.LastShares != "" {
		order.LastShares = er.LastShares
	}
	if er.ExecID != "" {
		order.ExecID = er.ExecID
	}
	if er.Commission != "" {
		order.Commission = er.Commission
	}
	if er.FilledAmt != "" {
		order.FilledAmt = er.FilledAmt
	}
	if er.NetAvgPx != "" {
		order.NetAvgPx = er.NetAvgPx
	}
	if er.OrdRejReason != "" {
		order.OrdRejReason = er.OrdRejReason
	}
	if er.Text != "" {
		order.Text = er.Text
	}
}

// GetAllOrders returns a defensive copy of every tracked order.
func (os *OrderStore) GetAllOrders() []*Order {
	os.mu.RLock()
	defer os.mu.RUnlock()

	result := make([]*Order, 0, len(os.orders))
	for _, order := range os.orders {
		copy := *order
		result = append(result, &copy)
	}
	return result
}

// GetOpenOrders returns orders whose OrdStatus is not a terminal state.
func (os *OrderStore) GetOpenOrders() []*Order {
	os.mu.RLock()
	defer os.mu.RUnlock()

	result := make([]*Order, 0)
	for _, order := range os.orders {
		if isOpenStatus(order.OrdStatus) {
			copy := *order
			result = append(result, &copy)
		}
	}
	return result
}

// RemoveOrder drops an order from the store, e.g. once a terminal
// ExecutionReport has been displayed and there's no further use in
// keeping it resident.
func (os *OrderStore) RemoveOrder(clOrdID string) {
	os.mu.Lock()
	defer os.mu.Unlock()
	delete(os.orders, clOrdID)
}

// AddQuote records or replaces a quote, stamping ReceivedAt.
func (os *OrderStore) AddQuote(quote *Quote) {
	os.mu.Lock()
	defer os.mu.Unlock()
	quote.ReceivedAt = time.Now()
	os.quotes[quote.QuoteReqID] = quote
}

// GetQuote returns a defensive copy of the quote keyed by QuoteReqID,
// or nil if unknown.
func (os *OrderStore) GetQuote(quoteReqID string) *Quote {
	os.mu.RLock()
	defer os.mu.RUnlock()
	if quote, exists := os.quotes[quoteReqID]; exists {
		copy := *quote
		return &copy
	}
	return nil
}

// GetQuoteByQuoteID scans for the quote carrying the venue-assigned
// QuoteID, since that ID isn't indexed directly.
func (os *OrderStore) GetQuoteByQuoteID(quoteID string) *Quote {
	os.mu.RLock()
	defer os.mu.RUnlock()
	for _, quote := range os.quotes {
		if quote.QuoteID == quoteID {
			copy := *quote
			return &copy
		}
	}
	return nil
}

// RemoveQuote drops a quote from the store, e.g. once it has expired or
// been acted on.
func (os *OrderStore) RemoveQuote(quoteReqID string) {
	os.mu.Lock()
	defer os.mu.Unlock()
	delete(os.quotes, quoteReqID)
}

// GetAllQuotes returns a defensive copy of every tracked quote.
func (os *OrderStore) GetAllQuotes() []*Quote {
	os.mu.RLock()
	defer os.mu.RUnlock()

	result := make([]*Quote, 0, len(os.quotes))
	for _, quote := range os.quotes {
		copy := *quote
		result = append(result, &copy)
	}
	return result
}

// isOpenStatus reports whether an OrdStatus value indicates the order is
// still live on the book, as opposed to a terminal state (Filled,
// Canceled, Rejected, Expired, ...).
func isOpenStatus(status string) bool {
	switch status {
	case constants.OrdStatusNew,
		constants.OrdStatusPartiallyFilled,
		constants.OrdStatusPendingCancel,
		constants.OrdStatusSuspended,
		constants.OrdStatusPendingNew,
		constants.OrdStatusPendingReplace:
		return true
	default:
		return false
	}
}
