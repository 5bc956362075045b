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

/*
HOT PATH - Market Data Message Processing Flow

This documents the critical performance path for processing incoming FIX market data.
Each message triggers this sequence; optimizations here have the highest impact.

┌─────────────────────────────────────────────────────────────────────────────┐
│                           NETWORK LAYER                                      │
│              (fixsession.Session handles TCP, framing, and sequencing)       │
└─────────────────────────────────────────────────────────────────────────────┘
                                     │
                                     ▼
┌─────────────────────────────────────────────────────────────────────────────┐
│ [1] onMarketData() - fixapp.go                                   ENTRY POINT │
│     • Registered via Session.On for MsgType W and X                          │
│     • Dispatcher has already sequence-checked the frame                      │
└─────────────────────────────────────────────────────────────────────────────┘
                                     │
                                     ▼
┌─────────────────────────────────────────────────────────────────────────────┐
│ [2] onMarketData() - fixapp.go                                  COORDINATOR │
│     • Extracts message metadata (symbol, reqId, seqNum)                      │
│     • Calls extractTrades() for parsing                                      │
│     • Calls TradeStore.AddTrades() for storage                               │
│     • Calls storeTradesToDatabase() for persistence (optional)               │
└─────────────────────────────────────────────────────────────────────────────┘
                                     │
                                     ▼
┌─────────────────────────────────────────────────────────────────────────────┐
│ [3] extractTrades() - parser.go                                     PARSER  │
│     • Walks the NoMdEntries repeating group via fix.MessageView             │
│     • Zero-copies each field's value out of the parser's receive buffer     │
└─────────────────────────────────────────────────────────────────────────────┘
                                     │
                                     ▼
┌─────────────────────────────────────────────────────────────────────────────┐
│ [4] TradeStore.AddTrades() - tradestore.go                           STORAGE │
│     • Acquires write lock (sync.RWMutex)                                     │
│     • Ring buffer insertion: O(1) per trade, zero allocations                │
└─────────────────────────────────────────────────────────────────────────────┘
                                     │
                                     ▼
┌─────────────────────────────────────────────────────────────────────────────┐
│ [5] storeTradesToDatabase() - storage.go (OPTIONAL)              PERSISTENCE │
│     • SQLite transaction with batch inserts                                  │
└─────────────────────────────────────────────────────────────────────────────┘
*/

package fixclient

import (
	"time"

	"prime-fix-engine-go/constants"
	"prime-fix-engine-go/database"
	"prime-fix-engine-go/fix"
	"prime-fix-engine-go/fixsession"
	"prime-fix-engine-go/logging"
)

// Config holds the account-level parameter fixclient stamps onto every
// outbound order, cancel/replace, and quote request. Credentials and
// CompIDs now live in config.FixSessionConfig and are consumed directly by
// fixsession.Session; this is what's left that's specific to the trading
// application layer built on top of it.
type Config struct {
	Account string
}

// FixApp is the trading application layered on top of a fixsession.Session:
// it registers listeners for every application-level message the session
// hands up, tracks orders/quotes/trades locally, and drives persistence.
type FixApp struct {
	Config     *Config
	Session    *fixsession.Session
	TradeStore *TradeStore
	OrderStore *OrderStore
	Db         *database.MarketDataDb
	log        *logging.Logger

	shouldExit    bool
	lastLogonTime time.Time
}

func NewConfig(account string) *Config {
	return &Config{Account: account}
}

// NewFixApp builds a FixApp bound to session and registers its listeners.
// Session-level concerns (Logon, heartbeats, resend, reconnect) stay owned
// by session; FixApp only ever sees application-level MsgTypes.
func NewFixApp(cfg *Config, session *fixsession.Session, db *database.MarketDataDb, log *logging.Logger) *FixApp {
	a := &FixApp{
		Config:     cfg,
		Session:    session,
		TradeStore: NewTradeStore(10000, ""),
		OrderStore: NewOrderStore(),
		Db:         db,
		log:        log,
	}

	session.SetLogoutListener(a.onLogout)
	session.SetFailureListener(a.onFailure)

	session.On(constants.MsgTypeMarketDataSnapshot, a.onMarketData)
	session.On(constants.MsgTypeMarketDataIncremental, a.onMarketData)
	session.On(constants.MsgTypeMarketDataReject, a.onMarketDataReject)
	session.On(constants.MsgTypeExecutionReport, a.onExecutionReport)
	session.On(constants.MsgTypeOrderCancelReject, a.onOrderCancelReject)
	session.On(constants.MsgTypeQuote, a.onQuote)
	session.On(constants.MsgTypeQuoteAcknowledgement, a.onQuoteAck)
	session.On(constants.MsgTypeReject, a.onSessionReject)
	session.On(constants.MsgTypeBusinessReject, a.onBusinessReject)
	session.OnUnhandled(a.onUnhandled)

	return a
}

func (a *FixApp) onLogout(reason string) {
	a.log.Infof(0, "fixclient: session logged out: %s", reason)

	if time.Since(a.lastLogonTime) < 5*time.Second || a.lastLogonTime.IsZero() {
		a.log.Errorf(0, "fixclient: authentication failed, refusing further reconnects")
		a.shouldExit = true
	}
}

func (a *FixApp) onFailure(reason string, err error) {
	a.log.Errorf(0, "fixclient: session failure: %s: %v", reason, err)
}

// NotifyLoggedIn is called by the owning command once the session reaches
// fixsession.StateLoggedIn, since the session itself only exposes a
// pre-Logon connected hook (SetConnectedListener) and a post-Logout hook,
// not an explicit "handshake finished" callback.
func (a *FixApp) NotifyLoggedIn() {
	a.lastLogonTime = time.Now()
	a.displayConnectionSuccess()
	a.displayHelp()
}

func (a *FixApp) ShouldExit() bool {
	return a.shouldExit
}

// onMarketData processes market data snapshots and incremental updates.
// HOT PATH [2]: Coordinates parsing, storage, and display of market data.
func (a *FixApp) onMarketData(view *fix.MessageView) {
	msgType := strField(view, constants.TagMsgType)
	mdReqId := strField(view, constants.TagMdReqId)
	symbol := strField(view, constants.TagSymbol)
	noMdEntries := strField(view, constants.TagNoMdEntries)
	seqNum := strField(view, constants.TagMsgSeqNum)

	isSnapshot := msgType == constants.MsgTypeMarketDataSnapshot
	isIncremental := msgType == constants.MsgTypeMarketDataIncremental

	a.displayMarketDataReceived(msgType, symbol, mdReqId, noMdEntries, seqNum)

	// HOT PATH [3]: Parse the NoMdEntries repeating group into Trade structs.
	trades := extractTrades(view, symbol, mdReqId, isSnapshot, seqNum)

	// HOT PATH [4]: Store in ring buffer - O(1) per trade, zero allocs.
	a.TradeStore.AddTrades(symbol, trades, isSnapshot, mdReqId)

	// HOT PATH [5]: Optional persistence - can block if sync.
	a.storeTradesToDatabase(trades, seqNum, isSnapshot)

	if isSnapshot {
		a.displaySnapshotTrades(trades, symbol)
	} else if isIncremental {
		a.displayIncrementalTrades(trades)
	}
}

func (a *FixApp) onMarketDataReject(view *fix.MessageView) {
	mdReqId := strField(view, constants.TagMdReqId)
	rejReason := strField(view, constants.TagMdReqRejReason)
	text := strField(view, constants.TagText)

	reasonDesc := getMdReqRejReasonDesc(rejReason)

	a.displayMarketDataReject(mdReqId, rejReason, reasonDesc, text)
	a.TradeStore.RemoveSubscriptionByReqId(mdReqId)
	a.displayMarketDataRejectHelp(rejReason)
}

func getMdReqRejReasonDesc(reason string) string {
	switch reason {
	case constants.MdReqRejReasonUnknownSymbol:
		return "Unknown symbol"
	case constants.MdReqRejReasonDuplicateMdReqId:
		return "Duplicate MdReqId"
	case constants.MdReqRejReasonInsufficientBandwidth:
		return "Insufficient bandwidth"
	case constants.MdReqRejReasonInsufficientPermission:
		return "Insufficient permission"
	case constants.MdReqRejReasonInvalidSubscriptionReqType:
		return "Invalid SubscriptionRequestType"
	case constants.MdReqRejReasonInvalidMarketDepth:
		return "Invalid MarketDepth"
	case constants.MdReqRejReasonUnsupportedMdUpdateType:
		return "Unsupported MdUpdateType"
	case constants.MdReqRejReasonOther:
		return "Other"
	case constants.MdReqRejReasonUnsupportedMdEntryType:
		return "Unsupported MdEntryType"
	default:
		return "Unknown reason"
	}
}

func (a *FixApp) onExecutionReport(view *fix.MessageView) {
	er := extractExecutionReport(view)
	a.OrderStore.UpdateOrderFromExecReport(er)
	a.displayExecutionReport(er)
}

func (a *FixApp) onOrderCancelReject(view *fix.MessageView) {
	reject := extractOrderCancelReject(view)
	a.displayOrderCancelReject(reject)
}

func (a *FixApp) onQuote(view *fix.MessageView) {
	quote := extractQuote(view)
	if validUntil := strField(view, constants.TagValidUntilTime); validUntil != "" {
		if t, err := time.Parse(constants.FixTimeFormat, validUntil); err == nil {
			quote.ValidUntilTime = t
		}
	}
	a.OrderStore.AddQuote(quote)
	a.displayQuote(quote)
}

func (a *FixApp) onQuoteAck(view *fix.MessageView) {
	ack := extractQuoteAck(view)
	a.displayQuoteAck(ack)
}

func (a *FixApp) onSessionReject(view *fix.MessageView) {
	reject := extractSessionReject(view)
	a.displaySessionReject(reject)
}

func (a *FixApp) onBusinessReject(view *fix.MessageView) {
	reject := extractBusinessReject(view)
	a.displayBusinessReject(reject)
}

func (a *FixApp) onUnhandled(view *fix.MessageView) {
	a.log.Infof(0, "fixclient: received unhandled application message type %s", strField(view, constants.TagMsgType))
}
