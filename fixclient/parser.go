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

// Package fixclient extracts application-level domain structs (trades,
// orders, quotes, rejects) out of the zero-copy fix.MessageView the
// session hands to registered listeners.
package fixclient

import (
	"strconv"
	"time"

	"prime-fix-engine-go/constants"
	"prime-fix-engine-go/fix"
)

// strField returns the string value of tag in view, or "" if absent.
func strField(view *fix.MessageView, tag fix.Tag) string {
	i := view.Get(tag)
	if i < 0 {
		return ""
	}
	return string(view.ValueAt(i))
}

// extractTrades parses every MD entry in view's NoMdEntries repeating
// group into a Trade. Entries whose type is bid/offer get a synthetic
// Position (1-based, in group order) when the wire omits MdEntryPositionNo.
func extractTrades(view *fix.MessageView, symbol, mdReqId string, isSnapshot bool, seqNum string) []Trade {
	groups, err := view.RepeatingGroups(constants.TagNoMdEntries, constants.TagMdEntryType)
	if err != nil || len(groups) == 0 {
		return nil
	}

	now := time.Now()
	trades := make([]Trade, 0, len(groups))
	for i, g := range groups {
		trade := Trade{
			Timestamp:  now,
			Symbol:     symbol,
			MdReqId:    mdReqId,
			IsSnapshot: isSnapshot,
			IsUpdate:   !isSnapshot,
			SeqNum:     seqNum,
			EntryType:  strField(g, constants.TagMdEntryType),
			Price:      strField(g, constants.TagMdEntryPx),
			Size:       strField(g, constants.TagMdEntrySize),
			Time:       strField(g, constants.TagMdEntryTime),
			Position:   strField(g, constants.TagMdEntryPositionNo),
		}
		if aggressor := strField(g, constants.TagAggressorSide); aggressor != "" {
			trade.Aggressor = getAggressorSideDesc(aggressor)
		}
		if trade.Position == "" && (trade.EntryType == constants.MdEntryTypeBid || trade.EntryType == constants.MdEntryTypeOffer) {
			trade.Position = strconv.Itoa(i + 1)
		}
		trades = append(trades, trade)
	}
	return trades
}

func extractExecutionReport(view *fix.MessageView) *ExecutionReport {
	return &ExecutionReport{
		ClOrdID:       strField(view, constants.TagClOrdID),
		OrderID:       strField(view, constants.TagOrderID),
		ExecID:        strField(view, constants.TagExecID),
		Account:       strField(view, constants.TagAccount),
		Symbol:        strField(view, constants.TagSymbol),
		OrdStatus:     strField(view, constants.TagOrdStatus),
		ExecType:      strField(view, constants.TagExecType),
		Side:          strField(view, constants.TagSide),
		OrdType:       strField(view, constants.TagOrdType),
		OrderQty:      strField(view, constants.TagOrderQty),
		CumQty:        strField(view, constants.TagCumQty),
		LeavesQty:     strField(view, constants.TagLeavesQty),
		CashOrderQty:  strField(view, constants.TagCashOrderQty),
		Price:         strField(view, constants.TagPrice),
		AvgPx:         strField(view, constants.TagAvgPx),
		LastPx:        strField(view, constants.TagLastPx),
		LastShares:    strField(view, constants.TagLastShares),
		Commission:    strField(view, constants.TagCommission),
		FilledAmt:     strField(view, constants.TagFilledAmt),
		NetAvgPx:      strField(view, constants.TagNetAvgPrice),
		OrdRejReason:  strField(view, constants.TagOrdRejReason),
		Text:          strField(view, constants.TagText),
		EffectiveTime: strField(view, constants.TagEffectiveTime),
	}
}

func extractOrderCancelReject(view *fix.MessageView) *OrderCancelReject {
	return &OrderCancelReject{
		ClOrdID:          strField(view, constants.TagClOrdID),
		OrigClOrdID:      strField(view, constants.TagOrigClOrdID),
		OrderID:          strField(view, constants.TagOrderID),
		OrdStatus:        strField(view, constants.TagOrdStatus),
		CxlRejReason:     strField(view, constants.TagCxlRejReason),
		CxlRejResponseTo: strField(view, constants.TagCxlRejResponseTo),
		Text:             strField(view, constants.TagText),
	}
}

func extractQuote(view *fix.MessageView) *Quote {
	return &Quote{
		ReceivedAt: time.Now(),
		QuoteID:    strField(view, constants.TagQuoteID),
		QuoteReqID: strField(view, constants.TagQuoteReqID),
		Account:    strField(view, constants.TagAccount),
		Symbol:     strField(view, constants.TagSymbol),
		BidPx:      strField(view, constants.TagBidPx),
		BidSize:    strField(view, constants.TagBidSize),
		OfferPx:    strField(view, constants.TagOfferPx),
		OfferSize:  strField(view, constants.TagOfferSize),
	}
}

func extractQuoteAck(view *fix.MessageView) *QuoteAck {
	return &QuoteAck{
		QuoteID:           strField(view, constants.TagQuoteID),
		QuoteReqID:        strField(view, constants.TagQuoteReqID),
		Account:           strField(view, constants.TagAccount),
		Symbol:            strField(view, constants.TagSymbol),
		QuoteAckStatus:    strField(view, constants.TagQuoteAckStatus),
		QuoteRejectReason: strField(view, constants.TagQuoteRejectReason),
		Text:              strField(view, constants.TagText),
	}
}

func extractSessionReject(view *fix.MessageView) *SessionReject {
	return &SessionReject{
		RefSeqNum:           strField(view, constants.TagRefSeqNum),
		RefMsgType:          strField(view, constants.TagRefMsgType),
		RefTagID:            strField(view, constants.TagRefTagID),
		SessionRejectReason: strField(view, constants.TagSessionRejectReason),
		Text:                strField(view, constants.TagText),
	}
}

func extractBusinessReject(view *fix.MessageView) *BusinessReject {
	return &BusinessReject{
		RefSeqNum:            strField(view, constants.TagRefSeqNum),
		RefMsgType:           strField(view, constants.TagRefMsgType),
		BusinessRejectReason: strField(view, constants.TagBusinessRejectReason),
		Text:                 strField(view, constants.TagText),
	}
}
