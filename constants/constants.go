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

package constants

import "prime-fix-engine-go/fix"

// --- Message Types ---
const (
	// Admin Messages
	MsgTypeLogon            = "A" // Logon
	MsgTypeReject           = "3" // Session-level Reject
	MsgTypeBusinessReject   = "j" // Business Message Reject
	MsgTypeMarketDataReject = "Y" // Market Data Request Reject

	// Market Data Messages
	MsgTypeMarketDataRequest     = "V" // Market Data Request
	MsgTypeMarketDataSnapshot    = "W" // Market Data Snapshot/Full Refresh
	MsgTypeMarketDataIncremental = "X" // Market Data Incremental Refresh

	// Order Entry Messages
	MsgTypeNewOrderSingle       = "D" // New Order Single
	MsgTypeOrderCancelRequest   = "F" // Order Cancel Request
	MsgTypeOrderCancelReplace   = "G" // Order Cancel/Replace Request
	MsgTypeOrderStatusRequest   = "H" // Order Status Request
	MsgTypeExecutionReport      = "8" // Execution Report
	MsgTypeOrderCancelReject    = "9" // Order Cancel Reject
	MsgTypeQuoteRequest         = "R" // Quote Request
	MsgTypeQuote                = "S" // Quote
	MsgTypeQuoteAcknowledgement = "b" // Quote Acknowledgement

	// Session-level admin messages
	MsgTypeHeartbeat      = "0" // Heartbeat
	MsgTypeTestRequest    = "1" // Test Request
	MsgTypeResendRequest  = "2" // Resend Request
	MsgTypeSequenceReset  = "4" // Sequence Reset
	MsgTypeLogout         = "5" // Logout
)

// --- Protocol Constants ---
const (
	FixTimeFormat     = "20060102-15:04:05.000"
	FixBeginString    = "FIXT.1.1"
	EncryptMethodNone = "0"
	HeartBtInterval   = "30"
	DropCopyFlagYes   = "Y"
	MsgSeqNumInit     = "1"
)

// --- Subscription Request Types ---
const (
	SubscriptionRequestTypeSnapshot    = "0" // Snapshot
	SubscriptionRequestTypeSubscribe   = "1" // Subscribe
	SubscriptionRequestTypeUnsubscribe = "2" // Unsubscribe
)

// --- MD Entry Types ---
const (
	MdEntryTypeBid    = "0" // Bid
	MdEntryTypeOffer  = "1" // Offer/Ask
	MdEntryTypeTrade  = "2" // Trade
	MdEntryTypeOpen   = "4" // Open
	MdEntryTypeClose  = "5" // Close
	MdEntryTypeHigh   = "7" // High
	MdEntryTypeLow    = "8" // Low
	MdEntryTypeVolume = "B" // Volume
)

// --- MD Update Types ---
const (
	MdUpdateTypeFullRefresh = "0" // Full refresh
	MdUpdateTypeIncremental = "1" // Incremental refresh
)

// --- Order Types (Tag 40) ---
const (
	OrdTypeMarket           = "1" // Market
	OrdTypeLimit            = "2" // Limit
	OrdTypeStop             = "3" // Stop
	OrdTypeStopLimit        = "4" // Stop Limit
	OrdTypePreviouslyQuoted = "D" // Previously Quoted (for RFQ)
)

// --- Side (Tag 54) ---
const (
	SideBuy  = "1" // Buy
	SideSell = "2" // Sell
)

// --- Time In Force (Tag 59) ---
const (
	TimeInForceGTC = "1" // Good Till Cancel
	TimeInForceIOC = "3" // Immediate or Cancel
	TimeInForceFOK = "4" // Fill or Kill
	TimeInForceGTD = "6" // Good Till Date
)

// --- Target Strategy (Tag 847) ---
const (
	TargetStrategyLimit     = "L"  // Limit order
	TargetStrategyMarket    = "M"  // Market order
	TargetStrategyTWAP      = "T"  // TWAP order
	TargetStrategyVWAP      = "V"  // VWAP order
	TargetStrategyStopLimit = "SL" // Stop Limit order
	TargetStrategyRFQ       = "R"  // RFQ order
)

// --- Order Status (Tag 39) ---
const (
	OrdStatusNew             = "0" // New
	OrdStatusPartiallyFilled = "1" // Partially Filled
	OrdStatusFilled          = "2" // Filled
	OrdStatusDoneForDay      = "3" // Done for Day
	OrdStatusCanceled        = "4" // Canceled
	OrdStatusReplaced        = "5" // Replaced
	OrdStatusPendingCancel   = "6" // Pending Cancel
	OrdStatusStopped         = "7" // Stopped
	OrdStatusRejected        = "8" // Rejected
	OrdStatusSuspended       = "9" // Suspended
	OrdStatusPendingNew      = "A" // Pending New
	OrdStatusCalculated      = "B" // Calculated
	OrdStatusExpired         = "C" // Expired
	OrdStatusAcceptedBidding = "D" // Accepted for Bidding
	OrdStatusPendingReplace  = "E" // Pending Replace
)

// --- Execution Type (Tag 150) ---
const (
	ExecTypeNew           = "0" // New Order
	ExecTypePartialFill   = "1" // Partial Fill
	ExecTypeFilled        = "2" // Filled
	ExecTypeDone          = "3" // Done
	ExecTypeCanceled      = "4" // Canceled
	ExecTypePendingCancel = "6" // Pending Cancel
	ExecTypeStopped       = "7" // Stopped
	ExecTypeRejected      = "8" // Rejected
	ExecTypePendingNew    = "A" // Pending New
	ExecTypeExpired       = "C" // Expired
	ExecTypeRestated      = "D" // Restated
	ExecTypeOrderStatus   = "I" // Order Status
)

// --- Order Reject Reason (Tag 103) ---
const (
	OrdRejReasonBrokerOption   = "0"  // Broker option
	OrdRejReasonUnknownSymbol  = "1"  // Unknown symbol
	OrdRejReasonExchangeClosed = "2"  // Exchange closed
	OrdRejReasonExceedsLimit   = "3"  // Order exceeds limit
	OrdRejReasonTooLate        = "4"  // Too late to enter
	OrdRejReasonUnknownOrder   = "5"  // Unknown Order
	OrdRejReasonDuplicateOrder = "6"  // Duplicate Order
	OrdRejReasonOther          = "99" // Other
)

// --- Cancel Reject Response To (Tag 434) ---
const (
	CxlRejResponseToCancel  = "1" // Order Cancel Request (F)
	CxlRejResponseToReplace = "2" // Order Cancel/Replace Request (G)
)

// --- Quote Acknowledgement Status (Tag 297) ---
const (
	QuoteAckStatusRejected = "5" // Rejected
)

// --- Quote Reject Reason (Tag 300) ---
const (
	QuoteRejectReasonUnknownSymbol  = "1"  // Unknown symbol
	QuoteRejectReasonExchangeClosed = "2"  // Exchange closed
	QuoteRejectReasonExceedsLimit   = "3"  // Quote Request exceeds limit
	QuoteRejectReasonDuplicate      = "6"  // Duplicate Quote
	QuoteRejectReasonInvalidPrice   = "8"  // Invalid price
	QuoteRejectReasonOther          = "99" // Other
)

// --- Session Reject Reason (Tag 373) ---
const (
	SessionRejectReasonInvalidTag          = "0"
	SessionRejectReasonRequiredTagMissing  = "1"
	SessionRejectReasonTagNotDefined       = "2"
	SessionRejectReasonUndefinedTag        = "3"
	SessionRejectReasonTagWithoutValue     = "4"
	SessionRejectReasonValueOutOfRange     = "5"
	SessionRejectReasonIncorrectDataFormat = "6"
	SessionRejectReasonDecryptionProblem   = "7"
	SessionRejectReasonSignatureProblem    = "8"
	SessionRejectReasonCompIDProblem       = "9"
	SessionRejectReasonSendingTimeAccuracy = "10"
	SessionRejectReasonInvalidMsgType      = "11"
)

// --- Business Reject Reason (Tag 380) ---
const (
	BusinessRejectReasonOther               = "0"
	BusinessRejectReasonUnknownID           = "1"
	BusinessRejectReasonUnknownSecurity     = "2"
	BusinessRejectReasonUnsupportedMsgType  = "3"
	BusinessRejectReasonApplicationNotAvail = "4"
	BusinessRejectReasonCondRequiredMissing = "5"
	BusinessRejectReasonNotAuthorized       = "6"
)

// --- Execution Instruction (Tag 18) ---
// Per Coinbase Prime FIX API: https://docs.cdp.coinbase.com/prime/fix-api/order-entry-messages
// ExecInst must be "A" for Post Only orders (maker-only).
const (
	ExecInstPostOnly = "A" // Post Only (maker-only order)
)

// --- Handling Instruction (Tag 21) ---
const (
	HandlInstAutomatedNoIntervention = "1"
)

// --- Commission Type (Tag 13) ---
const (
	CommTypeAbsolute = "3" // Absolute (fixed amount)
)

// --- Misc Fee Type (Tag 139) ---
// Per Coinbase Prime FIX API Execution Report:
// https://docs.cdp.coinbase.com/prime/fix-api/order-entry-messages
// MiscFees is a repeating group with Tags 136 (count), 137 (amt), 138 (curr), 139 (type).
const (
	MiscFeeTypeFinancing  = "1" // Financing Fee
	MiscFeeTypeClientComm = "2" // Client Commission
	MiscFeeTypeCESComm    = "3" // CES Commission
	MiscFeeTypeVenueFee   = "4" // Venue Fee
)

// --- Standard FIX Tags ---
var (
	TagAccount        = fix.Tag(1)
	TagAvgPx          = fix.Tag(6)
	TagBeginString    = fix.Tag(8)
	TagClOrdID        = fix.Tag(11)
	TagCommission     = fix.Tag(12)
	TagCommType       = fix.Tag(13)
	TagCumQty         = fix.Tag(14)
	TagExecID         = fix.Tag(17)
	TagExecInst       = fix.Tag(18)
	TagHandlInst      = fix.Tag(21)
	TagLastMkt        = fix.Tag(30)
	TagLastPx         = fix.Tag(31)
	TagLastShares     = fix.Tag(32)
	TagMsgSeqNum      = fix.Tag(34)
	TagMsgType        = fix.Tag(35)
	TagOrderID        = fix.Tag(37)
	TagOrderQty       = fix.Tag(38)
	TagOrdStatus      = fix.Tag(39)
	TagOrdType        = fix.Tag(40)
	TagOrigClOrdID    = fix.Tag(41)
	TagPrice          = fix.Tag(44)
	TagRefSeqNum      = fix.Tag(45)
	TagSenderCompId   = fix.Tag(49)
	TagSenderSubID    = fix.Tag(50)
	TagSendingTime    = fix.Tag(52)
	TagSide           = fix.Tag(54)
	TagSymbol         = fix.Tag(55)
	TagText           = fix.Tag(58)
	TagTimeInForce    = fix.Tag(59)
	TagTransactTime   = fix.Tag(60)
	TagTargetCompId   = fix.Tag(56)
	TagValidUntilTime = fix.Tag(62)
	TagHmac           = fix.Tag(96)
	TagEncryptMethod  = fix.Tag(98)
	TagStopPx         = fix.Tag(99)
	TagOrdRejReason   = fix.Tag(103)
	TagCxlRejReason   = fix.Tag(102)
	TagHeartBtInt     = fix.Tag(108)
	TagQuoteID        = fix.Tag(117)
	TagExpireTime     = fix.Tag(126)
	TagQuoteReqID     = fix.Tag(131)
	TagBidPx          = fix.Tag(132)
	TagOfferPx        = fix.Tag(133)
	TagBidSize        = fix.Tag(134)
	TagOfferSize      = fix.Tag(135)
	TagNoMiscFees     = fix.Tag(136)
	TagMiscFeeAmt     = fix.Tag(137)
	TagMiscFeeCurr    = fix.Tag(138)
	TagMiscFeeType    = fix.Tag(139)
	TagNoRelatedSym   = fix.Tag(146)
	TagExecType       = fix.Tag(150)
	TagLeavesQty      = fix.Tag(151)
	TagCashOrderQty   = fix.Tag(152)
	TagEffectiveTime  = fix.Tag(168)
	TagMaxShow        = fix.Tag(210)

	// Session-level admin tags
	TagBeginSeqNo   = fix.Tag(7)
	TagEndSeqNo     = fix.Tag(16)
	TagNewSeqNo     = fix.Tag(36)
	TagPossDupFlag  = fix.Tag(43)
	TagTestReqID    = fix.Tag(112)
	TagGapFillFlag  = fix.Tag(123)

	// Market Data Tags
	TagMdReqId                 = fix.Tag(262)
	TagSubscriptionRequestType = fix.Tag(263)
	TagMarketDepth             = fix.Tag(264)
	TagMdUpdateType            = fix.Tag(265)
	TagNoMdEntryTypes          = fix.Tag(267)
	TagNoMdEntries             = fix.Tag(268)
	TagMdEntryType             = fix.Tag(269)
	TagMdEntryPx               = fix.Tag(270)
	TagMdEntrySize             = fix.Tag(271)
	TagMdEntryTime             = fix.Tag(273)
	TagMdReqRejReason          = fix.Tag(281)
	TagMdEntryPositionNo       = fix.Tag(290)

	// Quote Tags
	TagQuoteAckStatus    = fix.Tag(297)
	TagQuoteRejectReason = fix.Tag(300)

	// Reject Tags
	TagRefTagID             = fix.Tag(371)
	TagRefMsgType           = fix.Tag(372)
	TagSessionRejectReason  = fix.Tag(373)
	TagBusinessRejectReason = fix.Tag(380)

	// Order Tags
	TagCxlRejResponseTo  = fix.Tag(434)
	TagUsername          = fix.Tag(553)
	TagPassword          = fix.Tag(554)
	TagTargetStrategy    = fix.Tag(847)
	TagParticipationRate = fix.Tag(849)
	TagDefaultApplVerId  = fix.Tag(1137)

	// Coinbase Custom Tags
	TagAggressorSide = fix.Tag(2446)
	TagDropCopyFlag  = fix.Tag(9406)
	TagAccessKey     = fix.Tag(9407)
	TagFilledAmt     = fix.Tag(8002)
	TagNetAvgPrice   = fix.Tag(8006)
	TagIsRaiseExact  = fix.Tag(8999)
)

// --- MD Rejection Reasons ---
const (
	MdReqRejReasonUnknownSymbol              = "0"
	MdReqRejReasonDuplicateMdReqId           = "1"
	MdReqRejReasonInsufficientBandwidth      = "2"
	MdReqRejReasonInsufficientPermission     = "3"
	MdReqRejReasonInvalidSubscriptionReqType = "4"
	MdReqRejReasonInvalidMarketDepth         = "5"
	MdReqRejReasonUnsupportedMdUpdateType    = "6"
	MdReqRejReasonOther                      = "7"
	MdReqRejReasonUnsupportedMdEntryType     = "8"
)
