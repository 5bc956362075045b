package builder

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"prime-fix-engine-go/constants"
	"prime-fix-engine-go/fix"
)

func writerCfg() fix.SessionConfig {
	return fix.SessionConfig{BeginString: "FIXT.1.1", SenderCompID: "CLIENT", TargetCompID: "PRIME"}
}

func parse(t *testing.T, w *fix.Writer) *fix.MessageView {
	t.Helper()
	var sent []byte
	w.Send(func(b []byte, off, length int) { sent = append([]byte{}, b[off:off+length]...) })
	p := fix.NewParser(fix.SessionConfig{BeginString: "FIXT.1.1", SenderCompID: "PRIME", TargetCompID: "CLIENT"})
	view, consumed, err := p.Parse(sent, 0, len(sent))
	require.NoError(t, err)
	require.Equal(t, len(sent), consumed)
	return view
}

func TestBuildMarketDataRequestWritesRepeatingGroups(t *testing.T) {
	w := fix.NewWriter()
	buf := make([]byte, 1024)
	BuildMarketDataRequest(w, buf, 0, writerCfg(), 1, 0, MarketDataRequestParams{
		MdReqID:                 "md-1",
		Symbols:                 []string{"BTC-USD", "ETH-USD"},
		SubscriptionRequestType: constants.SubscriptionRequestTypeSubscribe,
		MarketDepth:             0,
		MdEntryTypes:            []string{constants.MdEntryTypeBid, constants.MdEntryTypeOffer},
	})
	view := parse(t, w)

	require.Equal(t, "md-1", string(view.ValueAt(view.Get(constants.TagMdReqId))))
	entryGroups, err := view.RepeatingGroups(constants.TagNoMdEntryTypes, constants.TagMdEntryType)
	require.NoError(t, err)
	require.Len(t, entryGroups, 2)

	symGroups, err := view.RepeatingGroups(constants.TagNoRelatedSym, constants.TagSymbol)
	require.NoError(t, err)
	require.Len(t, symGroups, 2)
	require.Equal(t, "BTC-USD", string(symGroups[0].ValueAt(symGroups[0].Get(constants.TagSymbol))))
	require.Equal(t, "ETH-USD", string(symGroups[1].ValueAt(symGroups[1].Get(constants.TagSymbol))))
}

func TestBuildNewOrderSingleOmitsZeroConditionalFields(t *testing.T) {
	w := fix.NewWriter()
	buf := make([]byte, 1024)
	BuildNewOrderSingle(w, buf, 0, writerCfg(), 1, 0, NewOrderParams{
		Account:        "portfolio-123",
		ClOrdID:        "order-1",
		Symbol:         "BTC-USD",
		Side:           constants.SideBuy,
		OrdType:        constants.OrdTypeMarket,
		TargetStrategy: constants.TargetStrategyMarket,
		TimeInForce:    constants.TimeInForceIOC,
		OrderQty:       decimal.NewFromFloat(0.01),
	})
	view := parse(t, w)

	require.Equal(t, constants.MsgTypeNewOrderSingle, string(view.ValueAt(view.Get(constants.TagMsgType))))
	require.InDelta(t, 0.01, view.AsDouble(constants.TagOrderQty), 1e-9)
	require.Equal(t, -1, view.Get(constants.TagPrice))
	require.Equal(t, -1, view.Get(constants.TagStopPx))
}

func TestBuildOrderCancelReplaceRequestAlwaysWritesPrice(t *testing.T) {
	w := fix.NewWriter()
	buf := make([]byte, 1024)
	BuildOrderCancelReplaceRequest(w, buf, 0, writerCfg(), 2, 0, ReplaceOrderParams{
		Account:     "portfolio-123",
		ClOrdID:     "replace-1",
		OrigClOrdID: "order-1",
		OrderID:     "engine-order-id",
		Symbol:      "BTC-USD",
		Side:        constants.SideBuy,
		OrdType:     constants.OrdTypeLimit,
		OrderQty:    decimal.NewFromFloat(0.02),
		Price:       decimal.NewFromFloat(50000),
	})
	view := parse(t, w)

	require.InDelta(t, 50000.0, view.AsDouble(constants.TagPrice), 1e-6)
	require.InDelta(t, 0.02, view.AsDouble(constants.TagOrderQty), 1e-9)
}

func TestBuildAcceptQuote(t *testing.T) {
	w := fix.NewWriter()
	buf := make([]byte, 1024)
	BuildAcceptQuote(w, buf, 0, writerCfg(), 3, 0, AcceptQuoteParams{
		Account:  "portfolio-123",
		ClOrdID:  "accept-1",
		Symbol:   "BTC-USD",
		Side:     constants.SideBuy,
		QuoteID:  "quote-123",
		OrderQty: decimal.NewFromFloat(1.0),
		Price:    decimal.NewFromFloat(50000.0),
	})
	view := parse(t, w)

	require.Equal(t, constants.MsgTypeNewOrderSingle, string(view.ValueAt(view.Get(constants.TagMsgType))))
	require.Equal(t, "quote-123", string(view.ValueAt(view.Get(constants.TagQuoteID))))
	require.Equal(t, constants.OrdTypePreviouslyQuoted, string(view.ValueAt(view.Get(constants.TagOrdType))))
}
