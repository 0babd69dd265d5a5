package market

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/niveshlabs/nivesh-backend/internal/config"
)

func testUniverse() *config.Universe {
	return &config.Universe{
		Indices: []config.NamedSymbol{{Symbol: "^NSEI", Name: "NIFTY 50"}},
		Stocks:  []string{"RELIANCE.NS"},
	}
}

func TestServicePing(t *testing.T) {
	gw := newFakeGateway()
	gw.quotes["^NSEI"] = fakeQuote("^NSEI", 24500, 0.8)

	svc := NewService(gw, testUniverse(), testLogger())
	require.NoError(t, svc.Ping(context.Background()))
	require.Equal(t, 1, gw.quoteCalls)
}

func TestServicePing_ProviderDown(t *testing.T) {
	gw := newFakeGateway()
	gw.quoteErr["^NSEI"] = errors.New("connection refused")

	svc := NewService(gw, testUniverse(), testLogger())
	require.Error(t, svc.Ping(context.Background()))
}
