package repository

import "FXTracker/internal/domain/models"

// DefaultCatalogDocument returns the built-in reference catalog used when
// no catalog file is configured. Indicator and futures coverage is
// intentionally sparse; currencies without a dedicated entry resolve to
// the base currency's data.
func DefaultCatalogDocument() *CatalogDocument {
	return &CatalogDocument{
		BaseCurrency: "USD",
		Currencies: []models.CurrencySignal{
			{Code: "USD", Name: "US Dollar", Fundamental: models.SignalBuy, Futures: models.SignalBuy, Sentiment: models.SignalNeutral, Technical: models.SignalBuy, Overall: models.SignalBuy},
			{Code: "EUR", Name: "Euro", Fundamental: models.SignalSell, Futures: models.SignalSell, Sentiment: models.SignalSell, Technical: models.SignalNeutral, Overall: models.SignalSell},
			{Code: "GBP", Name: "British Pound", Fundamental: models.SignalNeutral, Futures: models.SignalBuy, Sentiment: models.SignalBuy, Technical: models.SignalBuy, Overall: models.SignalBuy},
			{Code: "JPY", Name: "Japanese Yen", Fundamental: models.SignalSell, Futures: models.SignalSell, Sentiment: models.SignalNeutral, Technical: models.SignalSell, Overall: models.SignalSell},
			{Code: "CAD", Name: "Canadian Dollar", Fundamental: models.SignalBuy, Futures: models.SignalNeutral, Sentiment: models.SignalBuy, Technical: models.SignalBuy, Overall: models.SignalBuy},
			{Code: "AUD", Name: "Australian Dollar", Fundamental: models.SignalNeutral, Futures: models.SignalSell, Sentiment: models.SignalSell, Technical: models.SignalNeutral, Overall: models.SignalSell},
			{Code: "NZD", Name: "New Zealand Dollar", Fundamental: models.SignalSell, Futures: models.SignalSell, Sentiment: models.SignalSell, Technical: models.SignalSell, Overall: models.SignalSell},
			{Code: "CHF", Name: "Swiss Franc", Fundamental: models.SignalBuy, Futures: models.SignalBuy, Sentiment: models.SignalNeutral, Technical: models.SignalBuy, Overall: models.SignalBuy},
		},
		Pairs: []string{"EURUSD", "GBPUSD", "USDJPY", "AUDUSD", "USDCAD", "NZDUSD", "USDCHF", "EURGBP"},
		Indicators: map[string][]models.EconomicIndicator{
			"USD": {
				{Name: "GDP", Value: "2.5%", Change: 0.3, Impact: models.ImpactPositive},
				{Name: "Interest Rate", Value: "5.25%", Change: 0.0, Impact: models.ImpactNeutral},
				{Name: "Inflation", Value: "3.2%", Change: -0.5, Impact: models.ImpactPositive},
				{Name: "Trade Balance", Value: "-$65B", Change: -5, Impact: models.ImpactNegative},
				{Name: "Unemployment", Value: "3.8%", Change: -0.2, Impact: models.ImpactPositive},
			},
			"EUR": {
				{Name: "GDP", Value: "0.8%", Change: -0.2, Impact: models.ImpactNegative},
				{Name: "Interest Rate", Value: "4.0%", Change: 0.0, Impact: models.ImpactNeutral},
				{Name: "Inflation", Value: "2.9%", Change: -0.3, Impact: models.ImpactPositive},
				{Name: "Trade Balance", Value: "€25B", Change: 3, Impact: models.ImpactPositive},
				{Name: "Unemployment", Value: "6.5%", Change: 0.1, Impact: models.ImpactNegative},
			},
		},
		Futures: map[string][]models.FuturesPricePoint{
			"USD": {
				{Week: "W1", Value: 105.2},
				{Week: "W2", Value: 105.8},
				{Week: "W3", Value: 106.1},
				{Week: "W4", Value: 106.5},
				{Week: "W5", Value: 107.0},
			},
			"EUR": {
				{Week: "W1", Value: 1.085},
				{Week: "W2", Value: 1.082},
				{Week: "W3", Value: 1.078},
				{Week: "W4", Value: 1.075},
				{Week: "W5", Value: 1.072},
			},
		},
		Positioning: map[string]models.PositioningVolume{
			"USD": {BuyContracts: 65000, SellContracts: 45000},
			"EUR": {BuyContracts: 35000, SellContracts: 55000},
			"GBP": {BuyContracts: 52000, SellContracts: 38000},
			"JPY": {BuyContracts: 28000, SellContracts: 42000},
			"CAD": {BuyContracts: 48000, SellContracts: 32000},
			"AUD": {BuyContracts: 30000, SellContracts: 45000},
			"NZD": {BuyContracts: 25000, SellContracts: 40000},
			"CHF": {BuyContracts: 42000, SellContracts: 38000},
		},
	}
}
