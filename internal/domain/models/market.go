package models

// CurrencySignal is one row of the market direction overview: the four
// analytical calls for a currency plus the consolidated overall call.
// Overall is supplied by the catalog, never recomputed from the other four.
type CurrencySignal struct {
	Code        string `json:"code" yaml:"code" validate:"required,len=3,uppercase"`
	Name        string `json:"name" yaml:"name" validate:"required"`
	Fundamental Signal `json:"fundamental" yaml:"fundamental" validate:"required,oneof=Buy Sell Neutral"`
	Futures     Signal `json:"futures" yaml:"futures" validate:"required,oneof=Buy Sell Neutral"`
	Sentiment   Signal `json:"sentiment" yaml:"sentiment" validate:"required,oneof=Buy Sell Neutral"`
	Technical   Signal `json:"technical" yaml:"technical" validate:"required,oneof=Buy Sell Neutral"`
	Overall     Signal `json:"overall" yaml:"overall" validate:"required,oneof=Buy Sell Neutral"`
}

// EconomicIndicator is one row of a currency's fundamental table.
// Value is a pre-formatted, unit-bearing string; Change is the
// percentage-points delta since the previous reading.
type EconomicIndicator struct {
	Name   string  `json:"name" yaml:"name" validate:"required"`
	Value  string  `json:"value" yaml:"value" validate:"required"`
	Change float64 `json:"change" yaml:"change"`
	Impact Impact  `json:"impact" yaml:"impact" validate:"required,oneof=Positive Negative Neutral"`
}

// FuturesPricePoint is one weekly observation of a currency's futures
// price series. Series order is chart x-axis order.
type FuturesPricePoint struct {
	Week  string  `json:"week" yaml:"week" validate:"required"`
	Value float64 `json:"value" yaml:"value"`
}

// PositioningVolume holds the aggregate buy-side and sell-side contract
// counts backing the sentiment gauge.
type PositioningVolume struct {
	BuyContracts  int64 `json:"buy_contracts" yaml:"buy_contracts" validate:"gte=0"`
	SellContracts int64 `json:"sell_contracts" yaml:"sell_contracts" validate:"gte=0"`
}

// SentimentStrength is the crowding ratio derived from PositioningVolume.
// Defined is false when both contract counts are zero; Pct is meaningless
// then and renderers must show an undefined state instead of 0% or 100%.
type SentimentStrength struct {
	Pct     float64 `json:"pct"`
	Defined bool    `json:"defined"`
}

// CurrencyDetail is the fully-resolved per-currency view the renderer
// consumes: the signal record plus every dependent lookup.
type CurrencyDetail struct {
	Signal      CurrencySignal      `json:"signal"`
	Indicators  []EconomicIndicator `json:"indicators"`
	Futures     []FuturesPricePoint `json:"futures"`
	Positioning PositioningVolume   `json:"positioning"`
	Strength    SentimentStrength   `json:"strength"`
}
