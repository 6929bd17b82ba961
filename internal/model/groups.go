package model

// Ticker maps a display name to a provider symbol.
type Ticker struct {
	Name   string `yaml:"name"`
	Symbol string `yaml:"symbol"`
}

// Group is an ordered, named collection of equity/index tickers sharing a
// currency glyph and display precision. Loaded once at startup, never
// mutated.
type Group struct {
	Title     string   `yaml:"title"`
	Currency  string   `yaml:"currency"`
	Precision int      `yaml:"precision"`
	Tickers   []Ticker `yaml:"tickers"`
}

// FxGroup configures the currency section: one base currency against an
// ordered list of targets.
type FxGroup struct {
	Title     string   `yaml:"title"`
	Base      string   `yaml:"base"`
	Precision int      `yaml:"precision"`
	Targets   []string `yaml:"targets"`
}
