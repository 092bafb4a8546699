package currency

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultBase is the pivot currency of the built-in rate table.
const DefaultBase = "USD"

// defaultRates holds units per one USD.
var defaultRates = map[string]float64{
	"USD": 1,
	"CLP": 950,
	"EUR": 0.92,
	"GBP": 0.79,
	"MXN": 17.5,
	"ARS": 1000,
	"BRL": 5.0,
	"COP": 4000,
}

// Amount is a value in a given currency.
type Amount struct {
	Value    float64
	Currency string
}

// Converter converts between currencies through a static rate table pivoted on
// a base currency. It is read-only after construction and safe for concurrent use.
type Converter struct {
	base  string
	rates map[string]float64
}

// NewConverter copies rates so later changes to the map don't leak in.
func NewConverter(base string, rates map[string]float64) *Converter {
	cp := make(map[string]float64, len(rates)+1)
	for code, rate := range rates {
		cp[strings.ToUpper(code)] = rate
	}
	base = strings.ToUpper(base)
	if _, ok := cp[base]; !ok {
		cp[base] = 1
	}
	return &Converter{base: base, rates: cp}
}

// Default returns a converter over the built-in table.
func Default() *Converter {
	return NewConverter(DefaultBase, defaultRates)
}

type rateFile struct {
	Base  string             `yaml:"base"`
	Rates map[string]float64 `yaml:"rates"`
}

// LoadRates reads a YAML rate table:
//
//	base: USD
//	rates:
//	  CLP: 950
//	  EUR: 0.92
func LoadRates(path string) (*Converter, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rates file: %w", err)
	}

	var rf rateFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("failed to parse rates file: %w", err)
	}
	if rf.Base == "" {
		rf.Base = DefaultBase
	}
	if len(rf.Rates) == 0 {
		return nil, fmt.Errorf("rates file %s has no rates", path)
	}
	for code, rate := range rf.Rates {
		if rate <= 0 {
			return nil, fmt.Errorf("invalid rate %v for %s", rate, code)
		}
	}

	return NewConverter(rf.Base, rf.Rates), nil
}

func (c *Converter) Base() string {
	return c.base
}

// Rate returns units of code per one base unit. Unknown codes count as base.
func (c *Converter) Rate(code string) float64 {
	if r, ok := c.rates[code]; ok {
		return r
	}
	return 1
}

// Convert moves amount from one currency to another. Same-currency calls
// return amount untouched; no rounding is applied.
func (c *Converter) Convert(amount float64, from, to string) float64 {
	if from == to {
		return amount
	}
	return amount / c.Rate(from) * c.Rate(to)
}

// ConvertAll sums items after converting each one into the target currency.
func (c *Converter) ConvertAll(items []Amount, to string) float64 {
	var total float64
	for _, it := range items {
		total += c.Convert(it.Value, it.Currency, to)
	}
	return total
}

func (c *Converter) IsSupported(code string) bool {
	_, ok := c.rates[code]
	return ok
}

// Supported lists the known codes, base first then alphabetical.
func (c *Converter) Supported() []string {
	codes := make([]string, 0, len(c.rates))
	for code := range c.rates {
		if code != c.base {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)
	return append([]string{c.base}, codes...)
}

// Rebase re-expresses the table against another pivot. Conversions between
// any two codes are unchanged.
func (c *Converter) Rebase(base string) (*Converter, error) {
	base = strings.ToUpper(base)
	pivot, ok := c.rates[base]
	if !ok {
		return nil, fmt.Errorf("unknown base currency %s", base)
	}
	rates := make(map[string]float64, len(c.rates))
	for code, r := range c.rates {
		rates[code] = r / pivot
	}
	return NewConverter(base, rates), nil
}

// Load builds the process converter: the YAML table at ratesFile, or the
// built-in one when ratesFile is empty, pivoted on base when base is set.
func Load(base, ratesFile string) (*Converter, error) {
	conv := Default()
	if ratesFile != "" {
		var err error
		if conv, err = LoadRates(ratesFile); err != nil {
			return nil, err
		}
	}
	if base == "" || strings.EqualFold(base, conv.Base()) {
		return conv, nil
	}
	return conv.Rebase(base)
}
