package currency

import (
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// symbolOverrides replaces x/text narrow symbols where several currencies
// would otherwise all render as "$".
var symbolOverrides = map[string]string{
	"CLP": "CLP",
	"ARS": "ARS",
	"COP": "COP",
	"MXN": "MXN",
	"BRL": "R$",
}

var localeForCurrency = map[string]language.Tag{
	"USD": language.AmericanEnglish,
	"CLP": language.MustParse("es-CL"),
	"EUR": language.Spanish,
	"GBP": language.BritishEnglish,
	"MXN": language.LatinAmericanSpanish,
	"ARS": language.MustParse("es-AR"),
	"BRL": language.BrazilianPortuguese,
	"COP": language.MustParse("es-CO"),
}

// fractionDigits overrides the ISO minor unit count.
var fractionDigits = map[string]int{
	"CLP": 0,
	"COP": 0,
	"ARS": 0,
}

// Format renders amount in code's home locale, e.g. "$15.99" or "9.500 CLP".
func Format(amount float64, code string) string {
	code = strings.ToUpper(code)

	unit, err := currency.ParseISO(code)
	known := err == nil
	if !known {
		unit = currency.USD
	}

	tag, ok := localeForCurrency[code]
	if !ok {
		tag = language.English
	}
	p := message.NewPrinter(tag)

	digits, ok := fractionDigits[code]
	if !ok {
		digits = 2
	}
	formatted := p.Sprint(number.Decimal(amount, number.MinFractionDigits(digits), number.MaxFractionDigits(digits)))

	symbol, overridden := symbolOverrides[code]
	if !overridden {
		if !known {
			symbol = code
		} else {
			symbol = p.Sprint(currency.NarrowSymbol(unit))
		}
	}

	if isPrefix(code) {
		return symbol + formatted
	}
	return formatted + " " + symbol
}

// isPrefix reports whether the symbol goes before the amount. x/text does not
// expose CLDR symbol placement, so the list is kept by hand.
func isPrefix(code string) bool {
	switch code {
	case "USD", "GBP":
		return true
	default:
		return false
	}
}
