// Package money formatea importes para documentos exportados (PDF, XLSX).
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var plPrinter = message.NewPrinter(language.Polish)

// FormatPL formatea un importe con convención polaca: separador de miles
// con espacio y coma decimal, ej. "1 234,56".
func FormatPL(d decimal.Decimal) string {
	return plPrinter.Sprintf("%.2f", d.InexactFloat64())
}

// FormatPLCurrency añade el símbolo de la divisa: "1 234,56 zł".
func FormatPLCurrency(d decimal.Decimal, symbol string) string {
	return FormatPL(d) + " " + symbol
}
