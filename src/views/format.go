package views

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter renders money and dates for one locale. It is pure; build it
// once from config and share it.
type Formatter struct {
	printer *message.Printer
	symbol  string
}

func NewFormatter(locale, currencySymbol string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return &Formatter{
		printer: message.NewPrinter(tag),
		symbol:  currencySymbol,
	}
}

// Currency formats an amount with locale grouping, two fraction digits
// and the configured symbol, e.g. "₺1.234,50" for tr-TR.
func (f *Formatter) Currency(amount decimal.Decimal) string {
	v, _ := amount.Float64()
	return f.printer.Sprintf("%s%v", f.symbol,
		number.Decimal(v, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// SignedCurrency prefixes the amount with + or - per the direction flag.
func (f *Formatter) SignedCurrency(amount decimal.Decimal, increasing bool) string {
	sign := "-"
	if increasing {
		sign = "+"
	}
	return sign + f.Currency(amount)
}

// Date renders a ledger timestamp the way the console shows it.
func (f *Formatter) Date(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02/01/2006 15:04")
}
