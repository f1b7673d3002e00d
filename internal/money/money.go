// Package money renders integer currency amounts for people.
package money

import (
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var ErrInvalidLocale = errors.New("money: invalid locale or currency")

// Formatter groups digits the way the locale does and prefixes the
// locale's currency symbol. Alphabetic symbols such as "Rp" or "CHF" are
// separated from the digits by a space.
type Formatter struct {
	tag     language.Tag
	unit    currency.Unit
	printer *message.Printer
	symbol  string
}

// New builds a formatter from a BCP 47 locale and an ISO 4217 code.
func New(locale, code string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("%w: locale %q: %v", ErrInvalidLocale, locale, err)
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("%w: currency %q: %v", ErrInvalidLocale, code, err)
	}
	printer := message.NewPrinter(tag)
	return &Formatter{
		tag:     tag,
		unit:    unit,
		printer: printer,
		symbol:  prefix(printer.Sprint(currency.Symbol(unit))),
	}, nil
}

func prefix(sym string) string {
	r, _ := utf8.DecodeLastRuneInString(sym)
	if unicode.IsLetter(r) {
		return sym + " "
	}
	return sym
}

// Must is New that panics on error; for constant arguments.
func Must(locale, code string) *Formatter {
	f, err := New(locale, code)
	if err != nil {
		panic(err)
	}
	return f
}

func (f *Formatter) Locale() string   { return f.tag.String() }
func (f *Formatter) Currency() string { return f.unit.String() }

// Format renders amount, e.g. "Rp 180.000.000" or "-$1,234".
func (f *Formatter) Format(amount int64) string {
	sign := ""
	u := uint64(amount)
	if amount < 0 {
		sign = "-"
		u = uint64(-(amount + 1)) + 1
	}
	return sign + f.symbol + f.printer.Sprintf("%d", u)
}

// Percent renders v with one decimal and a percent sign.
func (f *Formatter) Percent(v float64) string {
	return f.printer.Sprintf("%.1f%%", v)
}
