// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
)

// MaxDecimalPlaces bounds Locale.DecimalPlaces.
const MaxDecimalPlaces = 6

// Locale controls how hours and fees are printed.
type Locale struct {
	CurrencySymbol     string
	DecimalPlaces      int    // fee decimals; hours always show one
	ThousandsSeparator string // "" disables grouping
}

// DefaultLocale prints hours as 1,234.5 and fees as $1,235.
func DefaultLocale() Locale {
	return Locale{CurrencySymbol: "$", DecimalPlaces: 0, ThousandsSeparator: ","}
}

// Validate checks that the locale can be turned into a format directive.
func (l Locale) Validate() error {
	if l.DecimalPlaces < 0 || l.DecimalPlaces > MaxDecimalPlaces {
		return fmt.Errorf("decimal_places must be between 0 and %d, got %d", MaxDecimalPlaces, l.DecimalPlaces)
	}
	if l.ThousandsSeparator == "" {
		return nil
	}
	if utf8.RuneCountInString(l.ThousandsSeparator) != 1 {
		return fmt.Errorf("thousands_separator must be a single character, got %q", l.ThousandsSeparator)
	}
	if strings.ContainsAny(l.ThousandsSeparator, "#0123456789+-") {
		return errors.New("thousands_separator must not be a digit, sign or '#'")
	}
	return nil
}

// decimalSeparator follows the grouping character: "." grouping uses ",".
func (l Locale) decimalSeparator() string {
	if l.ThousandsSeparator == "." {
		return ","
	}
	return "."
}

// numberFormat builds a humanize.FormatFloat directive such as "#,###.#".
func (l Locale) numberFormat(places int) string {
	if places < 0 {
		places = 0
	}
	var b strings.Builder
	b.WriteString("#")
	if l.ThousandsSeparator != "" {
		b.WriteString(l.ThousandsSeparator)
	}
	b.WriteString("###")
	b.WriteString(l.decimalSeparator())
	b.WriteString(strings.Repeat("#", places))
	return b.String()
}

// FormatHours formats hours with one decimal, e.g. 1234.5 -> "1,234.5".
func (l Locale) FormatHours(h float64) string {
	return humanize.FormatFloat(l.numberFormat(1), h)
}

// FormatFee formats a fee as currency, e.g. 4500 -> "$4,500".
func (l Locale) FormatFee(f float64) string {
	if f < 0 {
		return "-" + l.CurrencySymbol + humanize.FormatFloat(l.numberFormat(l.DecimalPlaces), -f)
	}
	return l.CurrencySymbol + humanize.FormatFloat(l.numberFormat(l.DecimalPlaces), f)
}

// FormatArea formats square feet, e.g. 296500 -> "296,500 SF".
func (l Locale) FormatArea(sf float64) string {
	return humanize.FormatFloat(l.numberFormat(0), sf) + " SF"
}

// FormatRate formats an hourly rate with cents, e.g. 201.6 -> "$201.60/hr".
func (l Locale) FormatRate(r float64) string {
	return l.FormatUnitRate(r, "hr")
}

// FormatUnitRate formats a currency amount per unit with cents, e.g. "$7.50/SF".
func (l Locale) FormatUnitRate(r float64, unit string) string {
	return l.CurrencySymbol + humanize.FormatFloat(l.numberFormat(2), r) + "/" + unit
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.2f%%", f*100)
}

// FormatScale formats a scale factor, e.g. 2 -> "2.000x".
func FormatScale(s float64) string {
	return fmt.Sprintf("%.3fx", s)
}
