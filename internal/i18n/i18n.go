// Package i18n holds the zh/en message catalogs and locale-aware
// number formatting for runway.
package i18n

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Locale identifies a supported display language.
type Locale string

const (
	ZH Locale = "zh"
	EN Locale = "en"

	// Default is the locale used at startup when nothing is configured.
	Default = ZH
)

// Locales lists the supported locales in toggle order.
var Locales = []Locale{ZH, EN}

var tags = map[Locale]language.Tag{
	ZH: language.SimplifiedChinese,
	EN: language.AmericanEnglish,
}

var matcher = language.NewMatcher([]language.Tag{language.SimplifiedChinese, language.AmericanEnglish})

// Parse resolves a language tag such as "en-GB" or "zh_CN" to a supported
// locale. Unknown or malformed input resolves to Default.
func Parse(raw string) Locale {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, "_", "-"))
	if raw == "" {
		return Default
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return Default
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return Default
	}
	return Locales[idx]
}

// Tag returns the BCP 47 tag for l.
func (l Locale) Tag() language.Tag {
	if t, ok := tags[l]; ok {
		return t
	}
	return tags[Default]
}

// Toggle returns the other supported locale.
func (l Locale) Toggle() Locale {
	if l == EN {
		return ZH
	}
	return EN
}

// ToggleLabel is the caption for the control that switches away from l.
func (l Locale) ToggleLabel() string {
	if l == EN {
		return "中文"
	}
	return "EN"
}

// T looks up key in l's catalog and substitutes {{name}} placeholders from
// args, given as alternating name/value pairs. Missing keys fall back to the
// base locale and then to the key itself.
func (l Locale) T(key string, args ...any) string {
	msg, ok := catalogs[l][key]
	if !ok {
		msg, ok = catalogs[Default][key]
	}
	if !ok {
		msg = key
	}
	if len(args) < 2 || !strings.Contains(msg, "{{") {
		return msg
	}
	pairs := make([]string, 0, len(args))
	for i := 0; i+1 < len(args); i += 2 {
		pairs = append(pairs, fmt.Sprintf("{{%v}}", args[i]), fmt.Sprint(args[i+1]))
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

// Currency returns the currency symbol for l.
func (l Locale) Currency() string {
	return l.T(KeyCurrency)
}

// FormatNumber renders v with l's digit grouping and up to two fraction
// digits.
func (l Locale) FormatNumber(v float64) string {
	p := message.NewPrinter(l.Tag())
	return p.Sprint(number.Decimal(v, number.MaxFractionDigits(2)))
}

// FormatCurrency prefixes FormatNumber with l's currency symbol.
func (l Locale) FormatCurrency(v float64) string {
	if v < 0 {
		return "-" + l.Currency() + l.FormatNumber(-v)
	}
	return l.Currency() + l.FormatNumber(v)
}

// UnitLabel returns the localized name of a time unit key (months, days,
// years).
func (l Locale) UnitLabel(unit string) string {
	switch unit {
	case "days":
		return l.T(KeyDays)
	case "years":
		return l.T(KeyYears)
	default:
		return l.T(KeyMonths)
	}
}
