// Package currency is a static registry of display currencies. Codes
// are formatting hints only; amounts are never converted.
package currency

import "sort"

// Currency describes one display currency.
type Currency struct {
	Code   string
	Name   string
	Symbol string
}

var registry = []Currency{
	{"AED", "UAE Dirham", "د.إ"},
	{"ARS", "Argentine Peso", "$"},
	{"AUD", "Australian Dollar", "A$"},
	{"BRL", "Brazilian Real", "R$"},
	{"CAD", "Canadian Dollar", "C$"},
	{"CHF", "Swiss Franc", "Fr"},
	{"CLP", "Chilean Peso", "$"},
	{"CNY", "Chinese Yuan", "¥"},
	{"COP", "Colombian Peso", "$"},
	{"CZK", "Czech Koruna", "Kč"},
	{"DZD", "Algerian Dinar", "د.ج"},
	{"EGP", "Egyptian Pound", "£"},
	{"ETB", "Ethiopian Birr", "Br"},
	{"EUR", "Euro", "€"},
	{"GBP", "British Pound", "£"},
	{"GHS", "Ghanaian Cedi", "₵"},
	{"HKD", "Hong Kong Dollar", "HK$"},
	{"HUF", "Hungarian Forint", "Ft"},
	{"IDR", "Indonesian Rupiah", "Rp"},
	{"ILS", "Israeli Shekel", "₪"},
	{"INR", "Indian Rupee", "₹"},
	{"JOD", "Jordanian Dinar", "د.ا"},
	{"JPY", "Japanese Yen", "¥"},
	{"KES", "Kenyan Shilling", "KSh"},
	{"KRW", "South Korean Won", "₩"},
	{"KWD", "Kuwaiti Dinar", "د.ك"},
	{"LBP", "Lebanese Pound", "£"},
	{"MAD", "Moroccan Dirham", "د.م."},
	{"MXN", "Mexican Peso", "$"},
	{"MYR", "Malaysian Ringgit", "RM"},
	{"NGN", "Nigerian Naira", "₦"},
	{"NOK", "Norwegian Krone", "kr"},
	{"NZD", "New Zealand Dollar", "NZ$"},
	{"OMR", "Omani Rial", "﷼"},
	{"PEN", "Peruvian Sol", "S/"},
	{"PHP", "Philippine Peso", "₱"},
	{"PLN", "Polish Zloty", "zł"},
	{"QAR", "Qatari Riyal", "﷼"},
	{"RUB", "Russian Ruble", "₽"},
	{"SAR", "Saudi Riyal", "﷼"},
	{"SEK", "Swedish Krona", "kr"},
	{"SGD", "Singapore Dollar", "S$"},
	{"THB", "Thai Baht", "฿"},
	{"TND", "Tunisian Dinar", "د.ت"},
	{"TRY", "Turkish Lira", "₺"},
	{"TZS", "Tanzanian Shilling", "TSh"},
	{"UGX", "Ugandan Shilling", "USh"},
	{"USD", "US Dollar", "$"},
	{"VND", "Vietnamese Dong", "₫"},
	{"ZAR", "South African Rand", "R"},
}

var byCode = func() map[string]Currency {
	m := make(map[string]Currency, len(registry))
	for _, c := range registry {
		m[c.Code] = c
	}
	return m
}()

// Symbol returns the display symbol for a currency code, or the code
// itself when unknown.
func Symbol(code string) string {
	if c, ok := byCode[code]; ok {
		return c.Symbol
	}
	return code
}

// Lookup returns the currency for a code.
func Lookup(code string) (Currency, bool) {
	c, ok := byCode[code]
	return c, ok
}

// All returns the selectable currencies: PHP first, the rest sorted by
// name.
func All() []Currency {
	out := make([]Currency, 0, len(registry))
	var php Currency
	for _, c := range registry {
		if c.Code == "PHP" {
			php = c
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return append([]Currency{php}, out...)
}
