package screen

// ReferenceCurrency is the currency all monetary fields are normalized
// to before display.
const ReferenceCurrency = "USD"

// exchangeRates maps a currency code to its multiplier into the
// reference currency. The table is static; live FX lookup is out of
// scope, so the figures are indicative only.
var exchangeRates = map[string]float64{
	"USD": 1.0,
	"EUR": 1.1,
	"GBP": 1.3,
	"JPY": 0.007,
	"CAD": 0.75,
}

// ToReference converts an amount in the given currency to the
// reference currency. Unknown codes are treated as already-reference
// (rate 1.0); that leniency is intentional and matches the static
// rate table's accuracy class.
func ToReference(amount float64, code string) float64 {
	if rate, ok := exchangeRates[code]; ok {
		return amount * rate
	}
	return amount
}
