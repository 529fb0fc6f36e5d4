package catalog

import (
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// PriceOnRequest se muestra para productos sin precio publicado
const PriceOnRequest = "Consultar precio"

var (
	priceLocale = language.MustParse("es-CL")
	clp         = currency.MustParseISO("CLP")
)

// FormatPrice muestra un precio en centavos con el formato de moneda de es-CL.
// Un código de moneda desconocido se formatea como CLP.
func FormatPrice(priceCents *int64, currencyCode string) string {
	if priceCents == nil {
		return PriceOnRequest
	}

	unit, err := currency.ParseISO(strings.ToUpper(currencyCode))
	if err != nil {
		unit = clp
	}
	scale, _ := currency.Standard.Rounding(unit)
	amount := float64(*priceCents) / 100

	p := message.NewPrinter(priceLocale)
	return p.Sprintf("%v%v", currency.Symbol(unit), number.Decimal(amount, number.Scale(scale)))
}
