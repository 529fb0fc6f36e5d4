package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	cases := []struct {
		name     string
		cents    *int64
		currency string
		want     string
	}{
		{"sin precio", nil, "CLP", "Consultar precio"},
		{"pesos sin decimales", int64Ptr(8047000), "CLP", "$80.470"},
		{"código en minúsculas", int64Ptr(8047000), "clp", "$80.470"},
		{"código inválido cae a CLP", int64Ptr(8047000), "???", "$80.470"},
		{"dólares con dos decimales", int64Ptr(80470), "USD", "US$804,70"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatPrice(tc.cents, tc.currency))
		})
	}
}
