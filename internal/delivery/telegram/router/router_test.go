package router

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseData(t *testing.T) {
	cases := []struct {
		raw, key, payload string
	}{
		{"\fsort|cargos|nivel", "sort", "cargos|nivel"},
		{"pay_menu", "pay_menu", ""},
		{"\fcal_day|empleados.fecha_ingreso|2024-02-29", "cal_day", "empleados.fecha_ingreso|2024-02-29"},
		{"\fdel_no|", "del_no", ""},
	}
	for _, tc := range cases {
		key, payload := ParseData(tc.raw)
		require.Equal(t, tc.key, key, tc.raw)
		require.Equal(t, tc.payload, payload, tc.raw)
	}
}
