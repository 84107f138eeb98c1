package listview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

type cargo struct {
	ID     int64
	Nombre string
	Nivel  int
	Sueldo float64
}

type persona struct {
	Nombre  string
	Ingreso time.Time
	Tel     *int64
}

func cargoSchema() *Schema[cargo] {
	return NewSchema(language.Spanish,
		Field[cargo]{Key: "id", Kind: KindNumber, Get: func(c cargo) Value { return Int(c.ID) }},
		Field[cargo]{Key: "nombre", Kind: KindText, Get: func(c cargo) Value { return Text(c.Nombre) }},
		Field[cargo]{Key: "nivel", Kind: KindNumber, Get: func(c cargo) Value { return Int(int64(c.Nivel)) }},
		Field[cargo]{Key: "sueldo_base", Kind: KindNumber, Get: func(c cargo) Value { return Number(c.Sueldo) }},
	)
}

func personaSchema() *Schema[persona] {
	return NewSchema(language.Spanish,
		Field[persona]{Key: "nombre", Kind: KindText, Get: func(p persona) Value { return Text(p.Nombre) }},
		Field[persona]{Key: "fecha_ingreso", Kind: KindDate, Get: func(p persona) Value { return Date(p.Ingreso) }},
		Field[persona]{Key: "telefono", Kind: KindNumber, Get: func(p persona) Value {
			if p.Tel == nil {
				return Missing(KindNumber)
			}
			return Int(*p.Tel)
		}},
	)
}

func ids(cs []cargo) []int64 {
	out := make([]int64, len(cs))
	for i, c := range cs {
		out[i] = c.ID
	}
	return out
}

func names(ps []persona) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Nombre
	}
	return out
}

func TestFilter_ContainsCaseInsensitive(t *testing.T) {
	s := personaSchema()
	in := []persona{{Nombre: "Juan"}, {Nombre: "Ana"}, {Nombre: "Luis"}}

	got, err := s.Filter(in, "nombre", "an")
	require.NoError(t, err)
	require.Equal(t, []string{"Juan", "Ana"}, names(got))

	got, err = s.Filter(in, "nombre", "AN")
	require.NoError(t, err)
	require.Equal(t, []string{"Juan", "Ana"}, names(got))
}

func TestFilter_EmptyTextKeepsAll(t *testing.T) {
	s := personaSchema()
	in := []persona{{Nombre: "Juan"}, {Nombre: "Ana"}}

	got, err := s.Filter(in, "does-not-matter", "")
	require.NoError(t, err)
	require.Equal(t, names(in), names(got))
}

func TestFilter_Idempotent(t *testing.T) {
	s := personaSchema()
	in := []persona{{Nombre: "María"}, {Nombre: "Mario"}, {Nombre: "Pedro"}, {Nombre: "mar"}}

	once, err := s.Filter(in, "nombre", "Mar")
	require.NoError(t, err)
	twice, err := s.Filter(once, "nombre", "Mar")
	require.NoError(t, err)
	require.Equal(t, names(once), names(twice))
	require.Len(t, once, 3)
}

func TestFilter_NumericAndMissingValues(t *testing.T) {
	s := personaSchema()
	tel := int64(4125551234)
	in := []persona{{Nombre: "A", Tel: &tel}, {Nombre: "B"}}

	got, err := s.Filter(in, "telefono", "555")
	require.NoError(t, err)
	require.Equal(t, []string{"A"}, names(got))
}

func TestFilter_UnknownField(t *testing.T) {
	_, err := personaSchema().Filter([]persona{{Nombre: "A"}}, "edad", "3")
	require.ErrorIs(t, err, ErrUnknownField)
}

func TestSort_DoesNotMutateSource(t *testing.T) {
	s := cargoSchema()
	in := []cargo{{ID: 1, Nivel: 3}, {ID: 2, Nivel: 1}, {ID: 3, Nivel: 2}}

	got, err := s.Sort(in, Criteria{{Field: "nivel", Dir: Asc}})
	require.NoError(t, err)
	require.Equal(t, []int64{2, 3, 1}, ids(got))
	require.Equal(t, []int64{1, 2, 3}, ids(in))
}

func TestSort_SingleNumericAscendingIsNonDecreasing(t *testing.T) {
	s := cargoSchema()
	in := []cargo{{ID: 1, Sueldo: 900}, {ID: 2, Sueldo: 120.5}, {ID: 3, Sueldo: 900}, {ID: 4, Sueldo: 0}}

	got, err := s.Sort(in, Criteria{{Field: "sueldo_base"}})
	require.NoError(t, err)
	for i := 1; i < len(got); i++ {
		require.LessOrEqual(t, got[i-1].Sueldo, got[i].Sueldo)
	}
	// ties keep input order
	require.Equal(t, []int64{4, 2, 1, 3}, ids(got))
}

func TestSort_SecondaryCriterionBreaksTies(t *testing.T) {
	s := cargoSchema()
	in := []cargo{
		{ID: 1, Nivel: 1, Sueldo: 500},
		{ID: 2, Nivel: 2, Sueldo: 700},
		{ID: 3, Nivel: 1, Sueldo: 800},
	}

	got, err := s.Sort(in, Criteria{{Field: "nivel", Dir: Asc}, {Field: "sueldo_base", Dir: Desc}})
	require.NoError(t, err)
	require.Equal(t, []int64{3, 1, 2}, ids(got))
}

func TestSort_ToggleWalkScenario(t *testing.T) {
	s := cargoSchema()
	in := []cargo{{ID: 1, Nivel: 2, Sueldo: 900}, {ID: 2, Nivel: 1, Sueldo: 1500}}

	var crit Criteria
	crit = crit.Toggle("nivel")
	got, err := s.Sort(in, crit)
	require.NoError(t, err)
	require.Equal(t, []int64{2, 1}, ids(got))

	crit = crit.Toggle("sueldo_base").Toggle("sueldo_base")
	require.Equal(t, Criteria{{Field: "nivel", Dir: Asc}, {Field: "sueldo_base", Dir: Desc}}, crit)
	got, err = s.Sort(in, crit)
	require.NoError(t, err)
	require.Equal(t, []int64{2, 1}, ids(got))

	crit = crit.Toggle("nivel").Toggle("nivel")
	require.Equal(t, Criteria{{Field: "sueldo_base", Dir: Desc}}, crit)
	got, err = s.Sort(in, crit)
	require.NoError(t, err)
	require.Equal(t, []int64{2, 1}, ids(got))
}

func TestSort_TextUsesSpanishCollation(t *testing.T) {
	s := personaSchema()
	in := []persona{{Nombre: "oso"}, {Nombre: "Ñandú"}, {Nombre: "bruno"}, {Nombre: "Ángel"}, {Nombre: "nube"}, {Nombre: "ana"}}

	got, err := s.Sort(in, Criteria{{Field: "nombre"}})
	require.NoError(t, err)
	require.Equal(t, []string{"ana", "Ángel", "bruno", "nube", "Ñandú", "oso"}, names(got))
}

func TestSort_MissingValuesLastInBothDirections(t *testing.T) {
	s := personaSchema()
	d := func(day int) time.Time { return time.Date(2020, 1, day, 0, 0, 0, 0, time.UTC) }
	in := []persona{{Nombre: "sin"}, {Nombre: "b", Ingreso: d(2)}, {Nombre: "a", Ingreso: d(1)}}

	asc, err := s.Sort(in, Criteria{{Field: "fecha_ingreso", Dir: Asc}})
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "sin"}, names(asc))

	desc, err := s.Sort(in, Criteria{{Field: "fecha_ingreso", Dir: Desc}})
	require.NoError(t, err)
	require.Equal(t, []string{"b", "a", "sin"}, names(desc))
}

func TestApply_FilterThenSort(t *testing.T) {
	s := personaSchema()
	in := []persona{{Nombre: "Juan"}, {Nombre: "Luis"}, {Nombre: "Ana"}}

	got, err := s.Apply(in, Query{
		FilterField: "nombre",
		FilterText:  "an",
		Sort:        Criteria{{Field: "nombre"}},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"Ana", "Juan"}, names(got))
}

func TestApply_RejectsUnknownSortField(t *testing.T) {
	_, err := personaSchema().Apply(nil, Query{Sort: Criteria{{Field: "edad"}}})
	require.ErrorIs(t, err, ErrUnknownField)
}

func TestInt_ExactBeyondFloatPrecision(t *testing.T) {
	const big = int64(1<<53 + 1)
	require.Equal(t, "9007199254740993", Int(big).String())

	s := cargoSchema()
	in := []cargo{{ID: big}, {ID: big - 1}}
	got, err := s.Sort(in, Criteria{{Field: "id"}})
	require.NoError(t, err)
	require.Equal(t, []int64{big - 1, big}, ids(got))

	found, err := s.Filter(in, "id", "0993")
	require.NoError(t, err)
	require.Equal(t, []int64{big}, ids(found))
}
