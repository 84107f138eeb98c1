package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDate_JSON(t *testing.T) {
	var e Employee
	require.NoError(t, json.Unmarshal([]byte(`{"cedula":1,"fecha_nacimiento":"1990-05-17","fecha_ingreso":null}`), &e))
	require.Equal(t, NewDate(1990, time.May, 17), e.BirthDate)
	require.True(t, e.HireDate.IsZero())

	b, err := json.Marshal(struct {
		A Date `json:"a"`
		B Date `json:"b"`
	}{A: NewDate(2024, time.January, 2)})
	require.NoError(t, err)
	require.JSONEq(t, `{"a":"2024-01-02","b":null}`, string(b))
}

func TestDate_AcceptsTimestampSuffix(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2021-03-04T00:00:00"`), &d))
	require.Equal(t, "2021-03-04", d.String())
	require.Equal(t, "04/03/2021", d.Display())
}

func TestDate_RejectsGarbage(t *testing.T) {
	var d Date
	require.Error(t, json.Unmarshal([]byte(`"04/03/2021"`), &d))
	_, err := ParseDate("2021-13-01")
	require.Error(t, err)
}

func TestAgeAt(t *testing.T) {
	birth := time.Date(1990, time.June, 15, 0, 0, 0, 0, time.UTC)
	require.Equal(t, 33, AgeAt(birth, time.Date(2024, time.June, 14, 0, 0, 0, 0, time.UTC)))
	require.Equal(t, 34, AgeAt(birth, time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)))
}
