package entities

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDateJSONRoundTrip(t *testing.T) {
	d, err := ParseDate("2022-12-12")
	require.NoError(t, err)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	require.Equal(t, `"2022-12-12"`, string(data))

	var back Date
	require.NoError(t, json.Unmarshal(data, &back))
	require.Equal(t, "2022-12-12", back.String())
}

func TestDateRejectsMalformedInput(t *testing.T) {
	cases := []string{"12-12-2022", "2022/12/12", "2022-12-12T00:00:00Z", "notadate"}
	for _, input := range cases {
		var d Date
		err := json.Unmarshal([]byte(`"`+input+`"`), &d)
		require.Error(t, err, "input %q", input)
	}
}

func TestDateScanDropsTimeComponent(t *testing.T) {
	// A DATE column read through a driver in a non-UTC location must not
	// shift the calendar day.
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	var d Date
	require.NoError(t, d.Scan(time.Date(2022, time.December, 12, 23, 30, 0, 0, loc)))
	require.Equal(t, "2022-12-12", d.String())
}

func TestDateValueNilWhenZero(t *testing.T) {
	var d Date
	v, err := d.Value()
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestSubtaskListScanValue(t *testing.T) {
	list := SubtaskList{{Title: "write tests", Done: true}, {Title: "ship"}}

	v, err := list.Value()
	require.NoError(t, err)

	var back SubtaskList
	require.NoError(t, back.Scan(v))
	require.Equal(t, list, back)

	var empty SubtaskList
	require.NoError(t, empty.Scan([]byte("[]")))
	require.Len(t, empty, 0)
}
