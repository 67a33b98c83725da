package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	got, err := Parse("2024-03-10")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), *got)

	got, err = Parse("  ")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = Parse("10/03/2024")
	assert.Error(t, err)
}

func TestParseLoose(t *testing.T) {
	want := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	stamp := time.Date(2024, 1, 2, 17, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input any
		want  *time.Time
	}{
		{"nil", nil, nil},
		{"iso string", "2024-01-02", &want},
		{"rfc3339 string", "2024-01-02T17:30:00Z", &want},
		{"slash string", "2024/01/02", &want},
		{"garbage", "soon", nil},
		{"empty", "", nil},
		{"time value", stamp, &want},
		{"time pointer", &stamp, &want},
		{"nil time pointer", (*time.Time)(nil), nil},
		{"zero time", time.Time{}, nil},
		{"unsupported type", 42, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseLoose(tt.input)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, tt.want.Equal(*got), "got %s", got)
		})
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "", Format(nil))
	assert.Equal(t, "2024-02-29", Format(MustParse("2024-02-29")))
	assert.Nil(t, FormatPtr(nil))
	assert.Equal(t, "2024-02-29", *FormatPtr(MustParse("2024-02-29")))
}

func TestEqual(t *testing.T) {
	a := MustParse("2024-05-01")
	b := MustParse("2024-05-01")
	c := MustParse("2024-05-02")

	assert.True(t, Equal(nil, nil))
	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, c))
	assert.False(t, Equal(a, nil))
	assert.False(t, Equal(nil, c))
}

func TestWithin(t *testing.T) {
	start := MustParse("2024-01-10")
	end := MustParse("2024-01-20")

	assert.True(t, Within(nil, start, end), "nil target passes")
	assert.True(t, Within(MustParse("2024-01-10"), start, end), "start bound is inclusive")
	assert.True(t, Within(MustParse("2024-01-20"), start, end), "end bound is inclusive")
	assert.False(t, Within(MustParse("2024-01-09"), start, end))
	assert.False(t, Within(MustParse("2024-01-21"), start, end))
	assert.True(t, Within(MustParse("1999-01-01"), nil, end), "open start")
	assert.True(t, Within(MustParse("2099-01-01"), start, nil), "open end")
}

func TestOverlaps(t *testing.T) {
	d := MustParse
	assert.True(t, Overlaps(d("2024-01-01"), d("2024-01-10"), d("2024-01-10"), d("2024-01-20")))
	assert.False(t, Overlaps(d("2024-01-01"), d("2024-01-09"), d("2024-01-10"), d("2024-01-20")))
	assert.False(t, Overlaps(d("2024-01-21"), d("2024-01-30"), d("2024-01-10"), d("2024-01-20")))
	assert.True(t, Overlaps(nil, nil, d("2024-01-10"), d("2024-01-20")))
	assert.True(t, Overlaps(d("2024-01-15"), nil, nil, d("2024-01-20")))
}

func TestMinMax(t *testing.T) {
	a := MustParse("2024-01-05")
	b := MustParse("2024-01-01")
	c := MustParse("2024-02-01")

	assert.Equal(t, b, Min(a, nil, b, c))
	assert.Equal(t, c, Max(a, nil, b, c))
	assert.Nil(t, Min())
	assert.Nil(t, Max(nil, nil))
}

func TestFixedClock(t *testing.T) {
	c := FixedClock(time.Date(2024, 3, 10, 18, 45, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), c.Today())
}
