package models

import (
	"testing"

	"github.com/stretchr/testify/assert"

	dErrors "geodocs/pkg/domain-errors"
)

func TestIssuanceDateValidate(t *testing.T) {
	tests := []struct {
		name string
		date IssuanceDate
		ok   bool
	}{
		{"year only", IssuanceDate{Year: "2024"}, true},
		{"year and month", IssuanceDate{Year: "2024", Month: "02"}, true},
		{"full valid date", IssuanceDate{Year: "2024", Month: "02", Day: "29"}, true},
		{"non leap february 29", IssuanceDate{Year: "2023", Month: "02", Day: "29"}, false},
		{"february 30", IssuanceDate{Year: "2024", Month: "02", Day: "30"}, false},
		{"day 31 in 30 day month", IssuanceDate{Year: "2024", Month: "04", Day: "31"}, false},
		{"month 13", IssuanceDate{Year: "2024", Month: "13"}, false},
		{"month zero", IssuanceDate{Year: "2024", Month: "00"}, false},
		{"day 32", IssuanceDate{Year: "2024", Month: "01", Day: "32"}, false},
		{"negative year", IssuanceDate{Year: "-5"}, false},
		{"non numeric year", IssuanceDate{Year: "twenty"}, false},
		{"empty year", IssuanceDate{}, false},
		{"year zero", IssuanceDate{Year: "0"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.date.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
			}
		})
	}
}

func TestIssuanceDateCompare(t *testing.T) {
	t.Run("year dominates", func(t *testing.T) {
		a := IssuanceDate{Year: "2020", Month: "12", Day: "31"}
		b := IssuanceDate{Year: "2021", Month: "01", Day: "01"}
		assert.Equal(t, -1, a.Compare(b))
		assert.Equal(t, 1, b.Compare(a))
	})

	t.Run("absent month sorts before any month", func(t *testing.T) {
		a := IssuanceDate{Year: "2020"}
		b := IssuanceDate{Year: "2020", Month: "01"}
		assert.Equal(t, -1, a.Compare(b))
	})

	t.Run("absent day sorts before any day", func(t *testing.T) {
		a := IssuanceDate{Year: "2020", Month: "05"}
		b := IssuanceDate{Year: "2020", Month: "05", Day: "01"}
		assert.Equal(t, -1, a.Compare(b))
	})

	t.Run("equal dates compare zero", func(t *testing.T) {
		a := IssuanceDate{Year: "2020", Month: "05", Day: "01"}
		assert.Equal(t, 0, a.Compare(a))
	})
}

func TestIssuanceDateNormalized(t *testing.T) {
	got := IssuanceDate{Year: "2024", Month: "5", Day: "7"}.Normalized()
	assert.Equal(t, IssuanceDate{Year: "2024", Month: "05", Day: "07"}, got)

	// Absent components stay absent.
	got = IssuanceDate{Year: "2024"}.Normalized()
	assert.Equal(t, IssuanceDate{Year: "2024"}, got)
}
