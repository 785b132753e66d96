package irail

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStationSlug(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"accented", "Liège-Guillemins", "liege-guillemins"},
		{"plain", "Brugge", "brugge"},
		{"uppercase", "GENT-SINT-PIETERS", "gent-sint-pieters"},
		{"diaeresis", "Kraainem/Crainhem", "kraainem/crainhem"},
		{"french accents", "Braine-l'Alleud", "braine-l'alleud"},
		{"cedilla", "François", "francois"},
		{"surrounding space", "  Namur ", "namur"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StationSlug(tt.in))
		})
	}
}
