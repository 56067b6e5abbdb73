package semver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLenient(t *testing.T) {
	tests := []struct {
		in      string
		want    Version
		wantErr bool
	}{
		{in: "1.2.3", want: New(1, 2, 3)},
		{in: "v6.8.0", want: New(6, 8, 0)},
		{in: "v6.8.0.+commit.8c0a8c4e", want: New(6, 8, 0)},
		{in: "2.0.0-beta.1", want: Version{Major: 2, Prerelease: "beta.1"}},
		{in: "latest", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLenient(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestCompare(t *testing.T) {
	assert.Equal(t, 0, New(1, 2, 3).Compare(New(1, 2, 3)))
	assert.True(t, New(1, 2, 3).LessThan(New(1, 3, 0)))
	assert.True(t, Version{Major: 1, Prerelease: "rc.1"}.LessThan(New(1, 0, 0)))
	assert.Equal(t, 1, New(2, 0, 0).Compare(New(1, 9, 9)))
}

func TestAnyCompatible(t *testing.T) {
	compatible := []Version{New(5, 0, 0), New(6, 0, 0)}
	assert.True(t, AnyCompatible(compatible, New(6, 8, 1)))
	assert.False(t, AnyCompatible(compatible, New(7, 0, 0)))
}
