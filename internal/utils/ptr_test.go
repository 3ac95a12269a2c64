package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntOrNil(t *testing.T) {
	tests := []struct {
		in      string
		want    *int
		wantErr bool
	}{
		{in: "3", want: Ptr(3)},
		{in: " 12 ", want: Ptr(12)},
		{in: "", want: nil},
		{in: "   ", want: nil},
		{in: "tiga", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := IntOrNil(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseIDs(t *testing.T) {
	ids, err := ParseIDs("4, 9,,12")
	require.NoError(t, err)
	assert.Equal(t, []int{4, 9, 12}, ids)

	ids, err = ParseIDs("")
	require.NoError(t, err)
	assert.Empty(t, ids)

	_, err = ParseIDs("4,x")
	assert.Error(t, err)
}

func TestOrZero(t *testing.T) {
	assert.Equal(t, 0, OrZero[int](nil))
	assert.Equal(t, 5, OrZero(Ptr(5)))
	assert.Nil(t, StringOrNil("  "))
	assert.Equal(t, "a", *StringOrNil(" a "))
}
