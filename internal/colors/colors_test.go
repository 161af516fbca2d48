package colors

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		token string
		want  string
		ok    bool
	}{
		{"red", "#ff0000", true},
		{"RED", "#ff0000", true},
		{"Grey", "#808080", true},
		{"brown", "#363027", true},
		{"saddlebrown", "#8b4513", true},
		{"#12AbEf", "#12AbEf", true},
		{"#abc", "#abc", true},
		{"chartreuse", Fallback, false},
		{"", Fallback, false},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, ok := Resolve(tt.token)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestResolveIdempotent(t *testing.T) {
	for _, token := range []string{"red", "navy", "#00ff00", "no-such-color"} {
		first, _ := Resolve(token)
		second, _ := Resolve(first)
		assert.Equal(t, first, second, token)

		again, _ := Resolve(token)
		assert.Equal(t, first, again, token)
	}
}

func TestTableIsLowercaseHex(t *testing.T) {
	assert.Len(t, named, 31)
	for name, hex := range named {
		assert.Len(t, hex, 7, name)
		_, err := Decode(hex)
		assert.NoError(t, err, name)
	}
}

func TestDecode(t *testing.T) {
	c, err := Decode("#ff8000")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0xff, G: 0x80, B: 0x00, A: 0xff}, c)

	c, err = Decode("#C0C0C0")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0xc0, G: 0xc0, B: 0xc0, A: 0xff}, c)

	_, err = Decode("#zzzzzz")
	assert.Error(t, err)

	_, err = Decode("red")
	assert.Error(t, err)
}
