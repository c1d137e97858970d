package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumberAndString(t *testing.T) {
	n := Number(3.5)
	assert.True(t, n.IsNumber())
	assert.False(t, n.IsString())

	s := String("hi")
	assert.True(t, s.IsString())
	assert.False(t, s.IsNumber())
}

func TestTruthy(t *testing.T) {
	assert.False(t, Number(0).Truthy())
	assert.True(t, Number(1).Truthy())
	assert.True(t, Number(-1).Truthy())
	assert.False(t, String("").Truthy())
	assert.True(t, String("x").Truthy())
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "3", Format(3))
	assert.Equal(t, "-12", Format(-12))
	assert.Equal(t, "3.5", Format(3.5))
}

func TestZeroValueIsNumberZero(t *testing.T) {
	var v Value
	assert.True(t, v.IsNumber())
	assert.Equal(t, float64(0), v.Num)
	assert.False(t, v.Truthy())
}

func TestStringRendersRaw(t *testing.T) {
	assert.Equal(t, "hello", String("hello").String())
	assert.Equal(t, "7", Number(7).String())
}

func TestTypeName(t *testing.T) {
	assert.Equal(t, "number", Number(1).TypeName())
	assert.Equal(t, "string", String("a").TypeName())
}
