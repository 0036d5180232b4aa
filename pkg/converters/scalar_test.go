package converters

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScalar(t *testing.T) {
	assert.Equal(t, int64(42), Scalar("42"))
	assert.Equal(t, int64(-7), Scalar("-7"))
	assert.Equal(t, 3.14, Scalar("3.14"))
	assert.Equal(t, 1.5e3, Scalar("1.5e3"))
	assert.Equal(t, "hello", Scalar("hello"))
	assert.Equal(t, "", Scalar(""))
	assert.Equal(t, "  ", Scalar("  "))
	assert.Equal(t, int64(10), Scalar(" 10 "))
}

func TestNumeric(t *testing.T) {
	assert.True(t, Numeric("42"))
	assert.True(t, Numeric("3.14"))
	assert.True(t, Numeric("-1"))
	assert.False(t, Numeric("abc"))
	assert.False(t, Numeric(""))
	assert.False(t, Numeric("  "))
	assert.False(t, Numeric("12x"))
}

func TestNumericColumn(t *testing.T) {
	assert.True(t, NumericColumn([]string{"1", "2", "3"}))
	assert.True(t, NumericColumn([]string{"1", "", "3"}))
	assert.False(t, NumericColumn([]string{"1", "x", "3"}))
	assert.False(t, NumericColumn([]string{"", "", ""}))
	assert.False(t, NumericColumn([]string{}))
}

func TestScalars(t *testing.T) {
	assert.Equal(t, []any{int64(1), "a", 2.5}, Scalars([]string{"1", "a", "2.5"}))
	assert.Empty(t, Scalars(nil))
}

func TestNumericScalars(t *testing.T) {
	assert.Equal(t, []any{int64(1), nil, 2.5}, NumericScalars([]string{"1", "", "2.5"}))
}
