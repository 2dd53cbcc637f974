package video

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestID_CanonicalURL_Numeric(t *testing.T) {
	t.Parallel()

	for _, n := range []int64{0, 7, 170001, 9223372036854775807} {
		id := Numeric(n)
		name, value := id.QueryParam()
		require.Equal(t, "aid", name)
		require.Equal(t, "https://www.bilibili.com/video/av"+value, id.CanonicalURL())
	}
	require.Equal(t, "https://www.bilibili.com/video/av170001", Numeric(170001).CanonicalURL())
}

func TestID_CanonicalURL_CodedPreservesCase(t *testing.T) {
	t.Parallel()

	id := Coded("17x411w7KC")
	require.Equal(t, "https://www.bilibili.com/video/BV17x411w7KC", id.CanonicalURL())
	require.Equal(t, "BV17x411w7KC", id.String())

	name, value := id.QueryParam()
	require.Equal(t, "bvid", name)
	require.Equal(t, "17x411w7KC", value)
}

func TestID_ValueAccessors(t *testing.T) {
	t.Parallel()

	n, ok := Numeric(42).NumericValue()
	require.True(t, ok)
	require.Equal(t, int64(42), n)
	_, ok = Numeric(42).CodedValue()
	require.False(t, ok)

	code, ok := Coded("abc").CodedValue()
	require.True(t, ok)
	require.Equal(t, "abc", code)
	require.Equal(t, KindCoded, Coded("abc").Kind())
}

func TestID_UsableAsMapKey(t *testing.T) {
	t.Parallel()

	seen := map[ID]string{
		Numeric(1):  "numeric",
		Coded("1"):  "coded",
		Coded("xY"): "mixed",
	}
	require.Len(t, seen, 3)
	require.Equal(t, "numeric", seen[Numeric(1)])
	require.Equal(t, "coded", seen[Coded("1")])
}

func TestID_Compare(t *testing.T) {
	t.Parallel()

	require.Equal(t, -1, Numeric(1).Compare(Numeric(2)))
	require.Equal(t, 0, Numeric(2).Compare(Numeric(2)))
	require.Equal(t, 1, Numeric(3).Compare(Numeric(2)))
	require.Equal(t, -1, Numeric(99).Compare(Coded("a")))
	require.Equal(t, 1, Coded("b").Compare(Coded("a")))
}

func TestParseNumeric(t *testing.T) {
	t.Parallel()

	id, err := ParseNumeric("170001")
	require.NoError(t, err)
	require.Equal(t, Numeric(170001), id)

	for _, raw := range []string{"", "abc", "12x", "1.5"} {
		_, err := ParseNumeric(raw)
		require.Error(t, err, raw)
		require.True(t, errors.Is(err, ErrInvalidNumericID))
	}
}
