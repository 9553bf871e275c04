package unitid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	cases := []struct {
		name        string
		equipmentID uint64
		sequence    uint64
		want        string
	}{
		{"первая единица оборудования 7", 7, 1, "070001"},
		{"вторая единица оборудования 7", 7, 2, "070002"},
		{"двузначный ID оборудования", 42, 17, "420017"},
		{"граница порядкового номера", 7, 9999, "079999"},
		{"порядковый номер перерастает разряд", 7, 10000, "07-10000"},
		{"ID оборудования перерастает разряд", 123, 1, "123-0001"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Format(tc.equipmentID, tc.sequence))
		})
	}
}

func TestSequence(t *testing.T) {
	seq, err := Sequence("070001")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), seq)

	seq, err = Sequence("420017")
	require.NoError(t, err)
	assert.Equal(t, uint64(17), seq)

	seq, err = Sequence("07-10000")
	require.NoError(t, err)
	assert.Equal(t, uint64(10000), seq)

	seq, err = Sequence("123-0001")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), seq)
}

// Разные пары (оборудование, порядковый номер) никогда не дают одинаковый
// инвентарный номер: слитная запись "1230456" читалась бы и как 12/30456,
// и как 123/456.
func TestFormatInjective(t *testing.T) {
	assert.NotEqual(t, Format(12, 30456), Format(123, 456))
	assert.NotEqual(t, Format(1, 23456), Format(12, 3456))
	assert.NotEqual(t, Format(100, 1), Format(10, 1))

	seen := make(map[string]struct{})
	for _, eq := range []uint64{1, 12, 99, 100, 123, 1234} {
		for _, seq := range []uint64{1, 456, 3456, 9999, 10000, 30456} {
			id := Format(eq, seq)
			_, dup := seen[id]
			require.Falsef(t, dup, "инвентарный номер %q выдан дважды", id)
			seen[id] = struct{}{}
		}
	}
}

func TestSequenceInvalid(t *testing.T) {
	_, err := Sequence("07")
	assert.Error(t, err)

	_, err = Sequence("07000x")
	assert.Error(t, err)
}

// Формат и разбор согласованы для всех номеров, не переросших разряд.
func TestFormatSequenceRoundTrip(t *testing.T) {
	for seq := uint64(1); seq <= 9999; seq += 487 {
		got, err := Sequence(Format(7, seq))
		require.NoError(t, err)
		assert.Equal(t, seq, got)
	}
}
