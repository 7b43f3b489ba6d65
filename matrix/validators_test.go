package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/qsearch/matrix"
)

func TestValidateDistance(t *testing.T) {
	cases := []struct {
		name string
		rows [][]float64
		want error
	}{
		{"ok", [][]float64{{0, 1, 2}, {1, 0, 3}, {2, 3, 0}}, nil},
		{"negative", [][]float64{{0, -1}, {-1, 0}}, matrix.ErrNegative},
		{"diagonal", [][]float64{{1, 1}, {1, 0}}, matrix.ErrNonZeroDiagonal},
		{"asymmetric", [][]float64{{0, 1}, {2, 0}}, matrix.ErrAsymmetry},
		{"non-square", [][]float64{{0, 1, 2}, {1, 0, 2}}, matrix.ErrDimensionMismatch},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := matrix.NewDenseFromRows(tc.rows)
			require.NoError(t, err)

			n, err := matrix.ValidateDistance(m, 1e-12)
			if tc.want == nil {
				require.NoError(t, err)
				require.Equal(t, len(tc.rows), n)
				return
			}
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestValidateDistance_Nil(t *testing.T) {
	_, err := matrix.ValidateDistance(nil, 0)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestValidateSymmetric_Tolerance(t *testing.T) {
	m, err := matrix.NewDenseFromRows([][]float64{{0, 1}, {1.0005, 0}})
	require.NoError(t, err)
	require.ErrorIs(t, matrix.ValidateSymmetric(m, 1e-6), matrix.ErrAsymmetry)
	require.NoError(t, matrix.ValidateSymmetric(m, 1e-3))
}
