package render

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KunBuFenZi/PicNezha/internal/errors"
)

func TestProgressBar_Regime(t *testing.T) {
	tests := []struct {
		name  string
		width float64
		value float64
		want  Regime
	}{
		{"empty", BarWidth, 0, RegimeSliver},
		{"tiny", BarWidth, 3, RegimeSliver},
		{"just under threshold", BarWidth, 4.99, RegimeSliver},
		{"at threshold", BarWidth, 5, RegimeCapsule},
		{"half", BarWidth, 50, RegimeCapsule},
		{"overflowing", BarWidth, 150, RegimeCapsule},
		{"negative", BarWidth, -2, RegimeSliver},
		{"wide bar under threshold", 400, 4, RegimeCapsule},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := ProgressBar{X: 0, Y: 0, Width: tt.width, Value: tt.value}
			assert.Equal(t, tt.want, b.Regime())
		})
	}
}

func TestProgressBar_CapsuleRightEdge(t *testing.T) {
	for v := 5.0; v <= 100; v += 0.5 {
		b := ProgressBar{X: 235, Y: 12, Width: BarWidth, Value: v}
		p, err := b.Fill()
		require.NoError(t, err)

		minX, minY, maxX, maxY := p.Bounds()
		assert.InDelta(t, 235.0, minX, 1e-9, "value %v", v)
		assert.InDelta(t, 235+BarWidth*v/100, maxX, 1e-9, "value %v", v)
		assert.InDelta(t, 12.0, minY, 1e-9, "value %v", v)
		assert.InDelta(t, 12+BarHeight, maxY, 1e-9, "value %v", v)
	}
}

func TestProgressBar_SliverRightEdge(t *testing.T) {
	for v := 0.0; v < 5; v += 0.25 {
		b := ProgressBar{X: 235, Y: 12, Width: BarWidth, Value: v}
		require.Equal(t, RegimeSliver, b.Regime())

		p, err := b.Fill()
		require.NoError(t, err)
		require.True(t, p.Finite(), "value %v", v)

		minX, minY, maxX, maxY := p.Bounds()
		assert.InDelta(t, 235.0, minX, 1e-9, "value %v", v)
		assert.InDelta(t, 235+b.FillWidth(), maxX, 1e-9, "value %v", v)
		// The sliver stays inside the track.
		assert.GreaterOrEqual(t, minY, 12.0-1e-9)
		assert.LessOrEqual(t, maxY, 12+BarHeight+1e-9)
	}
}

func TestProgressBar_ContinuousAtThreshold(t *testing.T) {
	below := ProgressBar{Width: BarWidth, Value: 4.999}
	at := ProgressBar{Width: BarWidth, Value: 5}

	pb, err := below.Fill()
	require.NoError(t, err)
	pa, err := at.Fill()
	require.NoError(t, err)

	_, _, maxBelow, _ := pb.Bounds()
	_, _, maxAt, _ := pa.Bounds()
	assert.InDelta(t, maxAt, maxBelow, 0.01)
}

func TestProgressBar_SliverShrinksToPoint(t *testing.T) {
	b := ProgressBar{X: 50, Y: 40, Width: BarWidth, Value: 0}
	p, err := b.Fill()
	require.NoError(t, err)

	minX, minY, maxX, maxY := p.Bounds()
	assert.InDelta(t, 0, maxX-minX, 1e-9)
	assert.InDelta(t, 0, maxY-minY, 1e-9)
	assert.InDelta(t, 50, minX, 1e-9)
	assert.InDelta(t, 40+BarHeight/2, minY, 1e-9)
}

func TestProgressBar_NegativeValueIsEmpty(t *testing.T) {
	b := ProgressBar{X: 10, Y: 0, Width: BarWidth, Value: -3}
	p, err := b.Fill()
	require.NoError(t, err)

	_, _, maxX, _ := p.Bounds()
	assert.InDelta(t, 10, maxX, 1e-9)
}

func TestProgressBar_Overflow(t *testing.T) {
	b := ProgressBar{X: 0, Y: 0, Width: BarWidth, Value: 150}
	p, err := b.Fill()
	require.NoError(t, err)

	_, _, maxX, _ := p.Bounds()
	assert.InDelta(t, 180, maxX, 1e-9, "values above 100 overflow the track")
}

func TestProgressBar_NonFiniteInput(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		b := ProgressBar{Width: BarWidth, Value: v}
		_, err := b.Fill()
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrGeometry))
	}
}

func TestProgressBar_Track(t *testing.T) {
	b := ProgressBar{X: 235, Y: 42, Width: BarWidth, Value: 1}
	minX, minY, maxX, maxY := b.Track().Bounds()

	assert.InDelta(t, 235, minX, 1e-9)
	assert.InDelta(t, 42, minY, 1e-9)
	assert.InDelta(t, 355, maxX, 1e-9)
	assert.InDelta(t, 57, maxY, 1e-9)
}

func TestProgressBar_Label(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{0, "0%"},
		{3, "3%"},
		{49.5, "50%"},
		{99.4, "99%"},
		{123.7, "124%"},
	}

	for _, tt := range tests {
		b := ProgressBar{Width: BarWidth, Value: tt.value}
		assert.Equal(t, tt.want, b.Label())
	}

	at := ProgressBar{X: 235, Y: 12, Width: BarWidth}.LabelPoint()
	assert.Equal(t, Point{X: 360, Y: 24}, at)
}

func TestRegime_String(t *testing.T) {
	assert.Equal(t, "capsule", RegimeCapsule.String())
	assert.Equal(t, "sliver", RegimeSliver.String())
	assert.Equal(t, "Regime(7)", Regime(7).String())
}
