package chart_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cotizador-api/internal/domain/chart"
)

func series(values ...float64) []chart.SeriesPoint {
	s := make([]chart.SeriesPoint, len(values))
	for i, v := range values {
		s[i] = chart.SeriesPoint{Label: "p", Value: v}
	}
	return s
}

func TestBuild_SerieVacia(t *testing.T) {
	g := chart.Build(nil, chart.DefaultViewport())

	assert.Empty(t, g.Points, "serie vacía: estado sin datos")
	assert.Empty(t, g.PathD)
}

// Con un solo punto todo mapea al borde izquierdo, sin división por cero.
func TestBuild_PuntoUnico(t *testing.T) {
	vp := chart.DefaultViewport()
	g := chart.Build(series(4.30), vp)

	require.Len(t, g.Points, 1)
	assert.Equal(t, vp.Padding.Left, g.Points[0].X, "único punto en el borde izquierdo")

	require.Len(t, g.HoverZones, 1)
	innerW := vp.Width - vp.Padding.Left - vp.Padding.Right
	assert.Equal(t, vp.Padding.Left, g.HoverZones[0].X)
	assert.Equal(t, innerW, g.HoverZones[0].Width, "la única zona cubre todo el ancho")
}

// Con todos los valores iguales el eje Y nunca colapsa: yMin < yMax estricto.
func TestBuild_ValoresIgualesRangoNoNulo(t *testing.T) {
	g := chart.Build(series(2.5, 2.5, 2.5, 2.5), chart.DefaultViewport())

	assert.Less(t, g.YMin, g.YMax, "rango Y estrictamente positivo")
	for _, p := range g.Points {
		assert.False(t, p.Y != p.Y, "sin NaN en coordenadas") // NaN != NaN
	}
}

// Las zonas de hover particionan el ancho interior: contiguas, sin huecos ni
// solapes, para cualquier n ≥ 1.
func TestBuild_ZonasHoverParticionanElAncho(t *testing.T) {
	vp := chart.DefaultViewport()
	innerW := vp.Width - vp.Padding.Left - vp.Padding.Right

	for _, n := range []int{1, 2, 3, 5, 30, 255} {
		vals := make([]float64, n)
		for i := range vals {
			vals[i] = float64(i%7) + 0.5
		}
		g := chart.Build(series(vals...), vp)

		require.Lenf(t, g.HoverZones, n, "n=%d: una zona por punto", n)

		assert.InDeltaf(t, vp.Padding.Left, g.HoverZones[0].X, 1e-9, "n=%d: arranca en el borde", n)
		total := 0.0
		for i, z := range g.HoverZones {
			total += z.Width
			if i > 0 {
				prev := g.HoverZones[i-1]
				assert.InDeltaf(t, prev.X+prev.Width, z.X, 1e-9, "n=%d: zona %d contigua", n, i)
			}
		}
		assert.InDeltaf(t, innerW, total, 1e-9, "n=%d: las zonas suman el ancho interior", n)
	}
}

// La curva pasa exactamente por cada punto: el path contiene cada ancla.
func TestBuild_CurvaSuaveDeterminista(t *testing.T) {
	g1 := chart.Build(series(4.1, 4.5, 4.3, 4.8, 4.6), chart.DefaultViewport())
	g2 := chart.Build(series(4.1, 4.5, 4.3, 4.8, 4.6), chart.DefaultViewport())

	assert.Equal(t, g1.PathD, g2.PathD, "misma entrada, mismo path")
	assert.Equal(t, g1.FillD, g2.FillD)
	assert.Contains(t, g1.PathD, "M ", "path empieza con move-to")
	assert.Contains(t, g1.PathD, " C ", "tramos Bézier cúbicos")
	assert.Contains(t, g1.FillD, " Z", "el área se cierra")

	// Un path de n puntos lleva n−1 tramos C.
	assert.Equal(t, 4, strings.Count(g1.PathD, " C "), "n−1 tramos")
}

func TestBuild_EscaladoYInvertido(t *testing.T) {
	g := chart.Build(series(1.0, 3.0), chart.DefaultViewport())

	require.Len(t, g.Points, 2)
	// Valor mayor → Y menor (eje invertido de pantalla).
	assert.Greater(t, g.Points[0].Y, g.Points[1].Y, "el máximo queda más arriba")
}

func TestBuild_Tendencia(t *testing.T) {
	up := chart.Build(series(4.0, 4.2, 4.4), chart.DefaultViewport())
	assert.Equal(t, chart.TrendUp, up.Trend.Direction)
	require.True(t, up.Trend.PctValid)
	assert.InDelta(t, 10.0, up.Trend.ChangePct, 1e-9, "variación +10%")

	down := chart.Build(series(4.4, 4.0), chart.DefaultViewport())
	assert.Equal(t, chart.TrendDown, down.Trend.Direction)

	// Primer valor 0: variación porcentual indefinida, nunca Inf/NaN.
	zero := chart.Build(series(0, 5), chart.DefaultViewport())
	assert.False(t, zero.Trend.PctValid, "con primer valor 0 el % no aplica")
	assert.Zero(t, zero.Trend.ChangePct)
}

func TestBuild_RejillaYEtiquetas(t *testing.T) {
	g := chart.Build(series(1, 2, 3, 4, 5, 6, 7, 8, 9, 10), chart.DefaultViewport())

	assert.Len(t, g.YTicks, 5, "ySteps+1 líneas de rejilla")
	assert.Len(t, g.XTicks, 5, "máximo 5 etiquetas X")
	assert.Equal(t, g.YMin, g.YTicks[0].Value)
	assert.InDelta(t, g.YMax, g.YTicks[len(g.YTicks)-1].Value, 1e-9)
}
