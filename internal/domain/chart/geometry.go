// Package chart construye la geometría de las gráficas de series (cursos de
// divisas, agregados mensuales): escalado a píxeles, curva suave, zonas de
// hover y tendencia. Es puro y determinista: devuelve datos estructurados,
// nunca marcado SVG/HTML; el render es problema de la capa de presentación.
package chart

import (
	"math"
	"strconv"
	"strings"
)

// tension constante de la interpolación Catmull-Rom → Bézier.
const tension = 0.3

// yPaddingRatio margen del 5% por arriba y por abajo del rango de valores.
const yPaddingRatio = 0.05

// minValueRange rango mínimo sustituto cuando todos los valores son iguales.
const minValueRange = 0.001

// ySteps número de tramos de la rejilla horizontal (ySteps+1 líneas).
const ySteps = 4

// maxXLabels máximo de etiquetas repartidas en el eje X.
const maxXLabels = 5

// Padding márgenes interiores del viewport, en píxeles.
type Padding struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// Viewport tamaño de destino en píxeles.
type Viewport struct {
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Padding Padding `json:"padding"`
}

// DefaultViewport el viewport que usa el widget de divisas.
func DefaultViewport() Viewport {
	return Viewport{
		Width:  520,
		Height: 220,
		Padding: Padding{Top: 12, Right: 16, Bottom: 36, Left: 52},
	}
}

// SeriesPoint punto de entrada: valor más su etiqueta (normalmente la fecha).
type SeriesPoint struct {
	Label string
	Value float64
}

// Point punto ya mapeado a coordenadas de pantalla.
type Point struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

// HoverZone rectángulo de interacción de un punto. Las zonas particionan el
// ancho interior sin huecos ni solapes, así el puntero siempre resuelve al
// punto más cercano.
type HoverZone struct {
	Index  int     `json:"index"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Tick marca de eje con su posición en píxeles.
type Tick struct {
	Pos   float64 `json:"pos"`
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

// TrendDirection clasificación presentacional primera-vs-última.
type TrendDirection string

const (
	TrendUp   TrendDirection = "up"
	TrendDown TrendDirection = "down"
)

// Trend variación de la serie entre el primer y el último valor.
// PctValid es false cuando el primer valor es 0 (variación porcentual
// indefinida; la UI no debe pintar 0%).
type Trend struct {
	Direction  TrendDirection `json:"direction"`
	Change     float64        `json:"change"`
	ChangePct  float64        `json:"change_pct"`
	PctValid   bool           `json:"pct_valid"`
	FirstValue float64        `json:"first_value"`
	LastValue  float64        `json:"last_value"`
}

// Geometry geometría completa de una serie: puntos, trazados, zonas de
// hover, rejilla y tendencia. Derivada, nunca persistida.
type Geometry struct {
	Points     []Point     `json:"points"`
	PathD      string      `json:"path_d"`  // curva suave, comandos M/C
	FillD      string      `json:"fill_d"`  // curva cerrada hasta la línea base
	HoverZones []HoverZone `json:"hover_zones"`
	YTicks     []Tick      `json:"y_ticks"`
	XTicks     []Tick      `json:"x_ticks"`
	YMin       float64     `json:"y_min"`
	YMax       float64     `json:"y_max"`
	Trend      Trend       `json:"trend"`
}

// Build mapea la serie al viewport y construye toda la geometría.
// Requiere n ≥ 1; con una serie vacía devuelve Geometry en cero (estado
// "sin datos"). Misma entrada → misma salida, byte a byte.
func Build(series []SeriesPoint, vp Viewport) Geometry {
	n := len(series)
	if n == 0 {
		return Geometry{}
	}

	innerW := vp.Width - vp.Padding.Left - vp.Padding.Right
	innerH := vp.Height - vp.Padding.Top - vp.Padding.Bottom
	baseline := vp.Padding.Top + innerH

	// ── Rango Y con 5% de margen; nunca rango cero ───────────────────────────
	minVal, maxVal := series[0].Value, series[0].Value
	for _, p := range series[1:] {
		minVal = math.Min(minVal, p.Value)
		maxVal = math.Max(maxVal, p.Value)
	}
	valRange := maxVal - minVal
	if valRange == 0 {
		valRange = minValueRange
	}
	yMin := minVal - valRange*yPaddingRatio
	yMax := maxVal + valRange*yPaddingRatio
	yRange := yMax - yMin

	// n=1 degenera a un único punto en el borde izquierdo (sin división por cero).
	denom := float64(n - 1)
	if denom == 0 {
		denom = 1
	}
	scaleX := func(i int) float64 {
		return vp.Padding.Left + float64(i)/denom*innerW
	}
	scaleY := func(v float64) float64 {
		return vp.Padding.Top + innerH - (v-yMin)/yRange*innerH
	}

	points := make([]Point, n)
	for i, p := range series {
		points[i] = Point{X: scaleX(i), Y: scaleY(p.Value), Value: p.Value, Label: p.Label}
	}

	g := Geometry{
		Points: points,
		YMin:   yMin,
		YMax:   yMax,
		PathD:  smoothPath(points),
		Trend:  trend(series),
	}
	g.FillD = closeFill(g.PathD, points, baseline)
	g.HoverZones = hoverZones(points, vp.Padding.Left, vp.Padding.Top, innerW, innerH)
	g.YTicks = yTicks(yMin, yRange, scaleY)
	g.XTicks = xTicks(series, scaleX)
	return g
}

// smoothPath traza una Bézier cúbica por tramo derivada de Catmull-Rom con
// tensión fija: pasa exactamente por cada punto y evita esquinas. En los
// extremos se reutiliza el punto frontera en lugar de extrapolar.
func smoothPath(points []Point) string {
	var b strings.Builder
	b.WriteString("M ")
	b.WriteString(coord(points[0].X))
	b.WriteByte(' ')
	b.WriteString(coord(points[0].Y))

	for i := 1; i < len(points); i++ {
		p0 := points[max(0, i-2)]
		p1 := points[i-1]
		p2 := points[i]
		p3 := points[min(len(points)-1, i+1)]

		cp1x := p1.X + (p2.X-p0.X)*tension
		cp1y := p1.Y + (p2.Y-p0.Y)*tension
		cp2x := p2.X - (p3.X-p1.X)*tension
		cp2y := p2.Y - (p3.Y-p1.Y)*tension

		b.WriteString(" C ")
		b.WriteString(coord(cp1x))
		b.WriteByte(' ')
		b.WriteString(coord(cp1y))
		b.WriteString(", ")
		b.WriteString(coord(cp2x))
		b.WriteByte(' ')
		b.WriteString(coord(cp2y))
		b.WriteString(", ")
		b.WriteString(coord(p2.X))
		b.WriteByte(' ')
		b.WriteString(coord(p2.Y))
	}
	return b.String()
}

// closeFill cierra la curva bajando a la línea base y volviendo al origen,
// para el sombreado de área.
func closeFill(pathD string, points []Point, baseline float64) string {
	last := points[len(points)-1]
	first := points[0]
	return pathD +
		" L " + coord(last.X) + " " + coord(baseline) +
		" L " + coord(first.X) + " " + coord(baseline) +
		" Z"
}

// hoverZones particiona el ancho interior: cada zona va del punto medio con
// el vecino izquierdo al punto medio con el derecho; en los extremos la zona
// es de medio ancho. Con un solo punto, la zona cubre todo el ancho.
func hoverZones(points []Point, left, top, innerW, innerH float64) []HoverZone {
	n := len(points)
	if n == 1 {
		return []HoverZone{{Index: 0, X: left, Y: top, Width: innerW, Height: innerH}}
	}
	slotW := innerW / float64(n-1)
	zones := make([]HoverZone, n)
	for i := range points {
		z := HoverZone{Index: i, Y: top, Height: innerH}
		switch i {
		case 0:
			z.X = left
			z.Width = slotW / 2
		case n - 1:
			z.X = points[i].X - slotW/2
			z.Width = slotW / 2
		default:
			z.X = points[i].X - slotW/2
			z.Width = slotW
		}
		zones[i] = z
	}
	return zones
}

func yTicks(yMin, yRange float64, scaleY func(float64) float64) []Tick {
	ticks := make([]Tick, 0, ySteps+1)
	for i := 0; i <= ySteps; i++ {
		val := yMin + yRange/ySteps*float64(i)
		ticks = append(ticks, Tick{
			Pos:   scaleY(val),
			Value: val,
			Label: strconv.FormatFloat(val, 'f', 4, 64),
		})
	}
	return ticks
}

// xTicks repartición de hasta 5 etiquetas a lo largo de la serie.
func xTicks(series []SeriesPoint, scaleX func(int) float64) []Tick {
	n := len(series)
	count := min(n, maxXLabels)
	denom := float64(count - 1)
	if denom == 0 {
		denom = 1
	}
	ticks := make([]Tick, 0, count)
	for i := 0; i < count; i++ {
		idx := int(math.Round(float64(i) * float64(n-1) / denom))
		ticks = append(ticks, Tick{
			Pos:   scaleX(idx),
			Value: series[idx].Value,
			Label: series[idx].Label,
		})
	}
	return ticks
}

// trend compara primer y último valor. Empate cuenta como "up" (sin cambio).
func trend(series []SeriesPoint) Trend {
	first := series[0].Value
	last := series[len(series)-1].Value
	t := Trend{
		Direction:  TrendDown,
		Change:     last - first,
		FirstValue: first,
		LastValue:  last,
	}
	if last >= first {
		t.Direction = TrendUp
	}
	if first != 0 {
		t.ChangePct = (last - first) / first * 100
		t.PctValid = true
	}
	return t
}

// coord formatea una coordenada con la mínima representación exacta, para
// que la geometría sea reproducible en tests de snapshot.
func coord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
