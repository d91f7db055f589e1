package rates

// ChartRange ventanas de la gráfica de cotizaciones.
type ChartRange string

const (
	Range7D   ChartRange = "7d"
	Range30D  ChartRange = "30d"
	Range90D  ChartRange = "90d"
	Range180D ChartRange = "180d"
	Range1Y   ChartRange = "1y"
)

// chartRangeDays días de cada ventana; "1y" son 255 días hábiles de
// publicación NBP, no 365 naturales.
var chartRangeDays = map[ChartRange]int{
	Range7D:   7,
	Range30D:  30,
	Range90D:  90,
	Range180D: 180,
	Range1Y:   255,
}

// DaysForRange traduce una ventana a número de días. false si no existe.
func DaysForRange(r ChartRange) (int, bool) {
	d, ok := chartRangeDays[r]
	return d, ok
}
