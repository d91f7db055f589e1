package dto

import "github.com/shopspring/decimal"

// StatusGroupDTO fila del desglose por estado del pipeline.
type StatusGroupDTO struct {
	Status      string          `json:"status"`
	Count       int             `json:"count"`
	TotalBrutto decimal.Decimal `json:"total_brutto"`
}

// MonthPointDTO punto de una serie mensual (YYYY-MM → importe).
type MonthPointDTO struct {
	Month string          `json:"month"`
	Total decimal.Decimal `json:"total"`
}

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
// Los KPIs y las series se recalculan en cada petición sobre los
// presupuestos y gastos vigentes; nada de esto se persiste.
type DashboardSummaryDTO struct {
	TotalQuotes     int             `json:"total_quotes"`
	ActiveValue     decimal.Decimal `json:"active_value"`     // brutto del pipeline sin rechazados
	ForecastRevenue decimal.Decimal `json:"forecast_revenue"` // brutto de aceptados + en ejecución

	ByStatus []StatusGroupDTO `json:"by_status"`

	// Series de los últimos meses, huecos a cero, mes actual incluido.
	MonthlyRevenue  []MonthPointDTO `json:"monthly_revenue"`
	MonthlyExpenses []MonthPointDTO `json:"monthly_expenses"`
	MonthlyProfit   []MonthPointDTO `json:"monthly_profit"`

	// Últimos presupuestos creados, más reciente primero.
	RecentQuotes []QuoteSummaryResponse `json:"recent_quotes"`
}
