package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemKind tipo de una línea de presupuesto: material o mano de obra.
type ItemKind string

const (
	ItemKindMaterial ItemKind = "material"
	ItemKindLabor    ItemKind = "labor"
)

// QuoteStatus estados del pipeline comercial de un presupuesto.
type QuoteStatus string

const (
	StatusDraft      QuoteStatus = "draft"       // en preparación (wycena)
	StatusSent       QuoteStatus = "sent"        // enviado al cliente
	StatusAccepted   QuoteStatus = "accepted"    // aceptado
	StatusRejected   QuoteStatus = "rejected"    // rechazado
	StatusInProgress QuoteStatus = "in_progress" // en ejecución
	StatusDone       QuoteStatus = "done"        // finalizado
)

// AllStatuses orden fijo de los estados para agrupaciones y dashboards.
var AllStatuses = []QuoteStatus{
	StatusDraft, StatusSent, StatusAccepted, StatusRejected, StatusInProgress, StatusDone,
}

// ActiveStatuses estados que cuentan como pipeline activo (todo menos rechazado).
var ActiveStatuses = []QuoteStatus{
	StatusDraft, StatusSent, StatusAccepted, StatusInProgress, StatusDone,
}

// RevenueStatuses estados cuyo brutto cuenta como ingreso previsto.
var RevenueStatuses = []QuoteStatus{StatusAccepted, StatusInProgress}

// Valid indica si el estado pertenece a la enumeración.
func (s QuoteStatus) Valid() bool {
	for _, v := range AllStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// LineItem línea de un presupuesto. Pertenece en exclusiva a su Quote;
// la identidad es inmutable, cantidad/precio/notas son editables.
type LineItem struct {
	ID             string
	QuoteID        string
	Kind           ItemKind
	SourceID       string // ref al catálogo de materiales/robocizna; vacío si es línea libre
	Name           string
	Unit           string // m2, m, szt, godz, kpl, mb, opak
	Quantity       decimal.Decimal
	UnitPriceNetto decimal.Decimal
	VATRate        decimal.Decimal // porcentaje, ej. 23
	Notes          string
	Position       int // orden dentro del presupuesto
}

// Quote presupuesto/cotización con sus líneas y narzut (markup) por tipo.
//
// Invariante: los totales son SIEMPRE función pura de Items + los dos
// porcentajes de markup. Nunca se persiste un total derivado; cualquier
// mutación de una línea o de un markup invalida totales calculados antes.
type Quote struct {
	ID              string
	Name            string
	ClientID        string
	ClientName      string
	Status          QuoteStatus
	Notes           string
	MarkupMaterials decimal.Decimal // porcentaje sobre materiales
	MarkupLabor     decimal.Decimal // porcentaje sobre mano de obra
	DateStart       string          // YYYY-MM-DD o ""
	DateEnd         string          // YYYY-MM-DD o ""
	Tags            []string
	Items           []LineItem
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// MarkupFor devuelve el porcentaje de markup aplicable al tipo de línea.
func (q *Quote) MarkupFor(kind ItemKind) decimal.Decimal {
	if kind == ItemKindMaterial {
		return q.MarkupMaterials
	}
	return q.MarkupLabor
}
