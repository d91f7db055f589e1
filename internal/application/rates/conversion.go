package rates

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cotizador-api/internal/domain/valuation"
)

// Las conversiones operan sobre la tabla actual en memoria, sin disparar
// red: el widget llama antes a Table(ctx) si quiere frescura. Código
// desconocido o caché vacía devuelven el importe sin tocar (fail-soft):
// los llamadores tratan "sin cotización" como "ya está en moneda base",
// nunca como error.

// Rate mid actual de un código. false si no hay tabla o el código no está.
func (s *Service) Rate(code string) (decimal.Decimal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.live == nil {
		return decimal.Decimal{}, false
	}
	return s.live.Rate(code)
}

// ToBase convierte un importe en la divisa indicada a la moneda base:
// round2(importe × mid). Identidad sobre la moneda base.
func (s *Service) ToBase(amount decimal.Decimal, code string) decimal.Decimal {
	if code == s.cfg.BaseCurrency {
		return amount
	}
	mid, ok := s.Rate(code)
	if !ok {
		return amount
	}
	return valuation.Round2(amount.Mul(mid))
}

// FromBase inversa de ToBase: round2(importe base / mid).
func (s *Service) FromBase(amountBase decimal.Decimal, code string) decimal.Decimal {
	if code == s.cfg.BaseCurrency {
		return amountBase
	}
	mid, ok := s.Rate(code)
	if !ok {
		return amountBase
	}
	return valuation.Round2(amountBase.Div(mid))
}
