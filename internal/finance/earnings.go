// Package finance derives per-route and period earnings from rates,
// sold-for amounts and driver commission percentages.
package finance

import (
	"github.com/shopspring/decimal"

	"truck_dispatch/internal/models"
)

var hundred = decimal.NewFromInt(100)

// GrossDifference is rate minus sold-for, or zero when the route was not sold.
func GrossDifference(rate decimal.Decimal, soldFor decimal.NullDecimal) decimal.Decimal {
	if !soldFor.Valid {
		return decimal.Zero
	}
	return rate.Sub(soldFor.Decimal)
}

// PercentageIncome is the driver's share of the sold-for amount.
func PercentageIncome(soldFor decimal.NullDecimal, driverPercentage decimal.Decimal) decimal.Decimal {
	if !soldFor.Valid {
		return decimal.Zero
	}
	return soldFor.Decimal.Mul(driverPercentage).Div(hundred).Round(2)
}

// TotalEarnings is GrossDifference plus PercentageIncome.
func TotalEarnings(rate decimal.Decimal, soldFor decimal.NullDecimal, driverPercentage decimal.Decimal) decimal.Decimal {
	return GrossDifference(rate, soldFor).Add(PercentageIncome(soldFor, driverPercentage))
}

// RouteEarnings holds the figures for one route.
type RouteEarnings struct {
	RouteID          uint                `json:"route_id"`
	DriverID         uint                `json:"driver_id"`
	Date             models.Date         `json:"date"`
	Rate             decimal.Decimal     `json:"rate"`
	SoldFor          decimal.NullDecimal `json:"sold_for"`
	GrossDifference  decimal.Decimal     `json:"gross_difference"`
	PercentageIncome decimal.Decimal     `json:"percentage_income"`
	TotalEarnings    decimal.Decimal     `json:"total_earnings"`
}

// Summary aggregates RouteEarnings over a set of routes.
type Summary struct {
	Routes                []RouteEarnings `json:"routes"`
	TotalRate             decimal.Decimal `json:"total_rate"`
	TotalSoldFor          decimal.Decimal `json:"total_sold_for"`
	TotalGrossDifference  decimal.Decimal `json:"total_gross_difference"`
	TotalPercentageIncome decimal.Decimal `json:"total_percentage_income"`
	TotalEarnings         decimal.Decimal `json:"total_earnings"`
}

// ForRoute computes the earnings of a single route.
func ForRoute(r models.Route, driverPercentage decimal.Decimal) RouteEarnings {
	gross := GrossDifference(r.Rate, r.SoldFor)
	pct := PercentageIncome(r.SoldFor, driverPercentage)
	return RouteEarnings{
		RouteID:          r.ID,
		DriverID:         r.DriverID,
		Date:             r.Date,
		Rate:             r.Rate,
		SoldFor:          r.SoldFor,
		GrossDifference:  gross,
		PercentageIncome: pct,
		TotalEarnings:    gross.Add(pct),
	}
}

// Summarize sums the earnings of routes. Drivers missing from percentages
// earn no percentage income.
func Summarize(routes []models.Route, percentages map[uint]decimal.Decimal) Summary {
	s := Summary{
		Routes:                make([]RouteEarnings, 0, len(routes)),
		TotalRate:             decimal.Zero,
		TotalSoldFor:          decimal.Zero,
		TotalGrossDifference:  decimal.Zero,
		TotalPercentageIncome: decimal.Zero,
		TotalEarnings:         decimal.Zero,
	}
	for _, r := range routes {
		e := ForRoute(r, percentages[r.DriverID])
		s.Routes = append(s.Routes, e)
		s.TotalRate = s.TotalRate.Add(e.Rate)
		if e.SoldFor.Valid {
			s.TotalSoldFor = s.TotalSoldFor.Add(e.SoldFor.Decimal)
		}
		s.TotalGrossDifference = s.TotalGrossDifference.Add(e.GrossDifference)
		s.TotalPercentageIncome = s.TotalPercentageIncome.Add(e.PercentageIncome)
		s.TotalEarnings = s.TotalEarnings.Add(e.TotalEarnings)
	}
	return s
}
