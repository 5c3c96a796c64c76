package timeseries

// Fundamentals holds the per-quarter inputs to the valuation ratios. A nil
// field means the provider had no figure for that quarter.
type Fundamentals struct {
	NetIncome         *float64
	EBITDA            *float64
	TangibleBookValue *float64
	SharesOutstanding *float64
	TotalDebt         *float64
	Cash              *float64
	AvgPrice          *float64 // quarter-average daily close
}

// Valuation carries the three ratios for one quarter. A nil ratio is
// undefined (stored as null, never omitted once any ratio is computable).
type Valuation struct {
	PER      *float64
	PBR      *float64
	EVEBITDA *float64
}

// Defined reports whether at least one ratio could be computed.
func (v Valuation) Defined() bool {
	return v.PER != nil || v.PBR != nil || v.EVEBITDA != nil
}

// ComputeValuation derives PER, PBR and EV/EBITDA from quarterly fundamentals.
// Each ratio is defined only when its inputs are present and its denominator
// is strictly positive, so a zero share count or negative EPS yields null
// rather than a division blow-up.
func ComputeValuation(f Fundamentals) Valuation {
	var v Valuation
	if f.AvgPrice == nil {
		return v
	}
	price := *f.AvgPrice

	if f.SharesOutstanding != nil && *f.SharesOutstanding > 0 {
		shares := *f.SharesOutstanding

		if f.NetIncome != nil {
			if eps := *f.NetIncome / shares; eps > 0 {
				per := price / eps
				v.PER = &per
			}
		}

		if f.TangibleBookValue != nil {
			if bps := *f.TangibleBookValue / shares; bps > 0 {
				pbr := price / bps
				v.PBR = &pbr
			}
		}

		if f.EBITDA != nil && *f.EBITDA > 0 && f.TotalDebt != nil && f.Cash != nil {
			ev := price*shares + *f.TotalDebt - *f.Cash
			ratio := ev / *f.EBITDA
			v.EVEBITDA = &ratio
		}
	}

	return v
}
