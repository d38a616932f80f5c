package growth

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/iwvelando/advisor-forecast/pkg/constants"
)

// Instrument is anything with a value that evolves year over year.
type Instrument interface {
	GetName() string
	GetStartYear() int
	IsLiability() bool
	// ValueAt returns the value in the given calendar year; 0 means the
	// instrument does not contribute that year.
	ValueAt(year int) float64
}

// Entry is one instrument's value in a given year.
type Entry struct {
	Name      string  `json:"name"`
	Value     float64 `json:"value"`
	Liability bool    `json:"liability"`
}

// Row holds every contributing instrument for one year.
type Row struct {
	Year        int     `json:"year"`
	Entries     []Entry `json:"entries"`
	Assets      float64 `json:"assets"`
	Liabilities float64 `json:"liabilities"`
}

// Net returns assets minus liabilities for the row.
func (r Row) Net() float64 {
	return r.Assets - r.Liabilities
}

// SeriesGenerator builds yearly projection tables.
type SeriesGenerator struct {
	logger *zap.Logger
}

// NewSeriesGenerator creates a new generator instance
func NewSeriesGenerator(logger *zap.Logger) *SeriesGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SeriesGenerator{logger: logger}
}

// Generate produces one row per year from the earliest start year across
// instruments to horizonYear inclusive. Instruments with a zero value in a
// year are left out of that row, and years where nothing contributes are
// omitted. At most constants.MaxSeriesYears rows ending at horizonYear are
// considered.
func (g *SeriesGenerator) Generate(instruments []Instrument, horizonYear int) []Row {
	if len(instruments) == 0 {
		return nil
	}

	startYear := 0
	for i, inst := range instruments {
		if i == 0 || inst.GetStartYear() < startYear {
			startYear = inst.GetStartYear()
		}
	}
	if startYear > horizonYear {
		g.logger.Debug(fmt.Sprintf("earliest start year %d is after horizon %d, no rows generated",
			startYear, horizonYear),
			zap.String("op", "growth.Generate"),
		)
		return nil
	}

	if horizonYear-startYear+1 > constants.MaxSeriesYears {
		capped := horizonYear - constants.MaxSeriesYears + 1
		g.logger.Warn(fmt.Sprintf("timeline from %d to %d spans more than %d years, starting at %d",
			startYear, horizonYear, constants.MaxSeriesYears, capped),
			zap.String("op", "growth.Generate"),
		)
		startYear = capped
	}

	rows := make([]Row, 0, horizonYear-startYear+1)
	paidOff := make(map[int]bool)
	for year := startYear; year <= horizonYear; year++ {
		row := Row{Year: year}
		for i, inst := range instruments {
			if year < inst.GetStartYear() || paidOff[i] {
				continue
			}
			value := inst.ValueAt(year)
			if value == 0 {
				if inst.IsLiability() {
					g.logger.Debug(fmt.Sprintf("%d: debt %s is paid off", year, inst.GetName()),
						zap.String("op", "growth.Generate"),
					)
					paidOff[i] = true
				}
				continue
			}
			row.Entries = append(row.Entries, Entry{Name: inst.GetName(), Value: value, Liability: inst.IsLiability()})
			if inst.IsLiability() {
				row.Liabilities += value
			} else {
				row.Assets += value
			}
		}
		if len(row.Entries) > 0 {
			rows = append(rows, row)
		}
	}
	return rows
}
