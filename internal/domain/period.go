package domain

import (
	"fmt"
	"strings"
	"time"
)

// Period is the view-level window applied to time series slices of an
// analysis result. Windowing is relative to the last date in the series, not
// wall-clock now, so historical snapshots filter consistently.
type Period string

const (
	Period_1M  Period = "1M"
	Period_3M  Period = "3M"
	Period_6M  Period = "6M"
	Period_YTD Period = "YTD"
	Period_1Y  Period = "1Y"
	Period_5Y  Period = "5Y"
	Period_All Period = "ALL"
)

func NewPeriod(s string) (*Period, error) {
	if s == "" {
		p := Period_All
		return &p, nil
	}
	p := Period(strings.ToUpper(strings.TrimSpace(s)))
	switch p {
	case Period_1M, Period_3M, Period_6M, Period_YTD, Period_1Y, Period_5Y, Period_All:
		return &p, nil
	}
	return nil, fmt.Errorf("unknown period %q", s)
}

// Start returns the inclusive lower bound of the window ending at last.
func (p Period) Start(last time.Time) time.Time {
	switch p {
	case Period_1M:
		return last.AddDate(0, -1, 0)
	case Period_3M:
		return last.AddDate(0, -3, 0)
	case Period_6M:
		return last.AddDate(0, -6, 0)
	case Period_YTD:
		return time.Date(last.Year(), time.January, 1, 0, 0, 0, 0, last.Location())
	case Period_1Y:
		return last.AddDate(-1, 0, 0)
	case Period_5Y:
		return last.AddDate(-5, 0, 0)
	}
	return time.Time{}
}

// Dated is any series point that carries a calendar date.
type Dated interface {
	PointDate() Date
}

func (p PerformancePoint) PointDate() Date { return p.Date }
func (p RiskPoint) PointDate() Date        { return p.Date }
func (p DrawdownPoint) PointDate() Date    { return p.Date }

// Window slices a date-ordered series down to the requested period.
func Window[T Dated](points []T, p Period) []T {
	if p == Period_All || len(points) == 0 {
		return points
	}
	start := p.Start(points[len(points)-1].PointDate().Time)
	for i, point := range points {
		if !point.PointDate().Before(start) {
			return points[i:]
		}
	}
	return []T{}
}
