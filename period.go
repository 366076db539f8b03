package main

import (
	"fmt"
	"time"

	"github.com/flockbooks/flockbooks/api"
)

type Period struct {
	start time.Time
	end   time.Time
}

func (p *Period) String() string {
	return fmt.Sprintf("%s - %s", p.start.Format(api.DateLayout), p.end.Format(api.DateLayout))
}

// rng is the period as a backend date filter.
func (p *Period) rng() api.Range {
	return api.Range{From: p.start, To: p.end}
}

// setPeriod moves p to the month, calendar year or fiscal year containing
// current. Fiscal years begin on the first of fiscalStart.
func (p *Period) setPeriod(current time.Time, periodType string, fiscalStart time.Month) {
	loc := current.Location()

	switch periodType {
	case annualPeriodType:
		p.start = time.Date(current.Year(), 1, 1, 0, 0, 0, 0, loc)
		p.end = time.Date(current.Year()+1, 1, 1, 0, 0, 0, 0, loc).Add(-time.Second)
	case fiscalPeriodType:
		if fiscalStart < time.January || fiscalStart > time.December {
			fiscalStart = time.April
		}
		year := current.Year()
		if current.Month() < fiscalStart {
			year--
		}
		p.start = time.Date(year, fiscalStart, 1, 0, 0, 0, 0, loc)
		p.end = p.start.AddDate(1, 0, 0).Add(-time.Second)
	default:
		// default to month
		p.start = time.Date(current.Year(), current.Month(), 1, 0, 0, 0, 0, loc)
		p.end = time.Date(current.Year(), current.Month()+1, 1, 0, 0, 0, 0, loc).Add(-time.Second)
	}
}

// label is the short title form: "Apr 2025", "2025" or "FY 2025-26".
func (p *Period) label(periodType string) string {
	switch periodType {
	case annualPeriodType:
		return p.start.Format("2006")
	case fiscalPeriodType:
		return fmt.Sprintf("FY %d-%02d", p.start.Year(), (p.start.Year()+1)%100)
	}
	return p.start.Format("Jan 2006")
}

// nextPeriodType cycles month -> year -> fiscal -> month.
func nextPeriodType(periodType string) string {
	switch periodType {
	case monthlyPeriodType:
		return annualPeriodType
	case annualPeriodType:
		return fiscalPeriodType
	}
	return monthlyPeriodType
}

// shiftPeriod moves current by one period in direction dir (+1 or -1).
func shiftPeriod(current time.Time, periodType string, dir int) time.Time {
	if periodType == monthlyPeriodType {
		return current.AddDate(0, dir, 0)
	}
	return current.AddDate(dir, 0, 0)
}
