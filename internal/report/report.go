// Package report filters the exported contact dataset by period, attendant
// and course, and computes the four dashboard summaries. Rendering is left
// to callers.
package report

import (
	"sort"
	"strings"
	"time"

	"github.com/fisk/followup/internal/models"
	"github.com/fisk/followup/internal/normalize"
	"github.com/fisk/followup/internal/store"
)

type Period string

const (
	Last7Days  Period = "7_days"
	Last15Days Period = "15_days"
	Last30Days Period = "30_days"
	Last60Days Period = "60_days"
	Last90Days Period = "90_days"
	ThisMonth  Period = "this_month"
	Custom     Period = "custom"
)

var lookback = map[Period]int{
	Last7Days:  7,
	Last15Days: 15,
	Last30Days: 30,
	Last60Days: 60,
	Last90Days: 90,
}

// Periods lists every accepted period key in menu order.
var Periods = []Period{Last7Days, Last15Days, Last30Days, Last60Days, Last90Days, ThisMonth, Custom}

// Criteria is one report request. Start and End are only read for Custom.
type Criteria struct {
	Period    Period
	Start     string
	End       string
	Attendant string
	Course    string
	Today     time.Time // calendar date; zero means the current UTC date
}

// Window is the resolved date range. From is inclusive and optional; To is
// inclusive and always set.
type Window struct {
	From    time.Time
	HasFrom bool
	To      time.Time
}

// Contains reports whether day falls inside the window. The upper bound is
// compared as "before the next day".
func (w Window) Contains(day time.Time) bool {
	if w.HasFrom && day.Before(w.From) {
		return false
	}
	return day.Before(w.To.AddDate(0, 0, 1))
}

// Resolve turns a period key into a date window.
func Resolve(c Criteria) (Window, error) {
	today := c.Today
	if today.IsZero() {
		today = normalize.Day(time.Now(), time.UTC)
	}
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	if n, ok := lookback[c.Period]; ok {
		return Window{From: today.AddDate(0, 0, -n), HasFrom: true, To: today}, nil
	}
	switch c.Period {
	case ThisMonth:
		first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
		return Window{From: first, HasFrom: true, To: today}, nil
	case Custom:
		w := Window{To: today}
		if s := strings.TrimSpace(c.Start); s != "" {
			d, ok := normalize.ParseDate(s)
			if !ok {
				return Window{}, models.Invalid("start", "invalid date "+s+", use DD/MM/YYYY")
			}
			w.From, w.HasFrom = d, true
		}
		if s := strings.TrimSpace(c.End); s != "" {
			d, ok := normalize.ParseDate(s)
			if !ok {
				return Window{}, models.Invalid("end", "invalid date "+s+", use DD/MM/YYYY")
			}
			w.To = d
		}
		return w, nil
	}
	return Window{}, models.Invalid("period", "unknown period "+string(c.Period))
}

// Filter keeps the rows inside the period that match the attendant and
// course selections. Rows without a parseable visit date are dropped, since
// every window has an upper bound.
func Filter(ds store.Dataset, c Criteria) (store.Dataset, error) {
	w, err := Resolve(c)
	if err != nil {
		return nil, err
	}
	attendant, course := normalize.Text(c.Attendant), normalize.Text(c.Course)
	out := make(store.Dataset, 0, len(ds))
	for _, r := range ds {
		if !r.VisitOK || !w.Contains(r.Visit) {
			continue
		}
		if !models.IsAll(attendant) && normalize.Text(r.AttendedBy) != attendant {
			continue
		}
		if !models.IsAll(course) && normalize.Text(r.Course) != course {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// Count is one bar or slice of a chart.
type Count struct {
	Label string  `json:"label"`
	Count int     `json:"count"`
	Share float64 `json:"share"` // Count over the counted rows, 0..1
}

type VisitsSummary struct {
	Visits      int `json:"visits"`
	Enrollments int `json:"enrollments"`
}

func VisitsVsEnrollments(ds store.Dataset) VisitsSummary {
	s := VisitsSummary{Visits: len(ds)}
	for _, r := range ds {
		if r.Status == models.StatusEnrolled {
			s.Enrollments++
		}
	}
	return s
}

// StatusDistribution counts each non-blank status, largest first.
func StatusDistribution(ds store.Dataset) []Count {
	counts := countBy(ds, func(r store.Row) string { return r.Status })
	sortCounts(counts, false)
	return counts
}

// LeadSources counts each non-blank how_found value, smallest first.
func LeadSources(ds store.Dataset) []Count {
	counts := countBy(ds, func(r store.Row) string { return r.HowFound })
	sortCounts(counts, true)
	return counts
}

// TopCoursesLimit is the number of courses TopCourses keeps.
const TopCoursesLimit = 5

// TopCourses returns the most requested courses, largest first.
func TopCourses(ds store.Dataset) []Count {
	counts := countBy(ds, func(r store.Row) string { return r.Course })
	sortCounts(counts, false)
	if len(counts) > TopCoursesLimit {
		counts = counts[:TopCoursesLimit]
	}
	return counts
}

// Summary bundles the four views of one report request.
type Summary struct {
	Window  Window        `json:"-"`
	Rows    int           `json:"rows"`
	Visits  VisitsSummary `json:"visits"`
	Status  []Count       `json:"status"`
	Sources []Count       `json:"sources"`
	Courses []Count       `json:"courses"`
}

func Build(ds store.Dataset, c Criteria) (Summary, error) {
	w, err := Resolve(c)
	if err != nil {
		return Summary{}, err
	}
	filtered, err := Filter(ds, c)
	if err != nil {
		return Summary{}, err
	}
	return Summary{
		Window:  w,
		Rows:    len(filtered),
		Visits:  VisitsVsEnrollments(filtered),
		Status:  StatusDistribution(filtered),
		Sources: LeadSources(filtered),
		Courses: TopCourses(filtered),
	}, nil
}

func countBy(ds store.Dataset, key func(store.Row) string) []Count {
	idx := map[string]int{}
	out := []Count{}
	total := 0
	for _, r := range ds {
		k := strings.TrimSpace(key(r))
		if k == "" {
			continue
		}
		total++
		i, ok := idx[k]
		if !ok {
			i = len(out)
			idx[k] = i
			out = append(out, Count{Label: k})
		}
		out[i].Count++
	}
	for i := range out {
		out[i].Share = float64(out[i].Count) / float64(total)
	}
	return out
}

// sortCounts orders by count, breaking ties by label so output is stable.
func sortCounts(cs []Count, ascending bool) {
	sort.SliceStable(cs, func(i, j int) bool {
		if cs[i].Count != cs[j].Count {
			if ascending {
				return cs[i].Count < cs[j].Count
			}
			return cs[i].Count > cs[j].Count
		}
		return cs[i].Label < cs[j].Label
	})
}
