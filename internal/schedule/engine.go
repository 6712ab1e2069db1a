package schedule

import (
	"sync"
	"time"

	"ledgerline/internal/ledger"
	"ledgerline/internal/logger"
)

const (
	defaultCacheSize = 1024
	// maxCycles bounds open-ended searches such as NextOccurrence.
	maxCycles = 100000
)

// Engine expands recurrence rules. Compiled rules are cached per engine,
// keyed by the full rule value, so changing any field of a rule yields a
// fresh entry. An Engine is safe for concurrent use.
type Engine struct {
	mu        sync.Mutex
	plans     map[Rule]*plan
	cacheSize int
	now       func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the clock used to decide what "tomorrow" is.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithCacheSize bounds the number of compiled rules kept in memory.
func WithCacheSize(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.cacheSize = n
		}
	}
}

// NewEngine creates an Engine with an empty cache.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		plans:     make(map[Rule]*plan),
		cacheSize: defaultCacheSize,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Reset drops every cached plan.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.plans = make(map[Rule]*plan)
}

// CacheLen returns the number of cached plans.
func (e *Engine) CacheLen() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.plans)
}

// Today returns the engine's current UTC date.
func (e *Engine) Today() ledger.Date {
	return ledger.Today(e.now)
}

// Occurrences returns every date in [windowStart, windowEnd] matched by rule,
// in ascending order. An invalid rule or an empty window yields nil.
func (e *Engine) Occurrences(rule Rule, windowStart, windowEnd ledger.Date) []ledger.Date {
	if windowStart.IsZero() || windowEnd.IsZero() || windowEnd.Before(windowStart) {
		return nil
	}
	p := e.plan(rule)
	if p == nil {
		return nil
	}
	return p.between(windowStart, windowEnd)
}

// FutureOccurrences is Occurrences with the window start clamped to tomorrow.
// It is used to project occurrences that have not been realized yet.
func (e *Engine) FutureOccurrences(rule Rule, windowStart, windowEnd ledger.Date) []ledger.Date {
	tomorrow := e.Today().AddDays(1)
	if windowStart.Before(tomorrow) {
		windowStart = tomorrow
	}
	return e.Occurrences(rule, windowStart, windowEnd)
}

// OccursOn reports whether rule produces an occurrence on date.
func (e *Engine) OccursOn(rule Rule, date ledger.Date) bool {
	return len(e.Occurrences(rule, date, date)) > 0
}

// NextOccurrence returns the first occurrence on or after from.
func (e *Engine) NextOccurrence(rule Rule, from ledger.Date) (ledger.Date, bool) {
	if from.IsZero() {
		return ledger.Date{}, false
	}
	p := e.plan(rule)
	if p == nil {
		return ledger.Date{}, false
	}
	return p.next(from)
}

func (e *Engine) plan(rule Rule) *plan {
	rule = rule.Normalize()

	e.mu.Lock()
	defer e.mu.Unlock()

	if p, ok := e.plans[rule]; ok {
		return p
	}
	if err := rule.Validate(); err != nil {
		logger.Get().Debugw("ignoring invalid recurrence rule", "error", err.Error())
		return nil
	}
	if len(e.plans) >= e.cacheSize {
		e.plans = make(map[Rule]*plan)
	}
	p := compile(rule)
	e.plans[rule] = p
	return p
}

// plan is a compiled rule: the position of the first cycle is resolved once
// so each cycle can be computed directly from its index.
type plan struct {
	rule Rule

	first      ledger.Date // daily and weekly
	firstMonth int         // monthly, months since year 0
	firstYear  int         // yearly
}

func compile(rule Rule) *plan {
	p := &plan{rule: rule}
	start := rule.StartDate
	switch rule.Frequency {
	case Daily:
		p.first = start
	case Weekly:
		offset := (rule.Anchor - int(start.Weekday()) + 7) % 7
		p.first = start.AddDays(offset)
	case Monthly:
		idx := monthIndex(start.Year(), start.Month())
		// The anchor day exists in at least one of any two consecutive months.
		for i := 0; i < 3; i++ {
			if d, ok := monthlyDate(idx+i, rule.Anchor); ok && !d.Before(start) {
				p.firstMonth = idx + i
				break
			}
		}
	case Yearly:
		p.firstYear = start.Year()
		if yearlyDate(p.firstYear, rule.Anchor).Before(start) {
			p.firstYear++
		}
	}
	return p
}

// cycle returns the date of the k-th cycle. For monthly rules whose month
// lacks the anchor day it returns the first of that month and false.
func (p *plan) cycle(k int) (ledger.Date, bool) {
	step := p.rule.Interval * k
	switch p.rule.Frequency {
	case Daily:
		return p.first.AddDays(step), true
	case Weekly:
		return p.first.AddDays(7 * step), true
	case Monthly:
		idx := p.firstMonth + step
		if d, ok := monthlyDate(idx, p.rule.Anchor); ok {
			return d, true
		}
		year, month := fromMonthIndex(idx)
		return ledger.NewDate(year, month, 1), false
	case Yearly:
		return yearlyDate(p.firstYear+step, p.rule.Anchor), true
	}
	return ledger.Date{}, false
}

// lowerBound returns a cycle index whose date is not after d. It lets
// open-ended rules skip straight to the window instead of walking from the
// start date.
func (p *plan) lowerBound(d ledger.Date) int {
	var k int
	switch p.rule.Frequency {
	case Daily:
		k = p.first.DaysUntil(d) / p.rule.Interval
	case Weekly:
		k = p.first.DaysUntil(d) / (7 * p.rule.Interval)
	case Monthly:
		k = (monthIndex(d.Year(), d.Month()) - p.firstMonth) / p.rule.Interval
	case Yearly:
		k = (d.Year() - p.firstYear) / p.rule.Interval
	}
	if k < 0 {
		return 0
	}
	return k
}

func (p *plan) between(windowStart, windowEnd ledger.Date) []ledger.Date {
	stop := windowEnd
	if p.rule.End.Kind == EndOn && p.rule.End.Date.Before(stop) {
		stop = p.rule.End.Date
	}
	counted := p.rule.End.Kind == EndAfter

	k := 0
	if !counted {
		k = p.lowerBound(windowStart)
	}

	var out []ledger.Date
	produced := 0
	for ; ; k++ {
		d, ok := p.cycle(k)
		if d.After(stop) {
			break
		}
		if !ok {
			continue
		}
		produced++
		if counted && produced > p.rule.End.Count {
			break
		}
		if !d.Before(windowStart) {
			out = append(out, d)
		}
	}
	return out
}

func (p *plan) next(from ledger.Date) (ledger.Date, bool) {
	counted := p.rule.End.Kind == EndAfter
	k := 0
	if !counted {
		k = p.lowerBound(from)
	}
	produced := 0
	for limit := k + maxCycles; k < limit; k++ {
		d, ok := p.cycle(k)
		if p.rule.End.Kind == EndOn && d.After(p.rule.End.Date) {
			return ledger.Date{}, false
		}
		if !ok {
			continue
		}
		produced++
		if counted && produced > p.rule.End.Count {
			return ledger.Date{}, false
		}
		if !d.Before(from) {
			return d, true
		}
	}
	return ledger.Date{}, false
}

func monthIndex(year int, month time.Month) int {
	return year*12 + int(month) - 1
}

func fromMonthIndex(idx int) (int, time.Month) {
	return idx / 12, time.Month(idx%12 + 1)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func monthlyDate(idx, day int) (ledger.Date, bool) {
	year, month := fromMonthIndex(idx)
	if day > daysIn(year, month) {
		return ledger.Date{}, false
	}
	return ledger.NewDate(year, month, day), true
}

// yearlyDate places a non-leap day-of-year anchor in year. In leap years
// anchors from March 1 on move one day forward so the month and day stay put.
func yearlyDate(year, anchor int) ledger.Date {
	d := ledger.NewDate(year, time.January, 1).AddDays(anchor - 1)
	if anchor >= LeapCutoff && isLeap(year) {
		d = d.AddDays(1)
	}
	return d
}
