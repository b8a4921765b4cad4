// File: internal/data/filters.go

package data

import (
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ----------------------------------------------------------------------
//
//	Definitions
//
// ----------------------------------------------------------------------

const (
	defaultPage     = 1
	maxPage         = 10_000_000
	defaultPageSize = 10
	maxPageSize     = 100

	minAge = 0
	maxAge = 150
)

// Sentinel bounds for ranges that must match nothing. Min is above Max, so no
// store value can satisfy both.
var (
	emptyAgeMin    = 999.0
	emptyAgeMax    = 0.0
	emptyDateStart = time.Date(2099, time.December, 31, 0, 0, 0, 0, time.UTC)
	emptyDateEnd   = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
)

// accepted date layouts, tried in order
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.000",
	time.RFC3339Nano,
}

// FilterParams holds the listing parameters exactly as the client sent them.
type FilterParams struct {
	Search          string
	CustomerRegion  []string
	Gender          []string
	ProductCategory []string
	Brand           []string
	Tags            []string
	PaymentMethod   []string
	AgeMin          string
	AgeMax          string
	DateStart       string
	DateEnd         string
	SortBy          string
	Page            string
	PageSize        string
}

// Outcome records what the builder did with one raw bound.
type Outcome int

const (
	OutcomeAbsent Outcome = iota
	OutcomeAccepted
	OutcomeDropped
	OutcomeForcesEmpty
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAccepted:
		return "accepted"
	case OutcomeDropped:
		return "dropped"
	case OutcomeForcesEmpty:
		return "forces-empty"
	default:
		return "absent"
	}
}

// Membership restricts Field to one of Values.
type Membership struct {
	Field  Field
	Values []string
}

// TextSearch is a case-insensitive substring match over Fields. Pattern is
// Text with every pattern metacharacter escaped.
type TextSearch struct {
	Text    string
	Pattern string
	Fields  []Field
}

// NumberRange is an inclusive range; a nil bound is open.
type NumberRange struct {
	Min        *float64
	Max        *float64
	MinOutcome Outcome
	MaxOutcome Outcome
}

// ForcesEmpty reports whether the range is the empty-result sentinel.
func (r NumberRange) ForcesEmpty() bool {
	return r.MinOutcome == OutcomeForcesEmpty
}

// TimeRange is an inclusive range of instants; a nil bound is open.
type TimeRange struct {
	Start        *time.Time
	End          *time.Time
	StartOutcome Outcome
	EndOutcome   Outcome
}

// ForcesEmpty reports whether the range is the empty-result sentinel.
func (r TimeRange) ForcesEmpty() bool {
	return r.StartOutcome == OutcomeForcesEmpty
}

// SortKey is a client-selectable ordering.
type SortKey string

const (
	SortByDate         SortKey = "date"
	SortByQuantity     SortKey = "quantity"
	SortByCustomerName SortKey = "customerName"
)

// Sort orders by Field and then by record identity, both in the same direction.
type Sort struct {
	Key        SortKey
	Field      Field
	Descending bool
}

// Filter is the validated query descriptor for one listing request.
type Filter struct {
	Memberships []Membership
	Search      *TextSearch
	Age         *NumberRange
	Date        *TimeRange
	Sort        Sort
	Page        int64
	PageSize    int64
}

// ----------------------------------------------------------------------
//
//	Methods
//
// ----------------------------------------------------------------------

// BuildFilter turns raw request parameters into a Filter. Malformed input is
// dropped rather than reported, and impossible ranges become empty-result
// sentinels. It has no side effects.
func BuildFilter(p FilterParams) Filter {
	f := Filter{
		Sort:     buildSort(p.SortBy),
		Page:     parsePage(p.Page),
		PageSize: parsePageSize(p.PageSize),
	}

	memberships := []Membership{
		{Field: FieldCustomerRegion, Values: p.CustomerRegion},
		{Field: FieldGender, Values: p.Gender},
		{Field: FieldProductCategory, Values: p.ProductCategory},
		{Field: FieldBrand, Values: p.Brand},
		{Field: FieldTags, Values: p.Tags},
		{Field: FieldPaymentMethod, Values: p.PaymentMethod},
	}
	for _, m := range memberships {
		values := cleanList(m.Values)
		if len(values) > 0 {
			f.Memberships = append(f.Memberships, Membership{Field: m.Field, Values: values})
		}
	}

	if text := strings.TrimSpace(p.Search); text != "" {
		f.Search = &TextSearch{
			Text:    text,
			Pattern: EscapePattern(text),
			Fields:  SearchFields,
		}
	}

	f.Age = buildAgeRange(p.AgeMin, p.AgeMax)
	f.Date = buildDateRange(p.DateStart, p.DateEnd)

	return f
}

// CategoryFilter selects records whose product category is one of categories.
// Blank entries are ignored; an empty list selects everything.
func CategoryFilter(categories []string) Filter {
	var f Filter
	if values := cleanList(categories); len(values) > 0 {
		f.Memberships = []Membership{{Field: FieldProductCategory, Values: values}}
	}
	return f
}

// ParseFilterParams reads listing parameters from a query string. List
// parameters are comma separated and may also be repeated.
func ParseFilterParams(qs url.Values) FilterParams {
	return FilterParams{
		Search:          qs.Get("search"),
		CustomerRegion:  SplitList(qs["customerRegion"]...),
		Gender:          SplitList(qs["gender"]...),
		ProductCategory: SplitList(qs["productCategory"]...),
		Brand:           SplitList(qs["brand"]...),
		Tags:            SplitList(qs["tags"]...),
		PaymentMethod:   SplitList(qs["paymentMethod"]...),
		AgeMin:          qs.Get("ageMin"),
		AgeMax:          qs.Get("ageMax"),
		DateStart:       qs.Get("dateStart"),
		DateEnd:         qs.Get("dateEnd"),
		SortBy:          qs.Get("sortBy"),
		Page:            qs.Get("page"),
		PageSize:        qs.Get("pageSize"),
	}
}

// SplitList splits comma separated values into their parts.
func SplitList(values ...string) []string {
	var parts []string
	for _, v := range values {
		if v == "" {
			continue
		}
		parts = append(parts, strings.Split(v, ",")...)
	}
	return parts
}

// EscapePattern escapes . * + ? ^ $ { } ( ) | [ ] and \ so the text matches
// literally when embedded in a regular expression.
func EscapePattern(text string) string {
	return regexp.QuoteMeta(text)
}

// Limit returns the maximum number of records on one page.
func (f Filter) Limit() int64 {
	return f.PageSize
}

// Offset returns the number of records skipped before the current page.
func (f Filter) Offset() int64 {
	return (f.Page - 1) * f.PageSize
}

// Membership returns the values a field is restricted to, if any.
func (f Filter) Membership(field Field) ([]string, bool) {
	for _, m := range f.Memberships {
		if m.Field == field {
			return m.Values, true
		}
	}
	return nil, false
}

func buildSort(sortBy string) Sort {
	switch SortKey(strings.TrimSpace(sortBy)) {
	case SortByQuantity:
		return Sort{Key: SortByQuantity, Field: FieldQuantity, Descending: true}
	case SortByCustomerName:
		return Sort{Key: SortByCustomerName, Field: FieldCustomerName, Descending: false}
	default:
		return Sort{Key: SortByDate, Field: FieldDate, Descending: true}
	}
}

func buildAgeRange(rawMin, rawMax string) *NumberRange {
	minValue, minOutcome := parseAge(rawMin)
	maxValue, maxOutcome := parseAge(rawMax)

	r := NumberRange{MinOutcome: minOutcome, MaxOutcome: maxOutcome}
	switch {
	case minOutcome == OutcomeAccepted && maxOutcome == OutcomeAccepted && minValue > maxValue:
		lo, hi := emptyAgeMin, emptyAgeMax
		return &NumberRange{
			Min:        &lo,
			Max:        &hi,
			MinOutcome: OutcomeForcesEmpty,
			MaxOutcome: OutcomeForcesEmpty,
		}
	case minOutcome != OutcomeAccepted && maxOutcome != OutcomeAccepted:
		return nil
	}
	if minOutcome == OutcomeAccepted {
		r.Min = &minValue
	}
	if maxOutcome == OutcomeAccepted {
		r.Max = &maxValue
	}
	return &r
}

func parseAge(raw string) (float64, Outcome) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, OutcomeAbsent
	}
	age, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(age) || age < minAge || age > maxAge {
		return 0, OutcomeDropped
	}
	return age, OutcomeAccepted
}

func buildDateRange(rawStart, rawEnd string) *TimeRange {
	start, startOutcome := parseDate(rawStart)
	end, endOutcome := parseDate(rawEnd)
	if endOutcome == OutcomeAccepted {
		end = endOfDay(end)
	}

	switch {
	case startOutcome == OutcomeAccepted && endOutcome == OutcomeAccepted && start.After(end):
		lo, hi := emptyDateStart, emptyDateEnd
		return &TimeRange{
			Start:        &lo,
			End:          &hi,
			StartOutcome: OutcomeForcesEmpty,
			EndOutcome:   OutcomeForcesEmpty,
		}
	case startOutcome != OutcomeAccepted && endOutcome != OutcomeAccepted:
		return nil
	}

	r := TimeRange{StartOutcome: startOutcome, EndOutcome: endOutcome}
	if startOutcome == OutcomeAccepted {
		r.Start = &start
	}
	if endOutcome == OutcomeAccepted {
		r.End = &end
	}
	return &r
}

func parseDate(raw string) (time.Time, Outcome) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, OutcomeAbsent
	}
	for _, layout := range dateLayouts {
		t, err := time.ParseInLocation(layout, raw, time.Local)
		if err == nil {
			return t, OutcomeAccepted
		}
	}
	return time.Time{}, OutcomeDropped
}

// endOfDay moves t to the last millisecond of its local calendar day.
func endOfDay(t time.Time) time.Time {
	y, m, d := t.In(time.Local).Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), time.Local)
}

func parsePage(raw string) int64 {
	n, ok := parseWholeNumber(raw)
	if !ok || n < 1 {
		return defaultPage
	}
	return min(n, maxPage)
}

func parsePageSize(raw string) int64 {
	if strings.TrimSpace(raw) == "" {
		return defaultPageSize
	}
	n, ok := parseWholeNumber(raw)
	if !ok || n < 1 {
		return 1
	}
	return min(n, maxPageSize)
}

// parseWholeNumber parses a decimal number and floors it. Values far outside
// any useful page range are pinned so the conversion cannot overflow.
func parseWholeNumber(raw string) (int64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	f = math.Floor(f)
	f = math.Max(-1e12, math.Min(f, 1e12))
	return int64(f), true
}

// cleanList trims the values and drops blanks and repeats, keeping the
// first occurrence order.
func cleanList(values []string) []string {
	var cleaned []string
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		cleaned = append(cleaned, v)
	}
	return cleaned
}
