package pagination

import (
	"strconv"
	"strings"
)

// PerPage is the number of items on every listing page.
const PerPage = 10

// Window describes the slice of a result set that makes up one page.
type Window struct {
	Number   int
	NumPages int
	Count    int64
	Limit    int
	Offset   int
}

// ParseNumber reads a 1-based page number from a query value. Missing or
// malformed values yield 1; range clamping happens in Resolve.
func ParseNumber(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 1
	}
	return n
}

// Resolve clamps number into [1, NumPages] for count items of perPage each.
// Zero and negative numbers go to the first page, not the last. An empty
// result set still has one (empty) page.
func Resolve(count int64, perPage, number int) Window {
	if perPage <= 0 {
		perPage = PerPage
	}
	numPages := int((count + int64(perPage) - 1) / int64(perPage))
	if numPages < 1 {
		numPages = 1
	}
	if number < 1 {
		number = 1
	}
	if number > numPages {
		number = numPages
	}
	return Window{
		Number:   number,
		NumPages: numPages,
		Count:    count,
		Limit:    perPage,
		Offset:   (number - 1) * perPage,
	}
}

// Page is one page of items plus its position in the full result set.
type Page[T any] struct {
	Items []T
	Window
}

// NewPage pairs items with the window they were fetched for.
func NewPage[T any](items []T, w Window) *Page[T] {
	return &Page[T]{Items: items, Window: w}
}

func (p *Page[T]) HasNext() bool {
	return p.Number < p.NumPages
}

func (p *Page[T]) HasPrevious() bool {
	return p.Number > 1
}

func (p *Page[T]) NextNumber() int {
	if p.HasNext() {
		return p.Number + 1
	}
	return p.Number
}

func (p *Page[T]) PreviousNumber() int {
	if p.HasPrevious() {
		return p.Number - 1
	}
	return p.Number
}

// Numbers lists every page number, for rendering page links.
func (p *Page[T]) Numbers() []int {
	nums := make([]int, p.NumPages)
	for i := range nums {
		nums[i] = i + 1
	}
	return nums
}
