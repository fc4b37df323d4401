// Package paging holds the fixed-size page arithmetic shared by the listings.
package paging

// DefaultSize is the page size of every listing.
const DefaultSize = 10

type Page[T any] struct {
	Items  []T
	Total  int64
	Number int
	Size   int
}

// Normalize turns a requested page number into a valid one (1-based).
func Normalize(number int) int {
	if number < 1 {
		return 1
	}
	return number
}

func Offset(number, size int) int {
	return (Normalize(number) - 1) * size
}

func (p Page[T]) Pages() int {
	if p.Size <= 0 || p.Total == 0 {
		return 0
	}
	return int((p.Total + int64(p.Size) - 1) / int64(p.Size))
}

func (p Page[T]) HasPrev() bool {
	return p.Number > 1
}

func (p Page[T]) HasNext() bool {
	return p.Number < p.Pages()
}
