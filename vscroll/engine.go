// Package vscroll is a windowing engine for long row lists: given per-row
// height estimates and a scroll viewport, it computes the contiguous index
// range worth materializing and keeps a running total content size,
// correcting estimates with real measurements as rows are laid out.
//
// The engine is deliberately not goroutine-safe. All recomputation is
// synchronous and cheap, and every call is expected to happen on the
// single execution context driving the render loop.
package vscroll

// MinHeight is the smallest height the engine accepts for any row.
// Estimates and measurements below it are clamped, which keeps the offset
// table strictly increasing.
const MinHeight = 1

// DefaultOverscan is the number of extra rows materialized beyond each end
// of the strictly visible range, to reduce blank-frame flicker during fast
// scrolling.
const DefaultOverscan = 5

// Align positions a target row within the viewport for ScrollToIndex.
type Align int

const (
	AlignStart Align = iota
	AlignCenter
	AlignEnd
)

// Viewport abstracts the scrollable container the engine positions rows
// in: a current scroll offset, a visible extent, and an imperative move.
// The concrete rendering layer supplies it.
type Viewport interface {
	Offset() int
	Extent() int
	ScrollTo(offset int)
}

// Engine computes visible index ranges over one row list generation.
//
// The zero Engine is not usable; construct with New. An Engine built
// without a viewport is uninitialized: range queries return an empty
// range and scroll requests are dropped until AttachViewport.
type Engine struct {
	vp       Viewport
	count    int
	estimate func(int) int
	overscan int

	// offsets[i] is the top of row i; offsets[count] is the total size.
	// Entries below valid are correct; entries at or above it must be
	// recomputed. Measured heights override estimates.
	offsets  []int
	valid    int
	measured map[int]int

	generation int
}

// New builds an engine over count rows with the given height estimator.
// vp may be nil (uninitialized state); overscan <= 0 selects
// DefaultOverscan.
func New(vp Viewport, count int, estimate func(int) int, overscan int) *Engine {
	if overscan <= 0 {
		overscan = DefaultOverscan
	}
	e := &Engine{vp: vp, overscan: overscan}
	e.reset(count, estimate)
	return e
}

// AttachViewport supplies the scroll container, moving the engine from
// uninitialized to ready. Attaching nil is a no-op.
func (e *Engine) AttachViewport(vp Viewport) {
	if vp == nil {
		return
	}
	e.vp = vp
}

// Ready reports whether a viewport is attached and ranges are computable.
func (e *Engine) Ready() bool { return e.vp != nil }

// Generation returns the current list generation. It increments on every
// SetCount, letting downstream caches detect that positions went stale.
func (e *Engine) Generation() int { return e.generation }

// Count returns the current row count.
func (e *Engine) Count() int { return e.count }

// SetCount starts a new generation: the row list was rebuilt, so all
// measurements and cached offsets are discarded and the generation
// counter increments. Readiness is unaffected.
func (e *Engine) SetCount(count int, estimate func(int) int) {
	e.reset(count, estimate)
	e.generation++
}

func (e *Engine) reset(count int, estimate func(int) int) {
	if count < 0 {
		count = 0
	}
	e.count = count
	e.estimate = estimate
	e.offsets = make([]int, count+1)
	e.valid = 1 // offsets[0] == 0 always holds
	e.measured = make(map[int]int)
}

// Measure records the real laid-out height of a row. Re-measuring with an
// unchanged value is a no-op; a changed value invalidates cached offsets
// for every row after it. Heights below MinHeight are clamped.
func (e *Engine) Measure(index, height int) {
	if index < 0 || index >= e.count {
		return
	}
	if height < MinHeight {
		height = MinHeight
	}
	if prev, ok := e.measured[index]; ok && prev == height {
		return
	}
	e.measured[index] = height
	if index+1 < e.valid {
		e.valid = index + 1
	}
}

// height returns the effective height of a row: measured when known,
// clamped estimate otherwise.
func (e *Engine) height(i int) int {
	if h, ok := e.measured[i]; ok {
		return h
	}
	h := MinHeight
	if e.estimate != nil {
		h = e.estimate(i)
	}
	if h < MinHeight {
		h = MinHeight
	}
	return h
}

// fill extends the valid prefix of the offset table through offsets[n].
func (e *Engine) fill(n int) {
	if n > e.count {
		n = e.count
	}
	for i := e.valid; i <= n; i++ {
		if i == 0 {
			continue
		}
		e.offsets[i] = e.offsets[i-1] + e.height(i-1)
	}
	if n+1 > e.valid {
		e.valid = n + 1
	}
}

// TotalSize returns the running total content size: the sum of all row
// heights, measured where available.
func (e *Engine) TotalSize() int {
	if e.count == 0 {
		return 0
	}
	e.fill(e.count)
	return e.offsets[e.count]
}

// OffsetOf returns the top offset of a row, clamped to the valid index
// range.
func (e *Engine) OffsetOf(index int) int {
	if e.count == 0 {
		return 0
	}
	index = clamp(index, 0, e.count-1)
	e.fill(index)
	return e.offsets[index]
}

// HeightOf returns the effective height of a row: measured when known,
// clamped estimate otherwise. Out-of-range indices return 0.
func (e *Engine) HeightOf(index int) int {
	if index < 0 || index >= e.count {
		return 0
	}
	return e.height(index)
}

// VisibleRange returns the minimal contiguous index range [lo, hi] whose
// cumulative offsets intersect the viewport, expanded by the overscan
// margin on both ends. Returns (0, -1) while uninitialized or empty.
func (e *Engine) VisibleRange() (lo, hi int) {
	if e.vp == nil || e.count == 0 {
		return 0, -1
	}
	e.fill(e.count)

	top := e.vp.Offset()
	bottom := top + e.vp.Extent()

	// First row whose bottom edge is past the viewport top.
	lo = search(e.count, func(i int) bool { return e.offsets[i+1] > top })
	// First row whose top edge is at or past the viewport bottom; the row
	// before it is the last visible one.
	hi = search(e.count, func(i int) bool { return e.offsets[i] >= bottom }) - 1

	lo = clamp(lo-e.overscan, 0, e.count-1)
	hi = clamp(hi+e.overscan, 0, e.count-1)
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

// ScrollToIndex computes the offset that brings a row to the requested
// alignment and instructs the viewport to move there. Requests while
// uninitialized are dropped and return false; callers retry after
// readiness (see AwaitViewport).
func (e *Engine) ScrollToIndex(index int, align Align) bool {
	if e.vp == nil || e.count == 0 {
		return false
	}
	index = clamp(index, 0, e.count-1)
	e.fill(e.count)

	top := e.offsets[index]
	h := e.offsets[index+1] - top
	extent := e.vp.Extent()

	var target int
	switch align {
	case AlignCenter:
		target = top - (extent-h)/2
	case AlignEnd:
		target = top - extent + h
	default:
		target = top
	}

	max := e.offsets[e.count] - extent
	if max < 0 {
		max = 0
	}
	e.vp.ScrollTo(clamp(target, 0, max))
	return true
}

// search returns the smallest i in [0, n) for which pred(i) is true, or n
// when none is. pred must be monotone over the offset table.
func search(n int, pred func(int) bool) int {
	lo, hi := 0, n
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if pred(mid) {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
