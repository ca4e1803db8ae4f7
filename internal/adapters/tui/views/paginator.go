package views

// Paginator tracks a cursor over a list shown one page at a time. The
// preset picker moves the cursor; the log pane pins it to the newest
// entry while following.
type Paginator struct {
	pageSize   int
	pageOffset int
	cursor     int
	totalItems int
	follow     bool
}

// NewPaginator creates a new paginator with the given page size
func NewPaginator(pageSize int) *Paginator {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &Paginator{pageSize: pageSize}
}

// SetPageSize changes the number of visible rows
func (p *Paginator) SetPageSize(size int) {
	if size <= 0 {
		return
	}
	p.pageSize = size
	p.ensureCursorInPage()
}

// SetTotal sets the total number of items. A following paginator moves
// to the last item.
func (p *Paginator) SetTotal(total int) {
	p.totalItems = total
	if p.follow && total > 0 {
		p.cursor = total - 1
	}
	p.cursor = p.clamp(p.cursor)
	p.ensureCursorInPage()
}

// SetFollow pins the cursor to the last item until it moves up
func (p *Paginator) SetFollow(on bool) {
	p.follow = on
	if on && p.totalItems > 0 {
		p.cursor = p.totalItems - 1
		p.ensureCursorInPage()
	}
}

// Following reports whether the cursor tracks the newest item
func (p *Paginator) Following() bool {
	return p.follow
}

// Cursor returns the current cursor position (absolute index)
func (p *Paginator) Cursor() int {
	return p.cursor
}

// CursorUp moves the cursor up by one and stops following
func (p *Paginator) CursorUp() bool {
	if p.cursor == 0 {
		return false
	}
	p.cursor--
	p.follow = false
	p.ensureCursorInPage()
	return true
}

// CursorDown moves the cursor down by one
func (p *Paginator) CursorDown() bool {
	if p.cursor >= p.totalItems-1 {
		return false
	}
	p.cursor++
	p.ensureCursorInPage()
	return true
}

// VisibleRange returns the start and end indices for the current page
func (p *Paginator) VisibleRange() (start, end int) {
	start = p.pageOffset
	end = min(p.pageOffset+p.pageSize, p.totalItems)
	return
}

// TailRange returns a window of at most one page ending at the cursor
func (p *Paginator) TailRange() (start, end int) {
	end = min(p.cursor+1, p.totalItems)
	start = max(0, end-p.pageSize)
	return
}

// TotalPages returns the total number of pages
func (p *Paginator) TotalPages() int {
	if p.totalItems == 0 {
		return 1
	}
	return (p.totalItems + p.pageSize - 1) / p.pageSize
}

// CurrentPage returns the current page number (1-based)
func (p *Paginator) CurrentPage() int {
	return p.pageOffset/p.pageSize + 1
}

// Reset resets the paginator to its initial state, keeping follow mode
func (p *Paginator) Reset() {
	p.cursor = 0
	p.pageOffset = 0
	p.totalItems = 0
}

func (p *Paginator) clamp(pos int) int {
	if pos >= p.totalItems {
		pos = p.totalItems - 1
	}
	if pos < 0 {
		pos = 0
	}
	return pos
}

// ensureCursorInPage ensures cursor is within the current page
func (p *Paginator) ensureCursorInPage() {
	if p.cursor < p.pageOffset || p.cursor >= p.pageOffset+p.pageSize {
		p.pageOffset = (p.cursor / p.pageSize) * p.pageSize
	}
}
