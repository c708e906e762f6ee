package domain

// PageWindow computed slice of a member's ledger
type PageWindow struct {
	TotalElements int64
	TotalPages    int64
	Page          int64
	Size          int64
	// StartAt highest messageNo on the page
	StartAt int64
}

// NewPageWindow counter 為 member 的 message counter, 0 表示尚未有留言
func NewPageWindow(counter, page, size int64) PageWindow {
	total := counter - 1
	if total < 0 {
		total = 0
	}
	w := PageWindow{
		TotalElements: total,
		Page:          page,
		Size:          size,
	}
	if page < 1 || size < 1 {
		return w
	}

	// skip 超過 total/size 時 skip*size 可能溢位, 直接視為空頁
	skip := page - 1
	if skip > total/size {
		return w
	}
	w.StartAt = total - skip*size
	if w.Empty() {
		return w
	}
	w.TotalPages = total / size
	if total%size != 0 {
		w.TotalPages++
	}
	return w
}

// Empty page beyond the available data
func (w PageWindow) Empty() bool {
	return w.StartAt <= 0
}

// Page page of messages
type Page struct {
	TotalElements int64      `json:"totalElements"`
	TotalPages    int64      `json:"totalPages"`
	Page          int64      `json:"page"`
	Size          int64      `json:"size"`
	Content       []*Message `json:"-"`
}

// NewEmptyPage page with no content for w
func NewEmptyPage(w PageWindow) *Page {
	return &Page{
		TotalElements: w.TotalElements,
		TotalPages:    w.TotalPages,
		Page:          w.Page,
		Size:          w.Size,
		Content:       []*Message{},
	}
}

// PageView page JSON
type PageView struct {
	TotalElements int64         `json:"totalElements"`
	TotalPages    int64         `json:"totalPages"`
	Page          int64         `json:"page"`
	Size          int64         `json:"size"`
	Content       []MessageView `json:"content"`
}

// View convert to PageView
func (p *Page) View() PageView {
	content := make([]MessageView, 0, len(p.Content))
	for _, m := range p.Content {
		content = append(content, m.View())
	}
	return PageView{
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages,
		Page:          p.Page,
		Size:          p.Size,
		Content:       content,
	}
}
