package dom

// Page is a handle on the main region as it was when the handle was taken.
// Its mutating methods fail with ErrStalePage once the region has been
// replaced, so work finishing after a navigation cannot touch the new page.
type Page struct {
	doc   *Document
	epoch uint64
}

// Page returns a handle on the current main region.
func (d *Document) Page() Page {
	d.mu.Lock()
	defer d.mu.Unlock()
	return Page{doc: d, epoch: d.epoch}
}

// Doc returns the underlying document.
func (p Page) Doc() *Document {
	return p.doc
}

// Current reports whether the main region is still the one p was taken from.
func (p Page) Current() bool {
	p.doc.mu.Lock()
	defer p.doc.mu.Unlock()
	return p.doc.epoch == p.epoch
}

// Bind registers a page handler for target if p is current.
func (p Page) Bind(target string, h Handler) error {
	p.doc.mu.Lock()
	defer p.doc.mu.Unlock()
	if p.doc.epoch != p.epoch {
		return ErrStalePage
	}
	p.doc.handlers[target] = h
	return nil
}

// ReplaceChildren is Document.ReplaceChildren guarded by p being current.
func (p Page) ReplaceChildren(class, markup string) (bool, error) {
	p.doc.mu.Lock()
	defer p.doc.mu.Unlock()
	if p.doc.epoch != p.epoch {
		return false, ErrStalePage
	}
	return p.doc.replaceChildren(class, markup)
}

// HasElement reports whether p is current and has an element with id.
func (p Page) HasElement(id string) bool {
	return p.Current() && p.doc.HasElement(id)
}
