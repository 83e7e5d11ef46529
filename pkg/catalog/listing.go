package catalog

// Entry is a descriptor with its display index in one listing.
// The index is only meaningful for the listing that produced it.
type Entry struct {
	Index int
	Descriptor
}

// Listing is an ordered, numbered view of the catalog for one platform.
type Listing []Entry

// At returns the entry with the given 1-based index.
func (l Listing) At(index int) (Entry, bool) {
	if index < 1 || index > len(l) {
		return Entry{}, false
	}
	return l[index-1], true
}

// Find returns the entry with the given name.
func (l Listing) Find(name string) (Entry, bool) {
	for _, e := range l {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// Names returns the plugin names in listing order.
func (l Listing) Names() []string {
	names := make([]string, len(l))
	for i, e := range l {
		names[i] = e.Name
	}
	return names
}
