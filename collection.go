package overlook

// CollectionChange is the payload delivered by collection membership events:
// the collection itself plus the affected member.
type CollectionChange struct {
	Collection *DataSourceCollection
	Source     DataSource
}

// DataSourceCollection is an ordered registry of data sources with
// add/remove notifications. The viewer owns one; the layer panel observes it.
type DataSourceCollection struct {
	sources []DataSource

	// SourceAdded is raised after a source has been appended.
	SourceAdded Event[CollectionChange]
	// SourceRemoved is raised after a source has been removed.
	SourceRemoved Event[CollectionChange]
}

// NewDataSourceCollection creates an empty collection.
func NewDataSourceCollection() *DataSourceCollection {
	return &DataSourceCollection{}
}

// Len returns the number of sources in the collection.
func (c *DataSourceCollection) Len() int {
	return len(c.sources)
}

// Get returns the source at the given index.
// Panics if index is out of range.
func (c *DataSourceCollection) Get(index int) DataSource {
	if index < 0 || index >= len(c.sources) {
		panic("overlook: data source index out of range")
	}
	return c.sources[index]
}

// IndexOf returns the position of ds in the collection, or -1 if absent.
func (c *DataSourceCollection) IndexOf(ds DataSource) int {
	for i, cur := range c.sources {
		if cur == ds {
			return i
		}
	}
	return -1
}

// Contains reports whether ds is in the collection.
func (c *DataSourceCollection) Contains(ds DataSource) bool {
	return c.IndexOf(ds) >= 0
}

// Add appends ds and raises SourceAdded.
// Panics if ds is nil. Adding the same source twice is not supported.
func (c *DataSourceCollection) Add(ds DataSource) {
	if ds == nil {
		panic("overlook: cannot add nil data source")
	}
	c.sources = append(c.sources, ds)
	c.SourceAdded.Raise(CollectionChange{Collection: c, Source: ds})
}

// Remove detaches ds and raises SourceRemoved. Returns false if ds was not
// in the collection.
func (c *DataSourceCollection) Remove(ds DataSource) bool {
	i := c.IndexOf(ds)
	if i < 0 {
		return false
	}
	copy(c.sources[i:], c.sources[i+1:])
	c.sources[len(c.sources)-1] = nil
	c.sources = c.sources[:len(c.sources)-1]
	c.SourceRemoved.Raise(CollectionChange{Collection: c, Source: ds})
	return true
}

// RemoveAll removes every source, raising SourceRemoved once per member in
// collection order.
func (c *DataSourceCollection) RemoveAll() {
	for len(c.sources) > 0 {
		c.Remove(c.sources[0])
	}
}
