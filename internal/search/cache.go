package search

import (
	"strings"

	"github.com/sandeepkv93/tasklog/internal/model"
)

// Cache keeps the visible list and, while a filter is active, the
// unfiltered snapshot it was cut from. The snapshot is empty exactly when
// no filter is active.
type Cache struct {
	live     []model.Record
	snapshot []model.Record
	keyword  string
}

func NewCache(records []model.Record) *Cache {
	c := &Cache{}
	c.Replace(records)
	return c
}

// ApplyFilter narrows the live list to records whose title contains
// keyword. An empty keyword restores the full list.
func (c *Cache) ApplyFilter(keyword string) {
	if keyword == "" {
		if c.snapshot != nil {
			c.live = c.snapshot
		}
		c.snapshot = nil
		c.keyword = ""
		return
	}
	if c.snapshot == nil {
		c.snapshot = cloneAll(c.live)
	}
	c.keyword = keyword
	filtered := make([]model.Record, 0, len(c.snapshot))
	for _, r := range c.snapshot {
		if strings.Contains(r.Title, keyword) {
			filtered = append(filtered, r.Clone())
		}
	}
	c.live = filtered
}

func (c *Cache) Live() []model.Record {
	return cloneAll(c.live)
}

// All returns every cached record, ignoring the active filter.
func (c *Cache) All() []model.Record {
	if c.snapshot != nil {
		return cloneAll(c.snapshot)
	}
	return cloneAll(c.live)
}

func (c *Cache) Active() bool {
	return c.snapshot != nil
}

func (c *Cache) Keyword() string {
	return c.keyword
}

// Replace installs a freshly loaded list and drops any active filter.
func (c *Cache) Replace(records []model.Record) {
	c.live = cloneAll(records)
	c.snapshot = nil
	c.keyword = ""
}

// Update swaps the record with the same uuid in both slots. The record
// stays visible even if its new title no longer matches the filter.
func (c *Cache) Update(r model.Record) bool {
	found := replaceByUUID(c.live, r)
	if replaceByUUID(c.snapshot, r) {
		found = true
	}
	return found
}

// Prepend adds a new record to the top of both slots.
func (c *Cache) Prepend(r model.Record) {
	c.live = append([]model.Record{r.Clone()}, c.live...)
	if c.snapshot != nil {
		c.snapshot = append([]model.Record{r.Clone()}, c.snapshot...)
	}
}

func (c *Cache) Remove(uuid string) bool {
	var found bool
	c.live, found = removeByUUID(c.live, uuid)
	if c.snapshot != nil {
		var inSnapshot bool
		c.snapshot, inSnapshot = removeByUUID(c.snapshot, uuid)
		found = found || inSnapshot
	}
	return found
}

func replaceByUUID(records []model.Record, r model.Record) bool {
	for i := range records {
		if records[i].UUID == r.UUID {
			records[i] = r.Clone()
			return true
		}
	}
	return false
}

func removeByUUID(records []model.Record, uuid string) ([]model.Record, bool) {
	for i := range records {
		if records[i].UUID == uuid {
			out := make([]model.Record, 0, len(records)-1)
			out = append(out, records[:i]...)
			return append(out, records[i+1:]...), true
		}
	}
	return records, false
}

func cloneAll(records []model.Record) []model.Record {
	out := make([]model.Record, len(records))
	for i, r := range records {
		out[i] = r.Clone()
	}
	return out
}
