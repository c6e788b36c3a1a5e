package tagging

import (
	"context"
	"sort"
	"sync"
)

// memStore là Store trong bộ nhớ cho test: lưu tags theo id tài liệu và đếm lại giống pipeline Mongo
type memStore struct {
	name string

	mu         sync.Mutex
	docs       map[string]TagList
	aggregates map[string][]TagWeight
	recomputes int
	reads      int
	failWith   error
}

func newMemStore(name string) *memStore {
	return &memStore{
		name:       name,
		docs:       make(map[string]TagList),
		aggregates: make(map[string][]TagWeight),
	}
}

func (m *memStore) CollectionName() string { return m.name }

func (m *memStore) put(id string, tags TagList) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[id] = append(TagList(nil), tags...)
}

func (m *memStore) remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs, id)
}

func (m *memStore) RecomputeTagCounts(ctx context.Context, field, out string, opts map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recomputes++
	if m.failWith != nil {
		return m.failWith
	}

	counts := make(map[string]int)
	for _, tags := range m.docs {
		for _, tag := range tags {
			counts[tag]++
		}
	}
	weights := make([]TagWeight, 0, len(counts))
	for tag, n := range counts {
		weights = append(weights, TagWeight{Tag: tag, Count: n})
	}
	sort.Slice(weights, func(i, j int) bool { return weights[i].Tag < weights[j].Tag })
	m.aggregates[out] = weights
	return nil
}

func (m *memStore) ReadTagCounts(ctx context.Context, out string) ([]TagWeight, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads++
	return append([]TagWeight{}, m.aggregates[out]...), nil
}

func (m *memStore) recomputeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.recomputes
}

// note là tài liệu mẫu cho test
type note struct {
	ID    string
	Kind  string
	Title string
	Tags  TagList
}

func (n *note) GetTags() TagList        { return n.Tags }
func (n *note) SetTagList(tags TagList) { n.Tags = tags }
