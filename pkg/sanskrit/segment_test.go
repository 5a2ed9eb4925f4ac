package sanskrit

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeSegmenter struct {
	parts []string
	err   error
	calls int
}

func (f *fakeSegmenter) Split(ctx context.Context, word, mode string) ([]string, error) {
	f.calls++
	return f.parts, f.err
}

func TestSplitterPrefersService(t *testing.T) {
	svc := &fakeSegmenter{parts: []string{"rāma", "āyaṇa"}}
	s := NewSplitter(svc, nil)

	parts, strategy := s.Split(context.Background(), "rāmāyaṇa", ModeSandhi)
	assert.Equal(t, []string{"rāma", "āyaṇa"}, parts)
	assert.Equal(t, StrategyService, strategy)
}

func TestSplitterFallsBackToTable(t *testing.T) {
	svc := &fakeSegmenter{err: errors.New("connection refused")}
	s := NewSplitter(svc, nil)

	parts, strategy := s.Split(context.Background(), "devālaya", ModeSandhi)
	assert.Equal(t, []string{"deva", "ālaya"}, parts)
	assert.Equal(t, StrategyTable, strategy)
	assert.Equal(t, 1, svc.calls)
}

func TestSplitterHeuristicVowelBoundary(t *testing.T) {
	s := NewSplitter(nil, nil)

	parts, strategy := s.Split(context.Background(), "mahāātman", ModeSandhi)
	assert.Equal(t, []string{"mahā", "ātman"}, parts)
	assert.Equal(t, StrategyHeuristic, strategy)
}

func TestSplitterHeuristicVisargaBoundary(t *testing.T) {
	s := NewSplitter(nil, nil)

	parts, strategy := s.Split(context.Background(), "namaḥkāra", ModeSandhi)
	assert.Equal(t, []string{"namaḥ", "kāra"}, parts)
	assert.Equal(t, StrategyHeuristic, strategy)
}

func TestSplitterIdentityFallback(t *testing.T) {
	s := NewSplitter(nil, nil)

	parts, strategy := s.Split(context.Background(), "deva", ModeSandhi)
	assert.Equal(t, []string{"deva"}, parts)
	assert.Equal(t, StrategyNone, strategy)
}

func TestSplitterTableCopyIsIndependent(t *testing.T) {
	s := NewSplitter(nil, nil)

	parts, _ := s.Split(context.Background(), "himālaya", ModeSandhi)
	parts[0] = "mutated"

	again, _ := s.Split(context.Background(), "himālaya", ModeSandhi)
	assert.Equal(t, []string{"hima", "ālaya"}, again)
}
