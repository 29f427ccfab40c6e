package dedup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

type record struct {
	id  int
	key string
}

func byKey(r record) string { return r.key }

func TestResolve_FirstOccurrenceSurvives(t *testing.T) {
	in := []record{{1, "a"}, {2, "b"}, {3, "a"}, {4, "c"}, {5, "b"}}

	res := Resolve(in, byKey)

	assert.Equal(t, []record{{1, "a"}, {2, "b"}, {4, "c"}}, res.Survivors)
	assert.Equal(t, []record{{3, "a"}, {5, "b"}}, res.Removed)
}

func TestResolve_Empty(t *testing.T) {
	res := Resolve[record](nil, byKey)

	assert.NotNil(t, res.Survivors)
	assert.NotNil(t, res.Removed)
	assert.Empty(t, res.Survivors)
	assert.Empty(t, res.Removed)
}

func TestKey(t *testing.T) {
	assert.NotEqual(t, Key("a|b", "c"), Key("a", "b|c"))
	assert.Equal(t, Key("Jane", "Doe", "Acme"), Key("Jane", "Doe", "Acme"))
}

func TestResolve_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		keys := rapid.SliceOf(rapid.SampledFrom([]string{"a", "b", "c", "d", "e"})).Draw(t, "keys")
		in := make([]record, len(keys))
		for i, k := range keys {
			in[i] = record{id: i, key: k}
		}

		res := Resolve(in, byKey)

		// 记录总数守恒
		if len(res.Survivors)+len(res.Removed) != len(in) {
			t.Fatalf("lost records: %d + %d != %d", len(res.Survivors), len(res.Removed), len(in))
		}

		// 每个键恰好一个幸存者，且保持原相对顺序
		seen := map[string]bool{}
		lastID := -1
		for _, r := range res.Survivors {
			if seen[r.key] {
				t.Fatalf("key %q survived twice", r.key)
			}
			seen[r.key] = true
			if r.id <= lastID {
				t.Fatalf("survivors reordered at id %d", r.id)
			}
			lastID = r.id
		}
		for _, r := range res.Removed {
			if !seen[r.key] {
				t.Fatalf("removed %v has no survivor", r)
			}
		}

		// 幂等：对幸存者再跑一次不会删除任何记录
		again := Resolve(res.Survivors, byKey)
		if len(again.Removed) != 0 {
			t.Fatalf("second pass removed %d records", len(again.Removed))
		}
	})
}
