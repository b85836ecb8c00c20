package sample

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadReference(t *testing.T) {
	ref, err := LoadReference()
	require.NoError(t, err)

	t.Run("catalog is populated", func(t *testing.T) {
		assert.NotEmpty(t, ref.Categories)
		assert.NotEmpty(t, ref.Subscriptions)
		assert.NotEmpty(t, ref.ATMNetworks)
	})

	t.Run("weights align with categories", func(t *testing.T) {
		weights := ref.CategoryWeights()
		require.Len(t, weights, len(ref.Categories))
		for i, w := range weights {
			assert.Equal(t, ref.Categories[i].Weight, w)
			assert.Positive(t, w, "category %s", ref.Categories[i].Name)
		}
	})

	t.Run("every profile name resolves", func(t *testing.T) {
		for _, c := range ref.Categories {
			_, ok := amountProfiles[c.Profile]
			assert.True(t, ok, "category %s names profile %q", c.Name, c.Profile)
		}
	})

	t.Run("merchant ids are unique across the catalog", func(t *testing.T) {
		seen := make(map[string]string)
		for _, c := range ref.Categories {
			for _, m := range c.Merchants {
				require.NotEmpty(t, m.ID)
				if prev, ok := seen[m.ID]; ok {
					t.Fatalf("merchant id %s used by both %s and %s", m.ID, prev, m.Name)
				}
				seen[m.ID] = m.Name
			}
		}
	})

	t.Run("repeat loads return the same catalog", func(t *testing.T) {
		again, err := LoadReference()
		require.NoError(t, err)
		assert.Same(t, ref, again)
	})
}
