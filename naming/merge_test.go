package naming

import (
	"testing"

	"github.com/gsarmaonline/modelloader/core"
	"github.com/stretchr/testify/assert"
)

func TestMergeDefaults(t *testing.T) {
	tests := []struct {
		name     string
		dst      map[string]any
		defaults map[string]any
		want     map[string]any
	}{
		{
			name:     "nil destination gets defaults",
			dst:      nil,
			defaults: map[string]any{"tableName": "users"},
			want:     map[string]any{"tableName": "users"},
		},
		{
			name:     "explicit value wins",
			dst:      map[string]any{"tableName": "custom"},
			defaults: map[string]any{"tableName": "users"},
			want:     map[string]any{"tableName": "custom"},
		},
		{
			name:     "missing keys are added",
			dst:      map[string]any{"schema": "auth"},
			defaults: map[string]any{"tableName": "users"},
			want:     map[string]any{"schema": "auth", "tableName": "users"},
		},
		{
			name: "nested maps merge without overwrite",
			dst: map[string]any{
				"indexes": map[string]any{"email": "unique"},
			},
			defaults: map[string]any{
				"indexes": map[string]any{"email": "btree", "name": "btree"},
			},
			want: map[string]any{
				"indexes": map[string]any{"email": "unique", "name": "btree"},
			},
		},
		{
			name:     "scalar in destination is not replaced by a map",
			dst:      map[string]any{"indexes": false},
			defaults: map[string]any{"indexes": map[string]any{"name": "btree"}},
			want:     map[string]any{"indexes": false},
		},
		{
			name:     "params values are treated as maps",
			dst:      map[string]any{"options": core.Params{"a": 1}},
			defaults: map[string]any{"options": map[string]any{"a": 2, "b": 3}},
			want:     map[string]any{"options": core.Params{"a": 1, "b": 3}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MergeDefaults(tt.dst, tt.defaults)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMergeDefaultsMutatesInPlace(t *testing.T) {
	params := core.Params{"tableName": "custom"}
	MergeDefaults(params, core.Params{"tableName": "users", "schema": "public"})

	assert.Equal(t, "custom", params.TableName())
	assert.Equal(t, "public", params.Schema())
}

func TestMergeDefaultsCopiesNestedDefaults(t *testing.T) {
	defaults := map[string]any{"options": map[string]any{"a": 1}}
	got := MergeDefaults(nil, defaults)

	got["options"].(map[string]any)["a"] = 2
	assert.Equal(t, 1, defaults["options"].(map[string]any)["a"])
}
