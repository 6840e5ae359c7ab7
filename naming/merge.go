package naming

import "github.com/gsarmaonline/modelloader/core"

// MergeDefaults copies every key of defaults missing from dst into dst and
// recurses into maps present on both sides. Values already in dst always
// win. dst is modified in place and returned; a nil dst is allocated.
func MergeDefaults(dst, defaults map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any, len(defaults))
	}

	for key, def := range defaults {
		existing, ok := dst[key]
		if !ok {
			dst[key] = clone(def)
			continue
		}

		existingMap, existingIsMap := asMap(existing)
		defMap, defIsMap := asMap(def)
		if !existingIsMap || !defIsMap {
			continue
		}
		if existingMap == nil {
			dst[key] = clone(def)
			continue
		}
		MergeDefaults(existingMap, defMap)
	}

	return dst
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case core.Params:
		return m, true
	default:
		return nil, false
	}
}

func clone(v any) any {
	m, ok := asMap(v)
	if !ok {
		return v
	}
	out := make(map[string]any, len(m))
	for key, value := range m {
		out[key] = clone(value)
	}
	return out
}
