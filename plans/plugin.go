package plans

import "github.com/gsarmaonline/modelloader/core"

// Plugin provides subscription plans, their features and the join between them.
type Plugin struct{}

func (Plugin) Definitions() map[string]core.DefineFunc {
	return map[string]core.DefineFunc{
		"feature":      defineFeature,
		"plan":         definePlan,
		"plan_feature": definePlanFeature,
	}
}
