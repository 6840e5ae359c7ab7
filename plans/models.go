package plans

import (
	"context"
	"fmt"

	"github.com/gsarmaonline/modelloader/core"
	"github.com/gsarmaonline/modelloader/orm"
)

const (
	IntervalMonthly = "monthly"
	IntervalYearly  = "yearly"
)

func defineFeature(types core.Types, models core.Registry, _ any) (*core.Definition, error) {
	return &core.Definition{
		Name: "Feature",
		Fields: core.Fields{
			"name":        {Type: types.String, AllowNull: core.Bool(false), Unique: true},
			"description": {Type: types.Text},
			"is_active":   {Type: types.Boolean, Default: true},
		},
		Params: core.Params{core.ParamParanoid: true},
		InstanceMethods: map[string]core.InstanceMethod{
			// deletable is false while the feature is part of an active plan.
			// Plans are registered after features, so the lookup happens
			// through the live registry at call time.
			"deletable": func(r core.Record, args ...any) (any, error) {
				plan, joins, err := planTables(models)
				if err != nil {
					return nil, err
				}
				id, _ := r.Get(core.ColumnID)

				var count int64
				err = plan.DB(contextArg(args)).
					Joins(fmt.Sprintf("JOIN %s ON %s.id = %s.plan_id", joins.TableName(), plan.TableName(), joins.TableName())).
					Where(fmt.Sprintf("%s.feature_id = ? AND %s.is_active = ?", joins.TableName(), plan.TableName()), id, true).
					Where(fmt.Sprintf("%s.%s IS NULL", plan.TableName(), core.ColumnDeletedAt)).
					Count(&count).Error
				if err != nil {
					return nil, err
				}
				return count == 0, nil
			},
		},
	}, nil
}

func definePlan(types core.Types, _ core.Registry, _ any) (*core.Definition, error) {
	return &core.Definition{
		Name: "Plan",
		Fields: core.Fields{
			"name":        {Type: types.String, AllowNull: core.Bool(false), Unique: true},
			"description": {Type: types.Text},
			"price":       {Type: types.Float, AllowNull: core.Bool(false)},
			"interval":    {Type: types.String, AllowNull: core.Bool(false), Comment: "monthly or yearly"},
			"is_active":   {Type: types.Boolean, Default: true},
		},
		Params: core.Params{core.ParamParanoid: true},
		ClassMethods: map[string]core.ClassMethod{
			"active": func(m core.Model, args ...any) (any, error) {
				plan, ok := m.(*orm.Model)
				if !ok {
					return nil, fmt.Errorf("model %s is not backed by gorm", m.Name())
				}
				return plan.FindAll(contextArg(args), "is_active = ?", true)
			},
		},
		InstanceMethods: map[string]core.InstanceMethod{
			orm.ValidateMethod: func(r core.Record, _ ...any) (any, error) {
				interval, _ := r.Get("interval")
				switch interval {
				case IntervalMonthly, IntervalYearly:
					return true, nil
				default:
					return false, core.ErrInvalidField{Field: "interval", Message: "must be either 'monthly' or 'yearly'"}
				}
			},
		},
	}, nil
}

// definePlanFeature joins plans and features; it has no surrogate key.
func definePlanFeature(types core.Types, models core.Registry, _ any) (*core.Definition, error) {
	for _, name := range []string{"Feature", "Plan"} {
		if _, ok := models[name]; !ok {
			return nil, fmt.Errorf("plan features require model %s", name)
		}
	}

	return &core.Definition{
		Fields: core.Fields{
			"plan_id":    {Type: types.Integer, AllowNull: core.Bool(false), Index: true},
			"feature_id": {Type: types.Integer, AllowNull: core.Bool(false), Index: true},
		},
		Params: core.Params{
			core.ParamNoPrimaryKey: true,
			core.ParamTimestamps:   false,
		},
	}, nil
}

func planTables(models core.Registry) (plan, joins *orm.Model, err error) {
	plan, ok := models["Plan"].(*orm.Model)
	if !ok {
		return nil, nil, fmt.Errorf("model Plan is not loaded")
	}
	joins, ok = models["plan_feature"].(*orm.Model)
	if !ok {
		return nil, nil, fmt.Errorf("model plan_feature is not loaded")
	}
	return plan, joins, nil
}

func contextArg(args []any) context.Context {
	if len(args) > 0 {
		if ctx, ok := args[0].(context.Context); ok {
			return ctx
		}
	}
	return context.Background()
}
