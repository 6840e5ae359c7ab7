package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableName(t *testing.T) {
	tests := []struct {
		model string
		want  string
	}{
		{model: "User", want: "users"},
		{model: "UserAccount", want: "users_accounts"},
		{model: "user_account", want: "users_accounts"},
		{model: "PlanFeature", want: "plans_features"},
		{model: "Person", want: "people"},
		{model: "Category", want: "categories"},
		{model: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			assert.Equal(t, tt.want, TableName(tt.model))
		})
	}
}

func TestTableNameIsDeterministic(t *testing.T) {
	assert.Equal(t, TableName("UserAccount"), TableName("UserAccount"))
}

func TestUnderscore(t *testing.T) {
	assert.Equal(t, "user_account", Underscore("UserAccount"))
	assert.Equal(t, "plan", Underscore("plan"))
}

func TestModelName(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		suffix string
		want   string
	}{
		{name: "plain file", file: "user.model.yaml", suffix: ".model.yaml", want: "user"},
		{name: "nested path", file: "models/UserAccount.model.yaml", suffix: ".model.yaml", want: "UserAccount"},
		{name: "no suffix match", file: "user.yaml", suffix: ".model.yaml", want: "user.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ModelName(tt.file, tt.suffix))
		})
	}
}
