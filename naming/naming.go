package naming

import (
	"path"
	"strings"

	"github.com/jinzhu/inflection"
	"gorm.io/gorm/schema"
)

var namer = schema.NamingStrategy{}

// Underscore converts a CamelCase identifier to snake_case the way gorm
// derives column names.
func Underscore(name string) string {
	return namer.ColumnName("", name)
}

// TableName derives the default table name of a model: the underscored
// name with every segment pluralized on its own, so UserAccount becomes
// users_accounts.
func TableName(model string) string {
	segments := strings.Split(Underscore(model), "_")
	for i, segment := range segments {
		if segment == "" {
			continue
		}
		segments[i] = inflection.Plural(segment)
	}
	return strings.Join(segments, "_")
}

// ModelName strips the directory and suffix from a model file name.
func ModelName(file, suffix string) string {
	return strings.TrimSuffix(path.Base(file), suffix)
}
