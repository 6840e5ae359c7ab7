package orm

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/gsarmaonline/modelloader/core"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

var columnPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type attribute struct {
	name string
	core.Attribute

	softDelete bool
}

func buildAttributes(fields core.Fields, params core.Params) ([]attribute, error) {
	names := make([]string, 0, len(fields))
	hasPrimaryKey := false
	for name, attr := range fields {
		if !columnPattern.MatchString(name) {
			return nil, core.ErrInvalidField{Field: name, Message: "invalid column name"}
		}
		if attr.Type.IsZero() {
			return nil, core.ErrInvalidField{Field: name, Message: "missing type"}
		}
		if attr.PrimaryKey {
			hasPrimaryKey = true
		}
		names = append(names, name)
	}
	sort.Strings(names)

	attrs := make([]attribute, 0, len(names)+4)
	if _, ok := fields[core.ColumnID]; !ok && !hasPrimaryKey {
		attrs = append(attrs, attribute{name: core.ColumnID, Attribute: core.PrimaryKeyAttribute()})
	}
	for _, name := range names {
		attrs = append(attrs, attribute{name: name, Attribute: fields[name]})
	}

	if params.Bool(core.ParamTimestamps, true) {
		for _, column := range []string{core.ColumnCreatedAt, core.ColumnUpdatedAt} {
			if _, ok := fields[column]; !ok {
				attrs = append(attrs, attribute{name: column, Attribute: core.TimestampAttribute()})
			}
		}
	}
	if params.Bool(core.ParamParanoid, false) {
		if _, ok := fields[core.ColumnDeletedAt]; !ok {
			attrs = append(attrs, attribute{name: core.ColumnDeletedAt, Attribute: core.Attribute{Type: core.DefaultTypes.Date}, softDelete: true})
		}
	}

	return attrs, nil
}

// fieldName maps a column to the exported Go field holding it.
func fieldName(column string) (string, error) {
	title := cases.Title(language.Und, cases.NoLower).String(strings.ReplaceAll(column, "_", " "))
	name := strings.ReplaceAll(title, " ", "")
	if name == "" || !unicode.IsUpper([]rune(name)[0]) {
		return "", core.ErrInvalidField{Field: column, Message: "cannot be mapped to a struct field"}
	}
	return name, nil
}

func (a attribute) goType() reflect.Type {
	if a.softDelete {
		return reflect.TypeOf(gorm.DeletedAt{})
	}
	return a.Type.GoType(a.Nullable())
}

func (a attribute) structTag() reflect.StructTag {
	settings := []string{"column:" + a.name}
	if extra := a.Type.GormTag(); extra != "" {
		settings = append(settings, extra)
	}
	if a.PrimaryKey {
		settings = append(settings, "primaryKey")
	}
	if a.AutoIncrement {
		settings = append(settings, "autoIncrement")
	}
	if !a.PrimaryKey && !a.Nullable() {
		settings = append(settings, "not null")
	}
	if a.Unique {
		settings = append(settings, "unique")
	}
	if a.Index || a.softDelete {
		settings = append(settings, "index")
	}
	if a.Size > 0 {
		settings = append(settings, "size:"+strconv.Itoa(a.Size))
	}
	if a.Default != nil {
		settings = append(settings, "default:"+escapeTagValue(fmt.Sprint(a.Default)))
	}
	if a.Comment != "" {
		settings = append(settings, "comment:"+escapeTagValue(a.Comment))
	}

	return reflect.StructTag(fmt.Sprintf("gorm:%s json:%s",
		strconv.Quote(strings.Join(settings, ";")),
		strconv.Quote(a.name),
	))
}

func escapeTagValue(v string) string {
	return strings.ReplaceAll(v, ";", `\;`)
}
