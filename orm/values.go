package orm

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gsarmaonline/modelloader/core"
)

var dateLayouts = []string{time.RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02"}

// ParseValue converts text, such as a query parameter, to the Go type
// stored in column.
func (m *Model) ParseValue(column, raw string) (any, error) {
	attr, ok := m.Attribute(column)
	if !ok {
		return nil, core.ErrInvalidField{Field: column, Message: "unknown attribute"}
	}

	var (
		v   any
		err error
	)
	types := m.engine.types
	switch attr.Type.Key {
	case types.String.Key, types.Text.Key:
		return raw, nil
	case types.Integer.Key:
		v, err = strconv.Atoi(raw)
	case types.BigInt.Key:
		v, err = strconv.ParseInt(raw, 10, 64)
	case types.Float.Key:
		v, err = strconv.ParseFloat(raw, 64)
	case types.Boolean.Key:
		v, err = strconv.ParseBool(raw)
	case types.Date.Key:
		v, err = parseDate(raw)
	case types.UUID.Key:
		v, err = uuid.Parse(raw)
	default:
		return nil, core.ErrInvalidField{Field: column, Message: "cannot compare " + attr.Type.Key + " values"}
	}
	if err != nil {
		return nil, core.ErrInvalidField{
			Field:   column,
			Message: fmt.Sprintf("invalid %s value %q", strings.ToLower(attr.Type.Key), raw),
		}
	}
	return v, nil
}

func parseDate(raw string) (time.Time, error) {
	var err error
	for _, layout := range dateLayouts {
		var t time.Time
		if t, err = time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}
