package core

// Columns every model gets unless its params say otherwise, mirroring gorm.Model.
const (
	ColumnID        = "id"
	ColumnCreatedAt = "created_at"
	ColumnUpdatedAt = "updated_at"
	ColumnDeletedAt = "deleted_at"
)

func PrimaryKeyAttribute() Attribute {
	return Attribute{
		Type:          DefaultTypes.Integer,
		PrimaryKey:    true,
		AutoIncrement: true,
	}
}

func TimestampAttribute() Attribute {
	return Attribute{Type: DefaultTypes.Date, AllowNull: Bool(false)}
}

func Bool(v bool) *bool {
	return &v
}
