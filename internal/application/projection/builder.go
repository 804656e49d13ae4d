package projection

import "github.com/stockpile/backend/internal/domain/shared"

// Builder accumulates a resource's default fields in order.
type Builder struct {
	fields []Field
}

// NewBuilder starts an empty field list.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add appends a field.
func (b *Builder) Add(name string, value any) *Builder {
	b.fields = append(b.fields, F(name, value))
	return b
}

// Relation appends an id/name pair for a resolved relation.
func (b *Builder) Relation(idKey, nameKey string, ref *Ref) *Builder {
	b.fields = append(b.fields, RelationPair(idKey, nameKey, ref)...)
	return b
}

// Audit appends created_by, updated_by, created_at and updated_at.
func (b *Builder) Audit(a *shared.Audit) *Builder {
	return b.
		Add("created_by", a.CreatedBy).
		Add("updated_by", a.UpdatedBy).
		Timestamps(a)
}

// Timestamps appends created_at and updated_at in native form.
func (b *Builder) Timestamps(a *shared.Audit) *Builder {
	return b.
		Add("created_at", Timestamp(a.CreatedAt)).
		Add("updated_at", Timestamp(a.UpdatedAt))
}

// LiteralTimestamps appends created_at and updated_at in LiteralTimeFormat.
func (b *Builder) LiteralTimestamps(a *shared.Audit) *Builder {
	return b.
		Add("created_at", LiteralTimestamp(a.CreatedAt)).
		Add("updated_at", LiteralTimestamp(a.UpdatedAt))
}

// Fields returns the accumulated fields.
func (b *Builder) Fields() []Field {
	return b.fields
}
