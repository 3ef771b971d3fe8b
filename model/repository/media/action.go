package media

import (
	"errors"
	"fmt"

	"github.com/mitchellh/mapstructure"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Statement names understood by every Action. Callers may register more.
const (
	StmtCreate = "create"
	StmtUpdate = "update"
	StmtUpsert = "upsert"
)

// ErrUnknownStatement is returned when a persist call names a statement the action has no processor for.
var ErrUnknownStatement = errors.New("unknown statement")

// Processor executes one named statement against a decoded row.
type Processor[T any] func(db *gorm.DB, row *T) error

// Action provides generic CRUD for one table. Rows arrive as flat field maps
// keyed by column name and are decoded into T before a processor runs.
type Action[T any] struct {
	db              *gorm.DB
	processors      map[string]Processor[T]
	hasKey          func(*T) bool
	conflictColumns []string
}

// NewAction wires the create/update/upsert processors. hasKey reports whether
// a decoded row already carries its primary key; conflictColumns is the unique
// key used by the upsert statement.
func NewAction[T any](db *gorm.DB, hasKey func(*T) bool, conflictColumns ...string) *Action[T] {
	a := &Action[T]{
		db:              db,
		processors:      make(map[string]Processor[T]),
		hasKey:          hasKey,
		conflictColumns: conflictColumns,
	}
	a.processors[StmtCreate] = func(db *gorm.DB, row *T) error {
		return db.Create(row).Error
	}
	a.processors[StmtUpdate] = func(db *gorm.DB, row *T) error {
		return db.Save(row).Error
	}
	a.processors[StmtUpsert] = func(db *gorm.DB, row *T) error {
		cols := make([]clause.Column, 0, len(a.conflictColumns))
		for _, c := range a.conflictColumns {
			cols = append(cols, clause.Column{Name: c})
		}
		return db.Clauses(clause.OnConflict{Columns: cols, UpdateAll: true}).Create(row).Error
	}
	return a
}

// Register adds or replaces the processor for a statement name.
func (a *Action[T]) Register(name string, p Processor[T]) {
	a.processors[name] = p
}

// Persist decodes fields into a new row and runs the named statement.
// An empty name selects update when the row has a primary key, create otherwise.
func (a *Action[T]) Persist(fields map[string]interface{}, name string) (*T, error) {
	row := new(T)
	if err := decodeFields(fields, row); err != nil {
		return nil, err
	}
	if name == "" {
		name = StmtCreate
		if a.hasKey != nil && a.hasKey(row) {
			name = StmtUpdate
		}
	}
	p, ok := a.processors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStatement, name)
	}
	if err := p(a.db, row); err != nil {
		return nil, fmt.Errorf("%s %T: %w", name, row, err)
	}
	return row, nil
}

func decodeFields(fields map[string]interface{}, out interface{}) error {
	cfg := &mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		ZeroFields:       true,
	}
	dec, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return err
	}
	if err := dec.Decode(fields); err != nil {
		return fmt.Errorf("decode fields: %w", err)
	}
	return nil
}
