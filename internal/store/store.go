// Package store is the table-scoped data access layer the repositories sit on.
//
// Every call names a table and expresses its conditions as Filters, never as
// raw SQL. Column names in filters, ordering, selections and changes are checked
// against the table's registered allowlist, so request-derived sort or filter
// keys cannot reach the query text.
package store

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"itinfo/internal/models"
	"itinfo/internal/observability"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Op is a filter operator.
type Op int

const (
	OpEq Op = iota
	OpNeq
	OpIn
	OpILike
	OpAnyILike
)

// Filter is one condition. Conditions in a slice are ANDed together.
type Filter struct {
	Op      Op
	Column  string
	Columns []string // OpAnyILike only
	Value   any
}

// Eq matches column = value.
func Eq(column string, value any) Filter { return Filter{Op: OpEq, Column: column, Value: value} }

// Neq matches column <> value.
func Neq(column string, value any) Filter { return Filter{Op: OpNeq, Column: column, Value: value} }

// In matches column IN (values).
func In(column string, values any) Filter { return Filter{Op: OpIn, Column: column, Value: values} }

// ILike matches column against a case-insensitive LIKE pattern.
func ILike(column, pattern string) Filter { return Filter{Op: OpILike, Column: column, Value: pattern} }

// AnyILike matches when any of columns matches the pattern.
func AnyILike(pattern string, columns ...string) Filter {
	return Filter{Op: OpAnyILike, Columns: columns, Value: pattern}
}

// Contains wraps s as a substring LIKE pattern, escaping LIKE metacharacters.
func Contains(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

// Order is one ORDER BY key.
type Order struct {
	Column string
	Desc   bool
}

// Count adds a correlated child-row count to each selected row, exposed as As.
type Count struct {
	Table  string // child table
	Column string // child column referencing the parent's primary key
	As     string
}

// Query describes a read.
type Query struct {
	Select  []string
	Preload []string
	Filters []Filter
	OrderBy []Order
	Counts  []Count
	Limit   int
}

// Store is the table-scoped data access interface.
type Store interface {
	Query(ctx context.Context, table string, q Query, dest any) error
	QueryOne(ctx context.Context, table string, q Query, dest any) (bool, error)
	Insert(ctx context.Context, table string, rows any) error
	Update(ctx context.Context, table string, changes map[string]any, filters ...Filter) (int64, error)
	Delete(ctx context.Context, table string, filters ...Filter) (int64, error)
}

type gormStore struct {
	db     *gorm.DB
	tables map[string]Table
}

// New returns a Store over db for the given tables.
func New(db *gorm.DB, tables ...Table) Store {
	m := make(map[string]Table, len(tables))
	for _, t := range tables {
		m[t.Name] = t
	}
	return &gormStore{db: db, tables: m}
}

var identPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

func (s *gormStore) table(name string) (Table, error) {
	t, ok := s.tables[name]
	if !ok {
		return Table{}, models.NewValidationError(fmt.Sprintf("unknown table %q", name))
	}
	return t, nil
}

func (s *gormStore) likeOp() string {
	if s.db.Dialector.Name() == "postgres" {
		return "ILIKE"
	}
	return "LIKE"
}

func (s *gormStore) applyFilters(tx *gorm.DB, t Table, filters []Filter) (*gorm.DB, error) {
	for _, f := range filters {
		switch f.Op {
		case OpEq, OpNeq, OpIn, OpILike:
			if !t.allows(f.Column) {
				return nil, disallowed(t.Name, f.Column)
			}
		case OpAnyILike:
			if len(f.Columns) == 0 {
				return nil, models.NewValidationError("search filter needs at least one column")
			}
			for _, c := range f.Columns {
				if !t.allows(c) {
					return nil, disallowed(t.Name, c)
				}
			}
		default:
			return nil, models.NewValidationError(fmt.Sprintf("unknown filter op %d", f.Op))
		}

		col := t.Name + "." + f.Column
		switch f.Op {
		case OpEq:
			tx = tx.Where(col+" = ?", f.Value)
		case OpNeq:
			tx = tx.Where(col+" <> ?", f.Value)
		case OpIn:
			tx = tx.Where(col+" IN ?", f.Value)
		case OpILike:
			tx = tx.Where(col+" "+s.likeOp()+` ? ESCAPE '\'`, f.Value)
		case OpAnyILike:
			parts := make([]string, len(f.Columns))
			args := make([]any, len(f.Columns))
			for i, c := range f.Columns {
				parts[i] = t.Name + "." + c + " " + s.likeOp() + ` ? ESCAPE '\'`
				args[i] = f.Value
			}
			tx = tx.Where("("+strings.Join(parts, " OR ")+")", args...)
		}
	}
	return tx, nil
}

func (s *gormStore) build(ctx context.Context, t Table, q Query) (*gorm.DB, error) {
	tx := s.db.WithContext(ctx).Table(t.Name)

	selects := make([]string, 0, len(q.Select)+len(q.Counts))
	for _, c := range q.Select {
		if !t.allows(c) {
			return nil, disallowed(t.Name, c)
		}
		selects = append(selects, t.Name+"."+c)
	}
	if len(q.Counts) > 0 && len(selects) == 0 {
		selects = append(selects, t.Name+".*")
	}
	for _, cnt := range q.Counts {
		child, err := s.table(cnt.Table)
		if err != nil {
			return nil, err
		}
		if !child.allows(cnt.Column) {
			return nil, disallowed(child.Name, cnt.Column)
		}
		if !identPattern.MatchString(cnt.As) {
			return nil, models.NewValidationError(fmt.Sprintf("invalid count alias %q", cnt.As))
		}
		selects = append(selects, fmt.Sprintf("(SELECT COUNT(*) FROM %s WHERE %s.%s = %s.%s) AS %s",
			child.Name, child.Name, cnt.Column, t.Name, t.PrimaryKey, cnt.As))
	}
	if len(selects) > 0 {
		tx = tx.Select(strings.Join(selects, ", "))
	}

	tx, err := s.applyFilters(tx, t, q.Filters)
	if err != nil {
		return nil, err
	}

	for _, o := range q.OrderBy {
		if !t.allows(o.Column) {
			return nil, disallowed(t.Name, o.Column)
		}
		tx = tx.Order(clause.OrderByColumn{
			Column: clause.Column{Table: t.Name, Name: o.Column},
			Desc:   o.Desc,
		})
	}
	for _, p := range q.Preload {
		tx = tx.Preload(p)
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	return tx, nil
}

func (s *gormStore) Query(ctx context.Context, table string, q Query, dest any) (err error) {
	ctx, finish := observability.StartSpan(ctx, "store", "query", attribute.String("table", table))
	defer func() { finish(err) }()

	t, err := s.table(table)
	if err != nil {
		return err
	}
	tx, err := s.build(ctx, t, q)
	if err != nil {
		return err
	}
	if err := tx.Find(dest).Error; err != nil {
		return models.NewInternalError(fmt.Errorf("query %s: %w", table, err))
	}
	return nil
}

func (s *gormStore) QueryOne(ctx context.Context, table string, q Query, dest any) (found bool, err error) {
	ctx, finish := observability.StartSpan(ctx, "store", "query_one", attribute.String("table", table))
	defer func() { finish(err) }()

	t, err := s.table(table)
	if err != nil {
		return false, err
	}
	tx, err := s.build(ctx, t, q)
	if err != nil {
		return false, err
	}
	if err := tx.Take(dest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, models.NewInternalError(fmt.Errorf("query %s: %w", table, err))
	}
	return true, nil
}

func (s *gormStore) Insert(ctx context.Context, table string, rows any) (err error) {
	ctx, finish := observability.StartSpan(ctx, "store", "insert", attribute.String("table", table))
	defer func() { finish(err) }()

	t, err := s.table(table)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Table(t.Name).Omit(clause.Associations).Create(rows).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return &models.AppError{Code: models.CodeConflict, Message: "duplicate " + table + " row", Err: err}
		}
		return models.NewInternalError(fmt.Errorf("insert %s: %w", table, err))
	}
	return nil
}

func (s *gormStore) Update(ctx context.Context, table string, changes map[string]any, filters ...Filter) (affected int64, err error) {
	ctx, finish := observability.StartSpan(ctx, "store", "update", attribute.String("table", table))
	defer func() { finish(err) }()

	t, err := s.table(table)
	if err != nil {
		return 0, err
	}
	if len(filters) == 0 {
		return 0, models.NewValidationError("update requires at least one filter")
	}
	if len(changes) == 0 {
		return 0, models.NewValidationError("update requires at least one change")
	}
	for col := range changes {
		if !t.allows(col) || col == t.PrimaryKey {
			return 0, disallowed(t.Name, col)
		}
	}

	tx, err := s.applyFilters(s.db.WithContext(ctx).Model(t.newModel()), t, filters)
	if err != nil {
		return 0, err
	}
	res := tx.Updates(changes)
	if res.Error != nil {
		return 0, models.NewInternalError(fmt.Errorf("update %s: %w", table, res.Error))
	}
	return res.RowsAffected, nil
}

func (s *gormStore) Delete(ctx context.Context, table string, filters ...Filter) (affected int64, err error) {
	ctx, finish := observability.StartSpan(ctx, "store", "delete", attribute.String("table", table))
	defer func() { finish(err) }()

	t, err := s.table(table)
	if err != nil {
		return 0, err
	}
	if len(filters) == 0 {
		return 0, models.NewValidationError("delete requires at least one filter")
	}

	tx, err := s.applyFilters(s.db.WithContext(ctx), t, filters)
	if err != nil {
		return 0, err
	}
	res := tx.Delete(t.newModel())
	if res.Error != nil {
		return 0, models.NewInternalError(fmt.Errorf("delete %s: %w", table, res.Error))
	}
	return res.RowsAffected, nil
}

func disallowed(table, column string) error {
	return models.NewValidationError(fmt.Sprintf("column %q is not available on %s", column, table))
}

// Table registers a table with its model and the columns callers may reference.
type Table struct {
	Name       string
	Model      any // pointer to a zero model value, used for updates and deletes
	PrimaryKey string
	Columns    []string
}

func (t Table) allows(column string) bool {
	for _, c := range t.Columns {
		if c == column {
			return true
		}
	}
	return false
}

func (t Table) newModel() any {
	return reflect.New(reflect.TypeOf(t.Model).Elem()).Interface()
}
