// Package rxdb exposes gorm queries as cold Observables.
package rxdb

import (
	"reflect"

	"github.com/code-100-precent/lingrx/pkg/reactive"
	"gorm.io/gorm"
)

// ReactiveDB wraps a gorm.DB. Every operation returns a cold Observable
// that runs its statement once per subscription, on the subscriber's
// goroutine.
type ReactiveDB struct {
	db *gorm.DB
}

// NewReactiveDB creates a new ReactiveDB
func NewReactiveDB(db *gorm.DB) *ReactiveDB {
	return &ReactiveDB{db: db}
}

// DB returns the underlying gorm handle
func (r *ReactiveDB) DB() *gorm.DB {
	return r.db
}

// Where adds a where clause to the query
func (r *ReactiveDB) Where(query interface{}, args ...interface{}) *ReactiveDB {
	return &ReactiveDB{db: r.db.Where(query, args...)}
}

// Order adds an order clause to the query
func (r *ReactiveDB) Order(value interface{}) *ReactiveDB {
	return &ReactiveDB{db: r.db.Order(value)}
}

// Limit adds a limit clause to the query
func (r *ReactiveDB) Limit(limit int) *ReactiveDB {
	return &ReactiveDB{db: r.db.Limit(limit)}
}

// Offset adds an offset clause to the query
func (r *ReactiveDB) Offset(offset int) *ReactiveDB {
	return &ReactiveDB{db: r.db.Offset(offset)}
}

// Find emits every record matching the query. When dest points to a slice
// each element is emitted on its own, otherwise dest itself is emitted.
func (r *ReactiveDB) Find(dest interface{}, conds ...interface{}) reactive.Observable {
	return reactive.Create(func(o reactive.Observer) reactive.Disposable {
		if err := r.db.Session(&gorm.Session{}).Find(dest, conds...).Error; err != nil {
			o.OnError(err)
			return reactive.EmptyDisposable
		}
		emitElements(o, dest)
		o.OnCompleted()
		return reactive.EmptyDisposable
	})
}

// First emits the first record matching the query, or gorm.ErrRecordNotFound.
func (r *ReactiveDB) First(dest interface{}, conds ...interface{}) reactive.Observable {
	return reactive.Create(func(o reactive.Observer) reactive.Disposable {
		if err := r.db.Session(&gorm.Session{}).First(dest, conds...).Error; err != nil {
			o.OnError(err)
			return reactive.EmptyDisposable
		}
		o.OnNext(dest)
		o.OnCompleted()
		return reactive.EmptyDisposable
	})
}

// Create inserts value and emits it
func (r *ReactiveDB) Create(value interface{}) reactive.Observable {
	return reactive.Create(func(o reactive.Observer) reactive.Disposable {
		if err := r.db.Create(value).Error; err != nil {
			o.OnError(err)
			return reactive.EmptyDisposable
		}
		o.OnNext(value)
		o.OnCompleted()
		return reactive.EmptyDisposable
	})
}

// Update sets one column on the rows selected by the query and emits the
// number of affected rows.
func (r *ReactiveDB) Update(model interface{}, column string, value interface{}) reactive.Observable {
	return reactive.Create(func(o reactive.Observer) reactive.Disposable {
		result := r.db.Model(model).Update(column, value)
		if result.Error != nil {
			o.OnError(result.Error)
			return reactive.EmptyDisposable
		}
		o.OnNext(map[string]interface{}{
			"rows_affected": result.RowsAffected,
		})
		o.OnCompleted()
		return reactive.EmptyDisposable
	})
}

// Delete removes the matching rows and emits the number of affected rows
func (r *ReactiveDB) Delete(value interface{}, conds ...interface{}) reactive.Observable {
	return reactive.Create(func(o reactive.Observer) reactive.Disposable {
		result := r.db.Delete(value, conds...)
		if result.Error != nil {
			o.OnError(result.Error)
			return reactive.EmptyDisposable
		}
		o.OnNext(map[string]interface{}{
			"rows_affected": result.RowsAffected,
		})
		o.OnCompleted()
		return reactive.EmptyDisposable
	})
}

// Raw executes a raw SQL query and emits one map per row
func (r *ReactiveDB) Raw(sql string, values ...interface{}) reactive.Observable {
	return reactive.Create(func(o reactive.Observer) reactive.Disposable {
		rows, err := r.db.Raw(sql, values...).Rows()
		if err != nil {
			o.OnError(err)
			return reactive.EmptyDisposable
		}
		defer rows.Close()

		columns, err := rows.Columns()
		if err != nil {
			o.OnError(err)
			return reactive.EmptyDisposable
		}
		for rows.Next() {
			values := make([]interface{}, len(columns))
			valuePtrs := make([]interface{}, len(columns))
			for i := range values {
				valuePtrs[i] = &values[i]
			}

			if err := rows.Scan(valuePtrs...); err != nil {
				o.OnError(err)
				return reactive.EmptyDisposable
			}

			row := make(map[string]interface{}, len(columns))
			for i, col := range columns {
				row[col] = values[i]
			}
			o.OnNext(row)
		}
		if err := rows.Err(); err != nil {
			o.OnError(err)
			return reactive.EmptyDisposable
		}
		o.OnCompleted()
		return reactive.EmptyDisposable
	})
}

// emitElements sends each element of a slice (or pointer to slice) and
// anything else as a single value.
func emitElements(o reactive.Observer, dest interface{}) {
	v := reflect.ValueOf(dest)
	for v.Kind() == reflect.Ptr && !v.IsNil() {
		v = v.Elem()
	}
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		o.OnNext(dest)
		return
	}
	for i := 0; i < v.Len(); i++ {
		o.OnNext(v.Index(i).Interface())
	}
}
