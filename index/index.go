// Copyright 2019 Zhenhua Yang. All rights reserved.
// Licensed under the MIT License that can be
// found in the LICENSE file in the root directory.

package index

import (
	"github.com/huaouo/tabsql/storage"
	"github.com/huaouo/tabsql/utils"
	"golang.org/x/exp/slices"
	"strings"
)

// bucket keys go through utils.CanonicalValue, so two values share a
// bucket exactly when they compare equal with '='.
type columnIndex struct {
	table   string
	column  string
	buckets map[string][]uint64
}

func (ci *columnIndex) add(row *storage.Row) {
	v, ok := row.Get(ci.column)
	if !ok {
		return
	}
	key := utils.CanonicalValue(v)
	if slices.Contains(ci.buckets[key], row.ID) {
		return
	}
	ci.buckets[key] = append(ci.buckets[key], row.ID)
}

func (ci *columnIndex) remove(row *storage.Row) {
	v, ok := row.Get(ci.column)
	if !ok {
		return
	}
	key := utils.CanonicalValue(v)
	ids := ci.buckets[key]
	i := slices.Index(ids, row.ID)
	if i < 0 {
		return
	}
	ids = slices.Delete(ids, i, i+1)
	if len(ids) == 0 {
		delete(ci.buckets, key)
	} else {
		ci.buckets[key] = ids
	}
}

// Manager maps (table, column) to value buckets of row ids. Table and
// column names are case-insensitive.
type Manager struct {
	indexes map[string]*columnIndex
}

func NewManager() *Manager {
	return &Manager{indexes: make(map[string]*columnIndex)}
}

func indexKey(table, column string) string {
	return strings.ToLower(table) + "." + strings.ToLower(column)
}

// AddIndex rebuilds the index of table.column from rows. Rows without the
// column are skipped.
func (m *Manager) AddIndex(table, column string, rows []*storage.Row) {
	ci := &columnIndex{
		table:   table,
		column:  column,
		buckets: make(map[string][]uint64),
	}
	for _, r := range rows {
		ci.add(r)
	}
	m.indexes[indexKey(table, column)] = ci
}

func (m *Manager) HasIndex(table, column string) bool {
	_, ok := m.indexes[indexKey(table, column)]
	return ok
}

// Lookup returns the ids of rows whose column equals value. A missing
// index or an empty bucket is a miss.
func (m *Manager) Lookup(table, column, value string) ([]uint64, bool) {
	ci, ok := m.indexes[indexKey(table, column)]
	if !ok {
		return nil, false
	}
	ids, ok := ci.buckets[utils.CanonicalValue(value)]
	if !ok {
		return nil, false
	}
	return append([]uint64(nil), ids...), true
}

// UpdateIndex adds row to every index of table.
func (m *Manager) UpdateIndex(table string, row *storage.Row) {
	for _, ci := range m.tableIndexes(table) {
		ci.add(row)
	}
}

// RemoveRow drops row from every index of table. The row must still hold
// the values it was indexed under.
func (m *Manager) RemoveRow(table string, row *storage.Row) {
	for _, ci := range m.tableIndexes(table) {
		ci.remove(row)
	}
}

func (m *Manager) DropTable(table string) {
	for key, ci := range m.indexes {
		if strings.EqualFold(ci.table, table) {
			delete(m.indexes, key)
		}
	}
}

// Columns lists the indexed columns of table, sorted.
func (m *Manager) Columns(table string) []string {
	var columns []string
	for _, ci := range m.tableIndexes(table) {
		columns = append(columns, ci.column)
	}
	slices.Sort(columns)
	return columns
}

func (m *Manager) tableIndexes(table string) []*columnIndex {
	var found []*columnIndex
	for _, ci := range m.indexes {
		if strings.EqualFold(ci.table, table) {
			found = append(found, ci)
		}
	}
	return found
}
