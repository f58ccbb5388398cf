// Copyright 2019 Zhenhua Yang. All rights reserved.
// Licensed under the MIT License that can be
// found in the LICENSE file in the root directory.

package storage

import "strings"

type idAllocator interface {
	getNext() (uint64, error)
}

// counter hands out ids for tables that are not backed by a sequence.
type counter struct {
	next uint64
}

func (c *counter) getNext() (uint64, error) {
	c.next++
	return c.next, nil
}

// Table is the mutable row collection handed out by a Store. Rows keep a
// stable ID for their whole life, so indexes can refer to them by ID.
type Table struct {
	Name    string
	Columns []string
	Rows    []*Row

	ids  idAllocator
	byID map[uint64]*Row
}

func NewTable(name string, columns []string) *Table {
	return &Table{
		Name:    name,
		Columns: append([]string(nil), columns...),
		ids:     &counter{},
		byID:    make(map[uint64]*Row),
	}
}

// load installs rows that already carry ids.
func (t *Table) load(rows []*Row) {
	c, isCounter := t.ids.(*counter)
	for _, r := range rows {
		t.Rows = append(t.Rows, r)
		t.byID[r.ID] = r
		if isCounter && r.ID > c.next {
			c.next = r.ID
		}
	}
}

func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if strings.EqualFold(c, name) {
			return true
		}
	}
	return false
}

// AddColumn registers a column name and reports whether it was new.
func (t *Table) AddColumn(name string) bool {
	if t.HasColumn(name) {
		return false
	}
	t.Columns = append(t.Columns, name)
	return true
}

// Append assigns the row a fresh ID and adds it to the table.
func (t *Table) Append(row *Row) error {
	id, err := t.ids.getNext()
	if err != nil {
		return err
	}
	row.ID = id
	for _, k := range row.Keys {
		t.AddColumn(k)
	}
	t.Rows = append(t.Rows, row)
	t.byID[id] = row
	return nil
}

func (t *Table) RowByID(id uint64) (*Row, bool) {
	r, ok := t.byID[id]
	return r, ok
}

// Remove deletes the given rows and returns how many were present.
func (t *Table) Remove(rows []*Row) int {
	doomed := make(map[uint64]bool, len(rows))
	for _, r := range rows {
		if _, ok := t.byID[r.ID]; ok {
			doomed[r.ID] = true
		}
	}

	kept := t.Rows[:0]
	for _, r := range t.Rows {
		if doomed[r.ID] {
			delete(t.byID, r.ID)
			continue
		}
		kept = append(kept, r)
	}
	for i := len(kept); i < len(t.Rows); i++ {
		t.Rows[i] = nil
	}
	t.Rows = kept
	return len(doomed)
}
