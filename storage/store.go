// Copyright 2019 Zhenhua Yang. All rights reserved.
// Licensed under the MIT License that can be
// found in the LICENSE file in the root directory.

package storage

import (
	"fmt"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
	"strings"
)

var (
	TableNotExist = errors.New("table doesn't exist")
	TableExists   = errors.New("table already exists")
)

// TableError ties TableNotExist or TableExists to a table name.
type TableError struct {
	Err   error
	Table string
}

func (e *TableError) Error() string {
	if e.Err == TableExists {
		return fmt.Sprintf("Table '%s' already exists", e.Table)
	}
	return fmt.Sprintf("Table '%s' doesn't exist", e.Table)
}

func (e *TableError) Unwrap() error {
	return e.Err
}

func (e *TableError) Cause() error {
	return e.Err
}

func tableNotExist(name string) error {
	return &TableError{Err: TableNotExist, Table: name}
}

func tableExists(name string) error {
	return &TableError{Err: TableExists, Table: name}
}

// Store owns the tables. GetTable hands out the live table; callers mutate
// it in place and call SaveTable to persist it.
type Store interface {
	GetTable(name string) (*Table, error)
	AddTable(t *Table) error
	DropTable(name string) error
	SaveTable(name string) error
	TableNames() []string
	Close() error
}

func tableKey(name string) string {
	return strings.ToLower(name)
}

type MemStore struct {
	tables map[string]*Table
}

func NewMemStore() *MemStore {
	return &MemStore{tables: make(map[string]*Table)}
}

func (s *MemStore) GetTable(name string) (*Table, error) {
	if t, ok := s.tables[tableKey(name)]; ok {
		return t, nil
	}
	return nil, tableNotExist(name)
}

func (s *MemStore) AddTable(t *Table) error {
	if _, ok := s.tables[tableKey(t.Name)]; ok {
		return tableExists(t.Name)
	}
	s.tables[tableKey(t.Name)] = t
	return nil
}

func (s *MemStore) DropTable(name string) error {
	if _, ok := s.tables[tableKey(name)]; !ok {
		return tableNotExist(name)
	}
	delete(s.tables, tableKey(name))
	return nil
}

func (s *MemStore) SaveTable(string) error {
	return nil
}

func (s *MemStore) TableNames() []string {
	return sortedNames(s.tables)
}

func (s *MemStore) Close() error {
	return nil
}

func sortedNames(tables map[string]*Table) []string {
	names := make([]string, 0, len(tables))
	for _, t := range tables {
		names = append(names, t.Name)
	}
	slices.Sort(names)
	return names
}
