// Copyright 2019 Zhenhua Yang. All rights reserved.
// Licensed under the MIT License that can be
// found in the LICENSE file in the root directory.

package storage

import "strings"

// Row keeps its columns in insertion order. Column names match
// case-insensitively; every value is text.
type Row struct {
	ID     uint64
	Keys   []string
	Values []string
}

func NewRow() *Row {
	return &Row{}
}

func (r *Row) position(key string) int {
	for i, k := range r.Keys {
		if strings.EqualFold(k, key) {
			return i
		}
	}
	return -1
}

func (r *Row) Get(key string) (string, bool) {
	if i := r.position(key); i >= 0 {
		return r.Values[i], true
	}
	return "", false
}

func (r *Row) Has(key string) bool {
	return r.position(key) >= 0
}

// Lookup tries the key itself, then any qualified key ending in ".key".
func (r *Row) Lookup(key string) (string, bool) {
	if v, ok := r.Get(key); ok {
		return v, true
	}
	suffix := "." + strings.ToLower(key)
	for i, k := range r.Keys {
		if strings.HasSuffix(strings.ToLower(k), suffix) {
			return r.Values[i], true
		}
	}
	return "", false
}

// Set overwrites an existing column (keeping its original spelling) or
// appends a new one.
func (r *Row) Set(key, value string) {
	if i := r.position(key); i >= 0 {
		r.Values[i] = value
		return
	}
	r.Keys = append(r.Keys, key)
	r.Values = append(r.Values, value)
}

func (r *Row) Len() int {
	return len(r.Keys)
}

func (r *Row) Clone() *Row {
	return &Row{
		ID:     r.ID,
		Keys:   append([]string(nil), r.Keys...),
		Values: append([]string(nil), r.Values...),
	}
}
