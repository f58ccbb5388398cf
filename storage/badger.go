// Copyright 2019 Zhenhua Yang. All rights reserved.
// Licensed under the MIT License that can be
// found in the LICENSE file in the root directory.

package storage

import (
	"github.com/dgraph-io/badger"
	"github.com/huaouo/tabsql/utils"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	tablePrefix  = "@TP@"
	seqPrefix    = "@TS@"
	rowSeparator = '@'
)

// Key Layout:
//   tablePrefix + table     -> msgpack(tableMeta)
//   table + "@" + BE(rowID) -> snappy(msgpack(Row))
//   seqPrefix + table       -> LE(next leased row id)
func metaKey(table string) []byte {
	return concatBytes(tablePrefix, tableKey(table))
}

func seqKey(table string) []byte {
	return concatBytes(seqPrefix, tableKey(table))
}

func rowPrefix(table string) []byte {
	return concatBytes(tableKey(table), byte(rowSeparator))
}

func rowKey(table string, id uint64) []byte {
	return concatBytes(rowPrefix(table), packUint64(id))
}

// pendingWrite with a nil val is a delete.
type pendingWrite struct {
	key []byte
	val []byte
}

// BadgerStore keeps every table in memory and mirrors it to badger on
// SaveTable.
type BadgerStore struct {
	kv     *badger.DB
	tables map[string]*Table
	seqs   map[string]*seq
	logger *zap.SugaredLogger
}

func OpenBadger(dir string, logger *zap.SugaredLogger) (*BadgerStore, error) {
	opts := badger.DefaultOptions
	opts.Dir = dir
	opts.ValueDir = opts.Dir
	kv, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "open badger at %s", dir)
	}

	s := &BadgerStore{
		kv:     kv,
		tables: make(map[string]*Table),
		seqs:   make(map[string]*seq),
		logger: utils.OrNop(logger),
	}
	if err := s.load(); err != nil {
		_ = kv.Close()
		return nil, err
	}
	s.logger.Infof("Loaded %d table(s) from %s", len(s.tables), dir)
	return s, nil
}

func (s *BadgerStore) load() error {
	return s.kv.View(func(txn *badger.Txn) error {
		var metas []tableMeta
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		tablePrefixBytes := []byte(tablePrefix)
		for it.Seek(tablePrefixBytes); it.ValidForPrefix(tablePrefixBytes); it.Next() {
			val, err := it.Item().Value()
			if err != nil {
				it.Close()
				return errors.Wrap(err, "load table meta")
			}
			var meta tableMeta
			if err := msgpackUnmarshal(val, &meta); err != nil {
				it.Close()
				return err
			}
			metas = append(metas, meta)
		}
		it.Close()

		for _, meta := range metas {
			t := NewTable(meta.Name, meta.Columns)
			rows, err := scanRows(txn, meta.Name)
			if err != nil {
				return err
			}
			t.load(rows)
			s.attach(t)
		}
		return nil
	})
}

func scanRows(txn *badger.Txn, table string) ([]*Row, error) {
	it := txn.NewIterator(badger.DefaultIteratorOptions)
	defer it.Close()

	var rows []*Row
	prefix := rowPrefix(table)
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		val, err := it.Item().Value()
		if err != nil {
			return nil, errors.Wrapf(err, "load rows of %s", table)
		}
		r, err := decodeRow(val)
		if err != nil {
			return nil, errors.WithMessagef(err, "load rows of %s", table)
		}
		rows = append(rows, r)
	}
	return rows, nil
}

func (s *BadgerStore) attach(t *Table) {
	sq := newSeq(s.kv, seqKey(t.Name))
	t.ids = sq
	s.seqs[tableKey(t.Name)] = sq
	s.tables[tableKey(t.Name)] = t
}

func (s *BadgerStore) GetTable(name string) (*Table, error) {
	if t, ok := s.tables[tableKey(name)]; ok {
		return t, nil
	}
	return nil, tableNotExist(name)
}

func (s *BadgerStore) AddTable(t *Table) error {
	if _, ok := s.tables[tableKey(t.Name)]; ok {
		return tableExists(t.Name)
	}
	s.attach(t)
	if err := s.SaveTable(t.Name); err != nil {
		delete(s.tables, tableKey(t.Name))
		delete(s.seqs, tableKey(t.Name))
		return err
	}
	return nil
}

func (s *BadgerStore) DropTable(name string) error {
	if _, ok := s.tables[tableKey(name)]; !ok {
		return tableNotExist(name)
	}

	writes := []pendingWrite{{key: metaKey(name)}, {key: seqKey(name)}}
	stale, err := s.rowKeys(name)
	if err != nil {
		return err
	}
	for _, k := range stale {
		writes = append(writes, pendingWrite{key: k})
	}
	if err := s.apply(writes); err != nil {
		return errors.WithMessagef(err, "drop table %s", name)
	}
	delete(s.tables, tableKey(name))
	delete(s.seqs, tableKey(name))
	return nil
}

// SaveTable rewrites the table meta and rows, removing rows that are gone.
func (s *BadgerStore) SaveTable(name string) error {
	t, err := s.GetTable(name)
	if err != nil {
		return err
	}

	metaBytes, err := msgpackMarshal(tableMeta{Name: t.Name, Columns: t.Columns})
	if err != nil {
		return err
	}
	writes := []pendingWrite{{key: metaKey(name), val: metaBytes}}

	live := make(map[string]bool, len(t.Rows))
	for _, r := range t.Rows {
		content, err := encodeRow(r)
		if err != nil {
			return err
		}
		key := rowKey(name, r.ID)
		live[string(key)] = true
		writes = append(writes, pendingWrite{key: key, val: content})
	}

	existing, err := s.rowKeys(name)
	if err != nil {
		return err
	}
	for _, k := range existing {
		if !live[string(k)] {
			writes = append(writes, pendingWrite{key: k})
		}
	}

	if err := s.apply(writes); err != nil {
		return errors.WithMessagef(err, "save table %s", name)
	}
	s.logger.Debugf("Saved table %s with %d row(s)", name, len(t.Rows))
	return nil
}

func (s *BadgerStore) rowKeys(table string) ([][]byte, error) {
	var keys [][]byte
	err := s.kv.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		prefix := rowPrefix(table)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, append([]byte{}, it.Item().Key()...))
		}
		return nil
	})
	return keys, errors.Wrapf(err, "scan row keys of %s", table)
}

// apply commits writes, splitting them into several transactions when one
// grows too big.
func (s *BadgerStore) apply(writes []pendingWrite) error {
	kvTxn := s.kv.NewTransaction(true)
	defer func() { kvTxn.Discard() }()

	for _, w := range writes {
		err := s.put(kvTxn, w)
		if err == badger.ErrTxnTooBig {
			if err := kvTxn.Commit(nil); err != nil {
				return errors.Wrap(err, "commit")
			}
			kvTxn = s.kv.NewTransaction(true)
			err = s.put(kvTxn, w)
		}
		if err != nil {
			return errors.Wrap(err, "write")
		}
	}
	return errors.Wrap(kvTxn.Commit(nil), "commit")
}

func (s *BadgerStore) put(kvTxn *badger.Txn, w pendingWrite) error {
	if w.val == nil {
		return kvTxn.Delete(w.key)
	}
	return kvTxn.Set(w.key, w.val)
}

func (s *BadgerStore) TableNames() []string {
	return sortedNames(s.tables)
}

func (s *BadgerStore) Close() error {
	for name, sq := range s.seqs {
		if err := sq.release(); err != nil {
			s.logger.Errorf("Cannot release sequence of %s: %v", name, err)
		}
	}
	return errors.Wrap(s.kv.Close(), "close badger")
}
