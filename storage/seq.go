// Copyright 2019 Zhenhua Yang. All rights reserved.
// Licensed under the MIT License that can be
// found in the LICENSE file in the root directory.

package storage

import (
	"encoding/binary"
	"github.com/dgraph-io/badger"
	"github.com/pkg/errors"
	"sync"
)

const bandwidth = 128

// seq leases row ids from badger in blocks of bandwidth, so a crash can
// skip ids but never reuse one.
type seq struct {
	sync.Mutex
	kv     *badger.DB
	key    []byte
	next   uint64
	leased uint64
}

func newSeq(kv *badger.DB, key []byte) *seq {
	return &seq{kv: kv, key: key}
}

func (s *seq) updateLease() error {
	return s.kv.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(s.key)
		if err == badger.ErrKeyNotFound {
			s.next = 1
		} else if err != nil {
			return errors.Wrap(err, "update lease: get")
		} else {
			val, err := item.Value()
			if err != nil {
				return errors.Wrap(err, "update lease: value")
			}
			s.next = binary.LittleEndian.Uint64(val)
		}

		lease := s.next + bandwidth
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], lease)
		if err := txn.Set(s.key, buf[:]); err != nil {
			return errors.Wrap(err, "update lease: set")
		}
		s.leased = lease
		return nil
	})
}

func (s *seq) getNext() (uint64, error) {
	s.Lock()
	defer s.Unlock()
	if s.next >= s.leased {
		if err := s.updateLease(); err != nil {
			return 0, err
		}
	}
	val := s.next
	s.next++
	return val, nil
}

// release gives the unused part of the lease back.
func (s *seq) release() error {
	s.Lock()
	defer s.Unlock()
	if s.leased == 0 {
		return nil
	}
	err := s.kv.Update(func(txn *badger.Txn) error {
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], s.next)
		return txn.Set(s.key, buf[:])
	})
	if err != nil {
		return errors.Wrap(err, "release lease")
	}
	s.leased = s.next
	return nil
}
