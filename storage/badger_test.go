// Copyright 2019 Zhenhua Yang. All rights reserved.
// Licensed under the MIT License that can be
// found in the LICENSE file in the root directory.

package storage

import (
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"io/ioutil"
	"os"
	"testing"
)

func openStoreForTest(t *testing.T, dir string) *BadgerStore {
	s, err := OpenBadger(dir, nil)
	if err != nil {
		t.Fatalf("Cannot open DB file: %v", err)
	}
	return s
}

func tempDirForTest(t *testing.T) string {
	dir, err := ioutil.TempDir("", "tabsql-storage")
	if err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestBadgerRoundTrip(t *testing.T) {
	dir := tempDirForTest(t)
	defer os.RemoveAll(dir)

	s := openStoreForTest(t, dir)
	users := NewTable("Users", []string{"id", "name"})
	assert.Nil(t, s.AddTable(users))
	r1 := newTestRow("id", "1", "name", "alice")
	r2 := newTestRow("id", "2", "name", "bob")
	r3 := newTestRow("id", "3", "name", "carol")
	for _, r := range []*Row{r1, r2, r3} {
		assert.Nil(t, users.Append(r))
	}
	users.Remove([]*Row{r2})
	r3.Set("name", "caroline")
	assert.Nil(t, s.SaveTable("users"))

	assert.Nil(t, s.AddTable(NewTable("gone", []string{"x"})))
	assert.Nil(t, s.DropTable("gone"))
	assert.Nil(t, s.Close())

	s = openStoreForTest(t, dir)
	defer s.Close()
	assert.Equal(t, []string{"Users"}, s.TableNames())

	loaded, err := s.GetTable("users")
	assert.Nil(t, err)
	assert.Equal(t, []string{"id", "name"}, loaded.Columns)
	assert.Equal(t, 2, len(loaded.Rows))
	assert.Equal(t, r1.Values, loaded.Rows[0].Values)
	assert.Equal(t, []string{"3", "caroline"}, loaded.Rows[1].Values)

	// Fresh ids never collide with ids handed out before the restart.
	r4 := newTestRow("id", "4")
	assert.Nil(t, loaded.Append(r4))
	assert.True(t, r4.ID > r3.ID)

	_, err = s.GetTable("gone")
	assert.Equal(t, TableNotExist, errors.Cause(err))
	assert.Equal(t, TableExists, errors.Cause(s.AddTable(NewTable("USERS", nil))))
}

func TestBadgerSaveRemovesStaleRows(t *testing.T) {
	dir := tempDirForTest(t)
	defer os.RemoveAll(dir)

	s := openStoreForTest(t, dir)
	table := NewTable("t", []string{"a"})
	assert.Nil(t, s.AddTable(table))
	for i := 0; i < 300; i++ {
		assert.Nil(t, table.Append(newTestRow("a", "v")))
	}
	assert.Nil(t, s.SaveTable("t"))
	keys, err := s.rowKeys("t")
	assert.Nil(t, err)
	assert.Equal(t, 300, len(keys))

	table.Remove(table.Rows[:250])
	assert.Nil(t, s.SaveTable("t"))
	keys, err = s.rowKeys("t")
	assert.Nil(t, err)
	assert.Equal(t, 50, len(keys))
	assert.Nil(t, s.Close())
}
