// Copyright 2019 Zhenhua Yang. All rights reserved.
// Licensed under the MIT License that can be
// found in the LICENSE file in the root directory.

package engine

import (
	"fmt"
	"github.com/hashicorp/golang-lru/v2"
	"github.com/huaouo/tabsql/ast"
	"github.com/huaouo/tabsql/executor"
	"github.com/huaouo/tabsql/index"
	"github.com/huaouo/tabsql/parser"
	"github.com/huaouo/tabsql/storage"
	"github.com/huaouo/tabsql/utils"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// DB runs one statement at a time against a single store.
type DB struct {
	sync.Mutex
	store    storage.Store
	executor *executor.Executor
	parsed   *lru.Cache[string, ast.Stmts]
	logger   *zap.SugaredLogger
}

func Open(cfg Config) (*DB, error) {
	cfg = cfg.withDefaults()
	logger := utils.OrNop(cfg.Logger)

	var store storage.Store
	if cfg.InMemory {
		store = storage.NewMemStore()
	} else {
		badgerStore, err := storage.OpenBadger(filepath.Join(cfg.Dir, "db"), logger)
		if err != nil {
			return nil, err
		}
		store = badgerStore
	}

	parsed, err := lru.New[string, ast.Stmts](cfg.ParseCacheSize)
	if err != nil {
		_ = store.Close()
		return nil, errors.Wrap(err, "create parse cache")
	}

	return &DB{
		store:    store,
		executor: executor.New(store, index.NewManager(), logger),
		parsed:   parsed,
		logger:   logger,
	}, nil
}

func (db *DB) parse(sql string) (ast.Stmts, error) {
	if stmts, ok := db.parsed.Get(sql); ok {
		return stmts, nil
	}
	stmts, err := parser.ParseAll(sql)
	if err != nil {
		return nil, err
	}
	db.parsed.Add(sql, stmts)
	return stmts, nil
}

// Exec runs every statement in sql and stops at the first failure. The
// results of the statements that ran are returned either way.
func (db *DB) Exec(sql string) ([]*executor.Result, error) {
	sql = strings.TrimSpace(sql)
	stmts, err := db.parse(sql)
	if err != nil {
		return nil, err
	}

	db.Lock()
	defer db.Unlock()
	var results []*executor.Result
	for _, stmt := range stmts {
		start := time.Now()
		res, err := db.executor.Execute(stmt)
		if err != nil {
			db.logger.Debugf("%s failed: %v", stmtName(stmt), err)
			return results, err
		}
		db.logger.Debugf("%s done in %v", stmtName(stmt), time.Since(start))
		results = append(results, res)
	}
	return results, nil
}

func (db *DB) Close() error {
	db.Lock()
	defer db.Unlock()
	return db.store.Close()
}

func stmtName(stmt ast.Stmt) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", stmt), "ast.")
}
