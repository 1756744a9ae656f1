// Copyright 2023 The Ontokit Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package align

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/dgraph-io/badger"
)

// ErrNotFound is returned when a store has no mappings for a head.
var ErrNotFound = errors.New("align: mappings not found")

// Store persists ranked mappings per head entity so long matching
// runs can resume and previous results can be served. Keys are
// namespaced by run name.
type Store struct {
	db *badger.DB
}

// OpenStore opens or creates a mapping store at path.
func OpenStore(path string) (*Store, error) {
	if err := os.MkdirAll(path, 0700); err != nil {
		return nil, err
	}
	opts := badger.DefaultOptions(path)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

func storeKey(run, head string) []byte {
	return append(append([]byte(run), 0), head...)
}

// Put saves the ranked mappings for a head entity, replacing any
// previous value.
func (s *Store) Put(run, head string, maps []Mapping) error {
	val, err := json.Marshal(maps)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(storeKey(run, head), val)
	})
}

// Get loads the ranked mappings saved for a head entity.
func (s *Store) Get(run, head string) ([]Mapping, error) {
	var maps []Mapping
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(storeKey(run, head))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		} else if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &maps)
		})
	})
	if err != nil {
		return nil, err
	}
	return maps, nil
}

// Heads lists the head entities saved under a run, in key order.
func (s *Store) Heads(run string) ([]string, error) {
	prefix := append([]byte(run), 0)
	var heads []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			heads = append(heads, string(it.Item().Key()[len(prefix):]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return heads, nil
}

// Mappings collects every mapping saved under a run, ranked.
func (s *Store) Mappings(run string) ([]Mapping, error) {
	heads, err := s.Heads(run)
	if err != nil {
		return nil, err
	}
	var out []Mapping
	for _, head := range heads {
		maps, err := s.Get(run, head)
		if err != nil {
			return nil, err
		}
		out = append(out, maps...)
	}
	SortByScore(out)
	return out, nil
}
