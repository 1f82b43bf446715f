package fakeserver

import (
	"strings"
	"sync"

	"github.com/google/btree"
	"github.com/tidwall/match"

	"respclient/pkg/resp"
)

const btreeDegree = 32

var wrongTypeErr = resp.MakeErrReply("WRONGTYPE Operation against a key holding the wrong kind of value")

// entity 是 keyspace 中的一项，value 为 []byte 或 *Hash
type entity struct {
	key   string
	value interface{}
}

func (e *entity) Less(than btree.Item) bool {
	return e.key < than.(*entity).key
}

// DB is an ordered in-memory keyspace. Exec serializes all commands.
type DB struct {
	mu   sync.Mutex
	data *btree.BTree
}

func NewDB() *DB {
	return &DB{data: btree.New(btreeDegree)}
}

// Exec 根据命令名查表找到对应的 ExecFunc 并调用
func (db *DB) Exec(cmdLine [][]byte) resp.Reply {
	if len(cmdLine) == 0 {
		return resp.MakeErrReply("ERR empty command")
	}
	cmdName := strings.ToLower(string(cmdLine[0]))

	cmd, ok := GetCmd(cmdName)
	if !ok {
		return resp.MakeErrReply("ERR unknown command '" + cmdName + "'")
	}
	if !validateArity(cmd.Arity, cmdLine) {
		return resp.MakeArgNumErrReply(cmdName)
	}

	db.mu.Lock()
	defer db.mu.Unlock()
	return cmd.Executor(db, cmdLine[1:])
}

func (db *DB) getEntity(key string) (*entity, bool) {
	item := db.data.Get(&entity{key: key})
	if item == nil {
		return nil, false
	}
	return item.(*entity), true
}

func (db *DB) putEntity(key string, value interface{}) {
	db.data.ReplaceOrInsert(&entity{key: key, value: value})
}

func (db *DB) remove(key string) bool {
	return db.data.Delete(&entity{key: key}) != nil
}

func (db *DB) keys(pattern string) [][]byte {
	var out [][]byte
	db.data.Ascend(func(item btree.Item) bool {
		key := item.(*entity).key
		if match.Match(key, pattern) {
			out = append(out, []byte(key))
		}
		return true
	})
	return out
}

func (db *DB) flush() {
	db.data = btree.New(btreeDegree)
}

// getHash returns the hash at key, creating it when create is set. A nil
// reply means the lookup succeeded.
func (db *DB) getHash(key string, create bool) (*Hash, resp.Reply) {
	e, ok := db.getEntity(key)
	if !ok {
		if !create {
			return nil, nil
		}
		h := NewHash()
		db.putEntity(key, h)
		return h, nil
	}
	h, ok := e.value.(*Hash)
	if !ok {
		return nil, wrongTypeErr
	}
	return h, nil
}
