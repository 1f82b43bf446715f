package fakeserver

import (
	"github.com/google/btree"

	"respclient/pkg/resp"
)

type field struct {
	name  string
	value []byte
}

func (f *field) Less(than btree.Item) bool {
	return f.name < than.(*field).name
}

// Hash keeps fields sorted so HGETALL output is deterministic.
type Hash struct {
	fields *btree.BTree
}

func NewHash() *Hash {
	return &Hash{fields: btree.New(btreeDegree)}
}

// HSet returns 1 if the field is new, 0 if it was overwritten.
func (h *Hash) HSet(name string, value []byte) int {
	if h.fields.ReplaceOrInsert(&field{name: name, value: value}) == nil {
		return 1
	}
	return 0
}

func (h *Hash) HGet(name string) ([]byte, bool) {
	item := h.fields.Get(&field{name: name})
	if item == nil {
		return nil, false
	}
	return item.(*field).value, true
}

func (h *Hash) HDel(name string) int {
	if h.fields.Delete(&field{name: name}) == nil {
		return 0
	}
	return 1
}

func (h *Hash) Len() int {
	return h.fields.Len()
}

func (h *Hash) ForEach(fn func(name string, value []byte)) {
	h.fields.Ascend(func(item btree.Item) bool {
		f := item.(*field)
		fn(f.name, f.value)
		return true
	})
}

// HSET key field value [field value ...]
func execHSet(db *DB, args [][]byte) resp.Reply {
	if len(args)%2 != 1 {
		return resp.MakeArgNumErrReply("hset")
	}
	h, errReply := db.getHash(string(args[0]), true)
	if errReply != nil {
		return errReply
	}
	created := 0
	for i := 1; i < len(args); i += 2 {
		created += h.HSet(string(args[i]), args[i+1])
	}
	return resp.MakeIntReply(int64(created))
}

// HMSET key field value [field value ...]
func execHMSet(db *DB, args [][]byte) resp.Reply {
	if len(args)%2 != 1 {
		return resp.MakeArgNumErrReply("hmset")
	}
	reply := execHSet(db, args)
	if resp.IsErrorReply(reply) {
		return reply
	}
	return resp.MakeOkReply()
}

// HGET key field
func execHGet(db *DB, args [][]byte) resp.Reply {
	h, errReply := db.getHash(string(args[0]), false)
	if errReply != nil {
		return errReply
	}
	if h == nil {
		return resp.MakeNullBulkReply()
	}
	val, ok := h.HGet(string(args[1]))
	if !ok {
		return resp.MakeNullBulkReply()
	}
	return resp.MakeBulkReply(val)
}

// HMGET key field [field ...]
func execHMGet(db *DB, args [][]byte) resp.Reply {
	h, errReply := db.getHash(string(args[0]), false)
	if errReply != nil {
		return errReply
	}
	vals := make([][]byte, len(args)-1)
	if h != nil {
		for i, f := range args[1:] {
			if val, ok := h.HGet(string(f)); ok {
				vals[i] = val
			}
		}
	}
	return resp.MakeMultiBulkReply(vals)
}

// HGETALL key
func execHGetAll(db *DB, args [][]byte) resp.Reply {
	h, errReply := db.getHash(string(args[0]), false)
	if errReply != nil {
		return errReply
	}
	if h == nil {
		return resp.MakeArrayReply(nil)
	}
	out := make([][]byte, 0, 2*h.Len())
	h.ForEach(func(name string, value []byte) {
		out = append(out, []byte(name), value)
	})
	return resp.MakeMultiBulkReply(out)
}

// HDEL key field [field ...]
func execHDel(db *DB, args [][]byte) resp.Reply {
	key := string(args[0])
	h, errReply := db.getHash(key, false)
	if errReply != nil {
		return errReply
	}
	if h == nil {
		return resp.MakeIntReply(0)
	}
	deleted := 0
	for _, f := range args[1:] {
		deleted += h.HDel(string(f))
	}
	if h.Len() == 0 {
		db.remove(key)
	}
	return resp.MakeIntReply(int64(deleted))
}

// HLEN key
func execHLen(db *DB, args [][]byte) resp.Reply {
	h, errReply := db.getHash(string(args[0]), false)
	if errReply != nil {
		return errReply
	}
	if h == nil {
		return resp.MakeIntReply(0)
	}
	return resp.MakeIntReply(int64(h.Len()))
}
