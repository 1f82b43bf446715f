package fakeserver

import (
	"respclient/pkg/resp"
)

// PING [message]
func execPing(db *DB, args [][]byte) resp.Reply {
	switch len(args) {
	case 0:
		return resp.MakeStatusReply("PONG")
	case 1:
		return resp.MakeBulkReply(args[0])
	default:
		return resp.MakeArgNumErrReply("ping")
	}
}

// ECHO message
func execEcho(db *DB, args [][]byte) resp.Reply {
	return resp.MakeBulkReply(args[0])
}

// SET key value
func execSet(db *DB, args [][]byte) resp.Reply {
	db.putEntity(string(args[0]), args[1])
	return resp.MakeOkReply()
}

// GET key
func execGet(db *DB, args [][]byte) resp.Reply {
	e, ok := db.getEntity(string(args[0]))
	if !ok {
		return resp.MakeNullBulkReply()
	}
	val, ok := e.value.([]byte)
	if !ok {
		return wrongTypeErr
	}
	return resp.MakeBulkReply(val)
}

// DEL key [key ...]
func execDel(db *DB, args [][]byte) resp.Reply {
	deleted := 0
	for _, arg := range args {
		if db.remove(string(arg)) {
			deleted++
		}
	}
	return resp.MakeIntReply(int64(deleted))
}

// EXISTS key [key ...]
func execExists(db *DB, args [][]byte) resp.Reply {
	n := 0
	for _, arg := range args {
		if _, ok := db.getEntity(string(arg)); ok {
			n++
		}
	}
	return resp.MakeIntReply(int64(n))
}

// KEYS pattern
func execKeys(db *DB, args [][]byte) resp.Reply {
	return resp.MakeMultiBulkReply(db.keys(string(args[0])))
}

// TYPE key
func execType(db *DB, args [][]byte) resp.Reply {
	e, ok := db.getEntity(string(args[0]))
	if !ok {
		return resp.MakeStatusReply("none")
	}
	switch e.value.(type) {
	case []byte:
		return resp.MakeStatusReply("string")
	case *Hash:
		return resp.MakeStatusReply("hash")
	default:
		return resp.MakeStatusReply("none")
	}
}

// FLUSHDB
func execFlushDB(db *DB, args [][]byte) resp.Reply {
	db.flush()
	return resp.MakeOkReply()
}
