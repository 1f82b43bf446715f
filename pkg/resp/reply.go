package resp

import (
	"strconv"
	"strings"
)

var (
	CRLF = []byte("\r\n") // RESP 协议的行结束符
)

// Reply 是所有 RESP 协议响应的通用接口
//
// The concrete types form a closed set: *StatusReply, *ErrReply, *IntReply,
// *BulkReply and *ArrayReply. Use a type switch to inspect a decoded reply.
type Reply interface {
	// ToBytes 将响应内容转换为符合 RESP 协议的字节切片
	ToBytes() []byte
}

// StatusReply is a simple string such as +OK.
type StatusReply struct {
	Status string
}

func MakeStatusReply(status string) *StatusReply {
	return &StatusReply{Status: status}
}

func MakeOkReply() *StatusReply {
	return &StatusReply{Status: "OK"}
}

func (r *StatusReply) ToBytes() []byte {
	return []byte("+" + r.Status + string(CRLF))
}

// IsOK reports whether the status is OK, ignoring case.
func (r *StatusReply) IsOK() bool {
	return strings.EqualFold(r.Status, "OK")
}

// ErrReply is a server-side error line such as -ERR unknown command.
type ErrReply struct {
	Status string
}

func MakeErrReply(status string) *ErrReply {
	return &ErrReply{Status: status}
}

func MakeArgNumErrReply(cmdName string) *ErrReply {
	return MakeErrReply("ERR wrong number of arguments for '" + cmdName + "' command")
}

func (r *ErrReply) ToBytes() []byte {
	return []byte("-" + r.Status + string(CRLF))
}

// Error makes an error reply usable as a Go error.
func (r *ErrReply) Error() string {
	return r.Status
}

type IntReply struct {
	IntVal int64
}

func MakeIntReply(code int64) *IntReply {
	return &IntReply{IntVal: code}
}

func (r *IntReply) ToBytes() []byte {
	return []byte(":" + strconv.FormatInt(r.IntVal, 10) + string(CRLF))
}

// BulkReply carries a binary safe string. A nil Arg is the RESP nil bulk
// string ($-1), a non-nil empty Arg is the empty string ($0).
type BulkReply struct {
	Arg []byte
}

func MakeBulkReply(arg []byte) *BulkReply {
	if arg == nil {
		arg = []byte{}
	}
	return &BulkReply{Arg: arg}
}

func MakeNullBulkReply() *BulkReply {
	return &BulkReply{}
}

func (r *BulkReply) IsNil() bool {
	return r.Arg == nil
}

func (r *BulkReply) ToBytes() []byte {
	if r.Arg == nil {
		return []byte("$-1\r\n")
	}
	buf := make([]byte, 0, len(r.Arg)+16)
	buf = append(buf, '$')
	buf = strconv.AppendInt(buf, int64(len(r.Arg)), 10)
	buf = append(buf, CRLF...)
	buf = append(buf, r.Arg...)
	return append(buf, CRLF...)
}

// ArrayReply is a possibly nested list of replies. Nil Items is the RESP nil
// array (*-1), distinct from an empty array (*0).
type ArrayReply struct {
	Items []Reply
}

func MakeArrayReply(items []Reply) *ArrayReply {
	if items == nil {
		items = []Reply{}
	}
	return &ArrayReply{Items: items}
}

// MakeMultiBulkReply builds an array of bulk strings, nil entries become nil bulks.
func MakeMultiBulkReply(args [][]byte) *ArrayReply {
	items := make([]Reply, len(args))
	for i, arg := range args {
		if arg == nil {
			items[i] = MakeNullBulkReply()
		} else {
			items[i] = MakeBulkReply(arg)
		}
	}
	return &ArrayReply{Items: items}
}

func MakeNullArrayReply() *ArrayReply {
	return &ArrayReply{}
}

func (r *ArrayReply) IsNil() bool {
	return r.Items == nil
}

func (r *ArrayReply) ToBytes() []byte {
	if r.Items == nil {
		return []byte("*-1\r\n")
	}
	var buf []byte
	buf = append(buf, '*')
	buf = strconv.AppendInt(buf, int64(len(r.Items)), 10)
	buf = append(buf, CRLF...)
	for _, item := range r.Items {
		buf = append(buf, item.ToBytes()...)
	}
	return buf
}

// IsErrorReply 检查是否是 Error 类型
func IsErrorReply(reply Reply) bool {
	_, ok := reply.(*ErrReply)
	return ok
}
