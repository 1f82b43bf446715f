package fakeserver

import (
	"respclient/pkg/resp"
)

// ExecFunc 定义每个命令的执行函数签名，args 不包含命令名
type ExecFunc func(db *DB, args [][]byte) resp.Reply

// Command 定义了一个命令的元数据
type Command struct {
	Name     string   // 命令名称（小写）
	Executor ExecFunc // 执行函数
	Arity    int      // 参数数量限制，含命令名；负数表示至少 -Arity 个
}

// 全局命令注册表
var cmdTable = make(map[string]*Command)

func RegisterCommand(cmd *Command) {
	cmdTable[cmd.Name] = &Command{
		Name:     cmd.Name,
		Executor: cmd.Executor,
		Arity:    cmd.Arity,
	}
}

func GetCmd(name string) (*Command, bool) {
	cmd, ok := cmdTable[name]
	return cmd, ok
}

func validateArity(arity int, cmdLine [][]byte) bool {
	n := len(cmdLine)
	if arity >= 0 {
		return n == arity
	}
	return n >= -arity
}

func init() {
	RegisterCommand(&Command{Name: "ping", Arity: -1, Executor: execPing})
	RegisterCommand(&Command{Name: "echo", Arity: 2, Executor: execEcho})

	// ========================
	// Key Commands
	// ========================
	RegisterCommand(&Command{Name: "del", Arity: -2, Executor: execDel})
	RegisterCommand(&Command{Name: "exists", Arity: -2, Executor: execExists})
	RegisterCommand(&Command{Name: "keys", Arity: 2, Executor: execKeys})
	RegisterCommand(&Command{Name: "type", Arity: 2, Executor: execType})
	RegisterCommand(&Command{Name: "flushdb", Arity: 1, Executor: execFlushDB})

	// ========================
	// String Commands
	// ========================
	RegisterCommand(&Command{Name: "set", Arity: 3, Executor: execSet}) // set key value
	RegisterCommand(&Command{Name: "get", Arity: 2, Executor: execGet}) // get key

	// ========================
	// Hash Commands
	// ========================
	RegisterCommand(&Command{Name: "hset", Arity: -4, Executor: execHSet})   // hset key field value [field value ...]
	RegisterCommand(&Command{Name: "hmset", Arity: -4, Executor: execHMSet}) // hmset key field value [field value ...]
	RegisterCommand(&Command{Name: "hget", Arity: 3, Executor: execHGet})
	RegisterCommand(&Command{Name: "hmget", Arity: -3, Executor: execHMGet})
	RegisterCommand(&Command{Name: "hgetall", Arity: 2, Executor: execHGetAll})
	RegisterCommand(&Command{Name: "hdel", Arity: -3, Executor: execHDel})
	RegisterCommand(&Command{Name: "hlen", Arity: 2, Executor: execHLen})
}
