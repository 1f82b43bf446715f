package client

import "respclient/pkg/resp"

// FieldValue is one field of a hash write.
type FieldValue struct {
	Field string
	Value interface{}
}

// Set stores value under key. value may be a string, []byte, integer or float.
func (c *Client) Set(key string, value interface{}) error {
	reply, err := c.Do("SET", key, value)
	if err != nil {
		return err
	}
	_, err = c.statusOrCount("SET", reply)
	return err
}

// Get returns the raw reply, a *resp.BulkReply that is nil when key is missing.
func (c *Client) Get(key string) (resp.Reply, error) {
	return c.Do("GET", key)
}

// Del removes keys and returns how many existed. Zero is not an error.
func (c *Client) Del(keys ...string) (int64, error) {
	args := make([]interface{}, len(keys))
	for i, k := range keys {
		args[i] = k
	}
	reply, err := c.Do("DEL", args...)
	if err != nil {
		return 0, err
	}
	return c.statusOrCount("DEL", reply)
}

// HashSet writes fields with HSET and returns the number of fields created.
func (c *Client) HashSet(key string, pairs ...FieldValue) (int64, error) {
	reply, err := c.Do("HSET", hashArgs(key, pairs)...)
	if err != nil {
		return 0, err
	}
	return c.statusOrCount("HSET", reply)
}

// HashMSet writes fields with HMSET, which answers +OK instead of a count.
func (c *Client) HashMSet(key string, pairs ...FieldValue) error {
	reply, err := c.Do("HMSET", hashArgs(key, pairs)...)
	if err != nil {
		return err
	}
	_, err = c.statusOrCount("HMSET", reply)
	return err
}

// HashGet reads fields with HMGET. The reply is always an array with one
// entry per requested field, nil bulks for missing ones.
func (c *Client) HashGet(key string, fields ...string) (resp.Reply, error) {
	args := make([]interface{}, 0, len(fields)+1)
	args = append(args, key)
	for _, f := range fields {
		args = append(args, f)
	}
	return c.Do("HMGET", args...)
}

// HGet reads a single field, replying with a bulk string.
func (c *Client) HGet(key, field string) (resp.Reply, error) {
	return c.Do("HGET", key, field)
}

// HGetAll returns a flat field/value array.
func (c *Client) HGetAll(key string) (resp.Reply, error) {
	return c.Do("HGETALL", key)
}

func (c *Client) Ping() error {
	reply, err := c.Do("PING")
	if err != nil {
		return err
	}
	if s, ok := reply.(*resp.StatusReply); ok && s.Status == "PONG" {
		return nil
	}
	_, err = c.statusOrCount("PING", reply)
	return err
}

func hashArgs(key string, pairs []FieldValue) []interface{} {
	args := make([]interface{}, 0, 1+2*len(pairs))
	args = append(args, key)
	for _, p := range pairs {
		args = append(args, p.Field, p.Value)
	}
	return args
}
