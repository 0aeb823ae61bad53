package redis

import (
	"errors"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/footcaster/goapi/base/ctx"
	"github.com/footcaster/goapi/base/metrics"
)

const (
	// retTTLNoKey is the return value of TTL when the key does not exist
	retTTLNoKey = -2
)

var (
	// ErrNotFound is returned when the key does not exist
	ErrNotFound = errors.New("redis key not found")
)

// Service is the subset of redis commands used by the cache providers and
// the health check
type Service interface {
	Get(c ctx.Ctx, key string) ([]byte, error)
	Set(c ctx.Ctx, key string, value []byte, ttl time.Duration) error
	Del(c ctx.Ctx, key string) (int64, error)
	Exists(c ctx.Ctx, key string) (bool, error)
	TTL(c ctx.Ctx, key string) (int, error)
	Incrby(c ctx.Ctx, key string, diff int) (int64, error)
}

// Pools represents different pool types
type Pools struct {
	Src *redis.Pool
}

type redImpl struct {
	name  string
	met   metrics.Service
	pools *Pools
}

// New redis pool
func New(name string, metrics metrics.Service, pools *Pools) Service {
	return &redImpl{
		name:  name,
		met:   metrics,
		pools: pools,
	}
}

func (r *redImpl) getConn() (redis.Conn, error) {
	defer r.met.BumpTime("getconn.time", "cluster", r.name).End()

	conn := r.pools.Src.Get()
	if err := conn.Err(); err != nil {
		r.met.BumpSum("getConn.err", 1, "cluster", r.name, "reason", err.Error())
		return nil, err
	}

	return conn, nil
}

func (r *redImpl) connDo(c ctx.Ctx, commandName string, args ...interface{}) (interface{}, error) {
	conn, err := r.getConn()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	defer r.met.BumpTime("cmd.time", "cluster", r.name, "cmd", commandName).End()

	reply, err := conn.Do(commandName, args...)
	if err != nil {
		r.met.BumpSum("cmd.err", 1, "cluster", r.name, "cmd", commandName)
		c.WithField("err", err).WithField("cmd", commandName).Error("redis command failed")
		return nil, err
	}
	return reply, nil
}

func (r *redImpl) Get(c ctx.Ctx, key string) ([]byte, error) {
	reply, err := r.connDo(c, "GET", key)
	if err != nil {
		return nil, err
	}
	if reply == nil {
		return nil, ErrNotFound
	}
	return redis.Bytes(reply, nil)
}

func (r *redImpl) Set(c ctx.Ctx, key string, value []byte, ttl time.Duration) error {
	var err error
	if ttl > 0 {
		_, err = r.connDo(c, "SETEX", key, int(ttl.Seconds()), value)
	} else {
		_, err = r.connDo(c, "SET", key, value)
	}
	return err
}

func (r *redImpl) Del(c ctx.Ctx, key string) (int64, error) {
	reply, err := r.connDo(c, "DEL", key)
	if err != nil {
		return 0, err
	}
	return redis.Int64(reply, nil)
}

func (r *redImpl) Exists(c ctx.Ctx, key string) (bool, error) {
	reply, err := r.connDo(c, "EXISTS", key)
	if err != nil {
		return false, err
	}
	return redis.Bool(reply, nil)
}

func (r *redImpl) TTL(c ctx.Ctx, key string) (int, error) {
	reply, err := r.connDo(c, "TTL", key)
	if err != nil {
		return 0, err
	}
	ttl, err := redis.Int(reply, nil)
	if err != nil {
		return 0, err
	}
	if ttl == retTTLNoKey {
		return 0, ErrNotFound
	}
	return ttl, nil
}

func (r *redImpl) Incrby(c ctx.Ctx, key string, diff int) (int64, error) {
	reply, err := r.connDo(c, "INCRBY", key, diff)
	if err != nil {
		return 0, err
	}
	return redis.Int64(reply, nil)
}
