package redis

import (
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/cardbay/goapi/base/ctx"
	"github.com/cardbay/goapi/base/log"
	"github.com/cardbay/goapi/base/metrics"
	"github.com/cardbay/goapi/domain/keys"
)

const (
	// retTTLNoKey is the return value of TTL when the key does not exist
	retTTLNoKey = -2

	// retTTLNoExpire is the return value of TTL when the key exists but has
	// no associated expire
	retTTLNoExpire = -1
)

type redImpl struct {
	name string
	met  metrics.Service
	pool *redis.Pool
}

// New builds a Service on top of a redigo pool. name tags every metric
// emitted by this client.
func New(name string, met metrics.Service, pool *redis.Pool) Service {
	return &redImpl{
		name: name,
		met:  met,
		pool: pool,
	}
}

func (r *redImpl) connDo(context ctx.Ctx, commandName string, args ...interface{}) (interface{}, error) {
	defer r.met.BumpTime("redis.time", "cluster", r.name, "cmd", commandName).End()

	conn := r.pool.Get()
	if err := conn.Err(); err != nil {
		r.met.BumpSum("redis.getConn.err", 1, "cluster", r.name)
		return nil, err
	}

	reply, err := conn.Do(commandName, args...)

	// Closing conn explicitly asap improves redigo's performance,
	// because the longer a connection is held, the more connections
	// the pool needs to handle at the same time.
	if err := conn.Close(); err != nil {
		r.met.BumpSum("redis.conn.Close.err", 1, "cluster", r.name)
	}
	return reply, err
}

func (r *redImpl) Get(context ctx.Ctx, key string) ([]byte, error) {
	val, err := redis.Bytes(r.connDo(context, "GET", key))
	if err == redis.ErrNil {
		r.met.BumpSum("redis.get.miss", 1, "cluster", r.name, "prefix", keys.GetPrefix(key))
		return nil, ErrNotFound
	} else if err != nil {
		context.WithFields(log.Fields{"err": err, "key": key}).Error("redis GET failed")
		return nil, err
	}
	return val, nil
}

func (r *redImpl) Set(context ctx.Ctx, key string, value []byte, ttl time.Duration) error {
	var err error
	if ttl > 0 {
		_, err = r.connDo(context, "SETEX", key, int(ttl.Seconds()), value)
	} else {
		_, err = r.connDo(context, "SET", key, value)
	}
	if err != nil {
		context.WithFields(log.Fields{"err": err, "key": key}).Error("redis SET failed")
		return err
	}
	return nil
}

func (r *redImpl) Del(context ctx.Ctx, delKeys ...string) (int, error) {
	args := make([]interface{}, len(delKeys))
	for i, k := range delKeys {
		args[i] = k
	}
	n, err := redis.Int(r.connDo(context, "DEL", args...))
	if err != nil {
		context.WithField("err", err).Error("redis DEL failed")
		return 0, err
	}
	return n, nil
}

func (r *redImpl) TTL(context ctx.Ctx, key string) (int, error) {
	ttl, err := redis.Int(r.connDo(context, "TTL", key))
	if err != nil {
		context.WithFields(log.Fields{"err": err, "key": key}).Error("redis TTL failed")
		return 0, err
	}
	switch ttl {
	case retTTLNoKey:
		return 0, ErrNotFound
	case retTTLNoExpire:
		return 0, nil
	default:
		return ttl, nil
	}
}

func (r *redImpl) Exists(context ctx.Ctx, key string) (bool, error) {
	n, err := redis.Int(r.connDo(context, "EXISTS", key))
	if err != nil {
		context.WithFields(log.Fields{"err": err, "key": key}).Error("redis EXISTS failed")
		return false, err
	}
	return n == 1, nil
}

func (r *redImpl) Incrby(context ctx.Ctx, key string, val int) (int64, error) {
	res, err := redis.Int64(r.connDo(context, "INCRBY", key, val))
	if err != nil {
		context.WithFields(log.Fields{"err": err, "key": key}).Error("redis INCRBY failed")
		return 0, err
	}
	return res, nil
}
