package compoundcache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/cardbay/goapi/base/ctx"
	"github.com/cardbay/goapi/service/cache"
	"github.com/cardbay/goapi/service/cache/provider/primitive"
)

var (
	mockCtx = ctx.Background()
)

type value struct {
	Value string `json:"value"`
}

type testsuite struct {
	suite.Suite
	im       *impl
	service1 cache.Service
	service2 cache.Service
}

func (s *testsuite) SetupTest() {
	s.service1 = cache.New(cache.ServiceConfig{
		Ttl:   time.Minute,
		Pfx:   "layer1",
		Cache: primitive.NewPrimitive("layer1", 1),
	})
	s.service2 = cache.New(cache.ServiceConfig{
		Ttl:   time.Minute,
		Pfx:   "layer2",
		Cache: primitive.NewPrimitive("layer2", 1),
	})
	s.im = NewCompoundCache([]cache.Service{s.service1, s.service2}).(*impl)
}

func TestCompoundCache(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (s *testsuite) TestGetFillsUpperLayers() {
	want := &value{Value: "hello"}
	s.Nil(s.service2.Set(mockCtx, "k", want))

	got := &value{}
	s.Nil(s.im.Get(mockCtx, "k", got))
	s.Equal(want, got)

	// layer1 should be filled after the read
	got = &value{}
	s.Nil(s.service1.Get(mockCtx, "k", got))
	s.Equal(want, got)
}

func (s *testsuite) TestGetMissing() {
	got := &value{}
	s.Equal(cache.ErrNotFound, s.im.Get(mockCtx, "nope", got))
}

func (s *testsuite) TestGetByFunc() {
	want := &value{Value: "lazy"}
	called := 0
	getter := func() (interface{}, error) {
		called++
		return want, nil
	}

	got := &value{}
	s.Nil(s.im.GetByFunc(mockCtx, "k", got, getter))
	s.Equal(want, got)
	s.Equal(1, called)

	// second read hits cache
	got = &value{}
	s.Nil(s.im.GetByFunc(mockCtx, "k", got, getter))
	s.Equal(want, got)
	s.Equal(1, called)
}

func (s *testsuite) TestSetWritesAllLayers() {
	want := &value{Value: "both"}
	s.Nil(s.im.Set(mockCtx, "k", want))

	for _, svc := range []cache.Service{s.service1, s.service2} {
		got := &value{}
		s.Nil(svc.Get(mockCtx, "k", got))
		s.Equal(want, got)
	}
}

func (s *testsuite) TestDel() {
	s.Nil(s.im.Set(mockCtx, "k", &value{Value: "x"}))
	s.Nil(s.im.Del(mockCtx, "k"))
	got := &value{}
	s.Equal(cache.ErrNotFound, s.im.Get(mockCtx, "k", got))
}
