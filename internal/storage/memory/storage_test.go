package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) TestLoadEmpty() {
	data, err := s.storage.Load(s.ctx)
	s.Require().NoError(err)
	s.Nil(data)
}

func (s *StorageSuite) TestSaveAndLoad() {
	s.Require().NoError(s.storage.Save(s.ctx, []byte(`{"teams":[]}`)))

	data, err := s.storage.Load(s.ctx)
	s.Require().NoError(err)
	s.Equal(`{"teams":[]}`, string(data))
}

func (s *StorageSuite) TestLoadReturnsCopy() {
	s.Require().NoError(s.storage.Save(s.ctx, []byte("abc")))

	data, _ := s.storage.Load(s.ctx)
	data[0] = 'z'

	again, _ := s.storage.Load(s.ctx)
	s.Equal("abc", string(again))
}
