//go:build integration

package sqlstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"clubroster/internal/domain"
	"clubroster/internal/repository/sqlstore"
)

type PostgresStoreSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	store     *sqlstore.Store
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	ctx := context.Background()
	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("clubroster"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		tcpostgres.BasicWaitStrategies(),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)
	s.store, err = sqlstore.OpenPostgres(ctx, dsn)
	s.Require().NoError(err)
	s.Require().NoError(s.store.Migrate(ctx))
	// Migrate is idempotent.
	s.Require().NoError(s.store.Migrate(ctx))
}

func (s *PostgresStoreSuite) TearDownSuite() {
	if s.store != nil {
		s.NoError(s.store.Close())
	}
	s.NoError(testcontainers.TerminateContainer(s.container))
}

func (s *PostgresStoreSuite) TestMissingKey() {
	_, found, err := s.store.Get(context.Background(), "never-written")
	s.Require().NoError(err)
	s.False(found)
}

func (s *PostgresStoreSuite) TestUpsert() {
	ctx := context.Background()
	s.Require().NoError(s.store.Set(ctx, domain.KeyTheme, "dark"))
	s.Require().NoError(s.store.Set(ctx, domain.KeyTheme, "light"))

	value, found, err := s.store.Get(ctx, domain.KeyTheme)
	s.Require().NoError(err)
	s.True(found)
	s.Equal("light", value)
}

func (s *PostgresStoreSuite) TestSetMany() {
	ctx := context.Background()
	s.Require().NoError(s.store.SetMany(ctx,
		domain.Entry{Key: domain.KeyAttendance, Value: `{}`},
		domain.Entry{Key: domain.KeyEvents, Value: `[]`},
	))

	events, found, err := s.store.Get(ctx, domain.KeyEvents)
	s.Require().NoError(err)
	s.True(found)
	s.Equal(`[]`, events)
}
