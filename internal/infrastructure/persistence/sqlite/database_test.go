package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm/logger"
)

// DatabaseTestSuite provides a test suite for SQLite setup.
type DatabaseTestSuite struct {
	suite.Suite
}

func (suite *DatabaseTestSuite) TestSetupDatabase() {
	suite.Run("InMemoryDSNs_ShouldPinPoolToOneConnection", func() {
		// Arrange
		dsns := []string{"", ":memory:", "file::memory:?cache=shared"}

		for _, dsn := range dsns {
			// Act
			db, err := SetupDatabase(dsn, logger.Silent)

			// Assert
			require.NoError(suite.T(), err, dsn)
			sqlDB, err := db.DB()
			require.NoError(suite.T(), err, dsn)
			assert.Equal(suite.T(), 1, sqlDB.Stats().MaxOpenConnections, dsn)

			// Queries after migration must see the schema.
			var count int64
			require.NoError(suite.T(), db.Table("recipes").Count(&count).Error, dsn)
			assert.Zero(suite.T(), count, dsn)
		}
	})

	suite.Run("FilePath_ShouldLeavePoolUnrestricted", func() {
		// Arrange
		dbPath := filepath.Join(suite.T().TempDir(), "recipes.db")

		// Act
		db, err := SetupDatabase(dbPath, logger.Silent)

		// Assert
		require.NoError(suite.T(), err)
		sqlDB, err := db.DB()
		require.NoError(suite.T(), err)
		assert.NotEqual(suite.T(), 1, sqlDB.Stats().MaxOpenConnections)
	})
}

func TestDatabaseTestSuite(t *testing.T) {
	suite.Run(t, new(DatabaseTestSuite))
}
