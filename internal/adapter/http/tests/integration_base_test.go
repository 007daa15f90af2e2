//go:build integration
// +build integration

package tests

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/suite"

	dbadapter "taskflow/internal/adapter/db"
	"taskflow/internal/config"
)

// IntegrationSuiteBase runs against a throwaway MySQL schema whose name must
// end in _test. It is dropped when the suite finishes.
type IntegrationSuiteBase struct {
	suite.Suite

	adminDB *sqlx.DB
	DB      *sqlx.DB
	conf    config.Config
}

func (s *IntegrationSuiteBase) SetupSuite() {
	s.conf = config.Config{
		StoreDriver: config.StoreMySQL,
		DbHost:      envOrDefault("MYSQL_HOST", "127.0.0.1"),
		DbPort:      envOrDefault("MYSQL_PORT", "3306"),
		DbUser:      envOrDefault("MYSQL_ROOT_USER", "root"),
		DbPassword:  envOrDefault("MYSQL_ROOT_PASSWORD", "root"),
		DbName:      envOrDefault("MYSQL_TEST_DATABASE", "taskflow_test"),
		DbParams:    "parseTime=true&multiStatements=true",
	}
	if !strings.HasSuffix(s.conf.DbName, "_test") {
		s.T().Skipf("refusing to use database %q: name must end in _test", s.conf.DbName)
	}

	server := s.conf
	server.DbName = ""
	adminDB, err := dbadapter.ConnectDB(&server)
	if err != nil {
		s.T().Skipf("skipping integration suite: mysql unreachable: %v", err)
	}
	s.adminDB = adminDB

	_, err = s.adminDB.Exec(fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", s.conf.DbName))
	s.Require().NoError(err)

	s.DB, err = dbadapter.ConnectDB(&s.conf)
	s.Require().NoError(err)
}

func (s *IntegrationSuiteBase) TearDownSuite() {
	if s.DB != nil {
		s.Require().NoError(s.DB.Close())
	}
	if s.adminDB == nil {
		return
	}

	_, err := s.adminDB.Exec(fmt.Sprintf("DROP DATABASE IF EXISTS `%s`", s.conf.DbName))
	s.Require().NoError(err)
	s.Require().NoError(s.adminDB.Close())
}

// ResetDatabase rolls every migration down, newest first, then applies them
// all again.
func (s *IntegrationSuiteBase) ResetDatabase() {
	down := s.migrationFiles("*.down.sql")
	sort.Sort(sort.Reverse(sort.StringSlice(down)))
	for _, file := range append(down, s.migrationFiles("*.up.sql")...) {
		content, err := os.ReadFile(file)
		s.Require().NoError(err)
		_, err = s.DB.Exec(string(content))
		s.Require().NoError(err, filepath.Base(file))
	}
}

func (s *IntegrationSuiteBase) migrationFiles(pattern string) []string {
	_, thisFile, _, ok := runtime.Caller(0)
	s.Require().True(ok)

	root := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "..")
	files, err := filepath.Glob(filepath.Join(root, "db", "migrations", pattern))
	s.Require().NoError(err)
	s.Require().NotEmpty(files, "no migrations match %s", pattern)

	sort.Strings(files)
	return files
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
