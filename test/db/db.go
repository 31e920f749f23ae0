/*
 * Copyright (C) 2019-2025 Hedera Hashgraph, LLC
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package db

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/config"
	_ "github.com/lib/pq"
	"github.com/ory/dockertest/v3"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/thanhpk/randstr"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	dbName      = "mirror_node"
	dbUsername  = "mirror_sdk_engine_integration"
	poolMaxWait = 2 * time.Minute
)

type DbResource struct {
	db       *sql.DB
	params   dbParams
	pool     *dockertest.Pool
	resource *dockertest.Resource
}

func CreateDbRecords(dbClient *gorm.DB, records ...interface{}) {
	for _, record := range records {
		dbClient.Create(record)
	}
}

// GetDbConfig returns the db config of the session
func (d DbResource) GetDbConfig() config.Db {
	return d.params.toConfig()
}

// GetDb returns the sql db pool
func (d DbResource) GetDb() *sql.DB {
	return d.db
}

// GetGormDb creates a gorm db session
func (d DbResource) GetGormDb() *gorm.DB {
	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: d.db}), &gorm.Config{Logger: logger.Discard})
	if err != nil {
		log.Fatalf("Failed to create gorm db session: %s", err)
	}

	return gdb
}

type dbParams struct {
	endpoint string
	name     string
	username string
	password string
}

func (d dbParams) toDsn() string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=disable", d.username, d.password, d.endpoint, d.name)
}

func (d dbParams) toConfig() config.Db {
	hostPort := strings.Split(d.endpoint, ":")
	port, _ := strconv.ParseUint(hostPort[1], 10, 16)
	return config.Db{
		Host:     hostPort[0],
		Name:     d.name,
		Password: d.password,
		Pool: config.Pool{
			MaxIdleConnections: 2,
			MaxLifetime:        30,
			MaxOpenConnections: 5,
		},
		Port:     uint16(port),
		Username: d.username,
	}
}

// CleanupDb truncates the tables
func CleanupDb(db *sql.DB, tables ...string) {
	if len(tables) == 0 {
		return
	}

	if _, err := db.Exec("truncate " + strings.Join(tables, ", ")); err != nil {
		log.Fatalf("Failed to truncate tables: %s", err)
	}
}

// SetupDb starts a postgres container, it fails when docker isn't available
func SetupDb() (DbResource, error) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		return DbResource{}, errors.Wrap(err, "Could not connect to docker")
	}

	if err = pool.Client.Ping(); err != nil {
		return DbResource{}, errors.Wrap(err, "Could not ping docker")
	}

	// set max wait, used in pool.Retry to timeout
	pool.MaxWait = poolMaxWait

	log.Info("Create postgres container")
	resource, params, err := createPostgresDb(pool)
	if err != nil {
		return DbResource{}, err
	}

	var db *sql.DB
	if err = pool.Retry(func() error {
		var err error
		db, err = sql.Open("postgres", params.toDsn())
		if err != nil {
			return err
		}

		return db.Ping()
	}); err != nil {
		_ = pool.Purge(resource)
		return DbResource{}, errors.Wrap(err, "Could not connect to postgres")
	}

	return DbResource{db: db, params: params, pool: pool, resource: resource}, nil
}

func TearDownDb(dbResource DbResource) {
	if dbResource.pool == nil {
		return
	}

	log.Info("Remove postgres container")
	if err := dbResource.pool.Purge(dbResource.resource); err != nil {
		log.Errorf("Failed to purge postgresql resource: %s", err)
	}
}

func createPostgresDb(pool *dockertest.Pool) (*dockertest.Resource, dbParams, error) {
	dbPassword := randstr.Hex(12)
	options := &dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_DB=" + dbName,
			"POSTGRES_USER=" + dbUsername,
			"POSTGRES_PASSWORD=" + dbPassword,
		},
	}
	resource, err := pool.RunWithOptions(options)
	if err != nil {
		return nil, dbParams{}, errors.Wrap(err, "Could not start postgres")
	}

	return resource, dbParams{
		// use IPv4 local address, 'localhost' may resolve to IPv6 local address in github CI
		endpoint: "127.0.0.1:" + resource.GetPort("5432/tcp"),
		name:     dbName,
		username: dbUsername,
		password: dbPassword,
	}, nil
}
