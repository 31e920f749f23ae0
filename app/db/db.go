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
	"time"

	"github.com/hashgraph/hedera-mirror-node/hedera-sdk-engine/app/config"
	gormlogrus "github.com/onrik/gorm-logrus"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ConnectToDb opens the connection pool to the mirror node database
func ConnectToDb(dbConfig config.Db) (DbClient, error) {
	db, err := gorm.Open(postgres.Open(dbConfig.GetDsn()), &gorm.Config{Logger: gormlogrus.New()})
	if err != nil {
		return nil, errors.Wrap(err, "Failed to connect to database")
	}

	sqlDb, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "Failed to get sql DB")
	}

	sqlDb.SetMaxIdleConns(dbConfig.Pool.MaxIdleConnections)
	sqlDb.SetConnMaxLifetime(time.Duration(dbConfig.Pool.MaxLifetime) * time.Minute)
	sqlDb.SetMaxOpenConns(dbConfig.Pool.MaxOpenConnections)
	log.Infof("Connected to database %s at %s:%d", dbConfig.Name, dbConfig.Host, dbConfig.Port)

	return NewDbClient(db, time.Duration(dbConfig.StatementTimeout)*time.Second), nil
}
