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
	"context"
	"time"

	"gorm.io/gorm"
)

// DbClient hands out gorm sessions bounded by the configured statement timeout
type DbClient interface {
	GetDb() *gorm.DB
	GetDbWithContext(ctx context.Context) (*gorm.DB, context.CancelFunc)
}

type client struct {
	db               *gorm.DB
	statementTimeout time.Duration
}

func (d *client) GetDb() *gorm.DB {
	return d.db
}

func (d *client) GetDbWithContext(ctx context.Context) (*gorm.DB, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}

	if d.statementTimeout <= 0 {
		return d.db.WithContext(ctx), noop
	}

	childCtx, cancel := context.WithTimeout(ctx, d.statementTimeout)
	return d.db.WithContext(childCtx), cancel
}

// NewDbClient wraps db, a statementTimeout of zero leaves statements unbounded
func NewDbClient(db *gorm.DB, statementTimeout time.Duration) DbClient {
	return &client{db: db, statementTimeout: statementTimeout}
}

func noop() {
	// empty cancel function
}
