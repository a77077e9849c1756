// Copyright The eBoard Authors.
// SPDX-License-Identifier: MIT

package concurrent

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunExecutesAllFunctions(t *testing.T) {
	pool := NewWorkerPool(4)
	var count int64

	fns := make([]func() error, 10)
	for i := range fns {
		fns[i] = func() error {
			atomic.AddInt64(&count, 1)
			return nil
		}
	}

	err := pool.Run(context.Background(), fns...)
	assert.NoError(t, err)
	assert.Equal(t, int64(10), count)
}

func TestRunReturnsFirstError(t *testing.T) {
	pool := NewWorkerPool(1)
	boom := errors.New("boom")

	err := pool.Run(context.Background(),
		func() error { return nil },
		func() error { return boom },
	)
	assert.ErrorIs(t, err, boom)
}

func TestRunWithNoFunctions(t *testing.T) {
	pool := NewWorkerPool(2)
	assert.NoError(t, pool.Run(context.Background()))
	assert.Nil(t, pool.RunAll(context.Background()))
}

func TestRunAllCollectsAllErrors(t *testing.T) {
	pool := NewWorkerPool(2)
	var count int64

	errs := pool.RunAll(context.Background(),
		func() error { return errors.New("first") },
		func() error {
			atomic.AddInt64(&count, 1)
			return nil
		},
		func() error { return errors.New("second") },
	)

	assert.Len(t, errs, 2)
	assert.Equal(t, int64(1), count, "non-failing jobs must still run")
}

func TestNewWorkerPoolClampsWorkerCount(t *testing.T) {
	pool := NewWorkerPool(0)
	assert.Equal(t, 1, pool.workerCount)

	pool = NewWorkerPool(-5)
	assert.Equal(t, 1, pool.workerCount)
}
