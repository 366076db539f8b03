package main

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/carlmjohnson/be"
)

func TestFetchAll(t *testing.T) {
	var calls atomic.Int32
	ok := func(context.Context) error {
		calls.Add(1)
		return nil
	}

	be.NilErr(t, fetchAll(context.Background(), ok, ok, ok))
	be.Equal(t, int32(3), calls.Load())

	boom := errors.New("boom")
	err := fetchAll(context.Background(), ok, func(context.Context) error { return boom })
	be.Equal(t, boom, err)
}

func TestFetchAllCancelsOthers(t *testing.T) {
	boom := errors.New("boom")

	err := fetchAll(context.Background(),
		func(context.Context) error { return boom },
		func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		},
	)
	be.Equal(t, boom, err)
}

func TestFetchEach(t *testing.T) {
	boom := errors.New("boom")

	errs := fetchEach(context.Background(),
		func(context.Context) error { return nil },
		func(context.Context) error { return boom },
		func(context.Context) error { return nil },
	)

	be.Equal(t, 3, len(errs))
	be.NilErr(t, errs[0])
	be.Equal(t, boom, errs[1])
	be.NilErr(t, errs[2])
}
