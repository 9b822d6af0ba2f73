package safe_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/filterschema/pkg/utils/safe"
)

type closer struct {
	closed bool
	err    error
}

func (c *closer) Close() error {
	c.closed = true
	return c.err
}

func TestClose(t *testing.T) {
	ctx := context.Background()
	safe.Close(ctx, nil)

	c := &closer{err: errors.New("already closed")}
	safe.Close(ctx, c)
	gt.B(t, c.closed).True()
}

func TestWrite(t *testing.T) {
	ctx := context.Background()
	safe.Write(ctx, nil, []byte("ignored"))

	var buf bytes.Buffer
	safe.Write(ctx, &buf, []byte("ok"))
	gt.Value(t, buf.String()).Equal("ok")
}
