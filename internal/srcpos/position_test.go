package srcpos_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vexlang/vexc/internal/srcpos"
)

func TestStart(t *testing.T) {
	assert.Equal(t, srcpos.Position{Line: 1, Column: 1}, srcpos.Start())
}

func TestAdvance(t *testing.T) {
	p := srcpos.Start()
	p = p.Advance('a')
	assert.Equal(t, srcpos.New(1, 2), p)

	p = p.Advance('\n')
	assert.Equal(t, srcpos.New(2, 1), p)

	p = p.Advance('b')
	assert.Equal(t, srcpos.New(2, 2), p)
}

func TestString(t *testing.T) {
	assert.Equal(t, "3:7", srcpos.New(3, 7).String())
}
