package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/notargets/kernelperf/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteTimings(t *testing.T) {
	r := suite.NewResults()
	key := suite.Key{Kernel: "ADD", Variant: suite.BaseSeq}
	r.AddTime(key, "default", 10, 10*time.Millisecond)
	r.AddChecksum(key, "default", 10, 2.5)
	r.Report(suite.Diagnostic{Kernel: "ADD", Variant: suite.VariantID(9), Err: suite.ErrUnknownVariant})

	var buf bytes.Buffer
	writeTimings(&buf, r, nil)
	out := buf.String()
	assert.Contains(t, out, "Time/rep (us)")
	assert.Contains(t, out, "Base_Seq")
	assert.Contains(t, out, "1000.000")
	assert.Contains(t, out, "skipped ADD Unknown_9")
}

func TestWriteChecksums(t *testing.T) {
	r := suite.NewResults()
	r.AddChecksum(suite.Key{Kernel: "K", Variant: suite.BaseSeq}, "default", 1, 1.0)
	r.AddChecksum(suite.Key{Kernel: "K", Variant: suite.BaseOCCA}, "block_256", 1, 1.5)

	var buf bytes.Buffer
	writeChecksums(&buf, r, 1e-7)
	assert.True(t, strings.HasPrefix(buf.String(), "Checksums: 1 mismatches"))
	assert.Contains(t, buf.String(), "Base_OCCA/block_256")

	buf.Reset()
	writeChecksums(&buf, r, 1.0)
	assert.Contains(t, buf.String(), "all variants agree")
}

func TestParseFlags(t *testing.T) {
	assert.Equal(t, []string{"ADD", "Stream"}, splitList(" ADD, ,Stream "))
	assert.Nil(t, splitList(""))

	sizes, err := parseInts("64,256")
	require.NoError(t, err)
	assert.Equal(t, []int{64, 256}, sizes)
	_, err = parseInts("64,big")
	assert.Error(t, err)
}
