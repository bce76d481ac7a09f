package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewServeObservabilityCmd_HasAddrFlag(t *testing.T) {
	cmd := NewServeObservabilityCmd()

	addrFlag := cmd.Flags().Lookup("addr")
	assert.NotNil(t, addrFlag)
	assert.Equal(t, ":9090", addrFlag.DefValue)
}
