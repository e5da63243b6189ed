// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package health

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemInfoReader(t *testing.T) {
	t.Run("Location", func(t *testing.T) {
		assert := assert.New(t)
		assert.Equal(DefaultMemInfoLocation, (*MemInfoReader)(nil).location())
		assert.Equal(DefaultMemInfoLocation, new(MemInfoReader).location())
		assert.Equal("custom", (&MemInfoReader{Location: "custom"}).location())
	})

	t.Run("Read", func(t *testing.T) {
		var (
			assert  = assert.New(t)
			require = require.New(t)
		)

		memInfo, err := (&MemInfoReader{Location: "testdata/meminfo"}).Read()
		require.NoError(err)
		require.NotNil(memInfo)
		assert.Equal(uint64(8048892), memInfo.MemTotal)
		assert.Equal(uint64(2048), memInfo.Active)
	})

	t.Run("Missing", func(t *testing.T) {
		assert := assert.New(t)
		memInfo, err := (&MemInfoReader{Location: "testdata/nosuch"}).Read()
		assert.Error(err)
		assert.Nil(memInfo)
	})
}
