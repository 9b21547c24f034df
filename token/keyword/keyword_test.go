// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package keyword_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cpre/cpre/token/keyword"
)

func TestLookup(t *testing.T) {
	assert.Equal(t, keyword.Int, keyword.Lookup("int"))
	assert.Equal(t, keyword.Unknown, keyword.Lookup("intt"))
	assert.Equal(t, keyword.Unknown, keyword.Lookup("foobar"))
}

func TestRange(t *testing.T) {
	assert.True(t, keyword.Int.IsKeyword())
	assert.True(t, keyword.Int >= keyword.Min && keyword.Int <= keyword.Max)
	assert.False(t, keyword.Unknown.IsKeyword())
}

func TestRescan(t *testing.T) {
	// Regression for the "keyword re-classification after paste" property:
	// pasting "i" and "nt" must look up the merged text afresh.
	assert.Equal(t, keyword.Int, keyword.Lookup("i"+"nt"))
}
