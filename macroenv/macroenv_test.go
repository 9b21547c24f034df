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

package macroenv_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cpre/cpre/macroenv"
	"github.com/cpre/cpre/rtoken"
)

func TestParamsAppendAndIndex(t *testing.T) {
	var params macroenv.Params
	params.Append(macroenv.Param{Name: "a", Resolved: rtoken.New()})
	params.Append(macroenv.Param{Name: "b", Resolved: rtoken.New()})

	require.Equal(t, 2, params.Len())
	assert.Equal(t, "a", params.At(0).Name)
	assert.Equal(t, "b", params.At(1).Name)

	p, ok := params.ByName("b")
	require.True(t, ok)
	assert.Equal(t, "b", p.Name)

	_, ok = params.ByName("nope")
	assert.False(t, ok)
}

func TestEmptyCall(t *testing.T) {
	c := macroenv.EmptyCall()
	assert.True(t, c.IsEmpty())
	assert.Nil(t, c.Params())
}

func TestNonEmptyCall(t *testing.T) {
	var params macroenv.Params
	params.Append(macroenv.Param{Name: "x", Resolved: rtoken.New()})
	c := macroenv.NewCall(&params)
	assert.False(t, c.IsEmpty())
	assert.Equal(t, 1, c.Params().Len())
}
