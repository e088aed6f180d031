// Copyright 2018 Google LLC
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

package operators

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsComparisonMatchesSurfaceTokens(t *testing.T) {
	for _, op := range []string{"==", "!=", "<", "<=", ">", ">="} {
		require.True(t, IsComparison(op), op)
	}
	require.False(t, IsComparison("==="))
	require.False(t, IsComparison("and"))
}

func TestIsConstraintMatchesSurfaceTokens(t *testing.T) {
	for _, op := range []string{"===", "<==", ">=="} {
		require.True(t, IsConstraint(op), op)
	}
	require.False(t, IsConstraint("=="))
	require.False(t, IsConstraint("<="))
}

func TestFindResolvesCanonicalName(t *testing.T) {
	op, ok := Find("<==")
	require.True(t, ok)
	require.Equal(t, ConstraintLE, op)
}
