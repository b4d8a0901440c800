// Copyright 2021-2023
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package perf

import (
	"errors"
	"fmt"

	"github.com/penny-vault/pv-perf/dataframe"
)

var (
	ErrEmptySeries   = errors.New("series has no observations after removing missing values")
	ErrNoColumns     = errors.New("input has no columns")
	ErrShapeMismatch = errors.New("the shapes of the asset and benchmark returns do not match")
)

// FrequencyMismatchError is returned when the asset and benchmark series
// imply different frequencies and no explicit frequency was requested.
// Silently picking either side would misstate the other's annualized figures
// so the conflict is surfaced to the caller.
type FrequencyMismatchError struct {
	Asset     dataframe.Frequency
	Benchmark dataframe.Frequency
}

func (err *FrequencyMismatchError) Error() string {
	return fmt.Sprintf("frequency mismatch: asset is %s but benchmark is %s", err.Asset, err.Benchmark)
}
