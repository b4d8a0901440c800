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

package data

import (
	"bytes"
	_ "embed"
	"time"

	"github.com/penny-vault/pv-perf/dataframe"
)

// etfCSV holds daily closing prices of 4 ETFs over 126 trading days; it is
// bundled so the CLI and examples work without any external data source
//
//go:embed etf.csv
var etfCSV []byte

// LoadETF returns the bundled sample dataset of daily ETF closing prices
func LoadETF() (*dataframe.DataFrame[time.Time], error) {
	return FromCSV(bytes.NewReader(etfCSV))
}

// LoadETFReturns returns the bundled sample dataset converted to simple
// period returns
func LoadETFReturns() (*dataframe.DataFrame[time.Time], error) {
	prices, err := LoadETF()
	if err != nil {
		return nil, err
	}
	return PctChange(prices), nil
}
