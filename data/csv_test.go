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

package data_test

import (
	"math"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/pv-perf/data"
	"github.com/penny-vault/pv-perf/dataframe"
)

var _ = Describe("FromCSV", func() {
	It("parses a date-indexed table", func() {
		csv := `DATE,VTI,BND
2021-01-04,100.0,84.5
2021-01-05,101.2,84.3
2021-01-06,100.8,84.4
`
		df, err := data.FromCSV(strings.NewReader(csv))
		Expect(err).To(BeNil())
		Expect(df.ColNames).To(Equal([]string{"VTI", "BND"}))
		Expect(df.Len()).To(Equal(3))
		Expect(df.Index[0]).To(Equal(time.Date(2021, 1, 4, 0, 0, 0, 0, time.UTC)))
		Expect(df.Vals[0]).To(Equal([]float64{100.0, 101.2, 100.8}))
		Expect(df.Vals[1]).To(Equal([]float64{84.5, 84.3, 84.4}))
	})

	It("trims whitespace and treats empty cells as missing", func() {
		csv := `DATE, VTI ,BND
2021-01-04, 100.0 ,84.5
2021-01-05,,84.3
`
		df, err := data.FromCSV(strings.NewReader(csv))
		Expect(err).To(BeNil())
		Expect(df.ColNames).To(Equal([]string{"VTI", "BND"}))
		Expect(df.Vals[0][0]).To(Equal(100.0))
		Expect(math.IsNaN(df.Vals[0][1])).To(BeTrue())
		Expect(df.Vals[1][1]).To(Equal(84.3))
	})

	It("sorts rows by date", func() {
		csv := `DATE,VTI
2021-01-06,3
2021-01-04,1
2021-01-05,2
`
		df, err := data.FromCSV(strings.NewReader(csv))
		Expect(err).To(BeNil())
		Expect(df.Vals[0]).To(Equal([]float64{1, 2, 3}))
	})

	It("rejects a table with only a header", func() {
		_, err := data.FromCSV(strings.NewReader("DATE,VTI\n"))
		Expect(err).To(MatchError(data.ErrEmptyCSV))
	})

	It("rejects a table without value columns", func() {
		_, err := data.FromCSV(strings.NewReader("DATE\n2021-01-04\n"))
		Expect(err).To(MatchError(data.ErrEmptyCSV))
	})

	It("rejects duplicate dates", func() {
		csv := `DATE,VTI
2021-01-04,100.0
2021-01-05,101.2
2021-01-04,100.5
`
		_, err := data.FromCSV(strings.NewReader(csv))
		Expect(err).To(MatchError(data.ErrDuplicateDate))
	})

	It("rejects malformed dates", func() {
		_, err := data.FromCSV(strings.NewReader("DATE,VTI\n01/04/2021,100.0\n2021-01-05,101.0\n"))
		Expect(err).To(MatchError(data.ErrInvalidDate))
	})

	It("rejects non-numeric values", func() {
		_, err := data.FromCSV(strings.NewReader("DATE,VTI\n2021-01-04,n/a\n2021-01-05,101.0\n"))
		Expect(err).To(MatchError(data.ErrInvalidValue))
	})
})

var _ = Describe("PctChange", func() {
	It("converts prices into simple period returns", func() {
		prices := &dataframe.DataFrame[time.Time]{
			Index: []time.Time{
				time.Date(2021, 1, 4, 0, 0, 0, 0, time.UTC),
				time.Date(2021, 1, 5, 0, 0, 0, 0, time.UTC),
				time.Date(2021, 1, 6, 0, 0, 0, 0, time.UTC),
			},
			ColNames: []string{"VTI"},
			Vals:     [][]float64{{100, 110, 99}},
		}

		returns := data.PctChange(prices)
		Expect(returns.Len()).To(Equal(2))
		Expect(returns.Index[0]).To(Equal(prices.Index[1]))
		Expect(returns.Vals[0][0]).To(BeNumerically("~", .10, 1e-12))
		Expect(returns.Vals[0][1]).To(BeNumerically("~", -.10, 1e-12))
	})

	It("returns an empty frame for fewer than 2 rows", func() {
		prices := &dataframe.DataFrame[time.Time]{
			Index:    []time.Time{time.Date(2021, 1, 4, 0, 0, 0, 0, time.UTC)},
			ColNames: []string{"VTI"},
			Vals:     [][]float64{{100}},
		}

		returns := data.PctChange(prices)
		Expect(returns.Len()).To(Equal(0))
		Expect(returns.ColNames).To(Equal([]string{"VTI"}))
	})
})

var _ = Describe("bundled ETF dataset", func() {
	It("loads 126 daily closing prices for 4 ETFs", func() {
		prices, err := data.LoadETF()
		Expect(err).To(BeNil())
		Expect(prices.Len()).To(Equal(126))
		Expect(prices.ColNames).To(Equal([]string{"VTI", "VBK", "BND", "VWO"}))
	})

	It("converts to returns one row shorter than the prices", func() {
		returns, err := data.LoadETFReturns()
		Expect(err).To(BeNil())
		Expect(returns.Len()).To(Equal(125))
	})

	It("infers a daily frequency from the dataset", func() {
		returns, err := data.LoadETFReturns()
		Expect(err).To(BeNil())

		freq, err := dataframe.InferFrequency(returns.Index)
		Expect(err).To(BeNil())
		Expect(freq).To(Equal(dataframe.Daily))
	})
})
