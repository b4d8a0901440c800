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

package perf_test

import (
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/pv-perf/dataframe"
	"github.com/penny-vault/pv-perf/perf"
)

// monthlyDates returns n month-start timestamps beginning 2020-01-01
func monthlyDates(n int) []time.Time {
	dates := make([]time.Time, n)
	dt := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	for idx := range dates {
		dates[idx] = dt
		dt = dt.AddDate(0, 1, 0)
	}
	return dates
}

// monthlyFrame builds a 12-observation monthly series whose constant
// per-period return compounds to the given annual rate
func monthlyFrame(name string, annual float64) *dataframe.DataFrame[time.Time] {
	r := math.Pow(1+annual, 1.0/12.0) - 1
	vals := make([]float64, 12)
	for idx := range vals {
		vals[idx] = r
	}
	return &dataframe.DataFrame[time.Time]{
		Index:    monthlyDates(12),
		ColNames: []string{name},
		Vals:     [][]float64{vals},
	}
}

var _ = Describe("AnnualizedReturns", func() {
	It("recovers the annual rate from constant monthly returns", func() {
		asset := monthlyFrame("VTI", .10)
		ann, err := perf.AnnualizedReturns(asset, dataframe.Monthly, true)
		Expect(err).To(BeNil())
		Expect(ann).To(HaveLen(1))
		Expect(ann[0]).To(BeNumerically("~", .10, 1e-9))
	})

	It("scales the mean linearly for arithmetic annualization", func() {
		asset := &dataframe.DataFrame[time.Time]{
			Index:    monthlyDates(4),
			ColNames: []string{"VTI"},
			Vals:     [][]float64{{.01, .02, .03, .04}},
		}
		ann, err := perf.AnnualizedReturns(asset, dataframe.Monthly, false)
		Expect(err).To(BeNil())
		Expect(ann[0]).To(BeNumerically("~", .025*12, 1e-12))
	})

	It("infers the frequency from the index when none is given", func() {
		asset := monthlyFrame("VTI", .10)
		ann, err := perf.AnnualizedReturns(asset, "", true)
		Expect(err).To(BeNil())
		Expect(ann[0]).To(BeNumerically("~", .10, 1e-9))
	})

	It("annualizes every column independently", func() {
		asset := monthlyFrame("VTI", .10)
		r := math.Pow(1.05, 1.0/12.0) - 1
		col2 := make([]float64, 12)
		for idx := range col2 {
			col2[idx] = r
		}
		asset.ColNames = append(asset.ColNames, "BND")
		asset.Vals = append(asset.Vals, col2)

		ann, err := perf.AnnualizedReturns(asset, dataframe.Monthly, true)
		Expect(err).To(BeNil())
		Expect(ann).To(HaveLen(2))
		Expect(ann[0]).To(BeNumerically("~", .10, 1e-9))
		Expect(ann[1]).To(BeNumerically("~", .05, 1e-9))
	})

	It("drops rows containing missing values before annualizing", func() {
		asset := monthlyFrame("VTI", .10)
		asset.Vals[0][5] = math.NaN()
		ann, err := perf.AnnualizedReturns(asset, dataframe.Monthly, true)
		Expect(err).To(BeNil())
		// 11 surviving observations compound to 1.1^(11/12), rescaled by 12/11
		Expect(ann[0]).To(BeNumerically("~", .10, 1e-9))
	})

	It("fails when every row has a missing value", func() {
		asset := &dataframe.DataFrame[time.Time]{
			Index:    monthlyDates(3),
			ColNames: []string{"VTI"},
			Vals:     [][]float64{{math.NaN(), math.NaN(), math.NaN()}},
		}
		_, err := perf.AnnualizedReturns(asset, dataframe.Monthly, true)
		Expect(err).To(MatchError(perf.ErrEmptySeries))
	})

	It("fails on an unknown frequency", func() {
		asset := monthlyFrame("VTI", .10)
		_, err := perf.AnnualizedReturns(asset, dataframe.Frequency("hourly"), true)
		Expect(err).To(MatchError(dataframe.ErrUnknownFrequency))
	})
})

var _ = Describe("ResolveFrequency", func() {
	var monthly, yearly, short *dataframe.DataFrame[time.Time]

	BeforeEach(func() {
		monthly = monthlyFrame("VTI", .10)
		yearly = &dataframe.DataFrame[time.Time]{
			Index: []time.Time{
				time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
			},
			ColNames: []string{"BMK"},
			Vals:     [][]float64{{.05, .05, .05}},
		}
		short = &dataframe.DataFrame[time.Time]{
			Index:    monthlyDates(1),
			ColNames: []string{"BMK"},
			Vals:     [][]float64{{.05}},
		}
	})

	It("uses the requested frequency without checking the indexes", func() {
		freq, err := perf.ResolveFrequency(monthly, yearly, dataframe.Weekly)
		Expect(err).To(BeNil())
		Expect(freq).To(Equal(dataframe.Weekly))
	})

	It("infers a common frequency when both series agree", func() {
		freq, err := perf.ResolveFrequency(monthly, monthlyFrame("BMK", .05), "")
		Expect(err).To(BeNil())
		Expect(freq).To(Equal(dataframe.Monthly))
	})

	It("falls back to the inferable side when only one can be inferred", func() {
		freq, err := perf.ResolveFrequency(monthly, short, "")
		Expect(err).To(BeNil())
		Expect(freq).To(Equal(dataframe.Monthly))

		freq, err = perf.ResolveFrequency(short, monthly, "")
		Expect(err).To(BeNil())
		Expect(freq).To(Equal(dataframe.Monthly))
	})

	It("fails when the inferred frequencies disagree", func() {
		_, err := perf.ResolveFrequency(monthly, yearly, "")
		var mismatch *perf.FrequencyMismatchError
		Expect(err).To(BeAssignableToTypeOf(mismatch))

		mismatch = err.(*perf.FrequencyMismatchError)
		Expect(mismatch.Asset).To(Equal(dataframe.Monthly))
		Expect(mismatch.Benchmark).To(Equal(dataframe.Yearly))
	})

	It("fails when neither series is inferable", func() {
		_, err := perf.ResolveFrequency(short, short, "")
		Expect(err).To(MatchError(dataframe.ErrFrequencyNotInferable))
	})
})

var _ = Describe("ActivePremium", func() {
	It("computes the difference of annualized returns for a single pair", func() {
		asset := monthlyFrame("VTI", .10)
		benchmark := monthlyFrame("BND", .05)

		premium, err := perf.ActivePremium(asset, benchmark, "", true, perf.Prefixes{})
		Expect(err).To(BeNil())
		Expect(premium.ColNames).To(Equal([]string{"VTI"}))
		Expect(premium.Index).To(Equal([]string{"BND"}))
		Expect(premium.Vals[0][0]).To(BeNumerically("~", .05, 1e-9))
	})

	It("builds one column per asset and one row per benchmark", func() {
		asset := monthlyFrame("VTI", .10)
		asset.ColNames = append(asset.ColNames, "VBK")
		asset.Vals = append(asset.Vals, monthlyFrame("VBK", .20).Vals[0])

		benchmark := monthlyFrame("BND", .05)

		premium, err := perf.ActivePremium(asset, benchmark, dataframe.Monthly, true, perf.Prefixes{})
		Expect(err).To(BeNil())
		Expect(premium.ColNames).To(Equal([]string{"VTI", "VBK"}))
		Expect(premium.Index).To(Equal([]string{"BND"}))
		Expect(premium.Vals[0][0]).To(BeNumerically("~", .05, 1e-9))
		Expect(premium.Vals[1][0]).To(BeNumerically("~", .15, 1e-9))
	})

	It("synthesizes names for unnamed columns", func() {
		asset := monthlyFrame("", .10)
		benchmark := monthlyFrame("3", .05)

		premium, err := perf.ActivePremium(asset, benchmark, dataframe.Monthly, true, perf.Prefixes{})
		Expect(err).To(BeNil())
		Expect(premium.ColNames).To(Equal([]string{"AST_0"}))
		Expect(premium.Index).To(Equal([]string{"BMK_0"}))
	})

	It("honors caller-supplied prefixes", func() {
		asset := monthlyFrame("", .10)
		benchmark := monthlyFrame("", .05)

		premium, err := perf.ActivePremium(asset, benchmark, dataframe.Monthly, true,
			perf.Prefixes{Asset: "Portfolio", Benchmark: "Index"})
		Expect(err).To(BeNil())
		Expect(premium.ColNames).To(Equal([]string{"Portfolio_0"}))
		Expect(premium.Index).To(Equal([]string{"Index_0"}))
	})

	It("fails when either side has no columns", func() {
		asset := monthlyFrame("VTI", .10)
		empty := &dataframe.DataFrame[time.Time]{}
		_, err := perf.ActivePremium(asset, empty, dataframe.Monthly, true, perf.Prefixes{})
		Expect(err).To(MatchError(perf.ErrNoColumns))
	})
})

var _ = Describe("ExcessReturns", func() {
	It("normalizes the difference by benchmark growth when geometric", func() {
		asset := monthlyFrame("VTI", .10)
		benchmark := monthlyFrame("BND", .05)

		excess, err := perf.ExcessReturns(asset, benchmark, "", true)
		Expect(err).To(BeNil())
		Expect(excess).To(HaveLen(1))
		Expect(excess[0]).To(BeNumerically("~", .05/1.05, 1e-9))
	})

	It("takes the simple difference when arithmetic", func() {
		asset := monthlyFrame("VTI", .10)
		benchmark := monthlyFrame("BND", .05)

		excess, err := perf.ExcessReturns(asset, benchmark, "", false)
		Expect(err).To(BeNil())
		Expect(excess[0]).To(BeNumerically("~", .05, 1e-9))
	})

	It("compares a single benchmark against every asset column", func() {
		asset := monthlyFrame("VTI", .10)
		asset.ColNames = append(asset.ColNames, "VBK")
		asset.Vals = append(asset.Vals, monthlyFrame("VBK", .20).Vals[0])

		benchmark := monthlyFrame("BND", .05)

		excess, err := perf.ExcessReturns(asset, benchmark, dataframe.Monthly, false)
		Expect(err).To(BeNil())
		Expect(excess).To(HaveLen(2))
		Expect(excess[0]).To(BeNumerically("~", .05, 1e-9))
		Expect(excess[1]).To(BeNumerically("~", .15, 1e-9))
	})

	It("fails when both sides are multi-column with different widths", func() {
		asset := monthlyFrame("VTI", .10)
		asset.ColNames = append(asset.ColNames, "VBK")
		asset.Vals = append(asset.Vals, monthlyFrame("VBK", .20).Vals[0])

		benchmark := monthlyFrame("BND", .05)
		benchmark.ColNames = append(benchmark.ColNames, "VWO", "VNQ")
		benchmark.Vals = append(benchmark.Vals,
			monthlyFrame("VWO", .05).Vals[0], monthlyFrame("VNQ", .05).Vals[0])

		_, err := perf.ExcessReturns(asset, benchmark, dataframe.Monthly, true)
		Expect(err).To(MatchError(perf.ErrShapeMismatch))
	})

	It("truncates the longer series to the length of the shorter", func() {
		asset := monthlyFrame("VTI", .10)

		// 24 benchmark observations; only the first 12 should participate
		r := math.Pow(1.05, 1.0/12.0) - 1
		vals := make([]float64, 24)
		for idx := range vals {
			vals[idx] = r
		}
		vals[23] = 10 // would dominate the compounded return if not truncated
		benchmark := &dataframe.DataFrame[time.Time]{
			Index:    monthlyDates(24),
			ColNames: []string{"BND"},
			Vals:     [][]float64{vals},
		}

		excess, err := perf.ExcessReturns(asset, benchmark, dataframe.Monthly, false)
		Expect(err).To(BeNil())
		Expect(excess[0]).To(BeNumerically("~", .05, 1e-9))
	})

	It("fails when either side has no columns", func() {
		empty := &dataframe.DataFrame[time.Time]{}
		_, err := perf.ExcessReturns(empty, monthlyFrame("BND", .05), dataframe.Monthly, true)
		Expect(err).To(MatchError(perf.ErrNoColumns))
	})
})

var _ = Describe("RelativeReturns", func() {
	It("tracks the ratio of cumulative growth through time", func() {
		asset := &dataframe.DataFrame[time.Time]{
			Index:    monthlyDates(3),
			ColNames: []string{"VTI"},
			Vals:     [][]float64{{.02, .02, .02}},
		}
		benchmark := &dataframe.DataFrame[time.Time]{
			Index:    monthlyDates(3),
			ColNames: []string{"BND"},
			Vals:     [][]float64{{.01, .01, .01}},
		}

		rel, err := perf.RelativeReturns(asset, benchmark, perf.Prefixes{})
		Expect(err).To(BeNil())
		Expect(rel.ColNames).To(Equal([]string{"VTI/BND"}))
		Expect(rel.Len()).To(Equal(3))

		ratio := 1.02 / 1.01
		for idx := 0; idx < 3; idx++ {
			Expect(rel.Vals[0][idx]).To(BeNumerically("~", math.Pow(ratio, float64(idx+1)), 1e-12))
		}
	})

	It("starts at 1.0 when both series open with a zero return", func() {
		asset := &dataframe.DataFrame[time.Time]{
			Index:    monthlyDates(3),
			ColNames: []string{"VTI"},
			Vals:     [][]float64{{0, .02, .02}},
		}
		benchmark := &dataframe.DataFrame[time.Time]{
			Index:    monthlyDates(3),
			ColNames: []string{"BND"},
			Vals:     [][]float64{{0, .01, .01}},
		}

		rel, err := perf.RelativeReturns(asset, benchmark, perf.Prefixes{})
		Expect(err).To(BeNil())
		Expect(rel.Vals[0][0]).To(Equal(1.0))
		Expect(rel.Vals[0][2]).To(BeNumerically("~", (1.02*1.02)/(1.01*1.01), 1e-12))
	})

	It("only keeps timestamps present in both series of a pair", func() {
		asset := &dataframe.DataFrame[time.Time]{
			Index:    monthlyDates(3),
			ColNames: []string{"VTI"},
			Vals:     [][]float64{{.02, .02, .02}},
		}
		benchmark := &dataframe.DataFrame[time.Time]{
			Index:    monthlyDates(2),
			ColNames: []string{"BND"},
			Vals:     [][]float64{{.01, .01}},
		}

		rel, err := perf.RelativeReturns(asset, benchmark, perf.Prefixes{})
		Expect(err).To(BeNil())
		Expect(rel.Len()).To(Equal(2))
	})

	It("produces one column per asset/benchmark pair", func() {
		asset := &dataframe.DataFrame[time.Time]{
			Index:    monthlyDates(3),
			ColNames: []string{"VTI", "VBK"},
			Vals:     [][]float64{{.02, .02, .02}, {.03, .03, .03}},
		}
		benchmark := &dataframe.DataFrame[time.Time]{
			Index:    monthlyDates(3),
			ColNames: []string{"BND", "VWO"},
			Vals:     [][]float64{{.01, .01, .01}, {.02, .02, .02}},
		}

		rel, err := perf.RelativeReturns(asset, benchmark, perf.Prefixes{})
		Expect(err).To(BeNil())
		Expect(rel.ColNames).To(Equal([]string{"VTI/BND", "VTI/VWO", "VBK/BND", "VBK/VWO"}))
		Expect(rel.Vals[3][0]).To(BeNumerically("~", 1.03/1.02, 1e-12))
	})

	It("fails when either side has no columns", func() {
		empty := &dataframe.DataFrame[time.Time]{}
		_, err := perf.RelativeReturns(monthlyFrame("VTI", .10), empty, perf.Prefixes{})
		Expect(err).To(MatchError(perf.ErrNoColumns))
	})
})
