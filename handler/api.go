// Copyright 2021-2023
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/penny-vault/pv-perf/dataframe"
	"github.com/penny-vault/pv-perf/perf"
)

type PingResponse struct {
	Status  string `json:"status" example:"success"`
	Message string `json:"message" example:"API is alive"`
	Time    string `json:"time" example:"2021-06-19T08:09:10.115924-05:00"`
}

func Ping(c *fiber.Ctx) error {
	var response PingResponse
	now, err := time.Now().MarshalText()
	if err != nil {
		log.Error().Err(err).Msg("error while getting time in ping")
		response = PingResponse{
			Status:  "error",
			Message: err.Error(),
			Time:    string(now),
		}
	} else {
		response = PingResponse{
			Status:  "success",
			Message: "API is alive",
			Time:    string(now),
		}
	}
	return c.JSON(response)
}

// statusForError maps computation failures onto HTTP status codes; every
// error here is a deterministic input-validation failure so nothing maps to
// a retryable status
func statusForError(err error) *fiber.Error {
	var mismatchErr *perf.FrequencyMismatchError

	switch {
	case errors.Is(err, dataframe.ErrUnknownFrequency):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, dataframe.ErrFrequencyNotInferable),
		errors.Is(err, perf.ErrShapeMismatch),
		errors.Is(err, perf.ErrEmptySeries),
		errors.Is(err, perf.ErrNoColumns),
		errors.As(err, &mismatchErr):
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}

	return fiber.NewError(fiber.StatusInternalServerError, err.Error())
}
