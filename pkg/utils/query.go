package utils

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/fr3shw3b/sortbench-datagen/pkg/generators"
)

// Query parameters understood by the dataset server.
const (
	QueryClientID     = "clientId"
	QueryLastReceived = "lastReceived"
	QueryGenerator    = "generator"
	QuerySeed         = "seed"
	QueryLength       = "length"
	QueryMin          = "min"
	QueryMax          = "max"
	QueryStep         = "step"
	QueryNoise        = "noise"
	QueryPeriod       = "period"
	QueryFrequency    = "frequency"
	QueryMultiplier   = "multiplier"
	QueryInversions   = "inversions"
	QueryOutOfPlace   = "outOfPlace"
	QueryStrictRange  = "strict"
)

// DatasetRequest is what a client asks the server to generate.
type DatasetRequest struct {
	Generator string
	Spec      generators.SequenceSpec
	// Seed is nil when the server should pick one.
	Seed *uint64
}

// QueryParamError reports the query parameter that could not be parsed.
type QueryParamError struct {
	Param string
	Err   error
}

func (e *QueryParamError) Error() string {
	return fmt.Sprintf("invalid query parameter %s: %s", e.Param, e.Err)
}

func (e *QueryParamError) Unwrap() error {
	return e.Err
}

// EncodeDatasetRequest adds the request to the given query values.
func EncodeDatasetRequest(q url.Values, request DatasetRequest) {
	q.Set(QueryGenerator, request.Generator)
	if request.Seed != nil {
		q.Set(QuerySeed, strconv.FormatUint(*request.Seed, 10))
	}

	spec := request.Spec
	q.Set(QueryLength, strconv.Itoa(spec.Length))
	q.Set(QueryMin, formatFloat(spec.DomainMin))
	q.Set(QueryMax, formatFloat(spec.DomainMax))
	q.Set(QueryStep, formatFloat(spec.Step))
	q.Set(QueryNoise, formatFloat(spec.NoiseLevel))
	q.Set(QueryPeriod, formatFloat(spec.Period))
	q.Set(QueryFrequency, formatFloat(spec.Frequency))
	q.Set(QueryMultiplier, formatFloat(spec.Multiplier))
	q.Set(QueryInversions, strconv.Itoa(spec.Inversions))
	q.Set(QueryOutOfPlace, strconv.Itoa(spec.OutOfPlace))
	if spec.StrictRange {
		q.Set(QueryStrictRange, "true")
	}
}

// DecodeDatasetRequest reads a request from query values, starting from
// defaults for every parameter that is not present.
func DecodeDatasetRequest(q url.Values, defaults generators.SequenceSpec) (DatasetRequest, error) {
	request := DatasetRequest{Generator: q.Get(QueryGenerator), Spec: defaults}
	if request.Generator == "" {
		return DatasetRequest{}, &QueryParamError{Param: QueryGenerator, Err: fmt.Errorf("missing generator name")}
	}

	if seedStr := q.Get(QuerySeed); seedStr != "" {
		seed, err := strconv.ParseUint(seedStr, 10, 64)
		if err != nil {
			return DatasetRequest{}, &QueryParamError{Param: QuerySeed, Err: err}
		}
		request.Seed = &seed
	}

	spec := &request.Spec
	ints := []struct {
		param string
		dest  *int
	}{
		{QueryLength, &spec.Length},
		{QueryInversions, &spec.Inversions},
		{QueryOutOfPlace, &spec.OutOfPlace},
	}
	for _, field := range ints {
		if err := readInt(q, field.param, field.dest); err != nil {
			return DatasetRequest{}, err
		}
	}

	floats := []struct {
		param string
		dest  *float64
	}{
		{QueryMin, &spec.DomainMin},
		{QueryMax, &spec.DomainMax},
		{QueryStep, &spec.Step},
		{QueryNoise, &spec.NoiseLevel},
		{QueryPeriod, &spec.Period},
		{QueryFrequency, &spec.Frequency},
		{QueryMultiplier, &spec.Multiplier},
	}
	for _, field := range floats {
		if err := readFloat(q, field.param, field.dest); err != nil {
			return DatasetRequest{}, err
		}
	}

	if strictStr := q.Get(QueryStrictRange); strictStr != "" {
		strict, err := strconv.ParseBool(strictStr)
		if err != nil {
			return DatasetRequest{}, &QueryParamError{Param: QueryStrictRange, Err: err}
		}
		spec.StrictRange = strict
	}

	return request, nil
}

func readInt(q url.Values, param string, dest *int) error {
	value := q.Get(param)
	if value == "" {
		return nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return &QueryParamError{Param: param, Err: err}
	}
	*dest = parsed
	return nil
}

func readFloat(q url.Values, param string, dest *float64) error {
	value := q.Get(param)
	if value == "" {
		return nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return &QueryParamError{Param: param, Err: err}
	}
	*dest = parsed
	return nil
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'g', -1, 64)
}
