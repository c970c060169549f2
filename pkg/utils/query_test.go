package utils

import (
	"errors"
	"net/url"
	"testing"

	"github.com/fr3shw3b/sortbench-datagen/pkg/generators"
)

func Test_dataset_request_survives_the_query_string(t *testing.T) {
	seed := uint64(1 << 60)
	spec := generators.DefaultSpec()
	spec.Length = 42
	spec.DomainMin = -3.25
	spec.NoiseLevel = 0.1
	spec.Inversions = 7
	spec.StrictRange = true

	q := url.Values{}
	EncodeDatasetRequest(q, DatasetRequest{Generator: generators.NameSquareWithNoise, Spec: spec, Seed: &seed})
	parsed, err := url.ParseQuery(q.Encode())
	if err != nil {
		t.Error(err)
		t.FailNow()
	}

	request, err := DecodeDatasetRequest(parsed, generators.SequenceSpec{})
	if err != nil {
		t.Error(err)
		t.FailNow()
	}
	if request.Generator != generators.NameSquareWithNoise {
		t.Error("unexpected generator ", request.Generator)
	}
	if request.Seed == nil || *request.Seed != seed {
		t.Error("expected seed ", seed, " got ", request.Seed)
	}
	if request.Spec != spec {
		t.Error("expected spec ", spec, " got ", request.Spec)
	}
}

func Test_dataset_request_falls_back_to_defaults(t *testing.T) {
	q := url.Values{QueryGenerator: {generators.NameAscending}, QueryLength: {"12"}}
	request, err := DecodeDatasetRequest(q, generators.DefaultSpec())
	if err != nil {
		t.Error(err)
		t.FailNow()
	}
	expected := generators.DefaultSpec()
	expected.Length = 12
	if request.Spec != expected {
		t.Error("expected spec ", expected, " got ", request.Spec)
	}
	if request.Seed != nil {
		t.Error("expected no seed")
	}
}

func Test_dataset_request_reports_the_bad_parameter(t *testing.T) {
	q := url.Values{QueryGenerator: {generators.NameAscending}, QueryNoise: {"loud"}}
	_, err := DecodeDatasetRequest(q, generators.DefaultSpec())
	var paramErr *QueryParamError
	if !errors.As(err, &paramErr) || paramErr.Param != QueryNoise {
		t.Error("expected a noise parameter error, got: ", err)
	}

	_, err = DecodeDatasetRequest(url.Values{}, generators.DefaultSpec())
	if !errors.As(err, &paramErr) || paramErr.Param != QueryGenerator {
		t.Error("expected a generator parameter error, got: ", err)
	}
}
