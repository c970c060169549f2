// Package batch expands a parameter sweep into generator calls and
// persists every result as a dataset file.
package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fr3shw3b/sortbench-datagen/pkg/dataset"
	"github.com/fr3shw3b/sortbench-datagen/pkg/generators"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// ManifestFileName is written alongside the datasets of every run.
const ManifestFileName = "manifest.json"

type BatcherParams struct {
	OutputDir string
	Seed      uint64
	// Workers bounds the number of files generated concurrently.
	Workers     int
	StrictRange bool
}

type Batcher interface {
	// Run generates and writes every file of the sweep and returns the
	// manifest describing them.
	Run(ctx context.Context, sweep *Sweep) (*Manifest, error)
}

// Manifest records what a run produced.
type Manifest struct {
	RunID     string          `json:"runId"`
	Seed      uint64          `json:"seed"`
	CreatedAt time.Time       `json:"createdAt"`
	Sweep     *Sweep          `json:"sweep"`
	Files     []ManifestEntry `json:"files"`
}

type ManifestEntry struct {
	Generator string `json:"generator"`
	Index     int    `json:"index"`
	File      string `json:"file"`
	Length    int    `json:"length"`
	// Clamped is set when a range sampler returned fewer values than requested.
	Clamped bool `json:"clamped,omitempty"`
}

func NewDefaultBatcher(params *BatcherParams, logger *logrus.Logger) Batcher {
	return &batcherImpl{params: params, logger: logger}
}

type batcherImpl struct {
	params *BatcherParams
	logger *logrus.Logger
}

func (b *batcherImpl) Run(ctx context.Context, sweep *Sweep) (*Manifest, error) {
	if err := sweep.Validate(); err != nil {
		return nil, err
	}
	if err := dataset.EnsureDir(b.params.OutputDir); err != nil {
		return nil, err
	}

	runID := uuid.New().String()
	logger := b.logger.WithField("runId", runID)
	jobs := sweep.jobs(b.params.StrictRange)
	logger.Info("generating ", len(jobs), " datasets in ", b.params.OutputDir)

	// Each job owns its own slot.
	entries := make([]ManifestEntry, len(jobs))

	group, groupCtx := errgroup.WithContext(ctx)
	workers := b.params.Workers
	if workers < 1 {
		workers = 1
	}
	group.SetLimit(workers)

	for i, j := range jobs {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			entry, err := b.runJob(i, j, logger)
			if err != nil {
				return err
			}
			entries[i] = entry
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(entries, func(a, c int) bool {
		if entries[a].Generator != entries[c].Generator {
			return entries[a].Generator < entries[c].Generator
		}
		return entries[a].Index < entries[c].Index
	})

	manifest := &Manifest{
		RunID:     runID,
		Seed:      b.params.Seed,
		CreatedAt: time.Now().UTC(),
		Sweep:     sweep,
		Files:     entries,
	}
	if err := b.writeManifest(manifest); err != nil {
		return nil, err
	}
	logger.Info("finished generating datasets")
	return manifest, nil
}

// jobRand derives the random source of one job from the run seed and the
// job's position, so output does not depend on worker scheduling.
func jobRand(seed uint64, position int) *rand.Rand {
	return rand.New(rand.NewPCG(seed, uint64(position)))
}

func (b *batcherImpl) runJob(position int, j job, logger *logrus.Entry) (ManifestEntry, error) {
	descriptor, err := generators.Lookup(j.generator)
	if err != nil {
		return ManifestEntry{}, err
	}

	clamped := false
	if descriptor.Family == generators.FamilyRange && descriptor.Random {
		min, max := j.spec.IntegerDomain()
		size, wasClamped := generators.NoiseSampleSize(min, max, j.spec.Length, j.spec.NoiseLevel)
		if wasClamped && !j.spec.StrictRange {
			logger.Warn(
				j.generator, j.index, ": scaled range only holds ", size,
				" unique values, clamping from requested length ", j.spec.Length,
			)
		}
		clamped = wasClamped
	}

	seq, err := descriptor.Run(jobRand(b.params.Seed, position), j.spec)
	if err != nil {
		return ManifestEntry{}, fmt.Errorf("%s%d: %w", j.generator, j.index, err)
	}

	name := dataset.FileName(j.generator, j.index, dataset.DefaultExtension)
	if err := dataset.WriteSequence(filepath.Join(b.params.OutputDir, name), seq); err != nil {
		return ManifestEntry{}, err
	}
	logger.Debug("wrote ", name, " (", len(seq), " values)")

	return ManifestEntry{
		Generator: j.generator,
		Index:     j.index,
		File:      name,
		Length:    len(seq),
		Clamped:   clamped,
	}, nil
}

func (b *batcherImpl) writeManifest(manifest *Manifest) error {
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	path := filepath.Join(b.params.OutputDir, ManifestFileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}
