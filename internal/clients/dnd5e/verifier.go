package dnd5e

import (
	"context"
	"sort"
	"sync"

	"github.com/KirkDiggler/dnd-character-sheet/internal/domain/rulebook"
	dnderr "github.com/KirkDiggler/dnd-character-sheet/internal/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Report lists the outcome of checking a catalog's skills against the API.
// Names are catalog skill names, sorted.
type Report struct {
	Verified []string
	Unknown  []string // lookup failed or the API does not know the key
	NotSkill []string // the key exists but is not a skill proficiency
}

// OK reports whether every skill was found as a skill
func (r *Report) OK() bool {
	return len(r.Unknown) == 0 && len(r.NotSkill) == 0
}

type Verifier struct {
	client      Client
	log         logrus.FieldLogger
	concurrency int
}

type VerifierConfig struct {
	Client      Client // Required
	Logger      logrus.FieldLogger
	Concurrency int // Optional, defaults to 4 lookups in flight
}

func NewVerifier(cfg *VerifierConfig) *Verifier {
	if cfg == nil || cfg.Client == nil {
		panic("dnd5e client is required")
	}

	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	return &Verifier{
		client:      cfg.Client,
		log:         log.WithField("component", "catalog_verifier"),
		concurrency: concurrency,
	}
}

// Verify looks up every catalog skill concurrently. Lookup failures are
// logged and reported, never returned; only a cancelled ctx is an error.
func (v *Verifier) Verify(ctx context.Context, cat *rulebook.Catalog) (*Report, error) {
	if cat == nil {
		return nil, dnderr.InvalidArgument("catalog is required")
	}

	var (
		mu     sync.Mutex
		report = &Report{}
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(v.concurrency)

	for _, skill := range cat.Skills {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			log := v.log.WithFields(logrus.Fields{
				"skill": skill.Name,
				"key":   skill.Key(),
			})

			prof, err := v.client.GetProficiency(gctx, skill.Key())

			mu.Lock()
			defer mu.Unlock()

			switch {
			case err != nil:
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				log.WithError(err).Warn("Skill not found in D&D 5e API")
				report.Unknown = append(report.Unknown, skill.Name)
			case !prof.IsSkill:
				log.WithField("api_name", prof.Name).Warn("Proficiency is not a skill")
				report.NotSkill = append(report.NotSkill, skill.Name)
			default:
				report.Verified = append(report.Verified, skill.Name)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, dnderr.Wrap(err, "catalog verification interrupted")
	}

	sort.Strings(report.Verified)
	sort.Strings(report.Unknown)
	sort.Strings(report.NotSkill)

	v.log.WithFields(logrus.Fields{
		"verified":  len(report.Verified),
		"unknown":   len(report.Unknown),
		"not_skill": len(report.NotSkill),
	}).Info("Verified skill catalog")

	return report, nil
}
