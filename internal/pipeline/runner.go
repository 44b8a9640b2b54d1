package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"portfolio/internal/catalog"
	"portfolio/internal/config"
	"portfolio/internal/history"
	"portfolio/internal/logging"
	"portfolio/internal/materialize"
	"portfolio/internal/rendition"
	"portfolio/internal/transcode"
)

// ErrNameCollision marks a source skipped because an earlier file in the
// same category has the same base name.
var ErrNameCollision = errors.New("another source in the category has the same base name")

// Journal records finished runs.
type Journal interface {
	Record(ctx context.Context, run history.Run) error
}

// Options wires a Runner. Config and Catalog are required; the remaining
// collaborators default to the production implementations derived from
// Config.
type Options struct {
	Config     *config.Config
	Catalog    *catalog.Catalog
	Categories []string
	Walker     *catalog.Walker
	Planner    *rendition.Planner
	Transcoder transcode.Transcoder
	Logger     *slog.Logger
	Journal    Journal
	Origin     string
	DryRun     bool
	Now        func() time.Time
	NewRunID   func() string
}

// Runner executes the derivation pipeline.
type Runner struct {
	cfg        *config.Config
	catalog    *catalog.Catalog
	categories []string
	walker     *catalog.Walker
	planner    *rendition.Planner
	transcoder transcode.Transcoder
	logger     *slog.Logger
	journal    Journal
	origin     string
	dryRun     bool
	now        func() time.Time
	newRunID   func() string
}

// New validates opts and fills defaults.
func New(opts Options) (*Runner, error) {
	if opts.Config == nil {
		return nil, errors.New("pipeline: config is required")
	}
	if opts.Catalog == nil {
		return nil, errors.New("pipeline: catalog is required")
	}
	r := &Runner{
		cfg:        opts.Config,
		catalog:    opts.Catalog,
		categories: opts.Categories,
		walker:     opts.Walker,
		planner:    opts.Planner,
		transcoder: opts.Transcoder,
		logger:     logging.NewComponentLogger(opts.Logger, "pipeline"),
		journal:    opts.Journal,
		origin:     opts.Origin,
		dryRun:     opts.DryRun,
		now:        opts.Now,
		newRunID:   opts.NewRunID,
	}
	if r.walker == nil {
		r.walker = catalog.NewWalker(opts.Config.Paths.SourceDir)
	}
	if r.planner == nil {
		policy, err := rendition.ParseHeroPolicy(opts.Config.Pipeline.HeroPolicy)
		if err != nil {
			return nil, fmt.Errorf("pipeline: %w", err)
		}
		r.planner = rendition.NewPlanner(opts.Config.Paths.OutputDir, rendition.DefaultSpecs(), rendition.WithHeroPolicy(policy))
	}
	if r.transcoder == nil {
		r.transcoder = transcode.New()
	}
	if r.origin == "" {
		r.origin = history.OriginRun
	}
	if r.now == nil {
		r.now = time.Now
	}
	if r.newRunID == nil {
		r.newRunID = uuid.NewString
	}
	if _, err := r.selected(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Runner) selected() ([]catalog.Category, error) {
	if len(r.categories) == 0 {
		return r.catalog.Categories(), nil
	}
	return r.catalog.Select(r.categories...)
}

// Run executes one pass over the catalog. The returned error is non-nil only
// for conditions that make the run unusable: the lock is held elsewhere, the
// layout cannot be created, or the manifest cannot be written. Individual
// rendition failures are reported through Report.Failures.
func (r *Runner) Run(ctx context.Context) (Report, error) {
	report := Report{
		RunID:   r.newRunID(),
		Origin:  r.origin,
		DryRun:  r.dryRun,
		Started: r.now(),
	}
	ctx = logging.WithRunID(ctx, report.RunID)
	logger := logging.WithContext(ctx, r.logger)

	categories, err := r.selected()
	if err != nil {
		return report, err
	}

	if !r.dryRun {
		if err := r.cfg.EnsureDirectories(); err != nil {
			return report, err
		}
		lock, err := acquireLock(r.cfg.LockPath())
		if err != nil {
			return report, err
		}
		defer func() {
			if err := lock.release(); err != nil {
				logging.WarnWithContext(logger, "failed to release run lock", "lock_release_failed",
					logging.String("lock", lock.path), logging.Error(err))
			}
		}()

		layout, err := materialize.EnsureLayout(r.walker.Root(), r.cfg.Paths.OutputDir, categories, r.planner.Specs())
		if err != nil {
			return report, fmt.Errorf("prepare output layout: %w", err)
		}
		logger.Debug("output layout ready",
			logging.Int("directories", len(layout.Directories)),
			logging.Int("created", len(layout.Created)))
	}

	logger.Info("run started",
		logging.String(logging.FieldEventType, "run_start"),
		logging.Int("categories", len(categories)),
		logging.String("hero_policy", string(r.planner.Policy())),
		logging.Bool("dry_run", r.dryRun))

	var manifest *materialize.Manifest
	if r.cfg.Pipeline.WriteManifest && !r.dryRun {
		manifest = materialize.NewManifest(r.cfg.Publish.PublicBaseURL, r.planner.Specs().Fullscreen())
	}

	for _, category := range categories {
		if ctx.Err() != nil {
			report.Canceled = true
			break
		}
		cr := r.runCategory(ctx, category, manifest, &report)
		report.Categories = append(report.Categories, cr)
		if cr.Status == StatusMissing || cr.Status == StatusError {
			report.Skipped++
		}
		if report.Canceled {
			break
		}
	}

	if manifest != nil && !report.Canceled {
		path := r.cfg.Paths.ManifestFile
		if err := manifest.WriteFile(path); err != nil {
			report.Finished = r.now()
			r.record(ctx, logger, report)
			return report, err
		}
		report.ManifestPath = path
		logger.Info("manifest written", logging.String("path", path), logging.Int("entries", manifest.Len()))
	}

	report.Finished = r.now()
	r.record(ctx, logger, report)
	r.logSummary(logger, report)
	return report, nil
}

func (r *Runner) runCategory(ctx context.Context, category catalog.Category, manifest *materialize.Manifest, report *Report) CategoryReport {
	ctx = logging.WithCategory(ctx, category.Name)
	logger := logging.WithContext(ctx, r.logger)
	cr := CategoryReport{Category: category}

	images, err := r.walker.Images(category)
	if err != nil {
		if errors.Is(err, catalog.ErrCategoryMissing) {
			cr.Status = StatusMissing
			cr.Detail = "source directory missing"
			logger.Info("category skipped", logging.String("reason", cr.Detail), logging.String("dir", r.walker.Dir(category)))
			return cr
		}
		cr.Status = StatusError
		cr.Detail = err.Error()
		logging.WarnWithContext(logger, "category skipped", "category_unreadable",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check permissions on the category source directory"))
		return cr
	}

	plan := r.planner.Plan(category, images)
	cr.Images = len(images)
	cr.Jobs = len(plan.Jobs)
	cr.UnsafeNames = plan.UnsafeNames
	if plan.Hero != nil {
		cr.Hero = plan.Hero.Image.Name
		cr.HeroRule = plan.Hero.Rule
		logger.Info("hero selected", logging.Args(append(
			logging.DecisionAttrs("hero_selection", plan.Hero.Image.Name, plan.Hero.Rule),
			logging.Int("images", len(images)),
		)...)...)
	}
	if len(plan.UnsafeNames) > 0 {
		logging.WarnWithContext(logger, "file names need URL encoding", "unsafe_file_names",
			logging.Int("count", len(plan.UnsafeNames)),
			logging.Any("files", plan.UnsafeNames),
			logging.String(logging.FieldErrorHint, "rename to letters, digits, '-', '_' or '.' for stable URLs"))
	}

	for _, c := range plan.Collisions {
		cr.Collisions = append(cr.Collisions, c.String())
		logging.WarnWithContext(logger, "source skipped, output name already taken", "name_collision",
			logging.String("file", c.Image.Name),
			logging.String("conflicts_with", c.With.Name),
			logging.String(logging.FieldErrorHint, "rename one of the files so each base name is unique"))
		if !r.dryRun {
			cr.Failed++
			report.Failed++
			report.Failures = append(report.Failures, Failure{
				Category: category.Name,
				Source:   c.Image.Name,
				Err:      fmt.Errorf("%w: %s", ErrNameCollision, c.With.Name),
			})
		}
	}

	if len(images) == 0 {
		cr.Status = StatusEmpty
		logger.Info("category has no images")
		return cr
	}
	if r.dryRun {
		cr.Status = StatusPlanned
		report.Planned += len(plan.Jobs)
		return cr
	}

	cr.Status = StatusProcessed
	heroDone := false
	fullscreenDone := make(map[string]bool, len(images))
	for _, job := range plan.Jobs {
		if ctx.Err() != nil {
			cr.Status = StatusCanceled
			report.Canceled = true
			logger.Info("run canceled, not scheduling further jobs", logging.String(logging.FieldEventType, "run_canceled"))
			break
		}
		// The job in flight is allowed to finish after cancellation.
		res, err := r.transcoder.Transcode(context.WithoutCancel(ctx), job)
		if err != nil {
			cr.Failed++
			r.fail(logger, report, job, job.Destination, err)
			continue
		}
		cr.Succeeded++
		report.Succeeded++
		logger.Debug("rendition written",
			logging.String("file", job.Source.Name),
			logging.String("rendition", string(job.Spec.Kind)),
			logging.String("destination", res.Job.Destination),
			logging.Int("width", res.Width),
			logging.Int("height", res.Height),
			logging.Int64("bytes", res.Bytes),
			logging.Duration("elapsed", res.Elapsed))

		switch job.Spec.Kind {
		case rendition.KindHero:
			heroDone = true
		case rendition.KindFullscreen:
			fullscreenDone[job.Source.Name] = true
		}
	}

	if heroDone && len(plan.HeroCopies) > 0 {
		if err := materialize.DuplicateHero(plan.HeroCopies); err != nil {
			cr.Failed++
			r.fail(logger, report, r.heroJob(plan), "", err)
		}
	}

	if manifest != nil {
		for _, img := range images {
			if fullscreenDone[img.Name] {
				manifest.Add(category, img)
			}
		}
	}

	logger.Info("category processed",
		logging.Int("images", cr.Images),
		logging.Int("succeeded", cr.Succeeded),
		logging.Int("failed", cr.Failed))
	return cr
}

func (r *Runner) heroJob(plan rendition.Plan) rendition.Job {
	for _, job := range plan.Jobs {
		if job.Spec.Kind == rendition.KindHero {
			return job
		}
	}
	return rendition.Job{}
}

func (r *Runner) fail(logger *slog.Logger, report *Report, job rendition.Job, destination string, err error) {
	report.Failed++
	report.Failures = append(report.Failures, Failure{
		Category:    job.Category,
		Source:      job.Source.Name,
		Rendition:   job.Spec.Kind,
		Destination: destination,
		Err:         err,
	})
	logging.ErrorWithContext(logger, "rendition failed", "rendition_failed",
		logging.String("file", job.Source.Name),
		logging.String("rendition", string(job.Spec.Kind)),
		logging.Error(err),
		logging.String(logging.FieldErrorHint, "re-export the source image and run again"))
}

func (r *Runner) record(ctx context.Context, logger *slog.Logger, report Report) {
	if r.journal == nil || r.dryRun {
		return
	}
	if err := r.journal.Record(context.WithoutCancel(ctx), report.HistoryRun()); err != nil {
		logging.WarnWithContext(logger, "failed to journal run", "history_write_failed", logging.Error(err))
	}
}

func (r *Runner) logSummary(logger *slog.Logger, report Report) {
	attrs := []logging.Attr{
		logging.Int("categories", len(report.Categories)),
		logging.Int("skipped", report.Skipped),
		logging.Int("succeeded", report.Succeeded),
		logging.Int("failed", report.Failed),
		logging.Duration("duration", report.Duration()),
	}
	if report.DryRun {
		attrs = append(attrs, logging.Int("planned", report.Planned))
	}
	if report.Canceled {
		logging.WarnWithContext(logger, "run canceled", "run_canceled",
			append(attrs, logging.String(logging.FieldErrorHint, "run again to finish the remaining renditions"))...)
		return
	}
	attrs = append(attrs, logging.String(logging.FieldEventType, "run_complete"))
	logger.Info("run complete", logging.Args(attrs...)...)
}
