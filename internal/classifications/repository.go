package classifications

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/HIMANSHUIPE/HSClassification/internal/classifier"
	"github.com/HIMANSHUIPE/HSClassification/internal/hscode"
	"github.com/HIMANSHUIPE/HSClassification/pkg/pagination"
	"github.com/HIMANSHUIPE/HSClassification/pkg/query"
	"github.com/HIMANSHUIPE/HSClassification/pkg/repository"
	"github.com/HIMANSHUIPE/HSClassification/pkg/retry"
)

const recordColumns = `id, product_name, customer_name, hs_code, chapter,
		  description, confidence, is_dual_use, reasoning, links,
		  created_at, updated_at`

type repo struct {
	db         *sql.DB
	engine     *classifier.Engine
	logger     *slog.Logger
	pagination pagination.Config
	retry      retry.Policy
}

// New creates a classification repository implementing the System interface.
// Every store operation runs under the given retry policy; only failures
// the repository layer classifies transient are retried.
func New(
	db *sql.DB,
	engine *classifier.Engine,
	logger *slog.Logger,
	pagination pagination.Config,
	policy retry.Policy,
) System {
	return &repo{
		db:         db,
		engine:     engine,
		logger:     logger.With("system", "classifications"),
		pagination: pagination,
		retry:      policy,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

// Classify runs the pipeline and stores the candidate. A store failure
// after retries does not discard the classification: the result is
// returned unsaved with the store error attached.
func (r *repo) Classify(ctx context.Context, req classifier.ClassifyRequest) (*ClassifyResult, error) {
	candidate, err := r.engine.Classify(ctx, req)
	if err != nil {
		return nil, err
	}

	stored, err := r.Create(ctx, commandFromCandidate(candidate))
	if err != nil {
		r.logger.Warn("classification not stored",
			"product", candidate.ProductName,
			"error", err,
		)

		return &ClassifyResult{
			Classification: recordFromCandidate(candidate),
			Stored:         false,
			StoreError:     err.Error(),
		}, nil
	}

	return &ClassifyResult{Classification: *stored, Stored: true}, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Classification, error) {
	linksJSON, err := marshalLinks(cmd.Links)
	if err != nil {
		return nil, err
	}

	q := `
		INSERT INTO classifications(
			product_name, customer_name, hs_code, chapter,
			description, confidence, is_dual_use, reasoning, links
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + recordColumns

	args := []any{
		cmd.ProductName,
		cmd.CustomerName,
		cmd.HSCode,
		cmd.Chapter,
		cmd.Description,
		cmd.Confidence,
		cmd.IsDualUse,
		cmd.Reasoning,
		linksJSON,
	}

	c, err := retry.Do(ctx, r.retry, repository.IsTransient,
		func(ctx context.Context) (Classification, error) {
			return repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Classification, error) {
				return repository.QueryOne(ctx, tx, q, args, scanClassification)
			})
		})
	if err != nil {
		return nil, fmt.Errorf("%w: create classification: %w", ErrStoreFailed, err)
	}

	r.logger.Info("classification stored",
		"id", c.ID,
		"hs_code", c.HSCode,
		"product", c.ProductName,
	)
	return &c, nil
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Classification], error) {
	page.Normalize(r.pagination)

	qb := query.NewBuilder(projection, defaultSort)
	applySearch(qb, page.Search)
	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)

	type listPage struct {
		items []Classification
		total int
	}

	lp, err := retry.Do(ctx, r.retry, repository.IsTransient,
		func(ctx context.Context) (listPage, error) {
			var lp listPage
			g, gctx := errgroup.WithContext(ctx)

			g.Go(func() error {
				return r.db.QueryRowContext(gctx, countSQL, countArgs...).Scan(&lp.total)
			})

			g.Go(func() error {
				items, err := repository.QueryMany(gctx, r.db, pageSQL, pageArgs, scanClassification)
				if err != nil {
					return err
				}
				lp.items = items
				return nil
			})

			if err := g.Wait(); err != nil {
				return listPage{}, err
			}
			return lp, nil
		})
	if err != nil {
		return nil, fmt.Errorf("%w: list classifications: %w", ErrStoreFailed, err)
	}

	result := pagination.NewPageResult(lp.items, lp.total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Classification, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	c, err := retry.Do(ctx, r.retry, repository.IsTransient,
		func(ctx context.Context) (Classification, error) {
			return repository.QueryOne(ctx, r.db, q, args, scanClassification)
		})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: find classification: %w", ErrStoreFailed, err)
	}
	return &c, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Classification, error) {
	var linksJSON []byte
	if cmd.HSCode != nil {
		links := hscode.ReferenceLinks(*cmd.HSCode)
		var err error
		if linksJSON, err = json.Marshal(links); err != nil {
			return nil, fmt.Errorf("marshal links: %w", err)
		}
	}

	q := `
		UPDATE classifications
		SET product_name = COALESCE($1, product_name),
			customer_name = COALESCE($2, customer_name),
			hs_code = COALESCE($3, hs_code),
			chapter = COALESCE($4, chapter),
			description = COALESCE($5, description),
			confidence = COALESCE($6, confidence),
			is_dual_use = COALESCE($7, is_dual_use),
			reasoning = COALESCE($8, reasoning),
			links = COALESCE($9, links)
		WHERE id = $10
		RETURNING ` + recordColumns

	args := []any{
		cmd.ProductName,
		cmd.CustomerName,
		cmd.HSCode,
		cmd.Chapter,
		cmd.Description,
		cmd.Confidence,
		cmd.IsDualUse,
		cmd.Reasoning,
		linksJSON,
		id,
	}

	c, err := retry.Do(ctx, r.retry, repository.IsTransient,
		func(ctx context.Context) (Classification, error) {
			return repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Classification, error) {
				return repository.QueryOne(ctx, tx, q, args, scanClassification)
			})
		})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: update classification: %w", ErrStoreFailed, err)
	}

	r.logger.Info("classification updated", "id", c.ID, "hs_code", c.HSCode)
	return &c, nil
}

// Delete removes a record by id. Deleting a missing record is not an
// error; the operation is idempotent from the caller's perspective.
func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := retry.Do(ctx, r.retry, repository.IsTransient,
		func(ctx context.Context) (int64, error) {
			return repository.Exec(ctx, r.db, "DELETE FROM classifications WHERE id = $1", id)
		})
	if err != nil {
		return fmt.Errorf("%w: delete classification: %w", ErrStoreFailed, err)
	}

	r.logger.Info("classification deleted", "id", id)
	return nil
}

func (r *repo) Statistics(ctx context.Context) (*Statistics, error) {
	q, args := query.NewBuilder(projection).
		BuildProjected("Confidence", "IsDualUse", "Chapter")

	rows, err := retry.Do(ctx, r.retry, repository.IsTransient,
		func(ctx context.Context) ([]StatRow, error) {
			return repository.QueryMany(ctx, r.db, q, args, scanStatRow)
		})
	if err != nil {
		return nil, fmt.Errorf("%w: load statistics projection: %w", ErrStoreFailed, err)
	}

	stats := Aggregate(rows)
	return &stats, nil
}

func (r *repo) Export(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) ([]byte, error) {
	qb := query.NewBuilder(projection, defaultSort)
	applySearch(qb, page.Search)
	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	q, args := qb.Build()

	records, err := retry.Do(ctx, r.retry, repository.IsTransient,
		func(ctx context.Context) ([]Classification, error) {
			return repository.QueryMany(ctx, r.db, q, args, scanClassification)
		})
	if err != nil {
		return nil, fmt.Errorf("%w: export classifications: %w", ErrStoreFailed, err)
	}

	return ExportCSV(records)
}

func marshalLinks(links *hscode.Links) ([]byte, error) {
	if links == nil {
		return nil, nil
	}

	data, err := json.Marshal(links)
	if err != nil {
		return nil, fmt.Errorf("marshal links: %w", err)
	}
	return data, nil
}

func commandFromCandidate(c *classifier.Candidate) CreateCommand {
	links := c.Links
	return CreateCommand{
		ProductName:  c.ProductName,
		CustomerName: c.CustomerName,
		HSCode:       c.HSCode,
		Chapter:      c.Chapter,
		Description:  c.Description,
		Confidence:   c.Confidence,
		IsDualUse:    c.IsDualUse,
		Reasoning:    c.Reasoning,
		Links:        &links,
	}
}

// recordFromCandidate builds the transient record returned when a
// classification could not be stored. The zero ID marks it unsaved.
func recordFromCandidate(c *classifier.Candidate) Classification {
	links := c.Links
	now := time.Now().UTC()

	return Classification{
		ProductName:  c.ProductName,
		CustomerName: c.CustomerName,
		HSCode:       c.HSCode,
		Chapter:      c.Chapter,
		Description:  c.Description,
		Confidence:   c.Confidence,
		IsDualUse:    c.IsDualUse,
		Reasoning:    c.Reasoning,
		Links:        &links,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
