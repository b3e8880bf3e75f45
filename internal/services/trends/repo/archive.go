package repo

import (
	"context"
	"time"

	"trendspull/internal/modkit/repokit"
	perr "trendspull/internal/platform/errors"
	"trendspull/internal/platform/store"
	"trendspull/internal/services/trends/domain"

	"github.com/google/uuid"
)

// statementTimeout caps each archive statement so a slow postgres cannot stall a fetch
const statementTimeout = 5 * time.Second

// Archive records fetched tables in postgres and clickhouse
// either store may be nil; Record writes to whichever is present
type Archive struct {
	db     repokit.TxRunner
	binder repokit.Binder[Repo]
	points *Points
	now    func() time.Time
}

// NewArchive composes the run log and the points writer
// it returns nil when neither store is configured
func NewArchive(db repokit.TxRunner, binder repokit.Binder[Repo], ch store.Clickhouse) *Archive {
	if db == nil && ch == nil {
		return nil
	}
	a := &Archive{binder: binder, now: time.Now}
	if db != nil {
		a.db = repokit.WithBeginHooks(db, repokit.StatementTimeout(statementTimeout))
	}
	if ch != nil {
		a.points = NewPoints(ch)
	}
	return a
}

// EnsureSchema creates the archive tables in every configured store
func (a *Archive) EnsureSchema(ctx context.Context) error {
	if a.db != nil {
		if err := repokit.MustBind(a.binder, a.db).EnsureSchema(ctx); err != nil {
			return err
		}
	}
	if a.points != nil {
		if err := a.points.EnsureSchema(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Record stores t and returns the run id
// points go to clickhouse before the run row commits, so a listed run always has its points
func (a *Archive) Record(ctx context.Context, q domain.Query, t *domain.Table) (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeUnknown, "new run id")
	}

	if a.points != nil {
		if err := a.points.WritePoints(ctx, id, t); err != nil {
			return "", perr.Wrapf(err, perr.ErrorCodeUnavailable, "write trend points for run %s", id)
		}
	}

	if a.db != nil {
		run := RunRow{
			ID:        id,
			Keywords:  t.Keywords,
			Geo:       t.Geo,
			Category:  q.Category,
			Property:  q.Property,
			Timeframe: t.Timeframe,
			Rows:      len(t.Rows),
			FetchedAt: a.now().UTC(),
		}
		err := repokit.WithTx(ctx, a.db, func(tx repokit.Queryer) error {
			_, err := a.binder.Bind(tx).RecordRun(ctx, run)
			return err
		})
		if err != nil {
			return "", err
		}
	}
	return id.String(), nil
}

// Runs lists recorded runs, newest first
func (a *Archive) Runs(ctx context.Context, limit int) ([]domain.Run, error) {
	if a.db == nil {
		return nil, perr.Unavailablef("run listing needs postgres")
	}
	rows, err := repokit.MustBind(a.binder, a.db).ListRuns(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Run, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.Run{
			ID:        r.ID.String(),
			Keywords:  r.Keywords,
			Geo:       r.Geo,
			Category:  r.Category,
			Property:  r.Property,
			Timeframe: r.Timeframe,
			Rows:      r.Rows,
			FetchedAt: r.FetchedAt,
		})
	}
	return out, nil
}
