package services

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/admintieri/tractoradmin/internal/dbx"
	"github.com/admintieri/tractoradmin/internal/logging"
	"github.com/admintieri/tractoradmin/internal/server/models"
	"github.com/admintieri/tractoradmin/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// AuditService records mutating actions asynchronously and serves the
// notification feed. Recording never blocks a request handler: records go
// through a bounded queue drained by a single worker, and are dropped (and
// counted) when the queue is full. The feed is best-effort by contract.
type AuditService struct {
	db          dbx.DBTX
	repomanager repomanager.RepositoryManager
	logger      logging.Logger

	ch        chan *models.AuditRecord
	done      chan struct{}
	wg        sync.WaitGroup
	dropped   atomic.Uint64
	closed    atomic.Bool
	closeOnce sync.Once
}

func NewAuditService(db dbx.DBTX, m repomanager.RepositoryManager, logger logging.Logger, buffer int) *AuditService {
	if buffer <= 0 {
		buffer = 64
	}

	s := &AuditService{
		db:          db,
		repomanager: m,
		logger:      logger,
		ch:          make(chan *models.AuditRecord, buffer),
		done:        make(chan struct{}),
	}

	s.wg.Add(1)
	go s.run()

	return s
}

func (s *AuditService) run() {
	defer s.wg.Done()

	for {
		select {
		case rec := <-s.ch:
			s.persist(rec)
		case <-s.done:
			// Drain whatever is still queued before exiting.
			for {
				select {
				case rec := <-s.ch:
					s.persist(rec)
				default:
					return
				}
			}
		}
	}
}

func (s *AuditService) persist(rec *models.AuditRecord) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	repo := s.repomanager.Audit(s.db)
	if err := repo.Append(ctx, rec); err != nil {
		s.logger.Error(ctx, "audit append failed", "action", rec.Action, "error", err)
	}
}

// Record enqueues an audit record for the given action. meta is marshalled to
// JSON; a marshal failure drops the meta, not the record.
func (s *AuditService) Record(action, entity string, actor models.Identity, meta any, ip, ua string) {
	if s == nil || s.closed.Load() {
		return
	}

	rec := &models.AuditRecord{
		ID:        uuid.NewString(),
		Action:    action,
		Entity:    entity,
		CreatedAt: time.Now(),
		UserID:    actor.ID,
		UserEmail: actor.Email,
		IP:        ip,
		UA:        ua,
	}
	if meta != nil {
		if b, err := json.Marshal(meta); err == nil {
			rec.Meta = b
		}
	}

	select {
	case s.ch <- rec:
	case <-s.done:
	default:
		s.dropped.Add(1)
	}
}

// List returns one page of the feed plus the total row count, newest first.
func (s *AuditService) List(ctx context.Context, page, take int) ([]*models.AuditRecord, int64, error) {
	if page < 1 {
		page = 1
	}
	if take < 1 || take > 100 {
		take = 50
	}

	repo := s.repomanager.Audit(s.db)

	items, err := repo.List(ctx, (page-1)*take, take)
	if err != nil {
		return nil, 0, err
	}

	total, err := repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// Dropped reports how many records were discarded because the queue was full.
func (s *AuditService) Dropped() uint64 {
	return s.dropped.Load()
}

// Close stops accepting records, drains the queue, and waits for the worker.
func (s *AuditService) Close() {
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		close(s.done)
		s.wg.Wait()
	})
}
