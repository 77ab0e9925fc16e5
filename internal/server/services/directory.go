package services

import (
	"context"

	"github.com/admintieri/tractoradmin/internal/dbx"
	"github.com/admintieri/tractoradmin/internal/server/models"
	"github.com/admintieri/tractoradmin/internal/server/repositories/repomanager"
)

// DirectoryService serves the paged administrator listing shown on the
// console's users page. Rows come back as identities only; the hash column
// stays inside the repository layer.
type DirectoryService struct {
	db          dbx.DBTX
	repomanager repomanager.RepositoryManager
}

func NewDirectoryService(db dbx.DBTX, m repomanager.RepositoryManager) *DirectoryService {
	return &DirectoryService{db: db, repomanager: m}
}

// List returns one page of administrators and the total count.
func (s *DirectoryService) List(ctx context.Context, page, take int) ([]models.Identity, int64, error) {
	if page < 1 {
		page = 1
	}
	if take < 1 || take > 100 {
		take = 25
	}

	repo := s.repomanager.Admins(s.db)

	rows, err := repo.List(ctx, (page-1)*take, take)
	if err != nil {
		return nil, 0, err
	}

	total, err := repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	items := make([]models.Identity, 0, len(rows))
	for _, a := range rows {
		items = append(items, a.Identity())
	}

	return items, total, nil
}
