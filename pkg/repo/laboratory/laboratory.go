package laboratory

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/agrigouv/pspc/pkg/common/code"
	"github.com/agrigouv/pspc/pkg/common/uuid"
	"github.com/agrigouv/pspc/pkg/middleware/db"
	"github.com/agrigouv/pspc/pkg/repo"
	"github.com/agrigouv/pspc/pkg/repo/model"
)

type laboratoryImpl struct {
	*db.Datastore
}

func NewLaboratoryRepo() repo.LaboratoryRepo {
	return &laboratoryImpl{Datastore: db.DB()}
}

func (l *laboratoryImpl) FindUnique(ctx context.Context, id uuid.UUID) (*model.Laboratory, error) {
	lab := &model.Laboratory{}
	err := l.DBWithContext(ctx).Where("id = ?", id).First(lab).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, code.QueryDataErr.WithErr(err)
	}
	return lab, nil
}

type documentImpl struct {
	*db.Datastore
}

func NewDocumentRepo() repo.DocumentRepo {
	return &documentImpl{Datastore: db.DB()}
}

func (d *documentImpl) FindUnique(ctx context.Context, id uuid.UUID) (*model.Document, error) {
	doc := &model.Document{}
	err := d.DBWithContext(ctx).Where("id = ?", id).First(doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, code.QueryDataErr.WithErr(err)
	}
	return doc, nil
}
