package services

import (
	"context"
	"errors"
	"io"
	"testing"

	"labstock/internal/dto"
	"labstock/internal/entities"
	"labstock/pkg/constants"
	apperrors "labstock/pkg/errors"
	"labstock/pkg/types"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeLaboratoryRepo хранит лаборатории в памяти и запоминает последний
// payload, переданный в UpdateLaboratory.
type fakeLaboratoryRepo struct {
	labs        map[uint64]*entities.Laboratory
	lastUpdate  dto.UpdateLaboratoryDTO
	lastGallery *string
}

func (f *fakeLaboratoryRepo) GetLaboratories(_ context.Context, _ types.Filter) ([]entities.Laboratory, uint64, error) {
	return nil, 0, nil
}

func (f *fakeLaboratoryRepo) FindLaboratory(_ context.Context, id uint64) (*entities.Laboratory, error) {
	lab, ok := f.labs[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *lab
	return &copied, nil
}

func (f *fakeLaboratoryRepo) FindLaboratoryByCustodian(_ context.Context, custodianID uint64) (*entities.Laboratory, error) {
	for _, lab := range f.labs {
		if lab.CustodianID != nil && *lab.CustodianID == custodianID {
			copied := *lab
			return &copied, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeLaboratoryRepo) CreateLaboratory(_ context.Context, payload dto.CreateLaboratoryDTO) (*entities.Laboratory, error) {
	lab := &entities.Laboratory{ID: uint64(len(f.labs) + 1), Name: payload.Name, CustodianID: payload.CustodianID}
	f.labs[lab.ID] = lab
	return lab, nil
}

func (f *fakeLaboratoryRepo) UpdateLaboratory(_ context.Context, id uint64, payload dto.UpdateLaboratoryDTO, gallery *string) (*entities.Laboratory, error) {
	lab, ok := f.labs[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	f.lastUpdate = payload
	f.lastGallery = gallery
	if payload.CustodianID.Valid {
		v := uint64(payload.CustodianID.Int64)
		lab.CustodianID = &v
	} else {
		lab.CustodianID = nil
	}
	if gallery != nil {
		lab.Gallery = gallery
	}
	copied := *lab
	return &copied, nil
}

func (f *fakeLaboratoryRepo) DeleteLaboratory(_ context.Context, id uint64) error {
	delete(f.labs, id)
	return nil
}

type fakeUserRepo struct {
	users map[uint64]*entities.User
}

func (f *fakeUserRepo) GetUsers(_ context.Context, _ types.Filter) ([]entities.User, uint64, error) {
	return nil, 0, nil
}

func (f *fakeUserRepo) FindUser(_ context.Context, id uint64) (*entities.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) FindUserByEmail(_ context.Context, _ string) (*entities.User, error) {
	return nil, apperrors.ErrNotFound
}

func (f *fakeUserRepo) CreateUser(_ context.Context, _ dto.CreateUserDTO, _ string, _ *string) (*entities.User, error) {
	return nil, errors.New("не используется в тестах")
}

func (f *fakeUserRepo) UpdateUser(_ context.Context, _ uint64, _ dto.UpdateUserDTO, _ *string, _ *string) (*entities.User, error) {
	return nil, errors.New("не используется в тестах")
}

func (f *fakeUserRepo) DeleteUser(_ context.Context, _ uint64) error { return nil }

type fakeFileStorage struct {
	deleted []string
}

func (f *fakeFileStorage) Save(_ io.Reader, _ string, prefix string) (string, error) {
	return prefix + "/saved.png", nil
}

func (f *fakeFileStorage) Delete(filePath string) error {
	f.deleted = append(f.deleted, filePath)
	return nil
}

// Замена изображения не снимает ответственного: в payload UPDATE уходит
// текущий custodian_id.
func TestLaboratoryService_UploadGallery_PreservesCustodian(t *testing.T) {
	custodianID := uint64(5)
	oldGallery := "laboratories/old.png"
	labRepo := &fakeLaboratoryRepo{labs: map[uint64]*entities.Laboratory{
		1: {ID: 1, Name: "Физическая лаборатория", CustodianID: &custodianID, Gallery: &oldGallery},
	}}
	storage := &fakeFileStorage{}
	svc := NewLaboratoryService(labRepo, &fakeUserRepo{}, storage, zap.NewNop())

	_, err := svc.UploadGallery(context.Background(), 1, "laboratories/new.png")
	require.NoError(t, err)

	require.True(t, labRepo.lastUpdate.CustodianID.Valid)
	assert.Equal(t, int64(5), labRepo.lastUpdate.CustodianID.Int64)
	require.NotNil(t, labRepo.lastGallery)
	assert.Equal(t, "laboratories/new.png", *labRepo.lastGallery)
	assert.Equal(t, []string{oldGallery}, storage.deleted)
}

func TestLaboratoryService_UpdateLaboratory_AssignsCustodian(t *testing.T) {
	labRepo := &fakeLaboratoryRepo{labs: map[uint64]*entities.Laboratory{
		1: {ID: 1, Name: "Физическая лаборатория"},
	}}
	userRepo := &fakeUserRepo{users: map[uint64]*entities.User{
		5: {ID: 5, Name: "Иванов И.И.", Role: constants.RoleCustodian, IsActive: true},
	}}
	svc := NewLaboratoryService(labRepo, userRepo, &fakeFileStorage{}, zap.NewNop())

	payload := dto.UpdateLaboratoryDTO{CustodianID: null.Int64From(5)}
	_, err := svc.UpdateLaboratory(context.Background(), 1, payload, nil)
	require.NoError(t, err)

	require.NotNil(t, labRepo.labs[1].CustodianID)
	assert.Equal(t, uint64(5), *labRepo.labs[1].CustodianID)
}

func TestLaboratoryService_UpdateLaboratory_CustodianAlreadyAssigned(t *testing.T) {
	custodianID := uint64(5)
	labRepo := &fakeLaboratoryRepo{labs: map[uint64]*entities.Laboratory{
		1: {ID: 1, Name: "Физическая лаборатория", CustodianID: &custodianID},
		2: {ID: 2, Name: "Химическая лаборатория"},
	}}
	userRepo := &fakeUserRepo{users: map[uint64]*entities.User{
		5: {ID: 5, Name: "Иванов И.И.", Role: constants.RoleCustodian, IsActive: true},
	}}
	svc := NewLaboratoryService(labRepo, userRepo, &fakeFileStorage{}, zap.NewNop())

	payload := dto.UpdateLaboratoryDTO{CustodianID: null.Int64From(5)}
	_, err := svc.UpdateLaboratory(context.Background(), 2, payload, nil)
	require.Error(t, err)

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 409, httpErr.Code)
}
