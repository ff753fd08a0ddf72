package handler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/healthperm-server/internal/api/grpc/permapi"
	"github.com/dtroode/healthperm-server/internal/apierrors"
	"github.com/dtroode/healthperm-server/internal/mocks"
	"github.com/dtroode/healthperm-server/internal/model"
	"github.com/dtroode/healthperm-server/internal/testutil"
)

func newAuditHandler(t *testing.T, caller model.Identity) (*Audit, *mocks.AuditService, *mocks.ArchiveService) {
	t.Helper()

	auditSvc := mocks.NewAuditService(t)
	archiveSvc := mocks.NewArchiveService(t)
	cm := mocks.NewContextManager(t)
	cm.On("GetCallerFromContext", mock.Anything).Maybe().Return(caller, caller != "")

	return NewAudit(auditSvc, archiveSvc, cm, testutil.MakeNoopLogger()), auditSvc, archiveSvc
}

func TestAudit_LogAccess(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		caller   model.Identity
		svcErr   error
		wantCode codes.Code
	}{
		{name: "consumer logs its own access", caller: "0xclinic", wantCode: codes.OK},
		{name: "other caller", caller: "0xmallory", svcErr: apierrors.NewErrUnauthorized("0xmallory"), wantCode: codes.PermissionDenied},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h, svc, _ := newAuditHandler(t, tt.caller)
			svc.On("LogAccess", mock.Anything, tt.caller, model.Identity("0xalice"), model.Identity("0xclinic"), model.CategoryCardioRate, "checkup").
				Return(uint64(3), tt.svcErr)

			out, err := h.LogAccess(context.Background(), &permapi.LogAccessRequest{
				User:     "0xalice",
				Consumer: "0xclinic",
				Category: "cardio-rate",
				Purpose:  "checkup",
			})
			assert.Equal(t, tt.wantCode, status.Code(err))
			if tt.wantCode == codes.OK {
				assert.Equal(t, uint64(3), out.AccessID)
			}
		})
	}
}

func TestAudit_LogAccess_Unauthenticated(t *testing.T) {
	t.Parallel()

	h, _, _ := newAuditHandler(t, "")
	_, err := h.LogAccess(context.Background(), &permapi.LogAccessRequest{User: "0xalice", Consumer: "0xclinic", Category: "cardio-rate", Purpose: "checkup"})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestAudit_RequestAccess(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		id       uint64
		svcErr   error
		wantCode codes.Code
	}{
		{name: "granted", id: 9, wantCode: codes.OK},
		{name: "denied", svcErr: apierrors.NewErrAccessDenied("0xclinic", "0xalice", "cardio-rate"), wantCode: codes.PermissionDenied},
		{name: "store failure", svcErr: errors.New("connection reset"), wantCode: codes.Internal},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h, svc, _ := newAuditHandler(t, "0xclinic")
			svc.On("RequestAccess", mock.Anything, model.Identity("0xclinic"), model.Identity("0xalice"), model.CategoryCardioRate, "checkup").
				Return(tt.id, tt.svcErr)

			out, err := h.RequestAccess(context.Background(), &permapi.RequestAccessRequest{User: "0xalice", Category: "cardio-rate", Purpose: "checkup"})
			assert.Equal(t, tt.wantCode, status.Code(err))
			if tt.wantCode == codes.OK {
				assert.Equal(t, tt.id, out.AccessID)
			}
		})
	}
}

func TestAudit_GetAuditEntry(t *testing.T) {
	t.Parallel()

	h, svc, _ := newAuditHandler(t, "")
	entry := model.AuditEntry{
		AccessID:   1,
		User:       "0xalice",
		Consumer:   "0xclinic",
		Category:   model.CategoryCardioRate,
		AccessTime: 77,
		Purpose:    "checkup",
		Hash:       model.Hash{0x01},
	}
	svc.On("GetAuditEntry", mock.Anything, uint64(1)).Return(entry, true, nil)
	svc.On("GetAuditEntry", mock.Anything, uint64(2)).Return(model.AuditEntry{}, false, nil)

	found, err := h.GetAuditEntry(context.Background(), &permapi.GetAuditEntryRequest{AccessID: 1})
	require.NoError(t, err)
	require.True(t, found.Found)
	assert.Equal(t, "checkup", found.Entry.Purpose)
	assert.Equal(t, uint64(77), found.Entry.AccessTime)
	assert.Equal(t, entry.Hash.String(), found.Entry.Hash)
	assert.Equal(t, model.Hash{}.String(), found.Entry.PrevHash)

	missing, err := h.GetAuditEntry(context.Background(), &permapi.GetAuditEntryRequest{AccessID: 2})
	require.NoError(t, err)
	assert.False(t, missing.Found)
	assert.Nil(t, missing.Entry)
}

func TestAudit_CounterAndChain(t *testing.T) {
	t.Parallel()

	h, svc, _ := newAuditHandler(t, "")
	svc.On("GetLogCounter", mock.Anything).Return(uint64(5), nil)
	svc.On("VerifyChain", mock.Anything, uint64(0), uint64(5)).
		Return(model.ChainReport{From: 0, To: 5, Checked: 3, Valid: false, BrokenAt: 3}, nil)

	counter, err := h.GetLogCounter(context.Background(), &permapi.GetLogCounterRequest{})
	require.NoError(t, err)
	assert.Equal(t, uint64(5), counter.Counter)

	report, err := h.VerifyChain(context.Background(), &permapi.VerifyChainRequest{From: 0, To: 5})
	require.NoError(t, err)
	assert.Equal(t, &permapi.ChainReport{From: 0, To: 5, Checked: 3, Valid: false, BrokenAt: 3}, report)
}

func TestAudit_ListUserAccess(t *testing.T) {
	t.Parallel()

	h, svc, _ := newAuditHandler(t, "0xalice")
	svc.On("ListUserAccess", mock.Anything, model.Identity("0xalice"), model.Identity("0xalice")).Return([]uint64{0, 4}, nil)
	svc.On("ListUserAccess", mock.Anything, model.Identity("0xalice"), model.Identity("0xbob")).
		Return(nil, apierrors.NewErrUnauthorized("0xalice"))

	own, err := h.ListUserAccess(context.Background(), &permapi.ListUserAccessRequest{User: "0xalice"})
	require.NoError(t, err)
	assert.Equal(t, []uint64{0, 4}, own.AccessIDs)

	_, err = h.ListUserAccess(context.Background(), &permapi.ListUserAccessRequest{User: "0xbob"})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))
}

func TestAudit_Archive(t *testing.T) {
	t.Parallel()

	h, _, archive := newAuditHandler(t, "0xregistrar")
	archive.On("ExportRange", mock.Anything, model.Identity("0xregistrar"), uint64(0), uint64(2)).Return("audit/0-2.cbor", nil)
	archive.On("VerifyArchive", mock.Anything, model.Identity("0xregistrar"), "audit/0-2.cbor").
		Return(model.ChainReport{From: 0, To: 2, Checked: 2, Valid: true}, nil)
	archive.On("VerifyArchive", mock.Anything, model.Identity("0xregistrar"), "audit/9-10.cbor").
		Return(model.ChainReport{}, apierrors.NewErrNotFound("archive"))

	exported, err := h.ExportRange(context.Background(), &permapi.ExportRangeRequest{From: 0, To: 2})
	require.NoError(t, err)
	assert.Equal(t, "audit/0-2.cbor", exported.Key)

	report, err := h.VerifyArchive(context.Background(), &permapi.VerifyArchiveRequest{Key: "audit/0-2.cbor"})
	require.NoError(t, err)
	assert.True(t, report.Valid)

	_, err = h.VerifyArchive(context.Background(), &permapi.VerifyArchiveRequest{Key: "audit/9-10.cbor"})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestAudit_CallerRequired(t *testing.T) {
	t.Parallel()

	h, _, _ := newAuditHandler(t, "")

	_, err := h.RequestAccess(context.Background(), &permapi.RequestAccessRequest{User: "0xalice", Category: "cardio-rate"})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	_, err = h.ExportRange(context.Background(), &permapi.ExportRangeRequest{From: 0, To: 1})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}
