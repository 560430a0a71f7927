package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gemline/repair-service/internal/domain"
)

func TestCreateShipmentForMailReturn(t *testing.T) {
	repairs := newFakeRepairRepo()
	history := &fakeHistoryRepo{}
	repair := &domain.RepairTicket{
		Status:       domain.StatusRepairing,
		ReturnMethod: domain.ReturnMail,
		Items:        validItems(),
	}
	require.NoError(t, repairs.Create(context.Background(), repair))

	svc := NewShipmentService(repairs, history, &fakeShipper{tracking: "TH123456789XX"})

	updated, err := svc.CreateShipment(context.Background(), managerActor, repair.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.TrackingNumber)
	assert.Equal(t, "TH123456789XX", *updated.TrackingNumber)
	// status is forced to ready_to_ship regardless of where the ticket was
	assert.Equal(t, domain.StatusReadyToShip, updated.Status)

	require.Len(t, history.entries, 1)
	assert.Equal(t, repair.ID, history.entries[0].RepairID)
	assert.Equal(t, "TH123456789XX", history.entries[0].NewValue["tracking_number"])
}

func TestCreateShipmentRejectsPickup(t *testing.T) {
	repairs := newFakeRepairRepo()
	repair := &domain.RepairTicket{ReturnMethod: domain.ReturnPickup, Items: validItems()}
	require.NoError(t, repairs.Create(context.Background(), repair))

	svc := NewShipmentService(repairs, &fakeHistoryRepo{}, &fakeShipper{})

	_, err := svc.CreateShipment(context.Background(), managerActor, repair.ID)
	assert.Error(t, err)
}

func TestCreateShipmentConflictsOnExistingTracking(t *testing.T) {
	repairs := newFakeRepairRepo()
	tracking := "TH000000042XX"
	repair := &domain.RepairTicket{
		ReturnMethod:   domain.ReturnMail,
		TrackingNumber: &tracking,
		Items:          validItems(),
	}
	require.NoError(t, repairs.Create(context.Background(), repair))

	shipper := &fakeShipper{}
	svc := NewShipmentService(repairs, &fakeHistoryRepo{}, shipper)

	_, err := svc.CreateShipment(context.Background(), managerActor, repair.ID)
	require.Error(t, err)
	assert.Zero(t, shipper.calls)
}

func TestCreateShipmentAuthAndProviderFailure(t *testing.T) {
	repairs := newFakeRepairRepo()
	repair := &domain.RepairTicket{ReturnMethod: domain.ReturnMail, Items: validItems()}
	require.NoError(t, repairs.Create(context.Background(), repair))

	svc := NewShipmentService(repairs, &fakeHistoryRepo{}, &fakeShipper{err: errors.New("provider down")})

	_, err := svc.CreateShipment(context.Background(), customerActor, repair.ID)
	require.Error(t, err)

	_, err = svc.CreateShipment(context.Background(), managerActor, repair.ID)
	require.Error(t, err)

	// failed provider call leaves the ticket untouched
	unchanged, err := repairs.GetByID(context.Background(), repair.ID)
	require.NoError(t, err)
	assert.Nil(t, unchanged.TrackingNumber)
	assert.NotEqual(t, domain.StatusReadyToShip, unchanged.Status)
}
