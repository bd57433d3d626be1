package mocks

import (
	"context"

	"github.com/oncampus/gearbot/internal/domain/booking"
	"github.com/oncampus/gearbot/internal/domain/equipment"
	"github.com/stretchr/testify/mock"
)

// EquipmentRepository is a mock for booking.EquipmentRepository.
type EquipmentRepository struct {
	mock.Mock
}

func (m *EquipmentRepository) List(ctx context.Context) ([]equipment.Equipment, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]equipment.Equipment); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EquipmentRepository) GetByName(ctx context.Context, name string) (*equipment.Equipment, error) {
	args := m.Called(ctx, name)
	if eq, ok := args.Get(0).(*equipment.Equipment); ok {
		return eq, args.Error(1)
	}
	return nil, args.Error(1)
}

// BookingRepository is a mock for booking.BookingRepository.
type BookingRepository struct {
	mock.Mock
}

func (m *BookingRepository) GetByID(ctx context.Context, id string) (*booking.Booking, error) {
	args := m.Called(ctx, id)
	if b, ok := args.Get(0).(*booking.Booking); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *BookingRepository) ListActiveForEquipment(ctx context.Context, equipmentID int64) ([]booking.Booking, error) {
	args := m.Called(ctx, equipmentID)
	if list, ok := args.Get(0).([]booking.Booking); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *BookingRepository) ListActiveByClub(ctx context.Context, club string) ([]booking.Booking, error) {
	args := m.Called(ctx, club)
	if list, ok := args.Get(0).([]booking.Booking); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *BookingRepository) ListAllActive(ctx context.Context) ([]booking.Booking, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]booking.Booking); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *BookingRepository) Finalize(ctx context.Context, id string, to booking.Status) (*booking.Booking, error) {
	args := m.Called(ctx, id, to)
	if b, ok := args.Get(0).(*booking.Booking); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}
